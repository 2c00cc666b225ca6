package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in the conversation log.
//
// Content is set once at creation and never changes afterwards. VisiblePrefix
// is the portion actually shown to the user: for user messages it always
// equals Content, for assistant messages it starts empty and grows one rune
// at a time until the two are equal.
type Message struct {
	ID            string
	Role          Role
	Content       string
	VisiblePrefix string
	CreatedAt     time.Time // display formatting only, never used for ordering
}

// NewUserMessage creates a user message. User messages are never animated,
// so the full content is visible immediately.
func NewUserMessage(content string) Message {
	return Message{
		ID:            uuid.New().String(),
		Role:          RoleUser,
		Content:       content,
		VisiblePrefix: content,
		CreatedAt:     time.Now(),
	}
}

// NewAssistantMessage creates an assistant message with nothing revealed yet.
func NewAssistantMessage(content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleAssistant,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// FullyVisible reports whether the whole content is on screen.
func (m Message) FullyVisible() bool {
	return m.VisiblePrefix == m.Content
}
