package conversation

import (
	"fmt"
	"strings"
	"sync"
)

// Store holds the ordered conversation log. It is append-only: no edits,
// no deletion, no reordering. Insertion order is display order.
//
// The only mutation allowed after append is growing the VisiblePrefix of an
// assistant message, which the reveal scheduler drives.
type Store struct {
	mu          sync.Mutex
	messages    []Message
	index       map[string]int
	subscribers []func(Message)
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Subscribe registers fn to be called after every successful mutation, in
// the order mutations were applied. Handlers run synchronously on the
// mutating goroutine and must not call back into the Store.
func (s *Store) Subscribe(fn func(Message)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Append inserts a message at the end of the log. The message ID must be
// unique and the visible prefix must already satisfy the prefix invariant.
func (s *Store) Append(msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidMessage)
	}
	if _, exists := s.index[msg.ID]; exists {
		return fmt.Errorf("%w: duplicate id %s", ErrInvalidMessage, msg.ID)
	}
	if !strings.HasPrefix(msg.Content, msg.VisiblePrefix) {
		return fmt.Errorf("%w: visible prefix is not a prefix of content", ErrInvalidMessage)
	}

	s.index[msg.ID] = len(s.messages)
	s.messages = append(s.messages, msg)
	s.notify(msg)
	return nil
}

// UpdateVisiblePrefix grows the visible prefix of an existing message.
// The new prefix must extend the current one and stay a prefix of the full
// content; anything else is a programming error in the caller.
func (s *Store) UpdateVisiblePrefix(id, newPrefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMessage, id)
	}
	msg := s.messages[i]
	if !strings.HasPrefix(newPrefix, msg.VisiblePrefix) {
		return fmt.Errorf("%w: %q does not extend %q", ErrPrefixRegression, newPrefix, msg.VisiblePrefix)
	}
	if !strings.HasPrefix(msg.Content, newPrefix) {
		return fmt.Errorf("%w: %q is not a prefix of the content", ErrPrefixRegression, newPrefix)
	}

	s.messages[i].VisiblePrefix = newPrefix
	s.notify(s.messages[i])
	return nil
}

// Get returns the message with the given id.
func (s *Store) Get(id string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return Message{}, false
	}
	return s.messages[i], true
}

// Snapshot returns a copy of the current ordered log. Pure read.
func (s *Store) Snapshot() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the log.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// notify is called with s.mu held so observers see mutations in commit order.
func (s *Store) notify(msg Message) {
	for _, fn := range s.subscribers {
		fn(msg)
	}
}
