package conversation

import (
	"context"
	"strings"
	"sync"
)

// Answerer produces the assistant reply for a question. Implementations
// never fail past their boundary: transport problems degrade to a normal
// reply carrying a fallback text.
type Answerer interface {
	Ask(ctx context.Context, question string) string
}

// Controller is the single entry point for user-initiated actions. It owns
// the pending flag that enforces single-flight submission and is the only
// component that appends to the store and arms the scheduler.
type Controller struct {
	mu        sync.Mutex
	store     *Store
	scheduler *Scheduler
	answerer  Answerer
	pending   bool
}

func NewController(store *Store, scheduler *Scheduler, answerer Answerer) *Controller {
	return &Controller{store: store, scheduler: scheduler, answerer: answerer}
}

// Pending reports whether a submission is awaiting its backend response.
// The reveal animation is decoupled from this flag: Pending returns false
// as soon as the assistant reply has been appended and armed, however long
// the reveal takes.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Submit validates rawText, appends the user message, asks the backend and
// appends the assistant reply (fallback text included), then arms the
// reveal scheduler on it.
//
// Blank input is rejected with ErrEmptyInput before any state changes.
// A submission while another is in flight is a silent no-op: the UI keeps
// its controls disabled while Pending is true, so this is belt and braces
// rather than a reportable condition.
func (c *Controller) Submit(ctx context.Context, rawText string) error {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return ErrEmptyInput
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return nil
	}
	c.pending = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.pending = false
		c.mu.Unlock()
	}()

	if err := c.store.Append(NewUserMessage(text)); err != nil {
		return err
	}

	answer := c.answerer.Ask(ctx, text)

	assistant := NewAssistantMessage(answer)
	if err := c.store.Append(assistant); err != nil {
		return err
	}
	c.scheduler.Arm(assistant.ID)
	return nil
}
