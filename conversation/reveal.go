package conversation

import (
	"sync"
	"time"
)

// DefaultTypingInterval is the pause between successive revealed runes.
// Matches the pacing of a human-looking typing animation; tunable via config.
const DefaultTypingInterval = 20 * time.Millisecond

// SchedulerState is the reveal scheduler's lifecycle state.
type SchedulerState int

const (
	StateIdle SchedulerState = iota
	StateArmed
	StateTicking
)

func (s SchedulerState) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateTicking:
		return "ticking"
	default:
		return "idle"
	}
}

// Scheduler drives the character-by-character reveal of one assistant
// message at a time. There is a single job slot: arming a new target
// abandons whatever job was live, leaving the old message's visible prefix
// wherever it got to.
//
// The scheduler does not own a timer. Callers pace it by invoking Tick on
// the cadence returned by Interval, the way a UI event loop schedules its
// next frame. Every Arm bumps a generation counter so that ticks scheduled
// for a superseded job can be recognised and dropped.
type Scheduler struct {
	mu         sync.Mutex
	store      *Store
	interval   time.Duration
	state      SchedulerState
	targetID   string
	content    []rune
	emitted    int
	generation uint64
}

func NewScheduler(store *Store, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultTypingInterval
	}
	return &Scheduler{store: store, interval: interval}
}

// Interval returns the pause callers should leave between Tick calls.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Arm points the scheduler at the message with the given id, superseding
// any job still in flight. It returns the job generation and whether any
// ticking is needed at all: a missing target, or one whose content is
// already fully visible (empty content included), ends the job immediately
// and the scheduler goes straight back to idle.
func (s *Scheduler) Arm(id string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++

	msg, ok := s.store.Get(id)
	if !ok || msg.FullyVisible() {
		s.state = StateIdle
		s.targetID = ""
		s.content = nil
		s.emitted = 0
		return s.generation, false
	}

	s.state = StateArmed
	s.targetID = id
	s.content = []rune(msg.Content)
	s.emitted = len([]rune(msg.VisiblePrefix))
	return s.generation, true
}

// Tick reveals the next rune of the current job and reports whether more
// ticks are needed. Ticks carrying a stale generation (their job was
// superseded) are inert.
func (s *Scheduler) Tick(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation || s.state == StateIdle {
		return false
	}

	next := s.emitted + 1
	if next > len(s.content) {
		s.toIdle()
		return false
	}

	if err := s.store.UpdateVisiblePrefix(s.targetID, string(s.content[:next])); err != nil {
		// Contract violation elsewhere in the core; end the job rather
		// than ticking against a broken target.
		s.toIdle()
		return false
	}

	s.emitted = next
	if s.emitted == len(s.content) {
		s.toIdle()
		return false
	}
	s.state = StateTicking
	return true
}

// Job returns the current generation and whether a job is live.
func (s *Scheduler) Job() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation, s.state != StateIdle
}

// State returns the scheduler's current lifecycle state.
func (s *Scheduler) State() SchedulerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TargetID returns the id of the message being revealed, if any.
func (s *Scheduler) TargetID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.targetID
}

func (s *Scheduler) toIdle() {
	s.state = StateIdle
	s.targetID = ""
	s.content = nil
	s.emitted = 0
}
