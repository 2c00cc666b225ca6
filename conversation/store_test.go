package conversation

import (
	"errors"
	"testing"
)

func TestStoreAppendOrder(t *testing.T) {
	store := NewStore()

	first := NewUserMessage("Hello")
	second := NewAssistantMessage("Hi there!")

	if err := store.Append(first); err != nil {
		t.Fatalf("append user: %v", err)
	}
	if err := store.Append(second); err != nil {
		t.Fatalf("append assistant: %v", err)
	}

	snap := store.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(snap))
	}
	if snap[0].ID != first.ID || snap[1].ID != second.ID {
		t.Errorf("messages out of insertion order")
	}
	if snap[0].VisiblePrefix != "Hello" {
		t.Errorf("user message should be fully visible, got %q", snap[0].VisiblePrefix)
	}
	if snap[1].VisiblePrefix != "" {
		t.Errorf("fresh assistant message should have empty prefix, got %q", snap[1].VisiblePrefix)
	}
}

func TestStoreAppendRejects(t *testing.T) {
	dup := NewUserMessage("same")

	tests := []struct {
		name  string
		setup func(s *Store)
		msg   Message
	}{
		{
			name:  "missing id",
			setup: func(s *Store) {},
			msg:   Message{Role: RoleUser, Content: "x", VisiblePrefix: "x"},
		},
		{
			name:  "duplicate id",
			setup: func(s *Store) { _ = s.Append(dup) },
			msg:   dup,
		},
		{
			name:  "prefix not a prefix of content",
			setup: func(s *Store) {},
			msg:   Message{ID: "m1", Role: RoleAssistant, Content: "abc", VisiblePrefix: "zzz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			tt.setup(store)
			err := store.Append(tt.msg)
			if !errors.Is(err, ErrInvalidMessage) {
				t.Errorf("expected ErrInvalidMessage, got %v", err)
			}
		})
	}
}

func TestStoreUpdateVisiblePrefix(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		newPrefix string
		wantErr   error
	}{
		{name: "extend by one rune", current: "Hi", newPrefix: "Hi ", wantErr: nil},
		{name: "extend to full content", current: "Hi there", newPrefix: "Hi there!", wantErr: nil},
		{name: "same prefix is allowed", current: "Hi", newPrefix: "Hi", wantErr: nil},
		{name: "regression", current: "Hi there", newPrefix: "Hi", wantErr: ErrPrefixRegression},
		{name: "replacement", current: "Hi", newPrefix: "Ho", wantErr: ErrPrefixRegression},
		{name: "overshoot past content", current: "Hi there!", newPrefix: "Hi there!!", wantErr: ErrPrefixRegression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			msg := Message{ID: "a1", Role: RoleAssistant, Content: "Hi there!", VisiblePrefix: tt.current}
			if err := store.Append(msg); err != nil {
				t.Fatalf("append: %v", err)
			}

			err := store.UpdateVisiblePrefix("a1", tt.newPrefix)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				got, _ := store.Get("a1")
				if got.VisiblePrefix != tt.newPrefix {
					t.Errorf("prefix = %q, want %q", got.VisiblePrefix, tt.newPrefix)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			got, _ := store.Get("a1")
			if got.VisiblePrefix != tt.current {
				t.Errorf("failed update must not change state: prefix = %q, want %q", got.VisiblePrefix, tt.current)
			}
		})
	}
}

func TestStoreUpdateUnknownMessage(t *testing.T) {
	store := NewStore()
	err := store.UpdateVisiblePrefix("nope", "x")
	if !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("expected ErrUnknownMessage, got %v", err)
	}
}

func TestStoreNotifiesInMutationOrder(t *testing.T) {
	store := NewStore()

	var seen []string
	store.Subscribe(func(m Message) {
		seen = append(seen, m.ID+":"+m.VisiblePrefix)
	})

	msg := Message{ID: "a1", Role: RoleAssistant, Content: "ab"}
	if err := store.Append(msg); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.UpdateVisiblePrefix("a1", "a"); err != nil {
		t.Fatalf("update 1: %v", err)
	}
	if err := store.UpdateVisiblePrefix("a1", "ab"); err != nil {
		t.Fatalf("update 2: %v", err)
	}

	want := []string{"a1:", "a1:a", "a1:ab"}
	if len(seen) != len(want) {
		t.Fatalf("expected %d notifications, got %d", len(want), len(seen))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notification %d = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestStoreFailedMutationDoesNotNotify(t *testing.T) {
	store := NewStore()
	notifications := 0
	store.Subscribe(func(Message) { notifications++ })

	msg := Message{ID: "a1", Role: RoleAssistant, Content: "ab", VisiblePrefix: "ab"}
	_ = store.Append(msg)
	notifications = 0

	if err := store.UpdateVisiblePrefix("a1", "a"); err == nil {
		t.Fatal("expected regression error")
	}
	if notifications != 0 {
		t.Errorf("failed mutation must not notify, got %d notifications", notifications)
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	store := NewStore()
	_ = store.Append(Message{ID: "a1", Role: RoleAssistant, Content: "abc"})

	snap := store.Snapshot()
	snap[0].VisiblePrefix = "tampered"

	got, _ := store.Get("a1")
	if got.VisiblePrefix != "" {
		t.Errorf("snapshot mutation leaked into store: %q", got.VisiblePrefix)
	}
}
