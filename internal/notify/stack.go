package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Phase is where a notification is in its lifetime.
type Phase int

const (
	// PhaseEntering is the state right after Push, before the slide-in.
	PhaseEntering Phase = iota
	// PhaseVisible is fully shown.
	PhaseVisible
	// PhaseLeaving is sliding out; removal follows.
	PhaseLeaving
)

// String returns the name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseVisible:
		return "visible"
	case PhaseLeaving:
		return "leaving"
	default:
		return "entering"
	}
}

// Notification is a single transient message.
type Notification struct {
	ID        string
	Message   string
	Severity  Severity
	CreatedAt time.Time
	Phase     Phase
}

// Stack holds the active notifications, oldest first. It is safe for
// concurrent use.
type Stack struct {
	mu    sync.RWMutex
	items []Notification
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push adds a notification in PhaseEntering and returns it.
func (s *Stack) Push(message string, severity Severity, now time.Time) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		Phase:     PhaseEntering,
	}
	s.mu.Lock()
	s.items = append(s.items, n)
	s.mu.Unlock()
	return n
}

// Advance moves the notification to phase. It returns false if the
// notification is gone or already past phase.
func (s *Stack) Advance(id string, phase Phase) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			if s.items[i].Phase >= phase {
				return false
			}
			s.items[i].Phase = phase
			return true
		}
	}
	return false
}

// Remove deletes the notification. It returns false if it was not present.
func (s *Stack) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns a copy of every notification not yet removed.
func (s *Stack) Active() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}

// Visible returns the notifications that should be drawn: those that have
// slid in and not yet been removed.
func (s *Stack) Visible() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Notification
	for _, n := range s.items {
		if n.Phase != PhaseEntering {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of active notifications.
func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
