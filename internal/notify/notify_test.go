package notify

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Iron-Ham/copyguard/internal/config"
)

type timer struct {
	at time.Duration
	f  func()
}

// fakeTimers records scheduled callbacks and runs them in time order on demand.
type fakeTimers struct {
	mu     sync.Mutex
	timers []timer
}

func (ft *fakeTimers) after(d time.Duration, f func()) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.timers = append(ft.timers, timer{at: d, f: f})
}

// runUntil fires every timer scheduled at or before d, earliest first.
func (ft *fakeTimers) runUntil(d time.Duration) {
	ft.mu.Lock()
	var due, rest []timer
	for _, t := range ft.timers {
		if t.at <= d {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	ft.timers = rest
	ft.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		name  string
		sev   Severity
		color string
	}{
		{"success", Success, "#10b981"},
		{"error", Error, "#ef4444"},
		{"warning", Warning, "#f59e0b"},
		{"info", Info, "#3b82f6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.sev.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.sev.String(), tt.name)
			}
			if string(tt.sev.Color()) != tt.color {
				t.Errorf("Color() = %q, want %q", tt.sev.Color(), tt.color)
			}
			if ParseSeverity(tt.name) != tt.sev {
				t.Errorf("ParseSeverity(%q) = %v", tt.name, ParseSeverity(tt.name))
			}
		})
	}
}

func TestParseSeverity_Default(t *testing.T) {
	for _, name := range []string{"", "loud", "INFO"} {
		if got := ParseSeverity(name); got != Info {
			t.Errorf("ParseSeverity(%q) = %v, want info", name, got)
		}
	}
	if got := Severity(42); got.String() != "info" || got.Color() != Info.Color() {
		t.Errorf("unknown severity should render as info, got %s", got)
	}
}

func TestStack_Lifecycle(t *testing.T) {
	s := NewStack()
	now := time.Now()
	n := s.Push("hello", Success, now)

	if n.ID == "" {
		t.Fatal("Push() returned empty ID")
	}
	if n.Phase != PhaseEntering {
		t.Errorf("Phase = %v, want entering", n.Phase)
	}
	if len(s.Visible()) != 0 {
		t.Error("entering notification should not be visible")
	}

	if !s.Advance(n.ID, PhaseVisible) {
		t.Error("Advance(visible) = false")
	}
	if s.Advance(n.ID, PhaseVisible) {
		t.Error("Advance(visible) twice = true")
	}
	if got := s.Visible(); len(got) != 1 || got[0].Message != "hello" {
		t.Errorf("Visible() = %v", got)
	}

	if !s.Advance(n.ID, PhaseLeaving) {
		t.Error("Advance(leaving) = false")
	}
	if !s.Remove(n.ID) {
		t.Error("Remove() = false")
	}
	if s.Remove(n.ID) {
		t.Error("Remove() twice = true")
	}
	if s.Advance(n.ID, PhaseLeaving) {
		t.Error("Advance() on removed notification = true")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestPresenter_Timers(t *testing.T) {
	ft := &fakeTimers{}
	changes := 0
	p := NewPresenter(NewStack(), DefaultTimings(),
		WithAfterFunc(ft.after),
		WithOnChange(func() { changes++ }))

	p.Notify("done", Success)

	if got := len(ft.timers); got != 3 {
		t.Fatalf("scheduled %d timers, want 3", got)
	}
	wantAt := []time.Duration{100 * time.Millisecond, 5000 * time.Millisecond, 5300 * time.Millisecond}
	for i, want := range wantAt {
		if ft.timers[i].at != want {
			t.Errorf("timer %d at %v, want %v", i, ft.timers[i].at, want)
		}
	}

	ft.runUntil(100 * time.Millisecond)
	if v := p.Stack().Visible(); len(v) != 1 || v[0].Phase != PhaseVisible {
		t.Errorf("after slide-in Visible() = %v", v)
	}

	ft.runUntil(5000 * time.Millisecond)
	if a := p.Stack().Active(); len(a) != 1 || a[0].Phase != PhaseLeaving {
		t.Errorf("after display Active() = %v", a)
	}

	ft.runUntil(5300 * time.Millisecond)
	if p.Stack().Len() != 0 {
		t.Errorf("Len() = %d after removal", p.Stack().Len())
	}
	if changes != 4 {
		t.Errorf("onChange called %d times, want 4", changes)
	}
}

func TestPresenter_IndependentNotifications(t *testing.T) {
	ft := &fakeTimers{}
	p := NewPresenter(NewStack(), DefaultTimings(), WithAfterFunc(ft.after))

	p.Notify("first", Info)
	p.Notify("second", Error)

	if p.Stack().Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Stack().Len())
	}
	ft.runUntil(5300 * time.Millisecond)
	if p.Stack().Len() != 0 {
		t.Errorf("Len() = %d, want 0 after both expire", p.Stack().Len())
	}
}

func TestTimingsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.NotificationDurationMs = 2000
	cfg.AnimationDurationMs = 0

	tm := TimingsFromConfig(cfg)
	if tm.Display != 2*time.Second {
		t.Errorf("Display = %v", tm.Display)
	}
	if tm.Animation != 0 {
		t.Errorf("Animation = %v", tm.Animation)
	}
	if tm.SlideIn != DefaultSlideIn {
		t.Errorf("SlideIn = %v", tm.SlideIn)
	}
	if TimingsFromConfig(nil) != DefaultTimings() {
		t.Error("TimingsFromConfig(nil) should return defaults")
	}
}
