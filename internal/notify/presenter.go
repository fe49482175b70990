package notify

import (
	"time"

	"github.com/Iron-Ham/copyguard/internal/config"
	"github.com/Iron-Ham/copyguard/internal/logging"
)

// DefaultSlideIn is the delay before a new notification becomes visible.
const DefaultSlideIn = 100 * time.Millisecond

// Timings controls a notification's lifetime.
type Timings struct {
	// SlideIn is when the notification becomes visible.
	SlideIn time.Duration
	// Display is when it starts sliding out.
	Display time.Duration
	// Animation is how long the slide-out lasts before removal.
	Animation time.Duration
}

// DefaultTimings matches the built-in configuration defaults.
func DefaultTimings() Timings {
	return Timings{
		SlideIn:   DefaultSlideIn,
		Display:   5000 * time.Millisecond,
		Animation: 300 * time.Millisecond,
	}
}

// TimingsFromConfig reads display and animation durations from cfg.
func TimingsFromConfig(cfg *config.Config) Timings {
	t := DefaultTimings()
	if cfg == nil {
		return t
	}
	if d := cfg.NotificationDuration(); d > 0 {
		t.Display = d
	}
	if d := cfg.AnimationDuration(); d >= 0 {
		t.Animation = d
	}
	return t
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func())

// Presenter pushes notifications onto a Stack and arms the three timers of
// each one. Timers of different notifications are independent.
type Presenter struct {
	stack    *Stack
	timings  Timings
	after    AfterFunc
	now      func() time.Time
	onChange func()
	logger   *logging.Logger
}

// PresenterOption configures a Presenter.
type PresenterOption func(*Presenter)

// WithAfterFunc replaces time.AfterFunc.
func WithAfterFunc(after AfterFunc) PresenterOption {
	return func(p *Presenter) {
		p.after = after
	}
}

// WithOnChange sets a callback run after every phase change.
func WithOnChange(f func()) PresenterOption {
	return func(p *Presenter) {
		p.onChange = f
	}
}

// WithClock sets the clock used for CreatedAt.
func WithClock(now func() time.Time) PresenterOption {
	return func(p *Presenter) {
		p.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) PresenterOption {
	return func(p *Presenter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPresenter creates a presenter over stack.
func NewPresenter(stack *Stack, timings Timings, opts ...PresenterOption) *Presenter {
	p := &Presenter{
		stack:   stack,
		timings: timings,
		after:   func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		now:     time.Now,
		logger:  logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stack returns the underlying stack.
func (p *Presenter) Stack() *Stack {
	return p.stack
}

// Notify shows message with the given severity.
func (p *Presenter) Notify(message string, severity Severity) {
	n := p.stack.Push(message, severity, p.now())
	p.logger.WithComponent("notify").Debug("notification shown",
		"id", n.ID,
		"severity", severity.String(),
		"message", message)
	p.changed()

	id := n.ID
	p.after(p.timings.SlideIn, func() {
		if p.stack.Advance(id, PhaseVisible) {
			p.changed()
		}
	})
	p.after(p.timings.Display, func() {
		if p.stack.Advance(id, PhaseLeaving) {
			p.changed()
		}
	})
	p.after(p.timings.Display+p.timings.Animation, func() {
		if p.stack.Remove(id) {
			p.changed()
		}
	})
}

func (p *Presenter) changed() {
	if p.onChange != nil {
		p.onChange()
	}
}
