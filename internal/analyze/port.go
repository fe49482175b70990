package analyze

import (
	"time"

	"github.com/Iron-Ham/copyguard/internal/notify"
)

// Port is the set of UI capabilities the controller drives. Implementations
// must be safe to call from the goroutine running Submit.
type Port interface {
	// SetLabel shows the verdict. icon is empty for errors.
	SetLabel(icon, text string)
	// SetConfidence shows the confidence text, e.g. "97%".
	SetConfidence(text string)
	// SetBarWidth sets the confidence bar fill, 0 to 100.
	SetBarWidth(percent float64)
	// SetRawOutput shows the raw payload or error details.
	SetRawOutput(text string)
	SetResultVisible(visible bool)
	SetTriggerEnabled(enabled bool)
	SetTriggerLabel(label string)
}

// Notifier shows transient messages.
type Notifier interface {
	Notify(message string, severity notify.Severity)
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// TimerScheduler schedules with time.AfterFunc.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ImmediateScheduler runs f synchronously, ignoring d. Used by
// non-interactive front ends that only render the final state.
type ImmediateScheduler struct{}

// AfterFunc implements Scheduler.
func (ImmediateScheduler) AfterFunc(_ time.Duration, f func()) {
	f()
}
