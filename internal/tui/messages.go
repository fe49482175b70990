package tui

import (
	"github.com/Iron-Ham/copyguard/internal/analyze"
)

// Port messages. The controller runs outside the event loop, so each UI
// change arrives as a message and is applied in Update.

// labelMsg sets the verdict label
type labelMsg struct {
	icon string
	text string
}

// confidenceMsg sets the confidence text
type confidenceMsg string

// barMsg sets the confidence bar fill, 0 to 100
type barMsg float64

// rawOutputMsg sets the raw output panel
type rawOutputMsg string

// resultVisibleMsg shows or hides the result panel
type resultVisibleMsg bool

// triggerEnabledMsg enables or disables the analyze trigger
type triggerEnabledMsg bool

// triggerLabelMsg sets the analyze trigger label
type triggerLabelMsg string

// notificationsChangedMsg is sent whenever a notification changes phase
type notificationsChangedMsg struct{}

// submitDoneMsg is sent when a submission returns
type submitDoneMsg struct {
	state analyze.State
}

// startupMsg runs the startup checks once the program is running
type startupMsg struct{}
