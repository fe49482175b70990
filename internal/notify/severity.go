// Package notify keeps the stack of transient notifications and drives each
// one through its slide-in, display and slide-out phases.
package notify

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Severity is the kind of a notification.
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// ParseSeverity maps a name to a Severity. Unknown names are Info.
func ParseSeverity(name string) Severity {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "success":
		return Success
	case "warning", "warn":
		return Warning
	case "error":
		return Error
	default:
		return Info
	}
}

// Color returns the background colour for the severity.
func (s Severity) Color() lipgloss.Color {
	switch s {
	case Success:
		return lipgloss.Color("#10b981")
	case Warning:
		return lipgloss.Color("#f59e0b")
	case Error:
		return lipgloss.Color("#ef4444")
	default:
		return lipgloss.Color("#3b82f6")
	}
}

// Style returns the lipgloss style notifications of this severity are drawn with.
func (s Severity) Style() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(s.Color()).
		Bold(true).
		Padding(0, 2)
}
