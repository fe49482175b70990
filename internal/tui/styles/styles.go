// Package styles holds the lipgloss palette and styles of the CopyGuard TUI.
package styles

import (
	"github.com/Iron-Ham/copyguard/internal/detector"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple (violet-400)
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red (red-400)
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray (gray-500)

	// Verdict colors
	VerdictSafe       = SecondaryColor
	VerdictSuspicious = WarningColor
	VerdictMalicious  = ErrorColor
	VerdictUnknown    = MutedColor

	// Convenience styles for colors
	Primary = lipgloss.NewStyle().Foreground(PrimaryColor)
	Muted   = lipgloss.NewStyle().Foreground(MutedColor)
	Text    = lipgloss.NewStyle().Foreground(TextColor)

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Header
	Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor).
		MarginBottom(1)

	// Code input
	InputBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor)

	InputBoxFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor)

	// Analyze trigger
	Button = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextColor).
		Background(lipgloss.Color("#6D28D9")).
		Padding(0, 3)

	ButtonFocused = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(PrimaryColor).
			Underline(true).
			Padding(0, 3)

	ButtonDisabled = lipgloss.NewStyle().
			Foreground(MutedColor).
			Background(SurfaceColor).
			Padding(0, 3)

	// Result panel
	ResultBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1).
			MarginTop(1)

	ResultHeading = lipgloss.NewStyle().
			Foreground(MutedColor).
			Bold(true)

	RawOutput = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SurfaceColor)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	// Leaving notifications are drawn faint while they slide out
	NotificationLeaving = lipgloss.NewStyle().Faint(true)
)

// VerdictColor returns the color for a verdict label
func VerdictColor(label string) lipgloss.Color {
	switch detector.ParseVerdict(label) {
	case detector.VerdictSafe:
		return VerdictSafe
	case detector.VerdictSuspicious:
		return VerdictSuspicious
	case detector.VerdictMalicious, detector.VerdictInfected, detector.VerdictError:
		return VerdictMalicious
	default:
		return VerdictUnknown
	}
}

// Verdict returns the style the verdict label is drawn with
func Verdict(label string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(VerdictColor(label))
}
