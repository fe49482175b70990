package tui

import (
	"context"

	"github.com/Iron-Ham/copyguard/internal/analyze"
	"github.com/Iron-Ham/copyguard/internal/config"
	"github.com/Iron-Ham/copyguard/internal/notify"
	"github.com/Iron-Ham/copyguard/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
)

// Layout constants
const (
	minInputHeight = 10 // Code input never shrinks below this
	maxInputHeight = 30 // Code input stops growing here
	rawHeight      = 8  // Raw output viewport height
	defaultWidth   = 80 // Used until the first WindowSizeMsg
	maxBarWidth    = 60

	// Lines used by everything except the input: header, button, result panel, help
	chromeHeight = 22
)

type focusArea int

const (
	focusInput focusArea = iota
	focusTrigger
)

// Model holds the TUI application state
type Model struct {
	// Core components
	ctx       context.Context
	cfg       *config.Config
	ctrl      *analyze.Controller
	presenter *notify.Presenter
	clipboard clipboardWriter

	// Widgets
	input   textarea.Model
	spinner spinner.Model
	bar     progress.Model
	raw     viewport.Model
	help    help.Model
	keys    KeyMap

	// UI state
	focus    focusArea
	width    int
	height   int
	quitting bool

	// Result panel, as last set through the port
	icon           string
	label          string
	confidence     string
	resultVisible  bool
	triggerEnabled bool
	triggerLabel   string
}

// NewModel creates a new TUI model
func NewModel(ctx context.Context, cfg *config.Config, ctrl *analyze.Controller, presenter *notify.Presenter, clipboard clipboardWriter) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	input := textarea.New()
	input.Placeholder = "Paste your code here..."
	input.CharLimit = 0
	input.MaxHeight = maxInputHeight
	input.ShowLineNumbers = true
	input.SetWidth(defaultWidth - 4)
	input.SetHeight(minInputHeight)
	input.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.Primary

	bar := progress.New(
		progress.WithGradient(string(styles.VerdictMalicious), string(styles.VerdictSafe)),
		progress.WithoutPercentage(),
		progress.WithWidth(maxBarWidth),
	)

	raw := viewport.New(defaultWidth-6, rawHeight)
	raw.Style = styles.RawOutput

	keyHelp := help.New()
	keyHelp.Styles.ShortKey = styles.HelpKey
	keyHelp.Styles.FullKey = styles.HelpKey

	return Model{
		ctx:            ctx,
		cfg:            cfg,
		ctrl:           ctrl,
		presenter:      presenter,
		clipboard:      clipboard,
		input:          input,
		spinner:        sp,
		bar:            bar,
		raw:            raw,
		help:           keyHelp,
		keys:           DefaultKeyMap(),
		focus:          focusInput,
		triggerEnabled: true,
		triggerLabel:   analyze.TriggerLabel,
	}
}

// loading reports whether a request is in flight
func (m Model) loading() bool {
	return !m.triggerEnabled
}

// contentWidth returns the usable width of the terminal
func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

// resize fits every widget to the terminal
func (m *Model) resize() {
	w := m.contentWidth()
	m.input.SetWidth(max(20, w-4))
	m.raw.Width = max(20, w-6)
	m.bar.Width = min(maxBarWidth, max(10, w-20))
	m.help.Width = w
	m.growInput()
}

// growInput sizes the code input to its content, between minInputHeight
// and maxInputHeight lines, and never taller than the terminal allows.
func (m *Model) growInput() {
	h := m.input.LineCount() + 1
	h = max(minInputHeight, min(maxInputHeight, h))
	if m.height > 0 {
		h = min(h, max(3, m.height-chromeHeight))
	}
	if h != m.input.Height() {
		m.input.SetHeight(h)
	}
}
