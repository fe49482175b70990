package tui

import (
	"github.com/Iron-Ham/copyguard/internal/analyze"
	"github.com/Iron-Ham/copyguard/internal/notify"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgConfigIncomplete is shown at startup when the configuration has problems.
const MsgConfigIncomplete = "Warning: configuration is incomplete!"

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		func() tea.Msg { return startupMsg{} },
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case startupMsg:
		if m.cfg != nil && !m.cfg.Valid() {
			m.presenter.Notify(MsgConfigIncomplete, notify.Warning)
		}
		return m, nil

	case notificationsChangedMsg:
		// Notifications are read from the stack in View
		return m, nil

	case labelMsg:
		m.icon, m.label = msg.icon, msg.text
		return m, nil

	case confidenceMsg:
		m.confidence = string(msg)
		return m, nil

	case barMsg:
		return m, m.bar.SetPercent(analyze.ClampConfidence(float64(msg)) / 100)

	case rawOutputMsg:
		m.raw.SetContent(string(msg))
		m.raw.GotoTop()
		return m, nil

	case resultVisibleMsg:
		m.resultVisible = bool(msg)
		return m, nil

	case triggerEnabledMsg:
		wasLoading := m.loading()
		m.triggerEnabled = bool(msg)
		if !wasLoading && m.loading() {
			return m, m.spinner.Tick
		}
		return m, nil

	case triggerLabelMsg:
		m.triggerLabel = string(msg)
		return m, nil

	case submitDoneMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		updated, cmd := m.bar.Update(msg)
		if bar, ok := updated.(progress.Model); ok {
			m.bar = bar
		}
		return m, cmd
	}

	return m.updateFocused(msg)
}

// handleKeypress processes keyboard input
func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.ToggleFocus):
		m.toggleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.copyResults()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		m.growInput()
		return m, nil
	}

	if m.focus == focusTrigger {
		if key.Matches(msg, m.keys.Activate) {
			return m.submit()
		}
		// Scroll the raw output while the button has focus
		var cmd tea.Cmd
		m.raw, cmd = m.raw.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the code input
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus != focusInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.growInput()
	return m, cmd
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusTrigger
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

// submit starts a detection run unless one is already in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.loading() || m.ctrl == nil {
		return m, nil
	}
	ctrl, ctx, input := m.ctrl, m.ctx, m.input.Value()
	return m, func() tea.Msg {
		return submitDoneMsg{state: ctrl.Submit(ctx, input)}
	}
}

// copyResults copies the last report to the clipboard.
func (m Model) copyResults() {
	report, ok := m.ctrl.Report()
	if !ok {
		m.presenter.Notify(analyze.MsgNothingToCopy, notify.Warning)
		return
	}
	if err := m.clipboard(report); err != nil {
		m.presenter.Notify(analyze.MsgCopyFailed, notify.Error)
		return
	}
	m.presenter.Notify(analyze.MsgCopied, notify.Success)
}
