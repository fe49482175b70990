package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// programPort implements analyze.Port by sending messages to the running
// program. Calls block until the event loop accepts the message, so the
// order of UI changes is preserved.
type programPort struct {
	send func(tea.Msg)
}

func (p *programPort) SetLabel(icon, text string) {
	p.send(labelMsg{icon: icon, text: text})
}

func (p *programPort) SetConfidence(text string) {
	p.send(confidenceMsg(text))
}

func (p *programPort) SetBarWidth(percent float64) {
	p.send(barMsg(percent))
}

func (p *programPort) SetRawOutput(text string) {
	p.send(rawOutputMsg(text))
}

func (p *programPort) SetResultVisible(visible bool) {
	p.send(resultVisibleMsg(visible))
}

func (p *programPort) SetTriggerEnabled(enabled bool) {
	p.send(triggerEnabledMsg(enabled))
}

func (p *programPort) SetTriggerLabel(label string) {
	p.send(triggerLabelMsg(label))
}
