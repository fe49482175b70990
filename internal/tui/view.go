package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Iron-Ham/copyguard/internal/config"
	"github.com/Iron-Ham/copyguard/internal/notify"
	"github.com/Iron-Ham/copyguard/internal/tui/styles"
	"github.com/Iron-Ham/copyguard/internal/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if n := m.renderNotifications(); n != "" {
		sections = append(sections, n)
	}
	sections = append(sections, m.renderInput(), m.renderTrigger())
	if m.resultVisible {
		sections = append(sections, m.renderResult())
	}
	sections = append(sections, styles.HelpBar.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := styles.Title.Render("🛡️  " + config.AppName + " Code Detector")

	var sub []string
	if m.cfg != nil {
		sub = append(sub, "v"+m.cfg.AppVersion)
		if host := endpointHost(m.cfg.EndpointURL); host != "" {
			sub = append(sub, host)
		}
	}
	subtitle := styles.Subtitle.Render(strings.Join(sub, " · "))

	return styles.Header.Width(m.contentWidth()).Render(title + "\n" + subtitle)
}

// renderNotifications draws the visible notifications right-aligned, oldest first.
func (m Model) renderNotifications() string {
	if m.presenter == nil {
		return ""
	}
	visible := m.presenter.Stack().Visible()
	if len(visible) == 0 {
		return ""
	}

	w := m.contentWidth()
	lines := make([]string, 0, len(visible))
	for _, n := range visible {
		style := n.Severity.Style()
		if n.Phase == notify.PhaseLeaving {
			style = styles.NotificationLeaving.Inherit(style)
		}
		text := util.TruncateANSI(n.Message, max(10, w-6))
		lines = append(lines, lipgloss.PlaceHorizontal(w, lipgloss.Right, style.Render(text)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderInput() string {
	box := styles.InputBox
	if m.focus == focusInput {
		box = styles.InputBoxFocused
	}
	return box.Render(m.input.View())
}

func (m Model) renderTrigger() string {
	var button string
	switch {
	case m.loading():
		button = styles.ButtonDisabled.Render(m.spinner.View() + " " + m.triggerLabel)
	case m.focus == focusTrigger:
		button = styles.ButtonFocused.Render(m.triggerLabel)
	default:
		button = styles.Button.Render(m.triggerLabel)
	}

	if m.cfg != nil {
		used := int64(len([]rune(strings.TrimSpace(m.input.Value()))))
		count := fmt.Sprintf("%s / %s characters", humanize.Comma(used), humanize.Comma(int64(m.cfg.MaxInputLength)))
		return lipgloss.JoinHorizontal(lipgloss.Center, button, "  ", styles.Muted.Render(count))
	}
	return button
}

func (m Model) renderResult() string {
	labelText := strings.TrimSpace(m.icon + " " + m.label)

	var b strings.Builder
	b.WriteString(styles.ResultHeading.Render("Verdict: "))
	b.WriteString(styles.Verdict(m.label).Render(labelText))
	b.WriteString("\n")
	b.WriteString(styles.ResultHeading.Render("Confidence: "))
	b.WriteString(styles.Text.Render(m.confidence))
	b.WriteString("\n")
	b.WriteString(m.bar.View())
	b.WriteString("\n\n")
	b.WriteString(styles.ResultHeading.Render("Raw output"))
	b.WriteString("\n")
	b.WriteString(m.raw.View())

	return styles.ResultBox.Width(max(20, m.contentWidth()-2)).Render(b.String())
}

func endpointHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
