// Package console renders a detection run to plain writers, for
// non-interactive use.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Iron-Ham/copyguard/internal/notify"
	"github.com/Iron-Ham/copyguard/internal/tui/styles"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 40

// Port collects the result panel and prints it once with Flush.
type Port struct {
	mu sync.Mutex
	w  io.Writer

	icon       string
	label      string
	confidence string
	bar        float64
	raw        string
	visible    bool
	bars       progress.Model
}

// NewPort creates a port that writes the final panel to w.
func NewPort(w io.Writer) *Port {
	return &Port{
		w:    w,
		bars: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(barWidth)),
	}
}

func (p *Port) SetLabel(icon, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.icon, p.label = icon, text
}

func (p *Port) SetConfidence(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confidence = text
}

func (p *Port) SetBarWidth(percent float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar = percent
}

func (p *Port) SetRawOutput(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.raw = text
}

func (p *Port) SetResultVisible(visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = visible
}

// SetTriggerEnabled is a no-op; there is no trigger on the console.
func (p *Port) SetTriggerEnabled(bool) {}

// SetTriggerLabel is a no-op; there is no trigger on the console.
func (p *Port) SetTriggerLabel(string) {}

// Flush prints the result panel if it is visible.
func (p *Port) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.visible {
		return nil
	}

	var b strings.Builder
	label := strings.TrimSpace(p.icon + " " + p.label)
	fmt.Fprintf(&b, "%s %s\n", styles.ResultHeading.Render("Verdict:"), styles.Verdict(p.label).Render(label))
	fmt.Fprintf(&b, "%s %s\n", styles.ResultHeading.Render("Confidence:"), p.confidence)
	fmt.Fprintf(&b, "%s\n\n", p.bars.ViewAs(p.bar/100))
	fmt.Fprintf(&b, "%s\n%s\n", styles.ResultHeading.Render("Raw output:"), p.raw)

	_, err := io.WriteString(p.w, b.String())
	return err
}

// Notifier prints each notification as a single coloured line.
type Notifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewNotifier creates a notifier writing to w.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

// Notify implements analyze.Notifier.
func (n *Notifier) Notify(message string, severity notify.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	line := lipgloss.NewStyle().Foreground(severity.Color()).Bold(true).Render(message)
	_, _ = fmt.Fprintln(n.w, line)
}
