package tui

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// clipboardWriter copies text to the system clipboard of the user's terminal.
type clipboardWriter func(text string) error

// osc52Clipboard writes an OSC 52 sequence to w. Inside tmux or screen the
// sequence is wrapped so it reaches the outer terminal.
func osc52Clipboard(w io.Writer) clipboardWriter {
	return func(text string) error {
		seq := osc52.New(text)
		switch {
		case os.Getenv("TMUX") != "":
			seq = seq.Tmux()
		case os.Getenv("STY") != "":
			seq = seq.Screen()
		}
		_, err := seq.WriteTo(w)
		return err
	}
}

// systemClipboard uses the local clipboard tool (pbcopy, xclip, wl-copy, ...)
// and falls back when there is none or the session is remote.
func systemClipboard(fallback clipboardWriter) clipboardWriter {
	return func(text string) error {
		if os.Getenv("SSH_TTY") == "" && !clipboard.Unsupported {
			if err := clipboard.WriteAll(text); err == nil {
				return nil
			}
		}
		return fallback(text)
	}
}
