package tui

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
)

func TestOSC52Clipboard(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("STY", "")

	var buf bytes.Buffer
	if err := osc52Clipboard(&buf)("hello"); err != nil {
		t.Fatalf("copy error = %v", err)
	}
	want := base64.StdEncoding.EncodeToString([]byte("hello"))
	if !strings.Contains(buf.String(), want) {
		t.Errorf("sequence %q does not carry %q", buf.String(), want)
	}
	if !strings.HasPrefix(buf.String(), "\x1b]52;") {
		t.Errorf("sequence %q is not OSC 52", buf.String())
	}
}

func TestOSC52Clipboard_Tmux(t *testing.T) {
	t.Setenv("TMUX", "/tmp/tmux-1000/default,1,0")

	var buf bytes.Buffer
	if err := osc52Clipboard(&buf)("x"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\x1bPtmux;") {
		t.Errorf("sequence %q is not wrapped for tmux", buf.String())
	}
}

func TestSystemClipboard_RemoteUsesFallback(t *testing.T) {
	t.Setenv("SSH_TTY", "/dev/pts/3")

	var got string
	copyText := systemClipboard(func(text string) error {
		got = text
		return nil
	})
	if err := copyText("report"); err != nil {
		t.Fatalf("copy error = %v", err)
	}
	if got != "report" {
		t.Errorf("fallback got %q, want %q", got, "report")
	}
}
