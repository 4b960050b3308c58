// Package clipboard copies citations to the system clipboard.
//
// Native helpers (pbcopy, wl-copy, xclip, xsel) are preferred. When none is
// installed, [CopyTerminal] can emit an OSC 52 escape sequence so terminals
// that support it (including over SSH) place the text on the local clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrClipboardUnavailable is returned when no clipboard helper is installed.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// lookPath is replaced in tests.
var lookPath = exec.LookPath

type helper struct {
	name string
	args []string
}

func helpers(goos string) []helper {
	switch goos {
	case "darwin":
		return []helper{{name: "pbcopy"}}
	case "linux", "freebsd", "openbsd":
		return []helper{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
		}
	case "windows":
		return []helper{{name: "clip"}}
	default:
		return nil
	}
}

func findHelper(goos string) (helper, bool) {
	for _, h := range helpers(goos) {
		if goos == "linux" && h.name == "wl-copy" && os.Getenv("WAYLAND_DISPLAY") == "" {
			continue
		}
		if _, err := lookPath(h.name); err == nil {
			return h, true
		}
	}
	return helper{}, false
}

func getClipboardCommand() (*exec.Cmd, error) {
	h, ok := findHelper(runtime.GOOS)
	if !ok {
		return nil, ErrClipboardUnavailable
	}
	return exec.Command(h.name, h.args...), nil
}

// Copy copies text to the system clipboard using a native helper.
// Returns ErrClipboardUnavailable if no helper is installed.
func Copy(text string) error {
	cmd, err := getClipboardCommand()
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", cmd.Args[0], err, msg)
		}
		return fmt.Errorf("%s: %w", cmd.Args[0], err)
	}
	return nil
}

// CopyTerminal writes text to w as an OSC 52 clipboard sequence. Inside tmux
// or screen the sequence is wrapped for passthrough.
func CopyTerminal(w io.Writer, text string) error {
	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(os.Getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(w)
	return err
}

// CopyAny tries Copy and falls back to CopyTerminal on w. The returned method
// names how the text was copied ("native" or "osc52").
func CopyAny(w io.Writer, text string) (method string, err error) {
	err = Copy(text)
	if err == nil {
		return "native", nil
	}
	if !errors.Is(err, ErrClipboardUnavailable) || w == nil {
		return "", err
	}
	if err := CopyTerminal(w, text); err != nil {
		return "", err
	}
	return "osc52", nil
}
