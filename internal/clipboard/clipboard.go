// Package clipboard provides access to the system clipboard for paste
// support in the code field.
package clipboard

import (
	"os/exec"
	"runtime"
	"strings"
)

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Paste() (string, error)
}

// SystemClipboard implements Clipboard using the system clipboard.
type SystemClipboard struct{}

// Paste reads text from the system clipboard.
func (SystemClipboard) Paste() (string, error) {
	out, err := pasteCmd(runtime.GOOS).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// pasteCmd returns the platform's clipboard read command.
func pasteCmd(goos string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("pbpaste")
	case "windows":
		return exec.Command("powershell", "-NoProfile", "-Command", "Get-Clipboard")
	default:
		return exec.Command("xclip", "-selection", "clipboard", "-o")
	}
}

// MockClipboard is a fixed-content clipboard for testing.
type MockClipboard struct {
	Content string
	Err     error
}

// Paste returns the configured content.
func (m MockClipboard) Paste() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Content, nil
}

// Sanitize strips carriage returns from pasted text. Windows line
// endings would otherwise end up inside the buffer.
func Sanitize(text string) string {
	return strings.ReplaceAll(text, "\r", "")
}
