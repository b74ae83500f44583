package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockClipboard_Paste(t *testing.T) {
	c := MockClipboard{Content: "hello"}

	got, err := c.Paste()
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

func TestMockClipboard_PasteError(t *testing.T) {
	boom := errors.New("no clipboard")
	c := MockClipboard{Err: boom}

	_, err := c.Paste()
	require.ErrorIs(t, err, boom)
}

func TestSanitize_StripsCarriageReturns(t *testing.T) {
	require.Equal(t, "a\nb\n", Sanitize("a\r\nb\r\n"))
	require.Equal(t, "plain", Sanitize("plain"))
}

func TestPasteCmd_PlatformCommands(t *testing.T) {
	tests := []struct {
		goos string
		args []string
	}{
		{"darwin", []string{"pbpaste"}},
		{"windows", []string{"powershell", "-NoProfile", "-Command", "Get-Clipboard"}},
		{"linux", []string{"xclip", "-selection", "clipboard", "-o"}},
		{"freebsd", []string{"xclip", "-selection", "clipboard", "-o"}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.args, pasteCmd(tt.goos).Args, tt.goos)
	}
}
