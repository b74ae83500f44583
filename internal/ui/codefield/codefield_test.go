package codefield

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/cuh4/codefield/internal/clipboard"
	"github.com/cuh4/codefield/internal/editor"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	// Deterministic output regardless of the test terminal.
	termenv.SetDefaultOutput(termenv.NewOutput(os.Stdout, termenv.WithProfile(termenv.Ascii)))
	os.Exit(m.Run())
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type changedMsg struct{ value string }

type focusMsg struct{ focused bool }

func newTestField(cfg Config) Model {
	if cfg.MarkdownStyle == "" {
		cfg.MarkdownStyle = "dark"
	}
	return New(cfg)
}

func TestNew_InitialText(t *testing.T) {
	m := newTestField(Config{Text: "print('hi')", Language: "python"})

	require.Equal(t, "print('hi')", m.Value())
	require.Equal(t, len([]rune("print('hi')")), m.Cursor())
	require.False(t, m.Focused())
}

func TestUpdate_IgnoresKeysWhenBlurred(t *testing.T) {
	m := newTestField(Config{})

	m, _ = m.Update(keyRunes("x"))
	require.Equal(t, "", m.Value())
}

func TestUpdate_TypingWhenFocused(t *testing.T) {
	m := newTestField(Config{})
	m.Focus()

	m, _ = m.Update(keyRunes("hi"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(keyRunes("there"))

	require.Equal(t, "hi\nthere", m.Value())
}

func TestUpdate_SpaceAndBackspace(t *testing.T) {
	m := newTestField(Config{Text: "ab"})
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, "ab ", m.Value())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, "ab", m.Value())
}

func TestUpdate_TabInsertsSpaces(t *testing.T) {
	m := newTestField(Config{})
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, strings.Repeat(" ", DefaultTabWidth), m.Value())
}

func TestUpdate_TabWidthDisabled(t *testing.T) {
	m := newTestField(Config{TabWidth: -1})
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "", m.Value())
}

func TestUpdate_CtrlWordOps(t *testing.T) {
	m := newTestField(Config{Text: "foo bar baz"})
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	require.Equal(t, "foo bar", m.Value())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	cursorBefore := m.Cursor()
	m, _ = m.Update(keyRunes("X"))
	require.Equal(t, cursorBefore+1, m.Cursor())
}

func TestUpdate_EscapeBlursAndEmitsFocus(t *testing.T) {
	m := newTestField(Config{
		OnFocus: func(focused bool) tea.Msg { return focusMsg{focused} },
	})
	m.Focus()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	require.False(t, m.Focused())
	require.NotNil(t, cmd)
	require.Equal(t, focusMsg{focused: false}, cmd())
}

func TestUpdate_OnChangeEmitsNewValue(t *testing.T) {
	m := newTestField(Config{
		OnChange: func(v string) tea.Msg { return changedMsg{v} },
	})
	m.Focus()

	m, cmd := m.Update(keyRunes("a"))
	require.NotNil(t, cmd)
	require.Equal(t, changedMsg{value: "a"}, cmd())

	// Pure cursor movement does not emit a change.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	require.Nil(t, cmd)
}

func TestUpdate_PasteAllowed(t *testing.T) {
	m := newTestField(Config{
		AllowPasting: true,
		Clipboard:    clipboard.MockClipboard{Content: "x = 1\r\n"},
	})
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	require.Equal(t, "x = 1\n", m.Value())
}

func TestUpdate_BracketedPasteRespectsGate(t *testing.T) {
	allowed := newTestField(Config{AllowPasting: true})
	allowed.Focus()
	allowed, _ = allowed.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\r\nb"), Paste: true})
	require.Equal(t, "a\nb", allowed.Value())

	denied := newTestField(Config{})
	denied.Focus()
	denied, _ = denied.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("nope"), Paste: true})
	require.Equal(t, "", denied.Value())
}

func TestUpdate_PasteDisallowed(t *testing.T) {
	m := newTestField(Config{
		Clipboard: clipboard.MockClipboard{Content: "nope"},
	})
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	require.Equal(t, "", m.Value())
}

func TestPosition(t *testing.T) {
	m := newTestField(Config{Text: "ab\ncd"})

	line, col := m.Position()
	require.Equal(t, 2, line)
	require.Equal(t, 3, col)

	m.ed = editor.New(editor.Config{})
	line, col = m.Position()
	require.Equal(t, 1, line)
	require.Equal(t, 1, col)
}

func TestView_ShowsChrome(t *testing.T) {
	m := newTestField(Config{
		Text:             "a = 1\nb = 2",
		Language:         "python",
		ShowLanguageText: true,
		ShowLineNumbers:  true,
		ShowFocusBorder:  true,
	})
	m.SetWidth(60)

	out := ansi.Strip(m.View())
	require.Contains(t, out, "PYTHON")
	require.Contains(t, out, "1")
	require.Contains(t, out, "2")
	require.Contains(t, out, "a = 1")
}

func TestView_EmptyBufferStillRenders(t *testing.T) {
	m := newTestField(Config{Language: "python"})
	m.SetWidth(40)

	require.NotEmpty(t, m.View())
}

func TestNew_BuildsRendererUpFront(t *testing.T) {
	m := newTestField(Config{Text: "a = 1", Language: "python"})

	require.NotNil(t, m.renderer)
	require.Equal(t, m.renderWidth(), m.renderer.Width())
}

func TestView_KeepsRendererBuiltOnUpdatePath(t *testing.T) {
	m := newTestField(Config{Text: "a = 1", Language: "python"})
	m.SetWidth(60)

	before := m.renderer
	require.NotNil(t, before)

	// Bubble Tea hands View a copy of the model, so anything View
	// builds is thrown away with the frame. Render through a copy the
	// way a parent model does and check the renderer survives.
	render := func(m Model) string { return m.View() }
	_ = render(m)
	_ = render(m)

	require.Same(t, before, m.renderer)
}

func TestSetWidth_RebuildsRendererForWrapWidth(t *testing.T) {
	m := newTestField(Config{Text: "a = 1", Language: "python"})
	m.SetWidth(60)
	first := m.renderer
	require.NotNil(t, first)

	m.SetWidth(30)
	require.NotSame(t, first, m.renderer)
	require.Equal(t, m.renderWidth(), m.renderer.Width())

	// Same width keeps the existing renderer.
	second := m.renderer
	m.SetWidth(30)
	require.Same(t, second, m.renderer)
}

// scanField renders m through zone.Scan until the zone manager has
// recorded the field's bounds. Registration runs on a worker
// goroutine, so it can take a few passes.
func scanField(t *testing.T, m Model) *zone.ZoneInfo {
	t.Helper()

	var z *zone.ZoneInfo
	for retries := 0; retries < 10; retries++ {
		_ = zone.Scan(m.View())
		z = zone.Get(m.zoneID)
		if z != nil && !z.IsZero() {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, z)
	require.False(t, z.IsZero())
	return z
}

func TestUpdate_MouseClickTogglesFocus(t *testing.T) {
	m := newTestField(Config{
		Text:     "a = 1",
		Language: "python",
		OnFocus:  func(f bool) tea.Msg { return focusMsg{f} },
	})
	m.SetWidth(40)

	z := scanField(t, m)
	click := tea.MouseMsg{
		X:      z.StartX + (z.EndX-z.StartX)/2,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	}

	m, cmd := m.Update(click)
	require.True(t, m.Focused())
	require.NotNil(t, cmd)
	require.Equal(t, focusMsg{focused: true}, cmd())

	// A second click blurs.
	m, cmd = m.Update(click)
	require.False(t, m.Focused())
	require.NotNil(t, cmd)
	require.Equal(t, focusMsg{focused: false}, cmd())
}

func TestUpdate_MouseClickOutsideBoundsIgnored(t *testing.T) {
	m := newTestField(Config{
		Text:    "a = 1",
		OnFocus: func(f bool) tea.Msg { return focusMsg{f} },
	})
	m.SetWidth(40)

	z := scanField(t, m)

	m, cmd := m.Update(tea.MouseMsg{
		X:      z.EndX + 5,
		Y:      z.EndY + 5,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
	require.False(t, m.Focused())
	require.Nil(t, cmd)

	// Releases and other buttons are ignored even inside the field.
	m, cmd = m.Update(tea.MouseMsg{
		X: z.StartX, Y: z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
	require.False(t, m.Focused())
	require.Nil(t, cmd)

	m, cmd = m.Update(tea.MouseMsg{
		X: z.StartX, Y: z.StartY,
		Button: tea.MouseButtonRight,
		Action: tea.MouseActionPress,
	})
	require.False(t, m.Focused())
	require.Nil(t, cmd)
}
