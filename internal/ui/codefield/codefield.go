// Package codefield provides a focusable code entry widget with
// markdown-based syntax highlighting.
package codefield

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/cuh4/codefield/internal/clipboard"
	"github.com/cuh4/codefield/internal/editor"
	"github.com/cuh4/codefield/internal/log"
	"github.com/cuh4/codefield/internal/ui/markdown"
)

// DefaultTabWidth is the number of spaces a Tab press inserts unless
// overridden by configuration.
const DefaultTabWidth = 4

// Config controls the widget's behavior and chrome.
type Config struct {
	// Language tags the code fence and the label above the field.
	Language string

	// MarkdownStyle selects the glamour style ("dark" or "light").
	MarkdownStyle string

	// TabWidth is the number of spaces inserted per Tab press.
	// Zero means DefaultTabWidth; negative disables Tab insertion.
	TabWidth int

	// AllowPasting enables ctrl+v via the system clipboard.
	AllowPasting bool

	ShowLanguageText bool
	ShowLineNumbers  bool
	ShowFocusBorder  bool

	// ShiftLayout overrides the editor's shifted-key table.
	ShiftLayout editor.ShiftLayout

	// Text is the initial buffer content.
	Text string

	// Clipboard supplies paste content. Nil falls back to the system
	// clipboard.
	Clipboard clipboard.Clipboard

	// OnChange, when set, is emitted as a command whenever the buffer
	// value changes.
	OnChange func(value string) tea.Msg

	// OnFocus, when set, is emitted as a command whenever focus is
	// gained or lost.
	OnFocus func(focused bool) tea.Msg
}

// Model is a code entry field driven by key events.
type Model struct {
	cfg     Config
	ed      editor.Editor
	board   clipboard.Clipboard
	focused bool
	width   int

	renderer *markdown.Renderer
	zoneID   string
}

// New creates a code field from cfg.
func New(cfg Config) Model {
	tabWidth := cfg.TabWidth
	switch {
	case tabWidth == 0:
		tabWidth = DefaultTabWidth
	case tabWidth < 0:
		tabWidth = 0
	}

	board := cfg.Clipboard
	if board == nil {
		board = clipboard.SystemClipboard{}
	}

	m := Model{
		cfg: cfg,
		ed: editor.New(editor.Config{
			Text:        cfg.Text,
			ShiftLayout: cfg.ShiftLayout,
			TabWidth:    tabWidth,
		}),
		board:  board,
		width:  80,
		zoneID: zone.NewPrefix() + "codefield",
	}
	m.rebuildRenderer()
	return m
}

// Value returns the current buffer content.
func (m Model) Value() string {
	return m.ed.Value()
}

// SetValue replaces the buffer content.
func (m *Model) SetValue(v string) {
	m.ed.SetValue(v)
	m.syncRenderer()
}

// Cursor returns the rune index of the cursor.
func (m Model) Cursor() int {
	return m.ed.Cursor()
}

// Language returns the configured language tag.
func (m Model) Language() string {
	return m.cfg.Language
}

// Focused returns whether the field receives key input.
func (m Model) Focused() bool {
	return m.focused
}

// Focus enables key input.
func (m *Model) Focus() {
	m.focused = true
}

// Blur disables key input.
func (m *Model) Blur() {
	m.focused = false
}

// SetWidth sets the display width and rebuilds the renderer to match
// the new wrap width.
func (m *Model) SetWidth(w int) {
	if w < 1 {
		w = 1
	}
	if w != m.width {
		m.width = w
		m.syncRenderer()
	}
}

// Width returns the display width.
func (m Model) Width() int {
	return m.width
}

// Update handles key and mouse messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if z := zone.Get(m.zoneID); z == nil || !z.InBounds(msg) {
		return m, nil
	}

	// Clicking the field toggles focus, like tapping in and out of a
	// text input.
	m.focused = !m.focused
	return m, m.focusCmd()
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	before := m.ed.Value()

	// Bracketed paste arrives as a rune batch with the Paste flag set
	// and honors the same gate as ctrl+v.
	if msg.Paste {
		if m.cfg.AllowPasting {
			m.ed.InsertString(clipboard.Sanitize(string(msg.Runes)))
			m.syncRenderer()
			return m, m.changeCmd(before)
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.focused = false
		return m, m.focusCmd()
	case "ctrl+v":
		if !m.cfg.AllowPasting {
			return m, nil
		}
		text, err := m.board.Paste()
		if err != nil {
			log.ErrorErr(log.CatUI, "paste failed", err)
			return m, nil
		}
		m.ed.InsertString(clipboard.Sanitize(text))
		m.syncRenderer()
		return m, m.changeCmd(before)
	case "ctrl+left":
		m.ed.Handle(editor.KeyEvent{Key: editor.KeyLeft, Ctrl: true})
		return m, nil
	case "ctrl+right":
		m.ed.Handle(editor.KeyEvent{Key: editor.KeyRight, Ctrl: true})
		return m, nil
	case "ctrl+backspace", "ctrl+w":
		m.ed.Handle(editor.KeyEvent{Key: editor.KeyBackspace, Ctrl: true})
		m.syncRenderer()
		return m, m.changeCmd(before)
	}

	switch msg.Type {
	case tea.KeyBackspace:
		m.ed.Handle(editor.KeyEvent{Key: editor.KeyBackspace})
	case tea.KeyDelete:
		m.ed.Handle(editor.KeyEvent{Key: editor.KeyDelete})
	case tea.KeyEnter:
		m.ed.Handle(editor.KeyEvent{Key: editor.KeyEnter})
	case tea.KeyTab:
		m.ed.Handle(editor.KeyEvent{Key: editor.KeyTab})
	case tea.KeyLeft:
		m.ed.Handle(editor.KeyEvent{Key: editor.KeyLeft})
	case tea.KeyRight:
		m.ed.Handle(editor.KeyEvent{Key: editor.KeyRight})
	case tea.KeyUp:
		m.ed.Handle(editor.KeyEvent{Key: editor.KeyUp})
	case tea.KeyDown:
		m.ed.Handle(editor.KeyEvent{Key: editor.KeyDown})
	case tea.KeySpace:
		m.ed.InsertString(" ")
	case tea.KeyRunes:
		// The terminal has already resolved shift and layout, so the
		// runes are inserted verbatim rather than going through the
		// editor's key resolution.
		m.ed.InsertString(string(msg.Runes))
	}

	m.syncRenderer()
	return m, m.changeCmd(before)
}

// focusCmd emits the OnFocus callback message, if configured.
func (m Model) focusCmd() tea.Cmd {
	if m.cfg.OnFocus == nil {
		return nil
	}
	focused := m.focused
	return func() tea.Msg {
		return m.cfg.OnFocus(focused)
	}
}

// changeCmd emits the OnChange callback message when the buffer value
// differs from before.
func (m Model) changeCmd(before string) tea.Cmd {
	after := m.ed.Value()
	if m.cfg.OnChange == nil || after == before {
		return nil
	}
	return func() tea.Msg {
		return m.cfg.OnChange(after)
	}
}
