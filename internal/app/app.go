// Package app contains the root application model.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"github.com/cuh4/codefield/internal/config"
	"github.com/cuh4/codefield/internal/editor"
	"github.com/cuh4/codefield/internal/keys"
	"github.com/cuh4/codefield/internal/log"
	"github.com/cuh4/codefield/internal/ui/codefield"
	"github.com/cuh4/codefield/internal/ui/styles"
)

// FieldChangedMsg is emitted whenever the buffer value changes.
type FieldChangedMsg struct {
	Value string
}

// FieldFocusMsg is emitted whenever the field gains or loses focus.
type FieldFocusMsg struct {
	Focused bool
}

// configReloadedMsg carries a freshly loaded config after the file
// changed on disk.
type configReloadedMsg struct {
	cfg config.Config
	err error
}

// Model is the root application state.
type Model struct {
	field   codefield.Model
	keys    keys.KeyMap
	help    help.Model
	cfg     config.Config
	width   int
	height  int
	status  string
	showBar bool

	configPath string
	reload     <-chan struct{}

	// Debug log tail, shown under the help line when a listener is
	// attached.
	logListener *log.LogListener
	lastLog     string
}

// New creates the application model. configPath and reloadCh may be
// zero when hot reload is disabled.
func New(cfg config.Config, initialText, configPath string, reloadCh <-chan struct{}) Model {
	return Model{
		field:      newField(cfg, initialText),
		keys:       keys.DefaultKeyMap(),
		help:       help.New(),
		cfg:        cfg,
		width:      80,
		height:     24,
		showBar:    cfg.UI.ShowStatusBar,
		configPath: configPath,
		reload:     reloadCh,
	}
}

func newField(cfg config.Config, text string) codefield.Model {
	tabWidth := cfg.Editor.TabSpacing
	if tabWidth == 0 {
		tabWidth = -1
	}

	var layout editor.ShiftLayout
	if len(cfg.Editor.ShiftMapping) > 0 {
		layout = editor.ShiftLayout(cfg.Editor.ShiftMapping)
	}

	return codefield.New(codefield.Config{
		Language:         cfg.Editor.Language,
		MarkdownStyle:    cfg.UI.MarkdownStyle,
		TabWidth:         tabWidth,
		AllowPasting:     cfg.Editor.AllowPasting,
		ShowLanguageText: cfg.UI.ShowLanguageText,
		ShowLineNumbers:  cfg.UI.ShowLineNumbers,
		ShowFocusBorder:  cfg.UI.ShowFocusBorder,
		ShiftLayout:      layout,
		Text:             text,
		OnChange:         func(v string) tea.Msg { return FieldChangedMsg{Value: v} },
		OnFocus:          func(f bool) tea.Msg { return FieldFocusMsg{Focused: f} },
	})
}

// AttachLogListener enables the debug log tail. The listener feeds
// the most recent log entry into the view.
func (m *Model) AttachLogListener(l *log.LogListener) {
	m.logListener = l
}

// Init starts listening for config reloads and log events.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForReload()}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// waitForReload blocks on the watcher channel and loads the config
// when it fires.
func (m Model) waitForReload() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	ch := m.reload
	path := m.configPath
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		cfg, err := config.Load(path)
		return configReloadedMsg{cfg: cfg, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.field.SetWidth(msg.Width)
		return m, nil

	case FieldChangedMsg:
		line, col := m.field.Position()
		m.status = fmt.Sprintf("%d chars · Ln %d, Col %d", len([]rune(msg.Value)), line, col)
		return m, nil

	case FieldFocusMsg:
		if msg.Focused {
			m.status = "editing"
		} else {
			m.status = "view mode"
		}
		return m, nil

	case configReloadedMsg:
		return m.applyReload(msg)

	case log.LogEvent:
		m.lastLog = strings.TrimRight(msg.Payload, "\n")
		if m.logListener != nil {
			return m, m.logListener.Listen()
		}
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.field, cmd = m.field.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, even while editing.
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.field.Focused() {
		var cmd tea.Cmd
		m.field, cmd = m.field.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus):
		m.field.Focus()
		m.status = "editing"
		return m, nil
	case key.Matches(msg, m.keys.ToggleStatus):
		m.showBar = !m.showBar
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

func (m Model) applyReload(msg configReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatConfig, "config reload failed", msg.err, "path", m.configPath)
		m.status = "config reload failed"
		return m, m.waitForReload()
	}

	log.Info(log.CatConfig, "config reloaded", "path", m.configPath)

	text := m.field.Value()
	focused := m.field.Focused()

	m.cfg = msg.cfg
	m.showBar = msg.cfg.UI.ShowStatusBar
	styles.Apply(styles.Theme{
		FocusBorder:  msg.cfg.Theme.FocusBorder,
		LanguageText: msg.cfg.Theme.LanguageText,
		LineNumbers:  msg.cfg.Theme.LineNumbers,
	})

	// Rebuild the field with the new settings, preserving content and
	// focus.
	m.field = newField(msg.cfg, text)
	m.field.SetWidth(m.width)
	if focused {
		m.field.Focus()
	}
	m.status = "config reloaded"

	return m, m.waitForReload()
}

// View renders the field, status bar, and help footer.
func (m Model) View() string {
	sections := []string{m.field.View()}

	if m.showBar {
		sections = append(sections, m.statusBar())
	}
	sections = append(sections, styles.HelpStyle.Render(m.help.View(m.keys)))

	if m.logListener != nil && m.lastLog != "" {
		w := m.width
		if w < 1 {
			w = 1
		}
		sections = append(sections, styles.HelpStyle.Render(truncate.StringWithTail(m.lastLog, uint(w), "…")))
	}

	// zone.Scan strips the zone markers and records where the field
	// landed so mouse clicks can be resolved.
	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) statusBar() string {
	line, col := m.field.Position()
	left := fmt.Sprintf("%s  Ln %d, Col %d", strings.ToUpper(m.field.Language()), line, col)
	if m.status != "" {
		left += "  " + m.status
	}

	w := m.width
	if w < 1 {
		w = 1
	}
	return styles.StatusBarStyle.Render(truncate.StringWithTail(left, uint(w), "…"))
}
