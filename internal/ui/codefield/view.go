package codefield

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/cuh4/codefield/internal/log"
	"github.com/cuh4/codefield/internal/ui/markdown"
	"github.com/cuh4/codefield/internal/ui/styles"
)

// gutterGap separates line numbers from the code body.
const gutterGap = " "

// Position returns the 1-based line and column of the cursor. Columns
// count grapheme clusters, not runes, so combined characters read as
// one column.
func (m Model) Position() (line, col int) {
	before := m.ed.TextBeforeCursor()
	line = strings.Count(before, "\n") + 1

	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	col = uniseg.GraphemeClusterCount(before) + 1
	return line, col
}

// View renders the field: optional language label, optional line
// number gutter, the highlighted code, and a border that reflects
// focus. The whole field is marked as a click zone. Bubble Tea calls
// View on a copy of the model, so nothing here may mutate state; the
// renderer is maintained on the Update path.
func (m Model) View() string {
	body := m.renderBody()

	if m.cfg.ShowLineNumbers {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderGutter(), body)
	}

	border := styles.FieldBorderStyle(m.focused && m.cfg.ShowFocusBorder)
	view := border.Width(m.innerWidth()).Render(body)

	if m.cfg.ShowLanguageText {
		label := styles.LanguageLabelStyle.Render(strings.ToUpper(m.cfg.Language))
		view = lipgloss.JoinVertical(lipgloss.Left, label, view)
	}

	return zone.Mark(m.zoneID, view)
}

// renderBody returns the highlighted code, falling back to the raw
// buffer when the renderer is unavailable.
func (m Model) renderBody() string {
	text := m.ed.Value()

	if m.renderer == nil {
		return text
	}

	out, err := m.renderer.RenderCode(text, m.cfg.Language)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// renderGutter returns right-aligned line numbers for every buffer
// line.
func (m Model) renderGutter() string {
	count := m.ed.LineCount()
	numWidth := runewidth.StringWidth(fmt.Sprintf("%d", count))

	lines := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		lines = append(lines, fmt.Sprintf("%*d", numWidth, i))
	}
	return styles.LineNumberStyle.Render(strings.Join(lines, "\n")) + gutterGap
}

// rebuildRenderer constructs the glamour renderer and its render memo
// for the current wrap width. A failed build leaves the renderer nil
// and the view falls back to the raw buffer.
func (m *Model) rebuildRenderer() {
	r, err := markdown.New(m.renderWidth(), m.cfg.MarkdownStyle)
	if err != nil {
		log.ErrorErr(log.CatRender, "renderer init failed", err, "width", m.renderWidth())
		m.renderer = nil
		return
	}
	m.renderer = r
}

// syncRenderer rebuilds the renderer when the wrap width moved.
// Glamour bakes word wrap into the renderer, and the wrap width also
// moves when the gutter grows a digit. Called from the Update path so
// the renderer survives the frame; View only reads it.
func (m *Model) syncRenderer() {
	if m.renderer == nil || m.renderer.Width() != m.renderWidth() {
		m.rebuildRenderer()
	}
}

func (m Model) innerWidth() int {
	// Two border columns.
	w := m.width - 2
	if w < 1 {
		w = 1
	}
	return w
}

func (m Model) renderWidth() int {
	w := m.innerWidth()
	if m.cfg.ShowLineNumbers {
		w -= runewidth.StringWidth(fmt.Sprintf("%d", m.ed.LineCount())) + len(gutterGap)
	}
	if w < 1 {
		w = 1
	}
	return w
}
