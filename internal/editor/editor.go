// Package editor implements the text buffer behind the code field.
//
// The editor owns a mutable character buffer and a single cursor
// index, and consumes logical key events one at a time. It knows
// nothing about terminals, rendering, or any UI framework; the host
// translates its own input events into KeyEvents and displays the
// returned buffer however it likes. All out-of-range cursor requests
// are clamped silently rather than reported - nothing here can fail.
package editor

import (
	"strings"
	"unicode"
)

// Config holds the options for a new Editor.
type Config struct {
	// Text is the initial buffer content. The cursor starts at its end.
	Text string

	// ShiftLayout resolves printable keys pressed with Shift held.
	// Nil selects UKShiftLayout.
	ShiftLayout ShiftLayout

	// TabWidth is the number of spaces inserted when Tab is pressed.
	// Zero disables Tab entirely (the key becomes a no-op).
	TabWidth int
}

// Editor is a text buffer with a cursor index. The zero value is not
// usable; construct with New.
type Editor struct {
	buf      []rune
	cursor   int
	caps     bool
	layout   ShiftLayout
	tabWidth int
}

// New creates an editor seeded with cfg.Text, cursor at the end.
func New(cfg Config) Editor {
	layout := cfg.ShiftLayout
	if layout == nil {
		layout = UKShiftLayout()
	}
	buf := []rune(cfg.Text)
	return Editor{
		buf:      buf,
		cursor:   len(buf),
		layout:   layout,
		tabWidth: cfg.TabWidth,
	}
}

// Handle applies one key event to the buffer and returns the full
// post-edit content. Unrecognized keys leave the buffer untouched.
func (e *Editor) Handle(ev KeyEvent) string {
	switch ev.Key {
	case KeyBackspace:
		if ev.Ctrl {
			e.deleteWordBack()
		} else {
			e.backspace()
		}

	case KeyDelete:
		e.deleteForward()

	case KeyEnter:
		e.insertRune('\n')

	case KeyTab:
		if e.tabWidth > 0 {
			e.InsertString(strings.Repeat(" ", e.tabWidth))
		}

	case KeyLeft:
		if ev.Ctrl {
			e.SetCursor(e.prevWordBoundary())
		} else {
			e.SetCursor(e.cursor - 1)
		}

	case KeyRight:
		if ev.Ctrl {
			e.SetCursor(e.nextWordBoundary())
		} else {
			e.SetCursor(e.cursor + 1)
		}

	case KeyUp:
		if i := lastIndexRune(e.buf[:e.cursor], '\n'); i >= 0 {
			e.SetCursor(i)
		}

	case KeyDown:
		if j := indexRune(e.buf[e.cursor:], '\n'); j >= 0 {
			e.SetCursor(e.cursor + j)
		} else {
			e.SetCursor(len(e.buf))
		}

	case KeyCapsLock:
		e.caps = !e.caps

	case KeyEscape, KeyNumLock:
		// No buffer effect. Focus handling belongs to the host.

	default:
		if ch, ok := e.resolve(ev.Key, ev.Shift); ok {
			e.insertRune(ch)
		}
	}

	return e.Value()
}

// resolve turns a printable key identifier into the character to
// insert, applying the shift layout, keypad normalization, and caps
// state. Returns false for identifiers that produce nothing.
func (e *Editor) resolve(key string, shift bool) (rune, bool) {
	if shift {
		if mapped, ok := e.layout[key]; ok {
			key = mapped
		}
	}

	key = normalizeNumpad(key)
	if key == "" {
		return 0, false
	}

	runes := []rune(key)
	if len(runes) != 1 {
		// Unmapped multi-character identifier (function keys etc).
		return 0, false
	}

	ch := runes[0]
	if e.caps || shift {
		return unicode.ToUpper(ch), true
	}
	return unicode.ToLower(ch), true
}

// InsertString inserts s at the cursor and advances past it. This is
// the paste path; it bypasses layout resolution.
func (e *Editor) InsertString(s string) string {
	for _, r := range s {
		e.insertRune(r)
	}
	return e.Value()
}

func (e *Editor) insertRune(r rune) {
	e.buf = append(e.buf[:e.cursor], append([]rune{r}, e.buf[e.cursor:]...)...)
	e.SetCursor(e.cursor + 1)
}

// backspace removes the character before the cursor. No-op at the
// start of the buffer.
func (e *Editor) backspace() {
	if e.cursor == 0 {
		return
	}
	e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
	e.SetCursor(e.cursor - 1)
}

// deleteForward removes the character at the cursor. No-op at the end
// of the buffer; the cursor does not move.
func (e *Editor) deleteForward() {
	if e.cursor >= len(e.buf) {
		return
	}
	e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
}

// deleteWordBack removes characters back to (and including) the
// previous space, or the whole prefix when there is none.
func (e *Editor) deleteWordBack() {
	stop := 0
	if i := lastIndexRune(e.buf[:e.cursor], ' '); i >= 0 {
		stop = i
	}
	for e.cursor > stop {
		e.backspace()
	}
}

// prevWordBoundary returns the index of the previous space before the
// cursor, or 0.
func (e *Editor) prevWordBoundary() int {
	if i := lastIndexRune(e.buf[:e.cursor], ' '); i >= 0 {
		return i
	}
	return 0
}

// nextWordBoundary returns the index of the next space at or after the
// cursor, or the end of the buffer.
func (e *Editor) nextWordBoundary() int {
	if j := indexRune(e.buf[e.cursor:], ' '); j >= 0 {
		return e.cursor + j + 1
	}
	return len(e.buf)
}

// Value returns the current buffer content.
func (e Editor) Value() string {
	return string(e.buf)
}

// Len returns the buffer length in characters.
func (e Editor) Len() int {
	return len(e.buf)
}

// Cursor returns the insertion index, always within [0, Len].
func (e Editor) Cursor() int {
	return e.cursor
}

// SetCursor moves the insertion index, clamped to [0, Len].
func (e *Editor) SetCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(e.buf) {
		pos = len(e.buf)
	}
	e.cursor = pos
}

// CapsLock reports whether caps lock is active.
func (e Editor) CapsLock() bool {
	return e.caps
}

// TextBeforeCursor returns the buffer content up to the cursor.
func (e Editor) TextBeforeCursor() string {
	return string(e.buf[:e.cursor])
}

// TextAfterCursor returns the buffer content after the cursor.
func (e Editor) TextAfterCursor() string {
	return string(e.buf[e.cursor:])
}

// LineCount returns the number of lines in the buffer. An empty
// buffer counts as one line.
func (e Editor) LineCount() int {
	return strings.Count(string(e.buf), "\n") + 1
}

// SetValue replaces the buffer content and clamps the cursor.
func (e *Editor) SetValue(s string) {
	e.buf = []rune(s)
	e.SetCursor(e.cursor)
}

// Reset clears the buffer and returns the cursor to zero.
func (e *Editor) Reset() {
	e.buf = e.buf[:0]
	e.cursor = 0
}

func indexRune(rs []rune, r rune) int {
	for i, c := range rs {
		if c == r {
			return i
		}
	}
	return -1
}

func lastIndexRune(rs []rune, r rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == r {
			return i
		}
	}
	return -1
}
