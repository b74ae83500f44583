package editor

// Logical key identifiers for non-printable keys. Printable keys use
// the character itself (for letters, the unshifted uppercase form a
// keyboard reports, e.g. "A").
const (
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
	KeyEnter     = "Enter"
	KeyTab       = "Tab"
	KeyLeft      = "Left"
	KeyRight     = "Right"
	KeyUp        = "Up"
	KeyDown      = "Down"
	KeyEscape    = "Escape"
	KeyCapsLock  = "Caps Lock"
	KeyNumLock   = "Num Lock"
)

// KeyEvent is a single keyboard input notification: a logical key
// identifier plus the modifier flags active when it was pressed.
// Events are consumed once by Editor.Handle and never retained.
type KeyEvent struct {
	Key   string
	Shift bool
	Ctrl  bool
}

// Rune builds a key event for a single printable character.
func Rune(r rune) KeyEvent {
	return KeyEvent{Key: string(r)}
}
