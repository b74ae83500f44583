package editor

import "strings"

// ShiftLayout maps logical key identifiers to the character produced
// when Shift is held. Layouts are plain configuration values passed to
// New; there is no package-level default state to mutate.
type ShiftLayout map[string]string

// UKShiftLayout returns the default Shift mapping, matching a UK
// keyboard. Callers with other layouts supply their own table via
// Config.ShiftLayout.
func UKShiftLayout() ShiftLayout {
	return ShiftLayout{
		"1": "!",
		"2": "\"",
		"3": "£",
		"4": "$",
		"5": "%",
		"6": "^",
		"7": "&",
		"8": "*",
		"9": "(",
		"0": ")",
		"-": "_",
		"=": "+",

		"[":  "{",
		"]":  "}",
		";":  ":",
		"'":  "@",
		"#":  "~",
		",":  "<",
		".":  ">",
		"/":  "?",
		"`":  "¬",
		"\\": "|",
	}
}

// normalizeNumpad maps numeric-keypad key identifiers to the character
// they produce. Keys that produce nothing ("Num Lock") map to the
// empty string; identifiers that are not keypad keys pass through.
func normalizeNumpad(key string) string {
	key = strings.TrimPrefix(key, "Numpad ")

	switch key {
	case "Decimal":
		return "."
	case "Add":
		return "+"
	case "Subtract":
		return "-"
	case "Divide":
		return "/"
	case "Multiply":
		return "*"
	case KeyNumLock:
		return ""
	}
	return key
}
