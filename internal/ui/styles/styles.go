// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"} // Main/primary text
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Empty-field placeholders

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#42A5F5", Dark: "#64B5F6"} // Focused field border

	// Code field chrome
	LanguageTextColor = lipgloss.AdaptiveColor{Light: "#9E9E9E", Dark: "#9E9E9E"} // Language label above the code
	LineNumberColor   = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FFFFFF"} // Gutter line numbers

	// Status bar
	StatusBarColor     = lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#303030"}
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
)

var (
	// LanguageLabelStyle renders the upper-cased language name above the code.
	LanguageLabelStyle = lipgloss.NewStyle().Foreground(LanguageTextColor)

	// LineNumberStyle renders the gutter. Right-aligned by the caller.
	LineNumberStyle = lipgloss.NewStyle().Foreground(LineNumberColor)

	// PlaceholderStyle renders placeholder text in empty fields.
	PlaceholderStyle = lipgloss.NewStyle().Foreground(TextPlaceholderColor)

	// HelpStyle renders the footer help line.
	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// StatusBarStyle renders the one-line status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextPrimaryColor).
			Background(StatusBarColor).
			Padding(0, 1)
)

// FieldBorderStyle returns the border style for the code field.
// Focused fields use the focus color, mirroring the original widget's
// focus border.
func FieldBorderStyle(focused bool) lipgloss.Style {
	color := BorderDefaultColor
	if focused {
		color = BorderFocusColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color)
}

// Theme carries user color overrides from configuration. Empty fields
// keep the built-in defaults.
type Theme struct {
	FocusBorder  string
	LanguageText string
	LineNumbers  string
}

// Apply installs theme overrides on the package styles. Called once at
// startup and again on config hot-reload.
func Apply(t Theme) {
	if t.FocusBorder != "" {
		BorderFocusColor = lipgloss.AdaptiveColor{Light: t.FocusBorder, Dark: t.FocusBorder}
	}
	if t.LanguageText != "" {
		LanguageTextColor = lipgloss.AdaptiveColor{Light: t.LanguageText, Dark: t.LanguageText}
		LanguageLabelStyle = lipgloss.NewStyle().Foreground(LanguageTextColor)
	}
	if t.LineNumbers != "" {
		LineNumberColor = lipgloss.AdaptiveColor{Light: t.LineNumbers, Dark: t.LineNumbers}
		LineNumberStyle = lipgloss.NewStyle().Foreground(LineNumberColor)
	}
}
