// Package config provides configuration types and defaults for codefield.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/cuh4/codefield/internal/log"
)

// EditorConfig holds text entry behavior options.
type EditorConfig struct {
	// Language tags the code fence for highlighting, e.g. "python".
	Language string `mapstructure:"language" yaml:"language"`

	// TabSpacing is the number of spaces inserted per Tab press.
	// Zero disables Tab insertion.
	TabSpacing int `mapstructure:"tab_spacing" yaml:"tab_spacing"`

	// AllowPasting enables ctrl+v from the system clipboard.
	AllowPasting bool `mapstructure:"allow_pasting" yaml:"allow_pasting"`

	// ShiftMapping overrides the shifted-key table used for raw key
	// events. Keys map to their shifted output, e.g. "3": "£".
	ShiftMapping map[string]string `mapstructure:"shift_mapping" yaml:"shift_mapping"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowLanguageText bool   `mapstructure:"show_language_text" yaml:"show_language_text"`
	ShowLineNumbers  bool   `mapstructure:"show_line_numbers" yaml:"show_line_numbers"`
	ShowFocusBorder  bool   `mapstructure:"show_focus_border" yaml:"show_focus_border"`
	ShowStatusBar    bool   `mapstructure:"show_status_bar" yaml:"show_status_bar"`
	MarkdownStyle    string `mapstructure:"markdown_style" yaml:"markdown_style"` // "dark" (default) or "light"
}

// ThemeConfig holds color overrides. Empty values keep the defaults.
type ThemeConfig struct {
	FocusBorder  string `mapstructure:"focus_border" yaml:"focus_border"`
	LanguageText string `mapstructure:"language_text" yaml:"language_text"`
	LineNumbers  string `mapstructure:"line_numbers" yaml:"line_numbers"`
}

// Config holds all configuration options for codefield.
type Config struct {
	Editor EditorConfig `mapstructure:"editor" yaml:"editor"`
	UI     UIConfig     `mapstructure:"ui" yaml:"ui"`
	Theme  ThemeConfig  `mapstructure:"theme" yaml:"theme"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			Language:     "python",
			TabSpacing:   4,
			AllowPasting: true,
		},
		UI: UIConfig{
			ShowLanguageText: true,
			ShowLineNumbers:  true,
			ShowFocusBorder:  true,
			ShowStatusBar:    true,
			MarkdownStyle:    "dark",
		},
	}
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.Editor.TabSpacing < 0 {
		return fmt.Errorf("editor.tab_spacing must be >= 0, got %d", c.Editor.TabSpacing)
	}

	switch c.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", c.UI.MarkdownStyle)
	}

	colors := map[string]string{
		"theme.focus_border":  c.Theme.FocusBorder,
		"theme.language_text": c.Theme.LanguageText,
		"theme.line_numbers":  c.Theme.LineNumbers,
	}
	for field, value := range colors {
		if value != "" && !hexColorRe.MatchString(value) {
			return fmt.Errorf("%s must be a hex color like \"#64B5F6\", got %q", field, value)
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Codefield Configuration

# Editor behavior
editor:
  language: python      # Language tag for syntax highlighting
  tab_spacing: 4        # Spaces inserted per Tab press (0 disables)
  allow_pasting: true   # Enable ctrl+v from the system clipboard

  # Override the shifted-key table for raw key events.
  # Defaults to a UK layout when omitted.
  # shift_mapping:
  #   "3": "#"
  #   "2": "@"

# UI settings
ui:
  show_language_text: true  # Show the language label above the field
  show_line_numbers: true   # Show the line number gutter
  show_focus_border: true   # Color the border when the field is focused
  show_status_bar: true     # Show cursor position in the status bar
  # markdown_style: dark    # Highlighting style: "dark" (default) or "light"

# Theme overrides (hex colors)
# theme:
#   focus_border: "#64B5F6"
#   language_text: "#9E9E9E"
#   line_numbers: "#FFFFFF"
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
