package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, "python", cfg.Editor.Language)
	require.Equal(t, 4, cfg.Editor.TabSpacing)
	require.True(t, cfg.Editor.AllowPasting)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
	require.True(t, cfg.UI.ShowLineNumbers)
	require.NoError(t, cfg.Validate())
}

func TestValidate_TabSpacing(t *testing.T) {
	cfg := Defaults()
	cfg.Editor.TabSpacing = -1

	require.ErrorContains(t, cfg.Validate(), "tab_spacing")
}

func TestValidate_MarkdownStyle(t *testing.T) {
	cfg := Defaults()
	cfg.UI.MarkdownStyle = "neon"

	require.ErrorContains(t, cfg.Validate(), "markdown_style")
}

func TestValidate_ThemeColors(t *testing.T) {
	cfg := Defaults()
	cfg.Theme.FocusBorder = "#64B5F6"
	require.NoError(t, cfg.Validate())

	cfg.Theme.FocusBorder = "blue"
	require.ErrorContains(t, cfg.Validate(), "focus_border")
}

func TestDefaultConfigTemplate_ParsesToDefaults(t *testing.T) {
	// The template comments out values that match the built-in
	// defaults, so parse on top of them.
	cfg := Defaults()
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &cfg))

	require.Equal(t, Defaults(), cfg)
}

func TestWriteDefaultConfig_CreatesFileAndDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "editor:\n  language: go\n  tab_spacing: 2\nui:\n  markdown_style: light\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "go", cfg.Editor.Language)
	require.Equal(t, 2, cfg.Editor.TabSpacing)
	require.Equal(t, "light", cfg.UI.MarkdownStyle)
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor:\n  tab_spacing: -3\n"), 0o600))

	_, err := Load(path)
	require.ErrorContains(t, err, "tab_spacing")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
