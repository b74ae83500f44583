package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/cuh4/codefield/internal/config"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestInitConfig_DefaultsWithoutFile(t *testing.T) {
	resetViper(t)

	// Point the lookup at an empty home so no user config is found and
	// the default file is written there.
	home := t.TempDir()
	t.Setenv("HOME", home)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfgFile = ""
	initConfig()

	require.Equal(t, "python", cfg.Editor.Language)
	require.Equal(t, 4, cfg.Editor.TabSpacing)
	require.NoError(t, cfg.Validate())

	// A default config file should have been created.
	_, err = os.Stat(filepath.Join(home, ".config", "codefield", "config.yaml"))
	require.NoError(t, err)
}

func TestInitConfig_ReadsExplicitFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "editor:\n  language: rust\n  tab_spacing: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfgFile = path
	t.Cleanup(func() { cfgFile = "" })
	initConfig()

	require.Equal(t, "rust", cfg.Editor.Language)
	require.Equal(t, 2, cfg.Editor.TabSpacing)
	// Unset values fall back to defaults.
	require.True(t, cfg.Editor.AllowPasting)
}

func TestWriteDefaultConfig_RoundTripsThroughViper(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	var parsed config.Config
	require.NoError(t, viper.Unmarshal(&parsed))
	require.Equal(t, config.Defaults().Editor.Language, parsed.Editor.Language)
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	require.Equal(t, "1.2.3", rootCmd.Version)
}
