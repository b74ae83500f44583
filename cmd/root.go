package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cuh4/codefield/internal/app"
	"github.com/cuh4/codefield/internal/config"
	"github.com/cuh4/codefield/internal/log"
	"github.com/cuh4/codefield/internal/ui/styles"
	"github.com/cuh4/codefield/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugMode bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "codefield [file]",
	Short:   "A terminal code entry field with syntax highlighting",
	Long: `A terminal text entry widget that renders its buffer as a highlighted
code block while you type. Optionally loads initial content from a file.`,
	Args:    cobra.MaximumNArgs(1),
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/codefield/config.yaml)")
	rootCmd.Flags().StringP("language", "l", "",
		"language tag for syntax highlighting")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false,
		"write debug logs to codefield.log")

	_ = viper.BindPFlag("editor.language", rootCmd.Flags().Lookup("language"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("editor.language", defaults.Editor.Language)
	viper.SetDefault("editor.tab_spacing", defaults.Editor.TabSpacing)
	viper.SetDefault("editor.allow_pasting", defaults.Editor.AllowPasting)
	viper.SetDefault("ui.show_language_text", defaults.UI.ShowLanguageText)
	viper.SetDefault("ui.show_line_numbers", defaults.UI.ShowLineNumbers)
	viper.SetDefault("ui.show_focus_border", defaults.UI.ShowFocusBorder)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .codefield/config.yaml (current directory)
		// 2. ~/.config/codefield/config.yaml (user config)
		if _, err := os.Stat(".codefield/config.yaml"); err == nil {
			viper.SetConfigFile(".codefield/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "codefield"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at
		// ~/.config/codefield/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "codefield", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	var logListener *log.LogListener
	if debugMode || os.Getenv("CODEFIELD_DEBUG") != "" {
		cleanup, err := log.Init("codefield.log")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		logListener = log.NewListener(ctx)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var initialText string
	if len(args) == 1 {
		data, err := os.ReadFile(args[0]) //nolint:gosec // G304: user-supplied file to edit
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		initialText = string(data)
	}

	styles.Apply(styles.Theme{
		FocusBorder:  cfg.Theme.FocusBorder,
		LanguageText: cfg.Theme.LanguageText,
		LineNumbers:  cfg.Theme.LineNumbers,
	})

	// Global zone manager for mouse click detection.
	zone.NewGlobal()
	defer zone.Close()

	// Watch the config file so theme and editor settings hot reload.
	var reloadCh <-chan struct{}
	configFilePath := viper.ConfigFileUsed()
	if configFilePath != "" {
		if w, err := watcher.New(watcher.DefaultConfig(configFilePath)); err == nil {
			if ch, startErr := w.Start(); startErr == nil {
				reloadCh = ch
				defer func() { _ = w.Stop() }()
			} else {
				_ = w.Stop()
			}
		}
		// Hot reload is best effort - the app works without it.
	}

	model := app.New(cfg, initialText, configFilePath, reloadCh)
	if logListener != nil {
		model.AttachLogListener(logListener)
	}
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
