package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pym-editor/pym/internal/config"
	"github.com/pym-editor/pym/internal/editor"
	"github.com/pym-editor/pym/internal/log"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	viperlib "github.com/spf13/viper"
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
	cfg       config.Config
	debugFlag bool

	// viper is a custom viper instance with "::" as key delimiter instead of ".".
	// This allows color tags like "statusline" to be used as literal map keys
	// in the config file without being interpreted as nested paths.
	viper = viperlib.NewWithOptions(viperlib.KeyDelimiter("::"))
)

var rootCmd = &cobra.Command{
	Use:     "pym [file]",
	Short:   "A modal, vi-like text editor",
	Long:    `pym is a terminal text editor with vi-style modal editing: normal/insert modes, motions, search, and ex commands.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/pym/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug mode with logging (also: PYM_DEBUG=1)")
}

func initConfig() {
	defaults := config.Defaults()
	// Use "::" as path separator since we use a custom key delimiter
	viper.SetDefault("ui::show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui::vim_mode", defaults.UI.VimMode)
	viper.SetDefault("theme::colors", defaults.Theme.Colors)
	viper.SetDefault("tracing::enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing::exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing::sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing::service_name", defaults.Tracing.ServiceName)
	viper.SetDefault("debug", defaults.Debug)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .pym/config.yaml (current directory)
		// 2. ~/.config/pym/config.yaml (user config)
		if _, err := os.Stat(".pym/config.yaml"); err == nil {
			viper.SetConfigFile(".pym/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "pym"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at ~/.config/pym/config.yaml
		var configNotFound viperlib.ConfigFileNotFoundError
		if errors.As(err, &configNotFound) {
			defaultPath := config.DefaultConfigPath()
			if defaultPath == "" {
				defaultPath = ".pym/config.yaml"
			}
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
				log.Info(log.CatConfig, "Config loaded", "path", defaultPath)
			}
			// If write fails, just continue with defaults (no config file)
		}
	} else {
		log.Info(log.CatConfig, "Config loaded", "path", viper.ConfigFileUsed())
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(_ *cobra.Command, args []string) error {
	// Initialize logging if debug mode enabled (via flag or env var)
	debug := os.Getenv("PYM_DEBUG") != "" || debugFlag
	if debug {
		logPath := os.Getenv("PYM_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}

		cleanup, err := log.InitWithTeaLog(logPath, "pym")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()

		log.Info(log.CatConfig, "pym starting", "version", version, "debug", true, "logPath", logPath)
	}
	cfg.Debug = debug

	if err := config.ValidateKeymap(cfg.Keymap); err != nil {
		log.Warn(log.CatConfig, "Invalid keymap entry, ignoring", "error", err.Error())
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	model, err := editor.Open(path, cfg)
	if err != nil {
		return err
	}

	err = editor.Run(model)

	// Log shutdown (only in debug mode - log is initialized)
	if debug {
		if err != nil {
			log.Error(log.CatConfig, "pym shutting down with error", "error", err)
		} else {
			log.Info(log.CatConfig, "pym shutting down")
		}
	}

	return err
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
