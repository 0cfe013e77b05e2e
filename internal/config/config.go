// Package config provides configuration types and defaults for pym.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pym-editor/pym/internal/keyseq"
	"github.com/pym-editor/pym/internal/tracing"
)

// Config holds all configuration options for pym, loaded by cmd/root.go via
// viper with "::" as its key delimiter, so keys that contain "." stay
// literal map keys instead of being parsed as nested paths.
type Config struct {
	Theme     ThemeConfig       `mapstructure:"theme"`
	FileTypes map[string]string `mapstructure:"filetypes"`
	Keymap    map[string]string `mapstructure:"keymap"`
	UI        UIConfig          `mapstructure:"ui"`
	Tracing   tracing.Config    `mapstructure:"tracing"`
	Debug     bool              `mapstructure:"debug"`
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Colors overrides the built-in tag->color table consumed by the color
	// resolver. Keys are syntax/UI tags ("keyword", "string", "comment",
	// "number", "cursor", "statusline", "error", ...); values follow the
	// color tag string format ('#rgb', '#rgb|rgb', or 'x' for default).
	Colors map[string]string `mapstructure:"colors"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`

	// VimMode is retained as a config-surface field, but the core enforces
	// modal editing unconditionally: there is no non-vim mode to switch
	// to. It always reads true.
	VimMode bool `mapstructure:"vim_mode"`
}

// DefaultColors returns the built-in tag->color table.
func DefaultColors() map[string]string {
	return map[string]string{
		"normal":     "x",
		"keyword":    "#05f",
		"string":     "#2a5",
		"comment":    "#888",
		"number":     "#e80",
		"cursor":     "#fff|000",
		"statusline": "#000|eee",
		"error":      "#fff|a00",
		"warn":       "#fa0",
	}
}

// Defaults returns the configuration used when no config file is found and
// no overrides are set.
func Defaults() Config {
	return Config{
		Theme:     ThemeConfig{Colors: DefaultColors()},
		FileTypes: map[string]string{},
		Keymap:    map[string]string{},
		UI: UIConfig{
			ShowStatusBar: true,
			VimMode:       true,
		},
		Tracing: tracing.DefaultConfig(),
		Debug:   false,
	}
}

// ValidateKeymap checks that every rebinding in m parses as a key
// expression. A failure here is non-fatal at startup: cmd/root.go logs the
// returned error as a warning and carries on rather than aborting the
// program.
func ValidateKeymap(m map[string]string) error {
	for name, expr := range m {
		if _, err := keyseq.ParseExpr(expr); err != nil {
			return fmt.Errorf("keymap %q: %w", name, err)
		}
	}
	return nil
}

// DefaultConfigPath returns ~/.config/pym/config.yaml, or "" if the home
// directory can't be resolved.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pym", "config.yaml")
}

// WriteDefaultConfig writes the default configuration to path as YAML,
// creating parent directories as needed.
func WriteDefaultConfig(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	data, err := marshalConfig(Defaults())
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
