package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSaveThemeColorsCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SaveThemeColors(path, map[string]string{"keyword": "#05f"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	theme, ok := doc["theme"].(map[string]any)
	require.True(t, ok)
	colors, ok := theme["colors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#05f", colors["keyword"])
}

func TestSaveThemeColorsPreservesOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: true\nui:\n  show_status_bar: false\n"), 0644))

	require.NoError(t, SaveThemeColors(path, map[string]string{"comment": "#888"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, true, doc["debug"])
	ui, ok := doc["ui"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, ui["show_status_bar"])
}

func TestSaveThemeColorsWritesBackupWhenFileExisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	original := []byte("debug: false\n")
	require.NoError(t, os.WriteFile(path, original, 0644))

	require.NoError(t, SaveThemeColors(path, map[string]string{"error": "#fff|a00"}))

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, original, backup)
}

func TestSaveThemeColorsOverwritesExistingColors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveThemeColors(path, map[string]string{"keyword": "#05f"}))
	require.NoError(t, SaveThemeColors(path, map[string]string{"keyword": "#f00"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	colors := doc["theme"].(map[string]any)["colors"].(map[string]any)
	assert.Equal(t, "#f00", colors["keyword"])
}
