package logoverlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pym-editor/pym/internal/log"
	"github.com/pym-editor/pym/internal/ui/colorresolve"
)

func newTestModel() Model {
	return New(colorresolve.NewResolver(map[string]string{}))
}

func TestNewStartsHidden(t *testing.T) {
	m := newTestModel()
	require.False(t, m.Visible())
	require.Equal(t, log.LevelDebug, m.minLevel)
}

func TestToggleShowsAndHides(t *testing.T) {
	m := newTestModel()
	m.Toggle()
	assert.True(t, m.Visible())
	m.Toggle()
	assert.False(t, m.Visible())
}

func TestAppendAccumulatesEntries(t *testing.T) {
	m := newTestModel()
	m.Append("2026-01-01T00:00:00 [INFO] [ui] one")
	m.Append("2026-01-01T00:00:01 [ERROR] [ui] two")
	assert.Equal(t, []string{
		"2026-01-01T00:00:00 [INFO] [ui] one",
		"2026-01-01T00:00:01 [ERROR] [ui] two",
	}, m.entries)
}

func TestAppendDropsOldestPastCap(t *testing.T) {
	m := newTestModel()
	for i := 0; i < maxEntries+10; i++ {
		m.Append("entry")
	}
	assert.Len(t, m.entries, maxEntries)
}

func TestOverlayHiddenReturnsBackgroundUnchanged(t *testing.T) {
	m := newTestModel()
	assert.Equal(t, "background", m.Overlay("background"))
}

func TestLevelFilterHidesBelowMinLevel(t *testing.T) {
	m := newTestModel()
	m.SetSize(80, 24)
	m.Append("2026-01-01T00:00:00 [DEBUG] [ui] noisy")
	m.Append("2026-01-01T00:00:01 [ERROR] [ui] boom")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})

	filtered := m.filteredEntries()
	require.Len(t, filtered, 1)
	assert.Contains(t, filtered[0], "boom")
}

func TestClearEmptiesEntries(t *testing.T) {
	m := newTestModel()
	m.SetSize(80, 24)
	m.Append("2026-01-01T00:00:00 [INFO] [ui] one")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})

	assert.Empty(t, m.entries)
}

func TestEscCloses(t *testing.T) {
	m := newTestModel()
	m.SetSize(80, 24)
	m.Toggle()
	require.True(t, m.Visible())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})

	assert.False(t, m.Visible())
}

func TestWindowSizeMsgResizesViewport(t *testing.T) {
	m := newTestModel()
	m.Toggle()

	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 100, m.width)
	assert.Equal(t, 40, m.height)
}

func TestLevelOfRecognizesTags(t *testing.T) {
	assert.Equal(t, log.LevelError, levelOf("... [ERROR] ..."))
	assert.Equal(t, log.LevelWarn, levelOf("... [WARN] ..."))
	assert.Equal(t, log.LevelInfo, levelOf("... [INFO] ..."))
	assert.Equal(t, log.LevelDebug, levelOf("... [DEBUG] ..."))
	assert.Equal(t, log.LevelDebug, levelOf("no level tag here"))
}
