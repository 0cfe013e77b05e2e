package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pym-editor/pym/internal/buffer"
	"github.com/pym-editor/pym/internal/config"
)

func newTestModel(t *testing.T, lines ...string) *Model {
	t.Helper()
	buf := buffer.New()
	if len(lines) > 0 {
		buf.Insert(strings.Join(lines, "\n")).Execute()
		buf.MoveTo(0, 0)
	}
	m := New(buf, config.Defaults(), "")
	require.Nil(t, m.Init())
	return m
}

func sendKey(m *Model, msg tea.KeyMsg) {
	next, _ := m.Update(msg)
	_ = next.(*Model)
}

func TestTypingEntersInsertAndAppendsText(t *testing.T) {
	m := newTestModel(t, "hi")
	sendKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	sendKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	assert.Equal(t, "Xhi", m.buf.Lines()[0])
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t, "hi")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestExQuitCommandQuits(t *testing.T) {
	m := newTestModel(t, "hi")
	sendKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	sendKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUnknownExCommandNotifiesError(t *testing.T) {
	m := newTestModel(t, "hi")
	sendKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	sendKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("bogus")})
	sendKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.noticeIsError)
	assert.Contains(t, m.notice, "bogus")
}

func TestViewRendersCursorReverseVideo(t *testing.T) {
	m := newTestModel(t, "ab")
	m.width, m.height = 10, 5
	out := m.View()
	assert.Contains(t, out, cursorOn+"a"+cursorOff)
}

func TestRenderStatusLineTruncatesLongNoticeToWidth(t *testing.T) {
	m := newTestModel(t, "hi")
	m.width = 10
	m.notice = "this notice is far longer than the configured terminal width"

	out := m.renderStatusLine()

	assert.Equal(t, 10, ansi.StringWidth(out))
}

func TestExHelpCommandNotifiesBindingSummary(t *testing.T) {
	m := newTestModel(t, "hi")
	sendKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	sendKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("help")})
	sendKey(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.noticeIsError)
	assert.Contains(t, m.notice, "ex command")
}

func TestWindowSizeMsgUpdatesDimensions(t *testing.T) {
	m := newTestModel(t, "hi")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	nm := next.(*Model)
	assert.Equal(t, 80, nm.width)
	assert.Equal(t, 24, nm.height)
}

func newDebugTestModel(t *testing.T, lines ...string) *Model {
	t.Helper()
	buf := buffer.New()
	if len(lines) > 0 {
		buf.Insert(strings.Join(lines, "\n")).Execute()
		buf.MoveTo(0, 0)
	}
	cfg := config.Defaults()
	cfg.Debug = true
	m := New(buf, cfg, "")
	require.Nil(t, m.Init())
	return m
}

func TestCtrlLIgnoredOutsideDebugMode(t *testing.T) {
	m := newTestModel(t, "hi")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	sendKey(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.False(t, m.logOverlay.Visible())
}

func TestCtrlLTogglesOverlayInDebugMode(t *testing.T) {
	m := newDebugTestModel(t, "hi")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	sendKey(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.True(t, m.logOverlay.Visible())

	sendKey(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.False(t, m.logOverlay.Visible())
}

func TestKeysRouteToVisibleOverlayInsteadOfMachine(t *testing.T) {
	m := newDebugTestModel(t, "hi")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	sendKey(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.True(t, m.logOverlay.Visible())

	sendKey(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	assert.Equal(t, "normal", m.machine.Current().Name)

	sendKey(m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.False(t, m.logOverlay.Visible())
}
