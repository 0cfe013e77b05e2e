package excmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pym-editor/pym/internal/buffer"
)

func noopAction(_ string) error { return nil }

func TestDispatchByFullName(t *testing.T) {
	tb := NewTable()
	called := false
	tb.Register("write", func(args string) error {
		called = true
		assert.Equal(t, "out.txt", args)
		return nil
	}, nil)

	require.NoError(t, tb.Dispatch("write", "out.txt"))
	assert.True(t, called)
}

func TestDispatchByUnambiguousPrefix(t *testing.T) {
	tb := NewTable()
	tb.Register("quit", noopAction, nil)
	tb.Register("write", noopAction, nil)

	require.NoError(t, tb.Dispatch("w", ""))
	require.NoError(t, tb.Dispatch("wr", ""))
	require.NoError(t, tb.Dispatch("q", ""))
}

func TestDispatchUnknownCommand(t *testing.T) {
	tb := NewTable()
	err := tb.Dispatch("zzz", "")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestAmbiguousPrefixIsUnreachable(t *testing.T) {
	tb := NewTable()
	tb.Register("write", noopAction, nil)
	tb.Register("wq", noopAction, nil)

	err := tb.Dispatch("w", "")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	require.NoError(t, tb.Dispatch("wr", ""))
	require.NoError(t, tb.Dispatch("wq", ""))
}

func TestRegisteringLongerNameKeepsShorterExactNameReachable(t *testing.T) {
	tb := NewTable()
	tb.Register("w", noopAction, nil)
	require.NoError(t, tb.Dispatch("w", ""))

	// Registering "write" does not break the exact full name "w": exact
	// full-name lookups always win over abbreviation ambiguity.
	tb.Register("write", noopAction, nil)
	require.NoError(t, tb.Dispatch("w", ""))
	require.NoError(t, tb.Dispatch("write", ""))
}

func TestParseLineSplitsNameAndArgs(t *testing.T) {
	name, args := ParseLine("edit  foo.txt")
	assert.Equal(t, "edit", name)
	assert.Equal(t, "foo.txt", args)

	name, args = ParseLine("quit")
	assert.Equal(t, "quit", name)
	assert.Equal(t, "", args)
}

func TestCompleteCommandName(t *testing.T) {
	tb := NewTable()
	tb.Register("write", noopAction, nil)
	tb.Register("write-all", noopAction, nil)

	assert.Equal(t, ":write", tb.Complete(":wr"))
}

func TestCompleteArgumentsUsesCommandCompleter(t *testing.T) {
	tb := NewTable()
	tb.Register("edit", noopAction, func(partial string) []string {
		return []string{"foo.txt", "foo.go"}
	})

	assert.Equal(t, ":edit foo.", tb.Complete(":edit foo"))
}

func TestRegisterDefaultsQuitErrorsOnTrailingArgs(t *testing.T) {
	tb := NewTable()
	n := &fakeNotifier{}
	b := &fakeBuffer{}
	RegisterDefaults(tb, b, n)

	err := tb.Dispatch("quit", "now")
	assert.True(t, errors.Is(err, ErrTrailingCharacters))
	assert.False(t, n.quit)
}

func TestRegisterDefaultsQuitCallsNotifierQuit(t *testing.T) {
	tb := NewTable()
	n := &fakeNotifier{}
	b := &fakeBuffer{}
	RegisterDefaults(tb, b, n)

	require.NoError(t, tb.Dispatch("quit", ""))
	assert.True(t, n.quit)
}

func TestRegisterDefaultsEditNotifiesOnNoFileName(t *testing.T) {
	tb := NewTable()
	n := &fakeNotifier{}
	b := &fakeBuffer{loadErr: buffer.ErrNoFileName}
	RegisterDefaults(tb, b, n)

	require.NoError(t, tb.Dispatch("edit", ""))
	assert.True(t, n.isError)
}

func TestRegisterDefaultsHighlightNotifiesMatchCount(t *testing.T) {
	tb := NewTable()
	n := &fakeNotifier{}
	b := &fakeBuffer{highlightCount: 3}
	RegisterDefaults(tb, b, n)

	require.NoError(t, tb.Dispatch("highlight", ""))
	assert.Equal(t, 1, b.highlightCalls)
	assert.False(t, n.isError)
	assert.Equal(t, "3 match(es) highlighted", n.message)
}

func TestRegisterDefaultsHighlightNotifiesOnNoActiveSearch(t *testing.T) {
	tb := NewTable()
	n := &fakeNotifier{}
	b := &fakeBuffer{highlightErr: buffer.ErrNoActiveSearch}
	RegisterDefaults(tb, b, n)

	require.NoError(t, tb.Dispatch("highlight", ""))
	assert.True(t, n.isError)
}

func TestRegisterDefaultsNoHighlightClears(t *testing.T) {
	tb := NewTable()
	n := &fakeNotifier{}
	b := &fakeBuffer{}
	RegisterDefaults(tb, b, n)

	require.NoError(t, tb.Dispatch("nohighlight", ""))
	assert.Equal(t, 1, b.clearCalls)
}

type fakeNotifier struct {
	quit    bool
	message string
	isError bool
}

func (f *fakeNotifier) Quit() { f.quit = true }
func (f *fakeNotifier) Notify(message string, isError bool) {
	f.message, f.isError = message, isError
}

type fakeBuffer struct {
	loadErr, writeErr, highlightErr error
	highlightCount                  int
	highlightCalls, clearCalls      int
}

func (f *fakeBuffer) LoadFile(string) error  { return f.loadErr }
func (f *fakeBuffer) WriteFile(string) error { return f.writeErr }
func (f *fakeBuffer) Highlight() (int, error) {
	f.highlightCalls++
	return f.highlightCount, f.highlightErr
}
func (f *fakeBuffer) ClearHighlights() { f.clearCalls++ }
