package excmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pym-editor/pym/internal/buffer"
)

// Buffer is the subset of *buffer.Buffer the built-in commands drive.
type Buffer interface {
	LoadFile(path string) error
	WriteFile(path string) error
	Highlight() (int, error)
	ClearHighlights()
}

// Notifier is the subset of the UI the built-in commands drive.
type Notifier interface {
	Quit()
	Notify(message string, isError bool)
}

// RegisterDefaults registers the built-in quit/edit/write/highlight/
// nohighlight commands against buf and n.
func RegisterDefaults(t *Table, buf Buffer, n Notifier) {
	t.Register("quit", func(args string) error {
		if args != "" {
			return ErrTrailingCharacters
		}
		n.Quit()
		return nil
	}, nil)

	t.Register("edit", func(args string) error {
		if err := buf.LoadFile(args); err != nil {
			n.Notify(commandError(err), true)
		}
		return nil
	}, pathCompleter)

	t.Register("write", func(args string) error {
		if err := buf.WriteFile(args); err != nil {
			n.Notify(commandError(err), true)
		}
		return nil
	}, pathCompleter)

	t.Register("highlight", func(args string) error {
		if args != "" {
			return ErrTrailingCharacters
		}
		count, err := buf.Highlight()
		if err != nil {
			n.Notify(commandError(err), true)
			return nil
		}
		n.Notify(fmt.Sprintf("%d match(es) highlighted", count), false)
		return nil
	}, nil)

	t.Register("nohighlight", func(args string) error {
		if args != "" {
			return ErrTrailingCharacters
		}
		buf.ClearHighlights()
		return nil
	}, nil)
}

// commandError translates an error returned by a built-in command's
// underlying operation into its user-facing message.
func commandError(err error) string {
	switch {
	case errors.Is(err, buffer.ErrNoFileName):
		return "No File Name"
	case errors.Is(err, buffer.ErrNoActiveSearch):
		return "No Previous Search Pattern"
	case errors.Is(err, os.ErrPermission):
		return "Permission denied"
	case errors.Is(err, os.ErrNotExist):
		return "No Such File or Directory"
	default:
		return err.Error()
	}
}

// pathCompleter lists filesystem paths matching partial+"*", the
// completer backing :edit/:write argument completion.
func pathCompleter(partial string) []string {
	matches, err := filepath.Glob(partial + "*")
	if err != nil {
		return nil
	}
	return matches
}
