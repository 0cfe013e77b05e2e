package mode

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// normalBindings describes the default normal-mode key bindings for
// display only; key.Binding carries no dispatch behavior of its own, so
// this list is independent of (and must be kept in sync with) the actual
// grammar bound in NewNormalMode.
var normalBindings = []key.Binding{
	key.NewBinding(key.WithKeys("h", "j", "k", "l"), key.WithHelp("h/j/k/l", "move")),
	key.NewBinding(key.WithKeys("d"), key.WithHelp("d{motion}", "delete to motion")),
	key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete char")),
	key.NewBinding(key.WithKeys("i", "a", "A"), key.WithHelp("i/a/A", "enter insert mode")),
	key.NewBinding(key.WithKeys("m"), key.WithHelp("m{mark}", "set mark")),
	key.NewBinding(key.WithKeys("'"), key.WithHelp("'{mark}", "jump to mark")),
	key.NewBinding(key.WithKeys("/", "?"), key.WithHelp("/, ?", "search forward/backward")),
	key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n/N", "repeat search")),
	key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "ex command")),
}

// HelpText renders normalBindings as a single line suitable for the
// status line.
func HelpText() string {
	parts := make([]string, len(normalBindings))
	for i, b := range normalBindings {
		h := b.Help()
		parts[i] = h.Key + " " + h.Desc
	}
	return strings.Join(parts, "  |  ")
}
