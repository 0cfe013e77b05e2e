// Package excmd implements the ex-command table: full-name registration
// with an automatically maintained set of disambiguating abbreviations
// (":w" for "write" once no other registered name starts with "w"), and
// dispatch by exact or abbreviated name.
package excmd

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Action runs a command against its argument string.
type Action func(args string) error

// Completer returns candidate completions for a partially typed argument.
type Completer func(partial string) []string

type command struct {
	name      string
	action    Action
	completer Completer
}

// Table holds the full-name and abbreviated-prefix command registries.
type Table struct {
	mu       sync.Mutex
	full     map[string]*command
	prefixes map[string]*command
}

// NewTable returns an empty command table.
func NewTable() *Table {
	return &Table{
		full:     make(map[string]*command),
		prefixes: make(map[string]*command),
	}
}

// Register adds name to the table and recomputes which of its strict
// prefixes disambiguate it from every other currently registered name.
// completer may be nil.
func (t *Table) Register(name string, action Action, completer Completer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cmd := &command{name: name, action: action, completer: completer}
	t.full[name] = cmd

	for i := 1; i < len(name); i++ {
		prefix := name[:i]

		if existing, ok := t.prefixes[prefix]; ok {
			if existing.name != name {
				// name now collides with whatever that prefix used to
				// disambiguate; neither command may claim it bare.
				delete(t.prefixes, prefix)
			}
			continue
		}

		if t.conflicts(prefix, name) {
			continue
		}
		t.prefixes[prefix] = cmd
	}
}

// conflicts reports whether any OTHER registered full name also begins
// with prefix.
func (t *Table) conflicts(prefix, except string) bool {
	for other := range t.full {
		if other != except && strings.HasPrefix(other, prefix) {
			return true
		}
	}
	return false
}

// lookup resolves name against the full-name table first (an exact full
// name always wins, even if it happens to also be a claimed prefix of a
// longer command), then the abbreviation table.
func (t *Table) lookup(name string) (*command, bool) {
	if cmd, ok := t.full[name]; ok {
		return cmd, true
	}
	cmd, ok := t.prefixes[name]
	return cmd, ok
}

// Dispatch resolves name and runs its action against args.
func (t *Table) Dispatch(name, args string) error {
	t.mu.Lock()
	cmd, ok := t.lookup(name)
	t.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return cmd.action(args)
}

// ParseLine splits an ex-command body (the status line's contents past
// its leading ':') into a command name and its argument string.
func ParseLine(line string) (name, args string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

// Complete implements <tab> completion over the status line's contents
// (including its leading ':'): while the command name itself is still
// being typed it completes among registered full names, otherwise it
// defers to the resolved command's argument Completer. Either way the
// extension stops at the longest common prefix of the candidates, mirroring
// shell-style tab completion.
func (t *Table) Complete(text string) string {
	body := strings.TrimPrefix(text, ":")
	name, args := ParseLine(body)

	if !strings.ContainsAny(body, " \t") {
		t.mu.Lock()
		var candidates []string
		for full := range t.full {
			if strings.HasPrefix(full, name) {
				candidates = append(candidates, full)
			}
		}
		t.mu.Unlock()
		sort.Strings(candidates)
		if cp := commonPrefix(candidates); cp != "" {
			return ":" + cp
		}
		return text
	}

	t.mu.Lock()
	cmd, ok := t.lookup(name)
	t.mu.Unlock()
	if !ok || cmd.completer == nil {
		return text
	}
	candidates := cmd.completer(args)
	sort.Strings(candidates)
	cp := commonPrefix(candidates)
	if cp == "" {
		return text
	}
	return ":" + name + " " + cp
}

// commonPrefix returns the longest string every element of ss starts
// with, the Go analogue of Python's os.path.commonprefix.
func commonPrefix(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	prefix := ss[0]
	for _, s := range ss[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
