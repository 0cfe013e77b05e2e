// Package mode implements the modal input state machine: a Mode owns a set
// of competing (KeySeq, Action) bindings, and a Machine dispatches one key
// at a time to the active Mode following the handle_key algorithm: esc
// either resets a mid-parse binding set or aborts to the parent mode, and
// otherwise the first binding to go complete wins and fires its action.
package mode

import "github.com/pym-editor/pym/internal/keyseq"

// Binding pairs a grammar node with the action invoked once that node
// completes.
type Binding struct {
	node   *keyseq.Node
	action func(parsed any)
}

// NewBinding wraps an already-parsed node and its action.
func NewBinding(node *keyseq.Node, action func(parsed any)) *Binding {
	return &Binding{node: node, action: action}
}

// Mode owns a list of competing bindings plus the bookkeeping the dispatch
// algorithm needs: its abort parent, its status-line focus, and whether it
// puts the buffer into insert-clamp discipline.
type Mode struct {
	Name    string
	Label   string
	Focus   string // "" (buffer) or "sline" (status line)
	Insert  bool
	AbortTo *Mode

	bindings []*Binding
	pending  bool // true iff the previous key left some binding ready (mid-parse)
}

// NewMode constructs an empty mode. abortTo is nil for the root (normal)
// mode; all other modes abort back to it.
func NewMode(name, label, focus string, insert bool, abortTo *Mode) *Mode {
	return &Mode{Name: name, Label: label, Focus: focus, Insert: insert, AbortTo: abortTo}
}

// Bind parses expr and appends a binding for it.
func (m *Mode) Bind(expr string, action func(parsed any)) error {
	node, err := keyseq.ParseExpr(expr)
	if err != nil {
		return err
	}
	m.BindNode(node, action)
	return nil
}

// BindNode appends a binding for an already-built node (used for macro
// references and Group-backed nodes that Bind's plain-string form can't
// express directly).
func (m *Mode) BindNode(node *keyseq.Node, action func(parsed any)) {
	m.bindings = append(m.bindings, NewBinding(node, action))
}

// ResetAll resets every binding's transient match state.
func (m *Mode) ResetAll() {
	for _, b := range m.bindings {
		b.node.Reset()
	}
	m.pending = false
}
