package mode

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/pym-editor/pym/internal/tracing"
)

// Machine dispatches incoming keys to the active Mode. It is the process-
// wide singleton: there is exactly one reader of keys and writer of mode
// state.
type Machine struct {
	ui      UI
	current *Mode

	tracer   trace.Tracer // nil unless SetTracer is called; dispatch stays untraced
	keyCount int          // keystrokes seen since the current gesture started
}

// NewMachine starts the machine in start (normally the normal mode).
func NewMachine(ui UI, start *Mode) *Machine {
	return &Machine{ui: ui, current: start}
}

// SetTracer enables span-per-dispatched-action tracing. Every completed
// binding's action fires inside a span named after its mode, tagged with
// the triggering key and the number of keystrokes the gesture consumed.
func (m *Machine) SetTracer(tracer trace.Tracer) {
	m.tracer = tracer
}

// Current returns the active mode.
func (m *Machine) Current() *Mode { return m.current }

// Enter switches the active mode to next, applying the buffer's insert
// clamp discipline and clearing next's transient match state. Used by
// bindings that open a child mode (insert, excmd, search, backsearch).
func (m *Machine) Enter(next *Mode) {
	m.current = next
	if next.Insert {
		m.ui.Buffer().SetInsertMode(true)
	}
	next.ResetAll()
}

// HandleKey implements the handle_key algorithm:
//  1. <esc> resets a mid-parse binding set, or else aborts to the parent mode.
//  2. Otherwise each ready binding is offered the key; the first to go
//     complete fires its action and every binding resets. If none remain
//     ready, all bindings reset (so the next key starts fresh).
func (m *Machine) HandleKey(key string) {
	cur := m.current

	if key == KeyEsc {
		m.keyCount = 0
		if cur.pending {
			cur.ResetAll()
			return
		}
		m.Abort()
		return
	}

	m.keyCount++

	tryAgain := false
	for _, b := range cur.bindings {
		if !b.node.Ready() {
			continue
		}
		b.node.Offer(key)
		if b.node.Complete() {
			parsed := b.node.GetParse()
			cur.ResetAll()
			m.dispatch(cur.Name, key, b.action, parsed)
			m.ui.Redraw()
			return
		}
		if b.node.Ready() {
			tryAgain = true
		}
	}

	cur.pending = tryAgain
	if !tryAgain {
		m.keyCount = 0
		cur.ResetAll()
	}
}

// dispatch fires action, wrapped in a trace span when tracing is enabled.
func (m *Machine) dispatch(modeName, key string, action func(any), parsed any) {
	count := m.keyCount
	m.keyCount = 0

	if m.tracer == nil {
		action(parsed)
		return
	}
	_, span := tracing.StartAction(context.Background(), m.tracer, modeName, key, count, "")
	defer span.End()
	action(parsed)
}

// Abort sets the current mode to its abort parent. Leaving insert mode
// this way restores the one-past-end cursor correction via ModeChanged;
// entering the root mode (AbortTo == nil) from itself is a no-op, matching
// vi's inert esc-in-normal-mode behavior. Bindings call this directly for
// non-esc aborts (an emptied status line, a dispatched ex command).
func (m *Machine) Abort() {
	old := m.current
	if old.AbortTo == nil {
		return
	}
	m.current = old.AbortTo
	if old.Insert {
		m.ui.Buffer().ModeChanged()
	}
	m.current.ResetAll()
	m.ui.Redraw()
}
