package mode

import (
	"github.com/pym-editor/pym/internal/buffer"
	"github.com/pym-editor/pym/internal/excmd"
	"github.com/pym-editor/pym/internal/keyseq"
)

// NewDefaultMachine builds the canonical mode set (normal, insert, excmd,
// search, backsearch) over buf and ui, wires normal's mode-switch bindings
// to the rest once every *Mode exists, registers the built-in ex-commands,
// and returns the resulting Machine and command table ready to dispatch
// keys via HandleKey.
func NewDefaultMachine(buf *buffer.Buffer, ui UI) (*Machine, *excmd.Table) {
	registry := keyseq.NewRegistry()
	machine := &Machine{ui: ui}

	normal := NewNormalMode(buf, ui, machine, registry)
	insert := NewInsertMode(buf, normal, registry)
	search := NewSearchMode("search", false, buf, ui, machine, normal, registry)
	backsearch := NewSearchMode("backsearch", true, buf, ui, machine, normal, registry)

	table := excmd.NewTable()
	excmd.RegisterDefaults(table, buf, ui)
	table.Register("help", func(args string) error {
		ui.Notify(HelpText(), false)
		return nil
	}, nil)
	excmdMode := NewExcmdMode(buf, ui, machine, table, normal, registry)

	bindModeSwitches(normal, machine, ui, insert, search, backsearch, excmdMode)

	machine.current = normal
	return machine, table
}

// bindModeSwitches adds normal mode's entry points into every other
// default mode. These are deferred until here because each one needs a
// *Mode that doesn't exist until after normal itself is constructed.
func bindModeSwitches(normal *Mode, machine *Machine, ui UI, insert, search, backsearch, excmdMode *Mode) {
	sline := ui.StatusLine()

	normal.Bind("i", func(_ any) {
		machine.Enter(insert)
	})
	normal.Bind("a", func(_ any) {
		machine.Enter(insert)
		ui.Buffer().RightMotion(1).Execute()
	})
	normal.Bind("A", func(_ any) {
		machine.Enter(insert)
		cur := ui.Buffer().Cursor()
		ui.Buffer().MoveTo(cur.Row, len(ui.Buffer().Lines()[cur.Row]))
	})
	normal.Bind("/", func(_ any) {
		sline.Reset("/")
		machine.Enter(search)
	})
	normal.Bind("?", func(_ any) {
		sline.Reset("?")
		machine.Enter(backsearch)
	})
	normal.Bind(":", func(_ any) {
		sline.Reset(":")
		machine.Enter(excmdMode)
	})
}
