package mode

import (
	"errors"
	"fmt"

	"github.com/pym-editor/pym/internal/buffer"
	"github.com/pym-editor/pym/internal/excmd"
	"github.com/pym-editor/pym/internal/keyseq"
)

// bindSlineEditing wires the printable/delete/backspace/left/right keys
// shared by excmd, search and backsearch mode: they all just edit the
// status line buffer in place. An empty-after-backspace aborts back to
// the parent mode.
func bindSlineEditing(md *Mode, machine *Machine, sline *StatusLineBuf, registry *keyseq.Registry) {
	md.BindNode(mustParse(registry, "@|<backspace>|<delete>|<left>|<right>"), func(parsed any) {
		switch key := parsed.(string); key {
		case KeyBackspace:
			if sline.Backspace() {
				machine.Abort()
			}
		case KeyDelete:
			sline.Delete()
		case KeyLeft:
			sline.Left()
		case KeyRight:
			sline.Right()
		default:
			sline.InsertRune(key)
		}
	})
}

// NewExcmdMode builds the ":" command-line mode: <tab> completes against
// table, <enter> parses and dispatches the typed command.
func NewExcmdMode(buf *buffer.Buffer, ui UI, machine *Machine, table *excmd.Table, normal *Mode, registry *keyseq.Registry) *Mode {
	md := NewMode("excmd", "", "sline", false, normal)
	sline := ui.StatusLine()
	bindSlineEditing(md, machine, sline, registry)

	md.Bind("<tab>", func(_ any) {
		sline.Reset(table.Complete(sline.Buf))
	})

	md.Bind("<enter>", func(_ any) {
		name, args := excmd.ParseLine(sline.Args())
		if name != "" {
			if err := table.Dispatch(name, args); err != nil {
				ui.Notify(excmdErrorMessage(err, name), true)
			}
		}
		sline.Reset("")
		machine.Abort()
	})

	return md
}

// NewSearchMode builds "/" (backward=false) or "?" (backward=true) search
// entry: <enter> stores the pattern, marks the jump point, and executes a
// motion to the first match.
func NewSearchMode(name string, backward bool, buf *buffer.Buffer, ui UI, machine *Machine, normal *Mode, registry *keyseq.Registry) *Mode {
	md := NewMode(name, "", "sline", false, normal)
	sline := ui.StatusLine()
	bindSlineEditing(md, machine, sline, registry)

	md.Bind("<enter>", func(_ any) {
		if pattern := sline.Args(); pattern != "" {
			motion, err := buf.SearchMotion(pattern, backward)
			if err != nil {
				ui.Notify(err.Error(), true)
			} else {
				motion.Execute()
			}
		}
		sline.Reset("")
		machine.Abort()
	})

	return md
}

// excmdErrorMessage translates a Dispatch error into the user-facing
// notification text: unknown commands report the typed name, everything
// else (argument errors from the command's own Action) reports verbatim.
func excmdErrorMessage(err error, name string) string {
	switch {
	case errors.Is(err, excmd.ErrUnknownCommand):
		return fmt.Sprintf("Not an editor command: %s", name)
	case errors.Is(err, excmd.ErrTrailingCharacters):
		return "Trailing characters"
	default:
		return err.Error()
	}
}
