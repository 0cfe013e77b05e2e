package mode

import (
	"github.com/pym-editor/pym/internal/buffer"
	"github.com/pym-editor/pym/internal/keyseq"
)

// NewNormalMode builds the root mode and its canonical binding set.
// It is the abort target for every other default mode, so it is
// constructed first and wired to them afterward in NewDefaultMachine.
func NewNormalMode(buf *buffer.Buffer, ui UI, machine *Machine, registry *keyseq.Registry) *Mode {
	normal := NewMode("normal", "", "", false, nil)
	motion := motionKeys(registry)

	normal.BindNode(mustParse(registry, "#?`motion`"), func(parsed any) {
		vals := parsed.([]any)
		motionForKey(buf, vals[1].(string), intOrDefault(vals[0])).Execute()
	})

	normal.BindNode(mustParse(registry, "#?(n|N)"), func(parsed any) {
		vals := parsed.([]any)
		count, key := intOrDefault(vals[0]), vals[1].(string)
		for i := 0; i < count; i++ {
			if key == "n" {
				buf.NextSearchMotion().Execute()
			} else {
				buf.PrevSearchMotion().Execute()
			}
		}
	})

	normal.BindNode(mustParse(registry, "#?d(d|`motion`)"), func(parsed any) {
		vals := parsed.([]any)
		count := intOrDefault(vals[0])
		switch second := vals[2].(string); second {
		case "d":
			buf.DownMotion(count - 1).Delete()
		default:
			motionForKey(buf, second, count).Delete()
		}
	})

	normal.Bind("m@", func(parsed any) {
		vals := parsed.([]any)
		buf.Mark(firstRune(vals[1].(string)))
	})

	normal.BindNode(mustParse(registry, "('|<`>)@"), func(parsed any) {
		vals := parsed.([]any)
		if err := buf.RestoreMark(firstRune(vals[1].(string))); err != nil {
			ui.Notify(err.Error(), true)
		}
	})

	normal.Bind("#?x", func(parsed any) {
		vals := parsed.([]any)
		buf.RightMotion(intOrDefault(vals[0])).Delete()
	})

	normal.Bind("<"+KeyCtrlC+">", func(_ any) {
		ui.Quit()
	})

	_ = motion // kept alive: referenced only via the `motion` macro name above
	return normal
}

func mustParse(r *keyseq.Registry, expr string) *keyseq.Node {
	n, err := r.Parse(expr)
	if err != nil {
		panic(err) // fixed literal binding expressions; a parse failure here is a programming error
	}
	return n
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
