package mode

import (
	"github.com/pym-editor/pym/internal/buffer"
	"github.com/pym-editor/pym/internal/keyseq"
)

// NewInsertMode builds the insert mode: a single Choice over the printable/
// editing/arrow keys, aborting back to normal.
func NewInsertMode(buf *buffer.Buffer, normal *Mode, registry *keyseq.Registry) *Mode {
	insert := NewMode("insert", "-- INSERT --", "", true, normal)

	insert.BindNode(mustParse(registry, "@|<backspace>|<delete>|<enter>|<left>|<right>|<up>|<down>"), func(parsed any) {
		key := parsed.(string)
		switch key {
		case KeyBackspace:
			buf.LeftMotion(1).Delete()
		case KeyDelete:
			buf.RightMotion(1).Delete()
		case KeyEnter:
			buf.Insert("\n").Execute()
		case KeyLeft:
			buf.LeftMotion(1).Execute()
		case KeyRight:
			buf.RightMotion(1).Execute()
		case KeyUp:
			buf.UpMotion(1).Execute()
		case KeyDown:
			buf.DownMotion(1).Execute()
		default:
			buf.Insert(key).Execute()
		}
	})

	return insert
}
