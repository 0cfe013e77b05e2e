package mode_test

import (
	"github.com/pym-editor/pym/internal/buffer"
	"github.com/pym-editor/pym/internal/mode"
)

// fakeUI is a minimal mode.UI recording what the core told it to do,
// standing in for the terminal program in tests.
type fakeUI struct {
	buf     *buffer.Buffer
	sline   *mode.StatusLineBuf
	quit    bool
	redraws int
	notices []notice
}

type notice struct {
	message string
	isError bool
}

func newFakeUI(buf *buffer.Buffer) *fakeUI {
	return &fakeUI{buf: buf, sline: mode.NewStatusLineBuf("")}
}

func (f *fakeUI) Quit()                                { f.quit = true }
func (f *fakeUI) Notify(message string, isError bool)  { f.notices = append(f.notices, notice{message, isError}) }
func (f *fakeUI) Redraw()                               { f.redraws++ }
func (f *fakeUI) Buffer() *buffer.Buffer                { return f.buf }
func (f *fakeUI) StatusLine() *mode.StatusLineBuf       { return f.sline }

func (f *fakeUI) lastNotice() (notice, bool) {
	if len(f.notices) == 0 {
		return notice{}, false
	}
	return f.notices[len(f.notices)-1], true
}
