// Package ui implements the default terminal front end: a Bubble Tea
// program that turns keystrokes into mode.Machine.HandleKey calls and
// renders the buffer, its regions, and the status line to the screen.
package ui

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/pym-editor/pym/internal/buffer"
	"github.com/pym-editor/pym/internal/config"
	"github.com/pym-editor/pym/internal/excmd"
	"github.com/pym-editor/pym/internal/log"
	"github.com/pym-editor/pym/internal/mode"
	"github.com/pym-editor/pym/internal/region"
	"github.com/pym-editor/pym/internal/tracing"
	"github.com/pym-editor/pym/internal/ui/colorresolve"
	"github.com/pym-editor/pym/internal/ui/logoverlay"
	"github.com/pym-editor/pym/internal/watcher"
)

// ANSI codes for the cursor, reverse video the way vimtextarea's renderer
// marks its own cursor cell.
const (
	cursorOn  = "\x1b[7m"
	cursorOff = "\x1b[27m"
)

// fileChangedMsg signals that the watched file changed on disk.
type fileChangedMsg struct{}

// Model is the root Bubble Tea program. It implements mode.UI.
type Model struct {
	buf      *buffer.Buffer
	machine  *mode.Machine
	table    *excmd.Table
	sline    *mode.StatusLineBuf
	resolver *colorresolve.Resolver

	watch     *watcher.Watcher
	onChange  <-chan struct{}
	filePath  string
	tracing   *tracing.Provider

	debug      bool
	logOverlay logoverlay.Model
	logCancel  context.CancelFunc
	logListen  *log.LogListener

	width, height int
	notice        string
	noticeIsError bool
	quitting      bool
}

// New builds the program model over buf using cfg's theme colors; cfg's
// keymap is validated but not applied. filePath (possibly empty, for an unnamed buffer) is watched for
// external changes once the program starts. Every tea.Model method below
// takes a pointer receiver: mode.Machine holds this *Model as its UI sink,
// and bubbletea's usual value-copy-per-Update loop would otherwise orphan
// that reference the first time Update returned a fresh copy.
func New(buf *buffer.Buffer, cfg config.Config, filePath string) *Model {
	m := &Model{
		buf:      buf,
		sline:    mode.NewStatusLineBuf(""),
		resolver: colorresolve.NewResolver(mergeColors(cfg)),
		filePath: filePath,
		debug:    cfg.Debug,
	}
	m.logOverlay = logoverlay.New(m.resolver)
	machine, table := mode.NewDefaultMachine(buf, m)
	m.machine = machine
	m.table = table
	applyKeymap(machine, table, cfg.Keymap)

	if provider, err := tracing.NewProvider(cfg.Tracing); err == nil {
		m.tracing = provider
		machine.SetTracer(provider.Tracer())
	}
	return m
}

// Shutdown stops the log overlay's broker subscription and flushes any
// pending trace spans. Called once after the Bubble Tea program returns.
func (m *Model) Shutdown(ctx context.Context) error {
	if m.logCancel != nil {
		m.logCancel()
	}
	if m.tracing == nil {
		return nil
	}
	return m.tracing.Shutdown(ctx)
}

// mergeColors overlays cfg's theme overrides on the built-in color table.
func mergeColors(cfg config.Config) map[string]string {
	merged := config.DefaultColors()
	for name, tag := range cfg.Theme.Colors {
		merged[name] = tag
	}
	return merged
}

// applyKeymap validates keymap and does nothing else: no entry is bound
// into the machine or the ex-command table, and a validation error is
// discarded here (cmd/root.go logs it as a warning before New is called).
func applyKeymap(_ *mode.Machine, _ *excmd.Table, keymap map[string]string) {
	if err := config.ValidateKeymap(keymap); err != nil {
		_ = err // surfaced by the caller via cfg validation before New is called
	}
}

// Quit implements mode.UI.
func (m *Model) Quit() { m.quitting = true }

// Notify implements mode.UI.
func (m *Model) Notify(message string, isError bool) {
	m.notice = message
	m.noticeIsError = isError
}

// Redraw implements mode.UI. Bubble Tea re-renders View after every Update
// return regardless, so there is nothing extra to trigger here.
func (m *Model) Redraw() {}

// Buffer implements mode.UI.
func (m *Model) Buffer() *buffer.Buffer { return m.buf }

// StatusLine implements mode.UI.
func (m *Model) StatusLine() *mode.StatusLineBuf { return m.sline }

// Init implements tea.Model. It starts the file watcher (if the buffer
// has a backing path) and, in debug mode, subscribes to the log broker
// so the log overlay has something to show when toggled.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd

	if m.filePath != "" {
		if w, err := watcher.New(watcher.DefaultConfig(m.filePath)); err == nil {
			if onChange, err := w.Start(); err == nil {
				m.watch = w
				m.onChange = onChange
				cmds = append(cmds, m.listenForChange())
			}
		}
	}

	if m.debug {
		ctx, cancel := context.WithCancel(context.Background())
		m.logCancel = cancel
		if listener := log.NewListener(ctx); listener != nil {
			m.logListen = listener
			cmds = append(cmds, listener.Listen())
		}
	}

	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) listenForChange() tea.Cmd {
	if m.onChange == nil {
		return nil
	}
	return func() tea.Msg {
		<-m.onChange
		return fileChangedMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.logOverlay.SetSize(msg.Width, msg.Height)
		return m, nil

	case log.LogEvent:
		m.logOverlay.Append(msg.Payload)
		if m.logListen != nil {
			return m, m.logListen.Listen()
		}
		return m, nil

	case tea.KeyMsg:
		if m.debug && msg.Type == tea.KeyCtrlL {
			m.logOverlay.Toggle()
			return m, nil
		}
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}

		keys := []string{keyToString(msg)}
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
			keys = strings.Split(string(msg.Runes), "")
		}
		for _, key := range keys {
			if key != "" && !m.quitting {
				m.machine.HandleKey(key)
			}
		}
		if m.quitting {
			if m.watch != nil {
				_ = m.watch.Stop()
			}
			return m, tea.Quit
		}
		return m, nil

	case fileChangedMsg:
		m.Notify(fmt.Sprintf("%q changed on disk", m.filePath), false)
		return m, m.listenForChange()
	}

	return m, nil
}

// keyToString converts a tea.KeyMsg into the key symbol mode.Machine
// expects: a named key's bare name ("esc", "enter", ...) or the single
// printable rune typed. A multi-rune message yields ""; Update feeds such
// a message to the machine one rune at a time.
func keyToString(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return string(msg.Runes[0])
		}
		return ""
	case tea.KeySpace:
		return " "
	case tea.KeyCtrlC:
		return mode.KeyCtrlC
	case tea.KeyEscape:
		return mode.KeyEsc
	case tea.KeyEnter:
		return mode.KeyEnter
	case tea.KeyBackspace:
		return mode.KeyBackspace
	case tea.KeyDelete:
		return mode.KeyDelete
	case tea.KeyTab:
		return mode.KeyTab
	case tea.KeyLeft:
		return mode.KeyLeft
	case tea.KeyRight:
		return mode.KeyRight
	case tea.KeyUp:
		return mode.KeyUp
	case tea.KeyDown:
		return mode.KeyDown
	default:
		return ""
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	lines := m.buf.Lines()
	cur := m.buf.Cursor()

	height := m.height
	if height <= 0 {
		height = len(lines)
	}

	for row := 0; row < len(lines) && row < height-1; row++ {
		b.WriteString(m.renderLine(row, lines[row], cur))
		b.WriteByte('\n')
	}

	b.WriteString(m.renderStatusLine())
	return m.logOverlay.Overlay(b.String())
}

// renderLine applies region styling and the reverse-video cursor to a
// single buffer line. Positions are byte offsets within line, matching
// region.Position's own convention, so no separate display-column tally
// is needed to line cursor and region bounds up with buffer state.
func (m *Model) renderLine(row int, line string, cur buffer.Position) string {
	if line == "" {
		if row == cur.Row {
			return cursorOn + " " + cursorOff
		}
		return ""
	}

	regions := m.buf.RegionsForLine(row)
	var out strings.Builder
	for i, r := range line {
		cell := line[i : i+utf8.RuneLen(r)]
		styled := m.styleCell(cell, row, i, regions)
		if row == cur.Row && i == cur.Col {
			out.WriteString(cursorOn + styled + cursorOff)
		} else {
			out.WriteString(styled)
		}
	}
	if row == cur.Row && cur.Col >= len(line) {
		out.WriteString(cursorOn + " " + cursorOff)
	}
	return out.String()
}

// styleCell renders a single display cell through any region tag whose
// range covers (row, col); first match (regions are start-ordered) wins.
func (m *Model) styleCell(cell string, row, col int, regions []region.Region) string {
	pos := region.Position{Row: row, Col: col}
	for _, r := range regions {
		if r.Start.LessEq(pos) && pos.LessEq(r.End) {
			return m.resolver.Style(r.Tag).Render(cell)
		}
	}
	return cell
}

// renderStatusLine shows the active status-line prompt when one is being
// edited (":", "/" or "?" plus whatever the user has typed so far),
// otherwise the last notice, truncated and padded to the terminal width so
// its background style (set via the "statusline"/"error" color tags) fills
// the whole row the way a status bar should, and a long notice (e.g. a
// file-not-found path, or the :help summary) never wraps onto the buffer
// view above it.
func (m *Model) renderStatusLine() string {
	text := m.sline.Buf
	style := m.resolver.Style("statusline")
	if text == "" {
		text = m.notice
		if m.noticeIsError {
			style = m.resolver.Style("error")
		}
	}
	if m.width > 0 {
		text = ansi.Truncate(text, m.width, "")
		if pad := m.width - runewidth.StringWidth(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return style.Render(text)
}
