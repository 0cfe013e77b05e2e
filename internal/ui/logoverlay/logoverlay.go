// Package logoverlay implements the in-app log viewer, a bordered viewport
// overlay toggled over the editor while debug mode is enabled. Unlike a
// buffer mode, it isn't reachable through mode.Machine's grammar: it is a
// terminal-UI concern that intercepts keys directly in ui.Model.Update,
// the same way the editor's status-line notice is rendered outside the
// buffer's own regions.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pym-editor/pym/internal/log"
	"github.com/pym-editor/pym/internal/ui/colorresolve"
)

const (
	maxEntries        = 10000 // ring buffer cap; oldest entries are dropped past this
	viewportMaxHeight = 25
	viewportMinHeight = 5
	boxMaxWidth       = 160
	boxMinWidth       = 40
)

// Model is the log overlay's state: the entries delivered so far by the
// log package's broker, the active level filter, and the viewport they're
// rendered through.
type Model struct {
	resolver *colorresolve.Resolver
	visible  bool
	minLevel log.Level
	width    int
	height   int
	entries  []string
	viewport viewport.Model
}

// New builds a hidden overlay that renders through resolver's color tags.
func New(resolver *colorresolve.Resolver) Model {
	return Model{resolver: resolver, minLevel: log.LevelDebug}
}

// Append records a log entry received from the broker. Entries past
// maxEntries are dropped oldest-first so a long session can't grow the
// overlay's backing slice without bound.
func (m *Model) Append(entry string) {
	m.entries = append(m.entries, entry)
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
	if m.visible {
		m.refreshViewport()
	}
}

// Visible reports whether the overlay is currently shown.
func (m Model) Visible() bool { return m.visible }

// Toggle flips the overlay's visibility.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refreshViewport()
	}
}

// Hide closes the overlay.
func (m *Model) Hide() { m.visible = false }

// SetSize records the terminal's current dimensions.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	if m.visible {
		m.refreshViewport()
	}
}

// Update handles a key while the overlay is visible: d/i/w/e switch the
// level filter, c clears the buffer, j/k/g/G scroll, ctrl+x/esc closes.
// It is the caller's responsibility to only route messages here while
// Visible reports true.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			m.entries = nil
			m.refreshViewport()
		case "d":
			m.minLevel = log.LevelDebug
			m.refreshViewport()
		case "i":
			m.minLevel = log.LevelInfo
			m.refreshViewport()
		case "w":
			m.minLevel = log.LevelWarn
			m.refreshViewport()
		case "e":
			m.minLevel = log.LevelError
			m.refreshViewport()
		case "j", "down":
			m.viewport.ScrollDown(1)
		case "k", "up":
			m.viewport.ScrollUp(1)
		case "g":
			m.viewport.GotoTop()
		case "G":
			m.viewport.GotoBottom()
		case "ctrl+x", "esc":
			m.visible = false
		}
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

// Overlay renders the log box centered over bg's dimensions while visible,
// or returns bg unchanged otherwise. It replaces the whole frame rather
// than compositing glyph-by-glyph over bg's content, a simpler stand-in
// for a true overlay blitter.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.box())
}

// box renders the bordered log window: title, the filtered+colorized
// viewport content, and a footer of filter-key hints.
func (m Model) box() string {
	width := m.boxWidth()
	title := m.resolver.Style("keyword").Bold(true).Render("Logs")
	divider := strings.Repeat("─", width)

	var body strings.Builder
	body.WriteString(title)
	body.WriteString("\n")
	body.WriteString(divider)
	body.WriteString("\n")
	body.WriteString(m.viewport.View())
	body.WriteString("\n")
	body.WriteString(divider)
	body.WriteString("\n")
	body.WriteString(m.buildFilterHint())

	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Width(width).Render(body.String())
}

// refreshViewport rebuilds the viewport's backing content from the
// current entries and filter level.
func (m *Model) refreshViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}
	width := m.contentWidth()

	maxAllowed := m.height - 6 // header(2) + footer(2) + border(2)
	height := min(viewportMaxHeight, maxAllowed)
	height = max(height, viewportMinHeight)

	m.viewport = viewport.New(width, height)
	m.viewport.SetContent(m.buildContent(width))
}

// buildContent renders every entry at or above minLevel, colorized by
// level and truncated to width.
func (m Model) buildContent(width int) string {
	filtered := m.filteredEntries()
	if len(filtered) == 0 {
		return m.resolver.Style("comment").Italic(true).Render("No logs to display")
	}
	lines := make([]string, len(filtered))
	for i, entry := range filtered {
		lines[i] = m.colorize(entry, width)
	}
	return strings.Join(lines, "\n")
}

func (m Model) filteredEntries() []string {
	var out []string
	for _, entry := range m.entries {
		if levelOf(entry) >= m.minLevel {
			out = append(out, entry)
		}
	}
	return out
}

// levelOf recovers an entry's level from its "[LEVEL]" tag, the same
// format log.log writes. Entries without a recognized tag sort as
// LevelDebug so they're never hidden by a filter.
func levelOf(entry string) log.Level {
	switch {
	case strings.Contains(entry, "[ERROR]"):
		return log.LevelError
	case strings.Contains(entry, "[WARN]"):
		return log.LevelWarn
	case strings.Contains(entry, "[INFO]"):
		return log.LevelInfo
	default:
		return log.LevelDebug
	}
}

// colorize trims the entry's trailing newline, truncates it to width, and
// styles it by level using the overlay's color resolver.
func (m Model) colorize(entry string, width int) string {
	entry = strings.TrimSuffix(entry, "\n")
	if len(entry) > width && width > 3 {
		entry = entry[:width-3] + "..."
	}

	switch levelOf(entry) {
	case log.LevelError:
		return m.resolver.Style("error").Render(entry)
	case log.LevelWarn:
		return m.resolver.Style("warn").Render(entry)
	case log.LevelInfo:
		return m.resolver.Style("normal").Render(entry)
	default:
		return m.resolver.Style("comment").Render(entry)
	}
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) contentWidth() int {
	return m.boxWidth() - 2
}

// buildFilterHint renders the footer's filter-key legend, bolding the
// active level.
func (m Model) buildFilterHint() string {
	muted := m.resolver.Style("comment")
	active := m.resolver.Style("keyword").Bold(true)

	hints := []string{muted.Render("[c] Clear")}
	hints = append(hints, levelHint(m.minLevel == log.LevelDebug, muted, active, "[d] Debug"))
	hints = append(hints, levelHint(m.minLevel == log.LevelInfo, muted, active, "[i] Info"))
	hints = append(hints, levelHint(m.minLevel == log.LevelWarn, muted, active, "[w] Warn"))
	hints = append(hints, levelHint(m.minLevel == log.LevelError, muted, active, "[e] Error"))
	return strings.Join(hints, "  ")
}

func levelHint(active bool, muted, activeStyle lipgloss.Style, label string) string {
	if active {
		return activeStyle.Render(label)
	}
	return muted.Render(label)
}
