// Package buffer implements the editor's single in-memory text buffer:
// line storage, cursor and motion algebra, region maintenance under edits,
// markers, search, and file load/save.
package buffer

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/pym-editor/pym/internal/log"
	"github.com/pym-editor/pym/internal/region"
	"github.com/pym-editor/pym/internal/search"
)

// Position is an alias of region.Position so buffer and region share one
// coordinate type without either package importing the other's concerns.
type Position = region.Position

// ErrNoFileName is returned by WriteFile when no path is given and the
// buffer has never been associated with one.
var ErrNoFileName = fmt.Errorf("buffer: no file name")

// ErrNoActiveSearch is returned by Highlight when no search pattern has
// been set via Search/SearchMotion.
var ErrNoActiveSearch = fmt.Errorf("buffer: no active search")

// hilightTag marks persistent regions materialized by Highlight, distinct
// from the live, never-stored "search" regions RegionsForLine computes on
// demand.
const hilightTag = "hilight"

// Buffer owns the text, cursor, regions, markers and search state for one
// file. A Buffer is created empty or by loading a file and lives for the
// editor session; there is exactly one in this program (no multi-buffer
// support, per non-goals).
type Buffer struct {
	lines []string
	row   int
	col   int

	colWant int
	dirty   bool
	path    string

	insertMode bool

	markers map[rune]Position
	regions *region.Store

	searchExpr      string
	searchBackward  bool

	fileType string
}

// New returns an empty buffer: a single empty line, cursor at (0,0).
func New() *Buffer {
	return &Buffer{
		lines:   []string{""},
		markers: make(map[rune]Position),
		regions: region.NewStore(),
	}
}

// Lines returns the buffer's line contents. Callers must not retain and
// mutate the returned slice.
func (b *Buffer) Lines() []string { return b.lines }

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() Position { return Position{Row: b.row, Col: b.col} }

// Dirty reports whether the buffer has unsaved edits.
func (b *Buffer) Dirty() bool { return b.dirty }

// Path returns the buffer's associated filesystem path, or "" if none.
func (b *Buffer) Path() string { return b.path }

// Regions returns the region store backing this buffer.
func (b *Buffer) Regions() *region.Store { return b.regions }

// FileType returns the detected/configured file type name.
func (b *Buffer) FileType() string { return b.fileType }

// SetFileType records the file type name used to tag syntax regions. It
// does not itself populate regions; callers (the filetype registry) add
// regions separately after detection.
func (b *Buffer) SetFileType(name string) { b.fileType = name }

// SetInsertMode toggles the mode-dependent cursor clamp rule. Leaving
// insert mode with the cursor sitting one past the last character steps it
// left by one column, mirroring vi's normal-mode cursor discipline.
func (b *Buffer) SetInsertMode(insert bool) {
	was := b.insertMode
	b.insertMode = insert
	if was && !insert {
		line := b.lines[b.row]
		if b.col >= len(line) && b.col > 0 {
			b.col--
		}
	}
}

// InsertMode reports whether the buffer is currently clamping for insert
// mode.
func (b *Buffer) InsertMode() bool { return b.insertMode }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// maxCol returns the highest column legal on row under the current mode.
func (b *Buffer) maxCol(row int) int {
	n := len(b.lines[row])
	if b.insertMode {
		return n
	}
	if n == 0 {
		return 0
	}
	return n - 1
}

// MoveTo enforces cursor invariants directly: it clamps row into
// [0,len(lines)) and col into [0,maxCol]. If the requested column exceeded
// the line, col_want remembers the overshoot before clamping, so a
// subsequent vertical motion can restore it on a longer line.
func (b *Buffer) MoveTo(row, col int) {
	row = clampInt(row, 0, len(b.lines)-1)
	max := b.maxCol(row)
	if col > max {
		b.colWant = col
	}
	b.row = row
	b.col = clampInt(col, 0, max)
}

// mode_changed in the original source: called after leaving insert mode.
// Kept as a thin wrapper over SetInsertMode(false) for call sites that
// mirror the source's separate "notify of mode change" step.
func (b *Buffer) ModeChanged() {
	b.SetInsertMode(false)
}

// Mark records the current cursor position under name. The unnamed mark
// `'` additionally records the "last jump" position automatically before
// search and before RestoreMark.
func (b *Buffer) Mark(name rune) {
	b.markers[name] = b.Cursor()
}

// ErrNoSuchMarker is returned by RestoreMark for an unset marker name.
var ErrNoSuchMarker = fmt.Errorf("buffer: no such marker")

// RestoreMark sets the unnamed jump marker to the current position, then
// moves the cursor to the position recorded under name.
func (b *Buffer) RestoreMark(name rune) error {
	pos, ok := b.markers[name]
	if !ok {
		return ErrNoSuchMarker
	}
	b.Mark('\'')
	b.MoveTo(pos.Row, pos.Col)
	return nil
}

// textBetween returns the textual contents of [lo,hi), joining spanned
// lines with "\n". Read-only; does not mutate the buffer.
func (b *Buffer) textBetween(lo, hi Position) string {
	if lo.Row == hi.Row {
		return b.lines[lo.Row][lo.Col:hi.Col]
	}
	var sb strings.Builder
	sb.WriteString(b.lines[lo.Row][lo.Col:])
	for r := lo.Row + 1; r < hi.Row; r++ {
		sb.WriteString("\n")
		sb.WriteString(b.lines[r])
	}
	sb.WriteString("\n")
	sb.WriteString(b.lines[hi.Row][:hi.Col])
	return sb.String()
}

// deleteRange removes [lo,hi), collapses regions across it, marks dirty,
// and lands the cursor at lo.
func (b *Buffer) deleteRange(lo, hi Position) string {
	text := b.textBetween(lo, hi)
	merged := b.lines[lo.Row][:lo.Col] + b.lines[hi.Row][hi.Col:]
	tail := append([]string{}, b.lines[hi.Row+1:]...)
	b.lines = append(b.lines[:lo.Row], merged)
	b.lines = append(b.lines, tail...)

	b.regions.Collapse(lo, hi)
	b.dirty = true
	b.MoveTo(lo.Row, lo.Col)
	log.Debug(log.CatBuffer, "delete", "lo", lo, "hi", hi)
	return text
}

// insertAt splices text (split on "\n") into the buffer at pos, expands
// regions across the inserted span, marks dirty, and returns the Motion
// from pos to the position just past the inserted text.
func (b *Buffer) insertAt(pos Position, text string) *Motion {
	fragments := strings.Split(text, "\n")
	line := b.lines[pos.Row]
	prefix := line[:pos.Col]
	suffix := line[pos.Col:]

	if len(fragments) == 1 {
		b.lines[pos.Row] = prefix + fragments[0] + suffix
		end := Position{Row: pos.Row, Col: pos.Col + len(fragments[0])}
		b.regions.Expand(pos, end)
		b.dirty = true
		return b.newMotion(pos, end)
	}

	newLines := make([]string, 0, len(fragments))
	newLines = append(newLines, prefix+fragments[0])
	for i := 1; i < len(fragments)-1; i++ {
		newLines = append(newLines, fragments[i])
	}
	last := fragments[len(fragments)-1]
	newLines = append(newLines, last+suffix)

	tail := append([]string{}, b.lines[pos.Row+1:]...)
	b.lines = append(b.lines[:pos.Row], newLines...)
	b.lines = append(b.lines, tail...)

	end := Position{Row: pos.Row + len(fragments) - 1, Col: len(last)}
	b.regions.Expand(pos, end)
	b.dirty = true
	log.Debug(log.CatBuffer, "insert", "pos", pos, "end", end)
	return b.newMotion(pos, end)
}

// Insert inserts text at the current cursor position.
func (b *Buffer) Insert(text string) *Motion {
	return b.insertAt(b.Cursor(), text)
}

// LoadFile replaces the buffer's contents with path's, splitting on "\n"
// without preserving a trailing empty line for a final newline. The
// buffer's regions are rebuilt from scratch (file-type detection is the
// caller's responsibility via filetype.Registry) and dirty is cleared.
func (b *Buffer) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied editor target path
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	text := string(data)
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	b.lines = lines
	b.path = path
	b.row, b.col, b.colWant = 0, 0, 0
	b.dirty = false
	b.regions = region.NewStore()
	log.Info(log.CatFile, "loaded file", "path", path, "lines", len(b.lines))
	return nil
}

// WriteFile writes the buffer as "\n".join(lines)+"\n" to path, or to the
// buffer's stored path if path is empty. Clears dirty when writing to the
// buffer's own path.
func (b *Buffer) WriteFile(path string) error {
	if path == "" {
		path = b.path
	}
	if path == "" {
		return ErrNoFileName
	}
	content := strings.Join(b.lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { //nolint:gosec // G306: editor output file, not a secret
		return fmt.Errorf("write %s: %w", path, err)
	}
	if path == b.path {
		b.dirty = false
	}
	log.Info(log.CatFile, "wrote file", "path", path, "lines", len(b.lines))
	return nil
}

// Search compiles pattern and stores it (with direction) for subsequent
// NextSearch/PrevSearch, setting the unnamed jump marker before moving.
func (b *Buffer) Search(pattern string, backward bool) error {
	if _, err := search.Compile(pattern); err != nil {
		return err
	}
	b.searchExpr = pattern
	b.searchBackward = backward
	b.Mark('\'')
	return nil
}

// SearchMotion compiles and stores pattern as the active search, then
// returns a motion to the first match from the current cursor in the
// given direction (a NullMotion if there is none).
func (b *Buffer) SearchMotion(pattern string, backward bool) (MotionLike, error) {
	if err := b.Search(pattern, backward); err != nil {
		return nil, err
	}
	return b.NextSearchMotion(), nil
}

// NextSearchMotion returns a motion to the next match in the stored
// search direction, or a NullMotion if there is none.
func (b *Buffer) NextSearchMotion() MotionLike {
	pos, ok := b.NextSearch()
	if !ok {
		return b.newNullMotion()
	}
	return b.newMotion(b.Cursor(), pos)
}

// PrevSearchMotion returns a motion to the next match in the reverse of
// the stored search direction, or a NullMotion if there is none.
func (b *Buffer) PrevSearchMotion() MotionLike {
	pos, ok := b.PrevSearch()
	if !ok {
		return b.newNullMotion()
	}
	return b.newMotion(b.Cursor(), pos)
}

// NextSearch repeats the last search in its stored direction.
func (b *Buffer) NextSearch() (Position, bool) {
	if b.searchExpr == "" {
		return Position{}, false
	}
	if b.searchBackward {
		return b.backwardSearch(b.Cursor())
	}
	return b.forwardSearch(b.Cursor())
}

// PrevSearch repeats the last search in the reverse of its stored
// direction.
func (b *Buffer) PrevSearch() (Position, bool) {
	if b.searchExpr == "" {
		return Position{}, false
	}
	if b.searchBackward {
		return b.forwardSearch(b.Cursor())
	}
	return b.backwardSearch(b.Cursor())
}

// forwardSearch scans the remainder of the current line starting at
// pos.Col+1, then line by line forward, wrapping at end-of-buffer back to
// pos.Row to cover the portion of the start line before pos.Col. Zero-width
// matches are skipped.
func (b *Buffer) forwardSearch(pos Position) (Position, bool) {
	re, err := search.Compile(b.searchExpr)
	if err != nil {
		return Position{}, false
	}
	n := len(b.lines)
	row := pos.Row
	for attempt := 0; attempt <= n; attempt++ {
		line := b.lines[row]
		from := 0
		if attempt == 0 {
			from = pos.Col + 1
		}
		if from <= len(line) {
			if col, ok := firstNonEmptyMatch(re, line, from); ok {
				return Position{Row: row, Col: col}, true
			}
		}
		row = (row + 1) % n
	}
	return Position{}, false
}

// backwardSearch is forwardSearch's mirror: it scans backward from
// pos.Col, picking the last match strictly before pos.Col on the start
// line, then line by line backward, wrapping around to re-scan the rest of
// the start line last.
func (b *Buffer) backwardSearch(pos Position) (Position, bool) {
	re, err := search.Compile(b.searchExpr)
	if err != nil {
		return Position{}, false
	}
	n := len(b.lines)
	row := pos.Row
	for attempt := 0; attempt <= n; attempt++ {
		line := b.lines[row]
		upper := len(line)
		if attempt == 0 {
			upper = pos.Col
		}
		if col, ok := lastNonEmptyMatch(re, line, upper); ok {
			return Position{Row: row, Col: col}, true
		}
		row = (row - 1 + n) % n
	}
	return Position{}, false
}

func firstNonEmptyMatch(re *search.Pattern, line string, from int) (int, bool) {
	for _, loc := range re.FindAllStringIndex(line[from:], -1) {
		if loc[0] == loc[1] {
			continue
		}
		return from + loc[0], true
	}
	return 0, false
}

func lastNonEmptyMatch(re *search.Pattern, line string, upper int) (int, bool) {
	found, ok := -1, false
	for _, loc := range re.FindAllStringIndex(line, -1) {
		if loc[0] >= upper {
			break
		}
		if loc[0] == loc[1] {
			continue
		}
		found, ok = loc[0], true
	}
	return found, ok
}

// RegionsForLine merges stored regions intersecting row with live search
// matches on that line (tagged "search"), sorted by start column. Live
// search regions are computed on demand, never stored.
func (b *Buffer) RegionsForLine(row int) []region.Region {
	out := append([]region.Region{}, b.regions.ForLine(row)...)
	if b.searchExpr != "" {
		if re, err := search.Compile(b.searchExpr); err == nil {
			for _, loc := range re.FindAllStringIndex(b.lines[row], -1) {
				if loc[0] == loc[1] {
					continue
				}
				out = append(out, region.Region{
					Tag:   "search",
					Start: Position{Row: row, Col: loc[0]},
					End:   Position{Row: row, Col: loc[1]},
				})
			}
		}
	}
	sortRegionsByStart(out)
	return out
}

// Highlight materializes every buffer-wide match of the active search
// pattern as a persistent "hilight" region and returns how many were
// added. Every call gets its own generated owner, kept distinct from the
// stable "filetype" owner syntax regions use, so repeated highlighting of
// different patterns never collides on retraction.
func (b *Buffer) Highlight() (int, error) {
	if b.searchExpr == "" {
		return 0, ErrNoActiveSearch
	}
	re, err := search.Compile(b.searchExpr)
	if err != nil {
		return 0, err
	}

	owner := uuid.New().String()
	count := 0
	for row, line := range b.lines {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			if loc[0] == loc[1] {
				continue
			}
			b.regions.Add(region.Region{
				Owner: owner,
				Tag:   hilightTag,
				Start: Position{Row: row, Col: loc[0]},
				End:   Position{Row: row, Col: loc[1]},
			})
			count++
		}
	}
	return count, nil
}

// ClearHighlights removes every persistent "hilight" region, regardless of
// which Highlight call (or owner) created it.
func (b *Buffer) ClearHighlights() {
	b.regions.RemoveTag(hilightTag)
}

func sortRegionsByStart(rs []region.Region) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rs[j].Start.Less(rs[j-1].Start); j-- {
			rs[j], rs[j-1] = rs[j-1], rs[j]
		}
	}
}
