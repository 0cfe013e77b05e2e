package filetype

import (
	"go/scanner"
	"go/token"
	"strings"

	"github.com/pym-editor/pym/internal/region"
)

// GoFileType tokenizes Go source with the standard library scanner,
// tagging keywords, string/rune/import literals and comments.
type GoFileType struct{}

// Name returns "go".
func (GoFileType) Name() string { return "go" }

// Tokenize scans the joined buffer text and maps each token's byte offset
// back to a (row, col) span via a line-offset table built from lines.
func (GoFileType) Tokenize(lines []string) []Span {
	src := strings.Join(lines, "\n")
	offsets := lineOffsets(lines)

	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var s scanner.Scanner
	s.Init(file, []byte(src), nil, scanner.ScanComments)

	var spans []Span
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		tag, ok := tagFor(tok)
		if !ok {
			continue
		}
		start := int(pos) - 1
		end := start + tokenLen(tok, lit)
		spans = append(spans, Span{
			Start: offsetToPosition(offsets, start),
			End:   offsetToPosition(offsets, end),
			Tag:   tag,
		})
	}
	return spans
}

func tokenLen(tok token.Token, lit string) int {
	if lit != "" {
		return len(lit)
	}
	return len(tok.String())
}

func tagFor(tok token.Token) (string, bool) {
	switch {
	case tok.IsKeyword():
		return "keyword", true
	case tok == token.STRING, tok == token.CHAR:
		return "string", true
	case tok == token.COMMENT:
		return "comment", true
	case tok == token.INT, tok == token.FLOAT, tok == token.IMAG:
		return "number", true
	default:
		return "", false
	}
}

// lineOffsets returns the byte offset, within the "\n"-joined text, of the
// first byte of each line.
func lineOffsets(lines []string) []int {
	offsets := make([]int, len(lines))
	acc := 0
	for i, line := range lines {
		offsets[i] = acc
		acc += len(line) + 1
	}
	return offsets
}

// offsetToPosition converts a byte offset in the joined text back to a
// (row, col) buffer position via binary-search-free linear scan over the
// (small, line-count-sized) offsets table.
func offsetToPosition(offsets []int, offset int) region.Position {
	row := 0
	for i := 1; i < len(offsets); i++ {
		if offsets[i] > offset {
			break
		}
		row = i
	}
	return region.Position{Row: row, Col: offset - offsets[row]}
}
