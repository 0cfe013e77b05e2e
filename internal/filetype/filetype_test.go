package filetype

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pym-editor/pym/internal/region"
)

func TestRegistryDetectsByExtension(t *testing.T) {
	r := NewRegistry()
	ft := r.Detect("main.go", "")
	assert.Equal(t, "go", ft.Name())
}

func TestRegistryDetectsByMimeOverExtension(t *testing.T) {
	r := NewRegistry()
	r.Register(Plain{}, nil, []string{"text/x-go"})
	ft := r.Detect("main.go", "text/x-go")
	assert.Equal(t, "plain", ft.Name())
}

func TestRegistryFallsBackToPlain(t *testing.T) {
	r := NewRegistry()
	ft := r.Detect("README.md", "")
	assert.Equal(t, "plain", ft.Name())
}

func TestPlainTokenizeIsEmpty(t *testing.T) {
	var p Plain
	assert.Nil(t, p.Tokenize([]string{"anything", "at all"}))
}

func TestGoFileTypeTagsKeywordsAndStrings(t *testing.T) {
	var g GoFileType
	lines := []string{
		`package main`,
		``,
		`func main() {`,
		`	x := "hi"`,
		`	_ = x`,
		`}`,
	}
	spans := g.Tokenize(lines)

	assertHasTag(t, spans, "keyword", region.Position{Row: 0, Col: 0}) // package
	assertHasTag(t, spans, "keyword", region.Position{Row: 2, Col: 0}) // func
	assertHasTag(t, spans, "string", region.Position{Row: 3, Col: 6})
}

func assertHasTag(t *testing.T, spans []Span, tag string, start region.Position) {
	t.Helper()
	for _, s := range spans {
		if s.Tag == tag && s.Start == start {
			return
		}
	}
	t.Fatalf("no span tagged %q starting at %v in %v", tag, start, spans)
}
