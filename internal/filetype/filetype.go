// Package filetype maps a loaded file's path/MIME type to a tokenizer that
// produces syntax regions for it, driven off file extension/MIME instead
// of a fixed query grammar.
package filetype

import (
	"path/filepath"

	"github.com/pym-editor/pym/internal/region"
)

// Span is a single tagged token produced by a Tokenizer, in buffer
// coordinates.
type Span struct {
	Start region.Position
	End   region.Position
	Tag   string
}

// FileType tokenizes buffer text into syntax spans. Plain exists as the
// zero-work fallback: Tokenize always returns nil.
type FileType interface {
	Name() string
	Tokenize(lines []string) []Span
}

// Regions is the stable owner name tagging syntax spans added to a buffer's
// region store, so a later re-tokenization can retract exactly its own
// spans via Store.RemoveOwner without touching search or other owners.
const Regions = "filetype"

// Registry resolves a file path and/or MIME type to a FileType, falling
// back to Plain when nothing more specific matches.
type Registry struct {
	byExt  map[string]FileType
	byMime map[string]FileType
}

// NewRegistry returns a Registry pre-populated with the built-in go and
// plain file types.
func NewRegistry() *Registry {
	r := &Registry{
		byExt:  make(map[string]FileType),
		byMime: make(map[string]FileType),
	}
	goType := GoFileType{}
	r.Register(goType, []string{".go"}, []string{"text/x-go"})
	return r
}

// Register associates a FileType with the given extensions (including the
// leading dot) and MIME types.
func (r *Registry) Register(ft FileType, exts, mimes []string) {
	for _, ext := range exts {
		r.byExt[ext] = ft
	}
	for _, mime := range mimes {
		r.byMime[mime] = ft
	}
}

// Detect resolves path/mime to a FileType, preferring an exact MIME match,
// then the path's extension, then Plain.
func (r *Registry) Detect(path, mime string) FileType {
	if mime != "" {
		if ft, ok := r.byMime[mime]; ok {
			return ft
		}
	}
	if ext := filepath.Ext(path); ext != "" {
		if ft, ok := r.byExt[ext]; ok {
			return ft
		}
	}
	return Plain{}
}

// Plain is the fallback FileType: it never produces syntax regions.
type Plain struct{}

// Name returns "plain".
func (Plain) Name() string { return "plain" }

// Tokenize always returns nil: plain text carries no syntax spans.
func (Plain) Tokenize(_ []string) []Span { return nil }
