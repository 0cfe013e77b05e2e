// Package editor wires the buffer, file-type detection, and the default
// terminal UI together into the program cmd/root.go runs.
package editor

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pym-editor/pym/internal/buffer"
	"github.com/pym-editor/pym/internal/config"
	"github.com/pym-editor/pym/internal/filetype"
	"github.com/pym-editor/pym/internal/log"
	"github.com/pym-editor/pym/internal/region"
	"github.com/pym-editor/pym/internal/ui"
)

// types is the process-wide file-type registry; built-in Go/plain
// detection today, extensible via Register for a future plugin surface.
var types = filetype.NewRegistry()

// Open loads path (if non-empty) into a fresh buffer, detects and applies
// its file type's syntax regions, and builds the Bubble Tea program model
// driving it. An empty path yields an empty, untitled buffer.
func Open(path string, cfg config.Config) (*ui.Model, error) {
	buf := buffer.New()
	if path != "" {
		if err := buf.LoadFile(path); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		applyFileType(buf, path)
		log.Info(log.CatFile, "Loaded file", "path", path, "fileType", buf.FileType())
	}
	return ui.New(buf, cfg, path), nil
}

// applyFileType detects path's file type and tags the freshly-loaded
// buffer's lines with its syntax regions.
func applyFileType(buf *buffer.Buffer, path string) {
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	ft := types.Detect(path, mimeType)
	buf.SetFileType(ft.Name())

	spans := ft.Tokenize(buf.Lines())
	if len(spans) == 0 {
		return
	}
	for _, span := range spans {
		buf.Regions().Add(region.Region{
			Owner: filetype.Regions,
			Tag:   span.Tag,
			Start: span.Start,
			End:   span.End,
		})
	}
}

// Run starts model as a full-screen Bubble Tea program and blocks until it
// exits.
func Run(model *ui.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()
	shutdownErr := model.Shutdown(context.Background())

	switch {
	case runErr != nil:
		return fmt.Errorf("running program: %w", runErr)
	case shutdownErr != nil:
		return fmt.Errorf("shutting down tracing: %w", shutdownErr)
	default:
		return nil
	}
}
