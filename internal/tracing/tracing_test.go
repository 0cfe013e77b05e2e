package tracing

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.False(t, cfg.Enabled)
	require.Equal(t, "none", cfg.Exporter)
	require.Equal(t, 1.0, cfg.SampleRate)
	require.Equal(t, "pym", cfg.ServiceName)
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.False(t, provider.Enabled())

	ctx, span := provider.Tracer().Start(context.Background(), "test-span")
	require.NotNil(t, ctx)
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_Enabled_FileExporter(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	cfg := Config{
		Enabled:     true,
		Exporter:    "file",
		FilePath:    tracePath,
		SampleRate:  1.0,
		ServiceName: "pym-test",
	}

	provider, err := NewProvider(cfg)
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	_, span := StartAction(context.Background(), provider.Tracer(), "normal", "x", 1, "")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	var record SpanRecord
	require.NoError(t, json.Unmarshal(data, &record))
	require.Equal(t, "action.normal", record.Name)
	require.Equal(t, "normal", record.Attributes[AttrMode])
	require.Equal(t, "x", record.Attributes[AttrKey])
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "file"})
	require.Error(t, err)
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "bogus"})
	require.Error(t, err)
}

func TestStartAction_MotionKindOmittedWhenEmpty(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	provider, err := NewProvider(Config{Enabled: true, Exporter: "file", FilePath: tracePath})
	require.NoError(t, err)

	_, span := StartAction(context.Background(), provider.Tracer(), "normal", "j", 1, "")
	span.End()
	require.NoError(t, provider.Shutdown(context.Background()))

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	var record SpanRecord
	require.NoError(t, json.Unmarshal(data, &record))
	require.NotContains(t, record.Attributes, AttrMotionKind)
}
