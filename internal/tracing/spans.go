package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys for action-dispatch tracing.
const (
	AttrMode       = "action.mode"
	AttrKey        = "action.key"
	AttrKeyCount   = "action.key_count"
	AttrMotionKind = "action.motion_kind"
)

// SpanPrefixAction prefixes every action-dispatch span name.
const SpanPrefixAction = "action."

// StartAction starts a span for one completed key binding firing in mode.
// key is the key that completed the binding; keyCount is the number of
// keys the grammar consumed to reach completion. Callers must End() the
// returned span; motionKind may be "" when the action isn't a motion.
func StartAction(ctx context.Context, tracer trace.Tracer, mode, key string, keyCount int, motionKind string) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, SpanPrefixAction+mode, trace.WithSpanKind(trace.SpanKindInternal))
	attrs := []attribute.KeyValue{
		attribute.String(AttrMode, mode),
		attribute.String(AttrKey, key),
		attribute.Int(AttrKeyCount, keyCount),
	}
	if motionKind != "" {
		attrs = append(attrs, attribute.String(AttrMotionKind, motionKind))
	}
	span.SetAttributes(attrs...)
	return ctx, span
}
