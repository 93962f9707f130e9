package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/geocoder89/learnhub/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestLogger_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := observability.NewLogger("dev", &buf)

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	log.InfoContext(ctx, "inside span")
	span.End()

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, span.SpanContext().TraceID().String(), rec["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), rec["span_id"])
}

func TestLogger_NoSpanNoIDs(t *testing.T) {
	var buf bytes.Buffer
	log := observability.NewLogger("prod", &buf)

	log.Debug("hidden")
	assert.Zero(t, buf.Len(), "debug is off outside dev")

	log.Info("plain")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.NotContains(t, rec, "trace_id")
}

func TestLogger_AddsOperation(t *testing.T) {
	var buf bytes.Buffer
	log := observability.NewLogger("dev", &buf)

	ctx := observability.WithOperation(context.Background(), "enroll")
	log.InfoContext(ctx, "user enrolled")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "enroll", rec["op"])

	op, ok := observability.OperationFrom(context.Background())
	assert.False(t, ok)
	assert.Empty(t, op)
}
