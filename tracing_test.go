package placematch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracing(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	m, err := New(WithTracerProvider(tp))
	require.NoError(t, err)

	_, err = m.Detect(context.Background(), sceneRequest())
	require.NoError(t, err)

	req := sceneRequest()
	req.CoarseQuery = nil
	_, err = m.Detect(context.Background(), req)
	require.Error(t, err)

	spans := rec.Ended()
	names := make([]string, len(spans))
	for i, s := range spans {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{
		"placematch.SearchLayer",
		"placematch.SearchLeaves",
		"placematch.Detect",
		"placematch.SearchLayer",
		"placematch.Detect",
	}, names)

	// Stage spans are children of the detection span.
	assert.Equal(t, spans[2].SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Equal(t, spans[2].SpanContext().SpanID(), spans[1].Parent().SpanID())

	assert.Equal(t, codes.Error, spans[3].Status().Code)
	assert.Equal(t, codes.Error, spans[4].Status().Code)
	assert.Equal(t, codes.Unset, spans[2].Status().Code)
}
