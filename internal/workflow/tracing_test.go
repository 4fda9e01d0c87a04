package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/petsense/internal/classify"
	"github.com/zjrosen/petsense/internal/photo"
	"github.com/zjrosen/petsense/internal/source"
	"github.com/zjrosen/petsense/internal/testutil"
	"github.com/zjrosen/petsense/internal/tracing"
)

func newTracedModel(t *testing.T, clock *testutil.Clock, c classify.Classifier) (Model, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	return New(Config{
		Classifier:    c,
		Gate:          3 * time.Second,
		FrameInterval: 50 * time.Millisecond,
		Clock:         clock,
		Tracer:        tp.Tracer("test"),
	}), recorder
}

func attrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestAcquire_RecordsSpan(t *testing.T) {
	m, recorder := newTracedModel(t, testutil.NewClock(), &testutil.Classifier{})
	ref := testutil.Ref("cam.jpg")

	_, cmd := m.Acquire(source.KindCamera, source.ProviderFunc(func(context.Context) (photo.Reference, error) {
		return ref, nil
	}))
	cmd()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, tracing.SpanAcquire, spans[0].Name())
	got := attrs(spans[0])
	require.Equal(t, source.KindCamera.String(), got[tracing.AttrSource].AsString())
	require.Equal(t, ref.ID.String(), got[tracing.AttrPhotoID].AsString())
}

func TestAcquire_DeniedSpanIsError(t *testing.T) {
	m, recorder := newTracedModel(t, testutil.NewClock(), &testutil.Classifier{})

	_, cmd := m.Acquire(source.KindLibrary, source.ProviderFunc(func(context.Context) (photo.Reference, error) {
		return photo.Reference{}, source.ErrPermissionDenied
	}))
	cmd()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.Equal(t, PermissionDenied.String(), attrs(spans[0])[tracing.AttrFailure].AsString())
}

func TestSubmit_RecordsSpan(t *testing.T) {
	clock := testutil.NewClock()
	fc := &testutil.Classifier{Result: classify.Result{Label: "Corgi", Probability: 88}}
	m, recorder := newTracedModel(t, clock, fc)
	m = ready(m, clock, testutil.Ref("corgi.jpg"))

	m, cmd, err := m.Submit()
	require.NoError(t, err)
	runSubmit(m, cmd)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, tracing.SpanSubmit, spans[0].Name())
	require.Equal(t, int64(m.Generation()), attrs(spans[0])[tracing.AttrGeneration].AsInt64())
	require.NotEqual(t, codes.Error, spans[0].Status().Code)
}
