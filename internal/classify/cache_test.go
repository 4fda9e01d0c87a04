package classify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/petsense/internal/photo"
	"github.com/zjrosen/petsense/internal/tracing"
)

type countingClassifier struct {
	calls  int
	result Result
	err    error
}

func (c *countingClassifier) Classify(context.Context, photo.Reference) (Result, error) {
	c.calls++
	return c.result, c.err
}

func TestCachingClassifier_SameBytesHitCache(t *testing.T) {
	inner := &countingClassifier{result: Result{Label: "Shiba Inu", Probability: 77}}
	c := NewCachingClassifier(inner, time.Minute)

	first, err := c.Classify(context.Background(), newPhoto(t))
	require.NoError(t, err)
	second, err := c.Classify(context.Background(), newPhoto(t))
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, inner.calls)
}

func TestCachingClassifier_FailuresNotCached(t *testing.T) {
	inner := &countingClassifier{err: &Error{Op: "classify", Kind: KindServer, Err: errors.New("503")}}
	c := NewCachingClassifier(inner, time.Minute)
	ref := newPhoto(t)

	_, err := c.Classify(context.Background(), ref)
	require.Equal(t, KindServer, KindOf(err))
	_, err = c.Classify(context.Background(), ref)
	require.Error(t, err)
	require.Equal(t, 2, inner.calls)
}

func TestCachingClassifier_RecordsHitOnCallerSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()
	tracer := tp.Tracer("test")

	c := NewCachingClassifier(&countingClassifier{result: Result{Label: "Pug", Probability: 64}}, time.Minute)
	for range 2 {
		ctx, span := tracer.Start(context.Background(), "submit")
		_, err := c.Classify(ctx, newPhoto(t))
		require.NoError(t, err)
		span.End()
	}

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	var hits []bool
	for _, s := range spans {
		for _, kv := range s.Attributes() {
			if kv.Key == tracing.AttrCacheHit {
				hits = append(hits, kv.Value.AsBool())
			}
		}
	}
	require.Equal(t, []bool{false, true}, hits)
}
