package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case event, ok := <-ch:
		require.True(t, ok, "channel closed before an event arrived")
		return event
	case <-time.After(time.Second):
		require.FailNow(t, "timeout waiting for event")
	}
	return Event[T]{}
}

func TestBroker_DeliversToEverySubscriber(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx := context.Background()
	first := broker.Subscribe(ctx)
	second := broker.Subscribe(ctx)
	require.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(CreatedEvent, "labrador.jpg")

	for _, ch := range []<-chan Event[string]{first, second} {
		event := receive(t, ch)
		require.Equal(t, "labrador.jpg", event.Payload)
		require.Equal(t, CreatedEvent, event.Type)
		require.False(t, event.Timestamp.IsZero())
	}
}

func TestBroker_ContextCancelUnsubscribes(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool { return broker.SubscriberCount() == 0 },
		time.Second, 5*time.Millisecond)

	_, ok := <-ch
	require.False(t, ok, "channel should be closed after cancel")
}

func TestBroker_FullSubscriberDropsInsteadOfBlocking(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	ch := broker.Subscribe(context.Background())

	broker.Publish(CreatedEvent, 1)
	broker.Publish(CreatedEvent, 2)
	broker.Publish(CreatedEvent, 3)

	require.Equal(t, 1, receive(t, ch).Payload)
	require.Equal(t, uint64(2), broker.Dropped())
}

func TestBroker_CloseIsIdempotentAndStopsPublishing(t *testing.T) {
	broker := NewBroker[string]()
	ch := broker.Subscribe(context.Background())

	broker.Close()
	broker.Close()
	broker.Publish(CreatedEvent, "ignored")

	_, ok := <-ch
	require.False(t, ok)

	late := broker.Subscribe(context.Background())
	_, ok = <-late
	require.False(t, ok, "subscribing to a closed broker yields a closed channel")
}
