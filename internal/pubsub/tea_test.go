package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReturnsEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	listener := NewContinuousListener[string](context.Background(), broker)
	broker.Publish(CreatedEvent, "entry")

	msg := listener.Listen()()
	event, ok := msg.(Event[string])
	require.True(t, ok)
	require.Equal(t, "entry", event.Payload)
}

func TestListenCmd_NilAfterCancel(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	listener := NewContinuousListener[string](ctx, broker)
	cancel()

	require.Nil(t, listener.Listen()())
}

func TestListenCmd_NilWhenChannelClosed(t *testing.T) {
	ch := make(chan Event[int])
	close(ch)

	require.Nil(t, ListenCmd(context.Background(), ch)())
}
