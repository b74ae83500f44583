package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReturnsEvent(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.Subscribe(ctx)

	b.Publish(CreatedEvent, "hello")

	msg := ListenCmd(ctx, ch)()
	ev, ok := msg.(Event[string])
	require.True(t, ok)
	require.Equal(t, "hello", ev.Payload)
}

func TestListenCmd_NilOnCancel(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	cancel()

	require.Nil(t, ListenCmd(ctx, ch)())
}

func TestListenCmd_NilOnClosedChannel(t *testing.T) {
	b := NewBroker[string]()

	ctx := context.Background()
	ch := b.Subscribe(ctx)
	b.Close()

	require.Nil(t, ListenCmd(ctx, ch)())
}

func TestContinuousListener_ReceivesSequence(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewContinuousListener(ctx, b)

	b.Publish(CreatedEvent, 1)
	b.Publish(CreatedEvent, 2)

	first := l.Listen()()
	second := l.Listen()()

	require.Equal(t, 1, first.(Event[int]).Payload)
	require.Equal(t, 2, second.(Event[int]).Payload)
}
