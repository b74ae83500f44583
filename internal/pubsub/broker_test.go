package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroker_PublishReachesAllSubscribers(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := b.Subscribe(ctx)
	second := b.Subscribe(ctx)
	require.Equal(t, 2, b.SubscriberCount())

	b.Publish(CreatedEvent, "entry")

	for _, ch := range []<-chan Event[string]{first, second} {
		select {
		case ev := <-ch:
			require.Equal(t, CreatedEvent, ev.Type)
			require.Equal(t, "entry", ev.Payload)
			require.False(t, ev.Timestamp.IsZero())
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBroker_CancelRemovesSubscriber(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)

	cancel()

	// The cleanup goroutine closes the channel.
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return b.SubscriberCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestBroker_PublishDropsWhenBufferFull(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.Subscribe(ctx)

	// Overfill the buffer; Publish must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < defaultBufferSize*2; i++ {
			b.Publish(CreatedEvent, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}

	require.Len(t, ch, defaultBufferSize)
}

func TestBroker_CloseIsIdempotent(t *testing.T) {
	b := NewBroker[string]()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.Subscribe(ctx)

	b.Close()
	b.Close()

	_, ok := <-ch
	require.False(t, ok)

	// Publish and Subscribe on a closed broker are no-ops.
	b.Publish(CreatedEvent, "late")
	late := b.Subscribe(ctx)
	_, ok = <-late
	require.False(t, ok)
}
