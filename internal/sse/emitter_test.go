package sse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-venue/internal/events"
)

func event(t events.Type, key string) events.Event {
	return events.Event{ID: key, Type: t, Key: key}
}

func TestEmitter_FiltersByType(t *testing.T) {
	e := NewEmitter()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tickets := e.Subscribe(ctx, events.TicketIssued)
	all := e.Subscribe(ctx, "")

	require.NoError(t, e.Publish(ctx, event(events.TicketIssued, "A")))
	require.NoError(t, e.Publish(ctx, event(events.ConcessionPurchased, "B")))

	assert.Equal(t, "A", (<-tickets).Key)
	assert.Equal(t, "A", (<-all).Key)
	assert.Equal(t, "B", (<-all).Key)
	assert.Empty(t, tickets)
}

func TestEmitter_UnsubscribeOnCancel(t *testing.T) {
	e := NewEmitter()
	ctx, cancel := context.WithCancel(context.Background())

	ch := e.Subscribe(ctx, events.TicketIssued)
	assert.Equal(t, 1, e.ClientCount(events.TicketIssued))

	cancel()
	require.Eventually(t, func() bool { return e.ClientCount(events.TicketIssued) == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-ch
	assert.False(t, open)
}

func TestEmitter_DropsWhenBufferFull(t *testing.T) {
	e := NewEmitter()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := e.Subscribe(ctx, "")
	for range ClientBuffer + 5 {
		require.NoError(t, e.Publish(ctx, event(events.TicketIssued, "x")))
	}
	assert.Len(t, ch, ClientBuffer)
}

func TestEmitter_Close(t *testing.T) {
	e := NewEmitter()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := e.Subscribe(ctx, "")
	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	_, open := <-ch
	assert.False(t, open)

	late := e.Subscribe(ctx, "")
	_, open = <-late
	assert.False(t, open)
	assert.NoError(t, e.Publish(ctx, event(events.TicketIssued, "x")))
}
