// Package sse fans confirmed domain events out to Server-Sent Events
// subscribers.
package sse

import (
	"context"
	"sync"

	"ms-venue/internal/events"
)

// ClientBuffer is the per-subscriber channel capacity. Events are dropped
// for a subscriber whose buffer is full.
const ClientBuffer = 10

// Emitter implements events.Publisher. Subscribers filter on an event type;
// the empty type receives everything.
type Emitter struct {
	mu      sync.RWMutex
	clients map[events.Type][]chan events.Event
	closed  bool
}

func NewEmitter() *Emitter {
	return &Emitter{clients: make(map[events.Type][]chan events.Event)}
}

// Subscribe registers a client until ctx is done. The returned channel is
// closed on unsubscribe or when the emitter closes.
func (e *Emitter) Subscribe(ctx context.Context, t events.Type) <-chan events.Event {
	ch := make(chan events.Event, ClientBuffer)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		close(ch)
		return ch
	}
	e.clients[t] = append(e.clients[t], ch)
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.remove(t, ch)
	}()
	return ch
}

// Publish never blocks and never fails.
func (e *Emitter) Publish(_ context.Context, ev events.Event) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, t := range []events.Type{ev.Type, ""} {
		for _, ch := range e.clients[t] {
			select {
			case ch <- ev:
			default:
				// slow client, skip
			}
		}
	}
	return nil
}

// Close disconnects every subscriber.
func (e *Emitter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	for t, clients := range e.clients {
		for _, ch := range clients {
			close(ch)
		}
		delete(e.clients, t)
	}
	return nil
}

func (e *Emitter) remove(t events.Type, ch chan events.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	clients := e.clients[t]
	for i, c := range clients {
		if c == ch {
			e.clients[t] = append(clients[:i], clients[i+1:]...)
			close(ch)
			break
		}
	}
	if len(e.clients[t]) == 0 {
		delete(e.clients, t)
	}
}

// ClientCount returns the number of subscribers for t.
func (e *Emitter) ClientCount(t events.Type) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.clients[t])
}
