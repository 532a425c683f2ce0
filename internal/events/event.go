// Package events publishes domain events emitted after a sale or concession
// purchase is confirmed. Publishing is best effort: callers log failures and
// never roll back the confirmed state.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"ms-venue/internal/models"
	"ms-venue/internal/utils"
)

type Type string

const (
	TicketIssued        Type = "ticket.issued"
	ConcessionPurchased Type = "concession.purchased"
)

// Event is the envelope written to every broker.
type Event struct {
	ID         string          `json:"id"`
	Type       Type            `json:"type"`
	Key        string          `json:"key"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type TicketIssuedPayload struct {
	TicketCode  string             `json:"ticket_code"`
	Name        string             `json:"name"`
	PersonalID  string             `json:"personal_id"`
	TicketClass models.TicketClass `json:"ticket_class"`
	MatchID     string             `json:"match_id"`
	StadiumName string             `json:"stadium_name"`
	SeatLabel   string             `json:"seat_label"`
	Total       float64            `json:"total"`
}

type ConcessionPurchasedPayload struct {
	PurchaseID  string   `json:"purchase_id"`
	TicketCode  string   `json:"ticket_code"`
	PersonalID  string   `json:"personal_id"`
	StadiumName string   `json:"stadium_name"`
	Products    []string `json:"products"`
	Subtotal    float64  `json:"subtotal"`
	Discount    float64  `json:"discount"`
	Total       float64  `json:"total"`
}

// NewEvent marshals payload into a fresh envelope keyed by key.
func NewEvent(t Type, key string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", t, err)
	}
	return Event{
		ID:         utils.GenerateID(),
		Type:       t,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}, nil
}

func NewTicketIssued(c models.Customer) (Event, error) {
	return NewEvent(TicketIssued, c.TicketCode, TicketIssuedPayload{
		TicketCode:  c.TicketCode,
		Name:        c.Name,
		PersonalID:  c.PersonalID,
		TicketClass: c.TicketClass,
		MatchID:     c.MatchID,
		StadiumName: c.StadiumName,
		SeatLabel:   c.SeatLabel,
		Total:       c.Price.Total,
	})
}

func NewConcessionPurchased(p models.Purchase) (Event, error) {
	return NewEvent(ConcessionPurchased, p.TicketCode, ConcessionPurchasedPayload{
		PurchaseID:  p.ID,
		TicketCode:  p.TicketCode,
		PersonalID:  p.PersonalID,
		StadiumName: p.StadiumName,
		Products:    p.Products,
		Subtotal:    p.Subtotal,
		Discount:    p.Discount,
		Total:       p.Total,
	})
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Multi publishes to every member and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps published events in memory. Used by the HTTP surface's
// recent-events listing and by tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	next   Publisher
}

// NewRecorder records events and forwards them to next when it is non-nil.
func NewRecorder(next Publisher) *Recorder {
	return &Recorder{next: next}
}

func (r *Recorder) Publish(ctx context.Context, e Event) error {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	if r.next == nil {
		return nil
	}
	return r.next.Publish(ctx, e)
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Close() error {
	if r.next == nil {
		return nil
	}
	return r.next.Close()
}
