// Package ledger is the in-memory registry of tickets issued during one
// session, plus the concession purchases recorded against them.
package ledger

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"ms-venue/internal/models"
	"ms-venue/internal/tickets/codes"
)

// Ledger is not safe for concurrent use; callers serialise access.
type Ledger struct {
	policy    codes.Policy
	now       func() time.Time
	customers []models.Customer
	purchases []models.Purchase
}

type Option func(*Ledger)

// WithClock overrides the issue timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// New builds an empty ledger. A nil policy falls back to accept-as-is
// random codes.
func New(policy codes.Policy, opts ...Option) *Ledger {
	if policy == nil {
		policy = codes.NewAcceptAsIs()
	}
	l := &Ledger{
		policy: policy,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type IssueInput struct {
	Name        string
	PersonalID  string
	Age         int
	TicketClass models.TicketClass
	StadiumName string
	MatchID     string
	SeatLabel   string
	Price       models.TicketPrice
}

// IssueTicket assigns a ticket code and appends the holder to the ledger.
// Nothing is appended when validation or code generation fails.
func (l *Ledger) IssueTicket(ctx context.Context, in IssueInput) (models.Customer, error) {
	if _, err := models.ParseTicketClass(string(in.TicketClass)); err != nil {
		return models.Customer{}, err
	}
	if in.Age < 0 {
		return models.Customer{}, fmt.Errorf("%w: negative age %d", models.ErrInvalidInput, in.Age)
	}

	code, err := l.policy.Next(ctx)
	if err != nil {
		return models.Customer{}, fmt.Errorf("failed to assign ticket code: %w", err)
	}

	customer := models.Customer{
		Name:        in.Name,
		PersonalID:  in.PersonalID,
		Age:         in.Age,
		TicketClass: in.TicketClass,
		StadiumName: in.StadiumName,
		TicketCode:  code,
		MatchID:     in.MatchID,
		SeatLabel:   in.SeatLabel,
		Price:       in.Price,
		IssuedAt:    l.now(),
	}
	l.customers = append(l.customers, customer)
	return customer, nil
}

// ValidateTicket returns the first holder of code.
func (l *Ledger) ValidateTicket(code string) (models.Customer, error) {
	for _, c := range l.customers {
		if c.TicketCode == code {
			return c, nil
		}
	}
	return models.Customer{}, fmt.Errorf("%w: %s", models.ErrTicketNotFound, code)
}

// FindByPersonalID returns the first ticket issued to personalID.
func (l *Ledger) FindByPersonalID(personalID string) (models.Customer, error) {
	for _, c := range l.customers {
		if c.PersonalID == personalID {
			return c, nil
		}
	}
	return models.Customer{}, fmt.Errorf("%w: %s", models.ErrCustomerNotFound, strings.TrimSpace(personalID))
}

func (l *Ledger) Len() int {
	return len(l.customers)
}

// Customers returns a copy of every record in issue order.
func (l *Ledger) Customers() []models.Customer {
	return slices.Clone(l.customers)
}

// All iterates records in issue order.
func (l *Ledger) All() iter.Seq[models.Customer] {
	return slices.Values(l.customers)
}

// RecordPurchase appends a confirmed concession purchase.
func (l *Ledger) RecordPurchase(p models.Purchase) {
	if p.PurchasedAt.IsZero() {
		p.PurchasedAt = l.now()
	}
	l.purchases = append(l.purchases, p)
}

func (l *Ledger) Purchases() []models.Purchase {
	return slices.Clone(l.purchases)
}
