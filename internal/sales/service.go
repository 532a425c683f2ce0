// Package sales runs the two-step ticket sale: a Quote validates and prices
// the request without touching state, Confirm reserves the seat and records
// the ticket.
package sales

import (
	"context"
	"fmt"
	"strings"

	"ms-venue/internal/catalog"
	"ms-venue/internal/events"
	"ms-venue/internal/logger"
	"ms-venue/internal/models"
	"ms-venue/internal/pricing"
	"ms-venue/internal/seating"
	"ms-venue/internal/tickets/ledger"
)

type Request struct {
	Name        string `json:"name"`
	PersonalID  string `json:"personal_id"`
	Age         int    `json:"age"`
	TicketClass string `json:"ticket_class"`
	MatchID     string `json:"match_id"`
	Row         int    `json:"row"`
	Column      int    `json:"column"`
}

// Quote is a priced, validated sale that has not been committed.
type Quote struct {
	Name        string             `json:"name"`
	PersonalID  string             `json:"personal_id"`
	Age         int                `json:"age"`
	TicketClass models.TicketClass `json:"ticket_class"`
	MatchID     string             `json:"match_id"`
	MatchTitle  string             `json:"match"`
	StadiumName string             `json:"stadium"`
	Row         int                `json:"row"`
	Column      int                `json:"column"`
	SeatLabel   string             `json:"seat_label"`
	Price       models.TicketPrice `json:"price"`

	stadium *models.Stadium
}

type Service struct {
	Catalog   *catalog.Catalog
	Ledger    *ledger.Ledger
	Publisher events.Publisher
	Logger    *logger.Logger
}

func NewService(cat *catalog.Catalog, l *ledger.Ledger, pub events.Publisher, log *logger.Logger) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{Catalog: cat, Ledger: l, Publisher: pub, Logger: log}
}

// Quote validates req against the catalog and seat map and prices it.
func (s *Service) Quote(req Request) (*Quote, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", models.ErrInvalidInput)
	}
	if req.Age < 0 {
		return nil, fmt.Errorf("%w: negative age %d", models.ErrInvalidInput, req.Age)
	}
	class, err := models.ParseTicketClass(req.TicketClass)
	if err != nil {
		return nil, err
	}

	match, err := s.Catalog.MatchByID(req.MatchID)
	if err != nil {
		return nil, err
	}
	stadium := match.Stadium
	if stadium == nil {
		return nil, fmt.Errorf("%w: match %s has no resolved stadium", models.ErrStadiumNotFound, match.ID)
	}
	if err := stadium.Seats.Check(req.Row, req.Column); err != nil {
		return nil, err
	}

	price, err := pricing.PriceTicket(class, req.PersonalID)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Name:        name,
		PersonalID:  strings.TrimSpace(req.PersonalID),
		Age:         req.Age,
		TicketClass: class,
		MatchID:     match.ID,
		MatchTitle:  match.Title(),
		StadiumName: stadium.Name,
		Row:         req.Row,
		Column:      req.Column,
		SeatLabel:   seating.Label(req.Row, req.Column),
		Price:       price,
		stadium:     stadium,
	}, nil
}

// Confirm commits q: the seat is occupied and the ticket appended to the
// ledger, or neither happens.
func (s *Service) Confirm(ctx context.Context, q *Quote) (models.Customer, error) {
	if q == nil || q.stadium == nil {
		return models.Customer{}, fmt.Errorf("%w: quote was not produced by this service", models.ErrInvalidInput)
	}
	seats := q.stadium.Seats

	// The seat may have been sold since the quote was produced.
	if err := seats.Check(q.Row, q.Column); err != nil {
		return models.Customer{}, err
	}

	customer, err := s.Ledger.IssueTicket(ctx, ledger.IssueInput{
		Name:        q.Name,
		PersonalID:  q.PersonalID,
		Age:         q.Age,
		TicketClass: q.TicketClass,
		StadiumName: q.StadiumName,
		MatchID:     q.MatchID,
		SeatLabel:   q.SeatLabel,
		Price:       q.Price,
	})
	if err != nil {
		return models.Customer{}, err
	}
	if _, err := seats.Reserve(q.Row, q.Column); err != nil {
		return models.Customer{}, fmt.Errorf("seat reservation failed after check: %w", err)
	}

	s.Logger.LogSale("CONFIRM", customer.TicketCode,
		fmt.Sprintf("%s %s %s %s total=%.2f", customer.Name, customer.TicketClass, q.MatchTitle, q.SeatLabel, q.Price.Total))

	s.publish(ctx, customer)
	return customer, nil
}

func (s *Service) publish(ctx context.Context, c models.Customer) {
	e, err := events.NewTicketIssued(c)
	if err != nil {
		s.Logger.Warn("EVENTS", err.Error())
		return
	}
	if err := s.Publisher.Publish(ctx, e); err != nil {
		s.Logger.Warn("EVENTS", fmt.Sprintf("ticket.issued for %s not published: %v", c.TicketCode, err))
	}
}
