// Package concession sells restaurant products to VIP ticket holders inside
// the stadium their ticket is for.
package concession

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"ms-venue/internal/catalog"
	"ms-venue/internal/events"
	"ms-venue/internal/logger"
	"ms-venue/internal/models"
	"ms-venue/internal/pricing"
	"ms-venue/internal/tickets/ledger"
	"ms-venue/internal/utils"
)

// ListCatalog yields every (restaurant, product) pair of stadium in
// insertion order. The sequence can be ranged over any number of times.
func ListCatalog(stadium *models.Stadium) iter.Seq2[*models.Restaurant, *models.Product] {
	return func(yield func(*models.Restaurant, *models.Product) bool) {
		if stadium == nil {
			return
		}
		for _, r := range stadium.Restaurants {
			for _, p := range r.Products {
				if !yield(r, p) {
					return
				}
			}
		}
	}
}

// FindProduct matches name case-insensitively against the whole product
// name, returning the first hit.
func FindProduct(stadium *models.Stadium, name string) (*models.Restaurant, *models.Product, error) {
	name = strings.TrimSpace(name)
	for r, p := range ListCatalog(stadium) {
		if strings.EqualFold(p.Name, name) {
			return r, p, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %q", models.ErrProductNotFound, name)
}

type Request struct {
	PersonalID string   `json:"personal_id"`
	Products   []string `json:"products"`
}

// Quote is an authorised, priced selection whose stock is still untouched.
type Quote struct {
	Customer models.Customer       `json:"customer"`
	Lines    []models.PurchaseLine `json:"lines"`
	Subtotal float64               `json:"subtotal"`
	Discount float64               `json:"discount"`
	Total    float64               `json:"total"`

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

// Quote authorises the holder of req.PersonalID and prices the requested
// products at their ticket's stadium.
func (s *Service) Quote(req Request) (*Quote, error) {
	customer, err := s.Ledger.FindByPersonalID(strings.TrimSpace(req.PersonalID))
	if err != nil {
		return nil, err
	}
	if !customer.IsVIP() {
		return nil, fmt.Errorf("%w: %s holds a %s ticket", models.ErrNotEntitled, customer.Name, customer.TicketClass)
	}
	if len(req.Products) == 0 {
		return nil, fmt.Errorf("%w: no products requested", models.ErrInvalidInput)
	}

	stadium, ok := s.Catalog.StadiumByName(customer.StadiumName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrStadiumNotFound, customer.StadiumName)
	}

	q := &Quote{Customer: customer, stadium: stadium}
	for _, name := range req.Products {
		restaurant, product, err := FindProduct(stadium, name)
		if err != nil {
			return nil, err
		}
		if product.IsAlcoholic() && customer.Age < models.LegalDrinkingAge {
			return nil, fmt.Errorf("%w: %s", models.ErrAgeRestricted, product.Name)
		}
		q.Lines = append(q.Lines, models.PurchaseLine{Restaurant: restaurant.Name, Product: product})
		q.Subtotal += product.UnitPrice
	}

	q.Discount = pricing.ConcessionDiscount(customer.PersonalID, q.Subtotal)
	q.Total = q.Subtotal - q.Discount
	return q, nil
}

// Confirm decrements stock by one per line and records the purchase.
// Stock is not checked first and may go negative.
func (s *Service) Confirm(ctx context.Context, q *Quote) (models.Purchase, error) {
	if q == nil || q.stadium == nil {
		return models.Purchase{}, fmt.Errorf("%w: quote was not produced by this service", models.ErrInvalidInput)
	}

	names := make([]string, 0, len(q.Lines))
	for _, line := range q.Lines {
		line.Product.Stock--
		names = append(names, line.Product.Name)
		if line.Product.Stock < 0 {
			s.Logger.Warn("CONCESSION", fmt.Sprintf("%s stock is negative (%d)", line.Product.Name, line.Product.Stock))
		}
	}

	purchase := models.Purchase{
		ID:          utils.GenerateID(),
		TicketCode:  q.Customer.TicketCode,
		PersonalID:  q.Customer.PersonalID,
		StadiumName: q.stadium.Name,
		Products:    names,
		Subtotal:    q.Subtotal,
		Discount:    q.Discount,
		Total:       q.Total,
	}
	s.Ledger.RecordPurchase(purchase)

	s.Logger.LogConcession("CONFIRM", purchase.PersonalID,
		fmt.Sprintf("%d products at %s subtotal=%.2f discount=%.2f total=%.2f",
			len(names), purchase.StadiumName, purchase.Subtotal, purchase.Discount, purchase.Total))

	s.publish(ctx, purchase)
	return purchase, nil
}

// Purchase quotes and confirms in one step.
func (s *Service) Purchase(ctx context.Context, req Request) (models.Purchase, error) {
	q, err := s.Quote(req)
	if err != nil {
		return models.Purchase{}, err
	}
	return s.Confirm(ctx, q)
}

func (s *Service) publish(ctx context.Context, p models.Purchase) {
	e, err := events.NewConcessionPurchased(p)
	if err != nil {
		s.Logger.Warn("EVENTS", err.Error())
		return
	}
	if err := s.Publisher.Publish(ctx, e); err != nil {
		s.Logger.Warn("EVENTS", fmt.Sprintf("concession.purchased %s not published: %v", p.ID, err))
	}
}
