// Package pricing computes ticket charges and the number-theory checks
// behind the personal-id discounts.
package pricing

import (
	"fmt"

	"ms-venue/internal/models"
)

const (
	GeneralBase = 35.0
	VIPBase     = 75.0

	// VampireDiscount is the fraction of the ticket base waived when the
	// buyer's personal id is a vampire number.
	VampireDiscount = 0.5
	// PerfectDiscount is the fraction of a concession subtotal waived when
	// the buyer's personal id is a perfect number.
	PerfectDiscount = 0.15
)

// BasePrice returns the undiscounted, untaxed fare for a ticket class.
func BasePrice(class models.TicketClass) (float64, error) {
	switch class {
	case models.TicketClassGeneral:
		return GeneralBase, nil
	case models.TicketClassVIP:
		return VIPBase, nil
	}
	return 0, fmt.Errorf("%w: %q", models.ErrInvalidTicketClass, class)
}

// PriceTicket computes base, discount fraction, tax and total. Tax is taken
// on the full base regardless of discount.
func PriceTicket(class models.TicketClass, personalID string) (models.TicketPrice, error) {
	base, err := BasePrice(class)
	if err != nil {
		return models.TicketPrice{}, err
	}

	discount := 0.0
	if n, ok := ParsePersonalID(personalID); ok && IsVampire(n) {
		discount = VampireDiscount
	}

	tax := base * models.TaxRate
	return models.TicketPrice{
		Base:     base,
		Discount: discount,
		Tax:      tax,
		Total:    base - base*discount + tax,
	}, nil
}

// ConcessionDiscount returns the amount waived from a concession subtotal.
func ConcessionDiscount(personalID string, subtotal float64) float64 {
	if n, ok := ParsePersonalID(personalID); ok && IsPerfect(n) {
		return subtotal * PerfectDiscount
	}
	return 0
}
