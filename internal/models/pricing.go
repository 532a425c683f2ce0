package models

// TicketPrice breaks down a ticket charge. Discount is the fraction of Base
// waived; Tax is computed on the undiscounted base.
type TicketPrice struct {
	Base     float64 `json:"base"`
	Discount float64 `json:"discount_fraction"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// DiscountAmount is the currency value removed from Base.
func (p TicketPrice) DiscountAmount() float64 {
	return p.Base * p.Discount
}
