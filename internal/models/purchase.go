package models

import "time"

// PurchaseLine is one selected product, kept by reference so stock can be
// decremented on confirmation.
type PurchaseLine struct {
	Restaurant string   `json:"restaurant"`
	Product    *Product `json:"product"`
}

// Purchase is a confirmed concession order recorded against a ticket.
type Purchase struct {
	ID          string    `json:"id"`
	TicketCode  string    `json:"ticket_code"`
	PersonalID  string    `json:"personal_id"`
	StadiumName string    `json:"stadium_name"`
	Products    []string  `json:"products"`
	Subtotal    float64   `json:"subtotal"`
	Discount    float64   `json:"discount"`
	Total       float64   `json:"total"`
	PurchasedAt time.Time `json:"purchased_at"`
}
