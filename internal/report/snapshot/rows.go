package snapshot

import (
	"strings"
	"time"

	"github.com/uptrace/bun"

	"ms-venue/internal/models"
)

// TicketRow is one issued ticket. Seq keeps rows distinct when the
// accept-as-is code policy let a code repeat.
type TicketRow struct {
	bun.BaseModel `bun:"table:venue_tickets"`

	SessionID   string    `bun:"session_id,pk"`
	Seq         int       `bun:"seq,pk"`
	TicketCode  string    `bun:"ticket_code,notnull"`
	Name        string    `bun:"name"`
	PersonalID  string    `bun:"personal_id"`
	Age         int       `bun:"age"`
	TicketClass string    `bun:"ticket_class"`
	StadiumName string    `bun:"stadium_name"`
	MatchID     string    `bun:"match_id"`
	SeatLabel   string    `bun:"seat_label"`
	Base        float64   `bun:"base"`
	Discount    float64   `bun:"discount"`
	Tax         float64   `bun:"tax"`
	Total       float64   `bun:"total"`
	IssuedAt    time.Time `bun:"issued_at"`
}

type PurchaseRow struct {
	bun.BaseModel `bun:"table:venue_purchases"`

	SessionID   string    `bun:"session_id,pk"`
	PurchaseID  string    `bun:"purchase_id,pk"`
	TicketCode  string    `bun:"ticket_code"`
	PersonalID  string    `bun:"personal_id"`
	StadiumName string    `bun:"stadium_name"`
	Products    string    `bun:"products"`
	Subtotal    float64   `bun:"subtotal"`
	Discount    float64   `bun:"discount"`
	Total       float64   `bun:"total"`
	PurchasedAt time.Time `bun:"purchased_at"`
}

// ProductStockRow is a product's stock at export time.
type ProductStockRow struct {
	bun.BaseModel `bun:"table:venue_product_stock"`

	SessionID  string  `bun:"session_id,pk"`
	StadiumID  string  `bun:"stadium_id,pk"`
	Restaurant string  `bun:"restaurant,pk"`
	Product    string  `bun:"product,pk"`
	Category   string  `bun:"category"`
	UnitPrice  float64 `bun:"unit_price"`
	Stock      int     `bun:"stock"`
}

type SeatOccupancyRow struct {
	bun.BaseModel `bun:"table:venue_seat_occupancy"`

	SessionID string `bun:"session_id,pk"`
	StadiumID string `bun:"stadium_id,pk"`
	Stadium   string `bun:"stadium"`
	Capacity  int    `bun:"capacity"`
	Occupied  int    `bun:"occupied"`
}

func ticketRow(sessionID string, seq int, c models.Customer) TicketRow {
	return TicketRow{
		SessionID:   sessionID,
		Seq:         seq,
		TicketCode:  c.TicketCode,
		Name:        c.Name,
		PersonalID:  c.PersonalID,
		Age:         c.Age,
		TicketClass: string(c.TicketClass),
		StadiumName: c.StadiumName,
		MatchID:     c.MatchID,
		SeatLabel:   c.SeatLabel,
		Base:        c.Price.Base,
		Discount:    c.Price.Discount,
		Tax:         c.Price.Tax,
		Total:       c.Price.Total,
		IssuedAt:    c.IssuedAt,
	}
}

func purchaseRow(sessionID string, p models.Purchase) PurchaseRow {
	return PurchaseRow{
		SessionID:   sessionID,
		PurchaseID:  p.ID,
		TicketCode:  p.TicketCode,
		PersonalID:  p.PersonalID,
		StadiumName: p.StadiumName,
		Products:    strings.Join(p.Products, ","),
		Subtotal:    p.Subtotal,
		Discount:    p.Discount,
		Total:       p.Total,
		PurchasedAt: p.PurchasedAt,
	}
}
