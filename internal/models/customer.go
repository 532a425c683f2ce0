package models

import (
	"fmt"
	"strings"
	"time"
)

type TicketClass string

const (
	TicketClassGeneral TicketClass = "General"
	TicketClassVIP     TicketClass = "VIP"
)

// ParseTicketClass accepts exactly "General" or "VIP", surrounding blanks
// aside.
func ParseTicketClass(s string) (TicketClass, error) {
	switch TicketClass(strings.TrimSpace(s)) {
	case TicketClassGeneral:
		return TicketClassGeneral, nil
	case TicketClassVIP:
		return TicketClassVIP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTicketClass, s)
}

// Customer is a ticket holder. Records are immutable once appended to the
// ledger.
type Customer struct {
	Name        string      `json:"name"`
	PersonalID  string      `json:"personal_id"`
	Age         int         `json:"age"`
	TicketClass TicketClass `json:"ticket_class"`
	StadiumName string      `json:"stadium_name"`
	TicketCode  string      `json:"ticket_code"`
	MatchID     string      `json:"match_id,omitempty"`
	SeatLabel   string      `json:"seat_label,omitempty"`
	Price       TicketPrice `json:"price"`
	IssuedAt    time.Time   `json:"issued_at"`
}

func (c Customer) IsVIP() bool {
	return c.TicketClass == TicketClassVIP
}
