package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Records are the raw collections supplied by the catalog source, before
// cross references are resolved.
type Records struct {
	Teams    []TeamRecord
	Stadiums []StadiumRecord
	Matches  []MatchRecord
}

type TeamRecord struct {
	ID    Text   `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

type ProductRecord struct {
	Name      string  `json:"name"`
	Quantity  Integer `json:"quantity"`
	Price     Decimal `json:"price"`
	Adicional string  `json:"adicional"`
	Stock     Integer `json:"stock"`
}

type RestaurantRecord struct {
	Name     string          `json:"name"`
	Products []ProductRecord `json:"products"`
}

type StadiumRecord struct {
	ID          Text               `json:"id"`
	Name        string             `json:"name"`
	City        string             `json:"city"`
	Capacity    []Integer          `json:"capacity"`
	Restaurants []RestaurantRecord `json:"restaurants"`
}

type TeamRef struct {
	ID Text `json:"id"`
}

type MatchRecord struct {
	ID        Text    `json:"id"`
	Number    Integer `json:"number"`
	Home      TeamRef `json:"home"`
	Away      TeamRef `json:"away"`
	Date      string  `json:"date"`
	Group     string  `json:"group"`
	StadiumID Text    `json:"stadium_id"`
}

// Text accepts a JSON string or number and keeps its textual form.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("catalog: expected string or number, got %s", b)
	}
	*t = Text(n.String())
	return nil
}

// Decimal accepts a JSON number or a numeric string.
type Decimal float64

func (d *Decimal) UnmarshalJSON(b []byte) error {
	var t Text
	if err := t.UnmarshalJSON(b); err != nil {
		return err
	}
	if t == "" {
		*d = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(t), 64)
	if err != nil {
		return fmt.Errorf("catalog: invalid decimal %q: %w", string(t), err)
	}
	*d = Decimal(f)
	return nil
}

// Integer accepts a JSON number or a numeric string. Fractions are
// truncated.
type Integer int

func (n *Integer) UnmarshalJSON(b []byte) error {
	var d Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*n = Integer(d)
	return nil
}
