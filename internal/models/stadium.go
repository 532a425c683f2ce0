package models

import (
	"strings"

	"ms-venue/internal/seating"
)

// TaxRate is the flat VAT applied to ticket bases and product prices.
const TaxRate = 0.16

// AlcoholicCategory is the product tag gated behind the legal drinking age.
const AlcoholicCategory = "alcoholic"

// LegalDrinkingAge is the minimum age for AlcoholicCategory products.
const LegalDrinkingAge = 18

type Product struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"` // tax included
	Category  string  `json:"adicional"`
	Stock     int     `json:"stock"`
}

// NewProduct fixes the tax-inclusive unit price once, at load time.
func NewProduct(name string, quantity int, basePrice float64, category string, stock int) *Product {
	return &Product{
		Name:      name,
		Quantity:  quantity,
		UnitPrice: basePrice + basePrice*TaxRate,
		Category:  category,
		Stock:     stock,
	}
}

func (p *Product) IsAlcoholic() bool {
	return strings.EqualFold(p.Category, AlcoholicCategory)
}

type Restaurant struct {
	Name     string     `json:"name"`
	Products []*Product `json:"products"`
}

type Stadium struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	City            string        `json:"city"`
	GeneralCapacity int           `json:"general_capacity"`
	VIPCapacity     int           `json:"vip_capacity"`
	Restaurants     []*Restaurant `json:"restaurants"`

	Seats *seating.SeatMap `json:"-"`
}

// NewStadium builds a stadium whose seat grid is GeneralCapacity rows by
// VIPCapacity columns, all available.
func NewStadium(id, name, city string, general, vip int, restaurants []*Restaurant) *Stadium {
	return &Stadium{
		ID:              id,
		Name:            name,
		City:            city,
		GeneralCapacity: general,
		VIPCapacity:     vip,
		Restaurants:     restaurants,
		Seats:           seating.NewSeatMap(general, vip),
	}
}
