// Package catalogtest provides a small in-memory tournament catalog for
// tests of the packages built on top of it.
package catalogtest

import (
	"ms-venue/internal/catalog"
	"ms-venue/internal/models"
)

// TenAfterTax is the base price that becomes exactly 10.00 once taxed.
const TenAfterTax = 10 / (1 + models.TaxRate)

// Records returns the fixture source collections:
//
//	s1 Lusail Stadium, 3x2 seats: Grill (Nachos, Hot Dog, Beer[alcoholic]) all 10.00 taxed
//	s2 Al Bayt Stadium, 2x2 seats: Cafe (Coffee 2.32 taxed)
//	m1 Qatar vs Ecuador @ s1, m2 Senegal vs Qatar @ s2, m3 Ecuador vs Senegal @ s1
func Records() catalog.Records {
	return catalog.Records{
		Teams: []catalog.TeamRecord{
			{ID: "t1", Code: "QAT", Name: "Qatar", Group: "A"},
			{ID: "t2", Code: "ECU", Name: "Ecuador", Group: "A"},
			{ID: "t3", Code: "SEN", Name: "Senegal", Group: "A"},
		},
		Stadiums: []catalog.StadiumRecord{
			{
				ID: "s1", Name: "Lusail Stadium", City: "Lusail",
				Capacity: []catalog.Integer{3, 2},
				Restaurants: []catalog.RestaurantRecord{{
					Name: "Grill",
					Products: []catalog.ProductRecord{
						{Name: "Nachos", Quantity: 1, Price: TenAfterTax, Adicional: "plate", Stock: 10},
						{Name: "Hot Dog", Quantity: 1, Price: TenAfterTax, Adicional: "plate", Stock: 10},
						{Name: "Beer", Quantity: 1, Price: TenAfterTax, Adicional: "alcoholic", Stock: 10},
					},
				}},
			},
			{
				ID: "s2", Name: "Al Bayt Stadium", City: "Al Khor",
				Capacity: []catalog.Integer{2, 2},
				Restaurants: []catalog.RestaurantRecord{{
					Name: "Cafe",
					Products: []catalog.ProductRecord{
						{Name: "Coffee", Quantity: 1, Price: 2, Adicional: "non-alcoholic", Stock: 3},
					},
				}},
			},
		},
		Matches: []catalog.MatchRecord{
			{ID: "m1", Number: 1, Home: catalog.TeamRef{ID: "t1"}, Away: catalog.TeamRef{ID: "t2"}, Date: "2022-11-20", Group: "A", StadiumID: "s1"},
			{ID: "m2", Number: 2, Home: catalog.TeamRef{ID: "t3"}, Away: catalog.TeamRef{ID: "t1"}, Date: "2022-11-25", Group: "A", StadiumID: "s2"},
			{ID: "m3", Number: 3, Home: catalog.TeamRef{ID: "t2"}, Away: catalog.TeamRef{ID: "t3"}, Date: "2022-11-29", Group: "A", StadiumID: "s1"},
		},
	}
}

// New builds a fresh fixture catalog; every call returns independent state.
func New() *catalog.Catalog {
	return catalog.Build(Records())
}
