package catalog

import (
	"iter"
	"strings"

	"ms-venue/internal/models"
)

// MatchesByCountry returns matches where either side carries the team name.
func (c *Catalog) MatchesByCountry(country string) []*models.Match {
	return c.filterMatches(func(m *models.Match) bool {
		return (m.Home != nil && m.Home.Name == country) || (m.Away != nil && m.Away.Name == country)
	})
}

func (c *Catalog) MatchesByStadium(stadiumName string) []*models.Match {
	return c.filterMatches(func(m *models.Match) bool {
		return m.Stadium != nil && m.Stadium.Name == stadiumName
	})
}

// MatchesByDate compares against the source date string, YYYY-MM-DD.
func (c *Catalog) MatchesByDate(date string) []*models.Match {
	return c.filterMatches(func(m *models.Match) bool {
		return m.Date == date
	})
}

func (c *Catalog) filterMatches(keep func(*models.Match) bool) []*models.Match {
	var out []*models.Match
	for _, m := range c.Matches {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

// ProductHit locates a product inside the stadium tree.
type ProductHit struct {
	Stadium    *models.Stadium
	Restaurant *models.Restaurant
	Product    *models.Product
}

// AllProducts walks every stadium, restaurant and product in catalog order.
func (c *Catalog) AllProducts() iter.Seq[ProductHit] {
	return func(yield func(ProductHit) bool) {
		for _, s := range c.Stadiums {
			for _, r := range s.Restaurants {
				for _, p := range r.Products {
					if !yield(ProductHit{Stadium: s, Restaurant: r, Product: p}) {
						return
					}
				}
			}
		}
	}
}

// SearchProductsByName matches a case-sensitive substring of the name.
func (c *Catalog) SearchProductsByName(fragment string) []ProductHit {
	return c.searchProducts(func(p *models.Product) bool {
		return strings.Contains(p.Name, fragment)
	})
}

// SearchProductsByCategory matches a case-insensitive substring of the
// category tag, so "alcoholic" also hits "non-alcoholic".
func (c *Catalog) SearchProductsByCategory(category string) []ProductHit {
	needle := strings.ToLower(category)
	return c.searchProducts(func(p *models.Product) bool {
		return strings.Contains(strings.ToLower(p.Category), needle)
	})
}

// SearchProductsByPrice matches tax-inclusive prices within [min, max].
func (c *Catalog) SearchProductsByPrice(min, max float64) []ProductHit {
	return c.searchProducts(func(p *models.Product) bool {
		return p.UnitPrice >= min && p.UnitPrice <= max
	})
}

func (c *Catalog) searchProducts(keep func(*models.Product) bool) []ProductHit {
	var out []ProductHit
	for hit := range c.AllProducts() {
		if keep(hit.Product) {
			out = append(out, hit)
		}
	}
	return out
}
