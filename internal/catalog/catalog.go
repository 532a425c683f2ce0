// Package catalog holds the immutable tournament reference data: teams,
// stadiums with their restaurant/product trees, and matches.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"ms-venue/internal/logger"
	"ms-venue/internal/models"
)

// Catalog is built once per session. Only product stock and stadium seat
// grids change afterwards.
type Catalog struct {
	Teams    []*models.Team
	Stadiums []*models.Stadium
	Matches  []*models.Match

	teamsByID     map[string]*models.Team
	stadiumsByID  map[string]*models.Stadium
	stadiumByName map[string]*models.Stadium
	matchesByID   map[string]*models.Match
}

// Empty returns a catalog with no entities.
func Empty() *Catalog {
	return Build(Records{})
}

// Build converts raw records into the model and resolves match references.
// Duplicate ids keep the first record.
func Build(r Records) *Catalog {
	c := &Catalog{
		Teams:         make([]*models.Team, 0, len(r.Teams)),
		Stadiums:      make([]*models.Stadium, 0, len(r.Stadiums)),
		Matches:       make([]*models.Match, 0, len(r.Matches)),
		teamsByID:     make(map[string]*models.Team, len(r.Teams)),
		stadiumsByID:  make(map[string]*models.Stadium, len(r.Stadiums)),
		stadiumByName: make(map[string]*models.Stadium, len(r.Stadiums)),
		matchesByID:   make(map[string]*models.Match, len(r.Matches)),
	}

	for _, t := range r.Teams {
		team := &models.Team{ID: string(t.ID), Code: t.Code, Name: t.Name, Group: t.Group}
		if _, dup := c.teamsByID[team.ID]; dup {
			continue
		}
		c.teamsByID[team.ID] = team
		c.Teams = append(c.Teams, team)
	}

	for _, s := range r.Stadiums {
		restaurants := make([]*models.Restaurant, 0, len(s.Restaurants))
		for _, rr := range s.Restaurants {
			products := make([]*models.Product, 0, len(rr.Products))
			for _, p := range rr.Products {
				products = append(products, models.NewProduct(p.Name, int(p.Quantity), float64(p.Price), p.Adicional, int(p.Stock)))
			}
			restaurants = append(restaurants, &models.Restaurant{Name: rr.Name, Products: products})
		}

		var general, vip int
		if len(s.Capacity) > 0 {
			general = int(s.Capacity[0])
		}
		if len(s.Capacity) > 1 {
			vip = int(s.Capacity[1])
		}

		stadium := models.NewStadium(string(s.ID), s.Name, s.City, general, vip, restaurants)
		if _, dup := c.stadiumsByID[stadium.ID]; dup {
			continue
		}
		c.stadiumsByID[stadium.ID] = stadium
		if _, dup := c.stadiumByName[stadium.Name]; !dup {
			c.stadiumByName[stadium.Name] = stadium
		}
		c.Stadiums = append(c.Stadiums, stadium)
	}

	for _, m := range r.Matches {
		match := &models.Match{
			ID:        string(m.ID),
			Number:    int(m.Number),
			HomeID:    string(m.Home.ID),
			AwayID:    string(m.Away.ID),
			Date:      m.Date,
			Group:     m.Group,
			StadiumID: string(m.StadiumID),
		}
		match.Home = c.teamsByID[match.HomeID]
		match.Away = c.teamsByID[match.AwayID]
		match.Stadium = c.stadiumsByID[match.StadiumID]

		if _, dup := c.matchesByID[match.ID]; dup {
			continue
		}
		c.matchesByID[match.ID] = match
		c.Matches = append(c.Matches, match)
	}

	return c
}

// Load fetches and builds the catalog. On upstream failure it still
// returns a usable catalog, with the failed collections empty, alongside
// an error wrapping models.ErrUpstreamUnavailable.
func Load(ctx context.Context, f *Fetcher, src Sources, log *logger.Logger) (*Catalog, error) {
	records, err := f.FetchRecords(ctx, src)
	c := Build(records)

	log.Info("CATALOG", fmt.Sprintf("Catalog loaded: %d teams, %d stadiums, %d matches", len(c.Teams), len(c.Stadiums), len(c.Matches)))
	if err != nil {
		log.Warn("CATALOG", "Catalog source partially unavailable, continuing with empty collections")
	}
	return c, err
}

func upstreamError(errs []error) error {
	joined := errors.Join(errs...)
	if errors.Is(joined, models.ErrUpstreamUnavailable) {
		return joined
	}
	return fmt.Errorf("%w: %w", models.ErrUpstreamUnavailable, joined)
}

func (c *Catalog) TeamByID(id string) (*models.Team, bool) {
	t, ok := c.teamsByID[id]
	return t, ok
}

func (c *Catalog) StadiumByID(id string) (*models.Stadium, bool) {
	s, ok := c.stadiumsByID[id]
	return s, ok
}

// StadiumByName returns the first stadium carrying name.
func (c *Catalog) StadiumByName(name string) (*models.Stadium, bool) {
	s, ok := c.stadiumByName[name]
	return s, ok
}

func (c *Catalog) MatchByID(id string) (*models.Match, error) {
	m, ok := c.matchesByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrMatchNotFound, id)
	}
	return m, nil
}
