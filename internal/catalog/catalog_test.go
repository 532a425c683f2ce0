package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-venue/internal/logger"
	"ms-venue/internal/models"
)

const teamsJSON = `[
	{"id": "t1", "code": "GER", "name": "Germany", "group": "A"},
	{"id": "t2", "code": "SCO", "name": "Scotland", "group": "A"},
	{"id": 3, "code": "ESP", "name": "Spain", "group": "B"}
]`

const stadiumsJSON = `[
	{"id": "s1", "name": "Allianz Arena", "city": "Munich", "capacity": [3, 2],
	 "restaurants": [
		{"name": "Biergarten", "products": [
			{"name": "Beer", "quantity": 1, "price": "10.00", "adicional": "alcoholic", "stock": 5},
			{"name": "Pretzel", "quantity": 1, "price": 4.5, "adicional": "plate", "stock": 7}
		]},
		{"name": "Kiosk", "products": [
			{"name": "Water", "quantity": 1, "price": 2, "adicional": "non-alcoholic", "stock": 9}
		]}
	 ]},
	{"id": "s2", "name": "Olympiastadion", "city": "Berlin", "capacity": [10, 4], "restaurants": []}
]`

const matchesJSON = `[
	{"id": "m1", "number": 1, "home": {"id": "t1"}, "away": {"id": "t2"}, "date": "2024-06-14", "group": "A", "stadium_id": "s1"},
	{"id": "m2", "number": "2", "home": {"id": "3"}, "away": {"id": "t9"}, "date": "2024-06-15", "group": "B", "stadium_id": "s2"},
	{"id": "m3", "number": 3, "home": {"id": "t2"}, "away": {"id": "3"}, "date": "2024-06-15", "group": "A", "stadium_id": "nowhere"}
]`

func newCatalogServer(t *testing.T, failStadiums bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/teams.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(teamsJSON))
	})
	mux.HandleFunc("/stadiums.json", func(w http.ResponseWriter, r *http.Request) {
		if failStadiums {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		w.Write([]byte(stadiumsJSON))
	})
	mux.HandleFunc("/matches.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(matchesJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func sources(base string) Sources {
	return Sources{
		TeamsURL:    base + "/teams.json",
		StadiumsURL: base + "/stadiums.json",
		MatchesURL:  base + "/matches.json",
	}
}

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	srv := newCatalogServer(t, false)
	c, err := Load(context.Background(), NewFetcher(srv.Client(), nil), sources(srv.URL), logger.NewNopLogger())
	require.NoError(t, err)
	return c
}

func TestLoad_ResolvesReferences(t *testing.T) {
	c := loadTestCatalog(t)

	require.Len(t, c.Teams, 3)
	require.Len(t, c.Stadiums, 2)
	require.Len(t, c.Matches, 3)

	m1, err := c.MatchByID("m1")
	require.NoError(t, err)
	assert.Equal(t, "Germany vs Scotland", m1.Title())
	assert.Same(t, c.Stadiums[0], m1.Stadium)

	m2, err := c.MatchByID("m2")
	require.NoError(t, err)
	assert.Equal(t, 2, m2.Number)
	assert.Equal(t, "Spain", m2.HomeName())
	assert.Nil(t, m2.Away)

	m3, err := c.MatchByID("m3")
	require.NoError(t, err)
	assert.Nil(t, m3.Stadium)
	assert.Equal(t, "", m3.StadiumName())

	_, err = c.MatchByID("missing")
	assert.ErrorIs(t, err, models.ErrMatchNotFound)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLoad_StadiumTree(t *testing.T) {
	c := loadTestCatalog(t)

	arena, ok := c.StadiumByName("Allianz Arena")
	require.True(t, ok)
	assert.Equal(t, 3, arena.GeneralCapacity)
	assert.Equal(t, 2, arena.VIPCapacity)
	assert.Equal(t, 3, arena.Seats.Rows())
	assert.Equal(t, 2, arena.Seats.Cols())

	beer := arena.Restaurants[0].Products[0]
	assert.InDelta(t, 11.6, beer.UnitPrice, 1e-9)
	assert.True(t, beer.IsAlcoholic())
	assert.Equal(t, 5, beer.Stock)
}

func TestLoad_UpstreamFailureDegradesToEmpty(t *testing.T) {
	srv := newCatalogServer(t, true)

	c, err := Load(context.Background(), NewFetcher(srv.Client(), nil), sources(srv.URL), logger.NewNopLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)

	require.NotNil(t, c)
	assert.Len(t, c.Teams, 3)
	assert.Empty(t, c.Stadiums)
	require.Len(t, c.Matches, 3)
	for _, m := range c.Matches {
		assert.Nil(t, m.Stadium)
	}
	assert.Empty(t, c.MatchesByStadium("Allianz Arena"))
}

func TestLoad_UnreachableSource(t *testing.T) {
	srv := newCatalogServer(t, false)
	src := sources(srv.URL)
	srv.Close()

	c, err := Load(context.Background(), NewFetcher(nil, nil), src, logger.NewNopLogger())
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
	assert.Empty(t, c.Teams)
	assert.Empty(t, c.Stadiums)
	assert.Empty(t, c.Matches)
	assert.Empty(t, c.SearchProductsByName(""))
}

func TestMatchSearches(t *testing.T) {
	c := loadTestCatalog(t)

	assert.Len(t, c.MatchesByCountry("Scotland"), 2)
	assert.Len(t, c.MatchesByCountry("Spain"), 2)
	assert.Empty(t, c.MatchesByCountry("France"))

	byStadium := c.MatchesByStadium("Olympiastadion")
	require.Len(t, byStadium, 1)
	assert.Equal(t, "m2", byStadium[0].ID)

	assert.Len(t, c.MatchesByDate("2024-06-15"), 2)
}

func TestProductSearches(t *testing.T) {
	c := loadTestCatalog(t)

	byName := c.SearchProductsByName("Pret")
	require.Len(t, byName, 1)
	assert.Equal(t, "Biergarten", byName[0].Restaurant.Name)
	assert.Empty(t, c.SearchProductsByName("pret"))

	byCategory := c.SearchProductsByCategory("ALCOHOLIC")
	assert.Len(t, byCategory, 2)

	byPrice := c.SearchProductsByPrice(2, 6)
	require.Len(t, byPrice, 2)
	assert.Equal(t, "Pretzel", byPrice[0].Product.Name)
	assert.Equal(t, "Water", byPrice[1].Product.Name)
}

func TestAllProducts_StopsEarly(t *testing.T) {
	c := loadTestCatalog(t)

	var names []string
	for hit := range c.AllProducts() {
		names = append(names, hit.Product.Name)
		if len(names) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"Beer", "Pretzel"}, names)
}
