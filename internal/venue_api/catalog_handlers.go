package venue_api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-venue/internal/catalog"
	"ms-venue/internal/concession"
	"ms-venue/internal/models"
	"ms-venue/internal/utils"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	h.locked(w, http.StatusOK, "Teams retrieved", "Failed to list teams", func() (any, error) {
		return h.Session.Catalog.Teams, nil
	})
}

// ListMatches filters by ?country=, ?stadium= and ?date=; filters combine.
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.locked(w, http.StatusOK, "Matches retrieved", "Failed to list matches", func() (any, error) {
		cat := h.Session.Catalog
		matches := cat.Matches
		if v := q.Get("country"); v != "" {
			matches = intersect(matches, cat.MatchesByCountry(v))
		}
		if v := q.Get("stadium"); v != "" {
			matches = intersect(matches, cat.MatchesByStadium(v))
		}
		if v := q.Get("date"); v != "" {
			matches = intersect(matches, cat.MatchesByDate(v))
		}
		return toMatchViews(matches), nil
	})
}

func intersect(a, b []*models.Match) []*models.Match {
	keep := make(map[*models.Match]struct{}, len(b))
	for _, m := range b {
		keep[m] = struct{}{}
	}
	var out []*models.Match
	for _, m := range a {
		if _, ok := keep[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

func (h *Handler) ListStadiums(w http.ResponseWriter, r *http.Request) {
	h.locked(w, http.StatusOK, "Stadiums retrieved", "Failed to list stadiums", func() (any, error) {
		out := make([]stadiumView, 0, len(h.Session.Catalog.Stadiums))
		for _, s := range h.Session.Catalog.Stadiums {
			out = append(out, toStadiumView(s))
		}
		return out, nil
	})
}

func (h *Handler) stadium(r *http.Request) (*models.Stadium, error) {
	id := chi.URLParam(r, "stadiumId")
	s, ok := h.Session.Catalog.StadiumByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrStadiumNotFound, id)
	}
	return s, nil
}

// SeatMap renders the seat grid as text; ?rows= and ?cols= limit the window.
func (h *Handler) SeatMap(w http.ResponseWriter, r *http.Request) {
	var grid string
	err := h.Session.Do(func() error {
		s, err := h.stadium(r)
		if err != nil {
			return err
		}
		grid = s.Seats.Render(queryInt(r, "rows", 20), queryInt(r, "cols", 20))
		return nil
	})
	if err != nil {
		h.writeError(w, "Failed to render seat map", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(grid))
}

func (h *Handler) StadiumProducts(w http.ResponseWriter, r *http.Request) {
	h.locked(w, http.StatusOK, "Products retrieved", "Failed to list products", func() (any, error) {
		s, err := h.stadium(r)
		if err != nil {
			return nil, err
		}
		var out []productView
		for rest, p := range concession.ListCatalog(s) {
			out = append(out, productView{Stadium: s.Name, Restaurant: rest.Name, Product: p})
		}
		return out, nil
	})
}

// SearchProducts takes exactly one of ?name=, ?category= or ?min=&max=.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var search func(*catalog.Catalog) []catalog.ProductHit

	switch {
	case q.Has("name"):
		name := q.Get("name")
		search = func(c *catalog.Catalog) []catalog.ProductHit { return c.SearchProductsByName(name) }
	case q.Has("category"):
		category := q.Get("category")
		search = func(c *catalog.Catalog) []catalog.ProductHit { return c.SearchProductsByCategory(category) }
	case q.Has("min") || q.Has("max"):
		lo, errLo := strconv.ParseFloat(q.Get("min"), 64)
		hi, errHi := strconv.ParseFloat(q.Get("max"), 64)
		if errLo != nil || errHi != nil || lo > hi {
			badRequest(w, "Invalid price range", fmt.Errorf("%w: min and max must be numbers with min <= max", models.ErrInvalidInput))
			return
		}
		search = func(c *catalog.Catalog) []catalog.ProductHit { return c.SearchProductsByPrice(lo, hi) }
	default:
		badRequest(w, "Missing search criterion", fmt.Errorf("%w: one of name, category or min/max is required", models.ErrInvalidInput))
		return
	}

	h.locked(w, http.StatusOK, "Products retrieved", "Failed to search products", func() (any, error) {
		return toProductViews(search(h.Session.Catalog)), nil
	})
}

func (h *Handler) RecentEvents(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Events retrieved", h.Session.Events.Events()))
}
