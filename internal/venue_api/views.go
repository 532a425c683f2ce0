package venue_api

import (
	"ms-venue/internal/catalog"
	"ms-venue/internal/models"
)

type matchView struct {
	ID      string `json:"id"`
	Number  int    `json:"number"`
	Home    string `json:"home"`
	Away    string `json:"away"`
	Date    string `json:"date"`
	Group   string `json:"group"`
	Stadium string `json:"stadium"`
}

func toMatchViews(matches []*models.Match) []matchView {
	out := make([]matchView, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchView{
			ID:      m.ID,
			Number:  m.Number,
			Home:    m.HomeName(),
			Away:    m.AwayName(),
			Date:    m.Date,
			Group:   m.Group,
			Stadium: m.StadiumName(),
		})
	}
	return out
}

type stadiumView struct {
	*models.Stadium
	OccupiedSeats  int `json:"occupied_seats"`
	AvailableSeats int `json:"available_seats"`
}

func toStadiumView(s *models.Stadium) stadiumView {
	return stadiumView{Stadium: s, OccupiedSeats: s.Seats.Occupied(), AvailableSeats: s.Seats.Available()}
}

type productView struct {
	Stadium    string          `json:"stadium"`
	Restaurant string          `json:"restaurant"`
	Product    *models.Product `json:"product"`
}

func toProductViews(hits []catalog.ProductHit) []productView {
	out := make([]productView, 0, len(hits))
	for _, h := range hits {
		out = append(out, productView{Stadium: h.Stadium.Name, Restaurant: h.Restaurant.Name, Product: h.Product})
	}
	return out
}

type ticketView struct {
	Valid      bool            `json:"valid"`
	HolderName string          `json:"holder_name"`
	Customer   models.Customer `json:"customer"`
}
