package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-venue/internal/catalog"
	"ms-venue/internal/catalog/catalogtest"
	"ms-venue/internal/models"
	"ms-venue/internal/pricing"
	"ms-venue/internal/tickets/ledger"
)

type seededSession struct {
	cat    *catalog.Catalog
	ledger *ledger.Ledger
	codes  map[string]string
}

// seed sells four tickets:
//
//	Ana  1260 VIP     m1 Lusail
//	Ben  100  General m3 Lusail
//	Cy   28   VIP     m2 Al Bayt
//	Ana  1260 General m1 Lusail
func seed(t *testing.T) *seededSession {
	t.Helper()
	s := &seededSession{cat: catalogtest.New(), ledger: ledger.New(nil), codes: map[string]string{}}

	sales := []struct {
		key, name, id string
		class         models.TicketClass
		match         string
	}{
		{"ana-vip", "Ana", "1260", models.TicketClassVIP, "m1"},
		{"ben", "Ben", "100", models.TicketClassGeneral, "m3"},
		{"cy", "Cy", "28", models.TicketClassVIP, "m2"},
		{"ana-general", "Ana", "1260", models.TicketClassGeneral, "m1"},
	}
	for _, sale := range sales {
		match, err := s.cat.MatchByID(sale.match)
		require.NoError(t, err)
		price, err := pricing.PriceTicket(sale.class, sale.id)
		require.NoError(t, err)

		c, err := s.ledger.IssueTicket(context.Background(), ledger.IssueInput{
			Name:        sale.name,
			PersonalID:  sale.id,
			Age:         30,
			TicketClass: sale.class,
			StadiumName: match.StadiumName(),
			MatchID:     match.ID,
			Price:       price,
		})
		require.NoError(t, err)
		s.codes[sale.key] = c.TicketCode
	}

	s.ledger.RecordPurchase(models.Purchase{TicketCode: s.codes["ana-vip"], Products: []string{"Nachos"}, Subtotal: 10, Total: 10})
	s.ledger.RecordPurchase(models.Purchase{TicketCode: s.codes["cy"], Products: []string{"Coffee", "Coffee"}, Subtotal: 4.64, Total: 4.64})
	return s
}

func (s *seededSession) service(mode Mode) *Service {
	return NewService(s.cat, s.ledger, mode, nil)
}

func labels(ranked []Ranked) []string {
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Label)
	}
	return out
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeLegacy, m)

	m, err = ParseMode(" Corrected ")
	require.NoError(t, err)
	assert.Equal(t, ModeCorrected, m)

	_, err = ParseMode("fancy")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestLegacy_AverageVIPSpendCountsWholeStadiumMenu(t *testing.T) {
	svc := seed(t).service(ModeLegacy)

	spend := svc.AverageVIPSpend()
	assert.Equal(t, 2, spend.VIPCustomers)
	// Ana: 49.5 ticket + 30.00 Lusail menu; Cy: 87 ticket + 2.32 Al Bayt menu
	assert.InDelta(t, 49.5+30+87+2.32, spend.TotalSpend, 1e-9)
	assert.InDelta(t, (49.5+30+87+2.32)/2, spend.Average, 1e-9)
}

func TestCorrected_AverageVIPSpendUsesPurchases(t *testing.T) {
	svc := seed(t).service(ModeCorrected)

	spend := svc.AverageVIPSpend()
	assert.Equal(t, 2, spend.VIPCustomers)
	assert.InDelta(t, (49.5+10+87+4.64)/2, spend.Average, 1e-9)
}

func TestAverageVIPSpend_NoVIPCustomers(t *testing.T) {
	svc := NewService(catalogtest.New(), ledger.New(nil), "", nil)

	spend := svc.AverageVIPSpend()
	assert.Equal(t, ModeLegacy, spend.Mode)
	assert.Zero(t, spend.VIPCustomers)
	assert.Zero(t, spend.Average)
}

func TestLegacy_AttendanceByStadium(t *testing.T) {
	svc := seed(t).service(ModeLegacy)

	rows := svc.AttendanceTable()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"m1", "m2", "m3"}, []string{rows[0].MatchID, rows[1].MatchID, rows[2].MatchID})
	assert.Equal(t, 3, rows[0].TicketsSold)
	assert.Equal(t, 1, rows[1].TicketsSold)
	assert.Equal(t, 3, rows[2].TicketsSold)
	for _, r := range rows {
		assert.Equal(t, r.TicketsSold, r.Attended)
		assert.InDelta(t, 1.0, r.Ratio, 1e-9)
	}

	best, ok := svc.MatchWithMaxAttendance()
	require.True(t, ok)
	assert.Equal(t, "m1", best.MatchID, "first seen wins ties")
	assert.Equal(t, "Qatar vs Ecuador", best.Match)
}

func TestCorrected_AttendanceByMatch(t *testing.T) {
	svc := seed(t).service(ModeCorrected)

	best, ok := svc.MatchWithMaxTicketsSold()
	require.True(t, ok)
	assert.Equal(t, "m1", best.MatchID)
	assert.Equal(t, 2, best.TicketsSold)

	rows := svc.AttendanceTable()
	assert.Equal(t, 1, rows[2].TicketsSold)
}

func TestAttendanceTable_ZeroSalesSortLast(t *testing.T) {
	s := seededSession{cat: catalogtest.New(), ledger: ledger.New(nil)}
	_, err := s.ledger.IssueTicket(context.Background(), ledger.IssueInput{
		Name: "Dee", TicketClass: models.TicketClassGeneral, StadiumName: "Al Bayt Stadium", MatchID: "m2",
	})
	require.NoError(t, err)

	rows := s.service(ModeLegacy).AttendanceTable()
	assert.Equal(t, "m2", rows[0].MatchID)
	assert.Equal(t, []float64{1, 0, 0}, []float64{rows[0].Ratio, rows[1].Ratio, rows[2].Ratio})
	assert.Equal(t, "m1", rows[1].MatchID)
	assert.Equal(t, "m3", rows[2].MatchID)
}

func TestMaxima_NoSales(t *testing.T) {
	svc := NewService(catalogtest.New(), ledger.New(nil), ModeLegacy, nil)

	_, ok := svc.MatchWithMaxAttendance()
	assert.False(t, ok)
	_, ok = svc.MatchWithMaxTicketsSold()
	assert.False(t, ok)
}

func TestLegacy_TopProducts(t *testing.T) {
	svc := seed(t).service(ModeLegacy)

	top := svc.TopProducts()
	assert.Equal(t, []string{"Nachos", "Hot Dog", "Beer"}, labels(top))
	for _, r := range top {
		assert.Equal(t, 1, r.Count)
	}
}

func TestCorrected_TopProducts(t *testing.T) {
	svc := seed(t).service(ModeCorrected)

	assert.Equal(t, []Ranked{{Label: "Coffee", Count: 2}, {Label: "Nachos", Count: 1}}, svc.TopProducts())
}

func TestLegacy_TopCustomersByClassLength(t *testing.T) {
	svc := seed(t).service(ModeLegacy)

	top := svc.TopCustomers()
	assert.Equal(t, []Ranked{
		{Label: "Ben", Count: 7},
		{Label: "Ana", Count: 7},
		{Label: "Ana", Count: 3},
	}, top)
}

func TestCorrected_TopCustomersByTicketCount(t *testing.T) {
	svc := seed(t).service(ModeCorrected)

	assert.Equal(t, []Ranked{
		{Label: "Ana", Count: 2},
		{Label: "Ben", Count: 1},
		{Label: "Cy", Count: 1},
	}, svc.TopCustomers())
}

func TestSummarize_EmptyCatalog(t *testing.T) {
	svc := NewService(catalog.Empty(), ledger.New(nil), ModeLegacy, nil)

	sum := svc.Summarize()
	assert.Empty(t, sum.Attendance)
	assert.Empty(t, sum.TopProducts)
	assert.Empty(t, sum.TopCustomers)
	assert.Nil(t, sum.MaxAttendance)
	assert.Nil(t, sum.MaxTicketsSold)
}

func TestSummarize_Seeded(t *testing.T) {
	sum := seed(t).service(ModeCorrected).Summarize()

	assert.Equal(t, ModeCorrected, sum.Mode)
	require.NotNil(t, sum.MaxTicketsSold)
	assert.Equal(t, "m1", sum.MaxTicketsSold.MatchID)
	assert.Len(t, sum.TopCustomers, 3)
}
