package concession

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-venue/internal/catalog"
	"ms-venue/internal/catalog/catalogtest"
	"ms-venue/internal/events"
	"ms-venue/internal/models"
	"ms-venue/internal/tickets/ledger"
)

type fixture struct {
	svc     *Service
	cat     *catalog.Catalog
	rec     *events.Recorder
	stadium *models.Stadium
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat := catalogtest.New()
	rec := events.NewRecorder(nil)
	stadium, ok := cat.StadiumByID("s1")
	require.True(t, ok)
	return &fixture{
		svc:     NewService(cat, ledger.New(nil), rec, nil),
		cat:     cat,
		rec:     rec,
		stadium: stadium,
	}
}

func (f *fixture) issue(t *testing.T, personalID string, age int, class models.TicketClass) models.Customer {
	t.Helper()
	c, err := f.svc.Ledger.IssueTicket(context.Background(), ledger.IssueInput{
		Name:        "Holder " + personalID,
		PersonalID:  personalID,
		Age:         age,
		TicketClass: class,
		StadiumName: f.stadium.Name,
	})
	require.NoError(t, err)
	return c
}

func stockOf(t *testing.T, s *models.Stadium, name string) int {
	t.Helper()
	_, p, err := FindProduct(s, name)
	require.NoError(t, err)
	return p.Stock
}

func TestPurchase_PerfectNumberDiscount(t *testing.T) {
	f := newFixture(t)
	f.issue(t, "28", 30, models.TicketClassVIP)

	p, err := f.svc.Purchase(context.Background(), Request{PersonalID: "28", Products: []string{"nachos", "HOT DOG"}})
	require.NoError(t, err)

	assert.InDelta(t, 20.00, p.Subtotal, 1e-9)
	assert.InDelta(t, 3.00, p.Discount, 1e-9)
	assert.InDelta(t, 17.00, p.Total, 1e-9)
	assert.Equal(t, []string{"Nachos", "Hot Dog"}, p.Products)

	assert.Equal(t, 9, stockOf(t, f.stadium, "Nachos"))
	assert.Equal(t, 9, stockOf(t, f.stadium, "Hot Dog"))
	assert.Equal(t, 10, stockOf(t, f.stadium, "Beer"))

	require.Len(t, f.svc.Ledger.Purchases(), 1)
	published := f.rec.Events()
	require.Len(t, published, 1)
	assert.Equal(t, events.ConcessionPurchased, published[0].Type)
}

func TestPurchase_NoDiscountForOrdinaryID(t *testing.T) {
	f := newFixture(t)
	f.issue(t, "12", 30, models.TicketClassVIP)

	p, err := f.svc.Purchase(context.Background(), Request{PersonalID: "12", Products: []string{"Nachos"}})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, p.Discount, 1e-9)
	assert.InDelta(t, 10.0, p.Total, 1e-9)
}

func TestPurchase_AgeGate(t *testing.T) {
	f := newFixture(t)
	f.issue(t, "17017", 17, models.TicketClassVIP)
	f.issue(t, "18018", 18, models.TicketClassVIP)

	_, err := f.svc.Purchase(context.Background(), Request{PersonalID: "17017", Products: []string{"Nachos", "Beer"}})
	assert.ErrorIs(t, err, models.ErrAgeRestricted)
	assert.Equal(t, 10, stockOf(t, f.stadium, "Nachos"), "failed purchase must not touch stock")

	_, err = f.svc.Purchase(context.Background(), Request{PersonalID: "18018", Products: []string{"Beer"}})
	require.NoError(t, err)
	assert.Equal(t, 9, stockOf(t, f.stadium, "Beer"))
}

func TestQuote_Rejections(t *testing.T) {
	f := newFixture(t)
	f.issue(t, "100", 40, models.TicketClassGeneral)
	f.issue(t, "200", 40, models.TicketClassVIP)

	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"unknown customer", Request{PersonalID: "999", Products: []string{"Nachos"}}, models.ErrCustomerNotFound},
		{"general ticket", Request{PersonalID: "100", Products: []string{"Nachos"}}, models.ErrNotEntitled},
		{"unknown product", Request{PersonalID: "200", Products: []string{"Caviar"}}, models.ErrProductNotFound},
		{"partial name", Request{PersonalID: "200", Products: []string{"Hot"}}, models.ErrProductNotFound},
		{"other stadium product", Request{PersonalID: "200", Products: []string{"Coffee"}}, models.ErrProductNotFound},
		{"nothing requested", Request{PersonalID: "200"}, models.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Quote(tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.svc.Ledger.Purchases())
}

func TestConfirm_StockMayGoNegative(t *testing.T) {
	f := newFixture(t)
	f.issue(t, "200", 40, models.TicketClassVIP)
	_, beer, err := FindProduct(f.stadium, "beer")
	require.NoError(t, err)
	beer.Stock = 0

	_, err = f.svc.Purchase(context.Background(), Request{PersonalID: "200", Products: []string{"Beer", "Beer"}})
	require.NoError(t, err)
	assert.Equal(t, -2, beer.Stock)
}

func TestConfirm_AbandonedQuoteLeavesStock(t *testing.T) {
	f := newFixture(t)
	f.issue(t, "200", 40, models.TicketClassVIP)

	q, err := f.svc.Quote(Request{PersonalID: "200", Products: []string{"Nachos"}})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, q.Total, 1e-9)
	assert.Equal(t, 10, stockOf(t, f.stadium, "Nachos"))

	_, err = f.svc.Confirm(context.Background(), &Quote{})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestListCatalog(t *testing.T) {
	f := newFixture(t)

	var names []string
	for r, p := range ListCatalog(f.stadium) {
		names = append(names, r.Name+"/"+p.Name)
	}
	assert.Equal(t, []string{"Grill/Nachos", "Grill/Hot Dog", "Grill/Beer"}, names)

	// restartable, and stops when the consumer does
	count := 0
	for range ListCatalog(f.stadium) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)

	for range ListCatalog(nil) {
		t.Fatal("nil stadium yields nothing")
	}
}
