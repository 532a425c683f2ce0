package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-venue/internal/models"
)

func TestPriceTicket_GeneralWithoutDiscount(t *testing.T) {
	for _, id := range []string{"1234", "V-12345", "", "12345"} {
		price, err := PriceTicket(models.TicketClassGeneral, id)
		require.NoError(t, err)
		assert.Equal(t, 35.0, price.Base)
		assert.Equal(t, 0.0, price.Discount)
		assert.InDelta(t, 5.6, price.Tax, 1e-9)
		assert.InDelta(t, 40.6, price.Total, 1e-9)
	}
}

func TestPriceTicket_VIPWithVampireID(t *testing.T) {
	price, err := PriceTicket(models.TicketClassVIP, "1260")
	require.NoError(t, err)

	assert.Equal(t, 75.0, price.Base)
	assert.Equal(t, 0.5, price.Discount)
	assert.InDelta(t, 12.0, price.Tax, 1e-9)
	assert.InDelta(t, 75-37.5+12, price.Total, 1e-9)
	assert.InDelta(t, 37.5, price.DiscountAmount(), 1e-9)
}

func TestPriceTicket_InvalidClass(t *testing.T) {
	_, err := PriceTicket("Platinum", "1260")
	assert.ErrorIs(t, err, models.ErrInvalidTicketClass)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestIsVampire(t *testing.T) {
	assert.True(t, IsVampire(1260))
	assert.True(t, IsVampire(1395))
	assert.True(t, IsVampire(125460))
	assert.False(t, IsVampire(1234))
	assert.False(t, IsVampire(126))
	assert.False(t, IsVampire(0))
}

func TestIsPerfect(t *testing.T) {
	for _, n := range []uint64{6, 28, 496, 8128, 33550336} {
		assert.True(t, IsPerfect(n), "%d", n)
	}
	for _, n := range []uint64{0, 1, 12, 27, 100} {
		assert.False(t, IsPerfect(n), "%d", n)
	}
}

func TestParsePersonalID(t *testing.T) {
	n, ok := ParsePersonalID("001260")
	assert.True(t, ok)
	assert.Equal(t, uint64(1260), n)

	for _, id := range []string{"", "12a4", "-12", " 12", "99999999999999999999999"} {
		_, ok := ParsePersonalID(id)
		assert.False(t, ok, id)
	}
}

func TestConcessionDiscount(t *testing.T) {
	assert.InDelta(t, 3.0, ConcessionDiscount("28", 20), 1e-9)
	assert.Equal(t, 0.0, ConcessionDiscount("12", 20))
	assert.Equal(t, 0.0, ConcessionDiscount("abc", 20))
}
