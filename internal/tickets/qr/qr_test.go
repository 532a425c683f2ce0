package qr

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-venue/internal/models"
)

var holder = models.Customer{TicketCode: "Ab3dE6gH", MatchID: "m1", SeatLabel: "Row 1, Column 2"}

func TestPayloadRoundTrip_Encrypted(t *testing.T) {
	g := NewGenerator("s3cret")

	payload, err := g.Payload(holder)
	require.NoError(t, err)
	assert.NotContains(t, payload, "Ab3dE6gH")

	p, err := g.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, Payload{TicketCode: "Ab3dE6gH", MatchID: "m1", SeatLabel: "Row 1, Column 2"}, p)
}

func TestDecode_WrongSecret(t *testing.T) {
	payload, err := NewGenerator("s3cret").Payload(holder)
	require.NoError(t, err)

	_, err = NewGenerator("other").Decode(payload)
	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestDecode_Plain(t *testing.T) {
	g := NewGenerator("")

	payload, err := g.Payload(holder)
	require.NoError(t, err)
	assert.Contains(t, payload, `"ticket_code":"Ab3dE6gH"`)

	_, err = g.Decode("not json")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestPNG(t *testing.T) {
	data, err := NewGenerator("s3cret").PNG(holder, 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
}
