package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-venue/internal/analytics"
	"ms-venue/internal/catalog"
	"ms-venue/internal/catalog/catalogtest"
	"ms-venue/internal/models"
	"ms-venue/internal/tickets/ledger"
)

func TestWriteDump(t *testing.T) {
	cat := catalogtest.New()
	l := ledger.New(nil)
	c, err := l.IssueTicket(context.Background(), ledger.IssueInput{
		Name: "Ana", PersonalID: "1260", Age: 30, TicketClass: models.TicketClassVIP,
		StadiumName: "Lusail Stadium", SeatLabel: "Row 1, Column 1",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDump(&buf, cat, l.Customers()))
	out := buf.String()

	assert.Contains(t, out, "Teams:\nID: t1\nCode: QAT\nName: Qatar\nGroup: A\n")
	assert.Contains(t, out, "Ticket code: "+c.TicketCode+"\nSeat: Row 1, Column 1\n")
	assert.Contains(t, out, "- Name: Grill\n  Products:\n  - Name: Nachos\n    Quantity: 1\n    Price: 10.00\n")
	assert.Contains(t, out, "Home: Qatar\nAway: Ecuador\nDate: 2022-11-20\n")

	order := []string{"Teams:", "Customers:", "Stadiums:", "Matches:"}
	last := -1
	for _, section := range order {
		idx := bytes.Index(buf.Bytes(), []byte(section))
		assert.Greater(t, idx, last, section)
		last = idx
	}
}

func TestWriteDump_EmptyCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDump(&buf, catalog.Empty(), nil))
	assert.Equal(t, "Teams:\nCustomers:\nStadiums:\nMatches:\n", buf.String())
}

func TestWriteDumpFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "state.txt")
	require.NoError(t, WriteDumpFile(path, catalogtest.New(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Stadium: Lusail Stadium")
}

func TestWriteBarChart(t *testing.T) {
	var buf bytes.Buffer
	err := WriteBarChart(&buf, "Top products", []analytics.Ranked{
		{Label: "Coffee", Count: 4},
		{Label: "Beer", Count: 2},
		{Label: "Nachos", Count: 0},
	}, ChartOptions{Width: 8, NoColor: true})
	require.NoError(t, err)

	assert.Equal(t, "Top products\n"+
		"  Coffee | ######## 4\n"+
		"  Beer   | #### 2\n"+
		"  Nachos |  0\n", buf.String())
}

func TestWriteBarChart_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBarChart(&buf, "Top customers", nil, ChartOptions{NoColor: true}))
	assert.Equal(t, "Top customers\n  (no data)\n", buf.String())
}
