// Package seating holds the per-stadium seat availability grid.
package seating

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOutOfRange = errors.New("seat out of range")
	ErrSeatTaken  = errors.New("seat already taken")
)

type SeatStatus uint8

const (
	Available SeatStatus = iota
	Occupied
)

func (s SeatStatus) String() string {
	if s == Occupied {
		return "Occupied"
	}
	return "Available"
}

type seat struct {
	row, col int
}

// SeatMap is a rows x cols grid addressed with 1-based coordinates. Only
// occupied cells are stored; every other cell in range is Available.
type SeatMap struct {
	rows     int
	cols     int
	occupied map[seat]struct{}
}

func NewSeatMap(rows, cols int) *SeatMap {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &SeatMap{
		rows:     rows,
		cols:     cols,
		occupied: make(map[seat]struct{}),
	}
}

func (m *SeatMap) Rows() int { return m.rows }
func (m *SeatMap) Cols() int { return m.cols }

// Label formats a seat the way receipts print it.
func Label(row, col int) string {
	return fmt.Sprintf("Row %d, Column %d", row, col)
}

func (m *SeatMap) inRange(row, col int) bool {
	return row >= 1 && row <= m.rows && col >= 1 && col <= m.cols
}

// Status reports the state of one cell.
func (m *SeatMap) Status(row, col int) (SeatStatus, error) {
	if !m.inRange(row, col) {
		return Available, fmt.Errorf("%w: row %d, column %d (grid %dx%d)", ErrOutOfRange, row, col, m.rows, m.cols)
	}
	if _, ok := m.occupied[seat{row, col}]; ok {
		return Occupied, nil
	}
	return Available, nil
}

// Check validates that a cell could be reserved, without reserving it.
func (m *SeatMap) Check(row, col int) error {
	status, err := m.Status(row, col)
	if err != nil {
		return err
	}
	if status == Occupied {
		return fmt.Errorf("%w: %s", ErrSeatTaken, Label(row, col))
	}
	return nil
}

// Reserve marks a cell Occupied and returns its label. The grid is left
// untouched when the cell is out of range or already taken.
func (m *SeatMap) Reserve(row, col int) (string, error) {
	if err := m.Check(row, col); err != nil {
		return "", err
	}
	m.occupied[seat{row, col}] = struct{}{}
	return Label(row, col), nil
}

func (m *SeatMap) Occupied() int {
	return len(m.occupied)
}

func (m *SeatMap) Available() int {
	return m.rows*m.cols - len(m.occupied)
}

// Render draws the top-left window of the grid, "O" for available and "X"
// for occupied. Non-positive limits render the whole grid.
func (m *SeatMap) Render(maxRows, maxCols int) string {
	rows, cols := m.rows, m.cols
	if maxRows > 0 && maxRows < rows {
		rows = maxRows
	}
	if maxCols > 0 && maxCols < cols {
		cols = maxCols
	}

	var b strings.Builder
	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			if c > 1 {
				b.WriteByte(' ')
			}
			if _, ok := m.occupied[seat{r, c}]; ok {
				b.WriteByte('X')
			} else {
				b.WriteByte('O')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
