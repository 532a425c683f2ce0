// Package analytics aggregates the ledger and the catalog into attendance,
// revenue and top-seller statistics. Nothing here mutates state.
package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"ms-venue/internal/catalog"
	"ms-venue/internal/logger"
	"ms-venue/internal/models"
	"ms-venue/internal/pricing"
	"ms-venue/internal/tickets/ledger"
)

// TopN is the length of every ranking.
const TopN = 3

// Mode selects how ambiguous aggregates are computed.
type Mode string

const (
	// ModeLegacy reproduces the historical console figures, over-counts
	// included.
	ModeLegacy Mode = "legacy"
	// ModeCorrected counts actual purchases and tickets.
	ModeCorrected Mode = "corrected"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLegacy, "":
		return ModeLegacy, nil
	case ModeCorrected:
		return ModeCorrected, nil
	}
	return "", fmt.Errorf("%w: unknown stats mode %q", models.ErrInvalidInput, s)
}

// Service handles statistics over one session
type Service struct {
	Catalog *catalog.Catalog
	Ledger  *ledger.Ledger
	Mode    Mode
	Logger  *logger.Logger
}

// NewService creates a new analytics service
func NewService(cat *catalog.Catalog, l *ledger.Ledger, mode Mode, log *logger.Logger) *Service {
	if mode == "" {
		mode = ModeLegacy
	}
	return &Service{Catalog: cat, Ledger: l, Mode: mode, Logger: log}
}

// VIPSpend is the average spend of a VIP customer. VIPCustomers is zero
// when no VIP ticket has been sold.
type VIPSpend struct {
	Mode         Mode    `json:"mode"`
	VIPCustomers int     `json:"vip_customers"`
	TotalSpend   float64 `json:"total_spend"`
	Average      float64 `json:"average"`
}

// AttendanceRow is one match line of the attendance table
type AttendanceRow struct {
	MatchID     string  `json:"match_id"`
	Number      int     `json:"number"`
	Match       string  `json:"match"`
	Stadium     string  `json:"stadium"`
	TicketsSold int     `json:"tickets_sold"`
	Attended    int     `json:"attended"`
	Ratio       float64 `json:"ratio"`
}

// Ranked is one entry of a top-N list
type Ranked struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary bundles every statistic
type Summary struct {
	Mode           Mode            `json:"mode"`
	VIPSpend       VIPSpend        `json:"vip_spend"`
	Attendance     []AttendanceRow `json:"attendance"`
	MaxAttendance  *AttendanceRow  `json:"max_attendance,omitempty"`
	MaxTicketsSold *AttendanceRow  `json:"max_tickets_sold,omitempty"`
	TopProducts    []Ranked        `json:"top_products"`
	TopCustomers   []Ranked        `json:"top_customers"`
}

// AverageVIPSpend sums, per VIP ticket, the ticket total plus concession
// spend. Legacy mode charges every product of the holder's stadium; the
// corrected mode only what the ticket actually bought.
func (s *Service) AverageVIPSpend() VIPSpend {
	out := VIPSpend{Mode: s.Mode}

	var spentByTicket map[string]float64
	if s.Mode == ModeCorrected {
		spentByTicket = make(map[string]float64)
		for _, p := range s.Ledger.Purchases() {
			spentByTicket[p.TicketCode] += p.Total
		}
	}

	for c := range s.Ledger.All() {
		if !c.IsVIP() {
			continue
		}
		var spend float64
		if s.Mode == ModeCorrected {
			spend = c.Price.Total + spentByTicket[c.TicketCode]
		} else {
			if price, err := pricing.PriceTicket(c.TicketClass, c.PersonalID); err == nil {
				spend += price.Total
			}
			if stadium, ok := s.Catalog.StadiumByName(c.StadiumName); ok {
				for _, r := range stadium.Restaurants {
					for _, p := range r.Products {
						spend += p.UnitPrice
					}
				}
			}
		}
		out.TotalSpend += spend
		out.VIPCustomers++
	}

	if out.VIPCustomers > 0 {
		out.Average = out.TotalSpend / float64(out.VIPCustomers)
	}
	return out
}

func (s *Service) ticketsFor(m *models.Match) int {
	n := 0
	for c := range s.Ledger.All() {
		if s.Mode == ModeCorrected {
			if c.MatchID == m.ID {
				n++
			}
			continue
		}
		if m.Stadium != nil && c.StadiumName == m.Stadium.Name && c.TicketClass != "" {
			n++
		}
	}
	return n
}

func (s *Service) attendanceRows() []AttendanceRow {
	rows := make([]AttendanceRow, 0, len(s.Catalog.Matches))
	for _, m := range s.Catalog.Matches {
		sold := s.ticketsFor(m)
		// no independent turnstile signal: everyone who bought attended
		attended := sold
		var ratio float64
		if sold > 0 {
			ratio = float64(attended) / float64(sold)
		}
		rows = append(rows, AttendanceRow{
			MatchID:     m.ID,
			Number:      m.Number,
			Match:       m.Title(),
			Stadium:     m.StadiumName(),
			TicketsSold: sold,
			Attended:    attended,
			Ratio:       ratio,
		})
	}
	return rows
}

// AttendanceTable lists every match sorted by attendance ratio, highest
// first; equal ratios keep catalog order.
func (s *Service) AttendanceTable() []AttendanceRow {
	rows := s.attendanceRows()
	slices.SortStableFunc(rows, func(a, b AttendanceRow) int {
		return cmp.Compare(b.Ratio, a.Ratio)
	})
	return rows
}

// MatchWithMaxAttendance returns the first match with the highest
// attendance, or false when nobody attended anything.
func (s *Service) MatchWithMaxAttendance() (AttendanceRow, bool) {
	return maxBy(s.attendanceRows(), func(r AttendanceRow) int { return r.Attended })
}

// MatchWithMaxTicketsSold returns the first match with the most tickets
// sold, or false when no ticket has been sold.
func (s *Service) MatchWithMaxTicketsSold() (AttendanceRow, bool) {
	return maxBy(s.attendanceRows(), func(r AttendanceRow) int { return r.TicketsSold })
}

func maxBy(rows []AttendanceRow, key func(AttendanceRow) int) (AttendanceRow, bool) {
	var best AttendanceRow
	found := false
	highest := 0
	for _, r := range rows {
		if k := key(r); k > highest {
			highest = k
			best = r
			found = true
		}
	}
	return best, found
}

// TopProducts ranks product names. Legacy mode credits every product of a
// stadium with that stadium's VIP ticket count, summed across stadiums by
// name; the corrected mode counts units actually purchased.
func (s *Service) TopProducts() []Ranked {
	var counter rankCounter
	if s.Mode == ModeCorrected {
		for _, p := range s.Ledger.Purchases() {
			for _, name := range p.Products {
				counter.add(name, 1)
			}
		}
		return counter.top(TopN)
	}

	vipByStadium := make(map[string]int)
	for c := range s.Ledger.All() {
		if c.IsVIP() {
			vipByStadium[c.StadiumName]++
		}
	}
	for _, stadium := range s.Catalog.Stadiums {
		for _, r := range stadium.Restaurants {
			for _, p := range r.Products {
				counter.add(p.Name, vipByStadium[stadium.Name])
			}
		}
	}
	return counter.top(TopN)
}

// TopCustomers ranks ticket buyers. Legacy mode scores each ticket record
// on its own by the length of its class name; the corrected mode counts
// tickets per personal id.
func (s *Service) TopCustomers() []Ranked {
	if s.Mode == ModeCorrected {
		var counter rankCounter
		names := make(map[string]string)
		for c := range s.Ledger.All() {
			if _, seen := names[c.PersonalID]; !seen {
				names[c.PersonalID] = c.Name
			}
			counter.add(c.PersonalID, 1)
		}
		ranked := counter.top(TopN)
		for i := range ranked {
			ranked[i].Label = names[ranked[i].Label]
		}
		return ranked
	}

	ranked := make([]Ranked, 0, s.Ledger.Len())
	for c := range s.Ledger.All() {
		ranked = append(ranked, Ranked{Label: c.Name, Count: len(c.TicketClass)})
	}
	return topOf(ranked, TopN)
}

// Summarize computes every statistic at once.
func (s *Service) Summarize() Summary {
	sum := Summary{
		Mode:         s.Mode,
		VIPSpend:     s.AverageVIPSpend(),
		Attendance:   s.AttendanceTable(),
		TopProducts:  s.TopProducts(),
		TopCustomers: s.TopCustomers(),
	}
	if row, ok := s.MatchWithMaxAttendance(); ok {
		sum.MaxAttendance = &row
	}
	if row, ok := s.MatchWithMaxTicketsSold(); ok {
		sum.MaxTicketsSold = &row
	}
	s.Logger.Debug("STATS", fmt.Sprintf("Summary computed in %s mode over %d tickets", s.Mode, s.Ledger.Len()))
	return sum
}

// rankCounter accumulates counts per label, remembering first encounter
// order for tie-breaking.
type rankCounter struct {
	order  []string
	counts map[string]int
}

func (rc *rankCounter) add(label string, n int) {
	if rc.counts == nil {
		rc.counts = make(map[string]int)
	}
	if _, ok := rc.counts[label]; !ok {
		rc.order = append(rc.order, label)
	}
	rc.counts[label] += n
}

func (rc *rankCounter) top(n int) []Ranked {
	ranked := make([]Ranked, 0, len(rc.order))
	for _, label := range rc.order {
		ranked = append(ranked, Ranked{Label: label, Count: rc.counts[label]})
	}
	return topOf(ranked, n)
}

func topOf(ranked []Ranked, n int) []Ranked {
	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
