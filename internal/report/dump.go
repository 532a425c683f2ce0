// Package report renders the session state for humans: the plain text dump
// written on exit and bar charts of the top-N rankings.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ms-venue/internal/catalog"
	"ms-venue/internal/models"
)

const separator = "-------------------------"

// WriteDump writes teams, customers, stadiums with their restaurants and
// products, and matches, in that order.
func WriteDump(w io.Writer, cat *catalog.Catalog, customers []models.Customer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Teams:")
	for _, t := range cat.Teams {
		fmt.Fprintf(bw, "ID: %s\nCode: %s\nName: %s\nGroup: %s\n%s\n", t.ID, t.Code, t.Name, t.Group, separator)
	}

	fmt.Fprintln(bw, "Customers:")
	for _, c := range customers {
		fmt.Fprintf(bw, "Name: %s\nPersonal ID: %s\nAge: %d\nTicket class: %s\nTicket code: %s\n", c.Name, c.PersonalID, c.Age, c.TicketClass, c.TicketCode)
		if c.SeatLabel != "" {
			fmt.Fprintf(bw, "Seat: %s\n", c.SeatLabel)
		}
		fmt.Fprintln(bw, separator)
	}

	fmt.Fprintln(bw, "Stadiums:")
	for _, s := range cat.Stadiums {
		fmt.Fprintf(bw, "Stadium: %s\nCity: %s\nGeneral capacity: %d\nVIP capacity: %d\nRestaurants:\n", s.Name, s.City, s.GeneralCapacity, s.VIPCapacity)
		for _, r := range s.Restaurants {
			fmt.Fprintf(bw, "- Name: %s\n  Products:\n", r.Name)
			for _, p := range r.Products {
				fmt.Fprintf(bw, "  - Name: %s\n    Quantity: %d\n    Price: %.2f\n    Category: %s\n    Stock: %d\n", p.Name, p.Quantity, p.UnitPrice, p.Category, p.Stock)
			}
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw, "Matches:")
	for _, m := range cat.Matches {
		fmt.Fprintf(bw, "ID: %s\nNumber: %d\nHome: %s\nAway: %s\nDate: %s\nGroup: %s\nStadium: %s\n%s\n",
			m.ID, m.Number, m.HomeName(), m.AwayName(), m.Date, m.Group, m.StadiumName(), separator)
	}

	return bw.Flush()
}

// WriteDumpFile replaces path with a fresh dump.
func WriteDumpFile(path string, cat *catalog.Catalog, customers []models.Customer) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := WriteDump(f, cat, customers); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}
