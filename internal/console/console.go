// Package console is the interactive operator menu. It reads answers line
// by line and prints results; all business rules live in the services it
// calls.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ms-venue/internal/models"
	"ms-venue/internal/report"
	"ms-venue/internal/session"
)

// SeatMapWindow bounds the seat grid printed during a sale.
const SeatMapWindow = 20

type Console struct {
	Session *session.Session

	in     *bufio.Scanner
	out    io.Writer
	charts report.ChartOptions
}

type Option func(*Console)

// WithoutColor disables chart colouring.
func WithoutColor() Option {
	return func(c *Console) { c.charts.NoColor = true }
}

func New(s *session.Session, in io.Reader, out io.Writer, opts ...Option) *Console {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanLines)
	c := &Console{Session: s, in: scanner, out: out}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errQuit is returned by prompt when input is exhausted.
var errQuit = errors.New("input closed")

const menu = `-- Tournament Venue --
Main menu:
1. Search matches
2. Sell ticket
3. Validate ticket
4. Search products
5. Buy products
6. Show statistics
7. Exit`

// Run loops over the main menu until the operator exits or input ends.
// Exiting writes the text report.
func (c *Console) Run(ctx context.Context) error {
	if err := c.Session.CatalogErr; err != nil {
		c.printf("Warning: catalog partially unavailable (%v). Continuing with what was loaded.\n", err)
	}
	for {
		c.println(menu)
		choice, err := c.prompt("Choose an option: ")
		if err != nil {
			return c.exit()
		}

		switch choice {
		case "1":
			err = c.searchMatches()
		case "2":
			err = c.sellTicket(ctx)
		case "3":
			err = c.validateTicket()
		case "4":
			err = c.searchProducts()
		case "5":
			err = c.buyProducts(ctx)
		case "6":
			c.showStatistics()
		case "7":
			return c.exit()
		default:
			c.println("Invalid option.")
		}
		if errors.Is(err, errQuit) {
			return c.exit()
		}
	}
}

func (c *Console) exit() error {
	if err := c.Session.WriteDump(); err != nil {
		c.printf("Could not write report: %v\n", err)
		return err
	}
	if path := c.Session.Config.Report.Path; path != "" {
		c.printf("Current state written to %s.\n", path)
	}
	c.println("Leaving the system.")
	return nil
}

func (c *Console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) promptInt(label string) (int, error) {
	for {
		s, err := c.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err == nil {
			return n, nil
		}
		c.println("Please enter a whole number.")
	}
}

func (c *Console) promptFloat(label string) (float64, error) {
	for {
		s, err := c.prompt(label)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return f, nil
		}
		c.println("Please enter a number.")
	}
}

func (c *Console) confirm(label string) (bool, error) {
	s, err := c.prompt(label + " (yes/no): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "yes", "y", "si", "sí":
		return true, nil
	}
	return false, nil
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

func (c *Console) printMatch(m *models.Match) {
	c.printf("ID: %s, Date: %s, Home: %s, Away: %s, Stadium: %s\n", m.ID, m.Date, m.HomeName(), m.AwayName(), m.StadiumName())
}

func (c *Console) printProduct(p *models.Product) {
	c.printf("Name: %s\nQuantity: %d\nPrice (tax incl.): %.2f\nCategory: %s\nStock: %d\n-------------------------\n",
		p.Name, p.Quantity, p.UnitPrice, p.Category, p.Stock)
}
