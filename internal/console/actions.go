package console

import (
	"context"
	"errors"
	"strings"

	"ms-venue/internal/analytics"
	"ms-venue/internal/catalog"
	"ms-venue/internal/concession"
	"ms-venue/internal/models"
	"ms-venue/internal/report"
	"ms-venue/internal/sales"
	"ms-venue/internal/seating"
)

func (c *Console) searchMatches() error {
	c.println("Search matches by:\n1. Country\n2. Stadium\n3. Date")
	choice, err := c.prompt("Choose an option: ")
	if err != nil {
		return err
	}

	cat := c.Session.Catalog
	var found []*models.Match
	switch choice {
	case "1":
		country, err := c.prompt("Country name: ")
		if err != nil {
			return err
		}
		found = cat.MatchesByCountry(country)
	case "2":
		stadium, err := c.prompt("Stadium name: ")
		if err != nil {
			return err
		}
		found = cat.MatchesByStadium(stadium)
	case "3":
		date, err := c.prompt("Date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		found = cat.MatchesByDate(date)
	default:
		c.println("Invalid option.")
		return nil
	}

	if len(found) == 0 {
		c.println("No matches found.")
		return nil
	}
	for _, m := range found {
		c.printMatch(m)
	}
	return nil
}

func (c *Console) sellTicket(ctx context.Context) error {
	var req sales.Request
	var err error
	if req.Name, err = c.prompt("Customer name: "); err != nil {
		return err
	}
	if req.PersonalID, err = c.prompt("Personal ID: "); err != nil {
		return err
	}
	if req.Age, err = c.promptInt("Age: "); err != nil {
		return err
	}

	c.println("Available matches:")
	for _, m := range c.Session.Catalog.Matches {
		c.printMatch(m)
	}
	if req.MatchID, err = c.prompt("Match ID: "); err != nil {
		return err
	}
	match, err := c.Session.Catalog.MatchByID(req.MatchID)
	if err != nil {
		c.println("Match not found.")
		return nil
	}
	if match.Stadium == nil {
		c.println("The match has no stadium on record.")
		return nil
	}
	if req.TicketClass, err = c.prompt("Ticket class (General/VIP): "); err != nil {
		return err
	}

	// the seat is asked again until a free, in-range cell is chosen
	var quote *sales.Quote
	for {
		c.printf("Seat map for %s (O available, X occupied):\n", match.Stadium.Name)
		c.printf("%s", match.Stadium.Seats.Render(SeatMapWindow, SeatMapWindow))
		if req.Row, err = c.promptInt("Row: "); err != nil {
			return err
		}
		if req.Column, err = c.promptInt("Column: "); err != nil {
			return err
		}

		quote, err = c.Session.Sales.Quote(req)
		if errors.Is(err, seating.ErrOutOfRange) {
			c.println("That seat does not exist. Pick another one.")
			continue
		}
		if errors.Is(err, seating.ErrSeatTaken) {
			c.println("That seat is already taken. Pick another one.")
			continue
		}
		break
	}
	if err != nil {
		c.printf("Cannot sell the ticket: %v\n", err)
		return nil
	}

	c.printReceipt(quote)
	ok, err := c.confirm("Confirm payment?")
	if err != nil {
		return err
	}
	if !ok {
		c.println("Sale cancelled.")
		return nil
	}

	var customer models.Customer
	err = c.Session.Do(func() error {
		var err error
		customer, err = c.Session.Sales.Confirm(ctx, quote)
		return err
	})
	if err != nil {
		c.printf("Sale failed: %v\n", err)
		return nil
	}
	c.printf("Payment accepted. Ticket code: %s\n", customer.TicketCode)
	return nil
}

func (c *Console) printReceipt(q *sales.Quote) {
	c.println("-------- Receipt --------")
	c.printf("Customer: %s (%s)\n", q.Name, q.PersonalID)
	c.printf("Match: %s\n", q.MatchTitle)
	c.printf("Stadium: %s\n", q.StadiumName)
	c.printf("Seat: %s\n", q.SeatLabel)
	c.printf("Class: %s\n", q.TicketClass)
	c.printf("Base price: %.2f\n", q.Price.Base)
	c.printf("Discount: %.2f\n", q.Price.DiscountAmount())
	c.printf("Tax: %.2f\n", q.Price.Tax)
	c.printf("Total: %.2f\n", q.Price.Total)
	c.println("-------------------------")
}

func (c *Console) validateTicket() error {
	code, err := c.prompt("Ticket code: ")
	if err != nil {
		return err
	}
	customer, err := c.Session.Ledger.ValidateTicket(code)
	if err != nil {
		c.println("Invalid ticket: the code is forged or unknown.")
		return nil
	}
	c.printf("Valid ticket. Holder: %s, %s, %s.\n", customer.Name, customer.TicketClass, customer.StadiumName)
	return nil
}

func (c *Console) searchProducts() error {
	c.println("Search products by:\n1. Name\n2. Category\n3. Price range")
	choice, err := c.prompt("Choose an option: ")
	if err != nil {
		return err
	}

	cat := c.Session.Catalog
	var hits []catalog.ProductHit
	switch choice {
	case "1":
		name, err := c.prompt("Product name: ")
		if err != nil {
			return err
		}
		hits = cat.SearchProductsByName(name)
	case "2":
		category, err := c.prompt("Category (alcoholic, non-alcoholic, package, plate): ")
		if err != nil {
			return err
		}
		hits = cat.SearchProductsByCategory(category)
	case "3":
		low, err := c.promptFloat("Minimum price: ")
		if err != nil {
			return err
		}
		high, err := c.promptFloat("Maximum price: ")
		if err != nil {
			return err
		}
		hits = cat.SearchProductsByPrice(low, high)
	default:
		c.println("Invalid option.")
		return nil
	}

	if len(hits) == 0 {
		c.println("No products found.")
		return nil
	}
	for _, hit := range hits {
		c.printf("%s / %s\n", hit.Stadium.Name, hit.Restaurant.Name)
		c.printProduct(hit.Product)
	}
	return nil
}

func (c *Console) buyProducts(ctx context.Context) error {
	id, err := c.prompt("Personal ID: ")
	if err != nil {
		return err
	}

	// An empty selection gets past the entitlement checks and is then
	// rejected as invalid input, which confirms the customer may buy.
	_, err = c.Session.Concession.Quote(concession.Request{PersonalID: id})
	switch {
	case errors.Is(err, models.ErrCustomerNotFound):
		c.println("No customer with that personal ID.")
		return nil
	case errors.Is(err, models.ErrNotEntitled):
		c.println("Only VIP ticket holders can buy at the restaurants.")
		return nil
	case err != nil && !errors.Is(err, models.ErrInvalidInput):
		c.printf("Cannot buy products: %v\n", err)
		return nil
	}

	customer, err := c.Session.Ledger.FindByPersonalID(id)
	if err != nil {
		return nil
	}
	stadium, ok := c.Session.Catalog.StadiumByName(customer.StadiumName)
	if !ok {
		c.println("The customer's stadium is not in the catalog.")
		return nil
	}
	c.printf("Restaurants at %s:\n", stadium.Name)
	for r, p := range concession.ListCatalog(stadium) {
		c.printf("[%s] ", r.Name)
		c.printProduct(p)
	}

	var selected []string
	for {
		name, err := c.prompt("Product name (or 'done' to finish): ")
		if err != nil {
			return err
		}
		if strings.EqualFold(name, "done") || strings.EqualFold(name, "fin") {
			break
		}
		candidate := append(selected[:len(selected):len(selected)], name)
		_, err = c.Session.Concession.Quote(concession.Request{PersonalID: id, Products: candidate})
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			c.println("Product not found.")
		case errors.Is(err, models.ErrAgeRestricted):
			c.println("Customers under 18 cannot buy alcoholic products.")
		case err != nil:
			c.printf("Cannot add product: %v\n", err)
		default:
			selected = candidate
			c.printf("%s added.\n", name)
		}
	}
	if len(selected) == 0 {
		c.println("No products selected.")
		return nil
	}

	quote, err := c.Session.Concession.Quote(concession.Request{PersonalID: id, Products: selected})
	if err != nil {
		c.printf("Cannot buy products: %v\n", err)
		return nil
	}
	c.println("-------- Order --------")
	for _, line := range quote.Lines {
		c.printf("%s (%s): %.2f\n", line.Product.Name, line.Restaurant, line.Product.UnitPrice)
	}
	c.printf("Subtotal: %.2f\n", quote.Subtotal)
	c.printf("Discount: %.2f\n", quote.Discount)
	c.printf("Total: %.2f\n", quote.Total)
	c.println("-----------------------")

	ok, err = c.confirm("Confirm purchase?")
	if err != nil {
		return err
	}
	if !ok {
		c.println("Purchase cancelled.")
		return nil
	}
	err = c.Session.Do(func() error {
		_, err := c.Session.Concession.Confirm(ctx, quote)
		return err
	})
	if err != nil {
		c.printf("Purchase failed: %v\n", err)
		return nil
	}
	c.println("Purchase completed.")
	return nil
}

func (c *Console) showStatistics() {
	var sum analytics.Summary
	_ = c.Session.Do(func() error {
		sum = c.Session.Stats.Summarize()
		return nil
	})

	c.printf("Statistics (%s mode)\n", sum.Mode)
	if sum.VIPSpend.VIPCustomers == 0 {
		c.println("Average VIP spend: no VIP customers yet.")
	} else {
		c.printf("Average VIP spend: %.2f over %d VIP customers\n", sum.VIPSpend.Average, sum.VIPSpend.VIPCustomers)
	}

	c.println("Attendance by match:")
	for _, row := range sum.Attendance {
		c.printf("  %s | %s | sold %d | attended %d | ratio %.2f\n", row.Match, row.Stadium, row.TicketsSold, row.Attended, row.Ratio)
	}
	if sum.MaxAttendance != nil {
		c.printf("Match with the highest attendance: %s (%d)\n", sum.MaxAttendance.Match, sum.MaxAttendance.Attended)
	} else {
		c.println("Match with the highest attendance: none")
	}
	if sum.MaxTicketsSold != nil {
		c.printf("Match with the most tickets sold: %s (%d)\n", sum.MaxTicketsSold.Match, sum.MaxTicketsSold.TicketsSold)
	} else {
		c.println("Match with the most tickets sold: none")
	}

	c.printRanking("Top products", sum.TopProducts)
	c.printRanking("Top customers", sum.TopCustomers)

	_ = report.WriteBarChart(c.out, "Top products", sum.TopProducts, c.charts)
	_ = report.WriteBarChart(c.out, "Top customers", sum.TopCustomers, c.charts)
}

func (c *Console) printRanking(title string, ranked []analytics.Ranked) {
	c.printf("%s:\n", title)
	if len(ranked) == 0 {
		c.println("  none")
		return
	}
	for i, r := range ranked {
		c.printf("  %d. %s (%d)\n", i+1, r.Label, r.Count)
	}
}
