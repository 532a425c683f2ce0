package venue_api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-venue/internal/concession"
	"ms-venue/internal/models"
	"ms-venue/internal/sales"
	"ms-venue/internal/tickets/qr"
)

// QuoteSale prices a sale without reserving anything.
func (h *Handler) QuoteSale(w http.ResponseWriter, r *http.Request) {
	var req sales.Request
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "Invalid sale request", err)
		return
	}
	h.locked(w, http.StatusOK, "Sale quoted", "Failed to quote sale", func() (any, error) {
		return h.Session.Sales.Quote(req)
	})
}

// ConfirmSale quotes and confirms in one request.
func (h *Handler) ConfirmSale(w http.ResponseWriter, r *http.Request) {
	var req sales.Request
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "Invalid sale request", err)
		return
	}
	h.locked(w, http.StatusCreated, "Ticket issued", "Failed to sell ticket", func() (any, error) {
		q, err := h.Session.Sales.Quote(req)
		if err != nil {
			return nil, err
		}
		return h.Session.Sales.Confirm(r.Context(), q)
	})
}

// ValidateTicket answers whether a code was issued in this session.
func (h *Handler) ValidateTicket(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	h.locked(w, http.StatusOK, "Ticket is valid", "Invalid or forged ticket", func() (any, error) {
		c, err := h.Session.Ledger.ValidateTicket(code)
		if err != nil {
			return nil, err
		}
		return ticketView{Valid: true, HolderName: c.Name, Customer: c}, nil
	})
}

// TicketQR returns a PNG QR code for an issued ticket; ?size= sets pixels.
func (h *Handler) TicketQR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var c models.Customer
	err := h.Session.Do(func() error {
		var err error
		c, err = h.Session.Ledger.ValidateTicket(code)
		return err
	})
	if err != nil {
		h.writeError(w, "Invalid or forged ticket", err)
		return
	}

	png, err := h.QR.PNG(c, queryInt(r, "size", qr.DefaultSize))
	if err != nil {
		h.writeError(w, "Failed to generate QR", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// CheckinTicket validates a scanned QR payload.
// Expected POST request body: {"qr": "<payload>"}
func (h *Handler) CheckinTicket(w http.ResponseWriter, r *http.Request) {
	var body struct {
		QR string `json:"qr"`
	}
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, "Invalid check-in request", err)
		return
	}
	if body.QR == "" {
		badRequest(w, "Invalid check-in request", fmt.Errorf("%w: qr is required", models.ErrInvalidInput))
		return
	}

	payload, err := h.QR.Decode(body.QR)
	if err != nil {
		h.writeError(w, "Invalid QR code", err)
		return
	}
	h.locked(w, http.StatusOK, "Ticket is valid", "Invalid or forged ticket", func() (any, error) {
		c, err := h.Session.Ledger.ValidateTicket(payload.TicketCode)
		if err != nil {
			return nil, err
		}
		h.Logger.LogSale("CHECKIN", c.TicketCode, c.Name)
		return ticketView{Valid: true, HolderName: c.Name, Customer: c}, nil
	})
}

func (h *Handler) QuoteConcession(w http.ResponseWriter, r *http.Request) {
	var req concession.Request
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "Invalid concession request", err)
		return
	}
	h.locked(w, http.StatusOK, "Concession quoted", "Failed to quote concession", func() (any, error) {
		return h.Session.Concession.Quote(req)
	})
}

func (h *Handler) PurchaseConcession(w http.ResponseWriter, r *http.Request) {
	var req concession.Request
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "Invalid concession request", err)
		return
	}
	h.locked(w, http.StatusCreated, "Purchase confirmed", "Failed to purchase", func() (any, error) {
		return h.Session.Concession.Purchase(r.Context(), req)
	})
}
