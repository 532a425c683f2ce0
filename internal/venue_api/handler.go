// Package venue_api exposes the venue engine over HTTP with chi.
package venue_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"ms-venue/internal/logger"
	"ms-venue/internal/session"
	"ms-venue/internal/tickets/qr"
	"ms-venue/internal/utils"
)

// Handler serves every venue endpoint. Requests touching session state are
// serialised through Session.Do.
type Handler struct {
	Session *session.Session
	QR      *qr.Generator
	Logger  *logger.Logger
}

func NewHandler(s *session.Session, qrGen *qr.Generator, log *logger.Logger) *Handler {
	if qrGen == nil {
		qrGen = qr.NewGenerator("")
	}
	return &Handler{Session: s, QR: qrGen, Logger: log}
}

// Router builds the full chi router with middleware.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.Session.Config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers the venue routes on a chi router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/api/venue", func(r chi.Router) {
		r.Get("/teams", h.ListTeams)
		r.Get("/matches", h.ListMatches)
		r.Get("/stadiums", h.ListStadiums)
		r.Get("/stadiums/{stadiumId}/seats", h.SeatMap)
		r.Get("/stadiums/{stadiumId}/products", h.StadiumProducts)
		r.Get("/products", h.SearchProducts)

		r.Post("/sales/quote", h.QuoteSale)
		r.Post("/sales", h.ConfirmSale)

		r.Post("/tickets/checkin", h.CheckinTicket)
		r.Get("/tickets/{code}", h.ValidateTicket)
		r.Get("/tickets/{code}/qr", h.TicketQR)

		r.Post("/concessions/quote", h.QuoteConcession)
		r.Post("/concessions", h.PurchaseConcession)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", h.Summary)
			r.Get("/vip-spend", h.VIPSpend)
			r.Get("/attendance", h.Attendance)
			r.Get("/top-products", h.TopProducts)
			r.Get("/top-customers", h.TopCustomers)
		})

		r.Get("/events", h.RecentEvents)
		r.Get("/events/stream", h.StreamEvents)
		r.Post("/reports/dump", h.WriteDump)
		r.Post("/reports/snapshot", h.ExportSnapshot)
	})
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.Logger.LogAPI(r.Method, r.URL.Path, strconv.Itoa(ww.Status()), time.Since(start).String())
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"session_id": h.Session.ID,
		"catalog_ok": h.Session.CatalogErr == nil,
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("ok", status))
}

// locked runs fn under the session lock and writes its result or error.
// The success body is encoded before the lock is released since it may
// reference live stock and seat state.
func (h *Handler) locked(w http.ResponseWriter, status int, message, failure string, fn func() (any, error)) {
	err := h.Session.Do(func() error {
		data, err := fn()
		if err != nil {
			return err
		}
		utils.WriteJSON(w, status, utils.SuccessResponse(message, data))
		return nil
	})
	if err != nil {
		h.writeError(w, failure, err)
	}
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
