package venue_api

import (
	"net/http"
)

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	h.locked(w, http.StatusOK, "Statistics computed", "Failed to compute statistics", func() (any, error) {
		return h.Session.Stats.Summarize(), nil
	})
}

func (h *Handler) VIPSpend(w http.ResponseWriter, r *http.Request) {
	h.locked(w, http.StatusOK, "VIP spend computed", "Failed to compute VIP spend", func() (any, error) {
		return h.Session.Stats.AverageVIPSpend(), nil
	})
}

func (h *Handler) Attendance(w http.ResponseWriter, r *http.Request) {
	h.locked(w, http.StatusOK, "Attendance computed", "Failed to compute attendance", func() (any, error) {
		return h.Session.Stats.AttendanceTable(), nil
	})
}

func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	h.locked(w, http.StatusOK, "Top products computed", "Failed to rank products", func() (any, error) {
		return h.Session.Stats.TopProducts(), nil
	})
}

func (h *Handler) TopCustomers(w http.ResponseWriter, r *http.Request) {
	h.locked(w, http.StatusOK, "Top customers computed", "Failed to rank customers", func() (any, error) {
		return h.Session.Stats.TopCustomers(), nil
	})
}

// WriteDump writes the text report to the configured path.
func (h *Handler) WriteDump(w http.ResponseWriter, r *http.Request) {
	h.locked(w, http.StatusOK, "Report written", "Failed to write report", func() (any, error) {
		if err := h.Session.WriteDump(); err != nil {
			return nil, err
		}
		return map[string]string{"path": h.Session.Config.Report.Path}, nil
	})
}

// ExportSnapshot writes the session to the configured SQL database.
func (h *Handler) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	h.locked(w, http.StatusOK, "Snapshot exported", "Failed to export snapshot", func() (any, error) {
		return h.Session.ExportSnapshot(r.Context())
	})
}
