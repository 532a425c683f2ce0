package venue_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ms-venue/internal/events"
	"ms-venue/internal/models"
)

// StreamEvents pushes confirmed sales and purchases as Server-Sent Events.
// The optional ?type= query narrows the stream to one event type.
func (h *Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	t := events.Type(r.URL.Query().Get("type"))
	switch t {
	case "", events.TicketIssued, events.ConcessionPurchased:
	default:
		h.writeError(w, "Failed to open event stream", fmt.Errorf("%w: unknown event type %q", models.ErrInvalidInput, t))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ctx := r.Context()
	ch := h.Session.Stream.Subscribe(ctx, t)

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"type\":%q}\n\n", string(t))
	flusher.Flush()
	h.Logger.Info("SSE", fmt.Sprintf("Client subscribed to %q events", t))

	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				h.Logger.Error("SSE", fmt.Sprintf("Failed to serialize event %s: %v", e.ID, err))
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", e.ID, e.Type, data)
			flusher.Flush()
		case <-ctx.Done():
			h.Logger.Debug("SSE", "Client disconnected from event stream")
			return
		}
	}
}
