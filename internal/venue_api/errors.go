package venue_api

import (
	"errors"
	"net/http"

	"ms-venue/internal/models"
	"ms-venue/internal/utils"
)

// statusFor maps domain sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotEntitled), errors.Is(err, models.ErrAgeRestricted):
		return http.StatusForbidden
	case errors.Is(err, models.ErrSeatTaken), errors.Is(err, models.ErrCodeCollision):
		return http.StatusConflict
	case errors.Is(err, models.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Logger.Error("HTTP", message+": "+err.Error())
	}
	utils.WriteJSON(w, status, utils.ErrorResponse(message, err.Error()))
}

func badRequest(w http.ResponseWriter, message string, err error) {
	utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse(message, err.Error()))
}
