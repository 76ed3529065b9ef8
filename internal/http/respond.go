package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/loscheesy/ordering/internal/cart"
	"github.com/loscheesy/ordering/internal/menu"
	"github.com/loscheesy/ordering/internal/receipt"
	"github.com/loscheesy/ordering/internal/session"
	"github.com/loscheesy/ordering/internal/store"
	"github.com/loscheesy/ordering/internal/submission"
	"github.com/loscheesy/ordering/internal/variant"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleDomainError converts core errors to HTTP status codes.
func handleDomainError(w http.ResponseWriter, err error) {
	var verr *submission.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   err.Error(),
			Code:    "validation_failed",
			Details: "name and phone are required",
		})
		return
	}

	var derr *submission.DeliveryError
	if errors.As(err, &derr) {
		respondError(w, http.StatusBadGateway, "delivery_failed", "the order could not be delivered, please try again")
		return
	}

	var httpStatus int
	var code string

	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		httpStatus, code = http.StatusNotFound, "session_not_found"
	case errors.Is(err, menu.ErrItemNotFound):
		httpStatus, code = http.StatusNotFound, "item_not_found"
	case errors.Is(err, receipt.ErrReceiptNotFound):
		httpStatus, code = http.StatusNotFound, "receipt_not_found"
	case errors.Is(err, menu.ErrUnknownLocation):
		httpStatus, code = http.StatusBadRequest, "unknown_location"
	case errors.Is(err, variant.ErrNoPrice):
		httpStatus, code = http.StatusBadRequest, "option_required"
	case errors.Is(err, variant.ErrUnknownOption):
		httpStatus, code = http.StatusBadRequest, "unknown_option"
	case errors.Is(err, cart.ErrLineOutOfRange):
		httpStatus, code = http.StatusBadRequest, "invalid_line_index"
	case errors.Is(err, session.ErrInvalidDelta):
		httpStatus, code = http.StatusBadRequest, "invalid_delta"
	case errors.Is(err, session.ErrSubmitInProgress):
		httpStatus, code = http.StatusConflict, "submit_in_progress"
	case errors.Is(err, session.ErrCheckoutNotAllowed):
		httpStatus, code = http.StatusConflict, "checkout_not_allowed"
	case errors.Is(err, session.ErrCartLocked):
		httpStatus, code = http.StatusConflict, "cart_locked"
	case errors.Is(err, session.ErrInvalidTransition):
		httpStatus, code = http.StatusConflict, "invalid_transition"
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondError(w, httpStatus, code, err.Error())
}
