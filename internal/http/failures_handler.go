package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/loscheesy/ordering/internal/cache"
)

const (
	defaultFailuresLimit = 50
	maxFailuresLimit     = 500
)

// FailureLister reads back confirmations that could not be sent.
type FailureLister interface {
	ConfirmationFailures(ctx context.Context, limit int64) ([]cache.ConfirmationFailure, error)
}

type FailuresHandler struct {
	failures FailureLister
}

func NewFailuresHandler(failures FailureLister) *FailuresHandler {
	return &FailuresHandler{failures: failures}
}

func (h *FailuresHandler) ListFailures(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultFailuresLimit)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 || n > maxFailuresLimit {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	failures, err := h.failures.ConfirmationFailures(r.Context(), limit)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if failures == nil {
		failures = []cache.ConfirmationFailure{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"failures": failures,
	})
}
