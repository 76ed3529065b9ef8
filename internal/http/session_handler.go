package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/loscheesy/ordering/internal/logger"
	"github.com/loscheesy/ordering/internal/menu"
	"github.com/loscheesy/ordering/internal/receipt"
	"github.com/loscheesy/ordering/internal/session"
	"github.com/loscheesy/ordering/internal/store"
	"github.com/loscheesy/ordering/internal/variant"
)

type SessionHandler struct {
	sessions store.SessionStore
	catalog  *menu.Catalog
	receipts *receipt.Service
	timeout  time.Duration
}

func NewSessionHandler(sessions store.SessionStore, catalog *menu.Catalog, receipts *receipt.Service, timeout time.Duration) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		catalog:  catalog,
		receipts: receipts,
		timeout:  timeout,
	}
}

func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, ctrl := h.sessions.Create()
	logger.FromContext(r.Context()).Info("session created", slog.String("session_id", id))
	respondJSON(w, http.StatusCreated, toSessionResponse(id, ctrl.Snapshot()))
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(id, ctrl.Snapshot()))
}

func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	h.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) SelectLocation(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req locationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	loc, err := menu.ParseLocation(req.Location)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if err := ctrl.SelectLocation(loc); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(id, ctrl.Snapshot()))
}

func (h *SessionHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	sel, err := h.catalog.Item(req.ItemID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if err := ctrl.AddToCart(sel, variant.Choice{Size: req.Size, Style: req.Style}); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(id, ctrl.Snapshot()))
}

func (h *SessionHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.lookup(w, r)
	if !ok {
		return
	}
	index, ok := lineIndex(w, r)
	if !ok {
		return
	}

	var req quantityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := ctrl.ChangeQuantity(index, req.Delta); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(id, ctrl.Snapshot()))
}

func (h *SessionHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.lookup(w, r)
	if !ok {
		return
	}
	index, ok := lineIndex(w, r)
	if !ok {
		return
	}

	if err := ctrl.RemoveLine(index); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(id, ctrl.Snapshot()))
}

func (h *SessionHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*session.Controller).ProceedToCheckout)
}

func (h *SessionHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*session.Controller).BackToCart)
}

func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*session.Controller).ResetOrder)
}

func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ctrl, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req submitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rcpt, err := ctrl.SubmitOrder(ctx, req.customer())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	h.receipts.Save(ctx, id, rcpt)
	logger.FromContext(ctx).Info("order placed",
		slog.String("session_id", id), slog.String("order_number", rcpt.OrderNumber))

	respondJSON(w, http.StatusCreated, toSessionResponse(id, ctrl.Snapshot()))
}

func (h *SessionHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	orderNumber := chi.URLParam(r, "orderNumber")

	rcpt, err := h.receipts.Get(r.Context(), id, orderNumber)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toReceiptResponse(*rcpt))
}

func (h *SessionHandler) transition(w http.ResponseWriter, r *http.Request, step func(*session.Controller) error) {
	id, ctrl, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := step(ctrl); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(id, ctrl.Snapshot()))
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (string, *session.Controller, bool) {
	id := chi.URLParam(r, "sessionID")
	ctrl, err := h.sessions.Get(id)
	if err != nil {
		handleDomainError(w, err)
		return "", nil, false
	}
	return id, ctrl, true
}

func lineIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		respondError(w, http.StatusBadRequest, "invalid_line_index", "index must be a non-negative integer")
		return 0, false
	}
	return index, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}
