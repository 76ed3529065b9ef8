package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the ordering API on r.
func RegisterRoutes(r chi.Router, menuH *MenuHandler, sessionH *SessionHandler, failuresH *FailuresHandler) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", menuH.GetMenu)
		r.Get("/locations", menuH.GetLocations)

		r.Post("/sessions", sessionH.CreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", sessionH.GetSession)
			r.Delete("/", sessionH.DeleteSession)
			r.Put("/location", sessionH.SelectLocation)
			r.Post("/items", sessionH.AddItem)
			r.Patch("/items/{index}", sessionH.ChangeQuantity)
			r.Delete("/items/{index}", sessionH.RemoveItem)
			r.Post("/checkout", sessionH.Checkout)
			r.Post("/back", sessionH.Back)
			r.Post("/submit", sessionH.Submit)
			r.Post("/reset", sessionH.Reset)
			r.Get("/receipts/{orderNumber}", sessionH.GetReceipt)
		})

		if failuresH != nil {
			r.Get("/confirmations/failed", failuresH.ListFailures)
		}
	})
}
