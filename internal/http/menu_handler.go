package http

import (
	"net/http"

	"github.com/loscheesy/ordering/internal/menu"
)

type MenuHandler struct {
	catalog *menu.Catalog
}

func NewMenuHandler(catalog *menu.Catalog) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sections": toMenuResponse(h.catalog.Sections()),
	})
}

func (h *MenuHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"locations": menu.Locations(),
	})
}
