package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ycetindil/attrio/internal/catalog"
	"github.com/ycetindil/attrio/internal/export"
	"github.com/ycetindil/attrio/internal/history"
)

// Handler bundles the HTTP surface over the catalog services.
type Handler struct {
	catalog  *catalog.Service
	history  *history.Service
	exporter *export.Service
	importer *catalog.Importer
	logger   *zap.Logger
}

// NewHandler wires the services into a handler set.
func NewHandler(
	catalogSvc *catalog.Service,
	historySvc *history.Service,
	exporter *export.Service,
	importer *catalog.Importer,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		catalog:  catalogSvc,
		history:  historySvc,
		exporter: exporter,
		importer: importer,
		logger:   logger,
	}
}

// Routes mounts every endpoint on a fresh mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/attributes", h.listAttributes)
	mux.HandleFunc("POST /api/attributes", h.createAttribute)
	mux.HandleFunc("GET /api/attributes/{id}", h.getAttribute)
	mux.HandleFunc("PATCH /api/attributes/{id}", h.updateAttribute)
	mux.HandleFunc("DELETE /api/attributes/{id}", h.deleteAttribute)

	mux.HandleFunc("GET /api/groups", h.listGroups)
	mux.HandleFunc("POST /api/groups", h.createGroup)
	mux.HandleFunc("GET /api/groups/{id}", h.getGroup)
	mux.HandleFunc("PATCH /api/groups/{id}", h.updateGroup)
	mux.HandleFunc("DELETE /api/groups/{id}", h.deleteGroup)

	mux.HandleFunc("GET /api/items", h.listItems)
	mux.HandleFunc("POST /api/items", h.createItem)
	mux.HandleFunc("GET /api/items/{id}", h.getItem)
	mux.HandleFunc("PATCH /api/items/{id}", h.updateItem)
	mux.HandleFunc("DELETE /api/items/{id}", h.deleteItem)
	mux.HandleFunc("GET /api/items/{id}/form", h.itemForm)
	mux.HandleFunc("POST /api/items/import", h.importItems)

	mux.HandleFunc("GET /api/history", h.listHistory)
	mux.HandleFunc("POST /api/history/diff", h.diffSnapshots)

	mux.HandleFunc("GET /api/export/history.csv", h.exportHistoryCSV)
	mux.HandleFunc("GET /api/export/catalog.xlsx", h.exportCatalogXLSX)

	return mux
}
