package api

import (
	"net/http"

	"go.uber.org/zap"
)

func (h *Handler) exportHistoryCSV(w http.ResponseWriter, r *http.Request) {
	query := historyQueryFrom(r)
	if query.EntityType == "" || query.EntityID == "" {
		writeError(w, http.StatusBadRequest, "entityType and entityId are required")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="history.csv"`)
	if err := h.exporter.HistoryCSV(r.Context(), query, w, actorFromRequest(r)); err != nil {
		// Headers are already out; all that is left is logging.
		h.logger.Error("history csv export failed", zap.Error(err))
	}
}

func (h *Handler) exportCatalogXLSX(w http.ResponseWriter, r *http.Request) {
	book, err := h.exporter.CatalogWorkbook(r.Context(), actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer book.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="catalog.xlsx"`)
	if _, err := book.WriteTo(w); err != nil {
		h.logger.Error("catalog workbook export failed", zap.Error(err))
	}
}
