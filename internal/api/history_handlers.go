package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ycetindil/attrio/internal/domain"
)

func historyQueryFrom(r *http.Request) domain.HistoryQuery {
	params := r.URL.Query()
	return domain.HistoryQuery{
		EntityType: strings.TrimSpace(params.Get("entityType")),
		EntityID:   strings.TrimSpace(params.Get("entityId")),
		Page:       intParam(params.Get("page")),
		PageSize:   intParam(params.Get("pageSize")),
		Action:     domain.HistoryAction(strings.TrimSpace(params.Get("action"))),
		Actor:      strings.TrimSpace(params.Get("actor")),
		Search:     strings.TrimSpace(params.Get("search")),
	}
}

func intParam(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	page, err := h.history.List(r.Context(), historyQueryFrom(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, page)
}

type diffRequest struct {
	Base   *domain.Snapshot `json:"base"`
	Target *domain.Snapshot `json:"target"`
}

type diffResponse struct {
	Diff string `json:"diff"`
}

func (h *Handler) diffSnapshots(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	writeData(w, http.StatusOK, diffResponse{Diff: h.history.Diff(req.Base, req.Target)})
}
