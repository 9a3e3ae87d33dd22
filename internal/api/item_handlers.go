package api

import (
	"net/http"

	"github.com/ycetindil/attrio/internal/catalog"
	"github.com/ycetindil/attrio/internal/codec"
)

type itemRequest struct {
	Name   string         `json:"name"`
	Values map[string]any `json:"values"`
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	created, err := h.catalog.CreateItem(r.Context(), req.Name, req.Values, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

type itemUpdateRequest struct {
	Name   *string        `json:"name"`
	Values map[string]any `json:"values"`
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req itemUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	updated, err := h.catalog.UpdateItem(r.Context(), id, catalog.ItemUpdate{Name: req.Name, Values: req.Values}, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := h.catalog.GetItem(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, item)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.catalog.DeleteItem(r.Context(), id, actorFromRequest(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// itemForm serves the abstract field descriptors a client binds its form
// widgets to. mode defaults to view; pass mode=edit for interactive controls.
func (h *Handler) itemForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	mode := codec.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = codec.ModeView
	}
	readonly := r.URL.Query().Get("readonly") == "true"

	descriptors, err := h.catalog.DescribeItem(r.Context(), id, mode, readonly)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, descriptors)
}

func (h *Handler) importItems(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file required: "+err.Error())
		return
	}
	defer file.Close()

	summary, err := h.importer.Import(r.Context(), header.Filename, file, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, summary)
}
