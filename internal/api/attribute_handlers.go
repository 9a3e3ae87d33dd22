package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ycetindil/attrio/internal/catalog"
	"github.com/ycetindil/attrio/internal/domain"
)

type attributeRequest struct {
	Key        string         `json:"key"`
	Name       string         `json:"name"`
	Tags       []string       `json:"tags"`
	Type       string         `json:"type"`
	Options    []string       `json:"options"`
	Validation map[string]any `json:"validation"`
	Required   bool           `json:"required"`
	Unique     bool           `json:"unique"`
	Default    string         `json:"default"`
	GroupID    *uuid.UUID     `json:"groupId"`
}

func (h *Handler) createAttribute(w http.ResponseWriter, r *http.Request) {
	var req attributeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	draft := domain.NewAttributeDraft().
		WithBasicInfo(req.Key, req.Name, req.Tags).
		WithType(domain.AttributeType(req.Type), req.Options).
		WithValidationRules(req.Validation, req.Required, req.Unique).
		WithDefault(req.Default).
		Reviewed()

	created, err := h.catalog.CreateAttribute(r.Context(), draft, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if req.GroupID != nil {
		created, err = h.catalog.UpdateAttribute(r.Context(), created.ID, catalog.AttributeUpdate{GroupID: req.GroupID}, actorFromRequest(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
	}
	writeData(w, http.StatusCreated, created)
}

type attributeUpdateRequest struct {
	Name       *string         `json:"name"`
	GroupID    *uuid.UUID      `json:"groupId"`
	Options    *[]string       `json:"options"`
	Default    *string         `json:"default"`
	Validation *map[string]any `json:"validation"`
	Required   *bool           `json:"required"`
	Unique     *bool           `json:"unique"`
	Tags       *[]string       `json:"tags"`
}

func (h *Handler) updateAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req attributeUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	update := catalog.AttributeUpdate{
		Name:       req.Name,
		GroupID:    req.GroupID,
		Options:    req.Options,
		Default:    req.Default,
		Validation: req.Validation,
		Required:   req.Required,
		Unique:     req.Unique,
		Tags:       req.Tags,
	}
	updated, err := h.catalog.UpdateAttribute(r.Context(), id, update, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (h *Handler) getAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	attr, err := h.catalog.GetAttribute(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, attr)
}

func (h *Handler) listAttributes(w http.ResponseWriter, r *http.Request) {
	attrs, err := h.catalog.ListAttributes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, attrs)
}

func (h *Handler) deleteAttribute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.catalog.DeleteAttribute(r.Context(), id, actorFromRequest(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path segment; on failure it writes the error
// response itself.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
