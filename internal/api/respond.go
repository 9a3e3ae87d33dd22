package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ycetindil/attrio/internal/catalog"
	"github.com/ycetindil/attrio/internal/codec"
	"github.com/ycetindil/attrio/internal/domain"
	"github.com/ycetindil/attrio/internal/repository"
)

type errorBody struct {
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type dataEnvelope struct {
	Data any `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}

func writeData(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, dataEnvelope{Data: payload})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Message: message}})
}

// writeServiceError maps service-layer failures onto HTTP statuses. Anything
// unrecognized is a 500 with the raw message.
func writeServiceError(w http.ResponseWriter, err error) {
	var valuesErr *catalog.ValuesError
	var validationErr *codec.ValidationError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, catalog.ErrUniqueViolation):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, catalog.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, domain.ErrDraftIncomplete):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &valuesErr), errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
