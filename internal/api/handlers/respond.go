package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/isdelr/book-tracker-be/internal/services"
	"github.com/rs/zerolog/hlog"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

var errBadBody = &services.Error{Kind: services.ErrValidation, Message: "invalid request body"}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps a service error onto its HTTP status. Anything that is
// not a *services.Error is logged and reported as a bare 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	}
	respondJSON(w, status, errorBody{Error: svcErr.Message})
}

// decodeJSON reads a single JSON value from the request body into v. An
// empty body decodes as {}.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errBadBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errBadBody
	}
	return nil
}
