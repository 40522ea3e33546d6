package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/isdelr/book-tracker-be/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", &services.Error{Kind: services.ErrValidation, Message: "title is required"}, http.StatusBadRequest, `{"error":"title is required"}`},
		{"unauthenticated", &services.Error{Kind: services.ErrUnauthenticated, Message: "invalid credentials"}, http.StatusUnauthorized, `{"error":"invalid credentials"}`},
		{"conflict", &services.Error{Kind: services.ErrConflict, Message: "user exists"}, http.StatusConflict, `{"error":"user exists"}`},
		{"not found", &services.Error{Kind: services.ErrNotFound, Message: "not found"}, http.StatusNotFound, `{"error":"not found"}`},
		{"wrapped", fmt.Errorf("update: %w", &services.Error{Kind: services.ErrNotFound, Message: "not found"}), http.StatusNotFound, `{"error":"not found"}`},
		{"internal", errors.New("db error: disk I/O error"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Title string `json:"title"`
	}

	require.NoError(t, decodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), &v))
	assert.Empty(t, v.Title)

	require.NoError(t, decodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Dune"}`)), &v))
	assert.Equal(t, "Dune", v.Title)

	err := decodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`)), &v)
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.EqualError(t, err, "invalid request body")

	require.NoError(t, decodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{\"title\":\"Emma\"}\n")), &v))
	assert.Equal(t, "Emma", v.Title)

	for _, body := range []string{`{"title":"Dune"} trailing`, `{"title":"Dune"}{"title":"Emma"}`} {
		err = decodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &v)
		assert.EqualError(t, err, "invalid request body", body)
	}
}
