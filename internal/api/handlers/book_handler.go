package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/book-tracker-be/internal/auth"
	"github.com/isdelr/book-tracker-be/internal/models"
	"github.com/isdelr/book-tracker-be/internal/services"
)

// BookHandler handles HTTP requests for the caller's books. It must be
// mounted behind auth.TokenService.Middleware.
type BookHandler struct {
	service services.BookServiceProvider
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(service services.BookServiceProvider) *BookHandler {
	return &BookHandler{service: service}
}

// GetAll lists the caller's books.
func (h *BookHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	books, err := h.service.ListBooks(r.Context(), owner)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, books)
}

// Create adds a book to the caller's shelf.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var in models.BookInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	book, err := h.service.CreateBook(r.Context(), owner, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, book)
}

// Update applies a partial update to one of the caller's books.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var patch models.BookPatch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, r, err)
		return
	}

	book, err := h.service.UpdateBook(r.Context(), owner, chi.URLParam(r, "id"), patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, book)
}

// Delete permanently removes one of the caller's books.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteBook(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "missing token"})
		return "", false
	}
	return claims.UserID, true
}
