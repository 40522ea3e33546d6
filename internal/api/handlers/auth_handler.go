package handlers

import (
	"net/http"

	"github.com/isdelr/book-tracker-be/internal/auth"
	"github.com/isdelr/book-tracker-be/internal/models"
	"github.com/isdelr/book-tracker-be/internal/services"
	"github.com/rs/zerolog/hlog"
)

// AuthHandler handles registration, login and identity lookups.
type AuthHandler struct {
	service services.UserServiceProvider
	tokens  *auth.TokenService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{service: service, tokens: tokens}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned by register and login.
type SessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.service.CreateUser(r.Context(), payload.Username, payload.Email, payload.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.respondSession(w, r, http.StatusCreated, user)
}

// Login handles user authentication and JWT generation.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.service.AuthenticateUser(r.Context(), payload.Email, payload.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.respondSession(w, r, http.StatusOK, user)
}

// Me retrieves the currently authenticated user from the token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		hlog.FromRequest(r).Error().Msg("Could not retrieve user claims from context")
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "missing token"})
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) respondSession(w http.ResponseWriter, r *http.Request, status int, user models.User) {
	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	respondJSON(w, status, SessionResponse{Token: token, User: user})
}
