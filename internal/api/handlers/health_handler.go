package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"
)

// Pinger is the part of the store the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the API and its store are reachable.
type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Check pings the store with a short deadline.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := HealthStatus{Status: "ok", Timestamp: time.Now().UTC()}
	if err := h.store.Ping(ctx); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("Health check: store unreachable")
		status.Status = "unavailable"
		respondJSON(w, http.StatusServiceUnavailable, status)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// Banner answers GET / so a browser pointed at the API gets a hint.
func (h *HealthHandler) Banner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Book Tracker API is running. Try GET /api/books"))
}
