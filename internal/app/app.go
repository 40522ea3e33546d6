package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/isdelr/book-tracker-be/internal/api"
	"github.com/isdelr/book-tracker-be/internal/auth"
	"github.com/isdelr/book-tracker-be/internal/config"
	"github.com/isdelr/book-tracker-be/internal/database"
	"github.com/isdelr/book-tracker-be/internal/services"
	"github.com/isdelr/book-tracker-be/internal/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// App owns the process-wide resources: the store, the token service and the
// HTTP server. Nothing here lives in package-level state.
type App struct {
	cfg    *config.Config
	logger zerolog.Logger

	store    storage.Store
	tokens   *auth.TokenService
	handler  http.Handler
	server   *http.Server
	listener net.Listener
	serveErr chan error
}

// New creates an App from a loaded configuration. Nothing is opened until Start.
func New(cfg *config.Config) *App {
	return &App{
		cfg:    cfg,
		logger: log.Logger.With().Str("component", "api").Logger(),
	}
}

// Start opens the store and builds the router. Outside test mode it also
// binds the listener and serves in the background.
func (a *App) Start(ctx context.Context) error {
	if a.store != nil {
		return errors.New("app already started")
	}

	store, err := database.Open(ctx, a.cfg.DatabaseURL, a.cfg.DatabaseName)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	a.store = store
	a.tokens = auth.NewTokenService(a.cfg.JWTSecret, a.cfg.TokenTTL)

	a.handler = api.NewRouter(api.Dependencies{
		Logger:      a.logger,
		Users:       services.NewUserService(store.Users()),
		Books:       services.NewBookService(store.Books()),
		Tokens:      a.tokens,
		Store:       store,
		CORSOrigins: a.cfg.CORSOrigins,
	})

	if a.cfg.IsTest() {
		log.Debug().Msg("Test mode: not binding a listener")
		return nil
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", a.cfg.ServerPort))
	if err != nil {
		store.Close(ctx)
		a.store = nil
		return fmt.Errorf("failed to listen on port %d: %w", a.cfg.ServerPort, err)
	}
	a.listener = ln
	a.server = &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.serveErr = make(chan error, 1)

	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("Server starting")
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server stopped unexpectedly")
			a.serveErr <- err
		}
		close(a.serveErr)
	}()

	return nil
}

// Handler returns the root HTTP handler. It is nil before Start.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Addr returns the bound listen address, or "" when not listening.
func (a *App) Addr() string {
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Errors reports a failure of the background server. It is nil in test mode.
func (a *App) Errors() <-chan error {
	return a.serveErr
}

// Stop shuts the server down gracefully and releases the store.
func (a *App) Stop(ctx context.Context) error {
	var errs []error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
		a.server = nil
		a.listener = nil
	}
	if a.store != nil {
		if err := a.store.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("store close: %w", err))
		}
		a.store = nil
	}
	return errors.Join(errs...)
}
