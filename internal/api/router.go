package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/book-tracker-be/internal/api/handlers"
	"github.com/isdelr/book-tracker-be/internal/auth"
	"github.com/isdelr/book-tracker-be/internal/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Dependencies are the collaborators the router wires into its handlers.
type Dependencies struct {
	Logger      zerolog.Logger
	Users       services.UserServiceProvider
	Books       services.BookServiceProvider
	Tokens      *auth.TokenService
	Store       handlers.Pinger
	CORSOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Request-scoped logger, request id and access log
	r.Use(hlog.NewHandler(deps.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request handled")
	}))
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	authHandler := handlers.NewAuthHandler(deps.Users, deps.Tokens)
	bookHandler := handlers.NewBookHandler(deps.Books)
	healthHandler := handlers.NewHealthHandler(deps.Store)

	r.Get("/", healthHandler.Banner)
	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(deps.Tokens.Middleware).Get("/me", authHandler.Me)
		})

		r.Route("/books", func(r chi.Router) {
			r.Use(deps.Tokens.Middleware)
			r.Get("/", bookHandler.GetAll)
			r.Post("/", bookHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", bookHandler.Update)
				r.Delete("/", bookHandler.Delete)
			})
		})
	})

	return r
}
