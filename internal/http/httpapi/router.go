package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"promptfeed/internal/http/handlers"
	"promptfeed/internal/middleware"
)

// Options carries the cross-cutting pieces the router wires around the handlers.
type Options struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	CountryLookup  middleware.CountryLookup
	RateLimiter    *middleware.RateLimiter
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID(opts.Logger),
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Geo(opts.CountryLookup),
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
	)
	if app.Metrics != nil {
		r.Use(app.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", app.Metrics.Handler())
	}

	r.Get("/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Handler)
		}
		r.Use(middleware.OptionalAuth(app.Auth))

		r.Get("/feed", app.ListFeed)
		r.Put("/feed", app.UpdateHearts)
		r.Post("/publish", app.Publish)
		r.Get("/posts", app.ListPosts)
		r.Post("/posts", app.SavePost)
		r.Post("/generate", app.Generate)
		r.Post("/auth/signin", app.SignIn)
		r.Get("/auth/session", app.Session)
	})

	return r
}
