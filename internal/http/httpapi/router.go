package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"studio/internal/http/handlers"
	"studio/internal/infra/geoip"
	"studio/internal/middleware"
)

// Options carries the cross-cutting collaborators the router wires in front of
// the handlers. Verifier and GeoIP may be nil; a nil Verifier leaves the
// protected routes guarded by a middleware that rejects everything.
type Options struct {
	Verifier        middleware.TokenVerifier
	GeoIP           geoip.CountryResolver
	AllowedOrigins  []string
	DefaultLocale   string
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.Locale(opts.GeoIP, opts.DefaultLocale),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/signup", app.SignUp)
		r.Post("/signin", app.SignIn)
		r.Post("/google", app.SignInWithGoogle)
		r.Post("/signout", app.SignOut)
		r.Post("/password-reset", app.ResetPassword)
	})

	r.Route("/v1/plans", func(r chi.Router) {
		r.Get("/", app.Plans)
		r.Get("/{id}", app.Plan)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(verifierOrDeny(opts.Verifier)))

		r.Route("/v1/me", func(r chi.Router) {
			r.Get("/", app.Me)
			r.Patch("/", app.UpdateMe)
			r.Post("/refresh", app.RefreshMe)
		})

		r.Route("/v1/projects", func(r chi.Router) {
			r.Get("/", app.ListProjects)
			r.Post("/", app.CreateProject)
			r.Get("/{id}", app.GetProject)
			r.Patch("/{id}", app.UpdateProject)
			r.Delete("/{id}", app.DeleteProject)
		})

		r.Route("/v1/assets", func(r chi.Router) {
			r.Get("/", app.ListAssets)
			r.Post("/", app.CreateAsset)
			r.Put("/selection", app.ReplaceSelection)
			r.Delete("/selection", app.ClearSelection)
			r.Get("/{id}", app.GetAsset)
			r.Patch("/{id}", app.UpdateAsset)
			r.Delete("/{id}", app.DeleteAsset)
			r.Post("/{id}/select", app.SelectAsset)
			r.Delete("/{id}/select", app.DeselectAsset)
		})

		r.Route("/v1/jobs", func(r chi.Router) {
			r.Get("/", app.ListJobs)
			r.Post("/", app.CreateJob)
			r.Get("/{id}", app.GetJob)
			r.Patch("/{id}", app.UpdateJob)
			r.Delete("/{id}", app.DeleteJob)
		})

		r.Route("/v1/ui", func(r chi.Router) {
			r.Get("/", app.UIState)
			r.Put("/view", app.SetViewMode)
			r.Patch("/filters", app.MergeFilters)
			r.Delete("/error", app.ClearUIError)
		})
	})

	return r
}

var errNoVerifier = errors.New("no token verifier configured")

func verifierOrDeny(v middleware.TokenVerifier) middleware.TokenVerifier {
	if v != nil {
		return v
	}
	return middleware.VerifierFunc(func(_ context.Context, _ string) (string, error) {
		return "", errNoVerifier
	})
}
