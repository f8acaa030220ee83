package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jbweber/homelab/pokereview/internal/datastore"
	"github.com/jbweber/homelab/pokereview/internal/validation"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// API holds the datastore and the cross-cutting pieces every handler shares
type API struct {
	ds          *datastore.Datastore
	log         zerolog.Logger
	validator   *validation.Validator
	registry    *prometheus.Registry
	corsOrigins []string
}

// Option customises an API built by NewAPI
type Option func(*API)

// WithLogger sets the base logger for request logs
func WithLogger(log zerolog.Logger) Option {
	return func(a *API) { a.log = log }
}

// WithClock sets the clock that bounds birth dates
func WithClock(clock clockwork.Clock) Option {
	return func(a *API) { a.validator = validation.New(clock) }
}

// WithRegistry sets the Prometheus registry behind /metrics
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *API) { a.registry = reg }
}

// WithCORSOrigins sets the origins browsers may call the API from
func WithCORSOrigins(origins []string) Option {
	return func(a *API) { a.corsOrigins = origins }
}

// NewAPI creates a new API over the datastore
func NewAPI(ds *datastore.Datastore, opts ...Option) *API {
	a := &API{
		ds:          ds,
		log:         zerolog.Nop(),
		corsOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.validator == nil {
		a.validator = validation.New(nil)
	}
	if a.registry == nil {
		a.registry = prometheus.NewRegistry()
	}
	return a
}

// Router builds the chi router with middleware, operational endpoints and
// every API route.
func (a *API) Router() (chi.Router, error) {
	m, metricsHandler, err := registerMetrics(a.registry, a.ds.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	r := chi.NewRouter()
	r.Use(requestLogger(a.log))
	r.Use(m.withMetrics)
	r.Use(corsHandler(a.corsOrigins))
	r.Use(middleware.Recoverer)

	r.Get("/", a.rootHandler)
	r.Get("/healthz", a.healthHandler)
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	a.RegisterRoutes(r)
	return r, nil
}

// RegisterRoutes registers all API endpoints to the given chi router.
func (a *API) RegisterRoutes(r chi.Router) {
	ds := a.ds

	countries := NewCountries(ds.Countries, ds.Owners, a.validator)
	r.Route("/api/country", func(r chi.Router) {
		r.Get("/", countries.ListCountriesHandler)
		r.Post("/", countries.CreateCountryHandler)
		r.Get("/owner/{ownerId}", countries.GetCountryByOwnerHandler)
		r.Get("/{countryId}", countries.GetCountryHandler)
		r.Get("/{countryId}/owners", countries.GetCountryOwnersHandler)
		r.Put("/{countryId}", countries.UpdateCountryHandler)
		r.Delete("/{countryId}", countries.DeleteCountryHandler)
	})

	owners := NewOwners(ds.Owners, ds.Countries, ds.Pokemon, a.validator)
	r.Route("/api/owner", func(r chi.Router) {
		r.Get("/", owners.ListOwnersHandler)
		r.Post("/", owners.CreateOwnerHandler)
		r.Get("/pokemon/{pokeId}", owners.GetOwnersOfPokemonHandler)
		r.Get("/{ownerId}", owners.GetOwnerHandler)
		r.Get("/{ownerId}/pokemon", owners.GetPokemonByOwnerHandler)
		r.Put("/{ownerId}", owners.UpdateOwnerHandler)
		r.Delete("/{ownerId}", owners.DeleteOwnerHandler)
	})

	pokemon := NewPokemon(ds.Pokemon, ds.Reviews, ds.Owners, ds.Categories, a.validator)
	r.Route("/api/pokemon", func(r chi.Router) {
		r.Get("/", pokemon.ListPokemonHandler)
		r.Post("/", pokemon.CreatePokemonHandler)
		r.Get("/{pokeId}", pokemon.GetPokemonHandler)
		r.Get("/{pokeId}/rating", pokemon.GetPokemonRatingHandler)
		r.Put("/{pokeId}", pokemon.UpdatePokemonHandler)
		r.Delete("/{pokeId}", pokemon.DeletePokemonHandler)
	})

	categories := NewCategories(ds.Categories, a.validator)
	r.Route("/api/category", func(r chi.Router) {
		r.Get("/", categories.ListCategoriesHandler)
		r.Post("/", categories.CreateCategoryHandler)
		r.Get("/pokemon/{categoryId}", categories.GetPokemonByCategoryHandler)
		r.Get("/{categoryId}", categories.GetCategoryHandler)
		r.Put("/{categoryId}", categories.UpdateCategoryHandler)
		r.Delete("/{categoryId}", categories.DeleteCategoryHandler)
	})

	reviews := NewReviews(ds.Reviews, ds.Reviewers, ds.Pokemon, a.validator)
	r.Route("/api/review", func(r chi.Router) {
		r.Get("/", reviews.ListReviewsHandler)
		r.Post("/", reviews.CreateReviewHandler)
		r.Get("/pokemon/{pokeId}", reviews.GetReviewsOfPokemonHandler)
		r.Get("/{reviewId}", reviews.GetReviewHandler)
		r.Put("/{reviewId}", reviews.UpdateReviewHandler)
		r.Delete("/{reviewId}", reviews.DeleteReviewHandler)
	})

	reviewers := NewReviewers(ds.Reviewers, a.validator)
	r.Route("/api/reviewer", func(r chi.Router) {
		r.Get("/", reviewers.ListReviewersHandler)
		r.Post("/", reviewers.CreateReviewerHandler)
		r.Get("/{reviewerId}", reviewers.GetReviewerHandler)
		r.Get("/{reviewerId}/reviews", reviewers.GetReviewsByReviewerHandler)
		r.Put("/{reviewerId}", reviewers.UpdateReviewerHandler)
		r.Delete("/{reviewerId}", reviewers.DeleteReviewerHandler)
	})
}

// rootHandler handles GET /
func (a *API) rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := fmt.Fprintln(w, "Pokereview web service is running!"); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

// healthHandler handles GET /healthz by pinging the database
func (a *API) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.ds.Ping(ctx); err != nil {
		writeStatusErr(w, r, http.StatusServiceUnavailable, err, "Database unavailable")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
