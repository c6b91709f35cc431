package tenant

import (
	"errors"
	"log/slog"
	"net/http"
)

// ErrorHandler maps resolution and isolation failures to HTTP responses.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultPublicPaths are route prefixes allowed to run without a bound
// tenant: authentication (first login may predate knowing the tenant) and
// tenant discovery. Matching is prefix-based and case-sensitive.
var DefaultPublicPaths = []string{"/auth", "/tenants"}

// config holds middleware configuration shared by Middleware and Guard.
type config struct {
	sources      []Source
	publicPaths  []string
	errorHandler ErrorHandler
	logger       *slog.Logger
}

// Option configures the tenant middleware.
type Option func(*config)

// WithSources overrides the resolution chain.
func WithSources(sources ...Source) Option {
	return func(c *config) {
		if len(sources) > 0 {
			c.sources = sources
		}
	}
}

// WithPublicPaths overrides the prefixes of routes that may run tenant-less.
func WithPublicPaths(paths ...string) Option {
	return func(c *config) {
		c.publicPaths = paths
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithLogger sets the logger used for security-relevant events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		sources:      DefaultSources(),
		publicPaths:  DefaultPublicPaths,
		errorHandler: defaultErrorHandler,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrTenantMismatch):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNoTenantInContext):
		http.Error(w, "Tenant required", http.StatusNotFound)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
