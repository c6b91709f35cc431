package tenant

import (
	"errors"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/gatherhq/eventkit/pkg/auth"
)

// Header names recognized by the resolution chain. The ID header wins over
// the subdomain header; both are explicit overrides for API clients and
// tests, while host-derived subdomains serve browser traffic.
const (
	HeaderTenantID        = "X-Tenant-ID"
	HeaderTenantSubdomain = "X-Tenant"
)

// MaxSubdomainLength keeps subdomains DNS-compatible and bounds lookups
// driven by attacker-controlled headers.
const MaxSubdomainLength = 63

// subdomainPattern matches DNS-safe labels: alphanumeric start, hyphens
// allowed inside, no dots. Candidates are lowercased before matching.
var subdomainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Source attempts one resolution strategy against the request. It returns
// (nil, nil) when the strategy does not apply or matches no tenant, so the
// chain can fall through to the next source. An error is returned only for
// store failures, never for a plain miss.
type Source func(r *http.Request, store Store) (*Tenant, error)

// DefaultSources returns the production resolution order: explicit ID
// header, explicit subdomain header, development default on loopback hosts,
// then host-derived subdomain.
func DefaultSources() []Source {
	return []Source{
		HeaderIDSource(HeaderTenantID),
		HeaderSubdomainSource(HeaderTenantSubdomain),
		DevDefaultSource(),
		HostSubdomainSource(),
	}
}

// Resolve runs the sources in order and returns the first tenant found.
// A nil tenant with a nil error means no source matched.
func Resolve(r *http.Request, store Store, sources ...Source) (*Tenant, error) {
	for _, source := range sources {
		t, err := source(r, store)
		if err != nil {
			return nil, err
		}
		if t != nil {
			return t, nil
		}
	}
	return nil, nil
}

// HeaderIDSource resolves the tenant from an ID header. Values that are not
// syntactically valid UUIDs are skipped rather than rejected, so a garbled
// header falls through to the remaining sources.
func HeaderIDSource(header string) Source {
	if header == "" {
		header = HeaderTenantID
	}
	return func(r *http.Request, store Store) (*Tenant, error) {
		raw := strings.TrimSpace(r.Header.Get(header))
		if raw == "" {
			return nil, nil
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil
		}
		t, err := store.ByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrTenantNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return t, nil
	}
}

// HeaderSubdomainSource resolves the tenant from a subdomain header.
func HeaderSubdomainSource(header string) Source {
	if header == "" {
		header = HeaderTenantSubdomain
	}
	return func(r *http.Request, store Store) (*Tenant, error) {
		candidate := strings.ToLower(strings.TrimSpace(r.Header.Get(header)))
		if !isValidSubdomain(candidate) {
			return nil, nil
		}
		t, err := store.BySubdomain(r.Context(), candidate)
		if err != nil {
			if errors.Is(err, ErrTenantNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return t, nil
	}
}

// DevDefaultSource resolves any active tenant when the request targets a
// loopback host. Local development has no subdomain to derive a tenant
// from, so the first active tenant stands in.
func DevDefaultSource() Source {
	return func(r *http.Request, store Store) (*Tenant, error) {
		if !isLoopbackHost(hostWithoutPort(r.Host)) {
			return nil, nil
		}
		t, err := store.AnyActive(r.Context())
		if err != nil {
			if errors.Is(err, ErrTenantNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return t, nil
	}
}

// HostSubdomainSource derives a subdomain candidate from the request host:
// the first dot-separated label, required at least three labels total so the
// bare domain is never treated as a tenant. The candidate is not screened
// against reserved names here; registration is where reserved subdomains
// are rejected.
func HostSubdomainSource() Source {
	return func(r *http.Request, store Store) (*Tenant, error) {
		host := hostWithoutPort(r.Host)
		if isLoopbackHost(host) {
			return nil, nil
		}
		parts := strings.Split(host, ".")
		if len(parts) < 3 {
			return nil, nil
		}
		candidate := strings.ToLower(parts[0])
		if !isValidSubdomain(candidate) {
			return nil, nil
		}
		t, err := store.BySubdomain(r.Context(), candidate)
		if err != nil {
			if errors.Is(err, ErrTenantNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return t, nil
	}
}

// IdentityClaimSource resolves the tenant named by the authenticated
// identity's tenant claim. It is deliberately absent from DefaultSources:
// the claim is verification material for the guard, not a selection signal.
// Deployments that cannot derive tenancy from headers or the host may append
// this source as a last resort, after every other source.
func IdentityClaimSource() Source {
	return func(r *http.Request, store Store) (*Tenant, error) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok || identity.TenantID == uuid.Nil {
			return nil, nil
		}
		t, err := store.ByID(r.Context(), identity.TenantID)
		if err != nil {
			if errors.Is(err, ErrTenantNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return t, nil
	}
}

// ValidateSubdomain checks that s is a DNS-safe lowercase label. It is used
// on resolution candidates and at tenant registration time.
func ValidateSubdomain(s string) error {
	if !isValidSubdomain(s) {
		return ErrInvalidSubdomain
	}
	return nil
}

func isValidSubdomain(s string) bool {
	if s == "" || len(s) > MaxSubdomainLength {
		return false
	}
	return subdomainPattern.MatchString(s)
}

func hostWithoutPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return strings.Trim(host, "[]")
}

func isLoopbackHost(host string) bool {
	host = strings.ToLower(host)
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}
