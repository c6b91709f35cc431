package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant matches any resolution source.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantMismatch is returned when an authenticated identity's tenant
	// claim disagrees with the tenant resolved for the request.
	ErrTenantMismatch = errors.New("identity does not belong to resolved tenant")

	// ErrNoTenantInContext is returned when a tenant is required but none is bound.
	ErrNoTenantInContext = errors.New("no tenant in context")

	// ErrInvalidSubdomain is returned when a subdomain fails syntactic validation.
	ErrInvalidSubdomain = errors.New("invalid tenant subdomain")
)
