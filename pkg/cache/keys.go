package cache

import (
	"strings"

	"github.com/google/uuid"
)

const (
	tenantNamespace = "tenant"
	globalNamespace = "global"
	keySeparator    = ":"
)

// TenantKey builds a cache key scoped to one tenant:
// "tenant:<id>:<parts...>". Every call site storing tenant-specific data
// must build its key through here.
func TenantKey(tenantID uuid.UUID, parts ...string) string {
	elems := append([]string{tenantNamespace, tenantID.String()}, parts...)
	return strings.Join(elems, keySeparator)
}

// TenantPrefix returns "tenant:<id>:", the only sanctioned argument to
// RemoveByPrefix for flushing a tenant's entire cached state.
func TenantPrefix(tenantID uuid.UUID) string {
	return tenantNamespace + keySeparator + tenantID.String() + keySeparator
}

// GlobalKey builds a key for non-tenant data: "global:<parts...>". The
// namespace never begins with "tenant:", so global entries can never be
// caught by a tenant flush.
func GlobalKey(parts ...string) string {
	return strings.Join(append([]string{globalNamespace}, parts...), keySeparator)
}
