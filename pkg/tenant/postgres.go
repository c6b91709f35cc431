package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the production Store backed by a pgx connection pool.
// Tenants are soft-deleted; every lookup filters on active AND not deleted,
// which is also the scope within which subdomain uniqueness holds.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const tenantColumns = `id, subdomain, name, active, created_at`

func (s *PostgresStore) ByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1 AND active AND deleted_at IS NULL`, id)
	return scanTenant(row)
}

func (s *PostgresStore) BySubdomain(ctx context.Context, subdomain string) (*Tenant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE subdomain = $1 AND active AND deleted_at IS NULL`, subdomain)
	return scanTenant(row)
}

// AnyActive returns the oldest active tenant so the development default is
// stable across requests.
func (s *PostgresStore) AnyActive(ctx context.Context) (*Tenant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE active AND deleted_at IS NULL ORDER BY created_at LIMIT 1`)
	return scanTenant(row)
}

// ListActive returns all active tenants ordered by creation time. Serves the
// tenant discovery endpoint.
func (s *PostgresStore) ListActive(ctx context.Context) ([]Tenant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE active AND deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []Tenant
	for rows.Next() {
		var t Tenant
		if err := rows.Scan(&t.ID, &t.Subdomain, &t.Name, &t.Active, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// Create inserts a new active tenant. The partial unique index on
// (subdomain) WHERE active AND deleted_at IS NULL enforces uniqueness among
// live tenants only.
func (s *PostgresStore) Create(ctx context.Context, t *Tenant) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tenants (id, subdomain, name, active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Subdomain, t.Name, t.Active, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create tenant: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a tenant. Subsequent lookups will not match it and
// its subdomain becomes available for reuse.
func (s *PostgresStore) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants SET active = false, deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("deactivate tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

func scanTenant(row pgx.Row) (*Tenant, error) {
	var t Tenant
	err := row.Scan(&t.ID, &t.Subdomain, &t.Name, &t.Active, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("scan tenant: %w", err)
	}
	return &t, nil
}
