package tenant

import (
	"context"
	"errors"
)

var (
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrCrossTenant is returned when a slug resolves to a tenant other
	// than the requester's. Existing foreign slugs are rejected with this
	// error, never reported as absent.
	ErrCrossTenant = errors.New("cross-tenant access denied")

	ErrInviteFieldsRequired = errors.New("email and role required")
)

// Repository defines the interface for tenant storage
type Repository interface {
	Create(ctx context.Context, tenant *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	Update(ctx context.Context, tenant *Tenant) error
}
