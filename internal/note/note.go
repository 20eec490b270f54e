package note

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoteNotFound covers both true absence and cross-tenant existence;
	// callers must not be able to tell the two apart.
	ErrNoteNotFound = errors.New("note not found")

	ErrTitleRequired = errors.New("title required")

	// ErrQuotaExceeded is returned when a free-plan tenant already holds
	// the maximum number of notes.
	ErrQuotaExceeded = errors.New("note limit reached")
)

// Note represents a note owned by a tenant. CreatedBy is nil for notes
// created by the seed rather than a user.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	TenantID  string    `json:"tenantId"`
	CreatedBy *string   `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository defines the interface for note storage. Every read and
// write that names a note is constrained by tenant ID.
type Repository interface {
	Create(ctx context.Context, n *Note) error

	// ListByTenant returns the tenant's notes newest-created-first.
	ListByTenant(ctx context.Context, tenantID string) ([]*Note, error)

	// GetByID returns ErrNoteNotFound unless a note with this ID exists
	// within the given tenant.
	GetByID(ctx context.Context, tenantID, id string) (*Note, error)

	Update(ctx context.Context, n *Note) error

	// Delete removes the note; ErrNoteNotFound if it is absent from the
	// tenant (deletion is therefore not silently idempotent).
	Delete(ctx context.Context, tenantID, id string) error

	CountByTenant(ctx context.Context, tenantID string) (int, error)
}
