// Copyright 2026 The Jotdeck Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package note

import (
	"context"
	"fmt"
	"time"

	"github.com/jotdeck/jotdeck/internal/audit"
	"github.com/jotdeck/jotdeck/internal/id"
	"github.com/jotdeck/jotdeck/internal/tenant"
)

// FreePlanNoteLimit is the maximum number of notes a free-plan tenant
// may hold.
const FreePlanNoteLimit = 3

// Service provides note business logic. Tenant membership has no
// sub-structure here: any member or admin of a tenant may edit or delete
// any note of that tenant.
type Service struct {
	repo        Repository
	tenants     tenant.Repository
	auditLogger audit.Logger
}

// NewService creates a new note service
func NewService(repo Repository, tenants tenant.Repository, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		tenants:     tenants,
		auditLogger: auditLogger,
	}
}

// Create creates a note for the user's tenant, enforcing the free-plan
// quota. The count-then-insert sequence is not transactional: two
// concurrent creates at the boundary may transiently admit one note past
// the limit. That race is documented and accepted, not closed.
func (s *Service) Create(ctx context.Context, title, content, tenantID, userID string) (*Note, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	// Defensive: the auth middleware already validated the tenant, but a
	// delete between then and now must not panic the handler.
	t, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, tenant.ErrTenantNotFound
	}

	if t.Plan == tenant.PlanFree {
		count, err := s.repo.CountByTenant(ctx, tenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to count notes: %w", err)
		}
		if count >= FreePlanNoteLimit {
			return nil, ErrQuotaExceeded
		}
	}

	now := time.Now()
	n := &Note{
		ID:        id.NewUUIDv7(),
		Title:     title,
		Content:   content,
		TenantID:  tenantID,
		CreatedBy: &userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeNoteCreated,
		TenantID: tenantID,
		ActorID:  userID,
		Resource: n.ID,
	})

	return n, nil
}

// List returns all notes of the tenant, newest-created-first. The result
// is unbounded; pagination is a known scaling limitation, not a defect.
func (s *Service) List(ctx context.Context, tenantID string) ([]*Note, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

// Get returns the note if it exists within the tenant.
func (s *Service) Get(ctx context.Context, tenantID, noteID string) (*Note, error) {
	return s.repo.GetByID(ctx, tenantID, noteID)
}

// Update overwrites only the supplied fields. A nil field is "leave
// unchanged"; a pointer to the empty string is an explicit overwrite.
func (s *Service) Update(ctx context.Context, tenantID, noteID string, title, content *string, actorID string) (*Note, error) {
	n, err := s.repo.GetByID(ctx, tenantID, noteID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		n.Title = *title
	}
	if content != nil {
		n.Content = *content
	}
	n.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeNoteUpdated,
		TenantID: tenantID,
		ActorID:  actorID,
		Resource: n.ID,
	})

	return n, nil
}

// Delete removes the note from the tenant. A second delete of the same
// ID reports ErrNoteNotFound rather than silently succeeding.
func (s *Service) Delete(ctx context.Context, tenantID, noteID, actorID string) error {
	if err := s.repo.Delete(ctx, tenantID, noteID); err != nil {
		return err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeNoteDeleted,
		TenantID: tenantID,
		ActorID:  actorID,
		Resource: noteID,
	})

	return nil
}
