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

package tenant

import (
	"context"
	"fmt"
	"time"

	"github.com/jotdeck/jotdeck/internal/audit"
	"github.com/jotdeck/jotdeck/internal/identity"
)

// Service provides tenant management business logic
type Service struct {
	repo        Repository
	users       *identity.Service
	auditLogger audit.Logger
}

// NewService creates a new tenant service
func NewService(repo Repository, users *identity.Service, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		users:       users,
		auditLogger: auditLogger,
	}
}

// Get retrieves a tenant by ID. Used by the transport layer to
// re-validate that a token's tenant still exists.
func (s *Service) Get(ctx context.Context, id string) (*Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug resolves a slug on behalf of a requester. Unknown slugs are
// ErrTenantNotFound; known slugs belonging to another tenant are
// ErrCrossTenant, so the requester learns nothing more than "not yours".
func (s *Service) GetBySlug(ctx context.Context, slug, requesterTenantID string) (*Tenant, error) {
	t, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if t.ID != requesterTenantID {
		return nil, ErrCrossTenant
	}
	return t, nil
}

// Upgrade flips the tenant's plan to pro. The operation is idempotent:
// upgrading an already-pro tenant succeeds and changes nothing. There is
// no downgrade.
func (s *Service) Upgrade(ctx context.Context, slug, requesterTenantID, actorID string) (*Tenant, error) {
	t, err := s.GetBySlug(ctx, slug, requesterTenantID)
	if err != nil {
		return nil, err
	}

	t.Plan = PlanPro
	t.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to upgrade tenant: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeTenantUpgraded,
		TenantID: t.ID,
		ActorID:  actorID,
		Resource: t.Slug,
	})

	return t, nil
}

// Invite creates a user under the target tenant with the requested role
// and the fixed default credential. Email uniqueness is checked across
// the whole system, not just within the tenant. No notification is sent.
func (s *Service) Invite(ctx context.Context, slug, email, role, requesterTenantID, actorID string) (*identity.User, error) {
	if email == "" || role == "" {
		return nil, ErrInviteFieldsRequired
	}
	if !identity.ValidRole(role) {
		return nil, identity.ErrInvalidRole
	}

	t, err := s.GetBySlug(ctx, slug, requesterTenantID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, email, DefaultInvitePassword, role, t.ID)
	if err != nil {
		return nil, err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeUserInvited,
		TenantID: t.ID,
		ActorID:  actorID,
		Resource: "user",
		Metadata: map[string]any{"email": user.Email, "role": user.Role},
	})

	return user, nil
}
