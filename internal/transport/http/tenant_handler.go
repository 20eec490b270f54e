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

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jotdeck/jotdeck/internal/identity"
	"github.com/jotdeck/jotdeck/internal/tenant"
)

// GetTenant returns the tenant identified by slug. A slug that exists
// but belongs to someone else is 403, never 404: the requester already
// proved the slug exists by naming it, so only ownership is at stake.
func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	ident, _ := GetIdentity(r.Context())
	slug := chi.URLParam(r, "slug")

	t, err := h.tenantService.GetBySlug(r.Context(), slug, ident.TenantID)
	if err != nil {
		switch {
		case errors.Is(err, tenant.ErrTenantNotFound):
			respondError(w, http.StatusNotFound, "Tenant not found")
		case errors.Is(err, tenant.ErrCrossTenant):
			respondError(w, http.StatusForbidden, "Forbidden")
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"tenant": t,
	})
}

// UpgradeTenant flips the tenant's plan to pro. Idempotent: upgrading an
// already-pro tenant succeeds.
func (h *Handler) UpgradeTenant(w http.ResponseWriter, r *http.Request) {
	ident, _ := GetIdentity(r.Context())
	slug := chi.URLParam(r, "slug")

	t, err := h.tenantService.Upgrade(r.Context(), slug, ident.TenantID, ident.UserID)
	if err != nil {
		switch {
		case errors.Is(err, tenant.ErrTenantNotFound):
			respondError(w, http.StatusNotFound, "Tenant not found")
		case errors.Is(err, tenant.ErrCrossTenant):
			respondError(w, http.StatusForbidden, "Forbidden: cannot upgrade other tenant")
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.metrics.TenantUpgrades.Add(r.Context(), 1)

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"tenant":  t,
	})
}

// InviteRequest represents an invitation
type InviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// InviteUser creates a user under the tenant with the fixed default
// credential. No email is sent; the inviter hands over the password out
// of band.
func (h *Handler) InviteUser(w http.ResponseWriter, r *http.Request) {
	ident, _ := GetIdentity(r.Context())
	slug := chi.URLParam(r, "slug")

	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "email and role required")
		return
	}

	user, err := h.tenantService.Invite(r.Context(), slug, req.Email, req.Role, ident.TenantID, ident.UserID)
	if err != nil {
		switch {
		case errors.Is(err, tenant.ErrInviteFieldsRequired):
			respondError(w, http.StatusBadRequest, "email and role required")
		case errors.Is(err, identity.ErrInvalidRole):
			respondError(w, http.StatusBadRequest, "invalid role")
		case errors.Is(err, tenant.ErrTenantNotFound):
			respondError(w, http.StatusNotFound, "Tenant not found")
		case errors.Is(err, tenant.ErrCrossTenant):
			respondError(w, http.StatusForbidden, "Forbidden: cannot invite to other tenant")
		case errors.Is(err, identity.ErrUserAlreadyExists):
			respondError(w, http.StatusBadRequest, "User already exists")
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.metrics.UsersInvited.Add(r.Context(), 1)

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user": map[string]string{
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
