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
	"log/slog"
	"net/http"

	"github.com/jotdeck/jotdeck/internal/observability/logger"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user and returns a signed bearer token. The
// email lookup is global; the matched user's tenant scopes everything
// the token can reach.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing email or password")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing email or password")
		return
	}

	user, err := h.identityService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.LoginFailure.Add(r.Context(), 1)
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// The slug claim requires the owning tenant; a user whose tenant is
	// gone cannot log in.
	t, err := h.tenantService.Get(r.Context(), user.TenantID)
	if err != nil {
		slog.ErrorContext(r.Context(), "login: tenant lookup failed",
			logger.UserID(user.ID),
			logger.TenantID(user.TenantID),
			logger.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	signed, err := h.tokenService.Issue(user.ID, user.Role, t.ID, t.Slug, user.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.metrics.LoginSuccess.Add(r.Context(), 1)

	respondJSON(w, http.StatusOK, map[string]string{
		"token": signed,
	})
}
