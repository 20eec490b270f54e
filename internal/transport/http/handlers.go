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
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jotdeck/jotdeck/internal/audit"
	"github.com/jotdeck/jotdeck/internal/identity"
	"github.com/jotdeck/jotdeck/internal/note"
	"github.com/jotdeck/jotdeck/internal/observability/metrics"
	"github.com/jotdeck/jotdeck/internal/tenant"
	"github.com/jotdeck/jotdeck/internal/token"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handler holds HTTP handlers and dependencies
type Handler struct {
	identityService *identity.Service
	tenantService   *tenant.Service
	noteService     *note.Service
	tokenService    *token.Service
	auditLogger     audit.Logger
	metrics         *metrics.Metrics
}

// NewHandler creates a new HTTP handler
func NewHandler(
	identityService *identity.Service,
	tenantService *tenant.Service,
	noteService *note.Service,
	tokenService *token.Service,
	auditLogger audit.Logger,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		identityService: identityService,
		tenantService:   tenantService,
		noteService:     noteService,
		tokenService:    tokenService,
		auditLogger:     auditLogger,
		metrics:         m,
	}
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/health", h.HealthCheck)

	// Auth routes
	r.Post("/auth/login", h.Login)

	// Tenant routes
	r.Route("/tenants", func(r chi.Router) {
		r.Use(h.Authenticator)

		r.Get("/{slug}", h.GetTenant)

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(identity.RoleAdmin))
			r.Post("/{slug}/upgrade", h.UpgradeTenant)
			r.Post("/{slug}/invite", h.InviteUser)
		})
	})

	// Note routes
	r.Route("/notes", func(r chi.Router) {
		r.Use(h.Authenticator)

		r.Post("/", h.CreateNote)
		r.Get("/", h.ListNotes)
		r.Get("/{noteID}", h.GetNote)
		r.Put("/{noteID}", h.UpdateNote)
		r.Delete("/{noteID}", h.DeleteNote)
	})

	return r
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
