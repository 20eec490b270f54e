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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jotdeck/jotdeck/internal/audit"
	"github.com/jotdeck/jotdeck/internal/identity"
	"github.com/jotdeck/jotdeck/internal/note"
	"github.com/jotdeck/jotdeck/internal/observability/metrics"
	"github.com/jotdeck/jotdeck/internal/tenant"
	"github.com/jotdeck/jotdeck/internal/token"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// In-memory repositories backing full-router tests.

type memUserRepo struct {
	users map[string]*identity.User
}

func (m *memUserRepo) Create(ctx context.Context, u *identity.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*identity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, identity.ErrUserNotFound
}

type memTenantRepo struct {
	tenants map[string]*tenant.Tenant
}

func (m *memTenantRepo) Create(ctx context.Context, t *tenant.Tenant) error {
	m.tenants[t.ID] = t
	return nil
}

func (m *memTenantRepo) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	t, ok := m.tenants[id]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return t, nil
}

func (m *memTenantRepo) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	for _, t := range m.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func (m *memTenantRepo) Update(ctx context.Context, t *tenant.Tenant) error {
	m.tenants[t.ID] = t
	return nil
}

type memNoteRepo struct {
	notes map[string]*note.Note
}

func (m *memNoteRepo) Create(ctx context.Context, n *note.Note) error {
	m.notes[n.ID] = n
	return nil
}

func (m *memNoteRepo) ListByTenant(ctx context.Context, tenantID string) ([]*note.Note, error) {
	var out []*note.Note
	for _, n := range m.notes {
		if n.TenantID == tenantID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memNoteRepo) GetByID(ctx context.Context, tenantID, id string) (*note.Note, error) {
	n, ok := m.notes[id]
	if !ok || n.TenantID != tenantID {
		return nil, note.ErrNoteNotFound
	}
	return n, nil
}

func (m *memNoteRepo) Update(ctx context.Context, n *note.Note) error {
	if _, ok := m.notes[n.ID]; !ok {
		return note.ErrNoteNotFound
	}
	m.notes[n.ID] = n
	return nil
}

func (m *memNoteRepo) Delete(ctx context.Context, tenantID, id string) error {
	n, ok := m.notes[id]
	if !ok || n.TenantID != tenantID {
		return note.ErrNoteNotFound
	}
	delete(m.notes, id)
	return nil
}

func (m *memNoteRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	count := 0
	for _, n := range m.notes {
		if n.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

// testEnv wires real services over in-memory repositories behind the
// real router, with the seed fixture loaded.
type testEnv struct {
	router  *chi.Mux
	users   *memUserRepo
	tenants *memTenantRepo
	notes   *memNoteRepo
	tokens  *token.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := &memUserRepo{users: make(map[string]*identity.User)}
	tenants := &memTenantRepo{tenants: make(map[string]*tenant.Tenant)}
	notes := &memNoteRepo{notes: make(map[string]*note.Note)}

	auditLogger := audit.NewSlogLogger()
	hasher := identity.NewPasswordHasher(bcrypt.MinCost)

	identityService := identity.NewService(users, hasher, auditLogger)
	tenantService := tenant.NewService(tenants, identityService, auditLogger)
	noteService := note.NewService(notes, tenants, auditLogger)
	tokenService := token.NewService("test-secret", time.Hour)

	m, err := metrics.New(context.Background(), metrics.Config{Enabled: false}, "test")
	require.NoError(t, err)

	h := NewHandler(identityService, tenantService, noteService, tokenService, auditLogger, m)
	rl := NewRateLimiter(1000, 1000)

	env := &testEnv{
		router:  NewRouter(h, rl),
		users:   users,
		tenants: tenants,
		notes:   notes,
		tokens:  tokenService,
	}

	ctx := context.Background()
	tenants.Create(ctx, &tenant.Tenant{ID: "t-acme", Name: "Acme", Slug: "acme", Plan: tenant.PlanFree})
	tenants.Create(ctx, &tenant.Tenant{ID: "t-globex", Name: "Globex", Slug: "globex", Plan: tenant.PlanFree})

	for _, u := range []struct{ email, role, tenantID string }{
		{"admin@acme.test", identity.RoleAdmin, "t-acme"},
		{"user@acme.test", identity.RoleMember, "t-acme"},
		{"admin@globex.test", identity.RoleAdmin, "t-globex"},
		{"user@globex.test", identity.RoleMember, "t-globex"},
	} {
		_, err := identityService.CreateUser(ctx, u.email, "password", u.role, u.tenantID)
		require.NoError(t, err)
	}

	return env
}

// do performs a request against the router and decodes the JSON body.
func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec.Code, decoded
}

// login obtains a token through the real endpoint.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()

	status, body := e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": "password",
	})
	require.Equal(t, http.StatusOK, status)
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}
