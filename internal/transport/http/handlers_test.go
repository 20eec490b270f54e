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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPurpose: Validates the health endpoint.
// Scope: Integration Test (router level)
// Security: N/A
// Expected: 200 with status ok, no authentication required.
// Test Case ID: API-01
func TestAPI_HealthCheck(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

// TestPurpose: Validates login input checks and credential verification over the wire.
// Scope: Integration Test (router level)
// Security: Authentication
// Expected: Missing fields are 400; wrong password and unknown email are both 401 "Invalid credentials"; success returns a token.
// Test Case ID: API-02
func TestAPI_Login(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "admin@acme.test"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing email or password", body["error"])

	status, body = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "admin@acme.test", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body["error"])

	status, body = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "nobody@acme.test", "password": "password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body["error"])

	status, body = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "admin@acme.test", "password": "password",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
}

// TestPurpose: Validates tenant slug resolution across tenant boundaries.
// Scope: Integration Test (router level)
// Security: Tenant isolation — existing foreign slugs must be 403, never 404
// Expected: Own slug 200; foreign slug 403 "Forbidden"; unknown slug 404 "Tenant not found".
// Test Case ID: API-03
func TestAPI_GetTenant(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t, "admin@acme.test")

	status, body := env.do(t, http.MethodGet, "/tenants/acme", tok, nil)
	require.Equal(t, http.StatusOK, status)
	tenantBody, ok := body["tenant"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "acme", tenantBody["slug"])
	assert.Equal(t, "free", tenantBody["plan"])

	// Globex exists; acme's admin still gets a plain Forbidden, not 404
	status, body = env.do(t, http.MethodGet, "/tenants/globex", tok, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Forbidden", body["error"])

	status, body = env.do(t, http.MethodGet, "/tenants/initech", tok, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Tenant not found", body["error"])
}

// TestPurpose: Validates the invitation endpoint end to end, including the fixed default credential.
// Scope: Integration Test (router level)
// Security: Input validation, role gate, global email uniqueness
// Expected: Bad input is 400; a successful invite is 201 and the invitee can immediately log in with the default password.
// Test Case ID: API-04
func TestAPI_InviteUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, "admin@acme.test")

	status, body := env.do(t, http.MethodPost, "/tenants/acme/invite", admin, map[string]string{"email": "x@acme.test"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "email and role required", body["error"])

	status, body = env.do(t, http.MethodPost, "/tenants/acme/invite", admin, map[string]string{
		"email": "x@acme.test", "role": "owner",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid role", body["error"])

	status, body = env.do(t, http.MethodPost, "/tenants/acme/invite", admin, map[string]string{
		"email": "admin@globex.test", "role": "member",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists", body["error"])

	status, body = env.do(t, http.MethodPost, "/tenants/globex/invite", admin, map[string]string{
		"email": "x@acme.test", "role": "member",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Forbidden: cannot invite to other tenant", body["error"])

	status, body = env.do(t, http.MethodPost, "/tenants/acme/invite", admin, map[string]string{
		"email": "x@acme.test", "role": "member",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	userBody, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "x@acme.test", userBody["email"])
	assert.Equal(t, "member", userBody["role"])

	// Invitee logs in with the default credential
	env.login(t, "x@acme.test")
}

// TestPurpose: Validates the quota-upgrade-retry journey across login, notes and upgrade endpoints.
// Scope: Integration Test (router level)
// Security: Plan entitlement enforcement
// Expected: The fourth note on a free tenant is 403 mentioning an upgrade; after the admin upgrades, the retry succeeds.
// Test Case ID: API-05
func TestAPI_NoteQuota_UpgradeJourney(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, "admin@acme.test")

	for _, title := range []string{"first", "second", "third"} {
		status, _ := env.do(t, http.MethodPost, "/notes/", admin, map[string]string{"title": title})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := env.do(t, http.MethodPost, "/notes/", admin, map[string]string{"title": "fourth"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, body["error"], "Upgrade")

	status, body = env.do(t, http.MethodPost, "/tenants/acme/upgrade", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	tenantBody, ok := body["tenant"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pro", tenantBody["plan"])

	status, _ = env.do(t, http.MethodPost, "/notes/", admin, map[string]string{"title": "fourth"})
	assert.Equal(t, http.StatusCreated, status)

	// The other tenant's quota is untouched
	globex := env.login(t, "user@globex.test")
	status, _ = env.do(t, http.MethodPost, "/notes/", globex, map[string]string{"title": "globex note"})
	assert.Equal(t, http.StatusCreated, status)
}

// TestPurpose: Validates note CRUD over the wire, including tenant scoping of lookups.
// Scope: Integration Test (router level)
// Security: Tenant isolation — foreign notes are indistinguishable from absent ones
// Expected: Create/list/get/update/delete behave per contract; another tenant's note ID is 404.
// Test Case ID: API-06
func TestAPI_NoteCRUD(t *testing.T) {
	env := newTestEnv(t)
	acme := env.login(t, "user@acme.test")
	globex := env.login(t, "user@globex.test")

	status, body := env.do(t, http.MethodPost, "/notes/", acme, map[string]string{"title": ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "title required", body["error"])

	status, body = env.do(t, http.MethodPost, "/notes/", acme, map[string]string{
		"title": "meeting notes", "content": "agenda",
	})
	require.Equal(t, http.StatusCreated, status)
	noteBody, ok := body["note"].(map[string]any)
	require.True(t, ok)
	noteID, _ := noteBody["id"].(string)
	require.NotEmpty(t, noteID)
	assert.Equal(t, "meeting notes", noteBody["title"])

	status, body = env.do(t, http.MethodGet, "/notes/"+noteID, acme, nil)
	assert.Equal(t, http.StatusOK, status)

	// Foreign tenant sees 404, not 403: existence is not disclosed
	status, body = env.do(t, http.MethodGet, "/notes/"+noteID, globex, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Note not found", body["error"])

	status, body = env.do(t, http.MethodPut, "/notes/"+noteID, acme, map[string]string{"content": "updated agenda"})
	require.Equal(t, http.StatusOK, status)
	noteBody, ok = body["note"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "meeting notes", noteBody["title"])
	assert.Equal(t, "updated agenda", noteBody["content"])

	status, body = env.do(t, http.MethodGet, "/notes/", acme, nil)
	require.Equal(t, http.StatusOK, status)
	notes, ok := body["notes"].([]any)
	require.True(t, ok)
	assert.Len(t, notes, 1)

	status, body = env.do(t, http.MethodDelete, "/notes/"+noteID, acme, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = env.do(t, http.MethodDelete, "/notes/"+noteID, acme, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Note not found", body["error"])
}

// TestPurpose: Validates newest-first ordering of the note list.
// Scope: Integration Test (router level)
// Security: N/A
// Expected: GET /notes returns notes in reverse creation order.
// Test Case ID: API-07
func TestAPI_ListNotes_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t, "user@acme.test")

	for _, title := range []string{"oldest", "middle", "newest"} {
		status, _ := env.do(t, http.MethodPost, "/notes/", tok, map[string]string{"title": title})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := env.do(t, http.MethodGet, "/notes/", tok, nil)
	require.Equal(t, http.StatusOK, status)
	notes, ok := body["notes"].([]any)
	require.True(t, ok)
	require.Len(t, notes, 3)

	first, ok := notes[0].(map[string]any)
	require.True(t, ok)
	last, ok := notes[2].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "newest", first["title"])
	assert.Equal(t, "oldest", last["title"])
}
