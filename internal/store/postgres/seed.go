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

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jotdeck/jotdeck/internal/id"
	"github.com/jotdeck/jotdeck/internal/identity"
	"github.com/jotdeck/jotdeck/internal/tenant"
)

// Seed wipes all data and recreates the development fixture: tenants
// "acme" and "globex" on the free plan, with an admin and a member each.
// passwordHash is the pre-computed hash of the shared dev password.
func Seed(ctx context.Context, db *DB, passwordHash string) error {
	_, err := db.pool.Exec(ctx, `TRUNCATE notes, users, tenants`)
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	tenants := NewTenantRepository(db)
	users := NewUserRepository(db)
	now := time.Now()

	acme := &tenant.Tenant{
		ID: id.NewUUIDv7(), Name: "Acme", Slug: "acme",
		Plan: tenant.PlanFree, CreatedAt: now, UpdatedAt: now,
	}
	globex := &tenant.Tenant{
		ID: id.NewUUIDv7(), Name: "Globex", Slug: "globex",
		Plan: tenant.PlanFree, CreatedAt: now, UpdatedAt: now,
	}
	for _, t := range []*tenant.Tenant{acme, globex} {
		if err := tenants.Create(ctx, t); err != nil {
			return err
		}
	}

	fixture := []struct {
		email    string
		role     string
		tenantID string
	}{
		{"admin@acme.test", identity.RoleAdmin, acme.ID},
		{"user@acme.test", identity.RoleMember, acme.ID},
		{"admin@globex.test", identity.RoleAdmin, globex.ID},
		{"user@globex.test", identity.RoleMember, globex.ID},
	}
	for _, f := range fixture {
		u := &identity.User{
			ID:           id.NewUUIDv7(),
			Email:        f.email,
			PasswordHash: passwordHash,
			Role:         f.role,
			TenantID:     f.tenantID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, u); err != nil {
			return err
		}
	}

	return nil
}
