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

import "context"

type contextKey string

const identityKey contextKey = "identity"

// Identity is the per-request authenticated identity attached by the
// auth middleware after token verification and liveness re-validation.
// Tenant context is derived EXCLUSIVELY from the token; it is never
// taken from headers, query parameters or request bodies.
type Identity struct {
	UserID     string
	Role       string
	TenantID   string
	TenantSlug string
	Email      string
}

// withIdentity returns a context carrying the authenticated identity.
func withIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// GetIdentity retrieves the authenticated identity from context.
func GetIdentity(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok
}
