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

package identity

import (
	"context"
	"testing"

	"github.com/jotdeck/jotdeck/internal/audit"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a simple in-memory implementation of UserRepository
type MockUserRepository struct {
	users map[string]*User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *User) error {
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

// TestPurpose: Validates the user authentication flow for success and failure paths.
// Scope: Unit Test
// Security: Authentication mechanisms
// Expected: Successful login for correct credentials, ErrInvalidCredentials for wrong password or unknown email.
// Test Case ID: IDN-01
func TestIdentity_Service_Authenticate(t *testing.T) {
	repo := NewMockUserRepository()
	hasher := NewPasswordHasher(bcrypt.MinCost)
	s := NewService(repo, hasher, audit.NewSlogLogger())

	ctx := context.Background()
	email := "test@example.com"
	password := "password"

	user, err := s.CreateUser(ctx, email, password, RoleMember, "tenant-1")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	// Success
	authed, err := s.Authenticate(ctx, email, password)
	if err != nil {
		t.Fatalf("expected success, got err: %v", err)
	}
	if authed.ID != user.ID {
		t.Errorf("expected user ID %s, got %s", user.ID, authed.ID)
	}

	// Wrong password
	_, err = s.Authenticate(ctx, email, "WrongPassword")
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	// Unknown email: same error, so callers cannot probe for accounts
	_, err = s.Authenticate(ctx, "nobody@example.com", password)
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

// TestPurpose: Validates that creating a user with an email that exists anywhere in the system fails.
// Scope: Unit Test
// Security: Global unique constraint enforcement
// Expected: ErrUserAlreadyExists even when the second user targets a different tenant.
// Test Case ID: IDN-02
func TestIdentity_Service_CreateUser_Conflict(t *testing.T) {
	repo := NewMockUserRepository()
	s := NewService(repo, NewPasswordHasher(bcrypt.MinCost), audit.NewSlogLogger())

	ctx := context.Background()
	email := "conflict@example.com"

	if _, err := s.CreateUser(ctx, email, "password", RoleAdmin, "tenant-1"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// Email uniqueness is system-wide, not per tenant
	_, err := s.CreateUser(ctx, email, "password", RoleMember, "tenant-2")
	if err != ErrUserAlreadyExists {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

// TestPurpose: Validates role validation on user creation.
// Scope: Unit Test
// Security: Closed role enumeration
// Expected: ErrInvalidRole for any role outside admin|member.
// Test Case ID: IDN-03
func TestIdentity_Service_CreateUser_InvalidRole(t *testing.T) {
	repo := NewMockUserRepository()
	s := NewService(repo, NewPasswordHasher(bcrypt.MinCost), audit.NewSlogLogger())

	for _, role := range []string{"", "superadmin", "Admin", "owner"} {
		_, err := s.CreateUser(context.Background(), "x@example.com", "password", role, "tenant-1")
		if err != ErrInvalidRole {
			t.Errorf("role %q: expected ErrInvalidRole, got %v", role, err)
		}
	}
}

// TestPurpose: Validates that stored password hashes verify and plaintext is never stored.
// Scope: Unit Test
// Security: Credential storage
// Expected: Hash verifies against the original password and differs from it.
// Test Case ID: IDN-04
func TestIdentity_PasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "password" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !hasher.Verify("password", hash) {
		t.Error("expected hash to verify")
	}
	if hasher.Verify("wrong", hash) {
		t.Error("expected wrong password to fail verification")
	}
}
