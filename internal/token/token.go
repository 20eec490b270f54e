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

// Package token issues and verifies the signed bearer tokens that carry a
// user's identity, role and tenant membership between requests.
//
// Verify checks signature and expiry only. It deliberately does NOT touch
// the database; re-validating that the referenced user and tenant still
// exist is the transport middleware's job ("liveness re-validation").
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails signature or
// expiry validation.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed payload. The wire names match the original API so
// existing clients keep working.
type Claims struct {
	UserID     string `json:"userId"`
	Role       string `json:"role"`
	TenantID   string `json:"tenantId"`
	TenantSlug string `json:"tenantSlug"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with a single process-wide HMAC
// secret. There is no key rotation; this is a known limitation carried
// over from the original design.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a new token service. ttl bounds token lifetime
// (default deployment: 168h).
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token embedding the user's identity, role and tenant.
func (s *Service) Issue(userID, role, tenantID, tenantSlug, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     userID,
		Role:       role,
		TenantID:   tenantID,
		TenantSlug: tenantSlug,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims. Any failure
// (bad signature, expired, malformed, wrong algorithm) is ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
