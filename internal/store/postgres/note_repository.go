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
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jotdeck/jotdeck/internal/note"
)

// NoteRepository implements note.Repository. Every statement that names
// a note carries a tenant_id predicate; tenant isolation holds even if a
// caller passes an ID leaked from another tenant.
type NoteRepository struct {
	db *DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create creates a new note
func (r *NoteRepository) Create(ctx context.Context, n *note.Note) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO notes (id, title, content, tenant_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, n.ID, n.Title, n.Content, n.TenantID, n.CreatedBy, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// ListByTenant returns the tenant's notes, newest-created-first
func (r *NoteRepository) ListByTenant(ctx context.Context, tenantID string) ([]*note.Note, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, title, content, tenant_id, created_by, created_at, updated_at
		FROM notes
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := []*note.Note{}
	for rows.Next() {
		var n note.Note
		if err := rows.Scan(
			&n.ID, &n.Title, &n.Content, &n.TenantID, &n.CreatedBy,
			&n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}

	return notes, nil
}

// GetByID retrieves a note by ID within a tenant
func (r *NoteRepository) GetByID(ctx context.Context, tenantID, id string) (*note.Note, error) {
	var n note.Note
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, title, content, tenant_id, created_by, created_at, updated_at
		FROM notes
		WHERE id = $1 AND tenant_id = $2
	`, id, tenantID).Scan(
		&n.ID, &n.Title, &n.Content, &n.TenantID, &n.CreatedBy,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, note.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &n, nil
}

// Update updates a note's title and content
func (r *NoteRepository) Update(ctx context.Context, n *note.Note) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE notes SET title = $3, content = $4, updated_at = $5
		WHERE id = $1 AND tenant_id = $2
	`, n.ID, n.TenantID, n.Title, n.Content, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if result.RowsAffected() == 0 {
		return note.ErrNoteNotFound
	}
	return nil
}

// Delete removes a note from a tenant
func (r *NoteRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.pool.Exec(ctx, `
		DELETE FROM notes
		WHERE id = $1 AND tenant_id = $2
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if result.RowsAffected() == 0 {
		return note.ErrNoteNotFound
	}
	return nil
}

// CountByTenant counts the tenant's notes for the quota check
func (r *NoteRepository) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var count int
	err := r.db.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notes WHERE tenant_id = $1
	`, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}
