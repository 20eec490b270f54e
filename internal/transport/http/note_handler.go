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
	"github.com/jotdeck/jotdeck/internal/note"
	"github.com/jotdeck/jotdeck/internal/tenant"
)

// CreateNoteRequest represents note creation data
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateNoteRequest carries a partial update. Absent fields stay
// untouched; present-but-empty strings overwrite.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// CreateNote creates a note in the requester's tenant, enforcing the
// free-plan quota.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	ident, _ := GetIdentity(r.Context())

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "title required")
		return
	}

	n, err := h.noteService.Create(r.Context(), req.Title, req.Content, ident.TenantID, ident.UserID)
	if err != nil {
		switch {
		case errors.Is(err, note.ErrTitleRequired):
			respondError(w, http.StatusBadRequest, "title required")
		case errors.Is(err, tenant.ErrTenantNotFound):
			respondError(w, http.StatusBadRequest, "Tenant not found")
		case errors.Is(err, note.ErrQuotaExceeded):
			h.metrics.QuotaRejected.Add(r.Context(), 1)
			respondError(w, http.StatusForbidden, "Note limit reached. Upgrade to Pro.")
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.metrics.NotesCreated.Add(r.Context(), 1)

	respondJSON(w, http.StatusCreated, map[string]any{
		"note": n,
	})
}

// ListNotes returns all notes of the requester's tenant, newest first.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	ident, _ := GetIdentity(r.Context())

	notes, err := h.noteService.List(r.Context(), ident.TenantID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"notes": notes,
	})
}

// GetNote returns a single note. Lookups are always constrained by the
// requester's tenant, so a foreign note and a nonexistent one are the
// same 404.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	ident, _ := GetIdentity(r.Context())
	noteID := chi.URLParam(r, "noteID")

	n, err := h.noteService.Get(r.Context(), ident.TenantID, noteID)
	if err != nil {
		if errors.Is(err, note.ErrNoteNotFound) {
			respondError(w, http.StatusNotFound, "Note not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"note": n,
	})
}

// UpdateNote overwrites only the fields supplied in the request body.
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	ident, _ := GetIdentity(r.Context())
	noteID := chi.URLParam(r, "noteID")

	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.noteService.Update(r.Context(), ident.TenantID, noteID, req.Title, req.Content, ident.UserID)
	if err != nil {
		if errors.Is(err, note.ErrNoteNotFound) {
			respondError(w, http.StatusNotFound, "Note not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"note": n,
	})
}

// DeleteNote removes a note. Deleting an already-deleted note is 404.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	ident, _ := GetIdentity(r.Context())
	noteID := chi.URLParam(r, "noteID")

	if err := h.noteService.Delete(r.Context(), ident.TenantID, noteID, ident.UserID); err != nil {
		if errors.Is(err, note.ErrNoteNotFound) {
			respondError(w, http.StatusNotFound, "Note not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{
		"success": true,
	})
}
