package tenant

import (
	"time"
)

// Tenant represents an isolated organization. All data partitions by
// tenant; no request may ever read or write across this boundary.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Plan constants. The only transition is free -> pro; pro is terminal.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// DefaultInvitePassword is the fixed, documented credential assigned to
// invited users. Invitations send no email; the admin communicates the
// credential out of band.
const DefaultInvitePassword = "password"
