package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryAction enumerates the auditable actions.
type HistoryAction string

const (
	ActionCreated  HistoryAction = "created"
	ActionUpdated  HistoryAction = "updated"
	ActionDeleted  HistoryAction = "deleted"
	ActionViewed   HistoryAction = "viewed"
	ActionExported HistoryAction = "exported"
	ActionImported HistoryAction = "imported"
	ActionLogin    HistoryAction = "login"
	ActionLogout   HistoryAction = "logout"
)

// Actor describes who performed an audited action. All fields are optional;
// presentation picks a display name with a fallback chain.
type Actor struct {
	UserID          string `json:"userId,omitempty"`
	Email           string `json:"email,omitempty"`
	IP              string `json:"ip,omitempty"`
	UserAgent       string `json:"userAgent,omitempty"`
	Name            string `json:"name,omitempty"`
	ProfilePhotoURL string `json:"profilePhotoUrl,omitempty"`
	Role            string `json:"role,omitempty"`
}

// IsZero reports whether no actor data is present at all.
func (a Actor) IsZero() bool {
	return a == Actor{}
}

// Change is one field-level difference between two snapshots. OldValue and
// NewValue are raw snapshot fragments, not structured values; consumers must
// interpret them generically.
type Change struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

// HistoryEntry is an immutable audit record.
type HistoryEntry struct {
	ID         uuid.UUID      `json:"id"`
	TenantID   string         `json:"tenantId,omitempty"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityId"`
	Action     HistoryAction  `json:"action"`
	Timestamp  time.Time      `json:"timestamp"`
	Actor      *Actor         `json:"actor,omitempty"`
	Summary    string         `json:"summary,omitempty"`
	Changes    []Change       `json:"changes,omitempty"`
	Tags       []string       `json:"tags,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Comment    string         `json:"comment,omitempty"`
}

// Pagination describes one page of a server-paginated listing.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// TotalPagesFor computes the page count for a filtered item count; it is
// never below one so an empty result still renders page 1 of 1.
func TotalPagesFor(totalItems, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (totalItems + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// HistoryQuery selects a page of history entries.
type HistoryQuery struct {
	EntityType string
	EntityID   string
	Page       int
	PageSize   int
	Action     HistoryAction
	Actor      string
	Search     string
}

// Normalized returns the query with page defaults applied.
func (q HistoryQuery) Normalized() HistoryQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	return q
}

// HistoryPage is one page of entries plus its pagination envelope.
type HistoryPage struct {
	Items      []HistoryEntry `json:"items"`
	Pagination Pagination     `json:"pagination"`
}
