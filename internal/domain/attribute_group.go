package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttributeGroup bundles attributes for presentation and auditing purposes.
type AttributeGroup struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAttributeGroup creates a group with generated identity and timestamps.
func NewAttributeGroup(name, description string) AttributeGroup {
	now := time.Now()
	return AttributeGroup{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WithName returns a copy with an updated name.
func (g AttributeGroup) WithName(name string) AttributeGroup {
	g.Name = name
	g.Tags = copyStrings(g.Tags)
	g.UpdatedAt = time.Now()
	return g
}

// WithDescription returns a copy with an updated description.
func (g AttributeGroup) WithDescription(description string) AttributeGroup {
	g.Description = description
	g.Tags = copyStrings(g.Tags)
	g.UpdatedAt = time.Now()
	return g
}

// Snapshot flattens the group for history change computation.
func (g AttributeGroup) Snapshot() map[string]any {
	snap := map[string]any{
		"name":        g.Name,
		"description": g.Description,
	}
	if len(g.Tags) > 0 {
		snap["tags"] = toAnySlice(g.Tags)
	}
	return snap
}
