package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Attribute is a named, typed field definition in the catalog. DefaultValue
// holds the serialized form of the attribute's default (shape depends on
// Type); Validation maps rule names to type-specific rule values.
type Attribute struct {
	ID           uuid.UUID      `json:"id"`
	GroupID      *uuid.UUID     `json:"group_id,omitempty"`
	Key          string         `json:"key"`
	Name         string         `json:"name"`
	Type         AttributeType  `json:"type"`
	Required     bool           `json:"required"`
	Unique       bool           `json:"unique"`
	Options      []string       `json:"options,omitempty"`
	DefaultValue any            `json:"default_value,omitempty"`
	Validation   map[string]any `json:"validation,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewAttribute creates an attribute with the immutable update pattern used
// across the domain package.
func NewAttribute(key, name string, attrType AttributeType) Attribute {
	now := time.Now()
	return Attribute{
		ID:        uuid.New(),
		Key:       key,
		Name:      name,
		Type:      attrType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WithName returns a copy with an updated display name.
func (a Attribute) WithName(name string) Attribute {
	out := a.clone()
	out.Name = name
	out.UpdatedAt = time.Now()
	return out
}

// WithOptions returns a copy with a replaced option list.
func (a Attribute) WithOptions(options []string) Attribute {
	out := a.clone()
	out.Options = copyStrings(options)
	out.UpdatedAt = time.Now()
	return out
}

// WithDefaultValue returns a copy with a replaced default value.
func (a Attribute) WithDefaultValue(value any) Attribute {
	out := a.clone()
	out.DefaultValue = value
	out.UpdatedAt = time.Now()
	return out
}

// WithValidation returns a copy with replaced validation rules and flags.
func (a Attribute) WithValidation(rules map[string]any, required, unique bool) Attribute {
	out := a.clone()
	out.Validation = copyRules(rules)
	out.Required = required
	out.Unique = unique
	out.UpdatedAt = time.Now()
	return out
}

// WithTags returns a copy with a replaced tag set.
func (a Attribute) WithTags(tags []string) Attribute {
	out := a.clone()
	out.Tags = copyStrings(tags)
	out.UpdatedAt = time.Now()
	return out
}

// WithGroup returns a copy assigned to the given attribute group.
func (a Attribute) WithGroup(groupID *uuid.UUID) Attribute {
	out := a.clone()
	out.GroupID = groupID
	out.UpdatedAt = time.Now()
	return out
}

// Snapshot flattens the attribute into the generic map shape consumed by the
// history change computation.
func (a Attribute) Snapshot() map[string]any {
	snap := map[string]any{
		"key":      a.Key,
		"name":     a.Name,
		"type":     string(a.Type),
		"required": a.Required,
		"unique":   a.Unique,
	}
	if len(a.Options) > 0 {
		snap["options"] = toAnySlice(a.Options)
	}
	if a.DefaultValue != nil {
		snap["default_value"] = a.DefaultValue
	}
	if len(a.Validation) > 0 {
		snap["validation"] = copyRules(a.Validation)
	}
	if len(a.Tags) > 0 {
		snap["tags"] = toAnySlice(a.Tags)
	}
	return snap
}

// ValidationAsJSONB returns the validation rules as JSONB for storage.
func (a Attribute) ValidationAsJSONB() (json.RawMessage, error) {
	if a.Validation == nil {
		return json.RawMessage("{}"), nil
	}
	return json.Marshal(a.Validation)
}

func (a Attribute) clone() Attribute {
	out := a
	out.Options = copyStrings(a.Options)
	out.Validation = copyRules(a.Validation)
	out.Tags = copyStrings(a.Tags)
	return out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyRules(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
