package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Item is a catalog entry whose Values map attribute keys to serialized
// attribute values. Values are stored exactly as the codec serializes them.
type Item struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Values    map[string]any `json:"values"`
	Tags      []string       `json:"tags,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewItem creates an item with a generated identity. The value map is
// copied, callers keep ownership of theirs.
func NewItem(name string, values map[string]any) Item {
	now := time.Now()
	return Item{
		ID:        uuid.New(),
		Name:      name,
		Values:    copyValues(values),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WithValue returns a copy with one value added or replaced.
func (it Item) WithValue(key string, value any) Item {
	out := it
	out.Values = copyValues(it.Values)
	out.Values[key] = value
	out.Tags = copyStrings(it.Tags)
	out.UpdatedAt = time.Now()
	return out
}

// WithoutValue returns a copy with one value removed.
func (it Item) WithoutValue(key string) Item {
	out := it
	out.Values = copyValues(it.Values)
	delete(out.Values, key)
	out.Tags = copyStrings(it.Tags)
	out.UpdatedAt = time.Now()
	return out
}

// WithValues returns a copy with the whole value map replaced.
func (it Item) WithValues(values map[string]any) Item {
	out := it
	out.Values = copyValues(values)
	out.Tags = copyStrings(it.Tags)
	out.UpdatedAt = time.Now()
	return out
}

// Snapshot flattens the item for history change computation.
func (it Item) Snapshot() map[string]any {
	snap := copyValues(it.Values)
	snap["name"] = it.Name
	return snap
}

// ValuesAsJSONB returns the value map as JSONB for storage.
func (it Item) ValuesAsJSONB() (json.RawMessage, error) {
	if it.Values == nil {
		return json.RawMessage("{}"), nil
	}
	return json.Marshal(it.Values)
}

// ValuesFromJSONB decodes a stored value map.
func ValuesFromJSONB(raw json.RawMessage) (map[string]any, error) {
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func copyValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
