// Package history computes and presents field-level change sets for audited
// entities, and serves the paginated history listing.
package history

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/ycetindil/attrio/internal/domain"
)

// emDash is the placeholder for absent values in change displays.
const emDash = "—"

// objectFallback is the fixed literal for values that cannot be stringified.
const objectFallback = "[object]"

// BuildChanges computes the field-level change set between two raw snapshot
// objects. Either side may be nil or a non-object, which counts as absent.
// Keys present in either snapshot are compared; a key present with a null
// value is not the same as an absent key and is emitted. Keys whose values
// are deep-equal on both sides are skipped. The result is ordered by field
// name so the same input always yields the same output; it is nil when both
// snapshots are absent or nothing differs.
func BuildChanges(before, after any) []domain.Change {
	beforeMap, beforeOK := asObject(before)
	afterMap, afterOK := asObject(after)
	if !beforeOK && !afterOK {
		return nil
	}

	union := make(map[string]struct{}, len(beforeMap)+len(afterMap))
	for key := range beforeMap {
		union[key] = struct{}{}
	}
	for key := range afterMap {
		union[key] = struct{}{}
	}
	if len(union) == 0 {
		return nil
	}

	fields := make([]string, 0, len(union))
	for key := range union {
		fields = append(fields, key)
	}
	sort.Strings(fields)

	changes := make([]domain.Change, 0, len(fields))
	for _, field := range fields {
		oldValue, oldPresent := beforeMap[field]
		newValue, newPresent := afterMap[field]
		if oldPresent && newPresent && reflect.DeepEqual(oldValue, newValue) {
			continue
		}
		changes = append(changes, domain.Change{Field: field, OldValue: oldValue, NewValue: newValue})
	}
	if len(changes) == 0 {
		return nil
	}
	return changes
}

func asObject(raw any) (map[string]any, bool) {
	if raw == nil {
		return nil, false
	}
	obj, ok := raw.(map[string]any)
	return obj, ok
}

// FormatChangeValue renders a raw change value for inline display: nil maps
// to the em-dash placeholder, objects to compact JSON, everything else to its
// string form. It never fails; unstringifiable objects degrade to a fixed
// fallback literal.
func FormatChangeValue(value any) string {
	return formatChange(value, false)
}

// FormatChangeValueDetailed is the modal/detail variant of FormatChangeValue
// with indented JSON for objects.
func FormatChangeValueDetailed(value any) string {
	return formatChange(value, true)
}

func formatChange(value any, pretty bool) string {
	switch typed := value.(type) {
	case nil:
		return emDash
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case json.Number:
		return typed.String()
	}

	var (
		encoded []byte
		err     error
	)
	if pretty {
		encoded, err = json.MarshalIndent(value, "", "  ")
	} else {
		encoded, err = json.Marshal(value)
	}
	if err != nil {
		return objectFallback
	}
	return string(encoded)
}

// ResolveActor builds a display-ready actor for a history entry, merging the
// recorded actor fields with request metadata and picking the best display
// name: explicit name, then the local part of the email, then user id, then
// ip. It returns nil only when there is truly no actor data at all.
func ResolveActor(entry domain.HistoryEntry) *domain.Actor {
	actor := domain.Actor{}
	if entry.Actor != nil {
		actor = *entry.Actor
	}
	if actor.IP == "" {
		actor.IP = metadataString(entry.Metadata, "ip")
	}
	if actor.UserAgent == "" {
		actor.UserAgent = metadataString(entry.Metadata, "userAgent")
	}
	if actor.IsZero() {
		return nil
	}
	return &actor
}

// DisplayName applies the fallback chain for an actor's visible name.
func DisplayName(actor domain.Actor) string {
	if actor.Name != "" {
		return actor.Name
	}
	if actor.Email != "" {
		if at := strings.IndexByte(actor.Email, '@'); at > 0 {
			return actor.Email[:at]
		}
		return actor.Email
	}
	if actor.UserID != "" {
		return actor.UserID
	}
	return actor.IP
}

func metadataString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	if s, ok := metadata[key].(string); ok {
		return s
	}
	return ""
}

// Summarize produces a short human summary for an entry, used when the
// writer did not supply one.
func Summarize(entityType string, action domain.HistoryAction, changes []domain.Change) string {
	if len(changes) == 0 {
		return fmt.Sprintf("%s %s", entityType, action)
	}
	return fmt.Sprintf("%s %s (%d field(s))", entityType, action, len(changes))
}
