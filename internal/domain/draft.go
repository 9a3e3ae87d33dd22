package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DraftStep identifies one step of the attribute creation wizard.
type DraftStep string

const (
	DraftStepBasicInfo  DraftStep = "basic_info"
	DraftStepType       DraftStep = "type"
	DraftStepValidation DraftStep = "validation"
	DraftStepDefault    DraftStep = "default"
	DraftStepReview     DraftStep = "review"
)

// ErrDraftIncomplete is returned when a draft is built before every required
// wizard step has been visited.
var ErrDraftIncomplete = errors.New("attribute draft incomplete")

// AttributeDraft accumulates the attribute creation wizard's state. Steps are
// applied with the same immutable pattern the rest of the domain uses; Build
// happens in the catalog service where the default value can be validated
// against the draft's own type.
type AttributeDraft struct {
	Key        string
	Name       string
	Tags       []string
	Type       AttributeType
	Options    []string
	Validation map[string]any
	Required   bool
	Unique     bool
	// RawDefault keeps the operator's default-value input untouched until
	// Build normalizes it.
	RawDefault string

	completed map[DraftStep]bool
}

// NewAttributeDraft starts an empty wizard draft.
func NewAttributeDraft() AttributeDraft {
	return AttributeDraft{completed: map[DraftStep]bool{}}
}

// WithBasicInfo records step one of the wizard.
func (d AttributeDraft) WithBasicInfo(key, name string, tags []string) AttributeDraft {
	out := d.clone()
	out.Key = strings.TrimSpace(key)
	out.Name = strings.TrimSpace(name)
	out.Tags = copyStrings(tags)
	out.completed[DraftStepBasicInfo] = true
	return out
}

// WithType records step two. Options are only meaningful for SELECT and
// MULTISELECT and are dropped otherwise.
func (d AttributeDraft) WithType(attrType AttributeType, options []string) AttributeDraft {
	out := d.clone()
	out.Type = attrType
	if attrType.UsesOptions() {
		out.Options = copyStrings(options)
	} else {
		out.Options = nil
	}
	out.completed[DraftStepType] = true
	return out
}

// WithValidationRules records step three.
func (d AttributeDraft) WithValidationRules(rules map[string]any, required, unique bool) AttributeDraft {
	out := d.clone()
	out.Validation = copyRules(rules)
	out.Required = required
	out.Unique = unique
	out.completed[DraftStepValidation] = true
	return out
}

// WithDefault records step four. The raw input is kept as typed by the
// operator; normalization happens at build time.
func (d AttributeDraft) WithDefault(raw string) AttributeDraft {
	out := d.clone()
	out.RawDefault = raw
	out.completed[DraftStepDefault] = true
	return out
}

// Reviewed records the final confirmation step.
func (d AttributeDraft) Reviewed() AttributeDraft {
	out := d.clone()
	out.completed[DraftStepReview] = true
	return out
}

// Ready reports whether every wizard step has been completed and the
// accumulated data is coherent. It wraps ErrDraftIncomplete naming the first
// missing piece.
func (d AttributeDraft) Ready() error {
	steps := []DraftStep{DraftStepBasicInfo, DraftStepType, DraftStepValidation, DraftStepDefault, DraftStepReview}
	for _, step := range steps {
		if !d.completed[step] {
			return fmt.Errorf("%w: step %s not completed", ErrDraftIncomplete, step)
		}
	}
	if d.Key == "" {
		return fmt.Errorf("%w: key is required", ErrDraftIncomplete)
	}
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrDraftIncomplete)
	}
	if !IsKnownAttributeType(d.Type) {
		return fmt.Errorf("%w: unknown attribute type %q", ErrDraftIncomplete, d.Type)
	}
	if d.Type.UsesOptions() && len(d.Options) == 0 {
		return fmt.Errorf("%w: type %s requires at least one option", ErrDraftIncomplete, d.Type)
	}
	return nil
}

func (d AttributeDraft) clone() AttributeDraft {
	out := d
	out.Tags = copyStrings(d.Tags)
	out.Options = copyStrings(d.Options)
	out.Validation = copyRules(d.Validation)
	out.completed = make(map[DraftStep]bool, len(d.completed))
	for step, done := range d.completed {
		out.completed[step] = done
	}
	return out
}
