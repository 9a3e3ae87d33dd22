package domain

import (
	"errors"
	"testing"
)

func completeDraft() AttributeDraft {
	return NewAttributeDraft().
		WithBasicInfo("color", "Color", nil).
		WithType(AttributeTypeSelect, []string{"Red", "Blue"}).
		WithValidationRules(nil, true, false).
		WithDefault("Red").
		Reviewed()
}

func TestDraftReadyAfterAllSteps(t *testing.T) {
	if err := completeDraft().Ready(); err != nil {
		t.Fatalf("expected draft to be ready, got %v", err)
	}
}

func TestDraftNotReadyWithMissingStep(t *testing.T) {
	draft := NewAttributeDraft().
		WithBasicInfo("color", "Color", nil).
		WithType(AttributeTypeSelect, []string{"Red"}).
		WithValidationRules(nil, false, false).
		WithDefault("")
	err := draft.Ready()
	if !errors.Is(err, ErrDraftIncomplete) {
		t.Fatalf("expected ErrDraftIncomplete before review, got %v", err)
	}
}

func TestDraftRequiresOptionsForSelect(t *testing.T) {
	draft := NewAttributeDraft().
		WithBasicInfo("color", "Color", nil).
		WithType(AttributeTypeSelect, nil).
		WithValidationRules(nil, false, false).
		WithDefault("").
		Reviewed()
	if err := draft.Ready(); !errors.Is(err, ErrDraftIncomplete) {
		t.Fatalf("select without options must not be ready, got %v", err)
	}
}

func TestDraftDropsOptionsForNonOptionTypes(t *testing.T) {
	draft := NewAttributeDraft().WithType(AttributeTypeNumber, []string{"stale"})
	if draft.Options != nil {
		t.Fatalf("options should be dropped for NUMBER, got %v", draft.Options)
	}
}

func TestDraftStepsAreImmutable(t *testing.T) {
	base := NewAttributeDraft().WithBasicInfo("a", "A", nil)
	_ = base.WithType(AttributeTypeText, nil)
	if base.Type != "" {
		t.Fatalf("applying a step must not mutate the receiver")
	}
}
