package codec

import (
	"testing"

	"github.com/ycetindil/attrio/internal/domain"
)

func TestDescribeControls(t *testing.T) {
	cdc := New(DefaultConfig())

	cases := []struct {
		attrType domain.AttributeType
		want     Control
	}{
		{domain.AttributeTypeText, ControlText},
		{domain.AttributeTypeBarcode, ControlText},
		{domain.AttributeTypeNumber, ControlNumber},
		{domain.AttributeTypeBoolean, ControlCheckbox},
		{domain.AttributeTypeSelect, ControlSelect},
		{domain.AttributeTypeMultiSelect, ControlMultiSelect},
		{domain.AttributeTypePhone, ControlComposite},
		{domain.AttributeTypeTable, ControlComposite},
		{domain.AttributeTypeJSON, ControlTextarea},
		{domain.AttributeTypeImage, ControlFile},
		{domain.AttributeTypeFormula, ControlStatic},
	}
	for _, tc := range cases {
		attr := domain.NewAttribute("k", "K", tc.attrType)
		desc := cdc.Describe(attr, domain.EmptyValue(tc.attrType), ModeEdit, false)
		if desc.Control != tc.want {
			t.Errorf("%s: control = %q, want %q", tc.attrType, desc.Control, tc.want)
		}
	}
}

func TestDescribeModeSelection(t *testing.T) {
	cdc := New(DefaultConfig())
	attr := domain.NewAttribute("color", "Color", domain.AttributeTypeSelect).
		WithOptions([]string{"Red", "Blue"})

	desc := cdc.Describe(attr, cdc.Parse(attr.Type, "Red"), ModeEdit, false)
	if desc.Mode != ModeEdit {
		t.Fatalf("mode = %q, want edit", desc.Mode)
	}
	if desc.Display != "Red" || desc.Value != "Red" {
		t.Fatalf("unexpected value rendering: display %q value %v", desc.Display, desc.Value)
	}
	if len(desc.Options) != 2 {
		t.Fatalf("options not carried: %v", desc.Options)
	}

	desc = cdc.Describe(attr, cdc.Parse(attr.Type, "Red"), ModeEdit, true)
	if desc.Mode != ModeView {
		t.Fatalf("readonly must force view mode, got %q", desc.Mode)
	}

	ro := domain.NewAttribute("status", "Status", domain.AttributeTypeReadonly)
	desc = cdc.Describe(ro, domain.EmptyValue(ro.Type), ModeEdit, false)
	if desc.Mode != ModeView || desc.Control != ControlStatic {
		t.Fatalf("readonly type must render static view, got %q/%q", desc.Mode, desc.Control)
	}
	if desc.Display != "—" {
		t.Fatalf("empty value must display the empty marker, got %q", desc.Display)
	}
}
