package codec

import (
	"testing"

	"github.com/ycetindil/attrio/internal/domain"
)

func TestFormatRendersDisplayStrings(t *testing.T) {
	c := New(DefaultConfig())

	cases := []struct {
		value domain.Value
		want  string
	}{
		{domain.EmptyValue(domain.AttributeTypeText), "—"},
		{domain.NumberValue(domain.AttributeTypeNumber, 42), "42"},
		{domain.NumberValue(domain.AttributeTypeNumber, 3.50), "3.5"},
		{domain.BoolValue(true), "true"},
		{domain.MultiSelectValue([]string{"red", "blue"}), "red, blue"},
		{domain.PhoneValue("+90", "5551234"), "+90 5551234"},
		{domain.MoneyValue(99.9, "USD"), "USD 99.9"},
		{domain.ReferenceValue("supplier", "SUP-001", "Acme"), "Acme"},
		{domain.ReferenceValue("supplier", "SUP-001", ""), "supplier:SUP-001"},
		{domain.GeoPointValue(41.01, 28.97), "41.01, 28.97"},
		{domain.TableValue([][]string{{"a", "b"}, {"c", "d"}}), "a | b\nc | d"},
		{domain.JSONValue(domain.AttributeTypeObject, map[string]any{"k": "v"}), `{"k":"v"}`},
	}

	for _, tc := range cases {
		if got := c.Format(tc.value); got != tc.want {
			t.Fatalf("format %+v: expected %q, got %q", tc.value, tc.want, got)
		}
	}
}

func TestFormatEmptyMarkerIsConfigurable(t *testing.T) {
	c := New(Config{EmptyMarker: "n/a"})
	if got := c.Format(domain.EmptyValue(domain.AttributeTypeMoney)); got != "n/a" {
		t.Fatalf("expected configured marker, got %q", got)
	}
}

func TestIsImageValue(t *testing.T) {
	images := []any{
		"data:image/png;base64,iVBOR",
		"/uploads/photos/item-1",
		"https://cdn.example.com/a/photo.JPG",
		"photo.webp?width=200",
	}
	for _, raw := range images {
		if !IsImageValue(raw) {
			t.Fatalf("expected %v to be an image", raw)
		}
	}

	notImages := []any{
		"https://example.com/report.pdf",
		"plain text",
		42,
		nil,
		[]string{"photo.png"},
	}
	for _, raw := range notImages {
		if IsImageValue(raw) {
			t.Fatalf("expected %v not to be an image", raw)
		}
	}
}
