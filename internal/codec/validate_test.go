package codec

import (
	"testing"

	"github.com/ycetindil/attrio/internal/domain"
)

func TestValidateDefaultEmptyInputMeansNoDefault(t *testing.T) {
	c := New(DefaultConfig())

	for _, attrType := range domain.AllAttributeTypes() {
		for _, raw := range []string{"", "   ", "\t\n"} {
			v, err := c.ValidateDefault(raw, attrType, nil)
			if err != nil {
				t.Fatalf("%s: blank input must not error, got %v", attrType, err)
			}
			if v != nil {
				t.Fatalf("%s: blank input must mean no default, got %+v", attrType, v)
			}
		}
	}
}

func TestValidateDefaultNumber(t *testing.T) {
	c := New(DefaultConfig())

	v, err := c.ValidateDefault("12.5", domain.AttributeTypeNumber, nil)
	if err != nil || v == nil || v.Number != 12.5 {
		t.Fatalf("unexpected result: %+v, %v", v, err)
	}

	if _, err := c.ValidateDefault("twelve", domain.AttributeTypeNumber, nil); err == nil {
		t.Fatalf("expected error for non-numeric input")
	}
	if _, err := c.ValidateDefault("NaN", domain.AttributeTypeNumber, nil); err == nil {
		t.Fatalf("expected error for NaN")
	}
}

func TestValidateDefaultBooleanIsStrict(t *testing.T) {
	c := New(DefaultConfig())

	if _, err := c.ValidateDefault("true", domain.AttributeTypeBoolean, nil); err != nil {
		t.Fatalf("literal true must pass: %v", err)
	}
	for _, raw := range []string{"True", "yes", "1"} {
		if _, err := c.ValidateDefault(raw, domain.AttributeTypeBoolean, nil); err == nil {
			t.Fatalf("%q must be rejected", raw)
		}
	}
}

func TestValidateDefaultSelectMembership(t *testing.T) {
	c := New(DefaultConfig())
	options := []string{"Red", "Green"}

	if _, err := c.ValidateDefault("Red", domain.AttributeTypeSelect, options); err != nil {
		t.Fatalf("configured option must pass: %v", err)
	}
	if _, err := c.ValidateDefault("red", domain.AttributeTypeSelect, options); err == nil {
		t.Fatalf("membership is case sensitive, expected error")
	}
}

func TestValidateDefaultMultiSelect(t *testing.T) {
	c := New(DefaultConfig())
	options := []string{"a", "b", "c"}

	v, err := c.ValidateDefault("a, c", domain.AttributeTypeMultiSelect, options)
	if err != nil || v == nil || len(v.List) != 2 {
		t.Fatalf("unexpected result: %+v, %v", v, err)
	}
	if _, err := c.ValidateDefault("a, z", domain.AttributeTypeMultiSelect, options); err == nil {
		t.Fatalf("expected error for unknown entry")
	}
	if _, err := c.ValidateDefault(", ,", domain.AttributeTypeMultiSelect, options); err == nil {
		t.Fatalf("expected error when no entries survive splitting")
	}
}

func TestValidateDefaultEmail(t *testing.T) {
	c := New(DefaultConfig())

	v, err := c.ValidateDefault("John@Example.COM", domain.AttributeTypeEmail, nil)
	if err != nil || v == nil || v.Text != "john@example.com" {
		t.Fatalf("unexpected result: %+v, %v", v, err)
	}
	if _, err := c.ValidateDefault("not-an-email", domain.AttributeTypeEmail, nil); err == nil {
		t.Fatalf("expected error for malformed email")
	}
}

func TestValidateDefaultURL(t *testing.T) {
	c := New(DefaultConfig())

	if _, err := c.ValidateDefault("https://example.com/x", domain.AttributeTypeURL, nil); err != nil {
		t.Fatalf("absolute URL must pass: %v", err)
	}
	if _, err := c.ValidateDefault("example.com/x", domain.AttributeTypeURL, nil); err == nil {
		t.Fatalf("expected error for relative URL")
	}
}

func TestValidateDefaultPhoneCountryCodeRequired(t *testing.T) {
	c := New(DefaultConfig())

	v, err := c.ValidateDefault(`{"countryCode":"","number":""}`, domain.AttributeTypePhone, nil)
	if err != nil || v != nil {
		t.Fatalf("all-empty payload must mean no default: %+v, %v", v, err)
	}

	_, err = c.ValidateDefault(`{"number":"5551234"}`, domain.AttributeTypePhone, nil)
	if err == nil {
		t.Fatalf("expected error for missing country code")
	}
	if !IsPhoneDefaultError(err) {
		t.Fatalf("expected the distinguished phone kind, got %v", err)
	}

	_, err = c.ValidateDefault("5551234", domain.AttributeTypePhone, nil)
	if err == nil || IsPhoneDefaultError(err) {
		t.Fatalf("non-JSON input should be the plain invalid kind, got %v", err)
	}
}

func TestValidateDefaultMoney(t *testing.T) {
	c := New(DefaultConfig())

	v, err := c.ValidateDefault(`{"amount": 9.99, "currency": "usd"}`, domain.AttributeTypeMoney, nil)
	if err != nil || v == nil || v.Money.Currency != "USD" {
		t.Fatalf("unexpected result: %+v, %v", v, err)
	}

	v, err = c.ValidateDefault(`{}`, domain.AttributeTypeMoney, nil)
	if err != nil || v != nil {
		t.Fatalf("empty payload must mean no default: %+v, %v", v, err)
	}

	if _, err := c.ValidateDefault(`{"currency":"USD"}`, domain.AttributeTypeMoney, nil); err == nil {
		t.Fatalf("expected error when currency is present without amount")
	}
}

func TestValidateDefaultGeoPointRange(t *testing.T) {
	c := New(DefaultConfig())

	_, err := c.ValidateDefault(`{"lat": 95, "lng": 0}`, domain.AttributeTypeGeoPoint, nil)
	verr, ok := err.(*ValidationError)
	if !ok || verr.Kind != ErrKindRange {
		t.Fatalf("expected a range error, got %v", err)
	}

	if _, err := c.ValidateDefault(`{"lat": 41.01}`, domain.AttributeTypeGeoPoint, nil); err == nil {
		t.Fatalf("expected error for lat without lng")
	}

	v, err := c.ValidateDefault(`{}`, domain.AttributeTypeGeoPoint, nil)
	if err != nil || v != nil {
		t.Fatalf("empty payload must mean no default: %+v, %v", v, err)
	}
}

func TestValidateDefaultJSONShapes(t *testing.T) {
	c := New(DefaultConfig())

	if _, err := c.ValidateDefault(`[1,2]`, domain.AttributeTypeObject, nil); err == nil {
		t.Fatalf("OBJECT must reject arrays")
	}
	if _, err := c.ValidateDefault(`{"a":1}`, domain.AttributeTypeArray, nil); err == nil {
		t.Fatalf("ARRAY must reject objects")
	}
	if _, err := c.ValidateDefault(`{nope}`, domain.AttributeTypeJSON, nil); err == nil {
		t.Fatalf("malformed JSON must be rejected")
	}

	v, err := c.ValidateDefault(`null`, domain.AttributeTypeJSON, nil)
	if err != nil || v != nil {
		t.Fatalf("JSON null must mean no default: %+v, %v", v, err)
	}
}

func TestValidateDefaultDatePassesThrough(t *testing.T) {
	c := New(DefaultConfig())

	v, err := c.ValidateDefault("  someday soon  ", domain.AttributeTypeDate, nil)
	if err != nil || v == nil || v.Text != "someday soon" {
		t.Fatalf("date defaults are trimmed passthrough: %+v, %v", v, err)
	}
}
