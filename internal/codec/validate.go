package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"

	"github.com/ycetindil/attrio/internal/domain"
)

// ErrorKind classifies a validation failure.
type ErrorKind string

const (
	// ErrKindInvalid covers syntactically present but semantically invalid
	// input, the general case.
	ErrKindInvalid ErrorKind = "invalid"
	// ErrKindRange covers numeric bounds violations.
	ErrKindRange ErrorKind = "range"
	// ErrKindPhoneDefault marks the dedicated phone failure: a number was
	// supplied without a country code. It has its own fallback message in
	// the presentation layer.
	ErrKindPhoneDefault ErrorKind = "phone_default"
)

// ValidationError is a typed, field-scoped validation failure.
type ValidationError struct {
	Type    domain.AttributeType
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s default invalid: %s", strings.ToLower(string(e.Type)), e.Message)
}

// IsPhoneDefaultError reports whether err carries the distinguished missing
// country code kind.
func IsPhoneDefaultError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr) && verr.Kind == ErrKindPhoneDefault
}

func invalid(attrType domain.AttributeType, format string, args ...any) error {
	return &ValidationError{Type: attrType, Kind: ErrKindInvalid, Message: fmt.Sprintf(format, args...)}
}

func outOfRange(attrType domain.AttributeType, format string, args ...any) error {
	return &ValidationError{Type: attrType, Kind: ErrKindRange, Message: fmt.Sprintf(format, args...)}
}

// ValidateDefault validates the raw default-value input typed by an operator
// for the given attribute type. Empty or whitespace-only input always means
// "no default" and returns (nil, nil) for every type; that check comes first.
// Syntactically present but semantically invalid input returns a
// ValidationError rather than being coerced.
func (c *Codec) ValidateDefault(raw string, attrType domain.AttributeType, options []string) (*domain.Value, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	switch attrType {
	case domain.AttributeTypeNumber, domain.AttributeTypeRating:
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || !isFinite(n) {
			return nil, invalid(attrType, "%q is not a finite number", trimmed)
		}
		return valuePtr(domain.NumberValue(attrType, n)), nil

	case domain.AttributeTypeBoolean:
		switch trimmed {
		case "true":
			return valuePtr(domain.BoolValue(true)), nil
		case "false":
			return valuePtr(domain.BoolValue(false)), nil
		}
		return nil, invalid(attrType, "%q must be the literal true or false", trimmed)

	case domain.AttributeTypeSelect:
		for _, option := range options {
			if trimmed == option {
				return valuePtr(domain.TextValue(attrType, trimmed)), nil
			}
		}
		return nil, invalid(attrType, "%q is not one of the configured options", trimmed)

	case domain.AttributeTypeMultiSelect:
		return c.validateMultiSelectDefault(trimmed, options)

	case domain.AttributeTypeEmail:
		normalized := strings.ToLower(trimmed)
		if _, err := mail.ParseAddress(normalized); err != nil || strings.ContainsAny(normalized, " <>") {
			return nil, invalid(attrType, "%q is not a valid email address", trimmed)
		}
		return valuePtr(domain.TextValue(attrType, normalized)), nil

	case domain.AttributeTypeURL:
		parsed, err := url.Parse(trimmed)
		if err != nil || !parsed.IsAbs() || parsed.Host == "" {
			return nil, invalid(attrType, "%q is not an absolute URL with a protocol", trimmed)
		}
		return valuePtr(domain.TextValue(attrType, trimmed)), nil

	case domain.AttributeTypePhone:
		return c.validatePhoneDefault(trimmed)

	case domain.AttributeTypeMoney:
		return c.validateMoneyDefault(trimmed)

	case domain.AttributeTypeReference:
		return validateReferenceDefault(trimmed)

	case domain.AttributeTypeGeoPoint:
		return validateGeoPointDefault(trimmed)

	case domain.AttributeTypeJSON, domain.AttributeTypeObject, domain.AttributeTypeArray:
		return validateJSONDefault(trimmed, attrType)

	default:
		// TEXT, DATE and the remaining textual kinds: trimmed passthrough.
		return valuePtr(domain.TextValue(attrType, trimmed)), nil
	}
}

func (c *Codec) validateMultiSelectDefault(trimmed string, options []string) (*domain.Value, error) {
	entries := splitList(trimmed)
	if len(entries) == 0 {
		return nil, invalid(domain.AttributeTypeMultiSelect, "at least one entry is required")
	}
	allowed := make(map[string]struct{}, len(options))
	for _, option := range options {
		allowed[option] = struct{}{}
	}
	for _, entry := range entries {
		if _, ok := allowed[entry]; !ok {
			return nil, invalid(domain.AttributeTypeMultiSelect, "%q is not one of the configured options", entry)
		}
	}
	return valuePtr(domain.MultiSelectValue(entries)), nil
}

func (c *Codec) validatePhoneDefault(trimmed string) (*domain.Value, error) {
	var payload struct {
		CountryCode string `json:"countryCode"`
		Number      string `json:"number"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, invalid(domain.AttributeTypePhone, "expected a JSON object with countryCode and number")
	}
	payload.CountryCode = strings.TrimSpace(payload.CountryCode)
	payload.Number = strings.TrimSpace(payload.Number)

	if payload.CountryCode == "" && payload.Number == "" {
		return nil, nil
	}
	if payload.CountryCode == "" {
		return nil, &ValidationError{
			Type:    domain.AttributeTypePhone,
			Kind:    ErrKindPhoneDefault,
			Message: "countryCode is required when a number is present",
		}
	}
	return valuePtr(domain.PhoneValue(payload.CountryCode, payload.Number)), nil
}

func (c *Codec) validateMoneyDefault(trimmed string) (*domain.Value, error) {
	var payload struct {
		Amount   *float64 `json:"amount"`
		Currency string   `json:"currency"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, invalid(domain.AttributeTypeMoney, "expected a JSON object with a numeric amount")
	}
	if payload.Amount == nil {
		if strings.TrimSpace(payload.Currency) == "" {
			return nil, nil
		}
		return nil, invalid(domain.AttributeTypeMoney, "amount is required when any field is supplied")
	}
	if !isFinite(*payload.Amount) {
		return nil, invalid(domain.AttributeTypeMoney, "amount must be finite")
	}
	return valuePtr(domain.MoneyValue(*payload.Amount, c.normalizeCurrency(payload.Currency))), nil
}

func validateReferenceDefault(trimmed string) (*domain.Value, error) {
	var payload struct {
		EntityType  string `json:"entityType"`
		ReferenceID string `json:"referenceId"`
		Label       string `json:"label"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, invalid(domain.AttributeTypeReference, "expected a JSON object with entityType and referenceId")
	}
	payload.EntityType = strings.TrimSpace(payload.EntityType)
	payload.ReferenceID = strings.TrimSpace(payload.ReferenceID)
	payload.Label = strings.TrimSpace(payload.Label)

	if payload.EntityType == "" && payload.ReferenceID == "" && payload.Label == "" {
		return nil, nil
	}
	if payload.EntityType == "" || payload.ReferenceID == "" {
		return nil, invalid(domain.AttributeTypeReference, "entityType and referenceId are both mandatory")
	}
	return valuePtr(domain.ReferenceValue(payload.EntityType, payload.ReferenceID, payload.Label)), nil
}

func validateGeoPointDefault(trimmed string) (*domain.Value, error) {
	var payload struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, invalid(domain.AttributeTypeGeoPoint, "expected a JSON object with lat and lng")
	}
	if payload.Lat == nil && payload.Lng == nil {
		return nil, nil
	}
	if payload.Lat == nil || payload.Lng == nil {
		return nil, invalid(domain.AttributeTypeGeoPoint, "lat and lng are required together")
	}
	if *payload.Lat < -90 || *payload.Lat > 90 {
		return nil, outOfRange(domain.AttributeTypeGeoPoint, "lat %v is outside [-90, 90]", *payload.Lat)
	}
	if *payload.Lng < -180 || *payload.Lng > 180 {
		return nil, outOfRange(domain.AttributeTypeGeoPoint, "lng %v is outside [-180, 180]", *payload.Lng)
	}
	return valuePtr(domain.GeoPointValue(*payload.Lat, *payload.Lng)), nil
}

func validateJSONDefault(trimmed string, attrType domain.AttributeType) (*domain.Value, error) {
	var doc any
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return nil, invalid(attrType, "input is not valid JSON")
	}
	switch attrType {
	case domain.AttributeTypeObject:
		if _, ok := doc.(map[string]any); !ok {
			return nil, invalid(attrType, "a JSON object is required")
		}
	case domain.AttributeTypeArray:
		if _, ok := doc.([]any); !ok {
			return nil, invalid(attrType, "a JSON array is required")
		}
	}
	if doc == nil {
		return nil, nil
	}
	return valuePtr(domain.JSONValue(attrType, doc)), nil
}

func valuePtr(v domain.Value) *domain.Value {
	return &v
}
