// Package catalog implements the attribute, group and item services: the
// creation wizard, the edit flow, and item value validation. Every value
// conversion goes through the codec package so create and edit paths cannot
// drift apart.
package catalog

import (
	"fmt"
	"strings"

	"github.com/ycetindil/attrio/internal/codec"
	"github.com/ycetindil/attrio/internal/domain"
)

// FieldError is one field-scoped validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValuesError aggregates field errors for an item value map.
type ValuesError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValuesError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fieldErr := range e.Errors {
		msgs[i] = fieldErr.Field + ": " + fieldErr.Message
	}
	return "invalid item values: " + strings.Join(msgs, "; ")
}

// valueValidator normalizes an item value map against attribute definitions.
type valueValidator struct {
	cdc *codec.Codec
}

// normalize parses every supplied value through the codec, enforces required
// flags and option membership, and returns the map in serialized canonical
// form. Keys without a matching attribute definition are rejected.
func (v valueValidator) normalize(values map[string]any, attrs map[string]domain.Attribute) (map[string]any, *ValuesError) {
	var errs []FieldError

	for key := range values {
		if _, ok := attrs[key]; !ok {
			errs = append(errs, FieldError{Field: key, Message: fmt.Sprintf("value %q has no attribute definition", key)})
		}
	}

	normalized := make(map[string]any, len(values))
	for key, attr := range attrs {
		raw, supplied := values[key]

		parsed := v.cdc.Parse(attr.Type, raw)
		if attr.Required && parsed.IsEmpty() {
			errs = append(errs, FieldError{Field: key, Message: "required value is missing"})
			continue
		}
		if !supplied || parsed.IsEmpty() {
			continue
		}

		if fieldErr := checkOptions(attr, parsed); fieldErr != nil {
			errs = append(errs, *fieldErr)
			continue
		}
		if fieldErr := checkRules(attr, parsed); fieldErr != nil {
			errs = append(errs, *fieldErr)
			continue
		}

		normalized[key] = v.cdc.Serialize(parsed)
	}

	if len(errs) > 0 {
		return nil, &ValuesError{Errors: errs}
	}
	return normalized, nil
}

// checkOptions enforces case-sensitive exact option membership for SELECT and
// MULTISELECT values.
func checkOptions(attr domain.Attribute, parsed domain.Value) *FieldError {
	if !attr.Type.UsesOptions() {
		return nil
	}
	allowed := make(map[string]struct{}, len(attr.Options))
	for _, option := range attr.Options {
		allowed[option] = struct{}{}
	}

	var selections []string
	if attr.Type == domain.AttributeTypeSelect {
		selections = []string{parsed.Text}
	} else {
		selections = parsed.List
	}
	for _, selected := range selections {
		if _, ok := allowed[selected]; !ok {
			return &FieldError{Field: attr.Key, Message: fmt.Sprintf("%q is not one of the configured options", selected)}
		}
	}
	return nil
}

// checkRules evaluates the attribute's configured validation rules against a
// parsed value. Only the rules that apply to the value's shape are checked.
func checkRules(attr domain.Attribute, parsed domain.Value) *FieldError {
	if len(attr.Validation) == 0 {
		return nil
	}

	if attr.Type.IsNumeric() && parsed.NumberSet {
		if min, ok := ruleNumber(attr.Validation, "min"); ok && parsed.Number < min {
			return &FieldError{Field: attr.Key, Message: fmt.Sprintf("value %v is below the minimum %v", parsed.Number, min)}
		}
		if max, ok := ruleNumber(attr.Validation, "max"); ok && parsed.Number > max {
			return &FieldError{Field: attr.Key, Message: fmt.Sprintf("value %v is above the maximum %v", parsed.Number, max)}
		}
	}

	if attr.Type.IsTextual() && parsed.Text != "" {
		if minLen, ok := ruleNumber(attr.Validation, "minLength"); ok && len(parsed.Text) < int(minLen) {
			return &FieldError{Field: attr.Key, Message: fmt.Sprintf("length %d is below the minimum %d", len(parsed.Text), int(minLen))}
		}
		if maxLen, ok := ruleNumber(attr.Validation, "maxLength"); ok && len(parsed.Text) > int(maxLen) {
			return &FieldError{Field: attr.Key, Message: fmt.Sprintf("length %d is above the maximum %d", len(parsed.Text), int(maxLen))}
		}
	}

	return nil
}

func ruleNumber(rules map[string]any, name string) (float64, bool) {
	switch typed := rules[name].(type) {
	case float64:
		return typed, true
	case int:
		return float64(typed), true
	}
	return 0, false
}
