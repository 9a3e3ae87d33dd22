// Package codec converts between wire representations of attribute values and
// their structured in-memory shape, one parse/format/serialize triple per
// attribute type. Parsing is fault tolerant and never fails; default-value
// validation is strict and returns typed errors. All functions are pure over
// their inputs.
package codec

import (
	"github.com/ycetindil/attrio/internal/domain"
)

// Config carries the deployment-specific fallback constants. They are
// injected rather than hardcoded so the codec can be parameterized per locale.
type Config struct {
	// DefaultCurrency is applied when a money value omits its currency.
	DefaultCurrency string
	// DefaultCountryCode is applied when a phone value omits its country code
	// during tolerant parsing.
	DefaultCountryCode string
	// EmptyMarker is the formatted representation of an empty value. The
	// presentation layer may substitute its own placeholder glyph.
	EmptyMarker string
}

// DefaultConfig returns the stock fallbacks.
func DefaultConfig() Config {
	return Config{
		DefaultCurrency:    "TRY",
		DefaultCountryCode: "+90",
		EmptyMarker:        "—",
	}
}

// Codec implements the per-type conversion contract.
type Codec struct {
	cfg Config
}

// New builds a codec, filling any blank config fields from DefaultConfig.
func New(cfg Config) *Codec {
	defaults := DefaultConfig()
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = defaults.DefaultCurrency
	}
	if cfg.DefaultCountryCode == "" {
		cfg.DefaultCountryCode = defaults.DefaultCountryCode
	}
	if cfg.EmptyMarker == "" {
		cfg.EmptyMarker = defaults.EmptyMarker
	}
	return &Codec{cfg: cfg}
}

// Serialize converts a structured value back to its wire representation.
// Empty values of every kind serialize to nil; composite kinds serialize to
// their canonical JSON-shaped document so Parse accepts the output unchanged.
func (c *Codec) Serialize(v domain.Value) any {
	if v.IsEmpty() {
		return nil
	}

	switch v.Kind {
	case domain.AttributeTypeNumber, domain.AttributeTypeRating:
		return v.Number
	case domain.AttributeTypeBoolean:
		return v.Bool
	case domain.AttributeTypeMultiSelect:
		out := make([]string, len(v.List))
		copy(out, v.List)
		return out
	case domain.AttributeTypePhone:
		return map[string]any{
			"countryCode": v.Phone.CountryCode,
			"number":      v.Phone.Number,
		}
	case domain.AttributeTypeMoney:
		return map[string]any{
			"amount":   v.Money.Amount,
			"currency": v.Money.Currency,
		}
	case domain.AttributeTypeReference:
		out := map[string]any{
			"entityType":  v.Reference.EntityType,
			"referenceId": v.Reference.ReferenceID,
		}
		if v.Reference.Label != "" {
			out["label"] = v.Reference.Label
		}
		return out
	case domain.AttributeTypeGeoPoint:
		return map[string]any{
			"lat": v.Geo.Lat,
			"lng": v.Geo.Lng,
		}
	case domain.AttributeTypeTable:
		out := make([][]string, len(v.Table))
		for i, row := range v.Table {
			out[i] = make([]string, len(row))
			copy(out[i], row)
		}
		return out
	case domain.AttributeTypeJSON, domain.AttributeTypeObject, domain.AttributeTypeArray:
		return serializeJSONDoc(v.JSON)
	default:
		return v.Text
	}
}
