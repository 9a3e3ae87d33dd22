package codec

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ycetindil/attrio/internal/domain"
)

// Format renders a structured value as a deterministic display string. Empty
// values of every kind format to the configured empty marker.
func (c *Codec) Format(v domain.Value) string {
	if v.IsEmpty() {
		return c.cfg.EmptyMarker
	}

	switch v.Kind {
	case domain.AttributeTypeNumber, domain.AttributeTypeRating:
		return formatFloat(v.Number)
	case domain.AttributeTypeBoolean:
		return strconv.FormatBool(v.Bool)
	case domain.AttributeTypeMultiSelect:
		return strings.Join(v.List, ", ")
	case domain.AttributeTypePhone:
		if v.Phone.CountryCode == "" {
			return v.Phone.Number
		}
		return v.Phone.CountryCode + " " + v.Phone.Number
	case domain.AttributeTypeMoney:
		return v.Money.Currency + " " + formatFloat(v.Money.Amount)
	case domain.AttributeTypeReference:
		if v.Reference.Label != "" {
			return v.Reference.Label
		}
		if v.Reference.EntityType == "" {
			return v.Reference.ReferenceID
		}
		return v.Reference.EntityType + ":" + v.Reference.ReferenceID
	case domain.AttributeTypeGeoPoint:
		return formatFloat(v.Geo.Lat) + ", " + formatFloat(v.Geo.Lng)
	case domain.AttributeTypeTable:
		rows := make([]string, len(v.Table))
		for i, row := range v.Table {
			rows[i] = strings.Join(row, " | ")
		}
		return strings.Join(rows, "\n")
	case domain.AttributeTypeJSON, domain.AttributeTypeObject, domain.AttributeTypeArray:
		encoded, err := json.Marshal(v.JSON)
		if err != nil {
			return objectFallback
		}
		return string(encoded)
	default:
		return v.Text
	}
}

// objectFallback is the fixed literal shown when a value cannot be
// stringified; formatting errors never propagate.
const objectFallback = "[object]"

func formatFloat(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
