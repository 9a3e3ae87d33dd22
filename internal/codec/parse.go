package codec

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ycetindil/attrio/internal/domain"
)

var (
	dateLayouts = []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006/01/02",
		"02/01/2006",
		"01/02/2006",
	}
	dateTimeLayouts = []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	timeLayouts = []string{
		"15:04",
		"15:04:05",
	}
)

const (
	dateCanonical     = "2006-01-02"
	dateTimeCanonical = time.RFC3339
	timeCanonical     = "15:04"
)

// Parse converts any wire representation into the structured value for the
// given type. It never fails: unrecognized or malformed input degrades to the
// type's empty value. Accepted inputs per type are the structured shape
// itself, a JSON-serialized string of it, a type-specific shorthand string,
// or a bare scalar coerced into the shape's most significant field.
func (c *Codec) Parse(attrType domain.AttributeType, raw any) domain.Value {
	if raw == nil {
		return domain.EmptyValue(attrType)
	}

	switch attrType {
	case domain.AttributeTypeNumber, domain.AttributeTypeRating:
		return parseNumber(attrType, raw)
	case domain.AttributeTypeBoolean:
		return parseBoolean(raw)
	case domain.AttributeTypeDate, domain.AttributeTypeDateTime, domain.AttributeTypeTime:
		return parseTemporal(attrType, raw)
	case domain.AttributeTypeMultiSelect:
		return parseMultiSelect(raw)
	case domain.AttributeTypePhone:
		return c.parsePhone(raw)
	case domain.AttributeTypeMoney:
		return c.parseMoney(raw)
	case domain.AttributeTypeReference:
		return parseReference(raw)
	case domain.AttributeTypeGeoPoint:
		return parseGeoPoint(raw)
	case domain.AttributeTypeTable:
		return parseTable(raw)
	case domain.AttributeTypeJSON, domain.AttributeTypeObject, domain.AttributeTypeArray:
		return parseJSONDoc(attrType, raw)
	default:
		return parseText(attrType, raw)
	}
}

func parseText(attrType domain.AttributeType, raw any) domain.Value {
	if s, ok := scalarString(raw); ok {
		return domain.TextValue(attrType, s)
	}
	return domain.EmptyValue(attrType)
}

func parseNumber(attrType domain.AttributeType, raw any) domain.Value {
	if n, ok := numberFrom(raw); ok {
		return domain.NumberValue(attrType, n)
	}
	return domain.EmptyValue(attrType)
}

func parseBoolean(raw any) domain.Value {
	switch typed := raw.(type) {
	case bool:
		return domain.BoolValue(typed)
	default:
		if s, ok := scalarString(raw); ok {
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "true":
				return domain.BoolValue(true)
			case "false":
				return domain.BoolValue(false)
			}
		}
	}
	return domain.EmptyValue(domain.AttributeTypeBoolean)
}

func parseTemporal(attrType domain.AttributeType, raw any) domain.Value {
	s, ok := scalarString(raw)
	if !ok {
		return domain.EmptyValue(attrType)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.EmptyValue(attrType)
	}

	var layouts []string
	var canonical string
	switch attrType {
	case domain.AttributeTypeDate:
		layouts, canonical = dateLayouts, dateCanonical
	case domain.AttributeTypeDateTime:
		layouts, canonical = dateTimeLayouts, dateTimeCanonical
	default:
		layouts, canonical = timeLayouts, timeCanonical
	}

	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return domain.TextValue(attrType, parsed.Format(canonical))
		}
	}
	return domain.EmptyValue(attrType)
}

func parseMultiSelect(raw any) domain.Value {
	switch typed := raw.(type) {
	case []string:
		return domain.MultiSelectValue(copyNonEmpty(typed))
	case []any:
		entries := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := scalarString(item); ok && s != "" {
				entries = append(entries, s)
			}
		}
		return domain.MultiSelectValue(entries)
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return domain.EmptyValue(domain.AttributeTypeMultiSelect)
		}
		if strings.HasPrefix(trimmed, "[") {
			var decoded []any
			if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
				return parseMultiSelect(decoded)
			}
		}
		return domain.MultiSelectValue(splitList(trimmed))
	}
	return domain.EmptyValue(domain.AttributeTypeMultiSelect)
}

func (c *Codec) parsePhone(raw any) domain.Value {
	switch typed := raw.(type) {
	case domain.PhoneNumber:
		return c.normalizedPhone(typed.CountryCode, typed.Number)
	case *domain.PhoneNumber:
		if typed == nil {
			return domain.EmptyValue(domain.AttributeTypePhone)
		}
		return c.normalizedPhone(typed.CountryCode, typed.Number)
	case map[string]any:
		cc, _ := scalarString(typed["countryCode"])
		number, _ := scalarString(typed["number"])
		return c.normalizedPhone(cc, number)
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return domain.EmptyValue(domain.AttributeTypePhone)
		}
		if strings.HasPrefix(trimmed, "{") {
			var decoded map[string]any
			if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
				return c.parsePhone(decoded)
			}
			return domain.EmptyValue(domain.AttributeTypePhone)
		}
		if cc, number, ok := strings.Cut(trimmed, "|"); ok {
			return c.normalizedPhone(strings.TrimSpace(cc), strings.TrimSpace(number))
		}
		// Bare scalar coerces into the number, the shape's significant field.
		return c.normalizedPhone("", trimmed)
	}
	return domain.EmptyValue(domain.AttributeTypePhone)
}

func (c *Codec) normalizedPhone(countryCode, number string) domain.Value {
	if number == "" {
		return domain.EmptyValue(domain.AttributeTypePhone)
	}
	if countryCode == "" {
		countryCode = c.cfg.DefaultCountryCode
	}
	return domain.PhoneValue(countryCode, number)
}

func (c *Codec) parseMoney(raw any) domain.Value {
	switch typed := raw.(type) {
	case domain.MoneyAmount:
		if !typed.AmountSet {
			return domain.EmptyValue(domain.AttributeTypeMoney)
		}
		return domain.MoneyValue(typed.Amount, c.normalizeCurrency(typed.Currency))
	case map[string]any:
		amount, ok := numberFrom(typed["amount"])
		if !ok {
			return domain.EmptyValue(domain.AttributeTypeMoney)
		}
		currency, _ := scalarString(typed["currency"])
		return domain.MoneyValue(amount, c.normalizeCurrency(currency))
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return domain.EmptyValue(domain.AttributeTypeMoney)
		}
		if strings.HasPrefix(trimmed, "{") {
			var decoded map[string]any
			if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
				return c.parseMoney(decoded)
			}
			return domain.EmptyValue(domain.AttributeTypeMoney)
		}
		fields := strings.Fields(trimmed)
		amount, ok := numberFrom(fields[0])
		if !ok {
			return domain.EmptyValue(domain.AttributeTypeMoney)
		}
		currency := ""
		if len(fields) > 1 {
			currency = fields[1]
		}
		return domain.MoneyValue(amount, c.normalizeCurrency(currency))
	default:
		if amount, ok := numberFrom(raw); ok {
			return domain.MoneyValue(amount, c.cfg.DefaultCurrency)
		}
	}
	return domain.EmptyValue(domain.AttributeTypeMoney)
}

func (c *Codec) normalizeCurrency(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return c.cfg.DefaultCurrency
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return c.cfg.DefaultCurrency
		}
	}
	return currency
}

func parseReference(raw any) domain.Value {
	switch typed := raw.(type) {
	case domain.EntityReference:
		return domain.ReferenceValue(typed.EntityType, typed.ReferenceID, typed.Label)
	case map[string]any:
		entityType, _ := scalarString(typed["entityType"])
		referenceID, _ := scalarString(typed["referenceId"])
		label, _ := scalarString(typed["label"])
		return domain.ReferenceValue(entityType, referenceID, label)
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return domain.EmptyValue(domain.AttributeTypeReference)
		}
		if strings.HasPrefix(trimmed, "{") {
			var decoded map[string]any
			if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
				return parseReference(decoded)
			}
			return domain.EmptyValue(domain.AttributeTypeReference)
		}
		if idx := strings.Index(trimmed, ":"); idx > 0 {
			return domain.ReferenceValue(trimmed[:idx], trimmed[idx+1:], "")
		}
		return domain.ReferenceValue("", trimmed, "")
	}
	return domain.EmptyValue(domain.AttributeTypeReference)
}

func parseGeoPoint(raw any) domain.Value {
	switch typed := raw.(type) {
	case domain.GeoPoint:
		if !typed.Set {
			return domain.EmptyValue(domain.AttributeTypeGeoPoint)
		}
		return boundedGeoPoint(typed.Lat, typed.Lng)
	case map[string]any:
		lat, latOK := numberFrom(typed["lat"])
		lng, lngOK := numberFrom(typed["lng"])
		if !latOK || !lngOK {
			return domain.EmptyValue(domain.AttributeTypeGeoPoint)
		}
		return boundedGeoPoint(lat, lng)
	case []any:
		if len(typed) != 2 {
			return domain.EmptyValue(domain.AttributeTypeGeoPoint)
		}
		lat, latOK := numberFrom(typed[0])
		lng, lngOK := numberFrom(typed[1])
		if !latOK || !lngOK {
			return domain.EmptyValue(domain.AttributeTypeGeoPoint)
		}
		return boundedGeoPoint(lat, lng)
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return domain.EmptyValue(domain.AttributeTypeGeoPoint)
		}
		if strings.HasPrefix(trimmed, "{") {
			var decoded map[string]any
			if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
				return parseGeoPoint(decoded)
			}
			return domain.EmptyValue(domain.AttributeTypeGeoPoint)
		}
		sep := ","
		if !strings.Contains(trimmed, ",") {
			sep = ";"
		}
		parts := strings.SplitN(trimmed, sep, 2)
		if len(parts) != 2 {
			return domain.EmptyValue(domain.AttributeTypeGeoPoint)
		}
		lat, latOK := numberFrom(parts[0])
		lng, lngOK := numberFrom(parts[1])
		if !latOK || !lngOK {
			return domain.EmptyValue(domain.AttributeTypeGeoPoint)
		}
		return boundedGeoPoint(lat, lng)
	}
	return domain.EmptyValue(domain.AttributeTypeGeoPoint)
}

// boundedGeoPoint keeps the variant invariant: out-of-range coordinates are
// malformed input and degrade to empty.
func boundedGeoPoint(lat, lng float64) domain.Value {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return domain.EmptyValue(domain.AttributeTypeGeoPoint)
	}
	return domain.GeoPointValue(lat, lng)
}

func parseTable(raw any) domain.Value {
	switch typed := raw.(type) {
	case [][]string:
		rows := make([][]string, len(typed))
		for i, row := range typed {
			rows[i] = make([]string, len(row))
			copy(rows[i], row)
		}
		return domain.TableValue(rows)
	case []any:
		rows := make([][]string, 0, len(typed))
		for _, rawRow := range typed {
			switch row := rawRow.(type) {
			case []any:
				cells := make([]string, 0, len(row))
				for _, cell := range row {
					cells = append(cells, stringifyCell(cell))
				}
				rows = append(rows, cells)
			case []string:
				cells := make([]string, len(row))
				copy(cells, row)
				rows = append(rows, cells)
			default:
				rows = append(rows, []string{stringifyCell(rawRow)})
			}
		}
		return domain.TableValue(rows)
	case string:
		trimmed := strings.TrimSpace(typed)
		if !strings.HasPrefix(trimmed, "[") {
			return domain.EmptyValue(domain.AttributeTypeTable)
		}
		var decoded []any
		if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
			return domain.EmptyValue(domain.AttributeTypeTable)
		}
		return parseTable(decoded)
	}
	return domain.EmptyValue(domain.AttributeTypeTable)
}

func parseJSONDoc(attrType domain.AttributeType, raw any) domain.Value {
	doc := raw
	if s, ok := raw.(string); ok {
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return domain.EmptyValue(attrType)
		}
		doc = decoded
	}
	if doc == nil {
		return domain.EmptyValue(attrType)
	}

	switch attrType {
	case domain.AttributeTypeObject:
		if _, ok := doc.(map[string]any); !ok {
			return domain.EmptyValue(attrType)
		}
	case domain.AttributeTypeArray:
		switch typed := doc.(type) {
		case []any:
		case []string:
			converted := make([]any, len(typed))
			for i, s := range typed {
				converted[i] = s
			}
			doc = converted
		default:
			return domain.EmptyValue(attrType)
		}
	}
	return domain.JSONValue(attrType, doc)
}

// serializeJSONDoc keeps string documents round-trippable: a bare string doc
// is re-encoded so Parse's JSON decoding recovers it instead of rejecting it.
func serializeJSONDoc(doc any) any {
	if s, ok := doc.(string); ok {
		encoded, err := json.Marshal(s)
		if err != nil {
			return nil
		}
		return string(encoded)
	}
	return doc
}

func scalarString(raw any) (string, bool) {
	switch typed := raw.(type) {
	case string:
		return typed, true
	case json.Number:
		return typed.String(), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32), true
	case int:
		return strconv.Itoa(typed), true
	case int32:
		return strconv.FormatInt(int64(typed), 10), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case bool:
		return strconv.FormatBool(typed), true
	}
	return "", false
}

func numberFrom(raw any) (float64, bool) {
	switch typed := raw.(type) {
	case float64:
		return typed, isFinite(typed)
	case float32:
		return float64(typed), isFinite(float64(typed))
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case json.Number:
		n, err := typed.Float64()
		return n, err == nil && isFinite(n)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return n, err == nil && isFinite(n)
	}
	return 0, false
}

func isFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

func stringifyCell(raw any) string {
	if s, ok := scalarString(raw); ok {
		return s
	}
	if raw == nil {
		return ""
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// splitList breaks a comma or newline separated shorthand into trimmed,
// non-empty entries.
func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	entries := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			entries = append(entries, trimmed)
		}
	}
	return entries
}

func copyNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
