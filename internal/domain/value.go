package domain

// PhoneNumber is the structured payload of a PHONE value. A phone value is
// empty exactly when Number is empty; CountryCode alone does not make it
// non-empty.
type PhoneNumber struct {
	CountryCode string `json:"countryCode"`
	Number      string `json:"number"`
}

// MoneyAmount is the structured payload of a MONEY value. AmountSet
// distinguishes a real zero amount from the empty sentinel.
type MoneyAmount struct {
	Amount    float64 `json:"amount"`
	AmountSet bool    `json:"-"`
	Currency  string  `json:"currency"`
}

// EntityReference is the structured payload of a REFERENCE value. It is valid
// only when EntityType and ReferenceID are both non-empty, or the whole value
// is empty.
type EntityReference struct {
	EntityType  string `json:"entityType"`
	ReferenceID string `json:"referenceId"`
	Label       string `json:"label,omitempty"`
}

// GeoPoint is the structured payload of a GEOPOINT value. Lat and Lng are
// meaningful only when Set is true; they always travel together.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	Set bool    `json:"-"`
}

// Value is the tagged union holding one structured attribute value. Kind
// selects which payload field is meaningful; all others stay at their zero
// value. The codec package owns every conversion in and out of this shape.
type Value struct {
	Kind AttributeType

	// Text carries every textual kind, including dates in their canonical
	// layout and the chosen option of a SELECT.
	Text string

	Number    float64
	NumberSet bool

	Bool    bool
	BoolSet bool

	// List carries MULTISELECT selections in order.
	List []string

	Phone     *PhoneNumber
	Money     *MoneyAmount
	Reference *EntityReference
	Geo       *GeoPoint

	// Table is rectangular: every row is padded to the widest row.
	Table [][]string

	// JSON carries the decoded document for JSON, OBJECT and ARRAY kinds.
	JSON any
}

// EmptyValue returns the canonical empty value for the given kind.
func EmptyValue(kind AttributeType) Value {
	return Value{Kind: kind}
}

// IsEmpty reports whether the value is its kind's empty sentinel.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case AttributeTypeNumber, AttributeTypeRating:
		return !v.NumberSet
	case AttributeTypeBoolean:
		return !v.BoolSet
	case AttributeTypeMultiSelect:
		return len(v.List) == 0
	case AttributeTypePhone:
		return v.Phone == nil || v.Phone.Number == ""
	case AttributeTypeMoney:
		return v.Money == nil || !v.Money.AmountSet
	case AttributeTypeReference:
		return v.Reference == nil || (v.Reference.EntityType == "" && v.Reference.ReferenceID == "")
	case AttributeTypeGeoPoint:
		return v.Geo == nil || !v.Geo.Set
	case AttributeTypeTable:
		return len(v.Table) == 0
	case AttributeTypeJSON, AttributeTypeObject, AttributeTypeArray:
		return v.JSON == nil
	default:
		return v.Text == ""
	}
}

// TextValue builds a textual value of the given kind.
func TextValue(kind AttributeType, text string) Value {
	return Value{Kind: kind, Text: text}
}

// NumberValue builds a NUMBER-kind value.
func NumberValue(kind AttributeType, n float64) Value {
	return Value{Kind: kind, Number: n, NumberSet: true}
}

// BoolValue builds a BOOLEAN value.
func BoolValue(b bool) Value {
	return Value{Kind: AttributeTypeBoolean, Bool: b, BoolSet: true}
}

// MultiSelectValue builds a MULTISELECT value from the given selections.
func MultiSelectValue(selected []string) Value {
	if len(selected) == 0 {
		return EmptyValue(AttributeTypeMultiSelect)
	}
	return Value{Kind: AttributeTypeMultiSelect, List: selected}
}

// PhoneValue builds a PHONE value, normalizing the empty case.
func PhoneValue(countryCode, number string) Value {
	if number == "" {
		return EmptyValue(AttributeTypePhone)
	}
	return Value{Kind: AttributeTypePhone, Phone: &PhoneNumber{CountryCode: countryCode, Number: number}}
}

// MoneyValue builds a MONEY value with a set amount.
func MoneyValue(amount float64, currency string) Value {
	return Value{Kind: AttributeTypeMoney, Money: &MoneyAmount{Amount: amount, AmountSet: true, Currency: currency}}
}

// ReferenceValue builds a REFERENCE value, normalizing the empty case.
func ReferenceValue(entityType, referenceID, label string) Value {
	if entityType == "" && referenceID == "" {
		return EmptyValue(AttributeTypeReference)
	}
	return Value{Kind: AttributeTypeReference, Reference: &EntityReference{
		EntityType:  entityType,
		ReferenceID: referenceID,
		Label:       label,
	}}
}

// GeoPointValue builds a GEOPOINT value.
func GeoPointValue(lat, lng float64) Value {
	return Value{Kind: AttributeTypeGeoPoint, Geo: &GeoPoint{Lat: lat, Lng: lng, Set: true}}
}

// TableValue builds a TABLE value padded to rectangular shape.
func TableValue(rows [][]string) Value {
	if len(rows) == 0 {
		return EmptyValue(AttributeTypeTable)
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	padded := make([][]string, len(rows))
	for i, row := range rows {
		padded[i] = make([]string, width)
		copy(padded[i], row)
	}
	return Value{Kind: AttributeTypeTable, Table: padded}
}

// JSONValue builds a JSON/OBJECT/ARRAY value around a decoded document.
func JSONValue(kind AttributeType, doc any) Value {
	return Value{Kind: kind, JSON: doc}
}
