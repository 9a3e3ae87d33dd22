package domain

// AttributeType is the closed enumeration of value kinds an attribute can
// hold. Every type maps to exactly one canonical Value shape and one
// parse/format/serialize triple in the codec package.
type AttributeType string

const (
	AttributeTypeText        AttributeType = "TEXT"
	AttributeTypeEmail       AttributeType = "EMAIL"
	AttributeTypeURL         AttributeType = "URL"
	AttributeTypeNumber      AttributeType = "NUMBER"
	AttributeTypeBoolean     AttributeType = "BOOLEAN"
	AttributeTypeDate        AttributeType = "DATE"
	AttributeTypeDateTime    AttributeType = "DATETIME"
	AttributeTypeTime        AttributeType = "TIME"
	AttributeTypeSelect      AttributeType = "SELECT"
	AttributeTypeMultiSelect AttributeType = "MULTISELECT"
	AttributeTypeReference   AttributeType = "REFERENCE"
	AttributeTypePhone       AttributeType = "PHONE"
	AttributeTypeMoney       AttributeType = "MONEY"
	AttributeTypeGeoPoint    AttributeType = "GEOPOINT"
	AttributeTypeColor       AttributeType = "COLOR"
	AttributeTypeRating      AttributeType = "RATING"
	AttributeTypeImage       AttributeType = "IMAGE"
	AttributeTypeFile        AttributeType = "FILE"
	AttributeTypeAttachment  AttributeType = "ATTACHMENT"
	AttributeTypeRichText    AttributeType = "RICH_TEXT"
	AttributeTypeJSON        AttributeType = "JSON"
	AttributeTypeBarcode     AttributeType = "BARCODE"
	AttributeTypeQR          AttributeType = "QR"
	AttributeTypeTable       AttributeType = "TABLE"
	AttributeTypeObject      AttributeType = "OBJECT"
	AttributeTypeArray       AttributeType = "ARRAY"
	AttributeTypeFormula     AttributeType = "FORMULA"
	AttributeTypeExpression  AttributeType = "EXPRESSION"
	AttributeTypeReadonly    AttributeType = "READONLY"
)

// AllAttributeTypes lists every known attribute type in declaration order.
func AllAttributeTypes() []AttributeType {
	return []AttributeType{
		AttributeTypeText, AttributeTypeEmail, AttributeTypeURL,
		AttributeTypeNumber, AttributeTypeBoolean, AttributeTypeDate,
		AttributeTypeDateTime, AttributeTypeTime, AttributeTypeSelect,
		AttributeTypeMultiSelect, AttributeTypeReference, AttributeTypePhone,
		AttributeTypeMoney, AttributeTypeGeoPoint, AttributeTypeColor,
		AttributeTypeRating, AttributeTypeImage, AttributeTypeFile,
		AttributeTypeAttachment, AttributeTypeRichText, AttributeTypeJSON,
		AttributeTypeBarcode, AttributeTypeQR, AttributeTypeTable,
		AttributeTypeObject, AttributeTypeArray, AttributeTypeFormula,
		AttributeTypeExpression, AttributeTypeReadonly,
	}
}

// IsKnownAttributeType reports whether t is part of the closed enumeration.
func IsKnownAttributeType(t AttributeType) bool {
	for _, known := range AllAttributeTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// UsesOptions reports whether the type draws its legal values from the
// attribute's configured option list.
func (t AttributeType) UsesOptions() bool {
	return t == AttributeTypeSelect || t == AttributeTypeMultiSelect
}

// IsNumeric reports whether the type's canonical value is a number.
func (t AttributeType) IsNumeric() bool {
	return t == AttributeTypeNumber || t == AttributeTypeRating
}

// IsTextual reports whether the type's canonical value is a bare string.
// SELECT counts: its value is one of the configured option strings.
func (t AttributeType) IsTextual() bool {
	switch t {
	case AttributeTypeText, AttributeTypeEmail, AttributeTypeURL,
		AttributeTypeDate, AttributeTypeDateTime, AttributeTypeTime,
		AttributeTypeSelect, AttributeTypeColor, AttributeTypeImage,
		AttributeTypeFile, AttributeTypeAttachment, AttributeTypeRichText,
		AttributeTypeBarcode, AttributeTypeQR, AttributeTypeFormula,
		AttributeTypeExpression, AttributeTypeReadonly:
		return true
	}
	return false
}

// IsJSONShaped reports whether the type holds an arbitrary parsed JSON value.
func (t AttributeType) IsJSONShaped() bool {
	return t == AttributeTypeJSON || t == AttributeTypeObject || t == AttributeTypeArray
}
