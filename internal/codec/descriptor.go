package codec

import (
	"github.com/ycetindil/attrio/internal/domain"
)

// Mode selects between an interactive control and a read-only display.
type Mode string

const (
	ModeEdit Mode = "edit"
	ModeView Mode = "view"
)

// Control names the abstract widget class a field binds to. The presentation
// layer maps these onto whatever widget set it has.
type Control string

const (
	ControlText        Control = "text"
	ControlTextarea    Control = "textarea"
	ControlNumber      Control = "number"
	ControlCheckbox    Control = "checkbox"
	ControlDate        Control = "date"
	ControlDateTime    Control = "datetime"
	ControlTime        Control = "time"
	ControlSelect      Control = "select"
	ControlMultiSelect Control = "multiselect"
	ControlComposite   Control = "composite"
	ControlRating      Control = "rating"
	ControlColor       Control = "color"
	ControlFile        Control = "file"
	ControlStatic      Control = "static"
)

// FieldDescriptor is the abstract rendering contract for one attribute value:
// which control class to bind, under which constraints, with the current
// value in both serialized and display form.
type FieldDescriptor struct {
	Key         string               `json:"key"`
	Label       string               `json:"label"`
	Type        domain.AttributeType `json:"type"`
	Mode        Mode                 `json:"mode"`
	Control     Control              `json:"control"`
	Required    bool                 `json:"required"`
	Options     []string             `json:"options,omitempty"`
	Constraints map[string]any       `json:"constraints,omitempty"`
	Value       any                  `json:"value,omitempty"`
	Display     string               `json:"display"`
}

// Describe maps an attribute and its current value onto a field descriptor.
// Pure over its inputs; readonly forces view mode, as does the READONLY type.
func (c *Codec) Describe(attr domain.Attribute, v domain.Value, mode Mode, readonly bool) FieldDescriptor {
	if readonly || attr.Type == domain.AttributeTypeReadonly || mode != ModeEdit {
		mode = ModeView
	}
	return FieldDescriptor{
		Key:         attr.Key,
		Label:       attr.Name,
		Type:        attr.Type,
		Mode:        mode,
		Control:     controlFor(attr.Type),
		Required:    attr.Required,
		Options:     attr.Options,
		Constraints: attr.Validation,
		Value:       c.Serialize(v),
		Display:     c.Format(v),
	}
}

func controlFor(attrType domain.AttributeType) Control {
	switch attrType {
	case domain.AttributeTypeNumber:
		return ControlNumber
	case domain.AttributeTypeBoolean:
		return ControlCheckbox
	case domain.AttributeTypeDate:
		return ControlDate
	case domain.AttributeTypeDateTime:
		return ControlDateTime
	case domain.AttributeTypeTime:
		return ControlTime
	case domain.AttributeTypeSelect:
		return ControlSelect
	case domain.AttributeTypeMultiSelect:
		return ControlMultiSelect
	case domain.AttributeTypeRating:
		return ControlRating
	case domain.AttributeTypeColor:
		return ControlColor
	case domain.AttributeTypeImage, domain.AttributeTypeFile, domain.AttributeTypeAttachment:
		return ControlFile
	case domain.AttributeTypeRichText, domain.AttributeTypeJSON,
		domain.AttributeTypeObject, domain.AttributeTypeArray:
		return ControlTextarea
	case domain.AttributeTypePhone, domain.AttributeTypeMoney,
		domain.AttributeTypeReference, domain.AttributeTypeGeoPoint,
		domain.AttributeTypeTable:
		return ControlComposite
	case domain.AttributeTypeFormula, domain.AttributeTypeExpression,
		domain.AttributeTypeReadonly:
		return ControlStatic
	default:
		return ControlText
	}
}
