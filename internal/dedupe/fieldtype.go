package dedupe

import (
	"fmt"
	"strings"
)

// FieldType selects the normalization class and thresholds used by the
// field comparator.
type FieldType int

const (
	FieldName FieldType = iota
	FieldStreet
	FieldHouseNumber
	FieldPoBox
	FieldUnit
	FieldFloor
	FieldPostalCode

	numFieldTypes
)

var fieldTypeNames = [numFieldTypes]string{
	FieldName:        "name",
	FieldStreet:      "street",
	FieldHouseNumber: "house_number",
	FieldPoBox:       "po_box",
	FieldUnit:        "unit",
	FieldFloor:       "floor",
	FieldPostalCode:  "postal_code",
}

// FieldTypes lists all field types in declaration order.
func FieldTypes() []FieldType {
	out := make([]FieldType, 0, numFieldTypes)
	for ft := FieldType(0); ft < numFieldTypes; ft++ {
		out = append(out, ft)
	}
	return out
}

func (ft FieldType) String() string {
	if ft.valid() {
		return fieldTypeNames[ft]
	}
	return fmt.Sprintf("FieldType(%d)", int(ft))
}

func (ft FieldType) valid() bool {
	return ft >= 0 && ft < numFieldTypes
}

// IsNumeric reports whether ft is compared as a short alphanumeric token
// rather than free text.
func (ft FieldType) IsNumeric() bool {
	switch ft {
	case FieldHouseNumber, FieldPoBox, FieldUnit, FieldFloor, FieldPostalCode:
		return true
	}
	return false
}

// ParseFieldType accepts the snake_case names returned by String.
func ParseFieldType(name string) (FieldType, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for ft, s := range fieldTypeNames {
		if s == n {
			return FieldType(ft), nil
		}
	}
	return FieldName, fmt.Errorf("%w: unknown field type %q", ErrInvalidInput, name)
}

// labelFieldTypes maps libpostal parser labels (and a few common aliases)
// to a comparator. Labels not listed here are toponym names.
var labelFieldTypes = map[string]FieldType{
	"house":        FieldName,
	"name":         FieldName,
	"road":         FieldStreet,
	"street":       FieldStreet,
	"house_number": FieldHouseNumber,
	"po_box":       FieldPoBox,
	"unit":         FieldUnit,
	"staircase":    FieldUnit,
	"entrance":     FieldUnit,
	"level":        FieldFloor,
	"floor":        FieldFloor,
	"postcode":     FieldPostalCode,
	"postal_code":  FieldPostalCode,
}

// FieldTypeForLabel returns the field type implied by a component label.
func FieldTypeForLabel(label string) FieldType {
	if ft, ok := labelFieldTypes[strings.ToLower(strings.TrimSpace(label))]; ok {
		return ft
	}
	return FieldName
}
