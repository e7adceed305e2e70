package acquisition

import (
	"strings"
	"time"

	"procurement/internal/core/apperror"
	"procurement/internal/core/types"
)

// Field names as exposed on the wire, in the order they are checked.
const (
	FieldBudget          = "budget"
	FieldUnit            = "unit"
	FieldType            = "type"
	FieldQuantity        = "quantity"
	FieldUnitValue       = "unitValue"
	FieldAcquisitionDate = "acquisitionDate"
	FieldProvider        = "provider"
	FieldDocumentation   = "documentation"
	FieldActive          = "active"
)

// dateLayouts are the accepted acquisition date formats.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	"2006/01/02",
}

type namedValue struct {
	name  string
	value any
}

// Validate checks p and converts it into a typed Input.
//
// Checks run in a fixed order and stop at the first violation:
// required fields, then numeric fields, then the date, then the type of
// text fields.
func Validate(p Payload) (Input, error) {
	required := []namedValue{
		{FieldBudget, p.Budget},
		{FieldUnit, p.Unit},
		{FieldType, p.Type},
		{FieldQuantity, p.Quantity},
		{FieldUnitValue, p.UnitValue},
		{FieldAcquisitionDate, p.AcquisitionDate},
		{FieldProvider, p.Provider},
	}
	for _, f := range required {
		if isMissing(f.value) {
			return Input{}, apperror.NewRequiredField(f.name)
		}
	}

	var amounts [3]types.Money
	for i, f := range []namedValue{
		{FieldBudget, p.Budget},
		{FieldQuantity, p.Quantity},
		{FieldUnitValue, p.UnitValue},
	} {
		m, ok := types.ParseMoney(f.value)
		if !ok {
			return Input{}, apperror.NewNotNumeric(f.name)
		}
		amounts[i] = m
	}

	date, ok := p.AcquisitionDate.(string)
	if !ok || !IsValidDate(date) {
		return Input{}, apperror.NewInvalidDate(FieldAcquisitionDate)
	}

	var text [4]string
	for i, f := range []namedValue{
		{FieldUnit, p.Unit},
		{FieldType, p.Type},
		{FieldProvider, p.Provider},
		{FieldDocumentation, p.Documentation},
	} {
		if f.value == nil {
			continue
		}
		s, ok := f.value.(string)
		if !ok {
			return Input{}, apperror.NewNotString(f.name)
		}
		text[i] = strings.TrimSpace(s)
	}

	return Input{
		Budget:          amounts[0],
		Unit:            text[0],
		Type:            text[1],
		Quantity:        amounts[1],
		UnitValue:       amounts[2],
		AcquisitionDate: date,
		Provider:        text[2],
		Documentation:   text[3],
	}, nil
}

func isMissing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// IsValidDate reports whether s parses as a calendar date in one of the
// accepted layouts.
func IsValidDate(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
