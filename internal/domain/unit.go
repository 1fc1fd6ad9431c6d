package domain

import "strings"

// Unit is the measure a package size is expressed in
type Unit string

const (
	UnitOunce      Unit = "oz"
	UnitMilliliter Unit = "ml"
	UnitGram       Unit = "g"
	UnitPound      Unit = "lb"
	UnitKilogram   Unit = "kg"
	UnitCount      Unit = "count"
)

// UnitOption pairs a unit with its form label
type UnitOption struct {
	Value Unit   `json:"value"`
	Label string `json:"label"`
}

var unitOptions = []UnitOption{
	{Value: UnitOunce, Label: "Ounces (oz)"},
	{Value: UnitMilliliter, Label: "Milliliters (ml)"},
	{Value: UnitGram, Label: "Grams (g)"},
	{Value: UnitPound, Label: "Pounds (lb)"},
	{Value: UnitKilogram, Label: "Kilograms (kg)"},
	{Value: UnitCount, Label: "Count/Items"},
}

// Units returns the supported units in form order
func Units() []UnitOption {
	out := make([]UnitOption, len(unitOptions))
	copy(out, unitOptions)
	return out
}

// Valid reports whether u is one of the supported units
func (u Unit) Valid() bool {
	switch u {
	case UnitOunce, UnitMilliliter, UnitGram, UnitPound, UnitKilogram, UnitCount:
		return true
	}
	return false
}

// IsCount reports whether u counts discrete items rather than mass or volume
func (u Unit) IsCount() bool {
	return u == UnitCount
}

// DisplayName is the per-unit label shown next to a unit price
func (u Unit) DisplayName() string {
	if u == UnitCount {
		return "item"
	}
	return string(u)
}

// ParseUnit converts a raw tag into a Unit
func ParseUnit(raw string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(raw)))
	if !u.Valid() {
		return "", ErrUnknownUnit
	}
	return u, nil
}
