package unit

import (
	"fmt"
	"math"

	"physprop/errs"
)

// Quantity is a numeric value paired with a physical unit. Quantities are
// immutable value records; conversions produce new values.
type Quantity struct {
	Value float64
	Unit  Unit
}

// NewQuantity creates a quantity from a value and a unit.
func NewQuantity(value float64, u Unit) Quantity {
	return Quantity{Value: value, Unit: u}
}

// ConvertTo converts the quantity to another unit via the fixed factor
// between the two. It fails with errs.ErrDimensionMismatch when the units
// are not dimensionally compatible.
func (q Quantity) ConvertTo(to Unit) (Quantity, error) {
	if !q.Unit.IsValid() || !to.IsValid() {
		return Quantity{}, fmt.Errorf("%w: conversion involving zero-value unit", errs.ErrInvalidUnit)
	}
	if !q.Unit.Compatible(to) {
		return Quantity{}, fmt.Errorf("%w: cannot convert %s (%s) to %s (%s)",
			errs.ErrDimensionMismatch, q.Unit, q.Unit.Dimension(), to, to.Dimension())
	}

	return Quantity{Value: q.Value * q.Unit.factor / to.factor, Unit: to}, nil
}

// BaseValue returns the magnitude of the quantity expressed in SI base
// units. Two compatible quantities compare equal exactly when their base
// values are equal.
func (q Quantity) BaseValue() float64 {
	return q.Value * q.Unit.factor
}

// Compatible reports whether the two quantities can be converted into one
// another.
func (q Quantity) Compatible(o Quantity) bool {
	return q.Unit.Compatible(o.Unit)
}

// compareEpsilon is the relative tolerance for Compare. Conversion factors
// are not exactly representable, so magnitudes within this relative distance
// are treated as equal.
const compareEpsilon = 1e-12

// Compare orders two dimensionally compatible quantities, returning -1, 0
// or 1. Magnitudes within a relative tolerance of 1e-12 compare equal. It
// fails with errs.ErrDimensionMismatch for incompatible units.
func (q Quantity) Compare(o Quantity) (int, error) {
	if !q.Compatible(o) {
		return 0, fmt.Errorf("%w: cannot compare %s to %s",
			errs.ErrDimensionMismatch, q.Unit, o.Unit)
	}

	a, b := q.BaseValue(), o.BaseValue()
	scale := math.Max(math.Abs(a), math.Abs(b))
	switch {
	case math.Abs(a-b) <= compareEpsilon*scale:
		return 0, nil
	case a < b:
		return -1, nil
	default:
		return 1, nil
	}
}

// Equal reports exact equality: same magnitude in the same unit. Use
// Compare for unit-insensitive comparison.
func (q Quantity) Equal(o Quantity) bool {
	return q.Value == o.Value && q.Unit.String() == o.Unit.String()
}

func (q Quantity) String() string {
	return fmt.Sprintf("%v %s", q.Value, q.Unit)
}
