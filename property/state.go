package property

import (
	"fmt"

	"physprop/errs"
	"physprop/unit"
)

// ThermodynamicState is the temperature and pressure a property was
// measured at.
type ThermodynamicState struct {
	Temperature unit.Quantity
	Pressure    unit.Quantity
}

// NewThermodynamicState creates a state from a temperature and a pressure.
func NewThermodynamicState(temperature, pressure unit.Quantity) ThermodynamicState {
	return ThermodynamicState{Temperature: temperature, Pressure: pressure}
}

// Validate checks that both quantities are present with the right
// dimensions and strictly positive magnitudes.
func (s ThermodynamicState) Validate() error {
	if !s.Temperature.Unit.Compatible(unit.Kelvin) {
		return fmt.Errorf("%w: temperature has unit %q, expected a temperature unit",
			errs.ErrDimensionMismatch, s.Temperature.Unit)
	}
	if s.Temperature.Value <= 0 {
		return fmt.Errorf("%w: thermodynamic_state.temperature must be positive, got %v",
			errs.ErrMalformedRecord, s.Temperature.Value)
	}
	if !s.Pressure.Unit.Compatible(unit.Pascal) {
		return fmt.Errorf("%w: pressure has unit %q, expected a pressure unit",
			errs.ErrDimensionMismatch, s.Pressure.Unit)
	}
	if s.Pressure.Value <= 0 {
		return fmt.Errorf("%w: thermodynamic_state.pressure must be positive, got %v",
			errs.ErrMalformedRecord, s.Pressure.Value)
	}

	return nil
}

func (s ThermodynamicState) String() string {
	return fmt.Sprintf("T=%s, P=%s", s.Temperature, s.Pressure)
}
