// Package property models individual physical property measurements: their
// kind, phase, thermodynamic state, measured value with uncertainty, and
// provenance.
//
// A PhysicalProperty is an immutable value record once constructed. New
// assigns a fresh UUID; records decoded from a dataset keep the identity
// they were serialized with, which is what dataset merging deduplicates on.
package property

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"physprop/errs"
	"physprop/substance"
	"physprop/unit"
)

// Gradient is the derivative of an estimated value with respect to one
// model parameter, identified by the parameter's key.
type Gradient struct {
	Key   string
	Value unit.Quantity
}

// PhysicalProperty is one measured (or estimated) physical property of a
// substance at a defined thermodynamic state.
type PhysicalProperty struct {
	ID          string
	Kind        Kind
	Phase       Phase
	Substance   *substance.Substance
	State       ThermodynamicState
	Value       unit.Quantity
	Uncertainty unit.Quantity
	Gradients   []Gradient
	Source      Source
	Metadata    map[string]any
}

// New creates a property record with a fresh UUID and validates it.
func New(kind Kind, phase Phase, sub *substance.Substance, state ThermodynamicState,
	value, uncertainty unit.Quantity, source Source,
) (*PhysicalProperty, error) {
	p := &PhysicalProperty{
		ID:          uuid.NewString(),
		Kind:        kind,
		Phase:       phase,
		Substance:   sub,
		State:       state,
		Value:       value,
		Uncertainty: uncertainty,
		Source:      source,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks the record's invariants: a known kind, defined phase
// flags, a valid substance and state, and value/uncertainty quantities
// whose dimensions match each other and the kind.
func (p *PhysicalProperty) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is empty", errs.ErrMalformedRecord)
	}
	if !p.Kind.IsValid() {
		return fmt.Errorf("%w: unknown property kind %d", errs.ErrMalformedRecord, p.Kind)
	}
	if !p.Phase.IsValid() {
		return fmt.Errorf("%w: phase %d uses undefined flags", errs.ErrMalformedRecord, p.Phase)
	}
	if p.Substance == nil {
		return fmt.Errorf("%w: substance is missing", errs.ErrMalformedRecord)
	}
	if err := p.Substance.Validate(); err != nil {
		return err
	}
	if err := p.State.Validate(); err != nil {
		return err
	}

	if dim := p.Value.Unit.Dimension(); dim != p.Kind.Dimension() {
		return fmt.Errorf("%w: %s value has unit %q (%s), expected %s",
			errs.ErrDimensionMismatch, p.Kind, p.Value.Unit, dim, p.Kind.Dimension())
	}
	if !p.Uncertainty.Unit.Compatible(p.Value.Unit) {
		return fmt.Errorf("%w: uncertainty unit %q is incompatible with value unit %q",
			errs.ErrDimensionMismatch, p.Uncertainty.Unit, p.Value.Unit)
	}

	for i, g := range p.Gradients {
		if g.Key == "" {
			return fmt.Errorf("%w: gradients[%d].key is empty", errs.ErrMalformedRecord, i)
		}
	}

	return nil
}

// Equal reports value equality of two records, with set semantics for the
// substance's amount specifications. Provenance sources and metadata are
// part of the comparison.
func (p *PhysicalProperty) Equal(o *PhysicalProperty) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.ID != o.ID || p.Kind != o.Kind || p.Phase != o.Phase {
		return false
	}
	if !p.Substance.Equal(o.Substance) {
		return false
	}
	if !p.State.Temperature.Equal(o.State.Temperature) || !p.State.Pressure.Equal(o.State.Pressure) {
		return false
	}
	if !p.Value.Equal(o.Value) || !p.Uncertainty.Equal(o.Uncertainty) {
		return false
	}
	if len(p.Gradients) != len(o.Gradients) {
		return false
	}
	for i := range p.Gradients {
		if p.Gradients[i].Key != o.Gradients[i].Key || !p.Gradients[i].Value.Equal(o.Gradients[i].Value) {
			return false
		}
	}
	if !EqualSources(p.Source, o.Source) {
		return false
	}

	return plainMapEqual(p.Metadata, o.Metadata)
}

// EqualSources reports value equality of two provenance sources, including
// their concrete variant.
func EqualSources(a, b Source) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case MeasurementSource:
		bv, ok := b.(MeasurementSource)
		return ok && av == bv
	case CalculationSource:
		bv, ok := b.(CalculationSource)
		return ok && av.Fidelity == bv.Fidelity && plainMapEqual(av.Provenance, bv.Provenance)
	default:
		return false
	}
}

// plainMapEqual compares metadata-style maps, treating nil and empty as the
// same value; the serialized form cannot distinguish them.
func plainMapEqual(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}

	return reflect.DeepEqual(a, b)
}

func (p *PhysicalProperty) String() string {
	return fmt.Sprintf("%s of %s at %s [%s]", p.Kind, p.Substance, p.State, p.Phase)
}
