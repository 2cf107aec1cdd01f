// Package substance models chemical mixtures: their components, the roles
// those components play, and tagged amount specifications held in genuine
// unordered sets.
//
// A substance's identity is its rendered identifier, a pure function of its
// component list:
//
//	sub := substance.New()
//	sub.AddComponent(substance.Component{Smiles: "CCO", Role: substance.RoleSolvent},
//	    substance.MoleFraction{Value: 1.0})
//	sub.Identifier() // "CCO{1.000000}"
//
// Components are sorted by label before rendering, so the same mixture
// always produces the same identifier regardless of insertion order. The
// identifier is load-bearing: datasets key their property records by it.
package substance

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"physprop/errs"
	"physprop/internal/hash"
)

// moleFractionTolerance is the absolute tolerance within which the mole
// fractions of a substance must sum to one.
const moleFractionTolerance = 1e-6

// Component is one chemical species of a substance, identified by its
// SMILES pattern and classified by its role in the mixture.
type Component struct {
	Smiles string
	Role   Role
}

// Label returns the key under which the component's amounts are stored.
func (c Component) Label() string {
	return c.Smiles
}

func (c Component) String() string {
	return fmt.Sprintf("%s [%s]", c.Smiles, c.Role)
}

// Substance is a chemical mixture: an ordered sequence of components plus a
// set of amount specifications per component label. Once fully built it is
// treated as an immutable value record.
type Substance struct {
	components []Component
	amounts    map[string]AmountSet
}

// New creates an empty substance.
func New() *Substance {
	return &Substance{
		amounts: make(map[string]AmountSet),
	}
}

// AddComponent appends a component together with its amounts. Adding a
// component whose label is already present fails with
// errs.ErrDuplicateComponent; adding one without any amount fails with
// errs.ErrMalformedRecord.
func (s *Substance) AddComponent(c Component, amounts ...Amount) error {
	if c.Smiles == "" {
		return fmt.Errorf("%w: component with empty smiles", errs.ErrMalformedRecord)
	}
	if !c.Role.IsValid() {
		return fmt.Errorf("%w: component %q has unknown role %q", errs.ErrMalformedRecord, c.Smiles, c.Role)
	}
	if len(amounts) == 0 {
		return fmt.Errorf("%w: component %q has no amounts", errs.ErrMalformedRecord, c.Smiles)
	}
	if _, exists := s.amounts[c.Label()]; exists {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateComponent, c.Label())
	}

	s.components = append(s.components, c)
	s.amounts[c.Label()] = NewAmountSet(amounts...)

	return nil
}

// Components returns the components in insertion order. The returned slice
// is owned by the substance and must not be modified.
func (s *Substance) Components() []Component {
	return s.components
}

// NumberOfComponents returns how many components the substance has.
func (s *Substance) NumberOfComponents() int {
	return len(s.components)
}

// Amounts returns the amount set stored for a component label, or nil when
// the label is unknown.
func (s *Substance) Amounts(label string) AmountSet {
	return s.amounts[label]
}

// Identifier renders the deterministic string key of the substance:
// components sorted by label, each label followed by its amounts in
// canonical order ("{0.740000}" for mole fractions, "(2)" for exact
// amounts), joined by "|":
//
//	C(CO)CO{0.740000}|O{0.260000}
//
// The identifier is recomputed from the component list on every call and is
// never stored, so it cannot drift from the substance it names.
func (s *Substance) Identifier() string {
	sorted := make([]Component, len(s.components))
	copy(sorted, s.components)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Label() < sorted[j].Label()
	})

	var b strings.Builder
	for i, c := range sorted {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(c.Label())
		for _, a := range s.amounts[c.Label()].Sorted() {
			b.WriteString(a.render())
		}
	}

	return b.String()
}

// ID returns the xxHash64 of the identifier, a fixed-size handle for fast
// lookups. The string identifier remains the authoritative identity.
func (s *Substance) ID() uint64 {
	return hash.ID(s.Identifier())
}

// Validate checks the structural invariants of the substance: at least one
// component, an amount set for every component label, mole fractions inside
// (0, 1], and a mole-fraction sum of one within tolerance.
func (s *Substance) Validate() error {
	if len(s.components) == 0 {
		return fmt.Errorf("%w: substance has no components", errs.ErrMalformedRecord)
	}

	fractionSum := 0.0
	fractionCount := 0
	for _, c := range s.components {
		set := s.amounts[c.Label()]
		if len(set) == 0 {
			return fmt.Errorf("%w: component %q has no amounts", errs.ErrMalformedRecord, c.Label())
		}

		for a := range set {
			fraction, ok := a.(MoleFraction)
			if !ok {
				continue
			}
			if fraction.Value <= 0 || fraction.Value > 1 {
				return fmt.Errorf("%w: component %q has mole fraction %v",
					errs.ErrInvalidMoleFraction, c.Label(), fraction.Value)
			}
			fractionSum += fraction.Value
			fractionCount++
		}
	}

	if fractionCount > 0 && math.Abs(fractionSum-1.0) > moleFractionTolerance {
		return fmt.Errorf("%w: mole fractions sum to %v, expected 1.0",
			errs.ErrInvalidMoleFraction, fractionSum)
	}

	return nil
}

// Equal reports whether two substances describe the same mixture: the same
// labelled components with the same roles and equal amount sets, regardless
// of component order.
func (s *Substance) Equal(o *Substance) bool {
	if s == nil || o == nil {
		return s == o
	}
	if len(s.components) != len(o.components) {
		return false
	}

	roles := make(map[string]Role, len(o.components))
	for _, c := range o.components {
		roles[c.Label()] = c.Role
	}

	for _, c := range s.components {
		role, ok := roles[c.Label()]
		if !ok || role != c.Role {
			return false
		}
		if !s.amounts[c.Label()].Equal(o.amounts[c.Label()]) {
			return false
		}
	}

	return true
}

func (s *Substance) String() string {
	return s.Identifier()
}
