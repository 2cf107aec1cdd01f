package substance

import (
	"fmt"
	"sort"
)

// Amount is one specification of how much of a component a substance
// contains. The two variants are MoleFraction and ExactAmount; both are
// small comparable value types, so Amounts can key maps and live in sets.
type Amount interface {
	// render writes the amount suffix used in substance identifiers,
	// e.g. "{0.740000}" for a mole fraction or "(2)" for an exact amount.
	render() string

	isAmount()
}

// MoleFraction expresses a component's amount as its fraction of the total
// moles in the mixture. All mole fractions of a substance sum to one.
type MoleFraction struct {
	Value float64
}

func (MoleFraction) isAmount() {}

// Mole fractions render to six decimal places; the fixed precision keeps
// substance identifiers reproducible across writers.
func (m MoleFraction) render() string {
	return fmt.Sprintf("{%.6f}", m.Value)
}

func (m MoleFraction) String() string {
	return fmt.Sprintf("MoleFraction(%v)", m.Value)
}

// ExactAmount expresses a component's amount as an exact number of
// molecules, used for solutes such as single ligands.
type ExactAmount struct {
	Value int
}

func (ExactAmount) isAmount() {}

func (e ExactAmount) render() string {
	return fmt.Sprintf("(%d)", e.Value)
}

func (e ExactAmount) String() string {
	return fmt.Sprintf("ExactAmount(%d)", e.Value)
}

// AmountSet is an unordered set of Amounts keyed by value equality. The
// serialized form stores members as an ordered list, but that order is an
// artifact of serialization; consumers must never attach meaning to it.
type AmountSet map[Amount]struct{}

// NewAmountSet creates a set holding the given amounts.
func NewAmountSet(amounts ...Amount) AmountSet {
	s := make(AmountSet, len(amounts))
	for _, a := range amounts {
		s[a] = struct{}{}
	}

	return s
}

// Add inserts an amount into the set.
func (s AmountSet) Add(a Amount) {
	s[a] = struct{}{}
}

// Contains reports whether the set holds the given amount.
func (s AmountSet) Contains(a Amount) bool {
	_, ok := s[a]
	return ok
}

// Equal reports set equality, independent of any serialization order.
func (s AmountSet) Equal(o AmountSet) bool {
	if len(s) != len(o) {
		return false
	}
	for a := range s {
		if !o.Contains(a) {
			return false
		}
	}

	return true
}

// Sorted returns the members in canonical order: mole fractions before
// exact amounts, each ascending by value. Used wherever a deterministic
// rendering of the set is needed.
func (s AmountSet) Sorted() []Amount {
	amounts := make([]Amount, 0, len(s))
	for a := range s {
		amounts = append(amounts, a)
	}
	sort.Slice(amounts, func(i, j int) bool {
		return amountLess(amounts[i], amounts[j])
	})

	return amounts
}

func amountLess(a, b Amount) bool {
	af, aIsFraction := a.(MoleFraction)
	bf, bIsFraction := b.(MoleFraction)
	if aIsFraction != bIsFraction {
		return aIsFraction
	}
	if aIsFraction {
		return af.Value < bf.Value
	}

	return a.(ExactAmount).Value < b.(ExactAmount).Value
}
