package dataset

import (
	"fmt"
	"sort"

	"physprop/errs"
	"physprop/property"
	"physprop/unit"
)

// PhysicalPropertyDataSet is a curated collection of physical property
// records, partitioned by substance identifier, plus the provenance sources
// the records were gathered from.
type PhysicalPropertyDataSet struct {
	properties map[string][]*property.PhysicalProperty
	sources    []property.Source
}

// New creates an empty dataset.
func New() *PhysicalPropertyDataSet {
	return &PhysicalPropertyDataSet{
		properties: make(map[string][]*property.PhysicalProperty),
	}
}

// AddProperty validates a record and files it under its substance's
// identifier.
func (d *PhysicalPropertyDataSet) AddProperty(p *property.PhysicalProperty) error {
	if err := p.Validate(); err != nil {
		return err
	}

	key := p.Substance.Identifier()
	d.properties[key] = append(d.properties[key], p)

	return nil
}

// AddSource appends a provenance source.
func (d *PhysicalPropertyDataSet) AddSource(s property.Source) {
	d.sources = append(d.sources, s)
}

// Properties returns the records partitioned by substance identifier. The
// returned map is owned by the dataset and must not be modified.
func (d *PhysicalPropertyDataSet) Properties() map[string][]*property.PhysicalProperty {
	return d.properties
}

// PropertiesForSubstance returns the records stored under a substance
// identifier, or nil when the identifier is unknown.
func (d *PhysicalPropertyDataSet) PropertiesForSubstance(identifier string) []*property.PhysicalProperty {
	return d.properties[identifier]
}

// SubstanceIdentifiers returns the substance keys in sorted order.
func (d *PhysicalPropertyDataSet) SubstanceIdentifiers() []string {
	keys := make([]string, 0, len(d.properties))
	for key := range d.properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

// Sources returns the provenance sources in insertion order.
func (d *PhysicalPropertyDataSet) Sources() []property.Source {
	return d.sources
}

// NumberOfProperties returns the total record count across all substances.
func (d *PhysicalPropertyDataSet) NumberOfProperties() int {
	count := 0
	for _, records := range d.properties {
		count += len(records)
	}

	return count
}

// Merge folds another dataset into this one. Records are deduplicated by
// id: a record whose id is already present is presumed to be an exact
// duplicate and skipped. Sources are concatenated.
func (d *PhysicalPropertyDataSet) Merge(other *PhysicalPropertyDataSet) {
	if other == nil {
		return
	}

	seen := make(map[string]struct{}, d.NumberOfProperties())
	for _, records := range d.properties {
		for _, p := range records {
			seen[p.ID] = struct{}{}
		}
	}

	for key, records := range other.properties {
		for _, p := range records {
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			d.properties[key] = append(d.properties[key], p)
		}
	}

	d.sources = append(d.sources, other.sources...)
}

// FilterByFunction keeps only the records the given predicate accepts.
// Substances left without records are dropped from the partition map.
func (d *PhysicalPropertyDataSet) FilterByFunction(keep func(*property.PhysicalProperty) bool) {
	filtered := make(map[string][]*property.PhysicalProperty, len(d.properties))
	for key, records := range d.properties {
		kept := records[:0:0]
		for _, p := range records {
			if keep(p) {
				kept = append(kept, p)
			}
		}
		if len(kept) > 0 {
			filtered[key] = kept
		}
	}

	d.properties = filtered
}

// FilterByKinds keeps only records of the given property kinds.
func (d *PhysicalPropertyDataSet) FilterByKinds(kinds ...property.Kind) {
	wanted := make(map[property.Kind]struct{}, len(kinds))
	for _, k := range kinds {
		wanted[k] = struct{}{}
	}

	d.FilterByFunction(func(p *property.PhysicalProperty) bool {
		_, ok := wanted[p.Kind]
		return ok
	})
}

// FilterByPhases keeps only records whose phase overlaps the given flags.
func (d *PhysicalPropertyDataSet) FilterByPhases(phases property.Phase) {
	d.FilterByFunction(func(p *property.PhysicalProperty) bool {
		return p.Phase&phases != 0
	})
}

// FilterByTemperature keeps only records measured between the two
// temperatures, inclusive. It fails with errs.ErrDimensionMismatch when the
// bounds are not temperatures.
func (d *PhysicalPropertyDataSet) FilterByTemperature(minTemperature, maxTemperature unit.Quantity) error {
	return d.filterByStateRange(minTemperature, maxTemperature,
		func(p *property.PhysicalProperty) unit.Quantity { return p.State.Temperature })
}

// FilterByPressure keeps only records measured between the two pressures,
// inclusive. It fails with errs.ErrDimensionMismatch when the bounds are
// not pressures.
func (d *PhysicalPropertyDataSet) FilterByPressure(minPressure, maxPressure unit.Quantity) error {
	return d.filterByStateRange(minPressure, maxPressure,
		func(p *property.PhysicalProperty) unit.Quantity { return p.State.Pressure })
}

func (d *PhysicalPropertyDataSet) filterByStateRange(lower, upper unit.Quantity,
	quantity func(*property.PhysicalProperty) unit.Quantity,
) error {
	if !lower.Compatible(upper) {
		return fmt.Errorf("%w: range bounds %s and %s are incompatible",
			errs.ErrDimensionMismatch, lower.Unit, upper.Unit)
	}

	var rangeErr error
	d.FilterByFunction(func(p *property.PhysicalProperty) bool {
		if rangeErr != nil {
			return true
		}

		q := quantity(p)
		belowLower, err := q.Compare(lower)
		if err != nil {
			rangeErr = err
			return true
		}
		aboveUpper, err := q.Compare(upper)
		if err != nil {
			rangeErr = err
			return true
		}

		return belowLower >= 0 && aboveUpper <= 0
	})

	return rangeErr
}

// FilterByComponentCount keeps only records whose substance has exactly the
// given number of components.
func (d *PhysicalPropertyDataSet) FilterByComponentCount(count int) {
	d.FilterByFunction(func(p *property.PhysicalProperty) bool {
		return p.Substance.NumberOfComponents() == count
	})
}

// FilterBySmiles keeps only records whose substance is composed entirely of
// components drawn from the allowed SMILES patterns.
func (d *PhysicalPropertyDataSet) FilterBySmiles(allowed ...string) {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, smiles := range allowed {
		allowedSet[smiles] = struct{}{}
	}

	d.FilterByFunction(func(p *property.PhysicalProperty) bool {
		for _, c := range p.Substance.Components() {
			if _, ok := allowedSet[c.Smiles]; !ok {
				return false
			}
		}

		return true
	})
}

// Validate checks every record and that each one is filed under the key its
// substance renders to.
func (d *PhysicalPropertyDataSet) Validate() error {
	for key, records := range d.properties {
		for i, p := range records {
			if err := p.Validate(); err != nil {
				return fmt.Errorf("properties[%q][%d]: %w", key, i, err)
			}
			if identifier := p.Substance.Identifier(); identifier != key {
				return fmt.Errorf("%w: properties[%q][%d] renders to %q",
					errs.ErrKeyMismatch, key, i, identifier)
			}
		}
	}

	return nil
}

// Equal reports value equality of two datasets: the same sources in the
// same order, and the same records per substance compared order-insensitively
// with set semantics for amount specifications.
func (d *PhysicalPropertyDataSet) Equal(o *PhysicalPropertyDataSet) bool {
	if d == nil || o == nil {
		return d == o
	}
	if len(d.properties) != len(o.properties) || len(d.sources) != len(o.sources) {
		return false
	}
	for i := range d.sources {
		if !property.EqualSources(d.sources[i], o.sources[i]) {
			return false
		}
	}

	for key, records := range d.properties {
		others := o.properties[key]
		if len(others) != len(records) {
			return false
		}
		byID := make(map[string]*property.PhysicalProperty, len(others))
		for _, p := range others {
			byID[p.ID] = p
		}
		for _, p := range records {
			if !p.Equal(byID[p.ID]) {
				return false
			}
		}
	}

	return true
}
