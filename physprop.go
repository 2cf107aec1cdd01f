// Package physprop provides a self-describing interchange format for curated
// physical property datasets.
//
// A dataset is a collection of measured (or estimated) physical properties —
// densities, enthalpies, dielectric constants — each recorded for a chemical
// substance at a defined thermodynamic state. Datasets serialize to tagged
// JSON in which every non-primitive value names its own type, and optionally
// into a compact framed archive with compression (None, Zstd, S2, LZ4).
//
// # Core Features
//
//   - Tagged, self-describing JSON with an extensible decoder registry
//   - Deterministic substance identifiers ("CCO{1.000000}") that key records
//   - Hash-based substance identification (64-bit xxHash64) for fast lookups
//   - Unit parsing, dimensional analysis, and quantity conversion
//   - Dataset merging deduplicated by record id, plus a filter family
//   - Framed archives with selectable compression
//
// # Basic Usage
//
// Building and serializing a dataset:
//
//	import "physprop"
//
//	sub := substance.New()
//	sub.AddComponent(
//	    substance.Component{Smiles: "CCO", Role: substance.RoleSolvent},
//	    substance.MoleFraction{Value: 1.0},
//	)
//
//	p, _ := property.New(
//	    property.KindDensity, property.PhaseLiquid, sub,
//	    property.NewThermodynamicState(
//	        unit.NewQuantity(298.15, unit.Kelvin),
//	        unit.NewQuantity(101.325, unit.Kilopascal),
//	    ),
//	    unit.NewQuantity(785.0, unit.KilogramPerCubicMeter),
//	    unit.NewQuantity(0.5, unit.KilogramPerCubicMeter),
//	    property.MeasurementSource{DOI: "10.1000/demo"},
//	)
//
//	ds := physprop.NewDataSet()
//	ds.AddProperty(p)
//
//	data, _ := physprop.EncodeDataSet(ds)
//	ds2, _ := physprop.ParseDataSet(data)
//
// Writing a compressed archive:
//
//	archive, _ := physprop.WriteArchive(ds)
//	ds3, _ := physprop.ReadArchive(archive)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the dataset
// package, simplifying the most common use cases. For fine-grained control —
// custom codecs, decoder registration, compression selection — use the
// dataset, property, substance and unit packages directly.
package physprop

import (
	"physprop/dataset"
	"physprop/internal/hash"
)

// NewDataSet creates an empty physical property dataset.
func NewDataSet() *dataset.PhysicalPropertyDataSet {
	return dataset.New()
}

// EncodeDataSet serializes a dataset to its canonical tagged JSON form.
func EncodeDataSet(ds *dataset.PhysicalPropertyDataSet) ([]byte, error) {
	return dataset.Encode(ds)
}

// ParseDataSet decodes a tagged JSON document into a dataset, verifying
// every substance key along the way.
func ParseDataSet(data []byte) (*dataset.PhysicalPropertyDataSet, error) {
	return dataset.Decode(data)
}

// WriteArchive serializes a dataset into a framed archive, compressed with
// Zstd by default.
func WriteArchive(ds *dataset.PhysicalPropertyDataSet, opts ...dataset.ArchiveOption) ([]byte, error) {
	return dataset.WriteArchive(ds, opts...)
}

// ReadArchive parses a framed archive and decodes the dataset it carries.
func ReadArchive(data []byte, opts ...dataset.ArchiveOption) (*dataset.PhysicalPropertyDataSet, error) {
	return dataset.ReadArchive(data, opts...)
}

// SubstanceID hashes a substance identifier with xxHash64, matching
// Substance.ID for the same identifier string.
func SubstanceID(identifier string) uint64 {
	return hash.ID(identifier)
}
