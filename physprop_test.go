package physprop

import (
	"testing"

	"github.com/stretchr/testify/require"

	"physprop/dataset"
	"physprop/format"
	"physprop/property"
	"physprop/substance"
	"physprop/unit"
)

func buildDataSet(t *testing.T) *dataset.PhysicalPropertyDataSet {
	t.Helper()

	sub := substance.New()
	err := sub.AddComponent(
		substance.Component{Smiles: "CCO", Role: substance.RoleSolvent},
		substance.MoleFraction{Value: 1.0},
	)
	require.NoError(t, err)

	p, err := property.New(
		property.KindDensity, property.PhaseLiquid, sub,
		property.NewThermodynamicState(
			unit.NewQuantity(298.15, unit.Kelvin),
			unit.NewQuantity(101.325, unit.Kilopascal),
		),
		unit.NewQuantity(785.0, unit.KilogramPerCubicMeter),
		unit.NewQuantity(0.5, unit.KilogramPerCubicMeter),
		property.MeasurementSource{DOI: "10.1000/demo"},
	)
	require.NoError(t, err)

	ds := NewDataSet()
	require.NoError(t, ds.AddProperty(p))

	return ds
}

// TestEncodeParseDataSet verifies the JSON round trip through the top-level
// wrappers.
func TestEncodeParseDataSet(t *testing.T) {
	ds := buildDataSet(t)

	data, err := EncodeDataSet(ds)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := ParseDataSet(data)
	require.NoError(t, err)
	require.True(t, ds.Equal(decoded))
}

// TestArchiveRoundTrip verifies the framed archive round trip with a
// non-default compression option.
func TestArchiveRoundTrip(t *testing.T) {
	ds := buildDataSet(t)

	archive, err := WriteArchive(ds, dataset.WithCompression(format.CompressionLZ4))
	require.NoError(t, err)

	decoded, err := ReadArchive(archive)
	require.NoError(t, err)
	require.True(t, ds.Equal(decoded))
}

// TestSubstanceID verifies the wrapper matches Substance.ID.
func TestSubstanceID(t *testing.T) {
	ds := buildDataSet(t)

	identifier := ds.SubstanceIdentifiers()[0]
	require.Equal(t, "CCO{1.000000}", identifier)

	records := ds.PropertiesForSubstance(identifier)
	require.Len(t, records, 1)
	require.Equal(t, records[0].Substance.ID(), SubstanceID(identifier))
}
