package dataset

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"physprop/errs"
	"physprop/property"
	"physprop/substance"
	"physprop/unit"
)

func TestCodecRoundTrip(t *testing.T) {
	ds := testDataSet(t)

	data, err := Encode(ds)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.True(t, ds.Equal(decoded))
	require.Equal(t, ds.SubstanceIdentifiers(), decoded.SubstanceIdentifiers())
}

func TestCodecEncodeIsDeterministic(t *testing.T) {
	ds := testDataSet(t)

	first, err := Encode(ds)
	require.NoError(t, err)
	second, err := Encode(ds)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestCodecEncodeRejectsInvalidDataSet(t *testing.T) {
	ds := testDataSet(t)
	ds.properties["CO{1.000000}"] = ds.properties["CCO{1.000000}"]
	delete(ds.properties, "CCO{1.000000}")

	_, err := Encode(ds)
	require.ErrorIs(t, err, errs.ErrKeyMismatch)
}

// A hand-written document exercising the full wire shape: tagged quantities,
// frozenset amounts, phase flags, and a density in kilograms per cubic meter.
const densityFixture = `{
	"@type": "propertyestimator.datasets.datasets.PhysicalPropertyDataSet",
	"properties": {
		"CCO{1.000000}": [{
			"@type": "propertyestimator.properties.density.Density",
			"id": "a7f8de12-4c1b-4f29-9be2-5b5f62a1d9c3",
			"phase": 2,
			"metadata": {},
			"gradients": [],
			"source": {
				"@type": "propertyestimator.properties.properties.MeasurementSource",
				"doi": "10.1021/example",
				"reference": ""
			},
			"substance": {
				"@type": "propertyestimator.substances.Substance",
				"components": [{
					"@type": "propertyestimator.substances.Substance->Component",
					"smiles": "CCO",
					"role": {
						"@type": "propertyestimator.substances.Substance->ComponentRole",
						"value": "Solvent"
					}
				}],
				"amounts": {
					"CCO": {
						"@type": "builtins.frozenset",
						"value": [{
							"@type": "propertyestimator.substances.Substance->MoleFraction",
							"value": 1.0
						}]
					}
				}
			},
			"thermodynamic_state": {
				"@type": "propertyestimator.thermodynamics.ThermodynamicState",
				"temperature": {"@type": "propertyestimator.unit.Quantity", "unit": "kelvin", "value": 298.15},
				"pressure": {"@type": "propertyestimator.unit.Quantity", "unit": "kilopascal", "value": 101.325}
			},
			"uncertainty": {"@type": "propertyestimator.unit.Quantity", "unit": "kilogram / meter ** 3", "value": 0.0},
			"value": {"@type": "propertyestimator.unit.Quantity", "unit": "kilogram / meter ** 3", "value": 785.0}
		}]
	},
	"sources": []
}`

func TestCodecDecodeFixture(t *testing.T) {
	ds, err := Decode([]byte(densityFixture))
	require.NoError(t, err)
	require.Equal(t, 1, ds.NumberOfProperties())

	records := ds.PropertiesForSubstance("CCO{1.000000}")
	require.Len(t, records, 1)

	p := records[0]
	require.Equal(t, "a7f8de12-4c1b-4f29-9be2-5b5f62a1d9c3", p.ID)
	require.Equal(t, property.KindDensity, p.Kind)
	require.Equal(t, property.PhaseLiquid, p.Phase)
	require.Equal(t, property.MeasurementSource{DOI: "10.1021/example"}, p.Source)
	require.InDelta(t, 298.15, p.State.Temperature.Value, 1e-12)

	converted, err := p.Value.ConvertTo(unit.GramPerCubicCentimeter)
	require.NoError(t, err)
	require.InDelta(t, 0.785, converted.Value, 1e-9)
}

func TestCodecDecodeFixtureRoundTrips(t *testing.T) {
	ds, err := Decode([]byte(densityFixture))
	require.NoError(t, err)

	data, err := Encode(ds)
	require.NoError(t, err)

	again, err := Decode(data)
	require.NoError(t, err)
	require.True(t, ds.Equal(again))
}

func TestCodecDecodeUnrecognizedType(t *testing.T) {
	doc := `{"@type": "totally.unknown.Type", "value": 1}`

	_, err := Decode([]byte(doc))
	require.ErrorIs(t, err, errs.ErrUnrecognizedType)
	require.ErrorContains(t, err, "totally.unknown.Type")
}

func TestCodecDecodeNestedUnrecognizedType(t *testing.T) {
	doc := `{
		"@type": "propertyestimator.datasets.datasets.PhysicalPropertyDataSet",
		"properties": {"CCO{1.000000}": [{"@type": "totally.unknown.Property"}]},
		"sources": []
	}`

	_, err := Decode([]byte(doc))
	require.ErrorIs(t, err, errs.ErrUnrecognizedType)
	require.ErrorContains(t, err, `properties["CCO{1.000000}"][0]`)
}

func TestCodecDecodeMissingField(t *testing.T) {
	doc := `{"@type": "propertyestimator.unit.Quantity", "unit": "kelvin"}`

	value, err := decodeValue([]byte(doc), "$")
	require.Nil(t, value)
	require.ErrorIs(t, err, errs.ErrMalformedRecord)
	require.ErrorContains(t, err, `missing field "value"`)
}

func TestCodecDecodeInvalidUnit(t *testing.T) {
	doc := `{"@type": "propertyestimator.unit.Quantity", "unit": "furlongs ** bogus", "value": 1.0}`

	_, err := decodeValue([]byte(doc), "$")
	require.ErrorIs(t, err, errs.ErrInvalidUnit)
}

func TestCodecDecodeNullUnitIsDimensionless(t *testing.T) {
	doc := `{"@type": "propertyestimator.unit.Quantity", "unit": null, "value": 78.5}`

	value, err := decodeValue([]byte(doc), "$")
	require.NoError(t, err)

	q, ok := value.(unit.Quantity)
	require.True(t, ok)
	require.Equal(t, unit.Dimensionless, q.Unit)
	require.Equal(t, 78.5, q.Value)
}

func TestCodecMetadataRoundTrip(t *testing.T) {
	metadata := `"metadata": {
				"curator": "nist",
				"viscosity_hint": {"@type": "propertyestimator.unit.Quantity", "unit": "pascal * second", "value": 0.0011},
				"trusted_amounts": {"@type": "builtins.frozenset", "value": [
					{"@type": "propertyestimator.substances.Substance->MoleFraction", "value": 1.0}
				]}
			},`
	doc := strings.Replace(densityFixture, `"metadata": {},`, metadata, 1)
	require.NotEqual(t, densityFixture, doc)

	ds, err := Decode([]byte(doc))
	require.NoError(t, err)

	p := ds.PropertiesForSubstance("CCO{1.000000}")[0]
	q, ok := p.Metadata["viscosity_hint"].(unit.Quantity)
	require.True(t, ok)
	require.Equal(t, 0.0011, q.Value)
	set, ok := p.Metadata["trusted_amounts"].(substance.AmountSet)
	require.True(t, ok)
	require.True(t, set.Contains(substance.MoleFraction{Value: 1.0}))

	// Re-encoding must re-tag the domain values the decoder reconstructed.
	data, err := Encode(ds)
	require.NoError(t, err)
	require.Contains(t, string(data), `"unit":"pascal * second"`)
	require.Contains(t, string(data), `"builtins.frozenset"`)

	again, err := Decode(data)
	require.NoError(t, err)
	require.True(t, ds.Equal(again))
}

func TestCodecCalculationSourceRoundTrip(t *testing.T) {
	p, err := property.New(
		property.KindDensity, property.PhaseLiquid, testSubstance(t, "CCO"), testState(),
		unit.NewQuantity(790.1, unit.KilogramPerCubicMeter),
		unit.NewQuantity(1.2, unit.KilogramPerCubicMeter),
		property.CalculationSource{
			Fidelity: "direct_simulation",
			Provenance: map[string]any{
				"force_field": "smirnoff99frosst",
				"timestep":    unit.NewQuantity(2e-15, unit.MustParse("second")),
			},
		},
	)
	require.NoError(t, err)

	ds := New()
	require.NoError(t, ds.AddProperty(p))

	data, err := Encode(ds)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.True(t, ds.Equal(decoded))

	source, ok := decoded.PropertiesForSubstance("CCO{1.000000}")[0].Source.(property.CalculationSource)
	require.True(t, ok)
	require.Equal(t, "direct_simulation", source.Fidelity)
	require.Equal(t, unit.NewQuantity(2e-15, unit.MustParse("second")), source.Provenance["timestep"])
}

func TestCodecDecodeKeyMismatch(t *testing.T) {
	// File the ethanol record under a key its substance does not render to.
	doc := strings.Replace(densityFixture, `"CCO{1.000000}":`, `"CO{1.000000}":`, 1)
	require.NotEqual(t, densityFixture, doc)

	_, err := Decode([]byte(doc))
	require.ErrorIs(t, err, errs.ErrKeyMismatch)

	relaxed, err := NewCodec(WithoutKeyVerification())
	require.NoError(t, err)
	decoded, err := relaxed.Decode([]byte(doc))
	require.NoError(t, err)
	require.Len(t, decoded.PropertiesForSubstance("CO{1.000000}"), 1)
}

func TestCodecDecodeFrozenSetOrderIndependence(t *testing.T) {
	const forward = `{"@type": "builtins.frozenset", "value": [
		{"@type": "propertyestimator.substances.Substance->MoleFraction", "value": 0.5},
		{"@type": "propertyestimator.substances.Substance->ExactAmount", "value": 2}
	]}`
	const reversed = `{"@type": "builtins.frozenset", "value": [
		{"@type": "propertyestimator.substances.Substance->ExactAmount", "value": 2},
		{"@type": "propertyestimator.substances.Substance->MoleFraction", "value": 0.5}
	]}`

	first, err := decodeValue([]byte(forward), "$")
	require.NoError(t, err)
	second, err := decodeValue([]byte(reversed), "$")
	require.NoError(t, err)

	require.True(t, first.(substance.AmountSet).Equal(second.(substance.AmountSet)))
}

func TestCodecDecodeSubstanceOrphanAmount(t *testing.T) {
	doc := `{
		"@type": "propertyestimator.substances.Substance",
		"components": [{
			"@type": "propertyestimator.substances.Substance->Component",
			"smiles": "CCO",
			"role": {"@type": "propertyestimator.substances.Substance->ComponentRole", "value": "Solvent"}
		}],
		"amounts": {
			"CCO": {"@type": "builtins.frozenset", "value": [
				{"@type": "propertyestimator.substances.Substance->MoleFraction", "value": 1.0}
			]},
			"CO": {"@type": "builtins.frozenset", "value": [
				{"@type": "propertyestimator.substances.Substance->MoleFraction", "value": 1.0}
			]}
		}
	}`

	_, err := decodeValue([]byte(doc), "$")
	require.ErrorIs(t, err, errs.ErrMalformedRecord)
	require.ErrorContains(t, err, "no matching component")
}

func TestCodecRegisterDecoderExtension(t *testing.T) {
	const tag = "example.custom.Marker"
	RegisterDecoder(tag, func(obj map[string]json.RawMessage, path string) (any, error) {
		return "marker", nil
	})

	value, err := decodeValue([]byte(`{"@type": "example.custom.Marker"}`), "$")
	require.NoError(t, err)
	require.Equal(t, "marker", value)
}
