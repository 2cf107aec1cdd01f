package dataset

import (
	"encoding/json"
	"sync"

	"physprop/property"
)

// Type tags carried in the "@type" field of every non-primitive serialized
// value. The names are fully qualified for compatibility with datasets
// produced by the original estimation toolchain; within this library they
// are opaque registry keys.
const (
	TagDataSet = "propertyestimator.datasets.datasets.PhysicalPropertyDataSet"

	TagDensity                = "propertyestimator.properties.density.Density"
	TagExcessMolarVolume      = "propertyestimator.properties.density.ExcessMolarVolume"
	TagEnthalpyOfMixing       = "propertyestimator.properties.enthalpy.EnthalpyOfMixing"
	TagEnthalpyOfVaporization = "propertyestimator.properties.enthalpy.EnthalpyOfVaporization"
	TagDielectricConstant     = "propertyestimator.properties.dielectric.DielectricConstant"

	TagMeasurementSource = "propertyestimator.properties.properties.MeasurementSource"
	TagCalculationSource = "propertyestimator.properties.properties.CalculationSource"
	TagParameterGradient = "propertyestimator.properties.properties.ParameterGradient"

	TagSubstance     = "propertyestimator.substances.Substance"
	TagComponent     = "propertyestimator.substances.Substance->Component"
	TagComponentRole = "propertyestimator.substances.Substance->ComponentRole"
	TagMoleFraction  = "propertyestimator.substances.Substance->MoleFraction"
	TagExactAmount   = "propertyestimator.substances.Substance->ExactAmount"

	TagThermodynamicState = "propertyestimator.thermodynamics.ThermodynamicState"
	TagQuantity           = "propertyestimator.unit.Quantity"

	// TagFrozenSet marks an unordered set serialized as an ordered list.
	// The member order is an artifact of serialization and carries no
	// meaning.
	TagFrozenSet = "builtins.frozenset"
)

// kindTags maps each property kind to its type tag; tagKinds is the
// inverse, built at init.
var kindTags = map[property.Kind]string{
	property.KindDensity:                TagDensity,
	property.KindExcessMolarVolume:      TagExcessMolarVolume,
	property.KindEnthalpyOfMixing:       TagEnthalpyOfMixing,
	property.KindEnthalpyOfVaporization: TagEnthalpyOfVaporization,
	property.KindDielectricConstant:     TagDielectricConstant,
}

// DecoderFunc reconstructs a domain value from one tagged JSON object. The
// path names the object's location in the document and is carried into any
// error for diagnosability.
type DecoderFunc func(obj map[string]json.RawMessage, path string) (any, error)

var (
	decodersMu sync.RWMutex
	decoders   = make(map[string]DecoderFunc)
)

// RegisterDecoder installs a decoder for a type tag, replacing any existing
// registration. This is the extension point for applications that embed
// their own tagged types inside dataset metadata.
func RegisterDecoder(tag string, fn DecoderFunc) {
	decodersMu.Lock()
	defer decodersMu.Unlock()
	decoders[tag] = fn
}

func lookupDecoder(tag string) (DecoderFunc, bool) {
	decodersMu.RLock()
	defer decodersMu.RUnlock()
	fn, ok := decoders[tag]

	return fn, ok
}

func init() {
	RegisterDecoder(TagDataSet, decodeDataSetObject)
	RegisterDecoder(TagQuantity, decodeQuantityObject)
	RegisterDecoder(TagFrozenSet, decodeFrozenSetObject)
	RegisterDecoder(TagMoleFraction, decodeMoleFractionObject)
	RegisterDecoder(TagExactAmount, decodeExactAmountObject)
	RegisterDecoder(TagComponentRole, decodeRoleObject)
	RegisterDecoder(TagComponent, decodeComponentObject)
	RegisterDecoder(TagSubstance, decodeSubstanceObject)
	RegisterDecoder(TagThermodynamicState, decodeStateObject)
	RegisterDecoder(TagMeasurementSource, decodeMeasurementSourceObject)
	RegisterDecoder(TagCalculationSource, decodeCalculationSourceObject)
	RegisterDecoder(TagParameterGradient, decodeGradientObject)

	for kind, tag := range kindTags {
		RegisterDecoder(tag, decodePropertyObject(kind))
	}
}
