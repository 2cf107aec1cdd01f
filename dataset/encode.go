package dataset

import (
	"encoding/json"
	"fmt"

	"physprop/errs"
	"physprop/property"
	"physprop/substance"
	"physprop/unit"
)

// Wire structs fix the canonical field order of the serialized form; Go
// emits struct fields in declaration order and sorts map keys, which
// together with strconv's shortest-round-trip float formatting makes
// encoding deterministic: the same dataset always yields the same bytes.

type wireDataSet struct {
	Type       string                    `json:"@type"`
	Properties map[string][]wireProperty `json:"properties"`
	Sources    []any                     `json:"sources"`
}

type wireProperty struct {
	Type        string         `json:"@type"`
	ID          string         `json:"id"`
	Phase       int            `json:"phase"`
	Metadata    map[string]any `json:"metadata"`
	Gradients   []wireGradient `json:"gradients"`
	Source      any            `json:"source"`
	Substance   wireSubstance  `json:"substance"`
	State       wireState      `json:"thermodynamic_state"`
	Uncertainty wireQuantity   `json:"uncertainty"`
	Value       wireQuantity   `json:"value"`
}

type wireQuantity struct {
	Type  string  `json:"@type"`
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

type wireState struct {
	Type        string       `json:"@type"`
	Temperature wireQuantity `json:"temperature"`
	Pressure    wireQuantity `json:"pressure"`
}

type wireSubstance struct {
	Type       string                   `json:"@type"`
	Components []wireComponent          `json:"components"`
	Amounts    map[string]wireFrozenSet `json:"amounts"`
}

type wireComponent struct {
	Type   string   `json:"@type"`
	Smiles string   `json:"smiles"`
	Role   wireEnum `json:"role"`
}

// wireEnum serializes closed-vocabulary values such as component roles and
// tagged amounts.
type wireEnum struct {
	Type  string `json:"@type"`
	Value any    `json:"value"`
}

type wireFrozenSet struct {
	Type  string `json:"@type"`
	Value []any  `json:"value"`
}

type wireGradient struct {
	Type  string       `json:"@type"`
	Key   string       `json:"key"`
	Value wireQuantity `json:"value"`
}

type wireMeasurementSource struct {
	Type      string `json:"@type"`
	DOI       string `json:"doi"`
	Reference string `json:"reference"`
}

type wireCalculationSource struct {
	Type       string         `json:"@type"`
	Fidelity   string         `json:"fidelity"`
	Provenance map[string]any `json:"provenance"`
}

// Encode validates a dataset and serializes it to canonical tagged JSON.
func (c *Codec) Encode(ds *PhysicalPropertyDataSet) ([]byte, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: cannot encode nil dataset", errs.ErrMalformedRecord)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	return json.Marshal(encodeDataSet(ds))
}

func encodeDataSet(ds *PhysicalPropertyDataSet) wireDataSet {
	wire := wireDataSet{
		Type:       TagDataSet,
		Properties: make(map[string][]wireProperty, len(ds.properties)),
		Sources:    make([]any, 0, len(ds.sources)),
	}

	for key, records := range ds.properties {
		encoded := make([]wireProperty, 0, len(records))
		for _, p := range records {
			encoded = append(encoded, encodeProperty(p))
		}
		wire.Properties[key] = encoded
	}
	for _, s := range ds.sources {
		wire.Sources = append(wire.Sources, encodeSource(s))
	}

	return wire
}

func encodeProperty(p *property.PhysicalProperty) wireProperty {
	gradients := make([]wireGradient, 0, len(p.Gradients))
	for _, g := range p.Gradients {
		gradients = append(gradients, wireGradient{
			Type:  TagParameterGradient,
			Key:   g.Key,
			Value: encodeQuantity(g.Value),
		})
	}

	return wireProperty{
		Type:      kindTags[p.Kind],
		ID:        p.ID,
		Phase:     int(p.Phase),
		Metadata:  encodePlainMap(p.Metadata),
		Gradients: gradients,
		Source:    encodeSource(p.Source),
		Substance: encodeSubstance(p.Substance),
		State: wireState{
			Type:        TagThermodynamicState,
			Temperature: encodeQuantity(p.State.Temperature),
			Pressure:    encodeQuantity(p.State.Pressure),
		},
		Uncertainty: encodeQuantity(p.Uncertainty),
		Value:       encodeQuantity(p.Value),
	}
}

func encodeQuantity(q unit.Quantity) wireQuantity {
	return wireQuantity{
		Type:  TagQuantity,
		Unit:  q.Unit.String(),
		Value: q.Value,
	}
}

func encodeSubstance(sub *substance.Substance) wireSubstance {
	components := sub.Components()

	wire := wireSubstance{
		Type:       TagSubstance,
		Components: make([]wireComponent, 0, len(components)),
		Amounts:    make(map[string]wireFrozenSet, len(components)),
	}

	for _, c := range components {
		wire.Components = append(wire.Components, wireComponent{
			Type:   TagComponent,
			Smiles: c.Smiles,
			Role: wireEnum{
				Type:  TagComponentRole,
				Value: string(c.Role),
			},
		})

		// Members are emitted in canonical sorted order purely to keep
		// the encoding deterministic; decoders rebuild a true set.
		set := sub.Amounts(c.Label())
		members := make([]any, 0, len(set))
		for _, a := range set.Sorted() {
			members = append(members, encodeAmount(a))
		}
		wire.Amounts[c.Label()] = wireFrozenSet{
			Type:  TagFrozenSet,
			Value: members,
		}
	}

	return wire
}

func encodeAmount(a substance.Amount) wireEnum {
	switch amount := a.(type) {
	case substance.MoleFraction:
		return wireEnum{Type: TagMoleFraction, Value: amount.Value}
	case substance.ExactAmount:
		return wireEnum{Type: TagExactAmount, Value: amount.Value}
	default:
		// Unreachable: Amount is a closed interface.
		panic(fmt.Sprintf("unsupported amount type %T", a))
	}
}

func encodeSource(s property.Source) any {
	switch source := s.(type) {
	case property.MeasurementSource:
		return wireMeasurementSource{
			Type:      TagMeasurementSource,
			DOI:       source.DOI,
			Reference: source.Reference,
		}
	case property.CalculationSource:
		return wireCalculationSource{
			Type:       TagCalculationSource,
			Fidelity:   source.Fidelity,
			Provenance: encodePlainMap(source.Provenance),
		}
	case nil:
		return nil
	default:
		panic(fmt.Sprintf("unsupported source type %T", s))
	}
}

// encodePlainMap re-tags domain values nested inside metadata and provenance
// maps, the inverse of decodeValue reconstructing them on decode. A nil map
// encodes as an empty object.
func encodePlainMap(m map[string]any) map[string]any {
	encoded := make(map[string]any, len(m))
	for key, value := range m {
		encoded[key] = encodeAny(value)
	}

	return encoded
}

func encodeAny(v any) any {
	switch value := v.(type) {
	case unit.Quantity:
		return encodeQuantity(value)
	case substance.MoleFraction:
		return encodeAmount(value)
	case substance.ExactAmount:
		return encodeAmount(value)
	case substance.AmountSet:
		members := make([]any, 0, len(value))
		for _, a := range value.Sorted() {
			members = append(members, encodeAmount(a))
		}

		return wireFrozenSet{Type: TagFrozenSet, Value: members}
	case substance.Role:
		return wireEnum{Type: TagComponentRole, Value: string(value)}
	case substance.Component:
		return wireComponent{
			Type:   TagComponent,
			Smiles: value.Smiles,
			Role:   wireEnum{Type: TagComponentRole, Value: string(value.Role)},
		}
	case *substance.Substance:
		return encodeSubstance(value)
	case property.ThermodynamicState:
		return wireState{
			Type:        TagThermodynamicState,
			Temperature: encodeQuantity(value.Temperature),
			Pressure:    encodeQuantity(value.Pressure),
		}
	case property.Gradient:
		return wireGradient{Type: TagParameterGradient, Key: value.Key, Value: encodeQuantity(value.Value)}
	case property.MeasurementSource:
		return encodeSource(value)
	case property.CalculationSource:
		return encodeSource(value)
	case *property.PhysicalProperty:
		return encodeProperty(value)
	case *PhysicalPropertyDataSet:
		return encodeDataSet(value)
	case map[string]any:
		return encodePlainMap(value)
	case []any:
		encoded := make([]any, len(value))
		for i, elem := range value {
			encoded[i] = encodeAny(elem)
		}

		return encoded
	default:
		return v
	}
}
