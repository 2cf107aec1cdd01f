package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"physprop/errs"
	"physprop/property"
	"physprop/substance"
	"physprop/unit"
)

// decodeValue recursively decodes one JSON value. Objects carrying an
// "@type" tag are dispatched through the decoder registry; untagged objects
// and arrays decode into plain maps and slices with their members decoded
// recursively, so tagged values nested inside metadata still come back as
// domain types.
func decodeValue(raw json.RawMessage, path string) (any, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: %s: empty value", errs.ErrMalformedRecord, path)
	}

	switch trimmed[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errs.ErrMalformedRecord, path, err)
		}

		tagRaw, tagged := obj["@type"]
		if !tagged {
			return decodePlainObject(obj, path)
		}

		var tag string
		if err := json.Unmarshal(tagRaw, &tag); err != nil {
			return nil, fmt.Errorf("%w: %s[\"@type\"]: %v", errs.ErrMalformedRecord, path, err)
		}

		fn, ok := lookupDecoder(tag)
		if !ok {
			return nil, fmt.Errorf("%w: %s: %q", errs.ErrUnrecognizedType, path, tag)
		}

		return fn(obj, path)
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errs.ErrMalformedRecord, path, err)
		}

		values := make([]any, 0, len(elems))
		for i, elem := range elems {
			value, err := decodeValue(elem, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}

		return values, nil
	default:
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errs.ErrMalformedRecord, path, err)
		}

		return value, nil
	}
}

func decodePlainObject(obj map[string]json.RawMessage, path string) (map[string]any, error) {
	result := make(map[string]any, len(obj))
	for key, raw := range obj {
		value, err := decodeValue(raw, fmt.Sprintf("%s.%s", path, key))
		if err != nil {
			return nil, err
		}
		result[key] = value
	}

	return result, nil
}

// rawField fetches a required field from a tagged object.
func rawField(obj map[string]json.RawMessage, name, path string) (json.RawMessage, error) {
	raw, ok := obj[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s: missing field %q", errs.ErrMalformedRecord, path, name)
	}

	return raw, nil
}

func stringField(obj map[string]json.RawMessage, name, path string) (string, error) {
	raw, err := rawField(obj, name, path)
	if err != nil {
		return "", err
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("%w: %s.%s: %v", errs.ErrMalformedRecord, path, name, err)
	}

	return value, nil
}

func numberField(obj map[string]json.RawMessage, name, path string) (float64, error) {
	raw, err := rawField(obj, name, path)
	if err != nil {
		return 0, err
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, fmt.Errorf("%w: %s.%s: %v", errs.ErrMalformedRecord, path, name, err)
	}

	return value, nil
}

func intField(obj map[string]json.RawMessage, name, path string) (int, error) {
	value, err := numberField(obj, name, path)
	if err != nil {
		return 0, err
	}
	if value != math.Trunc(value) {
		return 0, fmt.Errorf("%w: %s.%s: %v is not an integer", errs.ErrMalformedRecord, path, name, value)
	}

	return int(value), nil
}

func decodeQuantityObject(obj map[string]json.RawMessage, path string) (any, error) {
	raw, err := rawField(obj, "unit", path)
	if err != nil {
		return nil, err
	}

	// A null unit means a dimensionless quantity.
	u := unit.Dimensionless
	if !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		var expression string
		if err := json.Unmarshal(raw, &expression); err != nil {
			return nil, fmt.Errorf("%w: %s.unit: %v", errs.ErrMalformedRecord, path, err)
		}
		u, err = unit.Parse(expression)
		if err != nil {
			return nil, fmt.Errorf("%s.unit: %w", path, err)
		}
	}

	value, err := numberField(obj, "value", path)
	if err != nil {
		return nil, err
	}

	return unit.Quantity{Value: value, Unit: u}, nil
}

func decodeMoleFractionObject(obj map[string]json.RawMessage, path string) (any, error) {
	value, err := numberField(obj, "value", path)
	if err != nil {
		return nil, err
	}

	return substance.MoleFraction{Value: value}, nil
}

func decodeExactAmountObject(obj map[string]json.RawMessage, path string) (any, error) {
	value, err := intField(obj, "value", path)
	if err != nil {
		return nil, err
	}

	return substance.ExactAmount{Value: value}, nil
}

func decodeFrozenSetObject(obj map[string]json.RawMessage, path string) (any, error) {
	raw, err := rawField(obj, "value", path)
	if err != nil {
		return nil, err
	}

	members, err := decodeValue(raw, fmt.Sprintf("%s.value", path))
	if err != nil {
		return nil, err
	}

	list, ok := members.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s.value: set members must be an array", errs.ErrMalformedRecord, path)
	}

	set := make(substance.AmountSet, len(list))
	for i, member := range list {
		amount, ok := member.(substance.Amount)
		if !ok {
			return nil, fmt.Errorf("%w: %s.value[%d]: %T is not an amount",
				errs.ErrMalformedRecord, path, i, member)
		}
		set.Add(amount)
	}

	return set, nil
}

func decodeRoleObject(obj map[string]json.RawMessage, path string) (any, error) {
	value, err := stringField(obj, "value", path)
	if err != nil {
		return nil, err
	}

	role := substance.Role(value)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %s.value: unknown role %q", errs.ErrMalformedRecord, path, value)
	}

	return role, nil
}

func decodeComponentObject(obj map[string]json.RawMessage, path string) (any, error) {
	smiles, err := stringField(obj, "smiles", path)
	if err != nil {
		return nil, err
	}

	raw, err := rawField(obj, "role", path)
	if err != nil {
		return nil, err
	}
	value, err := decodeValue(raw, fmt.Sprintf("%s.role", path))
	if err != nil {
		return nil, err
	}
	role, ok := value.(substance.Role)
	if !ok {
		return nil, fmt.Errorf("%w: %s.role: %T is not a component role", errs.ErrMalformedRecord, path, value)
	}

	return substance.Component{Smiles: smiles, Role: role}, nil
}

func decodeSubstanceObject(obj map[string]json.RawMessage, path string) (any, error) {
	componentsRaw, err := rawField(obj, "components", path)
	if err != nil {
		return nil, err
	}
	componentsValue, err := decodeValue(componentsRaw, fmt.Sprintf("%s.components", path))
	if err != nil {
		return nil, err
	}
	componentsList, ok := componentsValue.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s.components: must be an array", errs.ErrMalformedRecord, path)
	}

	amountsRaw, err := rawField(obj, "amounts", path)
	if err != nil {
		return nil, err
	}
	var amountsObj map[string]json.RawMessage
	if err := json.Unmarshal(amountsRaw, &amountsObj); err != nil {
		return nil, fmt.Errorf("%w: %s.amounts: %v", errs.ErrMalformedRecord, path, err)
	}

	amounts := make(map[string]substance.AmountSet, len(amountsObj))
	for label, raw := range amountsObj {
		value, err := decodeValue(raw, fmt.Sprintf("%s.amounts[%q]", path, label))
		if err != nil {
			return nil, err
		}
		set, ok := value.(substance.AmountSet)
		if !ok {
			return nil, fmt.Errorf("%w: %s.amounts[%q]: %T is not an amount set",
				errs.ErrMalformedRecord, path, label, value)
		}
		amounts[label] = set
	}

	sub := substance.New()
	for i, value := range componentsList {
		component, ok := value.(substance.Component)
		if !ok {
			return nil, fmt.Errorf("%w: %s.components[%d]: %T is not a component",
				errs.ErrMalformedRecord, path, i, value)
		}

		set, ok := amounts[component.Label()]
		if !ok {
			return nil, fmt.Errorf("%w: %s.amounts: no entry for component %q",
				errs.ErrMalformedRecord, path, component.Label())
		}
		delete(amounts, component.Label())

		if err := sub.AddComponent(component, set.Sorted()...); err != nil {
			return nil, fmt.Errorf("%s.components[%d]: %w", path, i, err)
		}
	}

	// Anything left over names a component that does not exist.
	for label := range amounts {
		return nil, fmt.Errorf("%w: %s.amounts[%q]: no matching component",
			errs.ErrMalformedRecord, path, label)
	}

	return sub, nil
}

func decodeStateObject(obj map[string]json.RawMessage, path string) (any, error) {
	temperature, err := decodeQuantityField(obj, "temperature", path)
	if err != nil {
		return nil, err
	}
	pressure, err := decodeQuantityField(obj, "pressure", path)
	if err != nil {
		return nil, err
	}

	return property.ThermodynamicState{Temperature: temperature, Pressure: pressure}, nil
}

func decodeQuantityField(obj map[string]json.RawMessage, name, path string) (unit.Quantity, error) {
	raw, err := rawField(obj, name, path)
	if err != nil {
		return unit.Quantity{}, err
	}

	value, err := decodeValue(raw, fmt.Sprintf("%s.%s", path, name))
	if err != nil {
		return unit.Quantity{}, err
	}

	q, ok := value.(unit.Quantity)
	if !ok {
		return unit.Quantity{}, fmt.Errorf("%w: %s.%s: %T is not a quantity",
			errs.ErrMalformedRecord, path, name, value)
	}

	return q, nil
}

func decodeMeasurementSourceObject(obj map[string]json.RawMessage, path string) (any, error) {
	doi, err := stringField(obj, "doi", path)
	if err != nil {
		return nil, err
	}
	reference, err := stringField(obj, "reference", path)
	if err != nil {
		return nil, err
	}

	return property.MeasurementSource{DOI: doi, Reference: reference}, nil
}

func decodeCalculationSourceObject(obj map[string]json.RawMessage, path string) (any, error) {
	fidelity, err := stringField(obj, "fidelity", path)
	if err != nil {
		return nil, err
	}

	raw, err := rawField(obj, "provenance", path)
	if err != nil {
		return nil, err
	}
	value, err := decodeValue(raw, fmt.Sprintf("%s.provenance", path))
	if err != nil {
		return nil, err
	}
	provenance, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s.provenance: must be an object", errs.ErrMalformedRecord, path)
	}

	return property.CalculationSource{Fidelity: fidelity, Provenance: provenance}, nil
}

func decodeGradientObject(obj map[string]json.RawMessage, path string) (any, error) {
	key, err := stringField(obj, "key", path)
	if err != nil {
		return nil, err
	}
	value, err := decodeQuantityField(obj, "value", path)
	if err != nil {
		return nil, err
	}

	return property.Gradient{Key: key, Value: value}, nil
}

// decodePropertyObject returns the decoder for one concrete property kind;
// all five kinds share the same wire shape and differ only in their tag.
func decodePropertyObject(kind property.Kind) DecoderFunc {
	return func(obj map[string]json.RawMessage, path string) (any, error) {
		id, err := stringField(obj, "id", path)
		if err != nil {
			return nil, err
		}

		phase, err := intField(obj, "phase", path)
		if err != nil {
			return nil, err
		}
		if phase < 0 || phase > 255 {
			return nil, fmt.Errorf("%w: %s.phase: %d out of range", errs.ErrMalformedRecord, path, phase)
		}

		p := &property.PhysicalProperty{
			ID:    id,
			Kind:  kind,
			Phase: property.Phase(phase),
		}

		subRaw, err := rawField(obj, "substance", path)
		if err != nil {
			return nil, err
		}
		subValue, err := decodeValue(subRaw, fmt.Sprintf("%s.substance", path))
		if err != nil {
			return nil, err
		}
		sub, ok := subValue.(*substance.Substance)
		if !ok {
			return nil, fmt.Errorf("%w: %s.substance: %T is not a substance",
				errs.ErrMalformedRecord, path, subValue)
		}
		p.Substance = sub

		stateRaw, err := rawField(obj, "thermodynamic_state", path)
		if err != nil {
			return nil, err
		}
		stateValue, err := decodeValue(stateRaw, fmt.Sprintf("%s.thermodynamic_state", path))
		if err != nil {
			return nil, err
		}
		state, ok := stateValue.(property.ThermodynamicState)
		if !ok {
			return nil, fmt.Errorf("%w: %s.thermodynamic_state: %T is not a thermodynamic state",
				errs.ErrMalformedRecord, path, stateValue)
		}
		p.State = state

		if p.Value, err = decodeQuantityField(obj, "value", path); err != nil {
			return nil, err
		}
		if p.Uncertainty, err = decodeQuantityField(obj, "uncertainty", path); err != nil {
			return nil, err
		}

		if raw, ok := obj["source"]; ok {
			value, err := decodeValue(raw, fmt.Sprintf("%s.source", path))
			if err != nil {
				return nil, err
			}
			if value != nil {
				source, ok := value.(property.Source)
				if !ok {
					return nil, fmt.Errorf("%w: %s.source: %T is not a source",
						errs.ErrMalformedRecord, path, value)
				}
				p.Source = source
			}
		}

		if raw, ok := obj["gradients"]; ok {
			value, err := decodeValue(raw, fmt.Sprintf("%s.gradients", path))
			if err != nil {
				return nil, err
			}
			list, ok := value.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s.gradients: must be an array", errs.ErrMalformedRecord, path)
			}
			for i, elem := range list {
				gradient, ok := elem.(property.Gradient)
				if !ok {
					return nil, fmt.Errorf("%w: %s.gradients[%d]: %T is not a gradient",
						errs.ErrMalformedRecord, path, i, elem)
				}
				p.Gradients = append(p.Gradients, gradient)
			}
		}

		if raw, ok := obj["metadata"]; ok {
			value, err := decodeValue(raw, fmt.Sprintf("%s.metadata", path))
			if err != nil {
				return nil, err
			}
			metadata, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s.metadata: must be an object", errs.ErrMalformedRecord, path)
			}
			if len(metadata) > 0 {
				p.Metadata = metadata
			}
		}

		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return p, nil
	}
}

func decodeDataSetObject(obj map[string]json.RawMessage, path string) (any, error) {
	propertiesRaw, err := rawField(obj, "properties", path)
	if err != nil {
		return nil, err
	}
	var propertiesObj map[string]json.RawMessage
	if err := json.Unmarshal(propertiesRaw, &propertiesObj); err != nil {
		return nil, fmt.Errorf("%w: %s.properties: %v", errs.ErrMalformedRecord, path, err)
	}

	ds := New()
	for key, raw := range propertiesObj {
		var records []json.RawMessage
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("%w: %s.properties[%q]: %v", errs.ErrMalformedRecord, path, key, err)
		}

		decoded := make([]*property.PhysicalProperty, 0, len(records))
		for i, recordRaw := range records {
			recordPath := fmt.Sprintf("%s.properties[%q][%d]", path, key, i)
			value, err := decodeValue(recordRaw, recordPath)
			if err != nil {
				return nil, err
			}
			record, ok := value.(*property.PhysicalProperty)
			if !ok {
				return nil, fmt.Errorf("%w: %s: %T is not a property record",
					errs.ErrMalformedRecord, recordPath, value)
			}
			decoded = append(decoded, record)
		}
		ds.properties[key] = decoded
	}

	if raw, ok := obj["sources"]; ok {
		value, err := decodeValue(raw, fmt.Sprintf("%s.sources", path))
		if err != nil {
			return nil, err
		}
		list, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s.sources: must be an array", errs.ErrMalformedRecord, path)
		}
		for i, elem := range list {
			source, ok := elem.(property.Source)
			if !ok {
				return nil, fmt.Errorf("%w: %s.sources[%d]: %T is not a source",
					errs.ErrMalformedRecord, path, i, elem)
			}
			ds.AddSource(source)
		}
	}

	return ds, nil
}
