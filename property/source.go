package property

// Source records the provenance of a property value: either a literature
// measurement or the output of an estimation run.
type Source interface {
	isSource()
}

// MeasurementSource cites the publication a measured value was taken from.
// DOI may be empty when only a free-text reference is known.
type MeasurementSource struct {
	DOI       string
	Reference string
}

func (MeasurementSource) isSource() {}

// CalculationSource records that a value was produced by an estimation
// layer rather than measured. Fidelity names the layer (e.g. a direct
// simulation versus reweighting of cached data); Provenance carries the
// layer-specific detail needed to reproduce the value.
type CalculationSource struct {
	Fidelity   string
	Provenance map[string]any
}

func (CalculationSource) isSource() {}
