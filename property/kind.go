package property

import "physprop/unit"

// Kind is the closed set of physical property categories this library
// understands. Each kind fixes the dimensionality its value and uncertainty
// quantities must have.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindDensity
	KindExcessMolarVolume
	KindEnthalpyOfMixing
	KindEnthalpyOfVaporization
	KindDielectricConstant
)

func (k Kind) String() string {
	switch k {
	case KindDensity:
		return "Density"
	case KindExcessMolarVolume:
		return "ExcessMolarVolume"
	case KindEnthalpyOfMixing:
		return "EnthalpyOfMixing"
	case KindEnthalpyOfVaporization:
		return "EnthalpyOfVaporization"
	case KindDielectricConstant:
		return "DielectricConstant"
	default:
		return "Unknown"
	}
}

// IsValid reports whether k names a known property kind.
func (k Kind) IsValid() bool {
	return k > KindUnknown && k <= KindDielectricConstant
}

// Dimension returns the base-dimension vector a value of this kind must
// carry: mass/volume for densities, volume/amount for excess molar volumes,
// energy/amount for enthalpies, dimensionless for dielectric constants.
func (k Kind) Dimension() unit.Dimension {
	switch k {
	case KindDensity:
		return unit.Dimension{Mass: 1, Length: -3}
	case KindExcessMolarVolume:
		return unit.Dimension{Length: 3, Amount: -1}
	case KindEnthalpyOfMixing, KindEnthalpyOfVaporization:
		return unit.Dimension{Mass: 1, Length: 2, Time: -2, Amount: -1}
	case KindDielectricConstant:
		return unit.Dimension{}
	default:
		return unit.Dimension{}
	}
}
