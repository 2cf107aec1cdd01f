package property

import "strings"

// Phase encodes the physical state a measurement was taken in as a bit
// flag, so multi-phase measurements (e.g. a liquid/gas coexistence line)
// combine flags: PhaseLiquid | PhaseGas serializes as 6.
type Phase uint8

const (
	PhaseUndefined Phase = 0
	PhaseSolid     Phase = 1 << 0
	PhaseLiquid    Phase = 1 << 1
	PhaseGas       Phase = 1 << 2
)

// phaseMask covers every defined flag; higher bits are invalid.
const phaseMask = PhaseSolid | PhaseLiquid | PhaseGas

// Has reports whether every flag of p is set in the phase.
func (p Phase) Has(flag Phase) bool {
	return p&flag == flag && flag != PhaseUndefined
}

// IsValid reports whether the phase only uses defined flags.
func (p Phase) IsValid() bool {
	return p&^phaseMask == 0
}

func (p Phase) String() string {
	if p == PhaseUndefined {
		return "Undefined"
	}

	var parts []string
	if p.Has(PhaseSolid) {
		parts = append(parts, "Solid")
	}
	if p.Has(PhaseLiquid) {
		parts = append(parts, "Liquid")
	}
	if p.Has(PhaseGas) {
		parts = append(parts, "Gas")
	}
	if !p.IsValid() {
		parts = append(parts, "Unknown")
	}

	return strings.Join(parts, "|")
}
