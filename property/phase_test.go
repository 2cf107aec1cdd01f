package property

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhase_Flags(t *testing.T) {
	liquidGas := PhaseLiquid | PhaseGas

	require.Equal(t, Phase(6), liquidGas)
	require.True(t, liquidGas.Has(PhaseLiquid))
	require.True(t, liquidGas.Has(PhaseGas))
	require.False(t, liquidGas.Has(PhaseSolid))
	require.False(t, PhaseUndefined.Has(PhaseLiquid))
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseUndefined, "Undefined"},
		{PhaseSolid, "Solid"},
		{PhaseLiquid, "Liquid"},
		{PhaseGas, "Gas"},
		{PhaseLiquid | PhaseGas, "Liquid|Gas"},
		{PhaseSolid | PhaseLiquid | PhaseGas, "Solid|Liquid|Gas"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.phase.String())
	}
}

func TestPhase_IsValid(t *testing.T) {
	require.True(t, PhaseUndefined.IsValid())
	require.True(t, (PhaseLiquid | PhaseGas).IsValid())
	require.False(t, Phase(8).IsValid())
	require.False(t, Phase(0xff).IsValid())
}
