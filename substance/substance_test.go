package substance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"physprop/errs"
)

func pureEthanol(t *testing.T) *Substance {
	t.Helper()

	sub := New()
	err := sub.AddComponent(
		Component{Smiles: "CCO", Role: RoleSolvent},
		MoleFraction{Value: 1.0},
	)
	require.NoError(t, err)

	return sub
}

func glycerolWaterMix(t *testing.T, glycerolFirst bool) *Substance {
	t.Helper()

	sub := New()
	glycerol := func() {
		require.NoError(t, sub.AddComponent(
			Component{Smiles: "C(CO)CO", Role: RoleSolvent},
			MoleFraction{Value: 0.74},
		))
	}
	water := func() {
		require.NoError(t, sub.AddComponent(
			Component{Smiles: "O", Role: RoleSolvent},
			MoleFraction{Value: 0.26},
		))
	}

	if glycerolFirst {
		glycerol()
		water()
	} else {
		water()
		glycerol()
	}

	return sub
}

func TestSubstance_Identifier_Pure(t *testing.T) {
	sub := pureEthanol(t)
	require.Equal(t, "CCO{1.000000}", sub.Identifier())
	require.NoError(t, sub.Validate())
	require.Equal(t, 1, sub.NumberOfComponents())
	require.Equal(t, RoleSolvent, sub.Components()[0].Role)
	require.True(t, sub.Amounts("CCO").Contains(MoleFraction{Value: 1.0}))
}

func TestSubstance_Identifier_OrderIndependent(t *testing.T) {
	a := glycerolWaterMix(t, true)
	b := glycerolWaterMix(t, false)

	require.Equal(t, "C(CO)CO{0.740000}|O{0.260000}", a.Identifier())
	require.Equal(t, a.Identifier(), b.Identifier())
	require.Equal(t, a.ID(), b.ID())
	require.True(t, a.Equal(b))
}

func TestSubstance_Identifier_ExactAmount(t *testing.T) {
	sub := New()
	require.NoError(t, sub.AddComponent(
		Component{Smiles: "O", Role: RoleSolvent},
		MoleFraction{Value: 1.0},
	))
	require.NoError(t, sub.AddComponent(
		Component{Smiles: "c1ccccc1", Role: RoleSolute},
		ExactAmount{Value: 1},
	))

	require.Equal(t, "O{1.000000}|c1ccccc1(1)", sub.Identifier())
	require.NoError(t, sub.Validate())
}

func TestSubstance_AddComponent_Errors(t *testing.T) {
	sub := New()

	err := sub.AddComponent(Component{Smiles: "", Role: RoleSolvent}, MoleFraction{Value: 1})
	require.ErrorIs(t, err, errs.ErrMalformedRecord)

	err = sub.AddComponent(Component{Smiles: "CCO", Role: Role("Catalyst")}, MoleFraction{Value: 1})
	require.ErrorIs(t, err, errs.ErrMalformedRecord)

	err = sub.AddComponent(Component{Smiles: "CCO", Role: RoleSolvent})
	require.ErrorIs(t, err, errs.ErrMalformedRecord)

	require.NoError(t, sub.AddComponent(Component{Smiles: "CCO", Role: RoleSolvent}, MoleFraction{Value: 1}))
	err = sub.AddComponent(Component{Smiles: "CCO", Role: RoleSolvent}, MoleFraction{Value: 1})
	require.ErrorIs(t, err, errs.ErrDuplicateComponent)
}

func TestSubstance_Validate_MoleFractionClosure(t *testing.T) {
	sub := New()
	require.NoError(t, sub.AddComponent(
		Component{Smiles: "CCO", Role: RoleSolvent},
		MoleFraction{Value: 0.5},
	))
	require.NoError(t, sub.AddComponent(
		Component{Smiles: "O", Role: RoleSolvent},
		MoleFraction{Value: 0.4},
	))

	err := sub.Validate()
	require.ErrorIs(t, err, errs.ErrInvalidMoleFraction)
}

func TestSubstance_Validate_MoleFractionWithinTolerance(t *testing.T) {
	sub := New()
	require.NoError(t, sub.AddComponent(
		Component{Smiles: "CCO", Role: RoleSolvent},
		MoleFraction{Value: 0.5000001},
	))
	require.NoError(t, sub.AddComponent(
		Component{Smiles: "O", Role: RoleSolvent},
		MoleFraction{Value: 0.4999998},
	))

	require.NoError(t, sub.Validate())
}

func TestSubstance_Validate_MoleFractionRange(t *testing.T) {
	sub := New()
	require.NoError(t, sub.AddComponent(
		Component{Smiles: "CCO", Role: RoleSolvent},
		MoleFraction{Value: 1.5},
	))

	err := sub.Validate()
	require.ErrorIs(t, err, errs.ErrInvalidMoleFraction)
}

func TestSubstance_Validate_Empty(t *testing.T) {
	require.ErrorIs(t, New().Validate(), errs.ErrMalformedRecord)
}

func TestSubstance_Equal(t *testing.T) {
	a := pureEthanol(t)
	b := pureEthanol(t)
	require.True(t, a.Equal(b))

	// Same composition but a different role is a different substance.
	c := New()
	require.NoError(t, c.AddComponent(
		Component{Smiles: "CCO", Role: RoleSolute},
		MoleFraction{Value: 1.0},
	))
	require.False(t, a.Equal(c))

	require.False(t, a.Equal(glycerolWaterMix(t, true)))
}
