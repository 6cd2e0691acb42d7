package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGrams(t *testing.T) {
	got, err := ToGrams(2, "kg")
	require.NoError(t, err)
	assert.InDelta(t, 2000, got, 1e-9)

	got, err = ToGrams(500, "mg")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-9)

	// volumen con densidad 1:1
	got, err = ToGrams(1.5, "l")
	require.NoError(t, err)
	assert.InDelta(t, 1500, got, 1e-9)
}

func TestToGramsUnknownUnit(t *testing.T) {
	_, err := ToGrams(1, "docena")
	require.Error(t, err)

	_, err = ToGrams(1, "pz")
	require.Error(t, err)
}

func TestToBase(t *testing.T) {
	got, err := ToBase(250, "g", "kg")
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got, 1e-9)

	got, err = ToBase(2, "l", "ml")
	require.NoError(t, err)
	assert.InDelta(t, 2000, got, 1e-9)

	got, err = ToBase(3, "pz", "pieza")
	require.NoError(t, err)
	assert.InDelta(t, 3, got, 1e-9)

	// misma unidad: identidad aunque sea desconocida para la tabla
	got, err = ToBase(7, "caja", "caja")
	require.NoError(t, err)
	assert.InDelta(t, 7, got, 1e-9)
}

func TestToBaseCrossFamily(t *testing.T) {
	_, err := ToBase(1, "kg", "l")
	require.Error(t, err)

	_, err = ToBase(1, "ml", "pz")
	require.Error(t, err)

	_, err = ToBase(1, "xyz", "kg")
	require.Error(t, err)
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("KG"))
	assert.True(t, Known("pz"))
	assert.False(t, Known("docena"))
}
