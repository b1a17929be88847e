package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNuevaCantidadBase(t *testing.T) {
	c := NuevaCantidadBase(25)

	assert.False(t, c.EsPorPresentacion())
	assert.Equal(t, 25.0, c.Base())

	amount, porPresentacion := c.Presentacion()
	assert.Equal(t, 25.0, amount)
	assert.False(t, porPresentacion)
}

func TestNuevaCantidadPresentacion(t *testing.T) {
	c, err := NuevaCantidadPresentacion(2, 12)
	require.NoError(t, err)

	assert.True(t, c.EsPorPresentacion())
	assert.InDelta(t, 24.0, c.Base(), ToleranciaCantidad)

	amount, porPresentacion := c.Presentacion()
	assert.Equal(t, 2.0, amount)
	assert.True(t, porPresentacion)
}

func TestNuevaCantidadPresentacionFactorInvalido(t *testing.T) {
	_, err := NuevaCantidadPresentacion(2, 0)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, kind)

	_, err = NuevaCantidadPresentacion(2, -3)
	require.Error(t, err)
	kind, ok = KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, kind)
}

func TestConversiones(t *testing.T) {
	assert.InDelta(t, 36.0, PresentacionABase(3, 12), ToleranciaCantidad)
	assert.InDelta(t, 3.0, BaseAPresentacion(36, 12), ToleranciaCantidad)

	// Non-positive factors never divide.
	assert.Equal(t, 0.0, BaseAPresentacion(36, 0))
	assert.Equal(t, 0.0, BaseAPresentacion(36, -1))
}

func TestConversionIdaYVuelta(t *testing.T) {
	factor := 7.5
	base := PresentacionABase(4, factor)
	assert.InDelta(t, 4.0, BaseAPresentacion(base, factor), ToleranciaCantidad)
}
