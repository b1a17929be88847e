package repositories

import (
	"testing"

	"kardexplus/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidarItemsUnicos(t *testing.T) {
	lineas := []CrearLineaRequerimiento{
		{ItemID: 10, Cantidad: 100},
		{ItemID: 11, Cantidad: 50},
	}
	require.NoError(t, validarItemsUnicos(lineas))
}

func TestValidarItemsUnicosRechazaDuplicados(t *testing.T) {
	// Dispatch addresses lines by item: if item 10 appeared twice, only one
	// of the two lines would ever receive increments and the requirement
	// could never reach Despachado.
	lineas := []CrearLineaRequerimiento{
		{ItemID: 10, Cantidad: 100},
		{ItemID: 10, Cantidad: 50},
	}
	err := validarItemsUnicos(lineas)
	require.Error(t, err)
	assert.Equal(t, types.KindValidation, kindDe(t, err))
}

func TestValidarItemsUnicosRechazaDuplicadoPorPresentacion(t *testing.T) {
	// The same item split across a base line and a presentation line is
	// still a duplicate.
	presentacionID := uint(7)
	dos := 2.0
	lineas := []CrearLineaRequerimiento{
		{ItemID: 10, Cantidad: 100},
		{ItemID: 10, ItemPresentacionID: &presentacionID, CantidadPresentacion: &dos},
	}
	err := validarItemsUnicos(lineas)
	require.Error(t, err)
	assert.Equal(t, types.KindValidation, kindDe(t, err))
}

func TestValidarItemsUnicosSinLineas(t *testing.T) {
	require.NoError(t, validarItemsUnicos(nil))
}
