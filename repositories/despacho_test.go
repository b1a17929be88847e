package repositories

import (
	"testing"

	"kardexplus/models"
	"kardexplus/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func kindDe(t *testing.T, err error) types.ErrorKind {
	t.Helper()
	kind, ok := types.KindOf(err)
	require.True(t, ok)
	return kind
}

func detalleBase(id, itemID uint, solicitada, despachada float64) models.RequerimientoDetalle {
	return models.RequerimientoDetalle{
		Model:              gorm.Model{ID: id},
		ItemID:             itemID,
		CantidadSolicitada: solicitada,
		CantidadDespachada: despachada,
	}
}

func detallePresentacion(id, itemID uint, factor, solicitadaPres, despachadaPres float64) models.RequerimientoDetalle {
	presentacionID := id + 100
	return models.RequerimientoDetalle{
		Model:              gorm.Model{ID: id},
		ItemID:             itemID,
		ItemPresentacionID: &presentacionID,
		Presentacion: &models.ItemPresentacion{
			Model:        gorm.Model{ID: presentacionID},
			ItemID:       itemID,
			CantidadBase: factor,
		},
		CantidadSolicitada:             solicitadaPres * factor,
		CantidadDespachada:             despachadaPres * factor,
		CantidadSolicitadaPresentacion: &solicitadaPres,
		CantidadDespachadaPresentacion: &despachadaPres,
	}
}

func TestPlanificarDespachoParcial(t *testing.T) {
	detalles := []models.RequerimientoDetalle{detalleBase(1, 10, 100, 0)}

	plan, err := PlanificarDespacho(detalles, []LineaDespacho{{ItemID: 10, Cantidad: 40}})
	require.NoError(t, err)

	require.Len(t, plan.Ajustes, 1)
	assert.Equal(t, uint(1), plan.Ajustes[0].DetalleID)
	assert.InDelta(t, 40.0, plan.Ajustes[0].IncrementoBase, types.ToleranciaCantidad)
	assert.False(t, plan.Ajustes[0].PorPresentacion)
	assert.Equal(t, models.EstadoParcialmenteDespachado, plan.EstadoFinal)
}

func TestPlanificarDespachoExcedePendiente(t *testing.T) {
	// 40 of 100 already dispatched, only 60 remain.
	detalles := []models.RequerimientoDetalle{detalleBase(1, 10, 100, 40)}

	_, err := PlanificarDespacho(detalles, []LineaDespacho{{ItemID: 10, Cantidad: 70}})
	require.Error(t, err)
	assert.Equal(t, types.KindValidation, kindDe(t, err))
}

func TestPlanificarDespachoCompletaLinea(t *testing.T) {
	detalles := []models.RequerimientoDetalle{detalleBase(1, 10, 100, 40)}

	plan, err := PlanificarDespacho(detalles, []LineaDespacho{{ItemID: 10, Cantidad: 60}})
	require.NoError(t, err)
	assert.Equal(t, models.EstadoDespachado, plan.EstadoFinal)
}

func TestPlanificarDespachoPorPresentacion(t *testing.T) {
	// 5 boxes of 12 requested, none dispatched yet.
	detalles := []models.RequerimientoDetalle{detallePresentacion(1, 10, 12, 5, 0)}

	dos := 2.0
	plan, err := PlanificarDespacho(detalles, []LineaDespacho{
		{ItemID: 10, CantidadPresentacion: &dos},
	})
	require.NoError(t, err)

	require.Len(t, plan.Ajustes, 1)
	assert.True(t, plan.Ajustes[0].PorPresentacion)
	assert.InDelta(t, 24.0, plan.Ajustes[0].IncrementoBase, types.ToleranciaCantidad)
	assert.InDelta(t, 2.0, plan.Ajustes[0].IncrementoPresentacion, types.ToleranciaCantidad)
	assert.Equal(t, models.EstadoParcialmenteDespachado, plan.EstadoFinal)
}

func TestPlanificarDespachoPresentacionCompleta(t *testing.T) {
	detalles := []models.RequerimientoDetalle{detallePresentacion(1, 10, 12, 5, 2)}

	tres := 3.0
	plan, err := PlanificarDespacho(detalles, []LineaDespacho{
		{ItemID: 10, CantidadPresentacion: &tres},
	})
	require.NoError(t, err)
	assert.Equal(t, models.EstadoDespachado, plan.EstadoFinal)
	assert.InDelta(t, 36.0, plan.Ajustes[0].IncrementoBase, types.ToleranciaCantidad)
}

func TestPlanificarDespachoPresentacionExcede(t *testing.T) {
	// 3 boxes pending, 4 proposed. The base equivalent (48 of 60) would fit,
	// but the governing unit is the presentation.
	detalles := []models.RequerimientoDetalle{detallePresentacion(1, 10, 12, 5, 2)}

	cuatro := 4.0
	_, err := PlanificarDespacho(detalles, []LineaDespacho{
		{ItemID: 10, CantidadPresentacion: &cuatro},
	})
	require.Error(t, err)
	assert.Equal(t, types.KindValidation, kindDe(t, err))
}

func TestPlanificarDespachoPresentacionSinCantidad(t *testing.T) {
	detalles := []models.RequerimientoDetalle{detallePresentacion(1, 10, 12, 5, 0)}

	_, err := PlanificarDespacho(detalles, []LineaDespacho{{ItemID: 10, Cantidad: 24}})
	require.Error(t, err)
	assert.Equal(t, types.KindValidation, kindDe(t, err))
}

func TestPlanificarDespachoCantidadNegativa(t *testing.T) {
	detalles := []models.RequerimientoDetalle{detalleBase(1, 10, 100, 0)}

	_, err := PlanificarDespacho(detalles, []LineaDespacho{{ItemID: 10, Cantidad: -5}})
	require.Error(t, err)
	assert.Equal(t, types.KindValidation, kindDe(t, err))
}

func TestPlanificarDespachoItemDesconocido(t *testing.T) {
	detalles := []models.RequerimientoDetalle{detalleBase(1, 10, 100, 0)}

	_, err := PlanificarDespacho(detalles, []LineaDespacho{{ItemID: 99, Cantidad: 5}})
	require.Error(t, err)
	assert.Equal(t, types.KindValidation, kindDe(t, err))
}

func TestPlanificarDespachoItemDuplicado(t *testing.T) {
	detalles := []models.RequerimientoDetalle{detalleBase(1, 10, 100, 0)}

	_, err := PlanificarDespacho(detalles, []LineaDespacho{
		{ItemID: 10, Cantidad: 10},
		{ItemID: 10, Cantidad: 20},
	})
	require.Error(t, err)
	assert.Equal(t, types.KindValidation, kindDe(t, err))
}

func TestPlanificarDespachoSinLineas(t *testing.T) {
	detalles := []models.RequerimientoDetalle{detalleBase(1, 10, 100, 0)}

	_, err := PlanificarDespacho(detalles, nil)
	require.Error(t, err)
	assert.Equal(t, types.KindValidation, kindDe(t, err))
}

func TestPlanificarDespachoTodoEnCero(t *testing.T) {
	detalles := []models.RequerimientoDetalle{
		detalleBase(1, 10, 100, 0),
		detalleBase(2, 11, 50, 0),
	}

	_, err := PlanificarDespacho(detalles, []LineaDespacho{
		{ItemID: 10, Cantidad: 0},
		{ItemID: 11, Cantidad: 0},
	})
	require.Error(t, err)
	assert.Equal(t, types.KindValidation, kindDe(t, err))
}

func TestPlanificarDespachoMultilinea(t *testing.T) {
	detalles := []models.RequerimientoDetalle{
		detalleBase(1, 10, 100, 0),
		detalleBase(2, 11, 50, 0),
	}

	// One line completes, the other stays short: overall partial.
	plan, err := PlanificarDespacho(detalles, []LineaDespacho{
		{ItemID: 10, Cantidad: 100},
		{ItemID: 11, Cantidad: 30},
	})
	require.NoError(t, err)
	assert.Equal(t, models.EstadoParcialmenteDespachado, plan.EstadoFinal)
	require.Len(t, plan.Ajustes, 2)
}

func TestPlanificarDespachoLineaOmitidaCuentaComoPendiente(t *testing.T) {
	// A line absent from the dispatch keeps its pending amount: completing
	// only the first line cannot close the requirement.
	detalles := []models.RequerimientoDetalle{
		detalleBase(1, 10, 100, 0),
		detalleBase(2, 11, 50, 0),
	}

	plan, err := PlanificarDespacho(detalles, []LineaDespacho{
		{ItemID: 10, Cantidad: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, models.EstadoParcialmenteDespachado, plan.EstadoFinal)
}

func TestPlanificarDespachoCompletaTodas(t *testing.T) {
	detalles := []models.RequerimientoDetalle{
		detalleBase(1, 10, 100, 60),
		detallePresentacion(2, 11, 12, 5, 4),
	}

	una := 1.0
	plan, err := PlanificarDespacho(detalles, []LineaDespacho{
		{ItemID: 10, Cantidad: 40},
		{ItemID: 11, CantidadPresentacion: &una},
	})
	require.NoError(t, err)
	assert.Equal(t, models.EstadoDespachado, plan.EstadoFinal)
}

func TestPlanificarDespachoToleraRuidoFlotante(t *testing.T) {
	detalles := []models.RequerimientoDetalle{detalleBase(1, 10, 0.3, 0.1)}

	// 0.3-0.1 carries float noise; a dispatch of 0.2 must still fit.
	plan, err := PlanificarDespacho(detalles, []LineaDespacho{{ItemID: 10, Cantidad: 0.2}})
	require.NoError(t, err)
	assert.Equal(t, models.EstadoDespachado, plan.EstadoFinal)
}
