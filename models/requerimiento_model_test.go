package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstadoPuedeAprobar(t *testing.T) {
	assert.True(t, EstadoPendiente.PuedeAprobar())

	for _, estado := range []EstadoRequerimiento{
		EstadoAprobado, EstadoEnDespacho, EstadoParcialmenteDespachado,
		EstadoDespachado, EstadoCancelado,
	} {
		assert.False(t, estado.PuedeAprobar(), "estado %s", estado)
	}
}

func TestEstadoPuedeCancelar(t *testing.T) {
	assert.True(t, EstadoPendiente.PuedeCancelar())
	assert.False(t, EstadoAprobado.PuedeCancelar())
	assert.False(t, EstadoDespachado.PuedeCancelar())
	assert.False(t, EstadoCancelado.PuedeCancelar())
}

func TestEstadoPuedeDespachar(t *testing.T) {
	// Dispatch requires an approval first.
	assert.False(t, EstadoPendiente.PuedeDespachar())
	assert.True(t, EstadoAprobado.PuedeDespachar())
	assert.True(t, EstadoEnDespacho.PuedeDespachar())
	assert.True(t, EstadoParcialmenteDespachado.PuedeDespachar())
	assert.False(t, EstadoDespachado.PuedeDespachar())
	assert.False(t, EstadoCancelado.PuedeDespachar())
}

func TestEstadoEsFinal(t *testing.T) {
	assert.True(t, EstadoDespachado.EsFinal())
	assert.True(t, EstadoCancelado.EsFinal())
	assert.False(t, EstadoPendiente.EsFinal())
	assert.False(t, EstadoParcialmenteDespachado.EsFinal())
}

func TestCalcularPendientes(t *testing.T) {
	d := RequerimientoDetalle{
		CantidadSolicitada: 100,
		CantidadDespachada: 40,
	}
	d.CalcularPendientes()
	assert.Equal(t, 60.0, d.CantidadPendiente)
	assert.Nil(t, d.CantidadPendientePresentacion)
}

func TestCalcularPendientesPorPresentacion(t *testing.T) {
	presentacionID := uint(7)
	solicitada := 5.0
	despachada := 2.0

	d := RequerimientoDetalle{
		ItemPresentacionID:             &presentacionID,
		CantidadSolicitada:             60,
		CantidadDespachada:             24,
		CantidadSolicitadaPresentacion: &solicitada,
		CantidadDespachadaPresentacion: &despachada,
	}
	d.CalcularPendientes()

	assert.Equal(t, 36.0, d.CantidadPendiente)
	if assert.NotNil(t, d.CantidadPendientePresentacion) {
		assert.Equal(t, 3.0, *d.CantidadPendientePresentacion)
	}
}

func TestCalcularPendientesNuncaNegativo(t *testing.T) {
	d := RequerimientoDetalle{
		CantidadSolicitada: 10,
		CantidadDespachada: 12,
	}
	d.CalcularPendientes()
	assert.Equal(t, 0.0, d.CantidadPendiente)
}
