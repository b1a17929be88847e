package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSiguienteNumeroRequerimiento(t *testing.T) {
	hoy := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	// First document of the day.
	assert.Equal(t, "RQ2608280001", siguienteNumeroRequerimiento("", hoy))

	// Sequence continues within the same day.
	assert.Equal(t, "RQ2608280002", siguienteNumeroRequerimiento("RQ2608280001", hoy))
	assert.Equal(t, "RQ2608280100", siguienteNumeroRequerimiento("RQ2608280099", hoy))

	// Date change resets the sequence.
	manana := hoy.AddDate(0, 0, 1)
	assert.Equal(t, "RQ2608290001", siguienteNumeroRequerimiento("RQ2608280123", manana))
}

func TestSiguienteNumeroRequerimientoUltimoInvalido(t *testing.T) {
	hoy := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "RQ2608280001", siguienteNumeroRequerimiento("garbage", hoy))
}
