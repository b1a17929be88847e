package types

import "fmt"

// ToleranciaCantidad is the float tolerance used when comparing quantities.
const ToleranciaCantidad = 1e-6

// Cantidad is a quantity expressed either directly in an item's base unit or
// in one of its presentations (e.g. "box of 12"). The base-unit equivalent is
// always derived from the presentation amount and its conversion factor, so
// the two representations can never diverge.
type Cantidad struct {
	porPresentacion bool
	cantidad        float64
	factor          float64
}

// NuevaCantidadBase builds a quantity already expressed in base units.
func NuevaCantidadBase(cantidad float64) Cantidad {
	return Cantidad{cantidad: cantidad}
}

// NuevaCantidadPresentacion builds a quantity expressed in presentation units.
// The conversion factor must be strictly positive.
func NuevaCantidadPresentacion(cantidad float64, factor float64) (Cantidad, error) {
	if factor <= 0 {
		return Cantidad{}, NewValidation(fmt.Sprintf("factor de conversión inválido: %v", factor))
	}
	return Cantidad{porPresentacion: true, cantidad: cantidad, factor: factor}, nil
}

// Base returns the base-unit equivalent of the quantity.
func (c Cantidad) Base() float64 {
	if c.porPresentacion {
		return PresentacionABase(c.cantidad, c.factor)
	}
	return c.cantidad
}

// Presentacion returns the presentation amount and whether the quantity is
// presentation-based at all.
func (c Cantidad) Presentacion() (float64, bool) {
	return c.cantidad, c.porPresentacion
}

// EsPorPresentacion reports whether the governing unit is a presentation.
func (c Cantidad) EsPorPresentacion() bool {
	return c.porPresentacion
}

// PresentacionABase converts presentation units to base units. The factor
// must be positive; callers validate it through NuevaCantidadPresentacion.
func PresentacionABase(cantidad float64, factor float64) float64 {
	return cantidad * factor
}

// BaseAPresentacion converts base units to presentation units. A non-positive
// factor yields zero.
func BaseAPresentacion(cantidad float64, factor float64) float64 {
	if factor <= 0 {
		return 0
	}
	return cantidad / factor
}
