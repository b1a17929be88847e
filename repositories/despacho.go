package repositories

import (
	"fmt"

	"kardexplus/models"
	"kardexplus/types"
)

// LineaDespacho is one proposed per-line dispatch. For presentation-based
// lines the presentation amount governs; any client-submitted base amount is
// ignored and recomputed from the conversion factor.
type LineaDespacho struct {
	ItemID               uint     `json:"Item_Id" validate:"required"`
	Cantidad             float64  `json:"Cantidad_Despachada"`
	CantidadPresentacion *float64 `json:"Cantidad_Despachada_Presentacion"`
}

// AjusteLinea is the validated increment for a single requirement line.
type AjusteLinea struct {
	DetalleID              uint
	ItemID                 uint
	PorPresentacion        bool
	IncrementoBase         float64
	IncrementoPresentacion float64
}

// PlanDespacho is the outcome of reconciling proposed quantities against the
// requirement's pending amounts. Applying it is all-or-nothing.
type PlanDespacho struct {
	Ajustes     []AjusteLinea
	EstadoFinal models.EstadoRequerimiento
}

// PlanificarDespacho validates the proposed quantities against each line's
// pending amount, in the line's governing unit, and computes the increments
// and the requirement status that results from applying them.
//
// Rules:
//   - every referenced line must exist in the requirement
//   - quantities must not be negative nor exceed the line's pending amount
//   - at least one line must receive a strictly positive quantity
//   - presentation lines record base increments of presentacion × factor
func PlanificarDespacho(detalles []models.RequerimientoDetalle, lineas []LineaDespacho) (*PlanDespacho, error) {
	if len(lineas) == 0 {
		return nil, types.NewValidation("debe enviar al menos una línea de despacho")
	}

	porItem := make(map[uint]*models.RequerimientoDetalle, len(detalles))
	for i := range detalles {
		porItem[detalles[i].ItemID] = &detalles[i]
	}

	plan := &PlanDespacho{}
	// Projected cumulative dispatched per line, in its governing unit.
	proyectado := make(map[uint]float64, len(lineas))
	positivas := 0

	for _, linea := range lineas {
		detalle, ok := porItem[linea.ItemID]
		if !ok {
			return nil, types.NewValidation(fmt.Sprintf("el item %d no pertenece al requerimiento", linea.ItemID))
		}
		if _, visto := proyectado[detalle.ID]; visto {
			return nil, types.NewValidation(fmt.Sprintf("el item %d aparece más de una vez en el despacho", linea.ItemID))
		}

		var cantidad types.Cantidad
		var solicitada, despachada float64

		if detalle.EsPorPresentacion() {
			if linea.CantidadPresentacion == nil {
				return nil, types.NewValidation(fmt.Sprintf(
					"el item %d se solicita por presentación, envíe Cantidad_Despachada_Presentacion", linea.ItemID))
			}
			if detalle.Presentacion == nil || detalle.Presentacion.CantidadBase <= 0 {
				return nil, types.NewValidation(fmt.Sprintf(
					"presentación inválida para el item %d", linea.ItemID))
			}
			var err error
			cantidad, err = types.NuevaCantidadPresentacion(*linea.CantidadPresentacion, detalle.Presentacion.CantidadBase)
			if err != nil {
				return nil, err
			}
			if detalle.CantidadSolicitadaPresentacion != nil {
				solicitada = *detalle.CantidadSolicitadaPresentacion
			}
			if detalle.CantidadDespachadaPresentacion != nil {
				despachada = *detalle.CantidadDespachadaPresentacion
			}
		} else {
			cantidad = types.NuevaCantidadBase(linea.Cantidad)
			solicitada = detalle.CantidadSolicitada
			despachada = detalle.CantidadDespachada
		}

		propuesta, _ := cantidad.Presentacion()
		if propuesta < 0 {
			return nil, types.NewValidation(fmt.Sprintf("cantidad negativa para el item %d", linea.ItemID))
		}

		pendiente := solicitada - despachada
		if pendiente < 0 {
			pendiente = 0
		}
		if propuesta > pendiente+types.ToleranciaCantidad {
			return nil, types.NewValidation(fmt.Sprintf(
				"la cantidad %v excede lo pendiente %v para el item %d", propuesta, pendiente, linea.ItemID))
		}

		if propuesta > types.ToleranciaCantidad {
			positivas++
		}

		proyectado[detalle.ID] = despachada + propuesta
		plan.Ajustes = append(plan.Ajustes, AjusteLinea{
			DetalleID:              detalle.ID,
			ItemID:                 detalle.ItemID,
			PorPresentacion:        detalle.EsPorPresentacion(),
			IncrementoBase:         cantidad.Base(),
			IncrementoPresentacion: incrementoPresentacion(cantidad),
		})
	}

	if positivas == 0 {
		return nil, types.NewValidation("al menos una línea debe recibir una cantidad mayor a cero")
	}

	plan.EstadoFinal = estadoResultante(detalles, proyectado)
	return plan, nil
}

func incrementoPresentacion(c types.Cantidad) float64 {
	if amount, ok := c.Presentacion(); ok {
		return amount
	}
	return 0
}

// estadoResultante decides the status after applying the projected cumulative
// amounts: Despachado only when every line is complete in its governing unit.
func estadoResultante(detalles []models.RequerimientoDetalle, proyectado map[uint]float64) models.EstadoRequerimiento {
	for i := range detalles {
		d := &detalles[i]

		var solicitada, despachada float64
		if d.EsPorPresentacion() {
			if d.CantidadSolicitadaPresentacion != nil {
				solicitada = *d.CantidadSolicitadaPresentacion
			}
			if d.CantidadDespachadaPresentacion != nil {
				despachada = *d.CantidadDespachadaPresentacion
			}
		} else {
			solicitada = d.CantidadSolicitada
			despachada = d.CantidadDespachada
		}
		if nueva, ok := proyectado[d.ID]; ok {
			despachada = nueva
		}

		if despachada < solicitada-types.ToleranciaCantidad {
			return models.EstadoParcialmenteDespachado
		}
	}
	return models.EstadoDespachado
}
