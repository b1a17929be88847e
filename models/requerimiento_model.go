package models

import (
	"time"

	"gorm.io/gorm"
)

// EstadoRequerimiento is the lifecycle status of a requirement.
type EstadoRequerimiento string

const (
	EstadoPendiente              EstadoRequerimiento = "Pendiente"
	EstadoAprobado               EstadoRequerimiento = "Aprobado"
	EstadoEnDespacho             EstadoRequerimiento = "En_Despacho"
	EstadoParcialmenteDespachado EstadoRequerimiento = "Parcialmente_Despachado"
	EstadoDespachado             EstadoRequerimiento = "Despachado"
	EstadoCancelado              EstadoRequerimiento = "Cancelado"
)

// PuedeAprobar reports whether an approval action is allowed.
func (e EstadoRequerimiento) PuedeAprobar() bool {
	return e == EstadoPendiente
}

// PuedeCancelar reports whether the requirement can still be cancelled.
func (e EstadoRequerimiento) PuedeCancelar() bool {
	return e == EstadoPendiente
}

// PuedeDespachar reports whether a dispatch may be recorded. A requirement
// must pass through Aprobado first; Pendiente is never dispatchable.
func (e EstadoRequerimiento) PuedeDespachar() bool {
	switch e {
	case EstadoAprobado, EstadoEnDespacho, EstadoParcialmenteDespachado:
		return true
	default:
		return false
	}
}

// EsFinal reports whether the status is terminal.
func (e EstadoRequerimiento) EsFinal() bool {
	return e == EstadoDespachado || e == EstadoCancelado
}

// Requerimiento is a request to move stock from an origin bodega to a
// destination bodega. Origin and destination are always distinct.
type Requerimiento struct {
	gorm.Model
	Numero                 string              `json:"numero" gorm:"unique;not null"`
	UsuarioID              uint                `json:"usuario_id" gorm:"not null"`
	OrigenBodegaID         uint                `json:"origen_bodega_id" gorm:"not null;index"`
	OrigenBodega           *Bodega             `json:"origen_bodega,omitempty" gorm:"foreignKey:OrigenBodegaID"`
	DestinoBodegaID        uint                `json:"destino_bodega_id" gorm:"not null;index"`
	DestinoBodega          *Bodega             `json:"destino_bodega,omitempty" gorm:"foreignKey:DestinoBodegaID"`
	Estado                 EstadoRequerimiento `json:"estado" gorm:"not null;default:'Pendiente';index"`
	Motivo                 string              `json:"motivo"`
	Observaciones          string              `json:"observaciones"`
	ObservacionesDespacho  string              `json:"observaciones_despacho"`
	AprobadoPor            *uint               `json:"aprobado_por"`
	FechaAprobacion        *time.Time          `json:"fecha_aprobacion"`
	DespachadoPor          *uint               `json:"despachado_por"`
	FechaDespacho          *time.Time          `json:"fecha_despacho"`
	Detalles               []RequerimientoDetalle `json:"detalles" gorm:"foreignKey:RequerimientoID"`
	CreatedBy              int
	UpdatedBy              int
}

// RequerimientoDetalle is one requested item within a requirement. Cantidades
// *Solicitada/*Despachada are base units; when the line was captured by
// presentation the *Presentacion columns hold the governing amounts and the
// base columns are recomputed server-side from the conversion factor.
type RequerimientoDetalle struct {
	gorm.Model
	RequerimientoID                uint              `json:"requerimiento_id" gorm:"not null;index"`
	ItemID                         uint              `json:"item_id" gorm:"not null;index"`
	Item                           *Item             `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	CantidadSolicitada             float64           `json:"cantidad_solicitada" gorm:"type:decimal(14,4);not null"`
	CantidadDespachada             float64           `json:"cantidad_despachada" gorm:"type:decimal(14,4);not null;default:0"`
	ItemPresentacionID             *uint             `json:"item_presentacion_id"`
	Presentacion                   *ItemPresentacion `json:"presentacion,omitempty" gorm:"foreignKey:ItemPresentacionID"`
	CantidadSolicitadaPresentacion *float64          `json:"cantidad_solicitada_presentacion" gorm:"type:decimal(14,4)"`
	CantidadDespachadaPresentacion *float64          `json:"cantidad_despachada_presentacion" gorm:"type:decimal(14,4)"`

	// Computed on read, never persisted.
	CantidadPendiente             float64  `json:"cantidad_pendiente" gorm:"-"`
	CantidadPendientePresentacion *float64 `json:"cantidad_pendiente_presentacion" gorm:"-"`
}

func (RequerimientoDetalle) TableName() string { return "requerimiento_detalles" }

// EsPorPresentacion reports whether the line's governing unit is a
// presentation.
func (d *RequerimientoDetalle) EsPorPresentacion() bool {
	return d.ItemPresentacionID != nil
}

// CalcularPendientes fills the computed pending quantities, floored at zero.
func (d *RequerimientoDetalle) CalcularPendientes() {
	d.CantidadPendiente = pendiente(d.CantidadSolicitada, d.CantidadDespachada)
	if d.EsPorPresentacion() && d.CantidadSolicitadaPresentacion != nil {
		despachada := 0.0
		if d.CantidadDespachadaPresentacion != nil {
			despachada = *d.CantidadDespachadaPresentacion
		}
		p := pendiente(*d.CantidadSolicitadaPresentacion, despachada)
		d.CantidadPendientePresentacion = &p
	}
}

func pendiente(solicitada, despachada float64) float64 {
	p := solicitada - despachada
	if p < 0 {
		return 0
	}
	return p
}
