package models

import (
	"time"

	"kardexplus/types"

	"gorm.io/gorm"
)

const (
	MovimientoEntrada       = "Entrada"
	MovimientoSalida        = "Salida"
	MovimientoTransferencia = "Transferencia"
	MovimientoAjuste        = "Ajuste"
)

// Movimiento is one entry of the stock ledger. Depending on the type it
// references an origin bodega, a destination bodega, or both.
type Movimiento struct {
	ID              types.SnowflakeID `json:"id" gorm:"primaryKey"`
	Tipo            string            `json:"tipo" gorm:"not null;index"`
	OrigenBodegaID  *uint             `json:"origen_bodega_id" gorm:"index"`
	DestinoBodegaID *uint             `json:"destino_bodega_id" gorm:"index"`
	UsuarioID       uint              `json:"usuario_id" gorm:"not null"`
	Motivo          string            `json:"motivo"`
	// Set when the movement was produced by a requirement dispatch.
	RequerimientoID *uint               `json:"requerimiento_id" gorm:"index"`
	Detalles        []MovimientoDetalle `json:"detalles" gorm:"foreignKey:MovimientoID"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	DeletedAt       gorm.DeletedAt      `json:"-"`
}

// MovimientoDetalle mirrors the requirement line's dual-unit representation:
// Cantidad is always base units; when the line was captured by presentation,
// CantidadPresentacion holds the packaging amount and Cantidad is recomputed
// server-side as presentacion × factor.
type MovimientoDetalle struct {
	ID                   uint              `json:"id" gorm:"primaryKey"`
	MovimientoID         types.SnowflakeID `json:"movimiento_id" gorm:"not null;index"`
	ItemID               uint              `json:"item_id" gorm:"not null;index"`
	Item                 *Item             `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Cantidad             float64           `json:"cantidad" gorm:"type:decimal(14,4);not null"`
	ItemPresentacionID   *uint             `json:"item_presentacion_id"`
	Presentacion         *ItemPresentacion `json:"presentacion,omitempty" gorm:"foreignKey:ItemPresentacionID"`
	CantidadPresentacion *float64          `json:"cantidad_presentacion" gorm:"type:decimal(14,4)"`
	// For Ajuste lines: the on-hand quantity before the adjustment.
	CantidadAnterior *float64  `json:"cantidad_anterior" gorm:"type:decimal(14,4)"`
	CreatedAt        time.Time `json:"created_at"`
}

func (MovimientoDetalle) TableName() string { return "movimiento_detalles" }
