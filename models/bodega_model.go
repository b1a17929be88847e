package models

import "gorm.io/gorm"

// Bodega is a physical stock-holding location.
type Bodega struct {
	gorm.Model
	Codigo      string `json:"codigo" gorm:"unique;not null" validate:"required"`
	Nombre      string `json:"nombre" gorm:"not null" validate:"required"`
	Ubicacion   string `json:"ubicacion"`
	Responsable string `json:"responsable"`
	IsActive    bool   `json:"is_active" gorm:"not null;default:true"`
	CreatedBy   int
	UpdatedBy   int
	DeletedBy   int
}

// BodegaStock is the on-hand quantity of an item in a bodega, in base units.
type BodegaStock struct {
	gorm.Model
	BodegaID  uint    `json:"bodega_id" gorm:"not null;uniqueIndex:idx_bodega_item"`
	ItemID    uint    `json:"item_id" gorm:"not null;uniqueIndex:idx_bodega_item"`
	Cantidad  float64 `json:"cantidad" gorm:"type:decimal(14,4);not null;default:0"`
	CantidadMinima float64 `json:"cantidad_minima" gorm:"type:decimal(14,4);default:0"`
	UpdatedBy int
}

func (BodegaStock) TableName() string { return "bodega_stocks" }
