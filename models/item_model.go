package models

import "gorm.io/gorm"

type Categoria struct {
	gorm.Model
	Nombre      string `json:"nombre" gorm:"unique;not null"`
	Descripcion string `json:"descripcion"`
}

// Item is a catalog product. Cantidades are always tracked in UnidadMedida
// (the base unit); alternate packagings live in ItemPresentacion.
type Item struct {
	gorm.Model
	Codigo         string    `json:"codigo" gorm:"unique;not null" validate:"required"`
	Nombre         string    `json:"nombre" gorm:"not null" validate:"required"`
	Descripcion    string    `json:"descripcion"`
	CategoriaID    *uint     `json:"categoria_id" gorm:"index"`
	Categoria      *Categoria `json:"categoria,omitempty" gorm:"foreignKey:CategoriaID"`
	UnidadMedida   string    `json:"unidad_medida" gorm:"not null;default:'UND'"`
	Costo          float64   `json:"costo" gorm:"type:decimal(14,4);default:0"`
	PrecioSugerido float64   `json:"precio_sugerido" gorm:"type:decimal(14,4);default:0"`
	IsActive       bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedBy      int
	UpdatedBy      int
	DeletedBy      int
}

// ItemPresentacion is an alternate packaging unit for an item ("caja de 12").
// CantidadBase is the conversion factor: how many base units one presentation
// unit equals. It must be strictly positive.
type ItemPresentacion struct {
	gorm.Model
	ItemID       uint    `json:"item_id" gorm:"not null;index"`
	Item         *Item   `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Nombre       string  `json:"nombre" gorm:"not null" validate:"required"`
	CantidadBase float64 `json:"cantidad_base" gorm:"type:decimal(14,4);not null" validate:"required,gt=0"`
	// SKU and barcode identify the presentation system-wide.
	SKU       string `json:"sku" gorm:"uniqueIndex"`
	Barcode   string `json:"barcode" gorm:"uniqueIndex"`
	IsActive  bool   `json:"is_active" gorm:"not null;default:true"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int
}

func (ItemPresentacion) TableName() string { return "item_presentaciones" }
