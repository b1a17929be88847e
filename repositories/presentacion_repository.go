package repositories

import (
	"errors"
	"fmt"

	"kardexplus/models"
	"kardexplus/types"

	"gorm.io/gorm"
)

type PresentacionRepository struct {
	DB *gorm.DB
}

func NewPresentacionRepository(DB *gorm.DB) *PresentacionRepository {
	return &PresentacionRepository{DB: DB}
}

// ObtenerPorID loads an active presentation or fails NotFound.
func (r *PresentacionRepository) ObtenerPorID(id uint) (*models.ItemPresentacion, error) {
	var presentacion models.ItemPresentacion
	if err := r.DB.First(&presentacion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFound(fmt.Sprintf("presentación %d no encontrada", id))
		}
		return nil, err
	}
	return &presentacion, nil
}

// ObtenerParaItem loads a presentation and verifies it belongs to the item
// and carries a usable conversion factor.
func (r *PresentacionRepository) ObtenerParaItem(presentacionID uint, itemID uint) (*models.ItemPresentacion, error) {
	presentacion, err := r.ObtenerPorID(presentacionID)
	if err != nil {
		return nil, err
	}
	if presentacion.ItemID != itemID {
		return nil, types.NewValidation(fmt.Sprintf(
			"la presentación %d no pertenece al item %d", presentacionID, itemID))
	}
	if presentacion.CantidadBase <= 0 {
		return nil, types.NewValidation(fmt.Sprintf(
			"factor de conversión inválido en la presentación %d", presentacionID))
	}
	return presentacion, nil
}

// IdentificadorDisponible checks that a SKU or barcode is not already taken by
// another presentation. Identity is system-wide, not per item.
func (r *PresentacionRepository) IdentificadorDisponible(campo string, valor string, excluirID uint) (bool, error) {
	if valor == "" {
		return true, nil
	}
	if campo != "sku" && campo != "barcode" {
		return false, fmt.Errorf("unknown identifier field: %s", campo)
	}

	var count int64
	query := r.DB.Model(&models.ItemPresentacion{}).Where(campo+" = ?", valor)
	if excluirID > 0 {
		query = query.Where("id <> ?", excluirID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}
