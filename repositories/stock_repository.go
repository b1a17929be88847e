package repositories

import (
	"errors"
	"fmt"

	"kardexplus/database"
	"kardexplus/models"
	"kardexplus/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository struct {
	DB *gorm.DB
}

// NewStockRepository works over a plain connection or an open transaction;
// movement and dispatch code passes its tx handle here.
func NewStockRepository(DB *gorm.DB) *StockRepository {
	return &StockRepository{DB: DB}
}

type StockBodegaRow struct {
	ItemID         uint    `json:"item_id"`
	ItemCodigo     string  `json:"item_codigo"`
	ItemNombre     string  `json:"item_nombre"`
	UnidadMedida   string  `json:"unidad_medida"`
	Cantidad       float64 `json:"cantidad"`
	CantidadMinima float64 `json:"cantidad_minima"`
	BajoMinimo     bool    `json:"bajo_minimo"`
}

// ObtenerPorBodega lists the stock of a bodega with item data, flagging rows
// under their minimum.
func (r *StockRepository) ObtenerPorBodega(bodegaID uint) ([]StockBodegaRow, error) {
	t := database.Tablas()
	sql := fmt.Sprintf(`SELECT s.item_id, i.codigo AS item_codigo, i.nombre AS item_nombre,
		i.unidad_medida, s.cantidad, s.cantidad_minima,
		CASE WHEN s.cantidad < s.cantidad_minima THEN 1 ELSE 0 END AS bajo_minimo
		FROM %s s
		INNER JOIN %s i ON i.id = s.item_id
		WHERE s.bodega_id = ? AND s.deleted_at IS NULL
		ORDER BY i.codigo ASC`,
		t.Resolve(database.TablaBodegaStocks), t.Resolve(database.TablaItems))

	var rows []StockBodegaRow
	if err := r.DB.Raw(sql, bodegaID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// BloquearFila locks the stock row of an item in a bodega for the rest of the
// transaction, creating it at zero if absent.
func (r *StockRepository) BloquearFila(bodegaID uint, itemID uint) (*models.BodegaStock, error) {
	var stock models.BodegaStock
	err := r.DB.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("bodega_id = ? AND item_id = ?", bodegaID, itemID).
		First(&stock).Error
	if err == nil {
		return &stock, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	stock = models.BodegaStock{BodegaID: bodegaID, ItemID: itemID, Cantidad: 0}
	if err := r.DB.Create(&stock).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

// Aumentar adds base units to a bodega's stock row, creating it if needed.
func (r *StockRepository) Aumentar(bodegaID uint, itemID uint, cantidad float64, usuarioID uint) error {
	if _, err := r.BloquearFila(bodegaID, itemID); err != nil {
		return err
	}
	return r.DB.Model(&models.BodegaStock{}).
		Where("bodega_id = ? AND item_id = ?", bodegaID, itemID).
		Updates(map[string]interface{}{
			"cantidad":   gorm.Expr("cantidad + ?", cantidad),
			"updated_by": usuarioID,
		}).Error
}

// Disminuir subtracts base units guarding against negatives: the UPDATE only
// matches while enough stock remains, so a concurrent writer cannot take the
// row below zero.
func (r *StockRepository) Disminuir(bodegaID uint, itemID uint, cantidad float64, usuarioID uint, itemCodigo string) error {
	res := r.DB.Model(&models.BodegaStock{}).
		Where("bodega_id = ? AND item_id = ? AND cantidad + ? >= ?", bodegaID, itemID, types.ToleranciaCantidad, cantidad).
		Updates(map[string]interface{}{
			"cantidad":   gorm.Expr("cantidad - ?", cantidad),
			"updated_by": usuarioID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.NewInsufficientStock(fmt.Sprintf(
			"Stock insuficiente para el item %s en la bodega %d", itemCodigo, bodegaID))
	}
	return nil
}

// FijarCantidad sets the on-hand quantity to an absolute value (Ajuste) and
// returns the previous quantity.
func (r *StockRepository) FijarCantidad(bodegaID uint, itemID uint, cantidad float64, usuarioID uint) (float64, error) {
	stock, err := r.BloquearFila(bodegaID, itemID)
	if err != nil {
		return 0, err
	}
	anterior := stock.Cantidad

	err = r.DB.Model(&models.BodegaStock{}).
		Where("bodega_id = ? AND item_id = ?", bodegaID, itemID).
		Updates(map[string]interface{}{
			"cantidad":   cantidad,
			"updated_by": usuarioID,
		}).Error
	if err != nil {
		return 0, err
	}
	return anterior, nil
}
