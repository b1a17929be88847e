package repositories

import (
	"errors"
	"fmt"

	"kardexplus/controllers/idgen"
	"kardexplus/database"
	"kardexplus/models"
	"kardexplus/types"

	"gorm.io/gorm"
)

type MovimientoRepository struct {
	DB *gorm.DB
}

func NewMovimientoRepository(DB *gorm.DB) *MovimientoRepository {
	return &MovimientoRepository{DB: DB}
}

type CrearLineaMovimiento struct {
	ItemID               uint     `json:"Item_Id" validate:"required"`
	Cantidad             float64  `json:"Cantidad"`
	ItemPresentacionID   *uint    `json:"Item_Presentaciones_Id"`
	CantidadPresentacion *float64 `json:"Cantidad_Presentacion"`
}

type CrearMovimientoInput struct {
	Tipo            string                 `json:"Tipo" validate:"required"`
	OrigenBodegaID  *uint                  `json:"Origen_Bodega_Id"`
	DestinoBodegaID *uint                  `json:"Destino_Bodega_Id"`
	Motivo          string                 `json:"Motivo"`
	Detalles        []CrearLineaMovimiento `json:"Items" validate:"required"`
	UsuarioID       uint                   `json:"-"`
}

// Crear records a stock movement and applies its effect to the bodega stock
// rows inside one transaction. Which bodegas are required depends on the
// type: Entrada needs a destination, Salida an origin, Transferencia both
// (distinct), Ajuste the bodega being adjusted as destination.
//
// For Ajuste lines Cantidad is the new absolute on-hand amount, not a delta;
// the previous amount is kept on the line.
func (r *MovimientoRepository) Crear(input CrearMovimientoInput) (*models.Movimiento, error) {
	if err := validarBodegasMovimiento(input); err != nil {
		return nil, err
	}
	if len(input.Detalles) == 0 {
		return nil, types.NewValidation("el movimiento no tiene líneas")
	}

	for _, id := range bodegasDe(input) {
		var bodega models.Bodega
		if err := r.DB.First(&bodega, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, types.NewNotFound(fmt.Sprintf("bodega %d no encontrada", id))
			}
			return nil, err
		}
	}

	movimiento := models.Movimiento{
		ID:              types.SnowflakeID(idgen.GenerateID()),
		Tipo:            input.Tipo,
		OrigenBodegaID:  input.OrigenBodegaID,
		DestinoBodegaID: input.DestinoBodegaID,
		UsuarioID:       input.UsuarioID,
		Motivo:          input.Motivo,
	}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		presentaciones := NewPresentacionRepository(tx)
		stock := NewStockRepository(tx)

		for _, linea := range input.Detalles {
			var item models.Item
			if err := tx.First(&item, linea.ItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return types.NewNotFound(fmt.Sprintf("item %d no encontrado", linea.ItemID))
				}
				return err
			}
			if !item.IsActive {
				return types.NewValidation(fmt.Sprintf("el item %s está inactivo", item.Codigo))
			}

			detalle := models.MovimientoDetalle{
				MovimientoID: movimiento.ID,
				ItemID:       linea.ItemID,
			}

			if linea.ItemPresentacionID != nil {
				if linea.CantidadPresentacion == nil || *linea.CantidadPresentacion <= 0 {
					return types.NewValidation(fmt.Sprintf(
						"cantidad por presentación inválida para el item %s", item.Codigo))
				}
				presentacion, err := presentaciones.ObtenerParaItem(*linea.ItemPresentacionID, linea.ItemID)
				if err != nil {
					return err
				}
				cantidad, err := types.NuevaCantidadPresentacion(*linea.CantidadPresentacion, presentacion.CantidadBase)
				if err != nil {
					return err
				}
				detalle.ItemPresentacionID = linea.ItemPresentacionID
				detalle.CantidadPresentacion = linea.CantidadPresentacion
				detalle.Cantidad = cantidad.Base()
			} else {
				if input.Tipo != models.MovimientoAjuste && linea.Cantidad <= 0 {
					return types.NewValidation(fmt.Sprintf(
						"cantidad inválida para el item %s", item.Codigo))
				}
				if linea.Cantidad < 0 {
					return types.NewValidation(fmt.Sprintf(
						"cantidad negativa para el item %s", item.Codigo))
				}
				detalle.Cantidad = linea.Cantidad
			}

			switch input.Tipo {
			case models.MovimientoEntrada:
				if err := stock.Aumentar(*input.DestinoBodegaID, linea.ItemID, detalle.Cantidad, input.UsuarioID); err != nil {
					return err
				}
			case models.MovimientoSalida:
				if err := stock.Disminuir(*input.OrigenBodegaID, linea.ItemID, detalle.Cantidad, input.UsuarioID, item.Codigo); err != nil {
					return err
				}
			case models.MovimientoTransferencia:
				if err := stock.Disminuir(*input.OrigenBodegaID, linea.ItemID, detalle.Cantidad, input.UsuarioID, item.Codigo); err != nil {
					return err
				}
				if err := stock.Aumentar(*input.DestinoBodegaID, linea.ItemID, detalle.Cantidad, input.UsuarioID); err != nil {
					return err
				}
			case models.MovimientoAjuste:
				anterior, err := stock.FijarCantidad(*input.DestinoBodegaID, linea.ItemID, detalle.Cantidad, input.UsuarioID)
				if err != nil {
					return err
				}
				detalle.CantidadAnterior = &anterior
			}

			movimiento.Detalles = append(movimiento.Detalles, detalle)
		}

		return tx.Create(&movimiento).Error
	})
	if err != nil {
		return nil, err
	}

	return r.ObtenerPorID(int64(movimiento.ID))
}

func validarBodegasMovimiento(input CrearMovimientoInput) error {
	switch input.Tipo {
	case models.MovimientoEntrada:
		if input.DestinoBodegaID == nil {
			return types.NewValidation("una entrada requiere bodega destino")
		}
	case models.MovimientoSalida:
		if input.OrigenBodegaID == nil {
			return types.NewValidation("una salida requiere bodega origen")
		}
	case models.MovimientoTransferencia:
		if input.OrigenBodegaID == nil || input.DestinoBodegaID == nil {
			return types.NewValidation("una transferencia requiere bodega origen y destino")
		}
		if *input.OrigenBodegaID == *input.DestinoBodegaID {
			return types.NewValidation("la bodega origen y destino no pueden ser la misma")
		}
	case models.MovimientoAjuste:
		if input.DestinoBodegaID == nil {
			return types.NewValidation("un ajuste requiere la bodega a ajustar como destino")
		}
	default:
		return types.NewValidation(fmt.Sprintf("tipo de movimiento desconocido: %s", input.Tipo))
	}
	return nil
}

func bodegasDe(input CrearMovimientoInput) []uint {
	var ids []uint
	if input.OrigenBodegaID != nil {
		ids = append(ids, *input.OrigenBodegaID)
	}
	if input.DestinoBodegaID != nil && (input.OrigenBodegaID == nil || *input.DestinoBodegaID != *input.OrigenBodegaID) {
		ids = append(ids, *input.DestinoBodegaID)
	}
	return ids
}

// ObtenerPorID loads a movement with lines, items and bodegas.
func (r *MovimientoRepository) ObtenerPorID(id int64) (*models.Movimiento, error) {
	var movimiento models.Movimiento
	err := r.DB.
		Preload("Detalles.Item").
		Preload("Detalles.Presentacion").
		First(&movimiento, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFound(fmt.Sprintf("movimiento %d no encontrado", id))
		}
		return nil, err
	}
	return &movimiento, nil
}

type ListaMovimiento struct {
	ID            types.SnowflakeID `json:"id"`
	Tipo          string            `json:"tipo"`
	Motivo        string            `json:"motivo"`
	OrigenBodega  string            `json:"origen_bodega"`
	DestinoBodega string            `json:"destino_bodega"`
	Usuario       string            `json:"usuario"`
	TotalLineas   int               `json:"total_lineas"`
	TotalCantidad float64           `json:"total_cantidad"`
	CreatedAt     string            `json:"created_at"`
}

// Listar returns a page of movements, newest first.
func (r *MovimientoRepository) Listar(tipo string, bodegaID uint, page, limit int) ([]ListaMovimiento, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	t := database.Tablas()
	where := "WHERE m.deleted_at IS NULL"
	args := []interface{}{}
	if tipo != "" {
		where += " AND m.tipo = ?"
		args = append(args, tipo)
	}
	if bodegaID > 0 {
		where += " AND (m.origen_bodega_id = ? OR m.destino_bodega_id = ?)"
		args = append(args, bodegaID, bodegaID)
	}

	var total int64
	countSQL := fmt.Sprintf(`SELECT COUNT(m.id) FROM %s m %s`,
		t.Resolve(database.TablaMovimientos), where)
	if err := r.DB.Raw(countSQL, args...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	sql := fmt.Sprintf(`WITH detalle AS (
			SELECT movimiento_id, COUNT(id) AS total_lineas, SUM(cantidad) AS total_cantidad
			FROM %s
			GROUP BY movimiento_id
		)
		SELECT m.id, m.tipo, m.motivo, m.created_at,
			bo.nombre AS origen_bodega, bd.nombre AS destino_bodega,
			u.name AS usuario,
			d.total_lineas, d.total_cantidad
		FROM %s m
		LEFT JOIN detalle d ON d.movimiento_id = m.id
		LEFT JOIN %s bo ON bo.id = m.origen_bodega_id
		LEFT JOIN %s bd ON bd.id = m.destino_bodega_id
		LEFT JOIN %s u ON u.id = m.usuario_id
		%s
		ORDER BY m.created_at DESC
		%s`,
		t.Resolve(database.TablaMovimientoDetalles),
		t.Resolve(database.TablaMovimientos),
		t.Resolve(database.TablaBodegas),
		t.Resolve(database.TablaBodegas),
		t.Resolve(database.TablaUsers),
		where,
		t.Paginacion(limit, (page-1)*limit))

	var rows []ListaMovimiento
	if err := r.DB.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

type KardexRow struct {
	MovimientoID  types.SnowflakeID `json:"movimiento_id"`
	Fecha         string            `json:"fecha"`
	Tipo          string            `json:"tipo"`
	Motivo        string            `json:"motivo"`
	Usuario       string            `json:"usuario"`
	Entrada       float64           `json:"entrada"`
	Salida        float64           `json:"salida"`
	EsAjuste      bool              `json:"es_ajuste"`
	CantidadNueva *float64          `json:"cantidad_nueva"`
}

// Kardex lists the ledger of one item in one bodega, oldest first. Entrada
// and Salida are relative to the bodega: a transfer shows as salida on the
// origin and entrada on the destination.
func (r *MovimientoRepository) Kardex(itemID uint, bodegaID uint) ([]KardexRow, error) {
	t := database.Tablas()
	sql := fmt.Sprintf(`SELECT m.id AS movimiento_id, m.created_at AS fecha, m.tipo, m.motivo,
			u.name AS usuario,
			CASE WHEN m.tipo <> 'Ajuste' AND m.destino_bodega_id = ? THEN d.cantidad ELSE 0 END AS entrada,
			CASE WHEN m.tipo <> 'Ajuste' AND m.origen_bodega_id = ? THEN d.cantidad ELSE 0 END AS salida,
			CASE WHEN m.tipo = 'Ajuste' THEN 1 ELSE 0 END AS es_ajuste,
			CASE WHEN m.tipo = 'Ajuste' THEN d.cantidad ELSE NULL END AS cantidad_nueva
		FROM %s d
		INNER JOIN %s m ON m.id = d.movimiento_id
		LEFT JOIN %s u ON u.id = m.usuario_id
		WHERE d.item_id = ?
			AND (m.origen_bodega_id = ? OR m.destino_bodega_id = ?)
			AND m.deleted_at IS NULL
		ORDER BY m.created_at ASC, d.id ASC`,
		t.Resolve(database.TablaMovimientoDetalles),
		t.Resolve(database.TablaMovimientos),
		t.Resolve(database.TablaUsers))

	var rows []KardexRow
	if err := r.DB.Raw(sql, bodegaID, bodegaID, itemID, bodegaID, bodegaID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
