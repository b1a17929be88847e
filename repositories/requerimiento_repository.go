package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"kardexplus/controllers/idgen"
	"kardexplus/database"
	"kardexplus/models"
	"kardexplus/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequerimientoRepository struct {
	DB *gorm.DB
}

func NewRequerimientoRepository(DB *gorm.DB) *RequerimientoRepository {
	return &RequerimientoRepository{DB: DB}
}

// CrearLineaRequerimiento carries one requested item. Field names follow the
// REST contract of the API.
type CrearLineaRequerimiento struct {
	ItemID               uint     `json:"Item_Id" validate:"required"`
	Cantidad             float64  `json:"Cantidad_Solicitada"`
	ItemPresentacionID   *uint    `json:"Item_Presentaciones_Id"`
	CantidadPresentacion *float64 `json:"Cantidad_Solicitada_Presentacion"`
}

type CrearRequerimientoInput struct {
	OrigenBodegaID  uint                      `json:"Origen_Bodega_Id" validate:"required"`
	DestinoBodegaID uint                      `json:"Destino_Bodega_Id" validate:"required"`
	Motivo          string                    `json:"Motivo"`
	Observaciones   string                    `json:"Observaciones"`
	Lineas          []CrearLineaRequerimiento `json:"Items" validate:"required"`
	UsuarioID       uint                      `json:"-"`
}

// Crear registers a requirement with its lines. Origin and destination must
// differ and at least one line must request a positive quantity. For
// presentation lines the base amount is recomputed as presentacion × factor,
// never taken from the client.
func (r *RequerimientoRepository) Crear(input CrearRequerimientoInput) (*models.Requerimiento, error) {
	if input.OrigenBodegaID == input.DestinoBodegaID {
		return nil, types.NewValidation("la bodega origen y destino no pueden ser la misma")
	}
	if err := validarItemsUnicos(input.Lineas); err != nil {
		return nil, err
	}

	for _, id := range []uint{input.OrigenBodegaID, input.DestinoBodegaID} {
		var bodega models.Bodega
		if err := r.DB.First(&bodega, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, types.NewNotFound(fmt.Sprintf("bodega %d no encontrada", id))
			}
			return nil, err
		}
	}

	presentaciones := NewPresentacionRepository(r.DB)
	var detalles []models.RequerimientoDetalle

	for _, linea := range input.Lineas {
		var item models.Item
		if err := r.DB.First(&item, linea.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, types.NewNotFound(fmt.Sprintf("item %d no encontrado", linea.ItemID))
			}
			return nil, err
		}
		if !item.IsActive {
			return nil, types.NewValidation(fmt.Sprintf("el item %s está inactivo", item.Codigo))
		}

		detalle := models.RequerimientoDetalle{ItemID: linea.ItemID}

		if linea.ItemPresentacionID != nil {
			if linea.CantidadPresentacion == nil || *linea.CantidadPresentacion <= 0 {
				continue
			}
			presentacion, err := presentaciones.ObtenerParaItem(*linea.ItemPresentacionID, linea.ItemID)
			if err != nil {
				return nil, err
			}
			cantidad, err := types.NuevaCantidadPresentacion(*linea.CantidadPresentacion, presentacion.CantidadBase)
			if err != nil {
				return nil, err
			}
			cero := 0.0
			detalle.ItemPresentacionID = linea.ItemPresentacionID
			detalle.CantidadSolicitadaPresentacion = linea.CantidadPresentacion
			detalle.CantidadDespachadaPresentacion = &cero
			detalle.CantidadSolicitada = cantidad.Base()
		} else {
			if linea.Cantidad <= 0 {
				continue
			}
			detalle.CantidadSolicitada = linea.Cantidad
		}

		detalles = append(detalles, detalle)
	}

	if len(detalles) == 0 {
		return nil, types.NewValidation("el requerimiento no tiene líneas válidas")
	}

	var requerimiento models.Requerimiento
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		numero, err := r.generarNumero(tx)
		if err != nil {
			return err
		}

		requerimiento = models.Requerimiento{
			Numero:          numero,
			UsuarioID:       input.UsuarioID,
			OrigenBodegaID:  input.OrigenBodegaID,
			DestinoBodegaID: input.DestinoBodegaID,
			Estado:          models.EstadoPendiente,
			Motivo:          input.Motivo,
			Observaciones:   input.Observaciones,
			Detalles:        detalles,
			CreatedBy:       int(input.UsuarioID),
		}
		return tx.Create(&requerimiento).Error
	})
	if err != nil {
		return nil, err
	}

	return r.ObtenerPorID(requerimiento.ID)
}

// validarItemsUnicos enforces one line per requested item. Dispatch addresses
// lines by item, so a duplicated item would leave one of its lines
// permanently pending.
func validarItemsUnicos(lineas []CrearLineaRequerimiento) error {
	vistos := make(map[uint]bool, len(lineas))
	for _, linea := range lineas {
		if vistos[linea.ItemID] {
			return types.NewValidation(fmt.Sprintf(
				"el item %d aparece más de una vez en el requerimiento", linea.ItemID))
		}
		vistos[linea.ItemID] = true
	}
	return nil
}

// generarNumero produces the next document number, sequence reset per day.
// The latest row stays locked until the surrounding transaction commits, so
// two concurrent creations cannot compute the same number.
func (r *RequerimientoRepository) generarNumero(tx *gorm.DB) (string, error) {
	var ultimo models.Requerimiento
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Last(&ultimo).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	return siguienteNumeroRequerimiento(ultimo.Numero, time.Now()), nil
}

// siguienteNumeroRequerimiento builds "RQ" + YYMMDD + a 4-digit sequence that
// restarts whenever the date part changes.
func siguienteNumeroRequerimiento(ultimo string, ahora time.Time) string {
	fecha := ahora.Format("060102")

	if len(ultimo) >= 12 {
		fechaAnterior := ultimo[2:8]
		if fecha == fechaAnterior {
			secuencia, _ := strconv.Atoi(ultimo[len(ultimo)-4:])
			return fmt.Sprintf("RQ%s%04d", fecha, secuencia+1)
		}
	}
	return fmt.Sprintf("RQ%s%04d", fecha, 1)
}

// ObtenerPorID loads a requirement with lines, items, presentations, bodegas
// and computed pending quantities.
func (r *RequerimientoRepository) ObtenerPorID(id uint) (*models.Requerimiento, error) {
	var requerimiento models.Requerimiento
	err := r.DB.
		Preload("Detalles.Item").
		Preload("Detalles.Presentacion").
		Preload("OrigenBodega").
		Preload("DestinoBodega").
		First(&requerimiento, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFound(fmt.Sprintf("requerimiento %d no encontrado", id))
		}
		return nil, err
	}

	for i := range requerimiento.Detalles {
		requerimiento.Detalles[i].CalcularPendientes()
	}
	return &requerimiento, nil
}

type ListaRequerimiento struct {
	ID              uint    `json:"id"`
	Numero          string  `json:"numero"`
	Estado          string  `json:"estado"`
	Motivo          string  `json:"motivo"`
	OrigenBodega    string  `json:"origen_bodega"`
	DestinoBodega   string  `json:"destino_bodega"`
	Solicitante     string  `json:"solicitante"`
	TotalLineas     int     `json:"total_lineas"`
	TotalSolicitado float64 `json:"total_solicitado"`
	TotalDespachado float64 `json:"total_despachado"`
	CreatedAt       string  `json:"created_at"`
}

// Listar returns a page of requirements with totals per header.
func (r *RequerimientoRepository) Listar(estado string, bodegaID uint, page, limit int) ([]ListaRequerimiento, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	t := database.Tablas()
	where := "WHERE r.deleted_at IS NULL"
	args := []interface{}{}
	if estado != "" {
		where += " AND r.estado = ?"
		args = append(args, estado)
	}
	if bodegaID > 0 {
		where += " AND (r.origen_bodega_id = ? OR r.destino_bodega_id = ?)"
		args = append(args, bodegaID, bodegaID)
	}

	var total int64
	countSQL := fmt.Sprintf(`SELECT COUNT(r.id) FROM %s r %s`,
		t.Resolve(database.TablaRequerimientos), where)
	if err := r.DB.Raw(countSQL, args...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	sql := fmt.Sprintf(`WITH detalle AS (
			SELECT requerimiento_id, COUNT(id) AS total_lineas,
				SUM(cantidad_solicitada) AS total_solicitado,
				SUM(cantidad_despachada) AS total_despachado
			FROM %s
			WHERE deleted_at IS NULL
			GROUP BY requerimiento_id
		)
		SELECT r.id, r.numero, r.estado, r.motivo, r.created_at,
			bo.nombre AS origen_bodega, bd.nombre AS destino_bodega,
			u.name AS solicitante,
			d.total_lineas, d.total_solicitado, d.total_despachado
		FROM %s r
		LEFT JOIN detalle d ON d.requerimiento_id = r.id
		LEFT JOIN %s bo ON bo.id = r.origen_bodega_id
		LEFT JOIN %s bd ON bd.id = r.destino_bodega_id
		LEFT JOIN %s u ON u.id = r.usuario_id
		%s
		ORDER BY r.created_at DESC
		%s`,
		t.Resolve(database.TablaRequerimientoDetalles),
		t.Resolve(database.TablaRequerimientos),
		t.Resolve(database.TablaBodegas),
		t.Resolve(database.TablaBodegas),
		t.Resolve(database.TablaUsers),
		where,
		t.Paginacion(limit, (page-1)*limit))

	var rows []ListaRequerimiento
	if err := r.DB.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Aprobar moves a Pendiente requirement to Aprobado.
func (r *RequerimientoRepository) Aprobar(id uint, usuarioID uint) (*models.Requerimiento, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var requerimiento models.Requerimiento
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&requerimiento, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFound(fmt.Sprintf("requerimiento %d no encontrado", id))
			}
			return err
		}

		if !requerimiento.Estado.PuedeAprobar() {
			return types.NewInvalidState(fmt.Sprintf(
				"el requerimiento %s no puede aprobarse en estado %s", requerimiento.Numero, requerimiento.Estado))
		}

		ahora := time.Now()
		return tx.Model(&requerimiento).Updates(map[string]interface{}{
			"estado":           models.EstadoAprobado,
			"aprobado_por":     usuarioID,
			"fecha_aprobacion": ahora,
			"updated_by":       usuarioID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.ObtenerPorID(id)
}

// Cancelar cancels a Pendiente requirement.
func (r *RequerimientoRepository) Cancelar(id uint, usuarioID uint, motivo string) (*models.Requerimiento, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var requerimiento models.Requerimiento
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&requerimiento, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFound(fmt.Sprintf("requerimiento %d no encontrado", id))
			}
			return err
		}

		if !requerimiento.Estado.PuedeCancelar() {
			return types.NewInvalidState(fmt.Sprintf(
				"el requerimiento %s no puede cancelarse en estado %s", requerimiento.Numero, requerimiento.Estado))
		}

		observaciones := requerimiento.Observaciones
		if motivo != "" {
			if observaciones != "" {
				observaciones += "\n"
			}
			observaciones += "Cancelado: " + motivo
		}

		return tx.Model(&requerimiento).Updates(map[string]interface{}{
			"estado":        models.EstadoCancelado,
			"observaciones": observaciones,
			"updated_by":    usuarioID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.ObtenerPorID(id)
}

// Despachar validates and applies a set of per-line dispatch quantities as a
// single all-or-nothing transaction. The requirement header, its lines and
// the origin stock rows stay locked until commit; conditional UPDATEs guard
// against a concurrent dispatch slipping past the in-memory validation.
func (r *RequerimientoRepository) Despachar(id uint, lineas []LineaDespacho, observaciones string, usuarioID uint) (*models.Requerimiento, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var requerimiento models.Requerimiento
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&requerimiento, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFound(fmt.Sprintf("requerimiento %d no encontrado", id))
			}
			return err
		}

		if !requerimiento.Estado.PuedeDespachar() {
			if requerimiento.Estado == models.EstadoPendiente {
				return types.NewInvalidState(fmt.Sprintf(
					"el requerimiento %s aún no ha sido aprobado", requerimiento.Numero))
			}
			return types.NewInvalidState(fmt.Sprintf(
				"el requerimiento %s no admite despachos en estado %s", requerimiento.Numero, requerimiento.Estado))
		}

		var detalles []models.RequerimientoDetalle
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("requerimiento_id = ?", id).
			Find(&detalles).Error
		if err != nil {
			return err
		}

		if err := cargarPresentaciones(tx, detalles); err != nil {
			return err
		}

		plan, err := PlanificarDespacho(detalles, lineas)
		if err != nil {
			return err
		}

		items, err := cargarItems(tx, detalles)
		if err != nil {
			return err
		}

		stock := NewStockRepository(tx)
		movimiento := models.Movimiento{
			ID:              types.SnowflakeID(idgen.GenerateID()),
			Tipo:            models.MovimientoTransferencia,
			OrigenBodegaID:  &requerimiento.OrigenBodegaID,
			DestinoBodegaID: &requerimiento.DestinoBodegaID,
			UsuarioID:       usuarioID,
			Motivo:          "Despacho de requerimiento " + requerimiento.Numero,
			RequerimientoID: &requerimiento.ID,
		}

		for _, ajuste := range plan.Ajustes {
			if ajuste.IncrementoBase <= types.ToleranciaCantidad {
				continue
			}

			// Guarded increment: zero rows affected means another dispatch
			// consumed the pending amount after our locked read.
			query := tx.Model(&models.RequerimientoDetalle{})
			updates := map[string]interface{}{
				"cantidad_despachada": gorm.Expr("cantidad_despachada + ?", ajuste.IncrementoBase),
			}
			if ajuste.PorPresentacion {
				query = query.Where(
					"id = ? AND COALESCE(cantidad_despachada_presentacion, 0) + ? <= cantidad_solicitada_presentacion + ?",
					ajuste.DetalleID, ajuste.IncrementoPresentacion, types.ToleranciaCantidad)
				updates["cantidad_despachada_presentacion"] = gorm.Expr(
					"COALESCE(cantidad_despachada_presentacion, 0) + ?", ajuste.IncrementoPresentacion)
			} else {
				query = query.Where(
					"id = ? AND cantidad_despachada + ? <= cantidad_solicitada + ?",
					ajuste.DetalleID, ajuste.IncrementoBase, types.ToleranciaCantidad)
			}

			res := query.Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return types.NewConflict(fmt.Sprintf(
					"despacho concurrente detectado para el item %s", items[ajuste.ItemID].Codigo))
			}

			if err := stock.Disminuir(requerimiento.OrigenBodegaID, ajuste.ItemID,
				ajuste.IncrementoBase, usuarioID, items[ajuste.ItemID].Codigo); err != nil {
				return err
			}
			if err := stock.Aumentar(requerimiento.DestinoBodegaID, ajuste.ItemID,
				ajuste.IncrementoBase, usuarioID); err != nil {
				return err
			}

			detalleMovimiento := models.MovimientoDetalle{
				MovimientoID: movimiento.ID,
				ItemID:       ajuste.ItemID,
				Cantidad:     ajuste.IncrementoBase,
			}
			if ajuste.PorPresentacion {
				presentacion := ajuste.IncrementoPresentacion
				detalleMovimiento.CantidadPresentacion = &presentacion
				detalleMovimiento.ItemPresentacionID = presentacionID(detalles, ajuste.DetalleID)
			}
			movimiento.Detalles = append(movimiento.Detalles, detalleMovimiento)
		}

		if err := tx.Create(&movimiento).Error; err != nil {
			return err
		}

		cambios := map[string]interface{}{
			"estado":     plan.EstadoFinal,
			"updated_by": usuarioID,
		}
		if observaciones != "" {
			anotado := requerimiento.ObservacionesDespacho
			if anotado != "" {
				anotado += "\n"
			}
			cambios["observaciones_despacho"] = anotado + observaciones
		}
		if plan.EstadoFinal == models.EstadoDespachado {
			ahora := time.Now()
			cambios["despachado_por"] = usuarioID
			cambios["fecha_despacho"] = ahora
		}

		return tx.Model(&requerimiento).Updates(cambios).Error
	})
	if err != nil {
		return nil, err
	}

	return r.ObtenerPorID(id)
}

// cargarPresentaciones attaches each line's presentation without releasing
// the row locks taken on the lines themselves.
func cargarPresentaciones(tx *gorm.DB, detalles []models.RequerimientoDetalle) error {
	var ids []uint
	for i := range detalles {
		if detalles[i].ItemPresentacionID != nil {
			ids = append(ids, *detalles[i].ItemPresentacionID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var presentaciones []models.ItemPresentacion
	if err := tx.Where("id IN ?", ids).Find(&presentaciones).Error; err != nil {
		return err
	}

	porID := make(map[uint]*models.ItemPresentacion, len(presentaciones))
	for i := range presentaciones {
		porID[presentaciones[i].ID] = &presentaciones[i]
	}
	for i := range detalles {
		if detalles[i].ItemPresentacionID != nil {
			detalles[i].Presentacion = porID[*detalles[i].ItemPresentacionID]
		}
	}
	return nil
}

func cargarItems(tx *gorm.DB, detalles []models.RequerimientoDetalle) (map[uint]*models.Item, error) {
	var ids []uint
	for i := range detalles {
		ids = append(ids, detalles[i].ItemID)
	}

	var items []models.Item
	if err := tx.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}

	porID := make(map[uint]*models.Item, len(items))
	for i := range items {
		porID[items[i].ID] = &items[i]
	}
	return porID, nil
}

func presentacionID(detalles []models.RequerimientoDetalle, detalleID uint) *uint {
	for i := range detalles {
		if detalles[i].ID == detalleID {
			return detalles[i].ItemPresentacionID
		}
	}
	return nil
}
