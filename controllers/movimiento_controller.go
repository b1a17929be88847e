package controllers

import (
	"fmt"
	"strconv"
	"time"

	"kardexplus/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type MovimientoController struct {
	DB *gorm.DB
}

func NewMovimientoController(DB *gorm.DB) *MovimientoController {
	return &MovimientoController{DB: DB}
}

func (c *MovimientoController) Create(ctx *fiber.Ctx) error {
	var input repositories.CrearMovimientoInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid request body",
		})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": err.Error(),
		})
	}

	input.UsuarioID = usuarioActual(ctx)

	movimiento, err := repositories.NewMovimientoRepository(c.DB).Crear(input)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Movimiento created successfully",
		"data":    movimiento,
	})
}

func (c *MovimientoController) GetAll(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)
	tipo := ctx.Query("tipo")
	bodegaID := uint(ctx.QueryInt("bodega_id", 0))

	rows, total, err := repositories.NewMovimientoRepository(c.DB).Listar(tipo, bodegaID, page, limit)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Movimientos retrieved successfully",
		"data": fiber.Map{
			"movimientos": rows,
			"total":       total,
			"page":        page,
			"limit":       limit,
		},
	})
}

func (c *MovimientoController) GetByID(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid movimiento ID",
		})
	}

	movimiento, err := repositories.NewMovimientoRepository(c.DB).ObtenerPorID(id)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Movimiento retrieved successfully",
		"data":    movimiento,
	})
}

// Kardex returns the per-item ledger of one bodega.
func (c *MovimientoController) Kardex(ctx *fiber.Ctx) error {
	itemID := uint(ctx.QueryInt("item_id", 0))
	bodegaID := uint(ctx.QueryInt("bodega_id", 0))
	if itemID == 0 || bodegaID == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "item_id and bodega_id are required",
		})
	}

	rows, err := repositories.NewMovimientoRepository(c.DB).Kardex(itemID, bodegaID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Kardex retrieved successfully",
		"data":    rows,
	})
}

// ExportKardexExcel streams the kardex of an item in a bodega as a
// spreadsheet.
func (c *MovimientoController) ExportKardexExcel(ctx *fiber.Ctx) error {
	itemID := uint(ctx.QueryInt("item_id", 0))
	bodegaID := uint(ctx.QueryInt("bodega_id", 0))
	if itemID == 0 || bodegaID == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "item_id and bodega_id are required",
		})
	}

	rows, err := repositories.NewMovimientoRepository(c.DB).Kardex(itemID, bodegaID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Kardex"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Fecha", "Movimiento", "Tipo", "Motivo", "Usuario", "Entrada", "Salida", "Cantidad Nueva"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		fila := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", fila), row.Fecha)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", fila), int64(row.MovimientoID))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", fila), row.Tipo)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", fila), row.Motivo)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", fila), row.Usuario)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", fila), row.Entrada)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", fila), row.Salida)
		if row.CantidadNueva != nil {
			f.SetCellValue(sheet, fmt.Sprintf("H%d", fila), *row.CantidadNueva)
		}
	}

	filename := fmt.Sprintf("kardex_item%d_bodega%d_%s.xlsx",
		itemID, bodegaID, time.Now().Format("20060102_150405"))

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	return f.Write(ctx.Response().BodyWriter())
}
