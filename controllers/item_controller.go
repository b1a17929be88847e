package controllers

import (
	"errors"
	"fmt"
	"strings"

	"kardexplus/models"
	"kardexplus/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ItemController struct {
	DB *gorm.DB
}

func NewItemController(DB *gorm.DB) *ItemController {
	return &ItemController{DB: DB}
}

type ItemInput struct {
	Codigo         string  `json:"codigo" validate:"required"`
	Nombre         string  `json:"nombre" validate:"required"`
	Descripcion    string  `json:"descripcion"`
	CategoriaID    *uint   `json:"categoria_id"`
	UnidadMedida   string  `json:"unidad_medida"`
	Costo          float64 `json:"costo"`
	PrecioSugerido float64 `json:"precio_sugerido"`
	IsActive       *bool   `json:"is_active"`
}

func (c *ItemController) GetAll(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)
	search := ctx.Query("search")
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := c.DB.Model(&models.Item{}).Preload("Categoria")
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("codigo LIKE ? OR nombre LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return errorResponse(ctx, err)
	}

	var items []models.Item
	err := query.Order("codigo ASC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&items).Error
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Items retrieved successfully",
		"data": fiber.Map{
			"items": items,
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func (c *ItemController) GetByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid item ID",
		})
	}

	var item models.Item
	if err := c.DB.Preload("Categoria").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Item not found",
			})
		}
		return errorResponse(ctx, err)
	}

	var presentaciones []models.ItemPresentacion
	if err := c.DB.Where("item_id = ?", item.ID).Find(&presentaciones).Error; err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Item retrieved successfully",
		"data": fiber.Map{
			"item":           item,
			"presentaciones": presentaciones,
		},
	})
}

func (c *ItemController) Create(ctx *fiber.Ctx) error {
	var input ItemInput
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

	item := models.Item{
		Codigo:         strings.TrimSpace(input.Codigo),
		Nombre:         input.Nombre,
		Descripcion:    input.Descripcion,
		CategoriaID:    input.CategoriaID,
		UnidadMedida:   input.UnidadMedida,
		Costo:          input.Costo,
		PrecioSugerido: input.PrecioSugerido,
		IsActive:       true,
		CreatedBy:      int(usuarioActual(ctx)),
	}
	if item.UnidadMedida == "" {
		item.UnidadMedida = "UND"
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := c.DB.Create(&item).Error; err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Item created successfully",
		"data":    item,
	})
}

func (c *ItemController) Update(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid item ID",
		})
	}

	var item models.Item
	if err := c.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Item not found",
			})
		}
		return errorResponse(ctx, err)
	}

	var input ItemInput
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

	item.Codigo = strings.TrimSpace(input.Codigo)
	item.Nombre = input.Nombre
	item.Descripcion = input.Descripcion
	item.CategoriaID = input.CategoriaID
	item.Costo = input.Costo
	item.PrecioSugerido = input.PrecioSugerido
	item.UpdatedBy = int(usuarioActual(ctx))
	if input.UnidadMedida != "" {
		item.UnidadMedida = input.UnidadMedida
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := c.DB.Save(&item).Error; err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Item updated successfully",
		"data":    item,
	})
}

func (c *ItemController) Delete(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid item ID",
		})
	}

	var item models.Item
	if err := c.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Item not found",
			})
		}
		return errorResponse(ctx, err)
	}

	item.DeletedBy = int(usuarioActual(ctx))
	c.DB.Save(&item)

	if err := c.DB.Delete(&item).Error; err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Item deleted successfully",
	})
}

func (c *ItemController) GetCategorias(ctx *fiber.Ctx) error {
	var categorias []models.Categoria
	if err := c.DB.Order("nombre ASC").Find(&categorias).Error; err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Categorias retrieved successfully",
		"data":    categorias,
	})
}

// UploadExcel bulk-creates items from a spreadsheet. Expected columns:
// Codigo | Nombre | Descripcion | Categoria | UnidadMedida | Costo |
// PrecioSugerido. Rows with problems are skipped and reported; valid rows
// commit together.
func (c *ItemController) UploadExcel(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "File is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errorResponse(ctx, err)
	}
	defer file.Close()

	excel, err := excelize.OpenReader(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid Excel file",
		})
	}
	defer excel.Close()

	sheet := excel.GetSheetName(0)
	rows, err := excel.GetRows(sheet)
	if err != nil {
		return errorResponse(ctx, err)
	}
	if len(rows) < 2 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Excel file has no data rows",
		})
	}

	usuarioID := int(usuarioActual(ctx))
	var rowErrors []string
	created := 0

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		categoriaCache := map[string]uint{}

		for i, row := range rows[1:] {
			rowNum := i + 2
			if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
				rowErrors = append(rowErrors, fmt.Sprintf("row %d: missing codigo", rowNum))
				continue
			}

			codigo := strings.TrimSpace(row[0])
			nombre := strings.TrimSpace(row[1])
			if nombre == "" {
				rowErrors = append(rowErrors, fmt.Sprintf("row %d: missing nombre", rowNum))
				continue
			}

			var count int64
			tx.Model(&models.Item{}).Where("codigo = ?", codigo).Count(&count)
			if count > 0 {
				rowErrors = append(rowErrors, fmt.Sprintf("row %d: codigo %s already exists", rowNum, codigo))
				continue
			}

			item := models.Item{
				Codigo:       codigo,
				Nombre:       nombre,
				UnidadMedida: "UND",
				IsActive:     true,
				CreatedBy:    usuarioID,
			}
			if len(row) > 2 {
				item.Descripcion = strings.TrimSpace(row[2])
			}
			if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
				nombreCategoria := strings.TrimSpace(row[3])
				categoriaID, ok := categoriaCache[nombreCategoria]
				if !ok {
					var categoria models.Categoria
					err := tx.Where("nombre = ?", nombreCategoria).
						FirstOrCreate(&categoria, models.Categoria{Nombre: nombreCategoria}).Error
					if err != nil {
						return err
					}
					categoriaID = categoria.ID
					categoriaCache[nombreCategoria] = categoriaID
				}
				item.CategoriaID = &categoriaID
			}
			if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
				item.UnidadMedida = strings.TrimSpace(row[4])
			}
			if len(row) > 5 {
				item.Costo = utils.ParseFloat(row[5])
			}
			if len(row) > 6 {
				item.PrecioSugerido = utils.ParseFloat(row[6])
			}

			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%d items created", created),
		"data": fiber.Map{
			"created": created,
			"errors":  rowErrors,
		},
	})
}
