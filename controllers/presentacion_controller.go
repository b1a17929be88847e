package controllers

import (
	"errors"
	"strings"

	"kardexplus/models"
	"kardexplus/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PresentacionController struct {
	DB *gorm.DB
}

func NewPresentacionController(DB *gorm.DB) *PresentacionController {
	return &PresentacionController{DB: DB}
}

type PresentacionInput struct {
	Nombre       string  `json:"nombre" validate:"required"`
	CantidadBase float64 `json:"cantidad_base" validate:"required,gt=0"`
	SKU          string  `json:"sku"`
	Barcode      string  `json:"barcode"`
	IsActive     *bool   `json:"is_active"`
}

func (c *PresentacionController) GetByItem(ctx *fiber.Ctx) error {
	itemID, err := ctx.ParamsInt("itemId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid item ID",
		})
	}

	var presentaciones []models.ItemPresentacion
	if err := c.DB.Where("item_id = ?", itemID).Find(&presentaciones).Error; err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Presentaciones retrieved successfully",
		"data":    presentaciones,
	})
}

func (c *PresentacionController) Create(ctx *fiber.Ctx) error {
	itemID, err := ctx.ParamsInt("itemId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid item ID",
		})
	}

	var item models.Item
	if err := c.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Item not found",
			})
		}
		return errorResponse(ctx, err)
	}

	var input PresentacionInput
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

	if err := c.verificarIdentificadores(ctx, input, 0); err != nil {
		return err
	}

	presentacion := models.ItemPresentacion{
		ItemID:       item.ID,
		Nombre:       input.Nombre,
		CantidadBase: input.CantidadBase,
		SKU:          strings.TrimSpace(input.SKU),
		Barcode:      strings.TrimSpace(input.Barcode),
		IsActive:     true,
		CreatedBy:    int(usuarioActual(ctx)),
	}
	if input.IsActive != nil {
		presentacion.IsActive = *input.IsActive
	}

	if err := c.DB.Create(&presentacion).Error; err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Presentacion created successfully",
		"data":    presentacion,
	})
}

func (c *PresentacionController) Update(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid presentacion ID",
		})
	}

	var presentacion models.ItemPresentacion
	if err := c.DB.First(&presentacion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Presentacion not found",
			})
		}
		return errorResponse(ctx, err)
	}

	var input PresentacionInput
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

	if err := c.verificarIdentificadores(ctx, input, presentacion.ID); err != nil {
		return err
	}

	presentacion.Nombre = input.Nombre
	presentacion.CantidadBase = input.CantidadBase
	presentacion.SKU = strings.TrimSpace(input.SKU)
	presentacion.Barcode = strings.TrimSpace(input.Barcode)
	presentacion.UpdatedBy = int(usuarioActual(ctx))
	if input.IsActive != nil {
		presentacion.IsActive = *input.IsActive
	}

	if err := c.DB.Save(&presentacion).Error; err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Presentacion updated successfully",
		"data":    presentacion,
	})
}

func (c *PresentacionController) Delete(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid presentacion ID",
		})
	}

	var presentacion models.ItemPresentacion
	if err := c.DB.First(&presentacion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Presentacion not found",
			})
		}
		return errorResponse(ctx, err)
	}

	presentacion.DeletedBy = int(usuarioActual(ctx))
	c.DB.Save(&presentacion)

	if err := c.DB.Delete(&presentacion).Error; err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Presentacion deleted successfully",
	})
}

// verificarIdentificadores enforces system-wide SKU and barcode uniqueness.
func (c *PresentacionController) verificarIdentificadores(ctx *fiber.Ctx, input PresentacionInput, excluirID uint) error {
	repo := repositories.NewPresentacionRepository(c.DB)

	for campo, valor := range map[string]string{
		"sku":     strings.TrimSpace(input.SKU),
		"barcode": strings.TrimSpace(input.Barcode),
	} {
		disponible, err := repo.IdentificadorDisponible(campo, valor, excluirID)
		if err != nil {
			return errorResponse(ctx, err)
		}
		if !disponible {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": campo + " already in use by another presentacion",
			})
		}
	}
	return nil
}
