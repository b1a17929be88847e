package controllers

import (
	"errors"

	"kardexplus/models"
	"kardexplus/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BodegaController struct {
	DB *gorm.DB
}

func NewBodegaController(DB *gorm.DB) *BodegaController {
	return &BodegaController{DB: DB}
}

type BodegaInput struct {
	Codigo      string `json:"codigo" validate:"required"`
	Nombre      string `json:"nombre" validate:"required"`
	Ubicacion   string `json:"ubicacion"`
	Responsable string `json:"responsable"`
	IsActive    *bool  `json:"is_active"`
}

func (c *BodegaController) GetAll(ctx *fiber.Ctx) error {
	var bodegas []models.Bodega
	if err := c.DB.Order("codigo ASC").Find(&bodegas).Error; err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Bodegas retrieved successfully",
		"data":    bodegas,
	})
}

func (c *BodegaController) GetByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid bodega ID",
		})
	}

	var bodega models.Bodega
	if err := c.DB.First(&bodega, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Bodega not found",
			})
		}
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Bodega retrieved successfully",
		"data":    bodega,
	})
}

func (c *BodegaController) Create(ctx *fiber.Ctx) error {
	var input BodegaInput
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

	bodega := models.Bodega{
		Codigo:      input.Codigo,
		Nombre:      input.Nombre,
		Ubicacion:   input.Ubicacion,
		Responsable: input.Responsable,
		IsActive:    true,
		CreatedBy:   int(usuarioActual(ctx)),
	}
	if input.IsActive != nil {
		bodega.IsActive = *input.IsActive
	}

	if err := c.DB.Create(&bodega).Error; err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Bodega created successfully",
		"data":    bodega,
	})
}

func (c *BodegaController) Update(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid bodega ID",
		})
	}

	var bodega models.Bodega
	if err := c.DB.First(&bodega, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Bodega not found",
			})
		}
		return errorResponse(ctx, err)
	}

	var input BodegaInput
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

	bodega.Codigo = input.Codigo
	bodega.Nombre = input.Nombre
	bodega.Ubicacion = input.Ubicacion
	bodega.Responsable = input.Responsable
	bodega.UpdatedBy = int(usuarioActual(ctx))
	if input.IsActive != nil {
		bodega.IsActive = *input.IsActive
	}

	if err := c.DB.Save(&bodega).Error; err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Bodega updated successfully",
		"data":    bodega,
	})
}

func (c *BodegaController) Delete(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid bodega ID",
		})
	}

	var bodega models.Bodega
	if err := c.DB.First(&bodega, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Bodega not found",
			})
		}
		return errorResponse(ctx, err)
	}

	bodega.DeletedBy = int(usuarioActual(ctx))
	c.DB.Save(&bodega)

	if err := c.DB.Delete(&bodega).Error; err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Bodega deleted successfully",
	})
}

// GetStock lists the on-hand inventory of the bodega, flagging items under
// their minimum quantity.
func (c *BodegaController) GetStock(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid bodega ID",
		})
	}

	var bodega models.Bodega
	if err := c.DB.First(&bodega, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Bodega not found",
			})
		}
		return errorResponse(ctx, err)
	}

	rows, err := repositories.NewStockRepository(c.DB).ObtenerPorBodega(bodega.ID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Stock retrieved successfully",
		"data": fiber.Map{
			"bodega": bodega,
			"stock":  rows,
		},
	})
}
