package controllers

import (
	"log"

	"kardexplus/models"
	"kardexplus/repositories"
	"kardexplus/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RequerimientoController struct {
	DB *gorm.DB
}

func NewRequerimientoController(DB *gorm.DB) *RequerimientoController {
	return &RequerimientoController{DB: DB}
}

func (c *RequerimientoController) Create(ctx *fiber.Ctx) error {
	var input repositories.CrearRequerimientoInput
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

	requerimiento, err := repositories.NewRequerimientoRepository(c.DB).Crear(input)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Requerimiento created successfully",
		"data":    requerimiento,
	})
}

func (c *RequerimientoController) GetAll(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)
	estado := ctx.Query("estado")
	bodegaID := uint(ctx.QueryInt("bodega_id", 0))

	rows, total, err := repositories.NewRequerimientoRepository(c.DB).Listar(estado, bodegaID, page, limit)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Requerimientos retrieved successfully",
		"data": fiber.Map{
			"requerimientos": rows,
			"total":          total,
			"page":           page,
			"limit":          limit,
		},
	})
}

func (c *RequerimientoController) GetByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid requerimiento ID",
		})
	}

	requerimiento, err := repositories.NewRequerimientoRepository(c.DB).ObtenerPorID(uint(id))
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Requerimiento retrieved successfully",
		"data":    requerimiento,
	})
}

func (c *RequerimientoController) Aprobar(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid requerimiento ID",
		})
	}

	requerimiento, err := repositories.NewRequerimientoRepository(c.DB).Aprobar(uint(id), usuarioActual(ctx))
	if err != nil {
		return errorResponse(ctx, err)
	}

	c.notificarSolicitante(requerimiento, "aprobado")

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Requerimiento approved successfully",
		"data":    requerimiento,
	})
}

func (c *RequerimientoController) Cancelar(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid requerimiento ID",
		})
	}

	var input struct {
		Motivo string `json:"Motivo"`
	}
	// Body is optional on cancel.
	_ = ctx.BodyParser(&input)

	requerimiento, err := repositories.NewRequerimientoRepository(c.DB).Cancelar(uint(id), usuarioActual(ctx), input.Motivo)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Requerimiento cancelled successfully",
		"data":    requerimiento,
	})
}

// Despachar records a full or partial dispatch against an approved
// requirement.
func (c *RequerimientoController) Despachar(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid requerimiento ID",
		})
	}

	var input struct {
		Items         []repositories.LineaDespacho `json:"Items" validate:"required"`
		Observaciones string                       `json:"Observaciones"`
	}
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

	requerimiento, err := repositories.NewRequerimientoRepository(c.DB).
		Despachar(uint(id), input.Items, input.Observaciones, usuarioActual(ctx))
	if err != nil {
		return errorResponse(ctx, err)
	}

	if requerimiento.Estado == models.EstadoDespachado {
		c.notificarSolicitante(requerimiento, "despachado por completo")
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Despacho registered successfully",
		"data":    requerimiento,
	})
}

// notificarSolicitante mails the requesting user in the background. Failures
// are logged, never surfaced to the API caller.
func (c *RequerimientoController) notificarSolicitante(requerimiento *models.Requerimiento, accion string) {
	var user models.User
	if err := c.DB.First(&user, requerimiento.UsuarioID).Error; err != nil || user.Email == "" {
		return
	}

	go func() {
		err := utils.EnviarNotificacionRequerimiento(user.Email, requerimiento.Numero, accion)
		if err != nil {
			log.Printf("Failed to send notification for %s: %v", requerimiento.Numero, err)
		}
	}()
}
