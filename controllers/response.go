package controllers

import (
	"kardexplus/types"

	"github.com/gofiber/fiber/v2"
)

// errorResponse maps domain errors to their HTTP status. Unknown errors come
// back as 500 without leaking internals.
func errorResponse(ctx *fiber.Ctx, err error) error {
	status := types.StatusCode(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "Internal server error"
	}
	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func usuarioActual(ctx *fiber.Ctx) uint {
	if userID, ok := ctx.Locals("userID").(float64); ok {
		return uint(userID)
	}
	return 0
}
