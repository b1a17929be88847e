package controllers

import (
	"errors"

	"kardexplus/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RoleController struct {
	DB *gorm.DB
}

func NewRoleController(DB *gorm.DB) *RoleController {
	return &RoleController{DB: DB}
}

type RoleInput struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	PermissionIDs []uint `json:"permission_ids"`
}

func (c *RoleController) GetAll(ctx *fiber.Ctx) error {
	var roles []models.Role
	if err := c.DB.Preload("Permissions").Find(&roles).Error; err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Roles retrieved successfully",
		"data":    roles,
	})
}

func (c *RoleController) GetPermissions(ctx *fiber.Ctx) error {
	var permissions []models.Permission
	if err := c.DB.Order("name ASC").Find(&permissions).Error; err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Permissions retrieved successfully",
		"data":    permissions,
	})
}

func (c *RoleController) Create(ctx *fiber.Ctx) error {
	var input RoleInput
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

	role := models.Role{Name: input.Name, Description: input.Description}
	err := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&role).Error; err != nil {
			return err
		}
		return asignarPermisos(tx, &role, input.PermissionIDs)
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Role created successfully",
		"data":    role,
	})
}

func (c *RoleController) Update(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid role ID",
		})
	}

	var role models.Role
	if err := c.DB.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Role not found",
			})
		}
		return errorResponse(ctx, err)
	}

	var input RoleInput
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

	role.Name = input.Name
	role.Description = input.Description

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&role).Error; err != nil {
			return err
		}
		if input.PermissionIDs != nil {
			return asignarPermisos(tx, &role, input.PermissionIDs)
		}
		return nil
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Role updated successfully",
		"data":    role,
	})
}

func (c *RoleController) Delete(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid role ID",
		})
	}

	var role models.Role
	if err := c.DB.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "Role not found",
			})
		}
		return errorResponse(ctx, err)
	}

	var enUso int64
	c.DB.Table("user_roles").Where("role_id = ?", role.ID).Count(&enUso)
	if enUso > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Role is assigned to users and cannot be deleted",
		})
	}

	if err := c.DB.Delete(&role).Error; err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Role deleted successfully",
	})
}

func asignarPermisos(tx *gorm.DB, role *models.Role, permissionIDs []uint) error {
	if permissionIDs == nil {
		return nil
	}
	var permissions []models.Permission
	if len(permissionIDs) > 0 {
		if err := tx.Where("id IN ?", permissionIDs).Find(&permissions).Error; err != nil {
			return err
		}
	}
	return tx.Model(role).Association("Permissions").Replace(permissions)
}
