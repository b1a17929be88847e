package controllers

import (
	"errors"

	"kardexplus/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(DB *gorm.DB) *UserController {
	return &UserController{DB: DB}
}

type UserInput struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	IsActive *bool  `json:"is_active"`
	RoleIDs  []uint `json:"role_ids"`
}

func (c *UserController) GetAll(ctx *fiber.Ctx) error {
	var users []models.User
	if err := c.DB.Preload("Roles").Omit("password").Find(&users).Error; err != nil {
		return errorResponse(ctx, err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Users retrieved successfully",
		"data":    users,
	})
}

func (c *UserController) GetByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid user ID",
		})
	}

	var user models.User
	if err := c.DB.Preload("Roles.Permissions").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "User not found",
			})
		}
		return errorResponse(ctx, err)
	}

	user.Password = ""
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User retrieved successfully",
		"data":    user,
	})
}

func (c *UserController) Create(ctx *fiber.Ctx) error {
	var input UserInput
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
	if input.Password == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Password is required",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return errorResponse(ctx, err)
	}

	user := models.User{
		Username:  input.Username,
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashed),
		IsActive:  true,
		CreatedBy: int(usuarioActual(ctx)),
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return asignarRoles(tx, &user, input.RoleIDs)
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	user.Password = ""
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User created successfully",
		"data":    user,
	})
}

func (c *UserController) Update(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid user ID",
		})
	}

	var user models.User
	if err := c.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "User not found",
			})
		}
		return errorResponse(ctx, err)
	}

	var input UserInput
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

	user.Username = input.Username
	user.Name = input.Name
	user.Email = input.Email
	user.UpdatedBy = int(usuarioActual(ctx))
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return errorResponse(ctx, err)
		}
		user.Password = string(hashed)
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if input.RoleIDs != nil {
			return asignarRoles(tx, &user, input.RoleIDs)
		}
		return nil
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	user.Password = ""
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
		"data":    user,
	})
}

func (c *UserController) Delete(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false, "message": "Invalid user ID",
		})
	}

	var user models.User
	if err := c.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "message": "User not found",
			})
		}
		return errorResponse(ctx, err)
	}

	user.DeletedBy = int(usuarioActual(ctx))
	c.DB.Save(&user)

	if err := c.DB.Delete(&user).Error; err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully",
	})
}

func asignarRoles(tx *gorm.DB, user *models.User, roleIDs []uint) error {
	if roleIDs == nil {
		return nil
	}
	var roles []models.Role
	if len(roleIDs) > 0 {
		if err := tx.Where("id IN ?", roleIDs).Find(&roles).Error; err != nil {
			return err
		}
	}
	return tx.Model(user).Association("Roles").Replace(roles)
}
