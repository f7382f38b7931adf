package handlers

import (
	"errors"

	"github.com/ftld/certforge/database"
	"github.com/ftld/certforge/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgramRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
}

// ListPrograms returns the active program catalog, oldest first, for the
// issuance form and the public site.
func ListPrograms(c *fiber.Ctx) error {
	var programs []models.Program
	if err := database.DB.Where("is_active = ?", true).Order("created_at asc").Find(&programs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to fetch programs"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"programs": programs,
	})
}

func CreateProgram(c *fiber.Ctx) error {
	var req ProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	program := models.Program{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := database.DB.Create(&program).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "Program already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to create program"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"program": program,
	})
}
