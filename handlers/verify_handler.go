package handlers

import (
	"errors"
	"strings"

	"github.com/ftld/certforge/database"
	"github.com/ftld/certforge/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// VerifyCertificate is the public authenticity check. An unknown code is a
// normal negative result, not an error; only an empty code or a failing
// datastore produce error responses.
func VerifyCertificate(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Verification code is required"})
	}

	var certificate models.Certificate
	err := database.DB.Where("verification_code = ?", code).First(&certificate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{
				"success": true,
				"valid":   false,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to verify certificate"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"valid":   true,
		"certificate": fiber.Map{
			"studentName":      certificate.StudentName,
			"program":          certificate.Program,
			"completionDate":   certificate.CompletionDate,
			"verificationCode": certificate.VerificationCode,
		},
	})
}
