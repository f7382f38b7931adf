package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ftld/certforge/database"
	"github.com/ftld/certforge/models"
	"github.com/ftld/certforge/services"
	"github.com/ftld/certforge/utils"
	"github.com/ftld/certforge/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CertificateRequest struct {
	StudentName    string `json:"studentName" validate:"required,min=2"`
	Program        string `json:"program" validate:"required"`
	CompletionDate string `json:"completionDate" validate:"required,datetime=2006-01-02"`
}

type BulkResult struct {
	Success     bool                `json:"success"`
	Certificate *models.Certificate `json:"certificate,omitempty"`
	Error       string              `json:"error,omitempty"`
	Data        *CertificateRequest `json:"data,omitempty"`
}

var errProgramNotFound = errors.New("program not found or inactive")

// ListCertificates supports case-insensitive substring search on student
// name or verification code, an exact program filter, and limit/offset
// pagination. The reported total is always the filtered count and hasMore
// is derived from it.
func ListCertificates(c *fiber.Ctx) error {
	search := c.Query("search")
	program := c.Query("program")
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := database.DB.Model(&models.Certificate{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(student_name) LIKE ? OR LOWER(verification_code) LIKE ?", pattern, pattern)
	}
	if program != "" {
		query = query.Where("program = ?", program)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to fetch certificates"})
	}

	certificates := []models.Certificate{}
	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&certificates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to fetch certificates"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"certificates": certificates,
		"pagination": fiber.Map{
			"total":   total,
			"limit":   limit,
			"offset":  offset,
			"hasMore": int64(offset+limit) < total,
		},
	})
}

func CreateCertificate(c *fiber.Ctx) error {
	var req CertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	certificate, err := issueOne(req)
	if err != nil {
		if errors.Is(err, errProgramNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   fmt.Sprintf("Program '%s' not found or inactive", req.Program),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to create certificate"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"certificate": certificate,
	})
}

// BulkCreateCertificates issues every record independently: one bad record
// never aborts the batch, and partial success is the normal outcome.
func BulkCreateCertificates(c *fiber.Ctx) error {
	var records []CertificateRequest
	if err := c.BodyParser(&records); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Cannot parse JSON"})
	}
	if len(records) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid or empty data array provided"})
	}

	results, summary := processBulk(records)

	return c.JSON(fiber.Map{
		"success": true,
		"summary": summary,
		"results": results,
	})
}

// issueOne is the single issuance path shared by the create, bulk-create and
// CSV upload endpoints: program must exist and be active, then a fresh
// verification code is generated and the row inserted.
func issueOne(req CertificateRequest) (*models.Certificate, error) {
	var program models.Program
	if err := database.DB.Where("name = ? AND is_active = ?", req.Program, true).First(&program).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errProgramNotFound
		}
		return nil, err
	}

	code, err := utils.GenerateVerificationCode(database.DB)
	if err != nil {
		return nil, err
	}

	certificate := models.Certificate{
		StudentName:      req.StudentName,
		Program:          req.Program,
		CompletionDate:   req.CompletionDate,
		VerificationCode: code,
	}
	if err := database.DB.Create(&certificate).Error; err != nil {
		return nil, err
	}

	go services.GenerateCertificateAsset(certificate.ID)
	websocket.Broadcast <- &certificate

	return &certificate, nil
}

func processBulk(records []CertificateRequest) ([]BulkResult, fiber.Map) {
	results := make([]BulkResult, 0, len(records))
	errorList := []string{}
	successful := 0

	for i := range records {
		record := records[i]
		label := record.StudentName
		if label == "" {
			label = fmt.Sprintf("row %d", i+1)
		}

		if err := validate.Struct(record); err != nil {
			results = append(results, BulkResult{Success: false, Error: "Missing or malformed fields for a certificate", Data: &record})
			errorList = append(errorList, fmt.Sprintf("%s: missing or malformed fields", label))
			continue
		}

		certificate, err := issueOne(record)
		if err != nil {
			message := "Failed to create certificate"
			if errors.Is(err, errProgramNotFound) {
				message = fmt.Sprintf("Program '%s' not found or inactive", record.Program)
			}
			results = append(results, BulkResult{Success: false, Error: message, Data: &record})
			errorList = append(errorList, fmt.Sprintf("%s: %s", label, message))
			continue
		}

		results = append(results, BulkResult{Success: true, Certificate: certificate})
		successful++
	}

	summary := fiber.Map{
		"total":      len(records),
		"successful": successful,
		"failed":     len(records) - successful,
		"errors":     errorList,
	}
	return results, summary
}
