package handlers

import (
	"encoding/csv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// BulkUploadCertificates accepts a multipart CSV roster with a
// student_name,program,completion_date header (any column order) and feeds
// the parsed rows through the same per-record issuance path as bulk create.
func BulkUploadCertificates(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "CSV file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Cannot open uploaded file"})
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Cannot parse CSV file"})
	}
	if len(rows) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "CSV file has no data rows"})
	}

	columns := map[string]int{}
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	nameIdx, nameOK := columns["student_name"]
	programIdx, programOK := columns["program"]
	dateIdx, dateOK := columns["completion_date"]
	if !nameOK || !programOK || !dateOK {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "CSV header must contain student_name, program and completion_date columns",
		})
	}

	records := make([]CertificateRequest, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := CertificateRequest{}
		if nameIdx < len(row) {
			record.StudentName = strings.TrimSpace(row[nameIdx])
		}
		if programIdx < len(row) {
			record.Program = strings.TrimSpace(row[programIdx])
		}
		if dateIdx < len(row) {
			record.CompletionDate = strings.TrimSpace(row[dateIdx])
		}
		records = append(records, record)
	}

	results, summary := processBulk(records)

	return c.JSON(fiber.Map{
		"success": true,
		"summary": summary,
		"results": results,
	})
}
