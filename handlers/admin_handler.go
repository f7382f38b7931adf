package handlers

import (
	"time"

	"github.com/ftld/certforge/database"
	"github.com/ftld/certforge/models"
	"github.com/gofiber/fiber/v2"
)

type ProgramIssuanceCount struct {
	Program string `json:"program"`
	Count   int64  `json:"count"`
}

type DashboardAnalyticsResponse struct {
	TotalCertificates      int64                  `json:"total_certificates"`
	CertificatesLast30Days int64                  `json:"certificates_last_30_days"`
	ActivePrograms         int64                  `json:"active_programs"`
	IssuanceByProgram      []ProgramIssuanceCount `json:"issuance_by_program"`
	RecentCertificates     []models.Certificate   `json:"recent_certificates"`
}

func GetDashboardAnalytics(c *fiber.Ctx) error {
	var response DashboardAnalyticsResponse

	database.DB.Model(&models.Certificate{}).Count(&response.TotalCertificates)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&models.Certificate{}).Where("created_at > ?", thirtyDaysAgo).Count(&response.CertificatesLast30Days)

	database.DB.Model(&models.Program{}).Where("is_active = ?", true).Count(&response.ActivePrograms)

	database.DB.Model(&models.Certificate{}).
		Select("program, COUNT(*) as count").
		Group("program").
		Order("count desc").
		Scan(&response.IssuanceByProgram)

	database.DB.Order("created_at desc").Limit(5).Find(&response.RecentCertificates)

	return c.JSON(fiber.Map{
		"success":   true,
		"analytics": response,
	})
}
