package jobs

import (
	"fmt"
	"log"
	"strings"
	"time"

	config "github.com/ftld/certforge/configs"
	"github.com/ftld/certforge/database"
	"github.com/ftld/certforge/models"
	"github.com/ftld/certforge/notifications"
)

// SendDailyIssuanceDigest mails the admin a summary of certificates issued
// in the last 24 hours. Quiet days send nothing.
func SendDailyIssuanceDigest() {
	log.Println("Running job: SendDailyIssuanceDigest...")

	since := time.Now().Add(-24 * time.Hour)

	var total int64
	if err := database.DB.Model(&models.Certificate{}).Where("created_at > ?", since).Count(&total).Error; err != nil {
		log.Printf("Error counting issued certificates: %v", err)
		return
	}

	if total == 0 {
		return
	}

	type programCount struct {
		Program string
		Count   int64
	}
	var byProgram []programCount
	if err := database.DB.Model(&models.Certificate{}).
		Select("program, COUNT(*) as count").
		Where("created_at > ?", since).
		Group("program").
		Order("count desc").
		Scan(&byProgram).Error; err != nil {
		log.Printf("Error summarizing issued certificates: %v", err)
		return
	}

	var breakdown strings.Builder
	for _, row := range byProgram {
		breakdown.WriteString(fmt.Sprintf("<li>%s: %d</li>", row.Program, row.Count))
	}

	emailSubject := fmt.Sprintf("Daily issuance digest: %d certificate(s)", total)
	emailBody := fmt.Sprintf(
		"<h1>Daily Issuance Digest</h1><p>%d certificate(s) were issued in the last 24 hours.</p><ul>%s</ul>",
		total,
		breakdown.String(),
	)

	go notifications.SendEmail(
		config.Config("ADMIN_FULL_NAME"),
		config.Config("ADMIN_EMAIL"),
		emailSubject,
		emailBody,
	)
}
