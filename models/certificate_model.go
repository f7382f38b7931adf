package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificate is one issued credential. Rows are create-once, read-many:
// there is no update or revoke path, only the async asset pipeline touching
// CertificateURL after the PDF lands in storage.
type Certificate struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentName      string    `gorm:"size:255;not null" json:"studentName"`
	Program          string    `gorm:"size:255;not null;index" json:"program"`
	CompletionDate   string    `gorm:"size:10;not null" json:"completionDate"`
	VerificationCode string    `gorm:"size:14;not null;uniqueIndex" json:"verificationCode"`
	CertificateURL   *string   `gorm:"type:text" json:"certificateUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
