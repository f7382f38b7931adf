package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Program is an offerable course/track. Certificates reference a program by
// name, so the name is unique and deactivated programs stop being offered
// without breaking certificates already issued against them.
type Program struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
}

func (p *Program) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
