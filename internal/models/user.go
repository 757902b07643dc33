package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Name          string `gorm:"not null"`
	Email         string `gorm:"uniqueIndex;not null"`
	Phone         string
	Company       string
	LeadSource    string
	Notes         string
	LastContactAt *time.Time

	// Relationships
	Inquiries              []Inquiry               `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	QuestionnaireResponses []QuestionnaireResponse `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
