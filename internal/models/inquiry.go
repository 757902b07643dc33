package models

import "gorm.io/gorm"

type Inquiry struct {
	gorm.Model

	UserID     *uint  `gorm:"index"`
	PropertyID *uint  `gorm:"index"`
	Type       string `gorm:"not null;index"` // "questionnaire", "property_inquiry", "faq_contact", "lead_capture"
	Status     string `gorm:"not null;default:'new'"`
	Name       string `gorm:"not null"`
	Email      string `gorm:"not null;index"`
	Phone      string
	Company    string
	Source     string
	Page       string
	Message    string

	// Relationships
	User     *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Property *Property `gorm:"foreignKey:PropertyID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
