package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property is a catalog row, populated out-of-band and read-only
// from the application's perspective.
type Property struct {
	gorm.Model

	Address           string `gorm:"not null"`
	City              string `gorm:"not null;index"`
	State             string
	SpaceType         string `gorm:"not null;index"` // "warehouse", "office", "retail", "flex"
	SizeSqft          int    `gorm:"not null"`
	RentMonthly       int    `gorm:"not null"` // Advertised rent in dollars
	MarketRentMonthly int    // Estimated market rent, 0 if unknown
	VacancyMonths     int
	Description       string
	Features          datatypes.JSON `gorm:"type:jsonb"`
	Images            datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Inquiries []Inquiry `gorm:"foreignKey:PropertyID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
