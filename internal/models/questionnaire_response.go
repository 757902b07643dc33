package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionnaireResponse struct {
	gorm.Model

	UserID    uint           `gorm:"not null;index"`
	InquiryID uint           `gorm:"not null;index"`
	Responses datatypes.JSON `gorm:"type:jsonb"` // Full answer set, stored verbatim

	// Denormalized answer fields for filtering
	SpaceType  string `gorm:"index"`
	Location   string `gorm:"index"`
	SizeMin    int
	SizeMax    int
	BudgetMin  int
	BudgetMax  int
	Timeline   string
	LeaseOrBuy string

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Inquiry Inquiry `gorm:"foreignKey:InquiryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
