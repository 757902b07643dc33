package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AnalyticsEvent struct {
	gorm.Model

	EventName  string         `gorm:"not null;index"`
	Properties datatypes.JSON `gorm:"type:jsonb"`
	UserKey    string         `gorm:"index"` // Caller-supplied identifier, not a User foreign key
	SessionID  string         `gorm:"index"`
}
