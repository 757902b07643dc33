package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peakspace-dev/peakspace/db"
	"github.com/peakspace-dev/peakspace/internal/models"
	"gorm.io/datatypes"
)

type TrackEventRequest struct {
	EventName  string                 `json:"eventName" binding:"required"`
	Properties map[string]interface{} `json:"properties"`
	UserID     string                 `json:"userId"`
	SessionID  string                 `json:"sessionId"`
}

// TrackEvent handles POST /api/track-event. The insert is fire-and-forget:
// a storage failure is logged but never reported to the page that sent it.
func TrackEvent(ctx *gin.Context) {
	var req TrackEventRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "eventName is required"})
		return
	}

	var props datatypes.JSON
	if req.Properties != nil {
		data, err := json.Marshal(req.Properties)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid properties"})
			return
		}
		props = datatypes.JSON(data)
	}

	event := models.AnalyticsEvent{
		EventName:  req.EventName,
		Properties: props,
		UserKey:    req.UserID,
		SessionID:  req.SessionID,
	}

	if err := db.DB.Create(&event).Error; err != nil {
		log.Printf("Failed to store analytics event %s: %v", req.EventName, err)
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
