package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peakspace-dev/peakspace/internal/outbox"
)

type SendEmailRequest struct {
	Type string            `json:"type" binding:"required"`
	Data map[string]string `json:"data"`
}

// SendEmail handles POST /api/send-email. Delivery goes through the outbox
// so a slow or broken provider never blocks the caller.
func SendEmail(ctx *gin.Context) {
	var req SendEmailRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "type is required"})
		return
	}

	switch req.Type {
	case "lead_notification":
		dispatcher.Enqueue(outbox.Job{
			Name: "operator_email",
			Run: func(c context.Context) error {
				return emailService.SendLeadNotification(
					req.Data["name"], req.Data["email"], req.Data["phone"], req.Data["message"])
			},
		})
	case "property_alert":
		to := req.Data["to"]
		if to == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "data.to is required for property_alert"})
			return
		}
		dispatcher.Enqueue(outbox.Job{
			Name: "property_alert_email",
			Run: func(c context.Context) error {
				return emailService.SendPropertyAlert(to, req.Data["address"], req.Data["detail"])
			},
		})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown email type"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
