package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peakspace-dev/peakspace/internal/services"
)

type LeadCaptureRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Phone  string `json:"phone" binding:"required"`
	Source string `json:"source"`
	Page   string `json:"page"`
}

// CaptureLead handles POST /api/lead-capture
func CaptureLead(ctx *gin.Context) {
	var req LeadCaptureRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and phone are required"})
		return
	}

	result, err := submissions.SubmitLead(ctx.Request.Context(), services.LeadInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Source: req.Source,
		Page:   req.Page,
	})

	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and phone are required"})
			return
		}

		log.Printf("Failed to save lead: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save lead"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Thanks! We'll be in touch shortly.",
		"leadId":  result.InquiryID,
	})
}
