package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peakspace-dev/peakspace/internal/services"
	"github.com/peakspace-dev/peakspace/internal/types"
)

type UserInfoRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

type QuestionnaireSubmitRequest struct {
	Responses map[string]interface{} `json:"responses" binding:"required"`
	UserInfo  UserInfoRequest        `json:"userInfo" binding:"required"`
}

// SubmitQuestionnaire handles POST /api/questionnaire-submit
func SubmitQuestionnaire(ctx *gin.Context) {
	var req QuestionnaireSubmitRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := submissions.SubmitQuestionnaire(ctx.Request.Context(), services.QuestionnaireInput{
		Responses: req.Responses,
		UserInfo: types.SubmitUserInfo{
			Name:    req.UserInfo.Name,
			Email:   req.UserInfo.Email,
			Phone:   req.UserInfo.Phone,
			Company: req.UserInfo.Company,
		},
	})

	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
			return
		}

		log.Printf("Failed to save questionnaire submission: %v", err)

		resp := gin.H{"error": "Failed to save submission"}
		if cfg.App.Debug {
			resp["details"] = err.Error()
		}
		ctx.JSON(http.StatusInternalServerError, resp)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"userId":    result.UserID,
		"inquiryId": result.InquiryID,
		"data": gin.H{
			"responseId": result.ResponseID,
			"budgetMin":  result.BudgetMin,
			"budgetMax":  result.BudgetMax,
			"sizeMin":    result.SizeMin,
			"sizeMax":    result.SizeMax,
		},
	})
}
