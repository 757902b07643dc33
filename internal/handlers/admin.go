package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peakspace-dev/peakspace/db"
	"github.com/peakspace-dev/peakspace/internal/export"
	"github.com/peakspace-dev/peakspace/internal/models"
	"gorm.io/gorm"
)

const defaultPageSize = 25

type InquirySummary struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminStatsResponse struct {
	TotalInquiries int64            `json:"total_inquiries"`
	NewInquiries   int64            `json:"new_inquiries"`
	TotalResponses int64            `json:"total_responses"`
	TotalUsers     int64            `json:"total_users"`
	TotalEvents    int64            `json:"total_events"`
	ByType         map[string]int64 `json:"inquiries_by_type"`
}

// ListInquiries handles GET /api/admin/inquiries with page/limit pagination.
// The total count is a separate query; pages are ordered newest first.
func ListInquiries(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 || limit > 200 {
		limit = defaultPageSize
	}

	query := db.DB.Model(&models.Inquiry{})
	if inquiryType := ctx.Query("type"); inquiryType != "" {
		query = query.Where("type = ?", inquiryType)
	}
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count inquiries"})
		return
	}

	var inquiries []models.Inquiry
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&inquiries).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve inquiries"})
		return
	}

	summaries := make([]InquirySummary, 0, len(inquiries))
	for _, inquiry := range inquiries {
		summaries = append(summaries, InquirySummary{
			ID:        inquiry.ID,
			Type:      inquiry.Type,
			Status:    inquiry.Status,
			Name:      inquiry.Name,
			Email:     inquiry.Email,
			Phone:     inquiry.Phone,
			Message:   inquiry.Message,
			CreatedAt: inquiry.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"inquiries": summaries,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// GetInquiry handles GET /api/admin/inquiries/:id, including the linked
// questionnaire response when one exists.
func GetInquiry(ctx *gin.Context) {
	var inquiry models.Inquiry

	if err := db.DB.Preload("User").First(&inquiry, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve inquiry"})
		}
		return
	}

	response := gin.H{"inquiry": inquiry}

	var questionnaireResponse models.QuestionnaireResponse
	err := db.DB.Where("inquiry_id = ?", inquiry.ID).First(&questionnaireResponse).Error
	if err == nil {
		response["response"] = questionnaireResponse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve response"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

type UpdateInquiryRequest struct {
	Status string `json:"status" binding:"required"`
}

var validInquiryStatuses = map[string]bool{
	"new":       true,
	"contacted": true,
	"qualified": true,
	"closed":    true,
}

// UpdateInquiry handles PATCH /api/admin/inquiries/:id (status changes)
func UpdateInquiry(ctx *gin.Context) {
	var req UpdateInquiryRequest

	if err := ctx.ShouldBindJSON(&req); err != nil || !validInquiryStatuses[req.Status] {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var inquiry models.Inquiry
	if err := db.DB.First(&inquiry, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve inquiry"})
		}
		return
	}

	if err := db.DB.Model(&inquiry).Update("status", req.Status).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inquiry"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "status": req.Status})
}

// GetStats handles GET /api/admin/stats
func GetStats(ctx *gin.Context) {
	var stats AdminStatsResponse
	stats.ByType = make(map[string]int64)

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Inquiry{}, &stats.TotalInquiries},
		{&models.QuestionnaireResponse{}, &stats.TotalResponses},
		{&models.User{}, &stats.TotalUsers},
		{&models.AnalyticsEvent{}, &stats.TotalEvents},
	}

	for _, c := range counts {
		if err := db.DB.Model(c.model).Count(c.dest).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
	}

	if err := db.DB.Model(&models.Inquiry{}).Where("status = ?", "new").Count(&stats.NewInquiries).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	var rows []struct {
		Type  string
		Count int64
	}
	if err := db.DB.Model(&models.Inquiry{}).Select("type, COUNT(*) as count").Group("type").Scan(&rows).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	for _, row := range rows {
		stats.ByType[row.Type] = row.Count
	}

	ctx.JSON(http.StatusOK, stats)
}

// ExportResponses handles GET /api/admin/export: the full unpaginated
// questionnaire set as CSV.
func ExportResponses(ctx *gin.Context) {
	var responses []models.QuestionnaireResponse

	if err := db.DB.Preload("Inquiry").Order("created_at DESC").Find(&responses).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve responses"})
		return
	}

	filename := fmt.Sprintf("questionnaire-responses-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := export.WriteResponsesCSV(ctx.Writer, responses); err != nil {
		log.Printf("Failed to write CSV export: %v", err)
	}
}
