package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/peakspace-dev/peakspace/db"
	"github.com/peakspace-dev/peakspace/internal/models"
	"github.com/peakspace-dev/peakspace/internal/services"
	"gorm.io/gorm"
)

type PropertyResponse struct {
	ID            uint     `json:"id"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	SpaceType     string   `json:"space_type"`
	SizeSqft      int      `json:"size_sqft"`
	RentMonthly   int      `json:"rent_monthly"`
	VacancyMonths int      `json:"vacancy_months"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	Images        []string `json:"images"`
	DealScore     string   `json:"deal_score"`
}

// ListProperties handles GET /api/properties with optional filters
func ListProperties(ctx *gin.Context) {
	query := db.DB.Model(&models.Property{}).Order("created_at DESC")

	if city := ctx.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if spaceType := ctx.Query("space_type"); spaceType != "" {
		query = query.Where("space_type = ?", spaceType)
	}
	if minSize := ctx.Query("min_size"); minSize != "" {
		if size, err := strconv.Atoi(minSize); err == nil {
			query = query.Where("size_sqft >= ?", size)
		}
	}
	if maxSize := ctx.Query("max_size"); maxSize != "" {
		if size, err := strconv.Atoi(maxSize); err == nil {
			query = query.Where("size_sqft <= ?", size)
		}
	}

	var properties []models.Property
	if err := query.Find(&properties).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve properties"})
		return
	}

	response := make([]PropertyResponse, 0, len(properties))
	for i := range properties {
		response = append(response, toPropertyResponse(&properties[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"properties": response})
}

// GetProperty handles GET /api/properties/:id
func GetProperty(ctx *gin.Context) {
	var property models.Property

	if err := db.DB.First(&property, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve property"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"property": toPropertyResponse(&property)})
}

func toPropertyResponse(p *models.Property) PropertyResponse {
	return PropertyResponse{
		ID:            p.ID,
		Address:       p.Address,
		City:          p.City,
		State:         p.State,
		SpaceType:     p.SpaceType,
		SizeSqft:      p.SizeSqft,
		RentMonthly:   p.RentMonthly,
		VacancyMonths: p.VacancyMonths,
		Description:   p.Description,
		Features:      decodeStrings(p.Features),
		Images:        decodeStrings(p.Images),
		DealScore:     services.DealScore(p),
	}
}

func decodeStrings(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}

	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}
