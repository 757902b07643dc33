package services

import (
	"testing"

	"github.com/peakspace-dev/peakspace/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestDealScore_UnknownMarketRent(t *testing.T) {
	p := &models.Property{RentMonthly: 5000, MarketRentMonthly: 0}
	assert.Equal(t, ScoreFair, DealScore(p))
}

func TestDealScore_Labels(t *testing.T) {
	cases := []struct {
		name   string
		rent   int
		market int
		want   string
	}{
		{"well under market", 4000, 5000, ScoreGreat},
		{"slightly under market", 4500, 5000, ScoreGood},
		{"at market", 5000, 5000, ScoreFair},
		{"above market", 5500, 5000, ScoreHigh},
		{"far above market", 6500, 5000, ScoreOverMarket},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &models.Property{RentMonthly: tc.rent, MarketRentMonthly: tc.market}
			assert.Equal(t, tc.want, DealScore(p))
		})
	}
}

func TestDealScore_FeatureAndVacancyAdjustments(t *testing.T) {
	// At-market rent with many features reads as a better deal
	featured := &models.Property{
		RentMonthly:       5000,
		MarketRentMonthly: 5000,
		Features:          datatypes.JSON([]byte(`["dock doors","hvac","sprinklers","offices","yard","parking","fenced","rail","crane","power","lighting"]`)),
	}
	assert.Equal(t, ScoreGood, DealScore(featured))

	// Long vacancy pushes an at-market listing into overpriced territory
	vacant := &models.Property{
		RentMonthly:       5000,
		MarketRentMonthly: 5000,
		VacancyMonths:     6,
	}
	assert.Equal(t, ScoreHigh, DealScore(vacant))
}
