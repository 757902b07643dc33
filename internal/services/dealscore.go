package services

import (
	"encoding/json"

	"github.com/peakspace-dev/peakspace/internal/models"
)

const (
	ScoreGreat      = "great"
	ScoreGood       = "good"
	ScoreFair       = "fair"
	ScoreHigh       = "high"
	ScoreOverMarket = "over-market"
)

// DealScore labels how the advertised rent compares to the estimated
// market rent. Each listed feature discounts the effective ratio slightly;
// every month of vacancy raises it, since a long-vacant space should be
// priced under market to move.
func DealScore(p *models.Property) string {
	if p.MarketRentMonthly <= 0 {
		return ScoreFair
	}

	ratio := float64(p.RentMonthly) / float64(p.MarketRentMonthly)
	ratio -= 0.01 * float64(featureCount(p))
	ratio += 0.02 * float64(p.VacancyMonths)

	switch {
	case ratio < 0.85:
		return ScoreGreat
	case ratio < 0.95:
		return ScoreGood
	case ratio < 1.05:
		return ScoreFair
	case ratio < 1.15:
		return ScoreHigh
	default:
		return ScoreOverMarket
	}
}

func featureCount(p *models.Property) int {
	if len(p.Features) == 0 {
		return 0
	}

	var features []string
	if err := json.Unmarshal(p.Features, &features); err != nil {
		return 0
	}
	return len(features)
}
