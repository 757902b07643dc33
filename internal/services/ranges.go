package services

// Range is an inclusive min/max pair in whole dollars or square feet.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

var budgetRanges = map[string]Range{
	"under-2000": {Min: 0, Max: 2000},
	"2000-3500":  {Min: 2000, Max: 3500},
	"3500-5000":  {Min: 3500, Max: 5000},
	"5000-7500":  {Min: 5000, Max: 7500},
	"7500-10000": {Min: 7500, Max: 10000},
	"over-10000": {Min: 10000, Max: 999999},
	"not-sure":   {Min: 0, Max: 999999},
}

var defaultBudgetRange = Range{Min: 0, Max: 999999}

// BudgetRange maps a budget bucket label to its dollar range. Unrecognized
// labels map to the wide-open default rather than failing the submission.
func BudgetRange(label string) Range {
	if r, ok := budgetRanges[label]; ok {
		return r
	}
	return defaultBudgetRange
}

// SizeRange widens a requested square footage into a search band:
// 500 below (floored at 500) and 1000 above.
func SizeRange(size int) Range {
	min := size - 500
	if min < 500 {
		min = 500
	}
	return Range{Min: min, Max: size + 1000}
}
