package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetRange_KnownLabels(t *testing.T) {
	cases := map[string]Range{
		"under-2000": {Min: 0, Max: 2000},
		"2000-3500":  {Min: 2000, Max: 3500},
		"3500-5000":  {Min: 3500, Max: 5000},
		"5000-7500":  {Min: 5000, Max: 7500},
		"7500-10000": {Min: 7500, Max: 10000},
		"over-10000": {Min: 10000, Max: 999999},
		"not-sure":   {Min: 0, Max: 999999},
	}

	for label, expected := range cases {
		assert.Equal(t, expected, BudgetRange(label), "label %q", label)
	}
}

func TestBudgetRange_UnknownLabelDefaults(t *testing.T) {
	assert.Equal(t, Range{Min: 0, Max: 999999}, BudgetRange("yacht-money"))
	assert.Equal(t, Range{Min: 0, Max: 999999}, BudgetRange(""))
}

func TestSizeRange(t *testing.T) {
	assert.Equal(t, Range{Min: 1500, Max: 3000}, SizeRange(2000))

	// Lower bound floors at 500
	assert.Equal(t, Range{Min: 500, Max: 1500}, SizeRange(500))
	assert.Equal(t, Range{Min: 500, Max: 1800}, SizeRange(800))

	assert.Equal(t, Range{Min: 9500, Max: 11000}, SizeRange(10000))
}
