package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/peakspace-dev/peakspace/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func sampleResponse(id uint, answers string) models.QuestionnaireResponse {
	return models.QuestionnaireResponse{
		Model: gorm.Model{ID: id, CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		Inquiry: models.Inquiry{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Phone:   "3035551234",
			Status:  "new",
			Message: "Looking to lease a warehouse (~2000 sqft) in denver, budget 2000-3500/mo.",
		},
		SpaceType:  "warehouse",
		Location:   "denver",
		SizeMin:    1500,
		SizeMax:    3000,
		BudgetMin:  2000,
		BudgetMax:  3500,
		Timeline:   "asap",
		LeaseOrBuy: "lease",
		Responses:  datatypes.JSON([]byte(answers)),
	}
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func cell(t *testing.T, records [][]string, row int, column string) string {
	t.Helper()
	for i, header := range records[0] {
		if header == column {
			return records[row][i]
		}
	}
	t.Fatalf("column %q not found in header %v", column, records[0])
	return ""
}

func TestWriteResponsesCSV_BaseColumns(t *testing.T) {
	var buf bytes.Buffer
	rows := []models.QuestionnaireResponse{sampleResponse(1, `{}`)}

	require.NoError(t, WriteResponsesCSV(&buf, rows))

	records := parseCSV(t, buf.Bytes())
	require.Len(t, records, 2)

	assert.Equal(t, "1", cell(t, records, 1, "id"))
	assert.Equal(t, "jane@example.com", cell(t, records, 1, "email"))
	assert.Equal(t, "2000", cell(t, records, 1, "budget_min"))
	assert.Equal(t, "3500", cell(t, records, 1, "budget_max"))
	assert.Equal(t, "warehouse", cell(t, records, 1, "space_type"))
}

func TestWriteResponsesCSV_FlattensAnswerKeys(t *testing.T) {
	var buf bytes.Buffer
	rows := []models.QuestionnaireResponse{
		sampleResponse(1, `{"parkingSpaces": 12, "loadingDock": true}`),
	}

	require.NoError(t, WriteResponsesCSV(&buf, rows))

	records := parseCSV(t, buf.Bytes())
	assert.Equal(t, "12", cell(t, records, 1, "parkingSpaces"))
	assert.Equal(t, "true", cell(t, records, 1, "loadingDock"))

	// Extra columns are appended after the schema columns, sorted
	header := records[0]
	assert.Equal(t, "loadingDock", header[len(header)-2])
	assert.Equal(t, "parkingSpaces", header[len(header)-1])
}

func TestWriteResponsesCSV_AnswerOverridesSchemaColumn(t *testing.T) {
	var buf bytes.Buffer
	rows := []models.QuestionnaireResponse{
		sampleResponse(1, `{"location": "boulder"}`),
	}

	require.NoError(t, WriteResponsesCSV(&buf, rows))

	records := parseCSV(t, buf.Bytes())
	// The answer wins over the denormalized column, and no duplicate
	// column is added
	assert.Equal(t, "boulder", cell(t, records, 1, "location"))
	count := 0
	for _, header := range records[0] {
		if header == "location" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestWriteResponsesCSV_EscapesSpecialCharacters(t *testing.T) {
	var buf bytes.Buffer
	rows := []models.QuestionnaireResponse{
		sampleResponse(1, `{"notes": "needs \"dock-high\" doors,\nand a yard"}`),
	}

	require.NoError(t, WriteResponsesCSV(&buf, rows))

	// encoding/csv must round-trip embedded quotes, commas and newlines
	records := parseCSV(t, buf.Bytes())
	assert.Equal(t, "needs \"dock-high\" doors,\nand a yard", cell(t, records, 1, "notes"))
}

func TestWriteResponsesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResponsesCSV(&buf, nil))

	records := parseCSV(t, buf.Bytes())
	require.Len(t, records, 1) // header only
	assert.Equal(t, baseColumns, records[0])
}
