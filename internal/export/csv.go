package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/peakspace-dev/peakspace/internal/models"
)

// baseColumns are the fixed schema columns of the export, in order.
var baseColumns = []string{
	"id",
	"created_at",
	"name",
	"email",
	"phone",
	"status",
	"space_type",
	"location",
	"size_min",
	"size_max",
	"budget_min",
	"budget_max",
	"timeline",
	"lease_or_buy",
	"message",
}

// WriteResponsesCSV writes the full questionnaire export. The opaque answer
// map is flattened into columns: answer keys become extra columns, and an
// answer sharing a name with a schema column overwrites that cell.
// Quoting/escaping is handled by encoding/csv per RFC 4180.
func WriteResponsesCSV(w io.Writer, rows []models.QuestionnaireResponse) error {
	records := make([]map[string]string, 0, len(rows))
	extraSet := make(map[string]bool)

	for i := range rows {
		record, extras, err := flatten(&rows[i])
		if err != nil {
			return err
		}
		for _, key := range extras {
			extraSet[key] = true
		}
		records = append(records, record)
	}

	extraColumns := make([]string, 0, len(extraSet))
	for key := range extraSet {
		extraColumns = append(extraColumns, key)
	}
	sort.Strings(extraColumns)

	header := append(append([]string{}, baseColumns...), extraColumns...)

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, record := range records {
		row := make([]string, 0, len(header))
		for _, col := range header {
			row = append(row, record[col])
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// flatten builds the cell map for one response and reports the answer keys
// that are not schema columns.
func flatten(r *models.QuestionnaireResponse) (map[string]string, []string, error) {
	record := map[string]string{
		"id":           strconv.FormatUint(uint64(r.ID), 10),
		"created_at":   r.CreatedAt.Format(time.RFC3339),
		"name":         r.Inquiry.Name,
		"email":        r.Inquiry.Email,
		"phone":        r.Inquiry.Phone,
		"status":       r.Inquiry.Status,
		"space_type":   r.SpaceType,
		"location":     r.Location,
		"size_min":     strconv.Itoa(r.SizeMin),
		"size_max":     strconv.Itoa(r.SizeMax),
		"budget_min":   strconv.Itoa(r.BudgetMin),
		"budget_max":   strconv.Itoa(r.BudgetMax),
		"timeline":     r.Timeline,
		"lease_or_buy": r.LeaseOrBuy,
		"message":      r.Inquiry.Message,
	}

	if len(r.Responses) == 0 {
		return record, nil, nil
	}

	var answers map[string]interface{}
	if err := json.Unmarshal(r.Responses, &answers); err != nil {
		return nil, nil, fmt.Errorf("failed to decode responses for row %d: %w", r.ID, err)
	}

	base := make(map[string]bool, len(baseColumns))
	for _, col := range baseColumns {
		base[col] = true
	}

	var extras []string
	for key, value := range answers {
		record[key] = cellValue(value)
		if !base[key] {
			extras = append(extras, key)
		}
	}

	return record, extras, nil
}

func cellValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(encoded)
	}
}
