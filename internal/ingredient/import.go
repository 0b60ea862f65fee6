package ingredient

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"menuplanner-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// RowError describes a spreadsheet row that could not be imported. Row is
// 1 based like in the spreadsheet itself.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResult is what the import endpoint returns.
type ImportResult struct {
	Imported []Response `json:"imported"`
	Skipped  []RowError `json:"skipped"`
}

var ErrEmptyWorkbook = errors.New("workbook has no rows")

// ReadWorkbook reads the first sheet of an xlsx file.
func ReadWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return rows, nil
}

// ParseRows converts name|description|category|unit rows into ingredients
// owned by userID. A header row is detected and skipped, blank rows are
// ignored and invalid rows are reported without stopping the import.
func ParseRows(rows [][]string, userID uint) ([]models.Ingredient, []RowError) {
	items := make([]models.Ingredient, 0, len(rows))
	rowErrs := make([]RowError, 0)

	start := 0
	if len(rows) > 0 && isHeader(rows[0]) {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}

		req := Request{
			Name:        cell(row, 0),
			Description: cell(row, 1),
			Category:    cell(row, 2),
			Unit:        cell(row, 3),
		}
		ing, err := req.Validate(userID)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Error: err.Error()})
			continue
		}
		items = append(items, *ing)
	}
	return items, rowErrs
}

// İlk hücre "name" / "ingredient" ise başlık satırıdır
func isHeader(row []string) bool {
	first := strings.ToLower(cell(row, 0))
	return first == "name" || strings.Contains(first, "ingredient")
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
