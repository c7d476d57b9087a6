package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rbastos/kdpipe/internal/model"
	"github.com/shopspring/decimal"
)

// Loader reads financing records from a flat CSV export. Column names come
// from configuration since source spreadsheets vary by year and origin.
type Loader struct {
	companyColumn string
	rateColumn    string
	amountColumn  string
}

// NewLoader creates a loader for the configured column layout
func NewLoader(cfg model.InputConfig) *Loader {
	return &Loader{
		companyColumn: cfg.CompanyColumn,
		rateColumn:    cfg.RateColumn,
		amountColumn:  cfg.AmountColumn,
	}
}

// LoadCSV reads all financing records from the file. The company and rate
// columns are required; the amount column is optional and rows without a
// parseable amount get zero weight (they still classify, they just never
// enter the weighted aggregation).
func (l *Loader) LoadCSV(path string) ([]model.FinancingRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	companyIdx := findColumn(header, l.companyColumn)
	rateIdx := findColumn(header, l.rateColumn)
	amountIdx := findColumn(header, l.amountColumn)
	if companyIdx < 0 {
		return nil, fmt.Errorf("column %q not found in header", l.companyColumn)
	}
	if rateIdx < 0 {
		return nil, fmt.Errorf("column %q not found in header", l.rateColumn)
	}

	var records []model.FinancingRecord
	line := 1
	for {
		row, err := reader.Read()
		line++
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if emptyRow(row) {
			continue
		}

		record := model.FinancingRecord{
			Company:     field(row, companyIdx),
			Description: field(row, rateIdx),
			Line:        line,
		}
		if amountIdx >= 0 {
			record.Amount = parseAmount(field(row, amountIdx))
		}
		records = append(records, record)
	}

	return records, nil
}

// findColumn locates a header column case-insensitively
func findColumn(header []string, name string) int {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func emptyRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// parseAmount reads a monetary value accepting both Brazilian
// ("1.234.567,89") and plain ("1234567.89") formatting. Unparseable or
// missing values become zero weight.
func parseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}

	if strings.Contains(s, ",") {
		// comma is the decimal separator; dots are thousands
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return value
}
