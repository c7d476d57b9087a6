package model

import "github.com/shopspring/decimal"

// FinancingRecord is one financing line of a company: the raw rate
// description plus the consolidated amount used as aggregation weight.
// Description is never mutated; classification works on a normalized copy.
type FinancingRecord struct {
	Company     string          `json:"company"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Line        int             `json:"line,omitempty"` // source CSV line, for review reports
}
