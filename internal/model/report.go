package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchReport is the complete output of processing one input file
type BatchReport struct {
	GeneratedAt  time.Time `json:"generated_at"`
	SourceFile   string    `json:"source_file"`
	AnalysisYear int       `json:"analysis_year"`

	Records   []RecordResult     `json:"records"`
	Summary   BatchSummary       `json:"summary"`
	Companies []CompanyAggregate `json:"companies,omitempty"`
	Outliers  *OutlierBounds     `json:"outliers,omitempty"`

	RecordStats  *DescriptiveStats `json:"record_stats,omitempty"`  // over valid record-level Kd
	CompanyStats *DescriptiveStats `json:"company_stats,omitempty"` // over company weighted Kd
}

// RecordResult pairs one financing record with its classification and Kd
type RecordResult struct {
	Record         FinancingRecord      `json:"record"`
	Classification ClassificationResult `json:"classification"`
	Kd             KdResult             `json:"kd"`
}

// BatchSummary counts outcomes across the batch
type BatchSummary struct {
	Total        int `json:"total"`
	Classified   int `json:"classified"`   // indexer identified
	Unidentified int `json:"unidentified"` // sentinel indexer
	ValidKd      int `json:"valid_kd"`
	NeedsReview  int `json:"needs_review"`
}

// CompanyAggregate is the weighted cost of debt of one company across its
// financing lines. WeightedKd = Σ(Kd_i × Amount_i) / Σ(Amount_i) over rows
// with a valid Kd and a positive amount.
type CompanyAggregate struct {
	Company      string          `json:"company"`
	WeightedKd   decimal.Decimal `json:"weighted_kd"`
	SimpleMeanKd decimal.Decimal `json:"simple_mean_kd"`
	KdStdDev     float64         `json:"kd_std_dev"`
	KdMin        decimal.Decimal `json:"kd_min"`
	KdMax        decimal.Decimal `json:"kd_max"`
	Financings   int             `json:"financings"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Indexers     []string        `json:"indexers,omitempty"` // distinct, in first-seen order
	Outlier      bool            `json:"outlier"`
}

// OutlierBounds documents the IQR fence applied to company weighted Kd.
// Companies outside [Lower, Upper] are flagged, not dropped; exclusion is
// the downstream analyst's call.
type OutlierBounds struct {
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	IQR      float64 `json:"iqr"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	Flagged  int     `json:"flagged"`
	Examined int     `json:"examined"`
}

// DescriptiveStats is a pandas-describe style summary of a Kd series
type DescriptiveStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
}
