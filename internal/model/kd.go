package model

import "github.com/shopspring/decimal"

// Flag marks a Kd value that deviates from the plausible band for the
// study period. Flagged rows are surfaced for manual review, never
// auto-corrected.
type Flag string

const (
	FlagExtremeHigh  Flag = "extreme_high"  // above the high-watch threshold
	FlagExtremeLow   Flag = "extreme_low"   // below the low-watch threshold (TR excepted)
	FlagSuspectError Flag = "suspect_error" // outside the acceptance band entirely
	FlagNeedsReview  Flag = "needs_review"  // any other flag implies this one
)

// InvalidReason explains why a KdResult carries no usable value
type InvalidReason string

const (
	ReasonUnidentifiedIndexer InvalidReason = "unidentified_indexer"
	ReasonMissingSpread       InvalidReason = "missing_spread"
	ReasonOutOfBand           InvalidReason = "out_of_band"
)

// KdResult is the terminal output of the pipeline for one financing record.
// Value is nil when the indexer is unidentified or no spread was extracted;
// absence is data, not an error.
type KdResult struct {
	Value  *decimal.Decimal `json:"value,omitempty"` // annualized percentage
	Valid  bool             `json:"valid"`
	Flags  []Flag           `json:"flags,omitempty"`
	Reason InvalidReason    `json:"reason,omitempty"`
}

// HasFlag reports whether the result carries the given flag
func (r KdResult) HasFlag(f Flag) bool {
	for _, have := range r.Flags {
		if have == f {
			return true
		}
	}
	return false
}
