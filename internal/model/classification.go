package model

import "github.com/shopspring/decimal"

// Indexer identifies the reference-rate benchmark a financing is tied to
type Indexer string

const (
	IndexerCDI          Indexer = "CDI"
	IndexerDI           Indexer = "DI"
	IndexerTLP          Indexer = "TLP"
	IndexerTJLP         Indexer = "TJLP"
	IndexerIPCA         Indexer = "IPCA"
	IndexerTR           Indexer = "TR"
	IndexerSELIC        Indexer = "SELIC"
	IndexerSOFR         Indexer = "SOFR"
	IndexerLIBOR        Indexer = "LIBOR"
	IndexerPreFixado    Indexer = "PRE_FIXADO"   // spread is the whole rate, no base
	IndexerUnidentified Indexer = "UNIDENTIFIED" // sentinel, no Kd can be computed
)

// Period is the capitalization period a rate was quoted in
type Period string

const (
	PeriodAnnual  Period = "a.a."
	PeriodMonthly Period = "a.m."
	PeriodUnknown Period = "unknown"
)

// ClassificationResult is the structured reading of one raw rate description.
// Spread is nil when no percentage could be extracted; a legitimately zero
// spread is a non-nil zero value, the two are never conflated.
type ClassificationResult struct {
	Indexer  Indexer          `json:"indexer"`
	Spread   *decimal.Decimal `json:"spread,omitempty"` // percentage points, sign preserved
	Period   Period           `json:"period"`
	Rule     string           `json:"rule,omitempty"` // which heuristic matched (e.g. "keyword:CDI")
	Original string           `json:"original"`
}

// HasSpread reports whether a spread was extracted
func (c ClassificationResult) HasSpread() bool {
	return c.Spread != nil
}
