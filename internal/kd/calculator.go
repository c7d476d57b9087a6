// Package kd turns classified rate descriptions into annualized
// cost-of-debt percentages with validity flags.
package kd

import (
	"github.com/rbastos/kdpipe/internal/model"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Table holds the annual base rate per indexer for the analysis year.
// Built once at startup from configuration; read-only afterwards, so
// concurrent readers need no locking.
type Table struct {
	rates map[model.Indexer]decimal.Decimal
}

// NewTable builds the reference table from configured percentages
func NewTable(cfg model.BaseRateConfig) *Table {
	rates := make(map[model.Indexer]decimal.Decimal, len(cfg))
	for name, rate := range cfg {
		rates[model.Indexer(name)] = decimal.NewFromFloat(rate)
	}
	return &Table{rates: rates}
}

// BaseRate returns the annual base rate for an indexer. PRE_FIXADO and
// UNIDENTIFIED carry no base and report false.
func (t *Table) BaseRate(indexer model.Indexer) (decimal.Decimal, bool) {
	rate, ok := t.rates[indexer]
	return rate, ok
}

// Calculator combines a classification with the reference table into a
// KdResult. Pure function of its inputs; invalidity is encoded in the
// result, never raised.
type Calculator struct {
	table         *Table
	defaultPeriod model.Period

	minKd       decimal.Decimal
	maxKd       decimal.Decimal
	extremeHigh decimal.Decimal
	extremeLow  decimal.Decimal
}

// NewCalculator builds a calculator from the run configuration
func NewCalculator(cfg *model.Config) *Calculator {
	defaultPeriod := model.Period(cfg.Calculation.DefaultPeriod)
	if defaultPeriod != model.PeriodMonthly {
		defaultPeriod = model.PeriodAnnual
	}

	return &Calculator{
		table:         NewTable(cfg.BaseRates),
		defaultPeriod: defaultPeriod,
		minKd:         decimal.NewFromFloat(cfg.Validation.MinKd),
		maxKd:         decimal.NewFromFloat(cfg.Validation.MaxKd),
		extremeHigh:   decimal.NewFromFloat(cfg.Validation.ExtremeHigh),
		extremeLow:    decimal.NewFromFloat(cfg.Validation.ExtremeLow),
	}
}

// Calculate computes the annualized Kd for one classification.
//
// Pré-fixado rates are taken whole; every other indexer combines as
// base + spread. Monthly figures are annualized by compound conversion
// before combination. Absent spread or an unidentified indexer yield an
// absent value with the reason recorded.
func (c *Calculator) Calculate(cls model.ClassificationResult) model.KdResult {
	if cls.Indexer == model.IndexerUnidentified {
		return model.KdResult{Reason: model.ReasonUnidentifiedIndexer}
	}
	if cls.Spread == nil {
		return model.KdResult{Reason: model.ReasonMissingSpread}
	}

	spread := *cls.Spread
	period := cls.Period
	if period == model.PeriodUnknown {
		period = c.defaultPeriod
	}
	if period == model.PeriodMonthly {
		spread = annualize(spread)
	}

	var value decimal.Decimal
	if cls.Indexer == model.IndexerPreFixado {
		value = spread
	} else {
		base, ok := c.table.BaseRate(cls.Indexer)
		if !ok {
			// keyword recognized but no base configured for this year
			return model.KdResult{Reason: model.ReasonUnidentifiedIndexer}
		}
		value = base.Add(spread)
	}

	return c.validate(cls.Indexer, value)
}

// validate applies the acceptance band and watch thresholds. The band is a
// closed interval; watch flags are strict comparisons. TR-indexed rates are
// exempt from the low-watch flag since a near-zero base is legitimate there.
func (c *Calculator) validate(indexer model.Indexer, value decimal.Decimal) model.KdResult {
	result := model.KdResult{Value: &value}

	var flags []model.Flag
	if value.GreaterThan(c.extremeHigh) {
		flags = append(flags, model.FlagExtremeHigh)
	}
	if value.LessThan(c.extremeLow) && indexer != model.IndexerTR {
		flags = append(flags, model.FlagExtremeLow)
	}

	if value.LessThan(c.minKd) || value.GreaterThan(c.maxKd) {
		flags = append(flags, model.FlagSuspectError)
		result.Reason = model.ReasonOutOfBand
	} else {
		result.Valid = true
	}

	if len(flags) > 0 {
		flags = append(flags, model.FlagNeedsReview)
	}
	result.Flags = flags
	return result
}

// annualize converts a monthly percentage to its compound annual
// equivalent: (1 + m/100)^12 - 1, expressed back as a percentage.
func annualize(monthly decimal.Decimal) decimal.Decimal {
	ratio := one.Add(monthly.Div(hundred))
	return ratio.Pow(twelve).Sub(one).Mul(hundred)
}
