// Package aggregate rolls record-level Kd results up to company level and
// characterizes the resulting distribution.
package aggregate

import (
	"sort"

	"github.com/rbastos/kdpipe/internal/model"
	"github.com/shopspring/decimal"
)

// companyGroup accumulates the eligible financing lines of one company
type companyGroup struct {
	name     string
	kds      []decimal.Decimal
	amounts  []decimal.Decimal
	indexers []string
	seen     map[string]bool
}

// ByCompany computes the weighted-average Kd per company over rows with a
// valid Kd and a positive amount. Rows flagged invalid are excluded here
// and left to the review report instead. Output is sorted by weighted Kd,
// highest first.
func ByCompany(results []model.RecordResult) []model.CompanyAggregate {
	groups := make(map[string]*companyGroup)
	var order []string

	for _, r := range results {
		if !r.Kd.Valid || r.Kd.Value == nil || !r.Record.Amount.IsPositive() {
			continue
		}
		g, ok := groups[r.Record.Company]
		if !ok {
			g = &companyGroup{name: r.Record.Company, seen: make(map[string]bool)}
			groups[r.Record.Company] = g
			order = append(order, r.Record.Company)
		}
		g.kds = append(g.kds, *r.Kd.Value)
		g.amounts = append(g.amounts, r.Record.Amount)
		if ix := string(r.Classification.Indexer); !g.seen[ix] {
			g.seen[ix] = true
			g.indexers = append(g.indexers, ix)
		}
	}

	aggregates := make([]model.CompanyAggregate, 0, len(order))
	for _, name := range order {
		aggregates = append(aggregates, groups[name].summarize())
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		return aggregates[i].WeightedKd.GreaterThan(aggregates[j].WeightedKd)
	})
	return aggregates
}

// summarize folds one company's lines into its aggregate row
func (g *companyGroup) summarize() model.CompanyAggregate {
	weightedSum := decimal.Zero
	totalAmount := decimal.Zero
	simpleSum := decimal.Zero
	minKd := g.kds[0]
	maxKd := g.kds[0]

	for i, kd := range g.kds {
		weightedSum = weightedSum.Add(kd.Mul(g.amounts[i]))
		totalAmount = totalAmount.Add(g.amounts[i])
		simpleSum = simpleSum.Add(kd)
		if kd.LessThan(minKd) {
			minKd = kd
		}
		if kd.GreaterThan(maxKd) {
			maxKd = kd
		}
	}

	n := int64(len(g.kds))
	floats := make([]float64, len(g.kds))
	for i, kd := range g.kds {
		floats[i] = kd.InexactFloat64()
	}

	return model.CompanyAggregate{
		Company:      g.name,
		WeightedKd:   weightedSum.Div(totalAmount),
		SimpleMeanKd: simpleSum.Div(decimal.NewFromInt(n)),
		KdStdDev:     sampleStdDev(floats),
		KdMin:        minKd,
		KdMax:        maxKd,
		Financings:   len(g.kds),
		TotalAmount:  totalAmount,
		Indexers:     g.indexers,
	}
}
