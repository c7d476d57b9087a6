package aggregate

import (
	"sort"

	"github.com/rbastos/kdpipe/internal/model"
)

// iqrMultiplier is the conventional Tukey fence factor
const iqrMultiplier = 1.5

// FlagOutliers applies the 1.5×IQR rule to company weighted Kd, marking
// companies outside [Q1 - 1.5·IQR, Q3 + 1.5·IQR]. Outliers are flagged in
// place, never removed; the bounds are returned for the report. Returns nil
// when there is nothing to examine.
func FlagOutliers(companies []model.CompanyAggregate) *model.OutlierBounds {
	if len(companies) == 0 {
		return nil
	}

	values := make([]float64, len(companies))
	for i, c := range companies {
		values[i] = c.WeightedKd.InexactFloat64()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := Quantile(sorted, 0.25)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1
	lower := q1 - iqrMultiplier*iqr
	upper := q3 + iqrMultiplier*iqr

	flagged := 0
	for i := range companies {
		if values[i] < lower || values[i] > upper {
			companies[i].Outlier = true
			flagged++
		}
	}

	return &model.OutlierBounds{
		Q1:       q1,
		Q3:       q3,
		IQR:      iqr,
		Lower:    lower,
		Upper:    upper,
		Flagged:  flagged,
		Examined: len(companies),
	}
}
