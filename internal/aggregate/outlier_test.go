package aggregate

import (
	"math"
	"testing"

	"github.com/rbastos/kdpipe/internal/model"
)

func companyWithKd(name, kd string) model.CompanyAggregate {
	return model.CompanyAggregate{Company: name, WeightedKd: dec(kd)}
}

func TestFlagOutliers(t *testing.T) {
	companies := []model.CompanyAggregate{
		companyWithKd("A", "10"),
		companyWithKd("B", "11"),
		companyWithKd("C", "12"),
		companyWithKd("D", "13"),
		companyWithKd("E", "100"),
	}

	bounds := FlagOutliers(companies)
	if bounds == nil {
		t.Fatal("Expected bounds")
	}

	// sorted series {10,11,12,13,100}: Q1=11, Q3=13, IQR=2 -> fence [8,16]
	if bounds.Q1 != 11 || bounds.Q3 != 13 {
		t.Errorf("Expected Q1/Q3 11/13, got %f/%f", bounds.Q1, bounds.Q3)
	}
	if bounds.Lower != 8 || bounds.Upper != 16 {
		t.Errorf("Expected fence [8,16], got [%f,%f]", bounds.Lower, bounds.Upper)
	}
	if bounds.Flagged != 1 || bounds.Examined != 5 {
		t.Errorf("Expected 1 of 5 flagged, got %d of %d", bounds.Flagged, bounds.Examined)
	}

	for _, c := range companies {
		if c.Company == "E" && !c.Outlier {
			t.Error("Expected company E flagged as outlier")
		}
		if c.Company != "E" && c.Outlier {
			t.Errorf("Company %s wrongly flagged", c.Company)
		}
	}
}

func TestFlagOutliers_Empty(t *testing.T) {
	if bounds := FlagOutliers(nil); bounds != nil {
		t.Errorf("Expected nil bounds for empty input, got %+v", bounds)
	}
}

func TestFlagOutliers_FlagsNotRemoved(t *testing.T) {
	companies := []model.CompanyAggregate{
		companyWithKd("A", "10"),
		companyWithKd("B", "200"),
		companyWithKd("C", "11"),
		companyWithKd("D", "12"),
	}

	FlagOutliers(companies)
	if len(companies) != 4 {
		t.Errorf("Outliers must be flagged, never dropped; got %d companies", len(companies))
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	if q := Quantile(sorted, 0.25); q != 1.75 {
		t.Errorf("Expected Q1 1.75, got %f", q)
	}
	if q := Quantile(sorted, 0.5); q != 2.5 {
		t.Errorf("Expected median 2.5, got %f", q)
	}
	if q := Quantile(sorted, 1); q != 4 {
		t.Errorf("Expected max 4, got %f", q)
	}
	if q := Quantile([]float64{7}, 0.75); q != 7 {
		t.Errorf("Expected single-element quantile 7, got %f", q)
	}
	if q := Quantile(nil, 0.5); !math.IsNaN(q) {
		t.Errorf("Expected NaN for empty series, got %f", q)
	}
}
