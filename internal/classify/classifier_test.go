package classify

import (
	"testing"

	"github.com/rbastos/kdpipe/internal/model"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestClassifier_KnownKeywords(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		text string
		want model.Indexer
	}{
		{"CDI + 1,30% a.a.", model.IndexerCDI},
		{"cdi + 2,00%", model.IndexerCDI},
		{"100% do DI", model.IndexerDI},
		{"DI + 0,90% a.a.", model.IndexerDI},
		{"TLP + 2,50% a.a.", model.IndexerTLP},
		{"TLP_IPCA + 1,95%", model.IndexerTLP},
		{"BRL - TJLP 7,97%", model.IndexerTJLP},
		{"IPCA + 5,25% a.a.", model.IndexerIPCA},
		{"IPCA-E + 4,00%", model.IndexerIPCA},
		{"TR + 8,00% a.a.", model.IndexerTR},
		{"SELIC + 2,00% a.a.", model.IndexerSELIC},
		{"SOFR + 1,20% a.a.", model.IndexerSOFR},
		{"LIBOR + 2,10% a.a.", model.IndexerLIBOR},
		{"Pré-fixado 6,00% a.a.", model.IndexerPreFixado},
		{"PRE FIXADO 9,90%", model.IndexerPreFixado},
		{"Prefixado 7,50% a.a.", model.IndexerPreFixado},
		{"Taxa fixa 8,40% a.a.", model.IndexerPreFixado},
		{"Fixo 11,00%", model.IndexerPreFixado},
		{"Pré 9,9%", model.IndexerPreFixado},
	}

	for _, tc := range cases {
		got := c.Classify(tc.text)
		if got.Indexer != tc.want {
			t.Errorf("Classify(%q): expected indexer %s, got %s (rule %q)", tc.text, tc.want, got.Indexer, got.Rule)
		}
	}
}

func TestClassifier_BarePercentageIsPreFixado(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("18,44% a.a.")
	if got.Indexer != model.IndexerPreFixado {
		t.Fatalf("Expected PRE_FIXADO, got %s", got.Indexer)
	}
	if got.Rule != "bare-percent" {
		t.Errorf("Expected bare-percent rule, got %q", got.Rule)
	}
	if got.Spread == nil || !got.Spread.Equal(dec("18.44")) {
		t.Errorf("Expected spread 18.44, got %v", got.Spread)
	}
	if got.Period != model.PeriodAnnual {
		t.Errorf("Expected annual period, got %s", got.Period)
	}

	// integer form without decimals
	got = c.Classify("15%")
	if got.Indexer != model.IndexerPreFixado {
		t.Errorf("Expected PRE_FIXADO for %q, got %s", "15%", got.Indexer)
	}
	if got.Spread == nil || !got.Spread.Equal(dec("15")) {
		t.Errorf("Expected spread 15, got %v", got.Spread)
	}
}

func TestClassifier_UnknownAndPlaceholderInput(t *testing.T) {
	c := NewClassifier()

	for _, text := range []string{
		"Variação cambial",
		"Não especificado",
		"nao informado",
		"-",
		"",
		"   ",
		"USD",
	} {
		got := c.Classify(text)
		if got.Indexer != model.IndexerUnidentified {
			t.Errorf("Classify(%q): expected UNIDENTIFIED, got %s", text, got.Indexer)
		}
		if got.Spread != nil {
			t.Errorf("Classify(%q): expected absent spread, got %v", text, got.Spread)
		}
		if got.Period != model.PeriodUnknown {
			t.Errorf("Classify(%q): expected unknown period, got %s", text, got.Period)
		}
	}
}

func TestClassifier_SpreadExtraction(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		text   string
		spread string
	}{
		{"CDI + 1,30% a.a.", "1.30"},
		{"CDI + 1.30% a.a.", "1.30"},
		{"CDI - 0,5% a.a.", "-0.5"},
		{"IPCA + 5,60% a 9,88%", "5.60"},
		{"BRL - TJLP 7,97%", "7.97"},
		{"SELIC + 2% a.a.", "2"},
	}

	for _, tc := range cases {
		got := c.Classify(tc.text)
		if got.Spread == nil {
			t.Errorf("Classify(%q): expected spread %s, got absent", tc.text, tc.spread)
			continue
		}
		if !got.Spread.Equal(dec(tc.spread)) {
			t.Errorf("Classify(%q): expected spread %s, got %s", tc.text, tc.spread, got.Spread)
		}
	}
}

func TestClassifier_RangeTakesLowerBound(t *testing.T) {
	c := NewClassifier()

	// the lower bound, every time
	for i := 0; i < 10; i++ {
		got := c.Classify("5,60% a 9,88%")
		if got.Spread == nil || !got.Spread.Equal(dec("5.60")) {
			t.Fatalf("Run %d: expected spread 5.60, got %v", i, got.Spread)
		}
	}
}

func TestClassifier_PeriodDetection(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		text string
		want model.Period
	}{
		{"CDI + 1,30% a.a.", model.PeriodAnnual},
		{"CDI + 1,30% ao ano", model.PeriodAnnual},
		{"Pré-fixado 1,05% a.m.", model.PeriodMonthly},
		{"CDI + 0,95% ao mês", model.PeriodMonthly},
		{"Pré 1,10% mensal", model.PeriodMonthly},
		{"CDI + 1,30%", model.PeriodUnknown},
	}

	for _, tc := range cases {
		got := c.Classify(tc.text)
		if got.Period != tc.want {
			t.Errorf("Classify(%q): expected period %s, got %s", tc.text, tc.want, got.Period)
		}
	}
}

func TestClassifier_Idempotent(t *testing.T) {
	c := NewClassifier()

	text := "CDI + 1,30% a.a."
	first := c.Classify(text)
	second := c.Classify(text)

	if first.Indexer != second.Indexer || first.Period != second.Period || first.Rule != second.Rule {
		t.Errorf("Classification not stable: %+v vs %+v", first, second)
	}
	if first.Spread == nil || second.Spread == nil || !first.Spread.Equal(*second.Spread) {
		t.Errorf("Spread not stable: %v vs %v", first.Spread, second.Spread)
	}
}

func TestClassifier_OriginalTextPreserved(t *testing.T) {
	c := NewClassifier()

	text := "Pré-fixado 6,00% a.a."
	got := c.Classify(text)
	if got.Original != text {
		t.Errorf("Expected original text preserved, got %q", got.Original)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Pré-fixado   6,00% a.a.", "PRE-FIXADO 6,00% A.A."},
		{"  cdi + 1,30%  ", "CDI + 1,30%"},
		{"Variação cambial", "VARIACAO CAMBIAL"},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
