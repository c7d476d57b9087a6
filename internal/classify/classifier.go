package classify

import (
	"regexp"
	"strings"

	"github.com/rbastos/kdpipe/internal/model"
	"github.com/shopspring/decimal"
)

// rule binds an indexer category to the pattern that identifies it.
// Rules are evaluated in slice order; the first match wins regardless of
// where the keyword sits in the text.
type rule struct {
	indexer model.Indexer
	pattern *regexp.Regexp
}

// spreadPattern locates a percentage token that acts as the margin.
// Patterns are ordered most-specific first; negative forms carry the sign.
type spreadPattern struct {
	re       *regexp.Regexp
	negative bool
}

// Classifier maps a free-text rate description to a ReferenceIndexer and
// extracts the associated spread and period. It never fails: unrecognized
// input yields UNIDENTIFIED with an absent spread. The classifier is pure
// and safe for concurrent use.
type Classifier struct {
	rules          []rule
	missing        []string
	barePercent    *regexp.Regexp
	spreadPatterns []spreadPattern
	monthlyMarker  *regexp.Regexp
	annualMarker   *regexp.Regexp
}

// NewClassifier builds the ordered rule set. Keyword priority is fixed:
// explicit indexer keywords, then pré-fixado variants, then a bare leading
// percentage (treated as pré-fixado), then the UNIDENTIFIED sentinel.
func NewClassifier() *Classifier {
	return &Classifier{
		rules: []rule{
			{model.IndexerCDI, regexp.MustCompile(`\bCDI\b`)},
			// "100% do DI" style quotes still mean DI
			{model.IndexerDI, regexp.MustCompile(`\b(?:100%?\s+)?(?:DO\s+)?DI\b`)},
			// TLP_IPCA is a TLP contract, so TLP outranks IPCA
			{model.IndexerTLP, regexp.MustCompile(`\bTLP(?:_IPCA)?\b`)},
			{model.IndexerTJLP, regexp.MustCompile(`\bTJLP\b`)},
			{model.IndexerIPCA, regexp.MustCompile(`\bIPCA(?:-E)?\b`)},
			{model.IndexerTR, regexp.MustCompile(`\bTR\b`)},
			{model.IndexerSELIC, regexp.MustCompile(`\bSELIC\b`)},
			{model.IndexerSOFR, regexp.MustCompile(`\bSOFR\b`)},
			{model.IndexerLIBOR, regexp.MustCompile(`\bLIBOR\b`)},
			{model.IndexerPreFixado, regexp.MustCompile(`\b(?:PRE[\s-]?FIXADO|PREFIXADO|FIXO|FIXA|PRE)\b`)},
		},
		missing: []string{
			"NAO ESPECIFICADO", "NAO INFORMADO", "NAO DEFINIDO",
			"NAO HA", "SEM INFORMACAO", "N/A", "NAN", "NONE", "-",
		},
		barePercent: regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*%`),
		spreadPatterns: []spreadPattern{
			// explicit negative margin: "CDI - 0,5%" (hyphen, en or em dash)
			{regexp.MustCompile(`[-–—]\s*(\d+(?:[.,]\d+)?)\s*%`), true},
			// explicit positive margin: "CDI + 1,30%"
			{regexp.MustCompile(`\+\s*(\d+(?:[.,]\d+)?)\s*%`), false},
			// percentage with period suffix: "1,5% a.a." / "1,5% ao ano"
			{regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%\s*(?:A\.?\s*A\b|AO\s+ANO)`), false},
			{regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%\s*(?:A\.?\s*M\b|AO\s+MES)`), false},
			// range "5,60% a 9,88%": the lower bound, deterministically
			{regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%\s*A\s*\d+(?:[.,]\d+)?\s*%`), false},
			{regexp.MustCompile(`(\d+[.,]\d+)\s*%`), false},
			{regexp.MustCompile(`(\d+)\s*%`), false},
		},
		monthlyMarker: regexp.MustCompile(`\bA\.?\s*M\b|\bAO\s+MES\b|\bMENSAL\b`),
		annualMarker:  regexp.MustCompile(`\bA\.?\s*A\b|\bAO\s+ANO\b|\bANUAL\b`),
	}
}

// Classify determines the indexer, spread and period for one description.
// Worst case it returns UNIDENTIFIED / absent / UNKNOWN; it never errors.
func (c *Classifier) Classify(text string) model.ClassificationResult {
	result := model.ClassificationResult{
		Indexer:  model.IndexerUnidentified,
		Period:   model.PeriodUnknown,
		Original: text,
	}

	normalized := Normalize(text)
	if c.isMissing(normalized) {
		result.Rule = "missing-indicator"
		return result
	}

	for _, r := range c.rules {
		if r.pattern.MatchString(normalized) {
			result.Indexer = r.indexer
			result.Rule = "keyword:" + string(r.indexer)
			break
		}
	}

	// A bare percentage with no keyword quotes the whole rate directly
	if result.Indexer == model.IndexerUnidentified {
		if !c.barePercent.MatchString(normalized) {
			return result
		}
		result.Indexer = model.IndexerPreFixado
		result.Rule = "bare-percent"
	}

	result.Spread = c.extractSpread(normalized)
	result.Period = c.extractPeriod(normalized)
	return result
}

// isMissing recognizes placeholder descriptions ("não especificado", a lone
// dash, empty cells) that carry no rate at all
func (c *Classifier) isMissing(normalized string) bool {
	if normalized == "" {
		return true
	}
	for _, indicator := range c.missing {
		if normalized == indicator || (strings.Contains(indicator, " ") && strings.Contains(normalized, indicator)) {
			return true
		}
	}
	return false
}

// extractSpread returns the first margin-like percentage in the text, sign
// preserved, or nil when none parses. Decimal comma and point both accepted.
func (c *Classifier) extractSpread(normalized string) *decimal.Decimal {
	for _, sp := range c.spreadPatterns {
		m := sp.re.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		value, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "."))
		if err != nil {
			continue
		}
		if sp.negative {
			value = value.Neg()
		}
		return &value
	}
	return nil
}

// extractPeriod reads the quotation period marker. Monthly markers are
// checked first; absence yields UNKNOWN, which the calculator resolves to
// its configured default.
func (c *Classifier) extractPeriod(normalized string) model.Period {
	if c.monthlyMarker.MatchString(normalized) {
		return model.PeriodMonthly
	}
	if c.annualMarker.MatchString(normalized) {
		return model.PeriodAnnual
	}
	return model.PeriodUnknown
}
