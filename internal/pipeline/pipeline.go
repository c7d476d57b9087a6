package pipeline

import (
	"fmt"
	"time"

	"github.com/rbastos/kdpipe/internal/aggregate"
	"github.com/rbastos/kdpipe/internal/cache"
	"github.com/rbastos/kdpipe/internal/classify"
	"github.com/rbastos/kdpipe/internal/kd"
	"github.com/rbastos/kdpipe/internal/model"
)

// Pipeline orchestrates the two-stage transform for each record:
// classification of the raw rate description, then Kd calculation against
// the configured reference table.
type Pipeline struct {
	classifier *classify.Classifier
	calculator *kd.Calculator
	cache      cache.Cache // nil when memoization is disabled
	renderer   *Renderer
	config     *model.Config
}

// NewPipeline creates a pipeline from the run configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var memo cache.Cache
	if cfg.Cache.Enabled {
		memo = cache.NewMemoryCache(cache.NoExpiration, 0)
	}

	return &Pipeline{
		classifier: classify.NewClassifier(),
		calculator: kd.NewCalculator(cfg),
		cache:      memo,
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
	}
}

// ProcessRecord classifies one record and computes its Kd. Never fails:
// unusable input yields an unidentified classification and an absent Kd.
func (p *Pipeline) ProcessRecord(record model.FinancingRecord) model.RecordResult {
	classification := p.classify(record.Description)
	return model.RecordResult{
		Record:         record,
		Classification: classification,
		Kd:             p.calculator.Calculate(classification),
	}
}

// classify runs the classifier through the memoization cache when enabled.
// Two raw texts with the same normalized form share one classification;
// only the Original field is re-bound.
func (p *Pipeline) classify(description string) model.ClassificationResult {
	if p.cache == nil {
		return p.classifier.Classify(description)
	}

	key := cache.Key(classify.Normalize(description))
	if cached, ok := p.cache.Get(key); ok {
		cached.Original = description
		return cached
	}

	result := p.classifier.Classify(description)
	p.cache.Set(key, result)
	return result
}

// BuildReport assembles the batch report: per-record outcomes, outcome
// counts, company aggregation, IQR outlier bounds and distribution stats.
func (p *Pipeline) BuildReport(sourceFile string, results []model.RecordResult) *model.BatchReport {
	report := &model.BatchReport{
		GeneratedAt:  time.Now().UTC(),
		SourceFile:   sourceFile,
		AnalysisYear: p.config.AnalysisYear,
		Records:      results,
	}

	var recordKds []float64
	for _, r := range results {
		report.Summary.Total++
		if r.Classification.Indexer == model.IndexerUnidentified {
			report.Summary.Unidentified++
		} else {
			report.Summary.Classified++
		}
		if r.Kd.Valid {
			report.Summary.ValidKd++
		}
		if r.Kd.HasFlag(model.FlagNeedsReview) {
			report.Summary.NeedsReview++
		}
		if r.Kd.Valid && r.Kd.Value != nil {
			recordKds = append(recordKds, r.Kd.Value.InexactFloat64())
		}
	}

	report.Companies = aggregate.ByCompany(results)
	report.Outliers = aggregate.FlagOutliers(report.Companies)

	report.RecordStats = aggregate.Describe(recordKds)
	companyKds := make([]float64, len(report.Companies))
	for i, c := range report.Companies {
		companyKds[i] = c.WeightedKd.InexactFloat64()
	}
	report.CompanyStats = aggregate.Describe(companyKds)

	return report
}

// RenderReport renders the report to the requested outputs
func (p *Pipeline) RenderReport(report *model.BatchReport, jsonPath, csvPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if csvPath != "" {
		if err := p.renderer.RenderCSV(report, csvPath); err != nil {
			return fmt.Errorf("render CSV: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote CSV: %s\n", csvPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}
