package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rbastos/kdpipe/internal/model"
	"github.com/rbastos/kdpipe/internal/pipeline"
	"github.com/rbastos/kdpipe/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outJSON     string
	outCSV      string
	outMD       string
	concurrency int
	timeout     time.Duration
	noCache     bool
	noFooter    bool
	companyCol  string
	rateCol     string
	amountCol   string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <file.csv>",
	Short: "Process a financing CSV and compute Kd per record and per company",
	Long: `Process reads financing records from a CSV export and, for each row:
- classifies the free-text rate description into a reference indexer
- extracts the spread and the quotation period
- computes the annualized Kd against the configured base-rate table
- applies the acceptance band and review flags

It then aggregates the weighted Kd per company, applies the 1.5xIQR outlier
fence, and writes JSON, CSV and Markdown reports.

Example:
  kdpipe process financings.csv
  kdpipe process financings.csv --json kd.json --csv kd_records.csv --md review.md
  kdpipe process financings.csv --concurrency 8 --no-cache`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Output flags
	processCmd.Flags().StringVar(&outJSON, "json", "kd_report.json", "output JSON path")
	processCmd.Flags().StringVar(&outCSV, "csv", "kd_records.csv", "output per-record CSV path")
	processCmd.Flags().StringVar(&outMD, "md", "", "output Markdown review report path (optional)")
	processCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Processing flags
	processCmd.Flags().IntVar(&concurrency, "concurrency", 0, "worker count (default: from config)")
	processCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall processing timeout")
	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable classification memoization")

	// Input column overrides
	processCmd.Flags().StringVar(&companyCol, "company-column", "", "CSV column holding the company name")
	processCmd.Flags().StringVar(&rateCol, "rate-column", "", "CSV column holding the rate description")
	processCmd.Flags().StringVar(&amountCol, "amount-column", "", "CSV column holding the consolidated amount")
}

func runProcess(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if companyCol != "" {
		cfg.Input.CompanyColumn = companyCol
	}
	if rateCol != "" {
		cfg.Input.RateColumn = rateCol
	}
	if amountCol != "" {
		cfg.Input.AmountColumn = amountCol
	}
	cfg.Output.Verbose = verbose

	loader := pipeline.NewLoader(cfg.Input)
	records, err := loader.LoadCSV(file)
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d records from %s\n", len(records), file)
		fmt.Fprintf(os.Stderr, "⚙️  Processing with %d workers...\n", cfg.Concurrency.Workers)
	}

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results := processor.ProcessRecords(ctx, records)

	report := p.BuildReport(file, results)

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Classified %d of %d records\n", report.Summary.Classified, report.Summary.Total)
		fmt.Fprintf(os.Stderr, "✓ Valid Kd for %d records, %d flagged for review\n",
			report.Summary.ValidKd, report.Summary.NeedsReview)
	}

	if err := p.RenderReport(report, outJSON, outCSV, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// loadConfig merges configuration sources: defaults, then config file and
// KDPIPE_* env vars via viper, then flag overrides applied by the caller.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
