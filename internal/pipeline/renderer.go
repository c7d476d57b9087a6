package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rbastos/kdpipe/internal/model"
	"github.com/shopspring/decimal"
)

// Renderer writes batch reports as JSON, CSV and Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.BatchReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderCSV writes one row per financing record: the classification tuple,
// the Kd value and its flags. Absent values render as empty cells, never
// as zero.
func (r *Renderer) RenderCSV(report *model.BatchReport, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	header := []string{"line", "company", "description", "indexer", "spread", "period", "kd", "valid", "flags", "reason"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range report.Records {
		row := []string{
			fmt.Sprintf("%d", rec.Record.Line),
			rec.Record.Company,
			rec.Record.Description,
			string(rec.Classification.Indexer),
			decimalCell(rec.Classification.Spread),
			string(rec.Classification.Period),
			decimalCell(rec.Kd.Value),
			fmt.Sprintf("%t", rec.Kd.Valid),
			joinFlags(rec.Kd.Flags),
			string(rec.Kd.Reason),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes the human review report: batch summary, company
// ranking, outlier fence and the rows an analyst has to look at.
func (r *Renderer) RenderMarkdown(report *model.BatchReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Kd Report - %s\n\n", report.SourceFile)
	fmt.Fprintf(&b, "Analysis year: %d | Generated: %s\n\n",
		report.AnalysisYear, report.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "| Records | Classified | Unidentified | Valid Kd | Needs review |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n",
		report.Summary.Total, report.Summary.Classified, report.Summary.Unidentified,
		report.Summary.ValidKd, report.Summary.NeedsReview)

	if report.CompanyStats != nil {
		s := report.CompanyStats
		fmt.Fprintf(&b, "Weighted Kd across %d companies: mean %.2f%%, median %.2f%%, std %.2f, range [%.2f%%, %.2f%%].\n\n",
			s.Count, s.Mean, s.Median, s.StdDev, s.Min, s.Max)
	}

	if len(report.Companies) > 0 {
		fmt.Fprintf(&b, "## Companies\n\n")
		fmt.Fprintf(&b, "| Company | Weighted Kd | Simple mean | Financings | Total amount | Indexers | Outlier |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|---|---|\n")
		for _, c := range report.Companies {
			outlier := ""
			if c.Outlier {
				outlier = "⚠️"
			}
			fmt.Fprintf(&b, "| %s | %s%% | %s%% | %d | %s | %s | %s |\n",
				c.Company, c.WeightedKd.StringFixed(2), c.SimpleMeanKd.StringFixed(2),
				c.Financings, c.TotalAmount.StringFixed(2),
				strings.Join(c.Indexers, ", "), outlier)
		}
		b.WriteString("\n")
	}

	if report.Outliers != nil {
		o := report.Outliers
		fmt.Fprintf(&b, "## Outlier fence (1.5×IQR)\n\n")
		fmt.Fprintf(&b, "Q1 %.2f%%, Q3 %.2f%%, IQR %.2f → accepted band [%.2f%%, %.2f%%]; %d of %d companies flagged.\n\n",
			o.Q1, o.Q3, o.IQR, o.Lower, o.Upper, o.Flagged, o.Examined)
	}

	review := reviewRows(report)
	fmt.Fprintf(&b, "## Rows needing manual review\n\n")
	if len(review) == 0 {
		b.WriteString("None.\n\n")
	} else {
		fmt.Fprintf(&b, "| Line | Company | Description | Kd | Flags | Reason |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|---|\n")
		for _, rec := range review {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
				rec.Record.Line, rec.Record.Company, rec.Record.Description,
				percentCell(rec.Kd.Value), joinFlags(rec.Kd.Flags), rec.Kd.Reason)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by kdpipe. Flagged rows are surfaced, never auto-corrected.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints a one-screen overview to stdout
func (r *Renderer) RenderSummary(report *model.BatchReport) {
	fmt.Printf("\nKd pipeline - %s (year %d)\n", report.SourceFile, report.AnalysisYear)
	fmt.Printf("  Records:       %d\n", report.Summary.Total)
	fmt.Printf("  Classified:    %d\n", report.Summary.Classified)
	fmt.Printf("  Unidentified:  %d\n", report.Summary.Unidentified)
	fmt.Printf("  Valid Kd:      %d\n", report.Summary.ValidKd)
	fmt.Printf("  Needs review:  %d\n", report.Summary.NeedsReview)
	if report.CompanyStats != nil {
		fmt.Printf("  Companies:     %d (weighted Kd mean %.2f%%, median %.2f%%)\n",
			report.CompanyStats.Count, report.CompanyStats.Mean, report.CompanyStats.Median)
	}
	if report.Outliers != nil && report.Outliers.Flagged > 0 {
		fmt.Printf("  Outliers:      %d outside [%.2f%%, %.2f%%]\n",
			report.Outliers.Flagged, report.Outliers.Lower, report.Outliers.Upper)
	}
	fmt.Println()
}

// reviewRows collects records carrying the needs_review flag, plus rows
// whose Kd is absent entirely; both end up in front of an analyst
func reviewRows(report *model.BatchReport) []model.RecordResult {
	var rows []model.RecordResult
	for _, rec := range report.Records {
		if rec.Kd.HasFlag(model.FlagNeedsReview) || rec.Kd.Reason != "" {
			rows = append(rows, rec)
		}
	}
	return rows
}

func decimalCell(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func percentCell(d *decimal.Decimal) string {
	if d == nil {
		return "n/a"
	}
	return d.StringFixed(2) + "%"
}

func joinFlags(flags []model.Flag) string {
	parts := make([]string, len(flags))
	for i, f := range flags {
		parts[i] = string(f)
	}
	return strings.Join(parts, ";")
}
