package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rbastos/kdpipe/internal/model"
	"github.com/rbastos/kdpipe/internal/pipeline"
	"github.com/spf13/cobra"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <description>",
	Short: "Classify a single rate description and compute its Kd",
	Long: `Classify runs one free-text rate description through the full
classification and Kd calculation, printing the result as JSON. Useful for
spot-checking how a description is read before processing a whole file.

Example:
  kdpipe classify "CDI + 1,30% a.a."
  kdpipe classify "Pré-fixado 6,00% a.a."
  kdpipe classify "BRL - TJLP 7,97%"`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// single lookup, nothing to memoize
	cfg.Cache.Enabled = false

	p := pipeline.NewPipeline(cfg)
	result := p.ProcessRecord(model.FinancingRecord{Description: args[0]})

	out := struct {
		Classification model.ClassificationResult `json:"classification"`
		Kd             model.KdResult             `json:"kd"`
	}{result.Classification, result.Kd}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
