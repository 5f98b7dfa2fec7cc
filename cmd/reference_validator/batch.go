package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hrkey/reference-validator/internal/observability"
	"github.com/hrkey/reference-validator/internal/pipeline"
	"github.com/hrkey/reference-validator/internal/types"
)

var (
	batchConfigPath  string
	batchSkipEmbed   bool
	batchParallelism int
	batchVerbose     bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <submissions.json>",
	Short: "Validate a batch of reference submissions",
	Long: `Validate a JSON array of submissions. Each item is validated
independently; one malformed submission never aborts the rest.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "Path to JSON config file")
	batchCmd.Flags().BoolVar(&batchSkipEmbed, "skip-embeddings", false, "Skip the embedding stage")
	batchCmd.Flags().IntVar(&batchParallelism, "parallel", 1, "Number of submissions to validate concurrently")
	batchCmd.Flags().BoolVar(&batchVerbose, "verbose", false, "Print a summary box to stderr")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(batchConfigPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read batch file %s: %w", args[0], err)
	}

	var items []types.RawSubmission
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to parse batch JSON: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("batch file %s contains no submissions", args[0])
	}

	validator, err := buildValidator(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	opts := pipeline.Options{SkipEmbeddings: batchSkipEmbed}
	var result pipeline.BatchResult
	if batchParallelism > 1 {
		result = validator.ValidateBatchParallel(cmd.Context(), items, opts, batchParallelism)
	} else {
		result = validator.ValidateBatch(cmd.Context(), items, opts)
	}

	if batchVerbose || cfg.Verbose {
		succeeded := len(result.Results) - len(result.Errors)
		observability.NewPrinter(os.Stderr).PrintBatchSummary(len(items), succeeded, len(result.Errors))
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
