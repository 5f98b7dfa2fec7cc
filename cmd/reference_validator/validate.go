package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hrkey/reference-validator/internal/observability"
	"github.com/hrkey/reference-validator/internal/pipeline"
	"github.com/hrkey/reference-validator/internal/schemas"
	"github.com/hrkey/reference-validator/internal/types"
)

var (
	validateConfigPath  string
	validatePriorsPath  string
	validateSkipEmbed   bool
	validateSkipHistory bool
	validateVerbose     bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <submission.json>",
	Short: "Validate a single reference submission",
	Long:  `Validate one submission JSON file and print the structured validation record.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateConfigPath, "config", "", "Path to JSON config file")
	validateCmd.Flags().StringVar(&validatePriorsPath, "priors", "", "Path to JSON file with prior submissions for the subject")
	validateCmd.Flags().BoolVar(&validateSkipEmbed, "skip-embeddings", false, "Skip the embedding stage")
	validateCmd.Flags().BoolVar(&validateSkipHistory, "skip-consistency", false, "Skip the consistency check")
	validateCmd.Flags().BoolVar(&validateVerbose, "verbose", false, "Print a human-readable summary to stderr")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(validateConfigPath)
	if err != nil {
		return err
	}

	submission, err := readSubmission(args[0])
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		SkipEmbeddings:       validateSkipEmbed,
		SkipConsistencyCheck: validateSkipHistory,
	}
	if validatePriorsPath != "" {
		priors, err := readPriors(validatePriorsPath)
		if err != nil {
			return err
		}
		opts.PriorSubmissions = priors
	}

	validator, err := buildValidator(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out, err := validator.Validate(cmd.Context(), *submission, opts)
	if err != nil {
		return err
	}

	if validateVerbose || cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintValidationOutput(out)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out.ForPublicAPI(false))
}

// readSubmission loads and schema-checks one submission file.
func readSubmission(path string) (*types.RawSubmission, error) {
	if err := schemas.ValidateSubmissionFile(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read submission file %s: %w", path, err)
	}

	var submission types.RawSubmission
	if err := json.Unmarshal(data, &submission); err != nil {
		return nil, fmt.Errorf("failed to parse submission JSON: %w", err)
	}
	return &submission, nil
}

// readPriors loads a prior-submissions snapshot file.
func readPriors(path string) ([]types.PriorSubmission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read priors file %s: %w", path, err)
	}

	var priors []types.PriorSubmission
	if err := json.Unmarshal(data, &priors); err != nil {
		return nil, fmt.Errorf("failed to parse priors JSON: %w", err)
	}
	return priors, nil
}
