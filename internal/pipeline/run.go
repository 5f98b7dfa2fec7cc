// Package pipeline provides the high-level orchestration of the reference
// validation process: standardize, embed, check consistency, score risk,
// assemble structured output.
package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/hrkey/reference-validator/internal/config"
	"github.com/hrkey/reference-validator/internal/consistency"
	"github.com/hrkey/reference-validator/internal/embedding"
	"github.com/hrkey/reference-validator/internal/output"
	"github.com/hrkey/reference-validator/internal/risk"
	"github.com/hrkey/reference-validator/internal/standardize"
	"github.com/hrkey/reference-validator/internal/types"
)

// Options holds per-call configuration for a validation run.
type Options struct {
	SkipEmbeddings       bool
	SkipConsistencyCheck bool
	PriorSubmissions     []types.PriorSubmission
}

// Validator sequences the five validation stages. It is stateless per call:
// concurrent Validate calls need no coordination.
type Validator struct {
	cfg      config.Thresholds
	embedder *embedding.Generator
	checker  *consistency.Checker
	scorer   risk.Scorer
	output   *output.Generator
}

// New creates a Validator. A nil scorer falls back to the default heuristic;
// a nil embedder runs offline-deterministic.
func New(cfg config.Thresholds, embedder *embedding.Generator, scorer risk.Scorer) *Validator {
	cfg = cfg.MergeWithDefaults(config.DefaultThresholds())
	if embedder == nil {
		embedder = embedding.NewGenerator(nil)
	}
	if scorer == nil {
		scorer = risk.NewHeuristic()
	}
	return &Validator{
		cfg:      cfg,
		embedder: embedder,
		checker:  consistency.NewChecker(cfg),
		scorer:   scorer,
		output:   output.NewGenerator(cfg),
	}
}

// Validate runs the full pipeline for one submission. The only fatal input
// condition is a standardized narrative under the minimum length; an
// unavailable embedding provider degrades the output instead of failing it.
func (v *Validator) Validate(ctx context.Context, raw types.RawSubmission, opts Options) (*types.StructuredValidationOutput, error) {
	start := time.Now()

	narrative := standardize.Standardize(raw.Narrative)
	if len(narrative) < v.cfg.MinNarrativeLength {
		return nil, &TextTooShortError{Stage: "standardize", Length: len(narrative), Min: v.cfg.MinNarrativeLength}
	}

	var flags []types.Flag
	if report := standardize.ValidateQuality(narrative); !report.Valid {
		for _, issue := range report.Issues {
			flags = append(flags, types.Flag{
				Type:     types.FlagQualityIssue,
				Severity: types.SeverityInfo,
				Message:  issue,
			})
		}
	}

	ratings := raw.ValidRatings()

	var vector []float64
	if !opts.SkipEmbeddings {
		if res := v.embedder.Attempt(ctx, narrative); res.Available() {
			vector = res.Vector
		} else if res.Err != nil {
			log.Printf("[WARN] embedding unavailable for subject %s: %v", raw.SubjectID, res.Err)
		}
	}

	consistencyResult := consistency.Result{Score: 1.0}
	if !opts.SkipConsistencyCheck && len(opts.PriorSubmissions) > 0 {
		consistencyResult = v.checker.Check(ratings, vector, opts.PriorSubmissions)
	}
	flags = append(flags, consistencyResult.Flags...)
	flags = append(flags, consistency.DetectContradictions(narrative)...)

	riskScore := v.scorer.Score(risk.Signals{
		Text:             narrative,
		Ratings:          ratings,
		ConsistencyScore: consistencyResult.Score,
		AuthorContact:    raw.AuthorContact,
	})

	out := v.output.Generate(output.Input{
		SubjectID:        raw.SubjectID,
		Narrative:        narrative,
		Ratings:          ratings,
		DetailedFeedback: raw.DetailedFeedback,
		ConsistencyScore: consistencyResult.Score,
		RiskScore:        riskScore,
		Embedding:        vector,
		Flags:            flags,
	})
	out.Metadata.ProcessingTimeMs = time.Since(start).Milliseconds()

	return out, nil
}
