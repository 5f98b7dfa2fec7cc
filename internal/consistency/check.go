// Package consistency compares a submission against a subject's prior
// accepted submissions and scores how well they agree.
package consistency

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/hrkey/reference-validator/internal/config"
	"github.com/hrkey/reference-validator/internal/embedding"
	"github.com/hrkey/reference-validator/internal/types"
)

// Result is the outcome of a consistency check: a score in [0,1] plus any
// advisory flags raised along the way.
type Result struct {
	Score float64      `json:"score"`
	Flags []types.Flag `json:"flags,omitempty"`
}

// Checker scores submissions against history using the configured thresholds.
type Checker struct {
	cfg config.Thresholds
}

// NewChecker creates a Checker with the given thresholds.
func NewChecker(cfg config.Thresholds) *Checker {
	return &Checker{cfg: cfg.MergeWithDefaults(config.DefaultThresholds())}
}

// Check scores the current ratings and embedding against prior submissions.
// With no history there is no evidence of inconsistency, so the score is a
// documented neutral 1.0 with no flags.
func (c *Checker) Check(ratings map[string]float64, current []float64, prior []types.PriorSubmission) Result {
	if len(prior) == 0 {
		return Result{Score: 1.0}
	}

	var flags []types.Flag

	kpiScore, kpiFlags := c.kpiConsistency(ratings, prior)
	flags = append(flags, kpiFlags...)

	semanticScore, skipped := c.semanticConsistency(current, prior)
	if skipped {
		flags = append(flags, types.Flag{
			Type:     types.FlagSemanticSkipped,
			Severity: types.SeverityInfo,
			Message:  "semantic comparison skipped: no embeddings available",
		})
	}

	score := c.cfg.KPIWeight*kpiScore + c.cfg.SemanticWeight*semanticScore

	if score < c.cfg.LowConsistencyFlagAt {
		flags = append(flags, types.Flag{
			Type:     types.FlagLowConsistency,
			Severity: types.SeverityWarning,
			Message:  fmt.Sprintf("combined consistency score %.2f is below %.2f", score, c.cfg.LowConsistencyFlagAt),
			Context:  map[string]any{"score": score},
		})
	}

	return Result{Score: score, Flags: flags}
}

// kpiConsistency scores every attribute seen in the current ratings or in
// any prior submission, then averages the per-attribute sub-scores.
func (c *Checker) kpiConsistency(ratings map[string]float64, prior []types.PriorSubmission) (float64, []types.Flag) {
	attrs := attributeUnion(ratings, prior)
	if len(attrs) == 0 {
		return 1.0, nil
	}

	var flags []types.Flag
	total := 0.0

	for _, attr := range attrs {
		sample := make([]float64, 0, len(prior)+1)
		current, hasCurrent := ratings[attr]
		if hasCurrent {
			sample = append(sample, current)
		}
		for _, p := range prior {
			if v, ok := p.AttributeRatings[attr]; ok {
				sample = append(sample, v)
			}
		}

		// A single observation carries no disagreement signal.
		if len(sample) < 2 {
			total += 1.0
			continue
		}

		mean, stdDev := meanAndStdDev(sample)
		total += math.Max(0, 1-stdDev/c.cfg.MaxToleratedStdDev)

		if hasCurrent {
			if deviation := math.Abs(current - mean); deviation > c.cfg.DeviationCap {
				flags = append(flags, types.Flag{
					Type:     types.FlagKPIDeviation,
					Severity: types.SeverityWarning,
					Message:  fmt.Sprintf("%s rating %.1f deviates %.1f from the historical mean %.1f", attr, current, deviation, mean),
					Context: map[string]any{
						"attribute": attr,
						"current":   current,
						"mean":      mean,
						"deviation": deviation,
					},
				})
			}
		}
	}

	return total / float64(len(attrs)), flags
}

// semanticConsistency averages the cosine similarity between the current
// embedding and each prior embedding, clamped to [0,1]. When no comparison
// is possible the sub-score is a neutral 1.0 and skipped is reported.
func (c *Checker) semanticConsistency(current []float64, prior []types.PriorSubmission) (score float64, skipped bool) {
	if len(current) == 0 {
		return 1.0, true
	}

	total := 0.0
	count := 0
	for _, p := range prior {
		if len(p.Embedding) == 0 {
			continue
		}
		sim, err := embedding.CosineSimilarity(current, p.Embedding)
		if err != nil {
			// A mismatched history vector is bad stored data, not a business
			// condition. Skip it, but loudly.
			log.Printf("[WARN] skipping malformed prior embedding: %v", err)
			continue
		}
		total += sim
		count++
	}

	if count == 0 {
		return 1.0, true
	}

	return math.Max(0, math.Min(1, total/float64(count))), false
}

// attributeUnion collects every attribute name present in the current
// ratings or any prior submission, sorted for deterministic iteration.
func attributeUnion(ratings map[string]float64, prior []types.PriorSubmission) []string {
	seen := make(map[string]bool)
	for name := range ratings {
		seen[name] = true
	}
	for _, p := range prior {
		for name := range p.AttributeRatings {
			seen[name] = true
		}
	}

	attrs := make([]string, 0, len(seen))
	for name := range seen {
		attrs = append(attrs, name)
	}
	sort.Strings(attrs)
	return attrs
}

// meanAndStdDev computes the mean and population standard deviation.
func meanAndStdDev(sample []float64) (mean, stdDev float64) {
	for _, v := range sample {
		mean += v
	}
	mean /= float64(len(sample))

	variance := 0.0
	for _, v := range sample {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(sample))

	return mean, math.Sqrt(variance)
}
