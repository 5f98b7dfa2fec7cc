// Package output assembles the final structured, confidence-scored,
// status-classified validation record.
package output

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/hrkey/reference-validator/internal/config"
	"github.com/hrkey/reference-validator/internal/types"
)

// Per-rating confidence is U-shaped: raters who commit to an extreme are
// trusted more than raters hovering around the middle of the scale.
const (
	confidenceExtreme  = 0.95 // rating >= 4.5 or <= 1.5
	confidenceStrong   = 0.85 // rating >= 4.0 or <= 2.0
	confidenceModerate = 0.75 // rating >= 3.5 or <= 2.5
	confidenceMiddling = 0.60 // everything else
)

// Overall-confidence multipliers for submission richness.
const (
	maxRiskPenalty      = 0.5 // risk can cut confidence by at most half
	richAttributeBonus  = 1.10
	richAttributeFloor  = 5
	sparseAttributeCut  = 0.90
	sparseAttributeCap  = 2
	longNarrativeBonus  = 1.05
	longNarrativeFloor  = 500
	shortNarrativeCut   = 0.90
	shortNarrativeFloor = 100
)

// Input carries everything the generator needs from the earlier stages.
type Input struct {
	SubjectID        string
	Narrative        string // standardized
	Ratings          map[string]float64
	DetailedFeedback map[string]string
	ConsistencyScore float64
	RiskScore        float64
	Embedding        []float64
	Flags            []types.Flag
}

// Generator builds validation outputs using the configured thresholds.
type Generator struct {
	cfg config.Thresholds
}

// NewGenerator creates a Generator with the given thresholds.
func NewGenerator(cfg config.Thresholds) *Generator {
	return &Generator{cfg: cfg.MergeWithDefaults(config.DefaultThresholds())}
}

// Generate assembles the final record. Ratings outside [0,5] are silently
// dropped from the dimension map; they never fail the pipeline.
func (g *Generator) Generate(in Input) *types.StructuredValidationOutput {
	dimensions := g.buildDimensions(in.Ratings, in.DetailedFeedback)

	out := &types.StructuredValidationOutput{
		ID:               uuid.New(),
		SubjectID:        in.SubjectID,
		Narrative:        in.Narrative,
		Dimensions:       dimensions,
		ConsistencyScore: in.ConsistencyScore,
		RiskScore:        in.RiskScore,
		Confidence:       g.overallConfidence(in, len(dimensions)),
		Status:           g.classify(in.RiskScore, in.ConsistencyScore, in.Flags),
		Flags:            in.Flags,
		Embedding:        in.Embedding,
		Metadata: types.Metadata{
			ValidatedAt:    time.Now().UTC(),
			TextLength:     len(in.Narrative),
			DimensionCount: len(dimensions),
			HasEmbedding:   len(in.Embedding) > 0,
		},
	}
	return out
}

// buildDimensions converts valid ratings into dimension records.
func (g *Generator) buildDimensions(ratings map[string]float64, feedback map[string]string) map[string]types.Dimension {
	dimensions := make(map[string]types.Dimension, len(ratings))
	for name, rating := range ratings {
		if rating < types.RatingMin || rating > types.RatingMax {
			continue
		}
		dimensions[name] = types.Dimension{
			Rating:     rating,
			Confidence: ratingConfidence(rating),
			Normalized: rating / types.RatingMax,
			Feedback:   feedback[name],
		}
	}
	return dimensions
}

// ratingConfidence maps a rating onto the U-shaped confidence bands.
func ratingConfidence(rating float64) float64 {
	switch {
	case rating >= 4.5 || rating <= 1.5:
		return confidenceExtreme
	case rating >= 4.0 || rating <= 2.0:
		return confidenceStrong
	case rating >= 3.5 || rating <= 2.5:
		return confidenceModerate
	default:
		return confidenceMiddling
	}
}

// overallConfidence blends consistency, risk and submission richness.
func (g *Generator) overallConfidence(in Input, dimensionCount int) float64 {
	confidence := in.ConsistencyScore

	confidence *= 1 - (in.RiskScore/100)*maxRiskPenalty

	if dimensionCount >= richAttributeFloor {
		confidence *= richAttributeBonus
	} else if dimensionCount <= sparseAttributeCap {
		confidence *= sparseAttributeCut
	}

	if len(in.Narrative) > longNarrativeFloor {
		confidence *= longNarrativeBonus
	} else if len(in.Narrative) < shortNarrativeFloor {
		confidence *= shortNarrativeCut
	}

	return math.Max(0, math.Min(1, confidence))
}

// classify picks a validation status. Precedence matters: the first rule
// that matches wins, so a high fraud score dominates everything else.
func (g *Generator) classify(riskScore, consistencyScore float64, flags []types.Flag) types.ValidationStatus {
	warnings := 0
	criticals := 0
	for _, f := range flags {
		switch f.Severity {
		case types.SeverityWarning:
			warnings++
		case types.SeverityCritical:
			criticals++
		}
	}

	switch {
	case riskScore > g.cfg.HighRiskRejectAbove:
		return types.StatusRejectedHighFraud
	case criticals > 0:
		return types.StatusRejectedCritical
	case consistencyScore < g.cfg.InconsistentRejectBelow:
		return types.StatusRejectedInconsistent
	case riskScore > g.cfg.ElevatedRiskWarnAbove || warnings > g.cfg.MaxWarningFlags:
		return types.StatusApprovedWithWarnings
	case consistencyScore < g.cfg.InconsistentWarnBelow:
		return types.StatusApprovedWithWarnings
	default:
		return types.StatusApproved
	}
}
