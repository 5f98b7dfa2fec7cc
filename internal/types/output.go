package types

import (
	"time"

	"github.com/google/uuid"
)

// ValidationStatus is the final categorical decision for a submission.
type ValidationStatus string

const (
	StatusApproved             ValidationStatus = "APPROVED"
	StatusApprovedWithWarnings ValidationStatus = "APPROVED_WITH_WARNINGS"
	StatusRejectedHighFraud    ValidationStatus = "REJECTED_HIGH_FRAUD_RISK"
	StatusRejectedCritical     ValidationStatus = "REJECTED_CRITICAL_ISSUES"
	StatusRejectedInconsistent ValidationStatus = "REJECTED_INCONSISTENT"
)

// Severity levels for flags.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// FlagType identifies the anomaly a flag describes.
type FlagType string

const (
	FlagKPIDeviation    FlagType = "KPI_DEVIATION"
	FlagLowConsistency  FlagType = "LOW_CONSISTENCY"
	FlagContradiction   FlagType = "POTENTIAL_CONTRADICTION"
	FlagSemanticSkipped FlagType = "SEMANTIC_CHECK_SKIPPED"
	FlagQualityIssue    FlagType = "QUALITY_ISSUE"
)

// Flag is an advisory annotation attached to the validation output. Flags
// never alter upstream scores; they record what was observed.
type Flag struct {
	Type     FlagType       `json:"type"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Context  map[string]any `json:"context,omitempty"`
}

// Dimension is the structured record for one valid attribute rating.
type Dimension struct {
	Rating     float64 `json:"rating"`
	Confidence float64 `json:"confidence"`
	Normalized float64 `json:"normalized"`
	Feedback   string  `json:"feedback,omitempty"`
}

// Metadata carries bookkeeping about one validation run.
type Metadata struct {
	ValidatedAt      time.Time `json:"validated_at"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	TextLength       int       `json:"text_length"`
	DimensionCount   int       `json:"dimension_count"`
	HasEmbedding     bool      `json:"has_embedding"`
}

// StructuredValidationOutput is the pipeline's sole externally visible
// artifact. It is built once per validation and never mutated afterwards;
// the validation layer does not persist it.
type StructuredValidationOutput struct {
	ID               uuid.UUID            `json:"id"`
	SubjectID        string               `json:"subject_id"`
	Narrative        string               `json:"narrative"`
	Dimensions       map[string]Dimension `json:"dimensions"`
	ConsistencyScore float64              `json:"consistency_score"`
	RiskScore        float64              `json:"risk_score"`
	Confidence       float64              `json:"confidence"`
	Status           ValidationStatus     `json:"status"`
	Flags            []Flag               `json:"flags"`
	Embedding        []float64            `json:"embedding,omitempty"`
	Metadata         Metadata             `json:"metadata"`
}

// Passed reports whether the submission cleared validation.
func (o *StructuredValidationOutput) Passed() bool {
	return o.Status == StatusApproved || o.Status == StatusApprovedWithWarnings
}

// ScoringEngineRecord is the reduced projection consumed by the downstream
// scoring/pricing engine.
type ScoringEngineRecord struct {
	AttributeRatings map[string]float64 `json:"attribute_ratings"`
	Narrative        string             `json:"narrative"`
	ConfidenceScore  float64            `json:"confidence_score"`
	Passed           bool               `json:"passed"`
}

// ForScoringEngine strips the output down to what the scoring engine needs.
func (o *StructuredValidationOutput) ForScoringEngine() ScoringEngineRecord {
	ratings := make(map[string]float64, len(o.Dimensions))
	for name, dim := range o.Dimensions {
		ratings[name] = dim.Rating
	}
	return ScoringEngineRecord{
		AttributeRatings: ratings,
		Narrative:        o.Narrative,
		ConfidenceScore:  o.Confidence,
		Passed:           o.Passed(),
	}
}

// PublicFlag is the reduced flag shape exposed through public surfaces.
type PublicFlag struct {
	Type     FlagType `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// PublicRecord is the public-safe projection of a validation output.
type PublicRecord struct {
	ID               uuid.UUID            `json:"id"`
	SubjectID        string               `json:"subject_id"`
	Narrative        string               `json:"narrative"`
	Dimensions       map[string]Dimension `json:"dimensions"`
	ConsistencyScore float64              `json:"consistency_score"`
	RiskScore        float64              `json:"risk_score"`
	Confidence       float64              `json:"confidence"`
	Status           ValidationStatus     `json:"status"`
	Flags            []PublicFlag         `json:"flags"`
	Embedding        []float64            `json:"embedding,omitempty"`
	Metadata         Metadata             `json:"metadata"`
}

// ForPublicAPI returns a public-safe view. The raw embedding vector is
// omitted unless explicitly requested.
func (o *StructuredValidationOutput) ForPublicAPI(includeEmbedding bool) PublicRecord {
	flags := make([]PublicFlag, 0, len(o.Flags))
	for _, f := range o.Flags {
		flags = append(flags, PublicFlag{Type: f.Type, Severity: f.Severity, Message: f.Message})
	}

	rec := PublicRecord{
		ID:               o.ID,
		SubjectID:        o.SubjectID,
		Narrative:        o.Narrative,
		Dimensions:       o.Dimensions,
		ConsistencyScore: o.ConsistencyScore,
		RiskScore:        o.RiskScore,
		Confidence:       o.Confidence,
		Status:           o.Status,
		Flags:            flags,
		Metadata:         o.Metadata,
	}
	if includeEmbedding {
		rec.Embedding = o.Embedding
	}
	return rec
}
