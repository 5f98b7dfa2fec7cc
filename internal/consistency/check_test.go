package consistency

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrkey/reference-validator/internal/config"
	"github.com/hrkey/reference-validator/internal/types"
)

func newChecker() *Checker {
	return NewChecker(config.DefaultThresholds())
}

func TestCheck_NoHistoryDefaultsToNeutral(t *testing.T) {
	c := newChecker()

	result := c.Check(map[string]float64{"teamwork": 5, "leadership": 4}, nil, nil)

	assert.Equal(t, 1.0, result.Score)
	assert.Empty(t, result.Flags)
}

func TestCheck_AgreeingHistoryScoresHigh(t *testing.T) {
	c := newChecker()

	prior := []types.PriorSubmission{
		{AttributeRatings: map[string]float64{"teamwork": 4.5}},
		{AttributeRatings: map[string]float64{"teamwork": 4.0}},
	}

	result := c.Check(map[string]float64{"teamwork": 4.5}, nil, prior)

	assert.Greater(t, result.Score, 0.8)
	for _, f := range result.Flags {
		assert.NotEqual(t, types.FlagKPIDeviation, f.Type)
	}
}

func TestCheck_DeviationEmitsKPIFlag(t *testing.T) {
	c := newChecker()

	// Prior teamwork [5, 4], current 1: mean with current is 10/3, but the
	// deviation flag compares against the full-sample mean; either way the
	// gap exceeds the 2.0 cap.
	prior := []types.PriorSubmission{
		{AttributeRatings: map[string]float64{"teamwork": 5}},
		{AttributeRatings: map[string]float64{"teamwork": 4}},
	}

	result := c.Check(map[string]float64{"teamwork": 1}, nil, prior)

	var found *types.Flag
	for i := range result.Flags {
		if result.Flags[i].Type == types.FlagKPIDeviation {
			found = &result.Flags[i]
		}
	}
	require.NotNil(t, found, "expected a KPI_DEVIATION flag")
	assert.Equal(t, types.SeverityWarning, found.Severity)
	assert.Equal(t, "teamwork", found.Context["attribute"])
	assert.Equal(t, 1.0, found.Context["current"])
}

func TestCheck_SingleObservationAttributeIsNeutral(t *testing.T) {
	c := newChecker()

	// "initiative" appears only in history, once; its sub-score is 1.0.
	prior := []types.PriorSubmission{
		{AttributeRatings: map[string]float64{"initiative": 3}},
	}

	result := c.Check(nil, nil, prior)

	// kpi = 1.0, semantic skipped -> neutral, combined 1.0.
	assert.Equal(t, 1.0, result.Score)
}

func TestCheck_SemanticSkippedWithoutEmbeddings(t *testing.T) {
	c := newChecker()

	prior := []types.PriorSubmission{
		{AttributeRatings: map[string]float64{"teamwork": 4}},
		{AttributeRatings: map[string]float64{"teamwork": 4}},
	}

	result := c.Check(map[string]float64{"teamwork": 4}, nil, prior)

	var skipped bool
	for _, f := range result.Flags {
		if f.Type == types.FlagSemanticSkipped {
			skipped = true
		}
	}
	assert.True(t, skipped, "expected SEMANTIC_CHECK_SKIPPED flag")
}

func TestCheck_SemanticSimilarityFoldsIntoScore(t *testing.T) {
	c := newChecker()

	vec := []float64{1, 0, 0}
	opposite := []float64{-1, 0, 0}

	prior := []types.PriorSubmission{
		{AttributeRatings: map[string]float64{"teamwork": 4}, Embedding: vec},
		{AttributeRatings: map[string]float64{"teamwork": 4}, Embedding: vec},
	}

	aligned := c.Check(map[string]float64{"teamwork": 4}, vec, prior)
	divergent := c.Check(map[string]float64{"teamwork": 4}, opposite, prior)

	assert.Greater(t, aligned.Score, divergent.Score)
	// Identical ratings and identical embeddings: full marks.
	assert.InDelta(t, 1.0, aligned.Score, 1e-9)
	// Opposite embeddings clamp the semantic sub-score at 0.
	assert.InDelta(t, 0.6, divergent.Score, 1e-9)
}

func TestCheck_MalformedPriorEmbeddingIsIgnored(t *testing.T) {
	c := newChecker()

	vec := []float64{1, 0, 0}

	prior := []types.PriorSubmission{
		{AttributeRatings: map[string]float64{"teamwork": 4}, Embedding: vec},
		// Wrong dimensionality: skipped, must not poison the average.
		{AttributeRatings: map[string]float64{"teamwork": 4}, Embedding: []float64{1, 0}},
	}

	result := c.Check(map[string]float64{"teamwork": 4}, vec, prior)
	assert.InDelta(t, 1.0, result.Score, 1e-9)
}

func TestCheck_LowConsistencyFlag(t *testing.T) {
	c := newChecker()

	// Wildly disagreeing ratings push the KPI sub-score to 0 and the
	// combined score under the 0.6 threshold.
	prior := []types.PriorSubmission{
		{AttributeRatings: map[string]float64{"teamwork": 5}, Embedding: []float64{1, 0}},
		{AttributeRatings: map[string]float64{"teamwork": 0}, Embedding: []float64{1, 0}},
	}

	result := c.Check(map[string]float64{"teamwork": 5}, []float64{-1, 0}, prior)

	assert.Less(t, result.Score, 0.6)
	var flagged bool
	for _, f := range result.Flags {
		if f.Type == types.FlagLowConsistency {
			flagged = true
			assert.Equal(t, types.SeverityWarning, f.Severity)
		}
	}
	assert.True(t, flagged, "expected LOW_CONSISTENCY flag")
}

func TestCheck_CustomThresholds(t *testing.T) {
	loose := config.DefaultThresholds()
	loose.MaxToleratedStdDev = 10 // tolerate near-arbitrary spread
	c := NewChecker(loose)

	prior := []types.PriorSubmission{
		{AttributeRatings: map[string]float64{"teamwork": 5}},
		{AttributeRatings: map[string]float64{"teamwork": 0}},
	}

	result := c.Check(map[string]float64{"teamwork": 5}, nil, prior)

	assert.Greater(t, result.Score, 0.7)
}

func TestMeanAndStdDev_Population(t *testing.T) {
	mean, stdDev := meanAndStdDev([]float64{5, 4, 1})

	assert.InDelta(t, 10.0/3.0, mean, 1e-9)
	// Population variance of {5,4,1} around 10/3.
	expected := math.Sqrt(((5-10.0/3)*(5-10.0/3) + (4-10.0/3)*(4-10.0/3) + (1-10.0/3)*(1-10.0/3)) / 3)
	assert.InDelta(t, expected, stdDev, 1e-9)
}

func TestDetectContradictions_PositiveNearNegative(t *testing.T) {
	flags := DetectContradictions("An excellent engineer, but often unreliable under pressure.")

	require.NotEmpty(t, flags)
	assert.Equal(t, types.FlagContradiction, flags[0].Type)
	assert.Equal(t, types.SeverityInfo, flags[0].Severity)
}

func TestDetectContradictions_FarApartTermsIgnored(t *testing.T) {
	filler := " The project moved along at a steady and unremarkable pace for many months on end."
	narrative := "An excellent engineer." + filler + filler + " Deadlines were poor."

	assert.Empty(t, DetectContradictions(narrative))
}

func TestDetectContradictions_NoSignal(t *testing.T) {
	assert.Empty(t, DetectContradictions("A dependable colleague who delivered weekly."))
}
