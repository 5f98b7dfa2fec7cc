// Package risk converts submission signals into a bounded fraud-risk score.
package risk

// Signals are the inputs the scorer may consider.
type Signals struct {
	Text             string
	Ratings          map[string]float64
	ConsistencyScore float64
	AuthorContact    string
}

// Scorer converts signals into a risk number in [0,100]; 0 means no risk
// signal, 100 maximal. The pipeline depends only on this contract, so a
// deployment can swap in its own model without touching anything else.
type Scorer interface {
	Score(signals Signals) float64
}
