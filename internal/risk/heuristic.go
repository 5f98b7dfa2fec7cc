package risk

import (
	"math"
	"regexp"
	"strings"
)

// Heuristic is the default scorer. The production scoring model upstream of
// this layer is not public, so this is a documented placeholder: a
// deterministic, bounded combination of cheap signals. The individual
// weights are exported constants so operators can read exactly what moves
// the number.
type Heuristic struct{}

// NewHeuristic returns the default scorer.
func NewHeuristic() *Heuristic { return &Heuristic{} }

// Signal weights. Each contributes at most its weight; the sum is clamped
// to [0,100].
const (
	WeightPromoText        = 25.0 // promotional or link-bait language
	WeightShortText        = 10.0 // effortless one-liner narratives
	WeightShoutyText       = 10.0 // mostly upper-case narrative
	WeightUniformRatings   = 15.0 // every attribute rated identically
	WeightExtremeRatings   = 20.0 // every attribute at the scale edge
	WeightLowConsistency   = 30.0 // scaled by (1 - consistency)
	WeightDisposableAuthor = 25.0 // throwaway email domain
	WeightMissingAuthor    = 10.0 // no contact supplied at all
)

const shortTextLength = 50

var promoPattern = regexp.MustCompile(`(?i)(https?://|www\.|buy now|click here|limited offer|dm me|follow me|promo code)`)

// disposableDomains are throwaway email providers; a reference vouched for
// from one is worth very little.
var disposableDomains = map[string]bool{
	"mailinator.com":    true,
	"guerrillamail.com": true,
	"10minutemail.com":  true,
	"tempmail.com":      true,
	"trashmail.com":     true,
	"yopmail.com":       true,
	"sharklasers.com":   true,
}

// Score combines the signals into a [0,100] risk number.
func (h *Heuristic) Score(signals Signals) float64 {
	score := 0.0

	score += textRisk(signals.Text)
	score += ratingRisk(signals.Ratings)
	score += consistencyRisk(signals.ConsistencyScore)
	score += authorRisk(signals.AuthorContact)

	return math.Max(0, math.Min(100, score))
}

func textRisk(text string) float64 {
	risk := 0.0

	if promoPattern.MatchString(text) {
		risk += WeightPromoText
	}
	if len(text) > 0 && len(text) < shortTextLength {
		risk += WeightShortText
	}
	if isShouty(text) {
		risk += WeightShoutyText
	}

	return risk
}

// isShouty reports whether more than half of the letters are upper-case.
func isShouty(text string) bool {
	letters, uppers := 0, 0
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
			uppers++
		case r >= 'a' && r <= 'z':
			letters++
		}
	}
	return letters >= 20 && float64(uppers) > 0.5*float64(letters)
}

func ratingRisk(ratings map[string]float64) float64 {
	if len(ratings) < 3 {
		return 0
	}

	risk := 0.0

	uniform := true
	extreme := true
	var first float64
	i := 0
	for _, v := range ratings {
		if i == 0 {
			first = v
		} else if v != first {
			uniform = false
		}
		if v > 0.5 && v < 4.5 {
			extreme = false
		}
		i++
	}

	if uniform {
		risk += WeightUniformRatings
	}
	if extreme {
		risk += WeightExtremeRatings
	}

	return risk
}

func consistencyRisk(consistency float64) float64 {
	consistency = math.Max(0, math.Min(1, consistency))
	return (1 - consistency) * WeightLowConsistency
}

func authorRisk(contact string) float64 {
	if contact == "" {
		return WeightMissingAuthor
	}

	at := strings.LastIndex(contact, "@")
	if at < 0 {
		return 0
	}
	domain := strings.ToLower(contact[at+1:])
	if disposableDomains[domain] {
		return WeightDisposableAuthor
	}
	return 0
}
