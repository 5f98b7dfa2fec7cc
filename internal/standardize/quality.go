package standardize

import (
	"fmt"
	"regexp"
	"strings"
)

// Quality gate bounds. Narratives outside these bounds are flagged, never
// rejected with an error; the caller decides what to do with the issues.
const (
	minLength        = 20
	maxLength        = 10000
	minWords         = 5
	repeatTokenLen   = 3  // tokens longer than this count toward repetition
	repeatLimit      = 10 // occurrences above this are suspicious
	repeatWordWindow = 50 // repetition only matters in short texts
)

var gibberishRun = regexp.MustCompile(`(?i)[bcdfghjklmnpqrstvwxz]{7,}`)

// QualityReport is the result of the narrative quality gate.
type QualityReport struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues,omitempty"`
}

// ValidateQuality checks a narrative against the quality gate. The text is
// standardized first so the checks see the canonical form.
func ValidateQuality(text string) QualityReport {
	std := Standardize(text)

	var issues []string

	if len(std) < minLength {
		issues = append(issues, fmt.Sprintf("narrative is too short: %d characters (minimum %d)", len(std), minLength))
	}
	if len(std) > maxLength {
		issues = append(issues, fmt.Sprintf("narrative is too long: %d characters (maximum %d)", len(std), maxLength))
	}

	words := strings.Fields(std)
	if len(words) < minWords {
		issues = append(issues, fmt.Sprintf("narrative has too few words: %d (minimum %d)", len(words), minWords))
	}

	if token, count := dominantToken(words); token != "" {
		issues = append(issues, fmt.Sprintf("token %q repeated %d times in a short narrative", token, count))
	}

	if gibberishRun.MatchString(std) {
		issues = append(issues, "narrative contains gibberish (7+ consecutive consonants)")
	}

	return QualityReport{Valid: len(issues) == 0, Issues: issues}
}

// dominantToken reports a token that dominates a short narrative: longer
// than repeatTokenLen, appearing more than repeatLimit times while the whole
// text stays under repeatWordWindow words.
func dominantToken(words []string) (string, int) {
	if len(words) >= repeatWordWindow {
		return "", 0
	}

	counts := make(map[string]int)
	for _, w := range words {
		w = strings.ToLower(strings.Trim(w, ".,!?;:\"'"))
		if len(w) > repeatTokenLen {
			counts[w]++
		}
	}

	for token, count := range counts {
		if count > repeatLimit {
			return token, count
		}
	}
	return "", 0
}
