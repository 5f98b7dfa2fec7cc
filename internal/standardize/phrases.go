package standardize

import (
	"regexp"
	"strings"
)

// keyPhrasePattern matches qualifier + professional-attribute pairs such as
// "strong leadership" or "excellent communication". Best-effort extraction;
// the result is advisory and never feeds a score.
var keyPhrasePattern = regexp.MustCompile(`(?i)\b(strong|excellent|outstanding|exceptional|great|solid|poor|weak)\s+` +
	`(leadership|communication|teamwork|collaboration|mentorship|management|organization|initiative|` +
	`work ethic|problem[ -]solving|attention to detail|technical skills?)\b`)

// ExtractKeyPhrases returns the professional-attribute phrases found in a
// narrative, lower-cased and deduplicated, in order of first appearance.
func ExtractKeyPhrases(text string) []string {
	matches := keyPhrasePattern.FindAllString(Standardize(text), -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	phrases := make([]string, 0, len(matches))
	for _, m := range matches {
		phrase := strings.ToLower(strings.Join(strings.Fields(m), " "))
		if !seen[phrase] {
			seen[phrase] = true
			phrases = append(phrases, phrase)
		}
	}
	return phrases
}
