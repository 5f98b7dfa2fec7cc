package consistency

import (
	"fmt"
	"regexp"

	"github.com/hrkey/reference-validator/internal/types"
)

// contradictionWindow is how far apart (in characters) a positive adjective
// and a contrastive term may sit and still look contradictory.
const contradictionWindow = 100

var (
	positiveTerms    = regexp.MustCompile(`(?i)\b(excellent|outstanding|exceptional|amazing|fantastic|brilliant|superb|great)\b`)
	contrastiveTerms = regexp.MustCompile(`(?i)\b(but|however|although|though|unfortunately|poor|weak|lazy|unreliable|terrible|disappointing|never)\b`)
)

// DetectContradictions scans a narrative for a strong positive adjective and
// a contrastive or negative term close together. The flags are advisory text
// analysis; they never feed the numeric consistency score.
func DetectContradictions(narrative string) []types.Flag {
	positives := positiveTerms.FindAllStringIndex(narrative, -1)
	if len(positives) == 0 {
		return nil
	}
	contrastives := contrastiveTerms.FindAllStringIndex(narrative, -1)
	if len(contrastives) == 0 {
		return nil
	}

	var flags []types.Flag
	for _, pos := range positives {
		for _, con := range contrastives {
			if distance(pos, con) > contradictionWindow {
				continue
			}
			flags = append(flags, types.Flag{
				Type:     types.FlagContradiction,
				Severity: types.SeverityInfo,
				Message: fmt.Sprintf("%q and %q appear within %d characters of each other",
					narrative[pos[0]:pos[1]], narrative[con[0]:con[1]], contradictionWindow),
				Context: map[string]any{
					"positive":    narrative[pos[0]:pos[1]],
					"contrastive": narrative[con[0]:con[1]],
				},
			})
			// One flag per positive term keeps the output readable.
			break
		}
	}
	return flags
}

// distance is the gap in characters between two match spans.
func distance(a, b []int) int {
	if a[1] <= b[0] {
		return b[0] - a[1]
	}
	if b[1] <= a[0] {
		return a[0] - b[1]
	}
	return 0
}
