// Package standardize provides deterministic narrative cleanup and quality gating.
package standardize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	multiNewline    = regexp.MustCompile(`\n{3,}`)
	spaceRun        = regexp.MustCompile(`[ \t]+`)
	bangRun         = regexp.MustCompile(`!{3,}`)
	questionRun     = regexp.MustCompile(`\?{3,}`)
	dotRun          = regexp.MustCompile(`\.{3,}`)
	spaceBeforePunc = regexp.MustCompile(`[ \t]+([.!?,;:])`)
	puncThenLetter  = regexp.MustCompile(`([.!?,;:])([A-Za-z])`)
)

// smartPunctuation maps typographic quotes and dashes to plain ASCII.
var smartPunctuation = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"‚", "'",
	"“", `"`,
	"”", `"`,
	"„", `"`,
	"–", "-",
	"—", "-",
	"−", "-",
)

// Standardize normalizes a raw narrative into its canonical form. It is a
// total function: any input string yields a result, and the result is a
// fixed point (Standardize(Standardize(x)) == Standardize(x)).
func Standardize(text string) string {
	if text == "" {
		return ""
	}

	// 1. Trim surrounding whitespace.
	text = strings.TrimSpace(text)

	// 2. Normalize line breaks, cap blank runs at one empty line.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = multiNewline.ReplaceAllString(text, "\n\n")

	// 3. Strip zero-width and other invisible control characters. This runs
	// before space collapsing: a removed character must not leave a double
	// space behind, or the function would lose its fixed-point property.
	text = stripInvisible(text)

	// 4. Collapse runs of spaces and tabs.
	text = spaceRun.ReplaceAllString(text, " ")

	// 5. Plain ASCII quotes and dashes.
	text = smartPunctuation.Replace(text)

	// 6. Cap repeated terminal punctuation at three.
	text = bangRun.ReplaceAllString(text, "!!!")
	text = questionRun.ReplaceAllString(text, "???")
	text = dotRun.ReplaceAllString(text, "...")

	// 7. No whitespace before punctuation, one space after it.
	text = spaceBeforePunc.ReplaceAllString(text, "$1")
	text = puncThenLetter.ReplaceAllString(text, "$1 $2")

	// 8. Sentence-case the first character.
	text = upperFirst(text)

	// 9. Final trim.
	return strings.TrimSpace(text)
}

// stripInvisible removes zero-width code points and control characters.
// Newlines and tabs survive: newlines carry structure, and tabs must reach
// the space-collapse pass so a tab between words becomes a space.
func stripInvisible(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200B', '\u200C', '\u200D', '\u2060', '\uFEFF':
			return -1
		case '\n', '\t':
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}

// upperFirst upper-cases the first rune of a non-empty string.
func upperFirst(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return text
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
