package standardize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardize_WhitespaceAndPunctuation(t *testing.T) {
	assert.Equal(t, "John was great!!!", Standardize("  John was   great!!!  "))
}

func TestStandardize_EmptyInput(t *testing.T) {
	assert.Equal(t, "", Standardize(""))
	assert.Equal(t, "", Standardize("   \t \n "))
}

func TestStandardize_LineBreakNormalization(t *testing.T) {
	assert.Equal(t, "One\nTwo", Standardize("One\r\nTwo"))
	assert.Equal(t, "One\nTwo", Standardize("One\rTwo"))
	assert.Equal(t, "One\n\nTwo", Standardize("One\n\n\n\n\nTwo"))
}

func TestStandardize_StripsZeroWidthCharacters(t *testing.T) {
	assert.Equal(t, "Great colleague", Standardize("Great​ colleague"))
	assert.Equal(t, "Great colleague", Standardize("\uFEFFgreat colleague"))
	assert.Equal(t, "Great colleague", Standardize("Great colleague"))
}

func TestStandardize_TabsCollapseToOneSpace(t *testing.T) {
	assert.Equal(t, "John was great", Standardize("John\twas\t\tgreat"))
	assert.Equal(t, "One two", Standardize("one \t  two"))
}

func TestStandardize_SmartPunctuation(t *testing.T) {
	assert.Equal(t, `John's work was "great" - truly`, Standardize("John’s work was “great” — truly"))
}

func TestStandardize_CapsRepeatedPunctuation(t *testing.T) {
	assert.Equal(t, "Amazing!!!", Standardize("amazing!!!!!!"))
	assert.Equal(t, "Really???", Standardize("really??????"))
	assert.Equal(t, "Well...", Standardize("well........"))
	// Three repeats are left alone.
	assert.Equal(t, "Amazing!!!", Standardize("amazing!!!"))
}

func TestStandardize_PunctuationSpacing(t *testing.T) {
	assert.Equal(t, "Good work, truly. Yes", Standardize("good work , truly.Yes"))
	// A decimal number is not punctuation followed by a word.
	assert.Equal(t, "Rated 4.5 overall", Standardize("rated 4.5 overall"))
}

func TestStandardize_UppercasesFirstCharacter(t *testing.T) {
	assert.Equal(t, "Very reliable", Standardize("very reliable"))
	assert.Equal(t, "Élan and focus", Standardize("élan and focus"))
}

func TestStandardize_Idempotent(t *testing.T) {
	inputs := []string{
		"  John was   great!!!  ",
		"one\r\ntwo\r\rthree\n\n\n\nfour",
		"smart “quotes” and — dashes ’",
		"zero​width‌ runs ⁠ here",
		"punctuation , spacing.Next!!!!! and 4.5 too",
		"",
		"a",
		"tabs\t\tand   spaces",
		"Hello...there??? friend",
	}
	for _, in := range inputs {
		once := Standardize(in)
		assert.Equal(t, once, Standardize(once), "not idempotent for %q", in)
	}
}

func TestStandardize_NeverLongerAfterCollapsing(t *testing.T) {
	in := "  lots   of \t whitespace   everywhere   "
	assert.LessOrEqual(t, len(Standardize(in)), len(in))
}

func TestValidateQuality_AcceptsReasonableNarrative(t *testing.T) {
	report := ValidateQuality("John was a dependable engineer who shipped two major releases on time.")
	assert.True(t, report.Valid)
	assert.Empty(t, report.Issues)
}

func TestValidateQuality_TooShort(t *testing.T) {
	report := ValidateQuality("Good guy.")
	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.Issues)
}

func TestValidateQuality_TooLong(t *testing.T) {
	report := ValidateQuality(strings.Repeat("solid work overall ", 600))
	assert.False(t, report.Valid)
}

func TestValidateQuality_TooFewWords(t *testing.T) {
	report := ValidateQuality("Exceptionally trustworthy individual")
	assert.False(t, report.Valid)
}

func TestValidateQuality_RepeatedToken(t *testing.T) {
	report := ValidateQuality("great great great great great great great great great great great work")
	assert.False(t, report.Valid)
}

func TestValidateQuality_Gibberish(t *testing.T) {
	report := ValidateQuality("This person is xkcdfghjk absolutely wonderful to work with")
	assert.False(t, report.Valid)
}

func TestExtractKeyPhrases(t *testing.T) {
	phrases := ExtractKeyPhrases("She showed strong leadership and excellent communication. Strong leadership indeed.")
	assert.Equal(t, []string{"strong leadership", "excellent communication"}, phrases)
}

func TestExtractKeyPhrases_NoMatches(t *testing.T) {
	assert.Nil(t, ExtractKeyPhrases("A perfectly ordinary sentence about nothing in particular."))
}
