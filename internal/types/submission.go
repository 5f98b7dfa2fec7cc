// Package types provides type definitions for structured data used throughout the reference-validator system.
package types

// RatingMin and RatingMax bound the declared domain of attribute ratings.
// Values outside the domain are dropped, never clamped.
const (
	RatingMin = 0.0
	RatingMax = 5.0
)

// RawSubmission is a single reference as received from a submitter: the
// free-text narrative plus per-attribute numeric ratings about one subject.
type RawSubmission struct {
	SubjectID        string             `json:"subject_id"`
	Narrative        string             `json:"narrative"`
	AttributeRatings map[string]float64 `json:"attribute_ratings"`
	DetailedFeedback map[string]string  `json:"detailed_feedback,omitempty"`
	AuthorContact    string             `json:"author_contact,omitempty"`
}

// ValidRatings returns only the ratings inside the declared [0,5] domain.
func (s *RawSubmission) ValidRatings() map[string]float64 {
	valid := make(map[string]float64, len(s.AttributeRatings))
	for name, rating := range s.AttributeRatings {
		if rating >= RatingMin && rating <= RatingMax {
			valid[name] = rating
		}
	}
	return valid
}

// PriorSubmission is one previously accepted reference for the same subject,
// supplied by the persistence layer as a read-only snapshot. The embedding is
// optional; older submissions may predate embedding support.
type PriorSubmission struct {
	AttributeRatings map[string]float64 `json:"attribute_ratings"`
	Embedding        []float64          `json:"embedding,omitempty"`
}
