package types

import "github.com/go-playground/validator/v10"

// ValidateSubmissionRequest is the request body for POST /validate.
type ValidateSubmissionRequest struct {
	Submission           RawSubmission     `json:"submission" validate:"required"`
	SkipEmbeddings       bool              `json:"skip_embeddings,omitempty"`
	SkipConsistencyCheck bool              `json:"skip_consistency_check,omitempty"`
	PriorSubmissions     []PriorSubmission `json:"prior_submissions,omitempty"`
}

// ValidateBatchRequest is the request body for POST /validate/batch.
type ValidateBatchRequest struct {
	Submissions          []RawSubmission   `json:"submissions" validate:"required,min=1"`
	SkipEmbeddings       bool              `json:"skip_embeddings,omitempty"`
	SkipConsistencyCheck bool              `json:"skip_consistency_check,omitempty"`
	PriorSubmissions     []PriorSubmission `json:"prior_submissions,omitempty"`
}

// Validate validates the ValidateSubmissionRequest using the validator.
func (r *ValidateSubmissionRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	return validate.Var(r.Submission.SubjectID, "required")
}

// Validate validates the ValidateBatchRequest using the validator.
func (r *ValidateBatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
