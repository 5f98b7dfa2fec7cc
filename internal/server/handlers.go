package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/hrkey/reference-validator/internal/history"
	"github.com/hrkey/reference-validator/internal/pipeline"
	"github.com/hrkey/reference-validator/internal/types"
)

// SubmissionValidator is the slice of the pipeline the server depends on.
type SubmissionValidator interface {
	Validate(ctx context.Context, raw types.RawSubmission, opts pipeline.Options) (*types.StructuredValidationOutput, error)
	ValidateBatch(ctx context.Context, items []types.RawSubmission, opts pipeline.Options) pipeline.BatchResult
}

// HistoryProvider fetches prior accepted submissions for a subject.
type HistoryProvider = history.Provider

// ResultSink persists finished validation outputs. Persistence failures are
// logged, never surfaced to the submitter: the validation itself succeeded.
type ResultSink interface {
	SaveResult(ctx context.Context, out *types.StructuredValidationOutput) error
}

// handleValidate validates a single submission.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req types.ValidateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := pipeline.Options{
		SkipEmbeddings:       req.SkipEmbeddings,
		SkipConsistencyCheck: req.SkipConsistencyCheck,
		PriorSubmissions:     req.PriorSubmissions,
	}
	s.loadHistory(r.Context(), req.Submission.SubjectID, &opts)

	out, err := s.validator.Validate(r.Context(), req.Submission, opts)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if s.sink != nil {
		if err := s.sink.SaveResult(r.Context(), out); err != nil {
			log.Printf("[WARN] failed to persist validation result %s: %v", out.ID, err)
		}
	}

	includeEmbedding := r.URL.Query().Get("include_embedding") == "true"
	s.jsonResponse(w, http.StatusOK, out.ForPublicAPI(includeEmbedding))
}

// batchResponse is the response body for /validate/batch.
type batchResponse struct {
	Results []*types.PublicRecord `json:"results"`
	Errors  []batchError          `json:"errors"`
}

type batchError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// handleValidateBatch validates a list of submissions with per-item error
// isolation; the response always has one result slot per input item.
func (s *Server) handleValidateBatch(w http.ResponseWriter, r *http.Request) {
	var req types.ValidateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := pipeline.Options{
		SkipEmbeddings:       req.SkipEmbeddings,
		SkipConsistencyCheck: req.SkipConsistencyCheck,
		PriorSubmissions:     req.PriorSubmissions,
	}

	result := s.validator.ValidateBatch(r.Context(), req.Submissions, opts)

	includeEmbedding := r.URL.Query().Get("include_embedding") == "true"
	resp := batchResponse{
		Results: make([]*types.PublicRecord, len(result.Results)),
		Errors:  make([]batchError, 0, len(result.Errors)),
	}
	for i, out := range result.Results {
		if out == nil {
			continue
		}
		rec := out.ForPublicAPI(includeEmbedding)
		resp.Results[i] = &rec
		if s.sink != nil {
			if err := s.sink.SaveResult(r.Context(), out); err != nil {
				log.Printf("[WARN] failed to persist validation result %s: %v", out.ID, err)
			}
		}
	}
	for _, e := range result.Errors {
		resp.Errors = append(resp.Errors, batchError{Index: e.Index, Error: e.Err.Error()})
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loadHistory fills opts.PriorSubmissions from the history provider when the
// request did not supply priors itself. A history fetch failure degrades to
// a no-history check rather than failing the request.
func (s *Server) loadHistory(ctx context.Context, subjectID string, opts *pipeline.Options) {
	if s.history == nil || opts.SkipConsistencyCheck || len(opts.PriorSubmissions) > 0 {
		return
	}
	prior, err := s.history.PriorSubmissions(ctx, subjectID, history.DefaultLimit)
	if err != nil {
		log.Printf("[WARN] failed to load history for subject %s: %v", subjectID, err)
		return
	}
	opts.PriorSubmissions = prior
}
