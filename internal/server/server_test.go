package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrkey/reference-validator/internal/config"
	"github.com/hrkey/reference-validator/internal/history"
	"github.com/hrkey/reference-validator/internal/pipeline"
	"github.com/hrkey/reference-validator/internal/types"
)

// recordingSink captures persisted outputs.
type recordingSink struct {
	saved []*types.StructuredValidationOutput
}

func (s *recordingSink) SaveResult(_ context.Context, out *types.StructuredValidationOutput) error {
	s.saved = append(s.saved, out)
	return nil
}

func newTestServer(t *testing.T, hist HistoryProvider, sink ResultSink) *Server {
	t.Helper()
	validator := pipeline.New(config.DefaultThresholds(), nil, nil)
	return New(Config{Port: 0}, validator, hist, sink)
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func validRequest() types.ValidateSubmissionRequest {
	return types.ValidateSubmissionRequest{
		Submission: types.RawSubmission{
			SubjectID: "subject-001",
			Narrative: "John shipped two major releases on time and mentored the junior engineers patiently.",
			AttributeRatings: map[string]float64{
				"teamwork":   4.5,
				"leadership": 4.0,
			},
			AuthorContact: "colleague@example.com",
		},
	}
}

func TestHandleValidate_OK(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := postJSON(t, s, "/validate", validRequest())

	require.Equal(t, http.StatusOK, rec.Code)

	var out types.PublicRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, types.StatusApproved, out.Status)
	assert.Equal(t, "subject-001", out.SubjectID)
	assert.Nil(t, out.Embedding, "embedding must be omitted unless requested")
}

func TestHandleValidate_IncludeEmbedding(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := postJSON(t, s, "/validate?include_embedding=true", validRequest())

	require.Equal(t, http.StatusOK, rec.Code)
	var out types.PublicRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out.Embedding)
}

func TestHandleValidate_TooShortNarrative(t *testing.T) {
	s := newTestServer(t, nil, nil)

	req := validRequest()
	req.Submission.Narrative = "too short"
	rec := postJSON(t, s, "/validate", req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleValidate_MissingSubjectID(t *testing.T) {
	s := newTestServer(t, nil, nil)

	req := validRequest()
	req.Submission.SubjectID = ""
	rec := postJSON(t, s, "/validate", req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleValidate_InvalidJSON(t *testing.T) {
	s := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/validate", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleValidate_UsesHistoryProvider(t *testing.T) {
	hist := history.NewMemoryStore()
	hist.Add("subject-001", types.PriorSubmission{AttributeRatings: map[string]float64{"teamwork": 5}})
	hist.Add("subject-001", types.PriorSubmission{AttributeRatings: map[string]float64{"teamwork": 4}})
	s := newTestServer(t, hist, nil)

	req := validRequest()
	req.Submission.AttributeRatings = map[string]float64{"teamwork": 1}
	req.SkipEmbeddings = true
	rec := postJSON(t, s, "/validate", req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out types.PublicRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Less(t, out.ConsistencyScore, 1.0, "history should have been consulted")
}

func TestHandleValidate_PersistsToSink(t *testing.T) {
	sink := &recordingSink{}
	s := newTestServer(t, nil, sink)

	rec := postJSON(t, s, "/validate", validRequest())

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sink.saved, 1)
	assert.Equal(t, "subject-001", sink.saved[0].SubjectID)
}

func TestHandleValidateBatch_ShapePreserved(t *testing.T) {
	s := newTestServer(t, nil, nil)

	good := validRequest().Submission
	bad := good
	bad.Narrative = "nope"

	rec := postJSON(t, s, "/validate/batch", types.ValidateBatchRequest{
		Submissions: []types.RawSubmission{good, bad, good},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []*types.PublicRecord `json:"results"`
		Errors  []struct {
			Index int    `json:"index"`
			Error string `json:"error"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Results, 3)
	assert.NotNil(t, resp.Results[0])
	assert.Nil(t, resp.Results[1])
	assert.NotNil(t, resp.Results[2])
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 1, resp.Errors[0].Index)
}

func TestHandleValidateBatch_EmptyListRejected(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rec := postJSON(t, s, "/validate/batch", types.ValidateBatchRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
