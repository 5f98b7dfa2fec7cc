package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hrkey/reference-validator/internal/types"
)

// BatchResult collects the outcome of a batch run. Results always has one
// slot per input item; a failed item leaves a nil slot and an entry in
// Errors. The batch never aborts early.
type BatchResult struct {
	Results []*types.StructuredValidationOutput `json:"results"`
	Errors  []*BatchItemError                   `json:"errors,omitempty"`
}

// ValidateBatch validates items sequentially with per-item error isolation.
func (v *Validator) ValidateBatch(ctx context.Context, items []types.RawSubmission, opts Options) BatchResult {
	return v.validateBatch(ctx, items, opts, 1)
}

// ValidateBatchParallel validates items with at most workers running at
// once. Items are independent, so the only thing parallelism must preserve
// is error isolation and result ordering.
func (v *Validator) ValidateBatchParallel(ctx context.Context, items []types.RawSubmission, opts Options, workers int) BatchResult {
	if workers < 1 {
		workers = 1
	}
	return v.validateBatch(ctx, items, opts, workers)
}

func (v *Validator) validateBatch(ctx context.Context, items []types.RawSubmission, opts Options, workers int) BatchResult {
	results := make([]*types.StructuredValidationOutput, len(items))
	itemErrs := make([]*BatchItemError, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, item := range items {
		g.Go(func() error {
			out, err := v.Validate(gctx, item, opts)
			if err != nil {
				itemErrs[i] = &BatchItemError{Index: i, Err: err}
				return nil // isolation: one bad item never cancels siblings
			}
			results[i] = out
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	batchErrs := make([]*BatchItemError, 0)
	for _, e := range itemErrs {
		if e != nil {
			batchErrs = append(batchErrs, e)
		}
	}

	return BatchResult{Results: results, Errors: batchErrs}
}
