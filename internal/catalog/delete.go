package catalog

import (
	"context"
	"errors"

	"github.com/sakarghimire/product-management-service/internal/product"
)

// DeleteState is a step of the product deletion workflow.
type DeleteState string

const (
	StateStart          DeleteState = "start"
	StateFetching       DeleteState = "fetching"
	StateFound          DeleteState = "found"
	StateCleaningImage  DeleteState = "cleaning_image"
	StateDeletingRecord DeleteState = "deleting_record"

	// Terminal states.
	StateRejected     DeleteState = "rejected"
	StateFetchFailed  DeleteState = "fetch_failed"
	StateNotFound     DeleteState = "not_found"
	StateDeleteFailed DeleteState = "delete_failed"
	StateDeleted      DeleteState = "deleted"
)

// Terminal reports whether no further transition follows s.
func (s DeleteState) Terminal() bool {
	switch s {
	case StateRejected, StateFetchFailed, StateNotFound, StateDeleteFailed, StateDeleted:
		return true
	}
	return false
}

type Classification string

const (
	ClassSuccess          Classification = "success"
	ClassInvalidInput     Classification = "invalid-input"
	ClassNotFound         Classification = "not-found"
	ClassOperationalError Classification = "operational-error"
)

// ImageCleanup is the outcome of the best-effort image removal. Err is recorded
// for observation only and never affects the workflow result.
type ImageCleanup struct {
	Attempted bool
	Key       string
	Err       error
}

func (c ImageCleanup) OK() bool {
	return c.Attempted && c.Err == nil
}

// DeleteResult is the terminal outcome of one DeleteProduct call. Err carries
// the store failure behind FetchFailed and DeleteFailed.
type DeleteResult struct {
	State     DeleteState
	ProductID string
	Cleanup   ImageCleanup
	Err       error
}

func (r DeleteResult) Classification() Classification {
	switch r.State {
	case StateDeleted:
		return ClassSuccess
	case StateRejected:
		return ClassInvalidInput
	case StateNotFound:
		return ClassNotFound
	default:
		return ClassOperationalError
	}
}

// DeleteProduct removes a product and, best-effort, its image. The record is
// only deleted after it was fetched successfully; an image that cannot be
// removed is left for the stream janitor and does not fail the call.
func (s *Service) DeleteProduct(ctx context.Context, id string) DeleteResult {
	res := DeleteResult{State: StateStart, ProductID: id}

	if id == "" {
		res.State = StateRejected
		return res
	}

	res.State = StateFetching
	rec, err := s.records.Get(ctx, id)
	switch {
	case errors.Is(err, product.ErrNotFound):
		res.State = StateNotFound
		return res
	case err != nil:
		s.logger.ErrorContext(ctx, "failed to retrieve product", "product_id", id, "error", err)
		res.State = StateFetchFailed
		res.Err = err
		return res
	}
	res.State = StateFound

	if rec.HasImage() {
		res.State = StateCleaningImage
		res.Cleanup = s.ReleaseImage(ctx, rec.ImageURL)
	}

	res.State = StateDeletingRecord
	if err := s.records.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete product", "product_id", id, "error", err)
		res.State = StateDeleteFailed
		res.Err = err
		return res
	}

	s.logger.InfoContext(ctx, "product deleted", "product_id", id, "image_removed", res.Cleanup.OK())
	res.State = StateDeleted
	return res
}

// ReleaseImage deletes the blob behind imageURL. Failures are logged and
// returned on the result, never as an error.
func (s *Service) ReleaseImage(ctx context.Context, imageURL string) ImageCleanup {
	c := ImageCleanup{Attempted: true}

	key, err := ImageKey(imageURL)
	if err != nil {
		c.Err = err
		s.logger.WarnContext(ctx, "skipping image cleanup", "image_url", imageURL, "error", err)
		return c
	}
	c.Key = key

	if s.blobs == nil {
		c.Err = errBlobsUnavailable
		s.logger.WarnContext(ctx, "skipping image cleanup", "key", key, "error", c.Err)
		return c
	}

	if err := s.blobs.Delete(ctx, key); err != nil {
		c.Err = err
		s.logger.WarnContext(ctx, "failed to delete image", "key", key, "error", err)
		return c
	}

	s.logger.DebugContext(ctx, "image deleted", "key", key)
	return c
}
