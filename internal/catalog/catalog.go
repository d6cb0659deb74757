// Package catalog implements the product operations behind the HTTP API:
// creating, listing and deleting products together with their images.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sakarghimire/product-management-service/internal/product"
)

// RecordStore persists product records by id. Get returns product.ErrNotFound
// when no record exists; any other error is an operational failure.
type RecordStore interface {
	Get(ctx context.Context, id string) (*product.Record, error)
	Put(ctx context.Context, rec *product.Record) error
	List(ctx context.Context) ([]product.Record, error)
	Delete(ctx context.Context, id string) error
}

// BlobStore holds image objects by key. Put returns the object URL, whose path
// without the leading slash is the key.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

var errBlobsUnavailable = errors.New("image storage is not configured")

type Service struct {
	records       RecordStore
	blobs         BlobStore
	logger        *slog.Logger
	now           func() time.Time
	newID         func() string
	maxImageBytes int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func WithMaxImageBytes(n int) Option {
	return func(s *Service) { s.maxImageBytes = n }
}

// NewService wires the stores. blobs may be nil for functions that never touch
// images; creating a product with an image then fails.
func NewService(records RecordStore, blobs BlobStore, opts ...Option) *Service {
	s := &Service{
		records:       records,
		blobs:         blobs,
		logger:        slog.Default(),
		now:           time.Now,
		newID:         func() string { return uuid.New().String() },
		maxImageBytes: 5 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateProduct validates np, stores its image if any, and persists the record.
// Validation failures wrap product.ErrInvalidInput.
func (s *Service) CreateProduct(ctx context.Context, np product.NewProduct) (*product.Record, error) {
	np.Name = strings.TrimSpace(np.Name)
	if np.Name == "" {
		return nil, fmt.Errorf("%w: name is required", product.ErrInvalidInput)
	}
	if np.Price < 0 || math.IsNaN(np.Price) || math.IsInf(np.Price, 0) {
		return nil, fmt.Errorf("%w: price must be a non-negative number", product.ErrInvalidInput)
	}

	var img *decodedImage
	if np.ImageData != "" {
		var err error
		if img, err = decodeImage(np.ImageData, s.maxImageBytes); err != nil {
			return nil, err
		}
		if s.blobs == nil {
			return nil, errBlobsUnavailable
		}
	}

	ts := s.now().UTC().Format(time.RFC3339)
	rec := &product.Record{
		ID:          s.newID(),
		Name:        np.Name,
		Description: np.Description,
		Price:       np.Price,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	if img != nil {
		key := imageObjectKey(rec.ID, img.ext)
		url, err := s.blobs.Put(ctx, key, img.data, img.contentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		rec.ImageURL = url
	}

	if err := s.records.Put(ctx, rec); err != nil {
		if rec.HasImage() {
			// Nothing references the image now.
			s.ReleaseImage(ctx, rec.ImageURL)
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "product created", "product_id", rec.ID, "has_image", rec.HasImage())
	return rec, nil
}

// ListProducts returns every product, oldest first.
func (s *Service) ListProducts(ctx context.Context) ([]product.Record, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt < records[j].CreatedAt
		}
		return records[i].ID < records[j].ID
	})

	if records == nil {
		records = []product.Record{}
	}
	return records, nil
}

func imageObjectKey(id, ext string) string {
	return fmt.Sprintf("products/%s/image.%s", id, ext)
}
