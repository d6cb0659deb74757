package catalog

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakarghimire/product-management-service/internal/product"
	"github.com/sakarghimire/product-management-service/internal/store/storetest"
)

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func pngBase64(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newCreateFixture() (*Service, *storetest.Records, *storetest.Blobs) {
	recs := storetest.NewRecords()
	blobs := storetest.NewBlobs()
	svc := NewService(recs, blobs,
		WithLogger(quietLogger),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "p-1" }),
	)
	return svc, recs, blobs
}

func TestCreateProduct_WithoutImage(t *testing.T) {
	svc, recs, blobs := newCreateFixture()

	rec, err := svc.CreateProduct(context.Background(), product.NewProduct{
		Name:        "  Lamp ",
		Description: "Desk lamp",
		Price:       0,
	})
	require.NoError(t, err)

	assert.Equal(t, "p-1", rec.ID)
	assert.Equal(t, "Lamp", rec.Name)
	assert.Empty(t, rec.ImageURL)
	assert.Equal(t, "2026-03-14T15:09:26Z", rec.CreatedAt)
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
	assert.True(t, recs.Has("p-1"))
	assert.Empty(t, blobs.ContentTypes)
}

func TestCreateProduct_WithImage(t *testing.T) {
	svc, recs, blobs := newCreateFixture()

	rec, err := svc.CreateProduct(context.Background(), product.NewProduct{
		Name:      "Lamp",
		Price:     12.5,
		ImageData: pngBase64(t),
	})
	require.NoError(t, err)

	assert.Equal(t, "https://bucket.example.com/products/p-1/image.png", rec.ImageURL)
	assert.True(t, blobs.Has("products/p-1/image.png"))
	assert.Equal(t, "image/png", blobs.ContentTypes["products/p-1/image.png"])

	key, err := ImageKey(rec.ImageURL)
	require.NoError(t, err)
	assert.Equal(t, "products/p-1/image.png", key)

	stored, err := recs.Get(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, rec, stored)
}

func TestCreateProduct_AcceptsDataURL(t *testing.T) {
	svc, _, blobs := newCreateFixture()

	_, err := svc.CreateProduct(context.Background(), product.NewProduct{
		Name:      "Lamp",
		Price:     1,
		ImageData: "data:image/png;base64," + pngBase64(t),
	})
	require.NoError(t, err)
	assert.True(t, blobs.Has("products/p-1/image.png"))
}

func TestCreateProduct_InvalidInput(t *testing.T) {
	tests := map[string]product.NewProduct{
		"missing name":   {Price: 1},
		"blank name":     {Name: "   ", Price: 1},
		"negative price": {Name: "Lamp", Price: -1},
		"nan price":      {Name: "Lamp", Price: math.NaN()},
		"bad base64":     {Name: "Lamp", Price: 1, ImageData: "%%%"},
		"not an image":   {Name: "Lamp", Price: 1, ImageData: base64.StdEncoding.EncodeToString([]byte("hello world"))},
	}

	for name, np := range tests {
		t.Run(name, func(t *testing.T) {
			svc, recs, blobs := newCreateFixture()

			_, err := svc.CreateProduct(context.Background(), np)
			assert.ErrorIs(t, err, product.ErrInvalidInput)
			assert.Zero(t, recs.Puts)
			assert.Empty(t, blobs.ContentTypes)
		})
	}
}

func TestCreateProduct_ImageTooLarge(t *testing.T) {
	recs := storetest.NewRecords()
	svc := NewService(recs, storetest.NewBlobs(), WithLogger(quietLogger), WithMaxImageBytes(16))

	_, err := svc.CreateProduct(context.Background(), product.NewProduct{Name: "Lamp", ImageData: pngBase64(t)})
	assert.ErrorIs(t, err, product.ErrInvalidInput)
	assert.Zero(t, recs.Puts)
}

func TestCreateProduct_ImageUploadFails(t *testing.T) {
	svc, recs, blobs := newCreateFixture()
	blobs.PutErr = errors.New("access denied")

	_, err := svc.CreateProduct(context.Background(), product.NewProduct{Name: "Lamp", ImageData: pngBase64(t)})
	require.Error(t, err)
	assert.NotErrorIs(t, err, product.ErrInvalidInput)
	assert.Zero(t, recs.Puts)
}

func TestCreateProduct_RecordPutFailsReleasesImage(t *testing.T) {
	svc, recs, blobs := newCreateFixture()
	recs.PutErr = errors.New("throttled")

	_, err := svc.CreateProduct(context.Background(), product.NewProduct{Name: "Lamp", ImageData: pngBase64(t)})
	assert.ErrorIs(t, err, recs.PutErr)
	assert.Equal(t, []string{"products/p-1/image.png"}, blobs.Deleted)
	assert.False(t, blobs.Has("products/p-1/image.png"))
}

func TestCreateProduct_ImageWithoutBlobStore(t *testing.T) {
	recs := storetest.NewRecords()
	svc := NewService(recs, nil, WithLogger(quietLogger))

	_, err := svc.CreateProduct(context.Background(), product.NewProduct{Name: "Lamp", ImageData: pngBase64(t)})
	assert.ErrorIs(t, err, errBlobsUnavailable)
	assert.Zero(t, recs.Puts)
}

func TestListProducts_SortedByCreation(t *testing.T) {
	recs := storetest.NewRecords(
		product.Record{ID: "c", CreatedAt: "2026-01-03T00:00:00Z"},
		product.Record{ID: "a", CreatedAt: "2026-01-05T00:00:00Z"},
		product.Record{ID: "b", CreatedAt: "2026-01-03T00:00:00Z"},
	)
	svc := NewService(recs, nil, WithLogger(quietLogger))

	list, err := svc.ListProducts(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(list))
	for _, rec := range list {
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []string{"b", "c", "a"}, ids)
}

func TestListProducts_Empty(t *testing.T) {
	svc := NewService(storetest.NewRecords(), nil, WithLogger(quietLogger))

	list, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListProducts_StoreError(t *testing.T) {
	recs := storetest.NewRecords()
	recs.ListErr = errors.New("scan failed")
	svc := NewService(recs, nil, WithLogger(quietLogger))

	_, err := svc.ListProducts(context.Background())
	assert.ErrorIs(t, err, recs.ListErr)
}
