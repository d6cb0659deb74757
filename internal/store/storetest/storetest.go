// Package storetest provides in-memory record and blob stores with fault
// injection for tests.
package storetest

import (
	"context"
	"sort"
	"sync"

	"github.com/sakarghimire/product-management-service/internal/product"
)

// Records is an in-memory record store. Setting one of the *Err fields makes
// the matching call fail without touching the data.
type Records struct {
	mu    sync.Mutex
	items map[string]product.Record

	GetErr    error
	PutErr    error
	ListErr   error
	DeleteErr error

	Gets    int
	Puts    int
	Deletes int
}

func NewRecords(records ...product.Record) *Records {
	r := &Records{items: map[string]product.Record{}}
	for _, rec := range records {
		r.items[rec.ID] = rec
	}
	return r
}

func (r *Records) Get(_ context.Context, id string) (*product.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Gets++
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	rec, ok := r.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &rec, nil
}

func (r *Records) Put(_ context.Context, rec *product.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Puts++
	if r.PutErr != nil {
		return r.PutErr
	}
	r.items[rec.ID] = *rec
	return nil
}

func (r *Records) List(context.Context) ([]product.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ListErr != nil {
		return nil, r.ListErr
	}
	out := make([]product.Record, 0, len(r.items))
	for _, rec := range r.items {
		out = append(out, rec)
	}
	// Map order is random; scans are not ordered either, but tests want stability.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Records) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Deletes++
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	delete(r.items, id)
	return nil
}

func (r *Records) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]
	return ok
}

func (r *Records) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.Gets + r.Puts + r.Deletes
}

// Blobs is an in-memory blob store that serves objects under BaseURL.
type Blobs struct {
	mu      sync.Mutex
	objects map[string][]byte

	BaseURL   string
	PutErr    error
	DeleteErr error

	ContentTypes map[string]string
	Deleted      []string
	DeleteCalls  int
}

func NewBlobs() *Blobs {
	return &Blobs{
		objects:      map[string][]byte{},
		ContentTypes: map[string]string{},
		BaseURL:      "https://bucket.example.com",
	}
}

func (b *Blobs) Put(_ context.Context, key string, data []byte, contentType string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.PutErr != nil {
		return "", b.PutErr
	}
	b.objects[key] = data
	b.ContentTypes[key] = contentType
	return b.BaseURL + "/" + key, nil
}

func (b *Blobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.DeleteCalls++
	if b.DeleteErr != nil {
		return b.DeleteErr
	}
	delete(b.objects, key)
	b.Deleted = append(b.Deleted, key)
	return nil
}

func (b *Blobs) Has(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.objects[key]
	return ok
}

// Seed stores data under key without counting as a call.
func (b *Blobs) Seed(key string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[key] = data
}
