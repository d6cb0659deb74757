// Package product holds the persisted product record and the create input.
package product

import "errors"

var (
	// ErrNotFound is returned by record stores when no record exists for an id.
	ErrNotFound = errors.New("product not found")

	// ErrInvalidInput is returned when client supplied product data is rejected.
	ErrInvalidInput = errors.New("invalid product data")
)

// Record is a product as stored in the products table. The json tags double as
// DynamoDB attribute names.
type Record struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// HasImage reports whether the record references an image blob.
func (r *Record) HasImage() bool {
	return r.ImageURL != ""
}

// NewProduct is the payload accepted when creating a product.
type NewProduct struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageData   string  `json:"imageData,omitempty"` // base64 encoded image
}
