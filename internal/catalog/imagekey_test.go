package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageKey(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://bucket.example.com/products/abc/photo.png", "products/abc/photo.png"},
		{"https://stack-product-images.s3.amazonaws.com/products/p-1/image.jpg", "products/p-1/image.jpg"},
		{"https://cdn.example.com/products/my%20photo.png", "products/my photo.png"},
		{"http://localhost:4566/products/abc/photo.png?versionId=1", "products/abc/photo.png"},
	}

	for _, tt := range tests {
		got, err := ImageKey(tt.url)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.want, got)
	}
}

func TestImageKey_Invalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"products/abc/photo.png",
		"https://bucket.example.com",
		"https://bucket.example.com/",
		"://bad",
	} {
		_, err := ImageKey(raw)
		assert.ErrorIs(t, err, ErrInvalidImageURL, raw)
	}
}
