package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrInvalidImageURL = errors.New("invalid image URL")

// ImageKey recovers the blob key from an image URL: the path component with
// its leading slash removed, so
// "https://bucket.example.com/products/abc/photo.png" yields "products/abc/photo.png".
func ImageKey(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImageURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q has no scheme or host", ErrInvalidImageURL, rawURL)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("%w: %q has no object key", ErrInvalidImageURL, rawURL)
	}

	return key, nil
}
