package catalog

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/sakarghimire/product-management-service/internal/product"
)

type decodedImage struct {
	data        []byte
	contentType string
	ext         string
}

var imageFormats = map[imaging.Format]struct {
	contentType string
	ext         string
}{
	imaging.JPEG: {"image/jpeg", "jpg"},
	imaging.PNG:  {"image/png", "png"},
	imaging.GIF:  {"image/gif", "gif"},
	imaging.TIFF: {"image/tiff", "tiff"},
	imaging.BMP:  {"image/bmp", "bmp"},
}

// decodeImage accepts raw base64 or a data URL ("data:image/png;base64,...").
// The bytes are stored unchanged once they decode as a supported image.
func decodeImage(encoded string, maxBytes int) (*decodedImage, error) {
	if i := strings.Index(encoded, ";base64,"); strings.HasPrefix(encoded, "data:") && i >= 0 {
		encoded = encoded[i+len(";base64,"):]
	}

	if base64.StdEncoding.DecodedLen(len(encoded)) > maxBytes+2 {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", product.ErrInvalidInput, maxBytes)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: imageData is not valid base64", product.ErrInvalidInput)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: imageData is empty", product.ErrInvalidInput)
	}
	if len(data) > maxBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", product.ErrInvalidInput, maxBytes)
	}

	// imaging registers the BMP and TIFF decoders alongside the standard ones.
	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: unrecognised image format", product.ErrInvalidInput)
	}
	format, err := imaging.FormatFromExtension(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported image format %q", product.ErrInvalidInput, name)
	}
	info, ok := imageFormats[format]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image format %q", product.ErrInvalidInput, name)
	}

	// A full decode catches truncated or corrupt bodies that still carry a valid header.
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: image is corrupt", product.ErrInvalidInput)
	}

	return &decodedImage{
		data:        data,
		contentType: info.contentType,
		ext:         info.ext,
	}, nil
}
