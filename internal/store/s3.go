package store

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// BlobStore keeps product images in an S3 bucket.
type BlobStore struct {
	client   s3iface.S3API
	uploader *s3manager.Uploader
	bucket   string
	baseURL  *url.URL
}

// NewBlobStore returns a store for bucket. Object URLs are built from baseURL
// when it is set, otherwise from the virtual-hosted bucket endpoint in region.
// Either way the object key is the URL path without its leading slash.
func NewBlobStore(client s3iface.S3API, bucket, region, baseURL string) (*BlobStore, error) {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid image base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" || strings.Trim(u.Path, "/") != "" {
		return nil, fmt.Errorf("image base URL %q must be scheme and host only", baseURL)
	}

	return &BlobStore{
		client:   client,
		uploader: s3manager.NewUploaderWithClient(client),
		bucket:   bucket,
		baseURL:  u,
	}, nil
}

// Put uploads data under key and returns the object URL.
func (s *BlobStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %q: %w", key, err)
	}

	return s.URL(key), nil
}

func (s *BlobStore) URL(key string) string {
	u := *s.baseURL
	u.Path = "/" + key
	return u.String()
}

// Delete removes key. S3 reports success for keys that do not exist.
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}

	return nil
}
