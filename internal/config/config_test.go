package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PRODUCTS_TABLE_NAME", "stack-Products-Table")
	t.Setenv("IMAGES_BUCKET_NAME", "")
	t.Setenv("AWS_REGION", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "stack-Products-Table", cfg.TableName)
	assert.Equal(t, DefaultRegion, cfg.Region)
	assert.Equal(t, DefaultMaxImageBytes, cfg.MaxImageBytes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.ErrorIs(t, cfg.RequireBucket(), ErrMissingBucket)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PRODUCTS_TABLE_NAME", "products")
	t.Setenv("IMAGES_BUCKET_NAME", "product-images")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_ENDPOINT_URL", "http://localhost:4566")
	t.Setenv("MAX_IMAGE_BYTES", "1024")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "product-images", cfg.BucketName)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "http://localhost:4566", cfg.Endpoint)
	assert.Equal(t, 1024, cfg.MaxImageBytes)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.NoError(t, cfg.RequireBucket())
}

func TestLoad_MissingTable(t *testing.T) {
	t.Setenv("PRODUCTS_TABLE_NAME", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingTable)
}

func TestLoad_InvalidImageLimit(t *testing.T) {
	t.Setenv("PRODUCTS_TABLE_NAME", "products")
	t.Setenv("MAX_IMAGE_BYTES", "0")

	_, err := Load()
	assert.Error(t, err)
}
