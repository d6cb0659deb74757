// Package config loads function settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultRegion        = "us-east-1"
	DefaultMaxImageBytes = 5 << 20
	DefaultListenAddr    = ":8080"
)

var (
	ErrMissingTable  = errors.New("PRODUCTS_TABLE_NAME is not set")
	ErrMissingBucket = errors.New("IMAGES_BUCKET_NAME is not set")
)

type Config struct {
	TableName     string `mapstructure:"products_table_name"`
	BucketName    string `mapstructure:"images_bucket_name"`
	Region        string `mapstructure:"aws_region"`
	Endpoint      string `mapstructure:"aws_endpoint_url"`
	ImageBaseURL  string `mapstructure:"image_base_url"`
	MaxImageBytes int    `mapstructure:"max_image_bytes"`
	LogLevel      string `mapstructure:"log_level"`
	LogFormat     string `mapstructure:"log_format"`
	ListenAddr    string `mapstructure:"listen_addr"`
}

// Load reads the configuration from environment variables. Only the table name
// is required here; functions that touch images call RequireBucket.
func Load() (*Config, error) {
	v := viper.New()

	// Every key needs a default so Unmarshal sees the environment override.
	v.SetDefault("products_table_name", "")
	v.SetDefault("images_bucket_name", "")
	v.SetDefault("aws_region", DefaultRegion)
	v.SetDefault("aws_endpoint_url", "")
	v.SetDefault("image_base_url", "")
	v.SetDefault("max_image_bytes", DefaultMaxImageBytes)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("listen_addr", DefaultListenAddr)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.TableName == "" {
		return nil, ErrMissingTable
	}
	if cfg.MaxImageBytes <= 0 {
		return nil, fmt.Errorf("MAX_IMAGE_BYTES must be positive, got %d", cfg.MaxImageBytes)
	}

	return &cfg, nil
}

func (c *Config) RequireBucket() error {
	if c.BucketName == "" {
		return ErrMissingBucket
	}
	return nil
}
