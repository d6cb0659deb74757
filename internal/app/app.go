// Package app wires configuration, logging and the AWS-backed stores into a
// catalog service for the function entry points.
package app

import (
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/sakarghimire/product-management-service/internal/catalog"
	"github.com/sakarghimire/product-management-service/internal/config"
	"github.com/sakarghimire/product-management-service/internal/logging"
	"github.com/sakarghimire/product-management-service/internal/store"
)

type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Catalog *catalog.Service
}

// New builds the service once per function instance. Functions that never
// touch images pass withImages=false and run without a bucket.
func New(withImages bool) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if withImages {
		if err := cfg.RequireBucket(); err != nil {
			return nil, err
		}
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	sess, err := store.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	records := store.NewRecordStore(dynamodb.New(sess), cfg.TableName)

	// A nil *store.BlobStore must not end up inside the interface.
	var blobs catalog.BlobStore
	if withImages {
		b, err := store.NewBlobStore(s3.New(sess), cfg.BucketName, cfg.Region, cfg.ImageBaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create image store: %w", err)
		}
		blobs = b
	}

	svc := catalog.NewService(records, blobs,
		catalog.WithLogger(logger),
		catalog.WithMaxImageBytes(cfg.MaxImageBytes),
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Catalog: svc,
	}, nil
}
