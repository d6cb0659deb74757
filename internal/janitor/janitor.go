// Package janitor removes product images that are no longer referenced, driven
// by the products table stream. It collects images the delete handler could not
// remove and images replaced by an update.
package janitor

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/sakarghimire/product-management-service/internal/catalog"
)

const imageURLAttr = "imageUrl"

// ImageReleaser is satisfied by catalog.Service.
type ImageReleaser interface {
	ReleaseImage(ctx context.Context, imageURL string) catalog.ImageCleanup
}

type Janitor struct {
	images ImageReleaser
	logger *slog.Logger
}

func New(images ImageReleaser, logger *slog.Logger) *Janitor {
	return &Janitor{images: images, logger: logger}
}

// Handle processes one stream batch. It never fails the batch: S3 deletes are
// idempotent and a failed removal is only logged.
func (j *Janitor) Handle(ctx context.Context, event events.DynamoDBEvent) error {
	released := 0
	for _, record := range event.Records {
		imageURL := staleImage(record)
		if imageURL == "" {
			continue
		}

		c := j.images.ReleaseImage(ctx, imageURL)
		if c.Err != nil {
			j.logger.WarnContext(ctx, "stale image not removed", "event_id", record.EventID, "image_url", imageURL, "error", c.Err)
			continue
		}
		released++
	}

	j.logger.InfoContext(ctx, "stream batch processed", "records", len(event.Records), "images_released", released)
	return nil
}

// staleImage returns the image URL a stream record stopped referencing, or "".
func staleImage(record events.DynamoDBEventRecord) string {
	oldURL := stringAttr(record.Change.OldImage, imageURLAttr)
	if oldURL == "" {
		return ""
	}

	switch events.DynamoDBOperationType(record.EventName) {
	case events.DynamoDBOperationTypeRemove:
		return oldURL
	case events.DynamoDBOperationTypeModify:
		if stringAttr(record.Change.NewImage, imageURLAttr) != oldURL {
			return oldURL
		}
	}
	return ""
}

func stringAttr(image map[string]events.DynamoDBAttributeValue, name string) string {
	av, ok := image[name]
	if !ok || av.DataType() != events.DataTypeString {
		return ""
	}
	return av.String()
}
