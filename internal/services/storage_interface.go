package services

import (
	"context"

	"exam-tasks-api/internal/models"
)

// AttachmentStore defines the object storage operations used for task attachments.
// This allows substituting the S3 implementation in tests.
type AttachmentStore interface {
	// Upload stores the file under a newly generated key and returns the key
	Upload(ctx context.Context, file models.AttachmentFile) (string, error)

	// Delete removes the given keys. An empty list is a no-op.
	Delete(ctx context.Context, keys []string) error
}
