package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"exam-tasks-api/internal/apperror"
	"exam-tasks-api/internal/config"
	"exam-tasks-api/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// contentTypes maps the extensions accepted for attachments to their MIME type
var contentTypes = map[string]string{
	"jpg": "image/jpeg",
	"png": "image/png",
}

// S3API is the subset of the S3 client used by S3Service
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// DeleteError lists the keys S3 failed to delete in an otherwise accepted batch
type DeleteError struct {
	Keys     []string
	Messages []string
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("failed to delete %d object(s): %s", len(e.Keys), strings.Join(e.Messages, "; "))
}

// S3Service stores task attachments in a single S3 bucket
type S3Service struct {
	client S3API
	bucket string
	log    *logrus.Logger
}

// NewS3Client builds an S3 client from configuration
func NewS3Client(ctx context.Context, cfg *config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	// Without static keys the default chain (env, shared config, IAM role) applies
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Endpoint != "" {
		return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO
		}), nil
	}
	return s3.NewFromConfig(awsCfg), nil
}

// NewS3Service creates an attachment store over client and bucket
func NewS3Service(client S3API, bucket string, log *logrus.Logger) *S3Service {
	return &S3Service{
		client: client,
		bucket: bucket,
		log:    log,
	}
}

// Upload stores the file as a publicly readable object named <uuid>.<extension>
func (s *S3Service) Upload(ctx context.Context, file models.AttachmentFile) (string, error) {
	contentType, ok := contentTypes[file.Extension]
	if !ok {
		return "", apperror.New(apperror.UploadFailed, "Upload error")
	}

	key := uuid.New().String() + "." + file.Extension

	// Content is never rejected, the marker decides the type; a mismatch is
	// kept on the object and in the logs for later inspection
	detected := mimetype.Detect(file.Data)
	log := s.log.WithFields(logrus.Fields{
		"key":           key,
		"content_type":  contentType,
		"detected_type": detected.String(),
		"size":          len(file.Data),
	})
	if !detected.Is(contentType) {
		log.Warn("attachment content does not match its marker")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		ACL:         types.ObjectCannedACLPublicRead,
		Body:        bytes.NewReader(file.Data),
		Bucket:      aws.String(s.bucket),
		ContentType: aws.String(contentType),
		Key:         aws.String(key),
		Metadata:    map[string]string{"detected-content-type": detected.String()},
	})
	if err != nil {
		return "", apperror.Wrap(apperror.UploadFailed, "Upload error", fmt.Errorf("failed to upload to S3: %w", err))
	}

	log.Info("attachment uploaded")
	return key, nil
}

// Delete removes keys with a single DeleteObjects call.
// Keys S3 reports as failed are returned in a *DeleteError.
func (s *S3Service) Delete(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
	}

	output, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(false),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	if len(output.Errors) > 0 {
		deleteErr := &DeleteError{}
		for _, e := range output.Errors {
			key := aws.ToString(e.Key)
			deleteErr.Keys = append(deleteErr.Keys, key)
			deleteErr.Messages = append(deleteErr.Messages,
				fmt.Sprintf("%s: %s %s", key, aws.ToString(e.Code), aws.ToString(e.Message)))
		}
		return deleteErr
	}

	return nil
}
