// Package bundlestore publishes exported slideshow bundles to an
// S3-compatible bucket so they can be shared by link instead of being
// downloaded through the browser only.
package bundlestore

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Store wraps the S3 client with bundle-specific functionality
type Store struct {
	s3Client *s3.Client
	config   *Config
}

// NewStore creates a new bundle store client
func NewStore(cfg *Config) (*Store, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("bundle store is disabled")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// Backblaze B2 needs path-style URLs and no acceleration
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	store := &Store{
		s3Client: s3Client,
		config:   cfg,
	}

	if err := store.testConnection(); err != nil {
		return nil, fmt.Errorf("failed to connect to S3: %w", err)
	}

	log.Infof("[BundleStore] Successfully initialized S3 client for bucket: %s", cfg.BucketName)
	return store, nil
}

// testConnection checks that the configured bucket is reachable
func (s *Store) testConnection() error {
	_, err := s.s3Client.HeadBucket(context.Background(), &s3.HeadBucketInput{
		Bucket: aws.String(s.config.BucketName),
	})
	if err != nil {
		return fmt.Errorf("bucket %s not accessible: %w", s.config.BucketName, err)
	}
	return nil
}

// PublishResult describes a published bundle
type PublishResult struct {
	ObjectKey  string
	Size       int64
	UploadedAt time.Time
}

// Publish uploads a bundle and returns its object key. Keys follow the
// pattern slideshows/<collection-id>/<uuid>.zip so re-exports of the
// same collection never overwrite each other.
func (s *Store) Publish(ctx context.Context, collectionID uint, bundle []byte) (*PublishResult, error) {
	objectKey := fmt.Sprintf("slideshows/%d/%s.zip", collectionID, uuid.New().String())

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.BucketName),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(bundle),
		ContentType:   aws.String("application/zip"),
		ContentLength: aws.Int64(int64(len(bundle))),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload bundle %s: %w", objectKey, err)
	}

	log.Infof("[BundleStore] Published bundle %s (%d bytes)", objectKey, len(bundle))
	return &PublishResult{
		ObjectKey:  objectKey,
		Size:       int64(len(bundle)),
		UploadedAt: time.Now(),
	}, nil
}

// Delete removes a published bundle
func (s *Store) Delete(ctx context.Context, objectKey string) error {
	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.BucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete bundle %s: %w", objectKey, err)
	}
	return nil
}
