package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"fabric-shop/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// S3API is the subset of the S3 client used by the repository.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Repository stores the document as a single JSON object in S3.
type s3Repository struct {
	client S3API
	bucket string
	key    string
	logger zerolog.Logger
}

// NewS3Client loads the default AWS configuration for region and returns an
// S3 client.
func NewS3Client(ctx context.Context, region string, logger zerolog.Logger) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().Str("region", region).Msg("S3 client initialised")

	return s3.NewFromConfig(cfg), nil
}

// NewS3Repository creates an S3-backed document repository. The object key is
// prefix + key + ".json".
func NewS3Repository(client S3API, bucket, prefix, key string, logger zerolog.Logger) DocumentRepository {
	return &s3Repository{
		client: client,
		bucket: bucket,
		key:    prefix + key + ".json",
		logger: logger.With().Str("repository", "s3").Logger(),
	}
}

// Load downloads and decodes the document object.
func (r *s3Repository) Load(ctx context.Context) (*model.Document, error) {
	result, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			r.logger.Debug().
				Str("bucket", r.bucket).
				Str("key", r.key).
				Msg("document object not found")
			return nil, ErrDocumentNotFound
		}
		r.logger.Error().
			Err(err).
			Str("bucket", r.bucket).
			Str("key", r.key).
			Msg("failed to get document object")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", r.bucket, r.key, err)
	}
	defer result.Body.Close()

	raw, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object %s: %w", r.key, err)
	}

	doc, err := DecodeDocument(raw)
	if err != nil {
		r.logger.Warn().Err(err).Str("key", r.key).Msg("stored document is corrupt")
		return nil, err
	}
	return doc, nil
}

// Save uploads the document object.
func (r *s3Repository) Save(ctx context.Context, doc *model.Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("bucket", r.bucket).
			Str("key", r.key).
			Msg("failed to put document object")
		return fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", r.bucket, r.key, err)
	}

	r.logger.Debug().
		Str("bucket", r.bucket).
		Str("key", r.key).
		Int("bytes", len(data)).
		Msg("document saved")

	return nil
}
