package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Sink stores rendered report files and returns where each one ended up.
type Sink interface {
	Store(ctx context.Context, name, contentType string, body []byte) (string, error)
}

// localSink implements Sink by writing files to a directory.
type localSink struct {
	dir    string
	logger zerolog.Logger
}

// NewLocalSink creates a sink writing to dir, creating it on first use.
func NewLocalSink(dir string, logger zerolog.Logger) Sink {
	return &localSink{
		dir:    dir,
		logger: logger.With().Str("component", "report-local-sink").Logger(),
	}
}

func (s *localSink) Store(ctx context.Context, name, _ string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error().Err(err).Str("dir", s.dir).Msg("failed to create report directory")
		return "", fmt.Errorf("failed to create report directory %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to write report")
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}

	s.logger.Info().Str("file", path).Int("bytes", len(body)).Msg("report written")
	return path, nil
}

// S3PutObjectAPI is the subset of the S3 client used for uploads.
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Sink implements Sink by uploading files to an S3 bucket.
type s3Sink struct {
	client S3PutObjectAPI
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Sink creates a sink uploading to bucket under prefix, using the default AWS credential chain.
func NewS3Sink(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Sink, error) {
	logger = logger.With().Str("component", "report-s3-sink").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 report sink initialised")

	return newS3Sink(s3.NewFromConfig(cfg), bucket, prefix, logger), nil
}

func newS3Sink(client S3PutObjectAPI, bucket, prefix string, logger zerolog.Logger) *s3Sink {
	return &s3Sink{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

func (s *s3Sink) Store(ctx context.Context, name, contentType string, body []byte) (string, error) {
	key := s.prefix + name

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", key).
		Int("bytes", len(body)).
		Msg("report uploaded to S3")

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// fallbackSink tries S3 first, then falls back to the local directory.
type fallbackSink struct {
	s3        Sink
	local     Sink
	s3Enabled bool
	logger    zerolog.Logger
}

// NewFallbackSink creates a sink that uploads to s3Sink when enabled and writes
// locally when S3 is disabled, missing or failing.
func NewFallbackSink(s3Sink, localSink Sink, s3Enabled bool, logger zerolog.Logger) Sink {
	return &fallbackSink{
		s3:        s3Sink,
		local:     localSink,
		s3Enabled: s3Enabled,
		logger:    logger.With().Str("component", "report-fallback-sink").Logger(),
	}
}

func (s *fallbackSink) Store(ctx context.Context, name, contentType string, body []byte) (string, error) {
	if s.s3Enabled && s.s3 != nil {
		location, err := s.s3.Store(ctx, name, contentType, body)
		if err == nil {
			return location, nil
		}

		s.logger.Warn().
			Err(err).
			Str("name", name).
			Msg("failed to upload report to S3, falling back to local file system")
	} else {
		s.logger.Debug().
			Bool("s3_enabled", s.s3Enabled).
			Bool("has_s3_sink", s.s3 != nil).
			Msg("S3 disabled or not configured, using local file system")
	}

	return s.local.Store(ctx, name, contentType, body)
}
