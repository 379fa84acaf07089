// Package reliability archives optimizer snapshots to S3-compatible object storage.
package reliability

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/aristath/eurogenius/internal/config"
)

const (
	snapshotKeyPrefix = "eurogenius-snapshot-"
	snapshotKeySuffix = ".msgpack.gz"
	snapshotKeyLayout = "2006-01-02-150405"
)

// Uploader is the subset of the S3 upload manager the archiver needs
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// SnapshotArchiver uploads compressed snapshot files after each training
type SnapshotArchiver struct {
	uploader Uploader
	bucket   string
	log      zerolog.Logger
}

// NewSnapshotArchiver creates an archiver over an existing uploader
func NewSnapshotArchiver(uploader Uploader, bucket string, log zerolog.Logger) *SnapshotArchiver {
	return &SnapshotArchiver{
		uploader: uploader,
		bucket:   bucket,
		log:      log.With().Str("service", "snapshot_archiver").Logger(),
	}
}

// NewS3SnapshotArchiver builds an S3 client from cfg. A custom endpoint
// (R2, MinIO) switches the client to path-style addressing.
func NewS3SnapshotArchiver(ctx context.Context, cfg config.ArchiveConfig, log zerolog.Logger) (*SnapshotArchiver, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("snapshot archive bucket is not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewSnapshotArchiver(manager.NewUploader(client), cfg.Bucket, log), nil
}

// ArchiveSnapshot gzips the snapshot file at path and uploads it under a key
// derived from trainedAt
func (a *SnapshotArchiver) ArchiveSnapshot(ctx context.Context, path string, trainedAt time.Time) error {
	startTime := time.Now()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := io.Copy(gz, file); err != nil {
		return fmt.Errorf("failed to compress snapshot: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to compress snapshot: %w", err)
	}

	key := SnapshotKey(trainedAt)
	size := int64(buf.Len())

	_, err = a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:          aws.String(a.bucket),
		Key:             aws.String(key),
		Body:            bytes.NewReader(buf.Bytes()),
		ContentType:     aws.String("application/msgpack"),
		ContentEncoding: aws.String("gzip"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot to %s: %w", a.bucket, err)
	}

	a.log.Info().
		Str("key", key).
		Int64("size_bytes", size).
		Dur("duration_ms", time.Since(startTime)).
		Msg("Snapshot archived")

	return nil
}

// SnapshotKey returns the object key for a snapshot trained at t (UTC)
func SnapshotKey(t time.Time) string {
	return snapshotKeyPrefix + t.UTC().Format(snapshotKeyLayout) + snapshotKeySuffix
}

// ParseSnapshotKey extracts the training time from an object key
func ParseSnapshotKey(key string) (time.Time, error) {
	if !strings.HasPrefix(key, snapshotKeyPrefix) || !strings.HasSuffix(key, snapshotKeySuffix) {
		return time.Time{}, fmt.Errorf("not a snapshot key: %s", key)
	}
	ts := strings.TrimSuffix(strings.TrimPrefix(key, snapshotKeyPrefix), snapshotKeySuffix)
	t, err := time.Parse(snapshotKeyLayout, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp from %s: %w", key, err)
	}
	return t, nil
}
