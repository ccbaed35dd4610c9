// Package backup writes store snapshots to S3-compatible object storage.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/SscSPs/shop_ledger_app/internal/platform/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the part of the S3 client the exporter uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Exporter uploads snapshots under Prefix in Bucket.
type S3Exporter struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Exporter builds an S3 client from cfg. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies. A
// custom Endpoint (R2, MinIO) switches to path-style addressing.
func NewS3Exporter(ctx context.Context, cfg config.BackupConfig) (*S3Exporter, error) {
	if !cfg.Enabled() {
		return nil, errors.New("backup bucket is not configured")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3ExporterWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewS3ExporterWithClient wraps an existing client.
func NewS3ExporterWithClient(client PutObjectAPI, bucket, prefix string) *S3Exporter {
	return &S3Exporter{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Put uploads body as a JSON object and returns its s3:// location.
func (e *S3Exporter) Put(ctx context.Context, name string, body []byte) (string, error) {
	key := name
	if e.prefix != "" {
		key = path.Join(e.prefix, name)
	}

	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(e.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, e.bucket, err)
	}
	return fmt.Sprintf("s3://%s/%s", e.bucket, key), nil
}
