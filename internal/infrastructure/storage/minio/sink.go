// Package minio stores output tables as CSV objects in S3-compatible
// storage.
package minio

import (
	"bytes"
	"context"
	"io"
	"path"
	"strconv"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/ghscrunch/internal/config"
	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

// ObjectAPI is the subset of *minio.Client the sink uses.
type ObjectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

const connectTimeout = 10 * time.Second

// Sink uploads each table to <prefix><dataset>/<name>.csv.
type Sink struct {
	client ObjectAPI
	bucket string
	prefix string
	logger logging.Logger
}

// NewSink connects to the endpoint in cfg and creates the bucket if missing.
func NewSink(ctx context.Context, cfg config.MinIOConfig, log logging.Logger) (*Sink, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSinkConnect, "failed to create minio client")
	}
	s := NewSinkWithClient(client, cfg.Bucket, cfg.Prefix, log)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := s.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}
	s.logger.Info("MinIO sink ready",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket),
		logging.Bool("ssl", cfg.UseSSL),
	)
	return s, nil
}

// NewSinkWithClient builds a Sink on an existing client.
func NewSinkWithClient(client ObjectAPI, bucket, prefix string, log logging.Logger) *Sink {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Sink{client: client, bucket: bucket, prefix: prefix, logger: log.Named("minio")}
}

func (s *Sink) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrap(err, errors.CodeSinkConnect, "failed to connect to minio").WithDetailf("bucket=%s", s.bucket)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return errors.Wrap(err, errors.CodeSinkConnect, "failed to create bucket").WithDetailf("bucket=%s", s.bucket)
	}
	s.logger.Info("Created bucket", logging.String("bucket", s.bucket))
	return nil
}

// ObjectName returns the object key of t.
func (s *Sink) ObjectName(t *table.Table) string {
	return s.prefix + path.Join(t.Dataset, t.Name+".csv")
}

func (s *Sink) Name() string { return "minio" }

func (s *Sink) Write(ctx context.Context, t *table.Table) error {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return errors.Wrap(err, errors.CodeSerialization, "failed to encode table").WithDetail(t.Key())
	}
	name := s.ObjectName(t)
	info, err := s.client.PutObject(ctx, s.bucket, name, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "text/csv; charset=utf-8",
		UserMetadata: map[string]string{
			"dataset": t.Dataset,
			"rows":    strconv.Itoa(t.Len()),
		},
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeSinkWrite, "failed to upload object").WithDetailf("object=%s", name)
	}
	s.logger.Debug("object uploaded", logging.String("object", name), logging.Int64("size", info.Size))
	return nil
}

func (s *Sink) Close() error { return nil }
