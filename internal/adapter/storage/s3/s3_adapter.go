package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/platform/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Config describes the image bucket.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL overrides the base of returned object URLs, e.g. a CDN
	// origin. Defaults to the endpoint URL.
	PublicURL string
}

func (c Config) missing() []string {
	var m []string
	if c.Endpoint == "" {
		m = append(m, "endpoint")
	}
	if c.AccessKey == "" {
		m = append(m, "access key")
	}
	if c.SecretKey == "" {
		m = append(m, "secret key")
	}
	if c.Bucket == "" {
		m = append(m, "bucket")
	}
	return m
}

// S3Storage stores images in an S3-compatible bucket through MinIO's client.
// A storage built from incomplete configuration is still usable as a value:
// every Upload fails with domain.ErrStorageNotConfigured.
type S3Storage struct {
	client     *minio.Client
	bucket     string
	publicBase string
	initErr    error
	logger     *logger.Logger
}

// NewS3Storage does not contact the server. It only fails when the client
// cannot be constructed from a complete configuration.
func NewS3Storage(cfg Config, log *logger.Logger) (*S3Storage, error) {
	log = log.Named("S3Storage")

	if missing := cfg.missing(); len(missing) > 0 {
		log.Warn("S3Storage: storage settings missing, uploads will fail", zap.Strings("missing", missing))
		return &S3Storage{
			bucket:  cfg.Bucket,
			initErr: fmt.Errorf("%w: missing %s", domain.ErrStorageNotConfigured, strings.Join(missing, ", ")),
			logger:  log,
		}, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Error("S3Storage: failed to create MinIO client", zap.String("endpoint", cfg.Endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	publicBase := strings.TrimRight(cfg.PublicURL, "/")
	if publicBase == "" {
		publicBase = client.EndpointURL().String()
	}

	log.Info("S3Storage: initialized", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket), zap.Bool("use_ssl", cfg.UseSSL))
	return &S3Storage{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: publicBase,
		logger:     log,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *S3Storage) EnsureBucket(ctx context.Context) error {
	if s.initErr != nil {
		return s.initErr
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		s.logger.Info("S3Storage: bucket already exists", zap.String("bucket", s.bucket))
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("S3Storage: bucket created", zap.String("bucket", s.bucket))
	return nil
}

// Upload writes data to objectName, replacing any existing object, and
// returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	if s.initErr != nil {
		return "", s.initErr
	}

	s.logger.Debug("S3Storage.Upload: uploading object",
		zap.String("bucket", s.bucket),
		zap.String("object", objectName),
		zap.Int("size_bytes", len(data)))

	info, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectName, s.bucket, err)
	}

	s.logger.Debug("S3Storage.Upload: object uploaded", zap.String("key", info.Key), zap.String("etag", info.ETag))
	return s.ObjectURL(objectName), nil
}

// ObjectURL is the public address of objectName: <base>/<bucket>/<object>.
func (s *S3Storage) ObjectURL(objectName string) string {
	segments := strings.Split(objectName, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicBase, url.PathEscape(s.bucket), strings.Join(segments, "/"))
}

// Download reads an object back. Used by integration checks and tooling.
func (s *S3Storage) Download(ctx context.Context, objectName string) ([]byte, error) {
	if s.initErr != nil {
		return nil, s.initErr
	}
	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, fmt.Errorf("read object %s: %w", objectName, err)
	}
	return buf.Bytes(), nil
}
