// Package storage uploads rental pictures to an S3-compatible object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/rentals/internal/common"
	sc "github.com/dmitrijs2005/rentals/internal/server/config"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in, optFns...)
	}
)

// ImageStore persists an image and returns the URL it is served from.
// Delete removes an object by the URL Upload returned.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, url string) error
}

// S3Store is an ImageStore backed by a single bucket.
type S3Store struct {
	config *sc.Config
	client *s3.Client
	now    func() time.Time
}

// NewS3Store builds the S3 client from cfg. Credentials are static; the
// endpoint can point at MinIO or any other S3-compatible service.
func NewS3Store(ctx context.Context, cfg *sc.Config) (*S3Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		}
		o.UsePathStyle = cfg.S3UsePathStyle
	})

	return &S3Store{config: cfg, client: client, now: time.Now}, nil
}

// StorageKey returns a fresh object key of the form
// rentals/<yyyy>/<mm>/<dd>/<uuid><ext>, keeping the extension of filename.
func StorageKey(now time.Time, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("rentals/%04d/%02d/%02d/%s%s", now.Year(), now.Month(), now.Day(), uuid.New(), ext)
}

// Upload puts body under a fresh key and returns its public URL. Failures
// wrap common.ErrorUploadFailed.
func (s *S3Store) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	bucket := s.config.S3Bucket
	key := StorageKey(s.now().UTC(), filename)

	in := &s3.PutObjectInput{
		Bucket:        &bucket,
		Key:           &key,
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := putObject(s.client, ctx, in); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorUploadFailed, err)
	}

	return s.config.PublicURL(key), nil
}

// Delete removes the object served at url. A URL outside this store's public
// base is rejected.
func (s *S3Store) Delete(ctx context.Context, url string) error {
	base := s.config.PublicURL("")
	key, ok := strings.CutPrefix(url, base)
	if !ok || key == "" {
		return fmt.Errorf("not an object of this store: %s", url)
	}

	bucket := s.config.S3Bucket
	if _, err := deleteObject(s.client, ctx, &s3.DeleteObjectInput{Bucket: &bucket, Key: &key}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
