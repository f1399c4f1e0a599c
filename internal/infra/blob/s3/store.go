// Package s3 implements photo asset storage on an S3-compatible backend
// (AWS S3, MinIO, Yandex Object Storage). Objects are public-read; the
// returned URL is endpoint/bucket/key so the site can serve it directly.
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"shelfcore/internal/infra/blob/core"
)

var _ core.Store = (*Store)(nil)

// Config holds explicit construction parameters.
type Config struct {
	Endpoint        string // required; custom endpoints (MinIO, Yandex) supported
	Bucket          string // required
	Region          string // default us-east-1
	AccessKeyID     string // optional (falls back to default credentials chain)
	SecretAccessKey string // optional
	PathStyle       bool
}

// Store implements core.Store against a single public bucket.
type Store struct {
	client   api
	bucket   string
	endpoint string
	idFn     func() string
}

// api is the slice of the S3 client the store needs; tests supply a stub.
type api interface {
	PutObject(ctx context.Context, in *awss3.PutObjectInput, opts ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *awss3.DeleteObjectInput, opts ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
}

// New creates an S3 asset store from Config.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" || cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: s3 endpoint and bucket required", core.ErrNotConfigured)
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
	})
	return &Store{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		idFn:     uuid.NewString,
	}, nil
}

func (s *Store) Driver() core.Driver { return core.DriverS3 }

func (s *Store) Upload(ctx context.Context, folder string, r io.Reader, contentType string) (string, error) {
	key := s.idFn() + "." + core.ExtensionFor(contentType)
	if folder = strings.Trim(folder, "/"); folder != "" {
		key = folder + "/" + key
	}
	input := &awss3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   r,
		ACL:    types.ObjectCannedACLPublicRead,
	}
	if contentType != "" {
		input.ContentType = &contentType
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.publicURL(key), nil
}

// Delete removes the object behind publicURL. URLs not belonging to this
// endpoint and bucket are ignored.
func (s *Store) Delete(ctx context.Context, publicURL string) (bool, error) {
	key, ok := s.keyFromURL(publicURL)
	if !ok {
		return false, nil
	}
	if _, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{Bucket: &s.bucket, Key: &key}); err != nil {
		return false, fmt.Errorf("delete object %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) publicURL(key string) string {
	return s.endpoint + "/" + s.bucket + "/" + key
}

func (s *Store) keyFromURL(publicURL string) (string, bool) {
	prefix := s.endpoint + "/" + s.bucket + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(publicURL, prefix)
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	if key == "" {
		return "", false
	}
	return key, true
}
