package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/billing/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Archive keeps a copy of rendered documents
type Archive interface {
	Store(ctx context.Context, key string, content []byte, contentType string) error
}

// s3API is the subset of the S3 client used by S3Archive
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// S3Archive stores documents in an S3-compatible bucket (AWS S3, MinIO, RustFS)
type S3Archive struct {
	client s3API
	bucket string
	logger *zap.Logger
}

// NewS3Archive builds an S3 client with static credentials from cfg
func NewS3Archive(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*S3Archive, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("storage credentials are required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(normalizeEndpoint(cfg.Endpoint))
		}
	})
	return newS3Archive(client, cfg.Bucket, logger), nil
}

func newS3Archive(client s3API, bucket string, logger *zap.Logger) *S3Archive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3Archive{client: client, bucket: bucket, logger: logger}
}

func normalizeEndpoint(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return "https://" + endpoint
}

// EnsureBucket creates the bucket if it doesn't exist
func (a *S3Archive) EnsureBucket(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(a.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	a.logger.Info("Creating document bucket", zap.String("bucket", a.bucket))
	_, err = a.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(a.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Store uploads content under key, overwriting any previous copy
func (a *S3Archive) Store(ctx context.Context, key string, content []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(content))),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	a.logger.Debug("document archived", zap.String("bucket", a.bucket), zap.String("key", key))
	return nil
}

// StoredDocument is a document held by MemoryArchive
type StoredDocument struct {
	Content     []byte
	ContentType string
}

// MemoryArchive keeps documents in process memory
type MemoryArchive struct {
	mu   sync.RWMutex
	docs map[string]StoredDocument
}

// NewMemoryArchive creates an empty MemoryArchive
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{docs: make(map[string]StoredDocument)}
}

// Store keeps a copy of content under key
func (a *MemoryArchive) Store(_ context.Context, key string, content []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.docs[key] = StoredDocument{Content: bytes.Clone(content), ContentType: contentType}
	return nil
}

// Get returns the document stored under key
func (a *MemoryArchive) Get(key string) (StoredDocument, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	doc, ok := a.docs[key]
	return doc, ok
}

// Len returns the number of stored documents
func (a *MemoryArchive) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.docs)
}

var (
	_ Archive = (*S3Archive)(nil)
	_ Archive = (*MemoryArchive)(nil)
)
