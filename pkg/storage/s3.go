package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appconfig "lexcite/internal/config"
)

// S3Store persists the raw document, its cleaned plain text, and the
// annotated output under a plain aws-sdk-go-v2/s3 bucket, one object per
// (document id, blob kind).
type S3Store struct {
	client    *s3.Client
	bucket    string
	region    string
	prefix    string
	maxUpload int64
}

// BlobKind names the three text artifacts GetCitations' pipeline produces
// for a document.
type BlobKind string

const (
	BlobRaw       BlobKind = "raw"
	BlobClean     BlobKind = "clean"
	BlobAnnotated BlobKind = "annotated"
)

// DocumentKey builds the storage key for one document's blob.
func DocumentKey(prefix, docID string, kind BlobKind) string {
	return SanitizeStoragePath(fmt.Sprintf("%s/documents/%s/%s.txt", prefix, docID, kind))
}

// NewS3Store builds an S3Store from an aws-sdk-go-v2 default config chain
// (env vars, shared config file, or instance role), using cfg.Storage for
// the bucket/region/prefix.
func NewS3Store(cfg *appconfig.Config) (*S3Store, error) {
	awsConfig, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(cfg.Storage.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Store{
		client:    s3.NewFromConfig(awsConfig),
		bucket:    cfg.Storage.Bucket,
		region:    cfg.Storage.Region,
		prefix:    cfg.Storage.Prefix,
		maxUpload: cfg.Processing.MaxTextSize,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, path string, content io.Reader, metadata *UploadMetadata) (*UploadResult, error) {
	contentType := "text/plain; charset=utf-8"
	var size int64
	if metadata != nil {
		if metadata.ContentType != "" {
			contentType = metadata.ContentType
		}
		size = metadata.Size
	}

	if size > 0 && s.maxUpload > 0 {
		if err := ValidateFileSize(size, s.maxUpload); err != nil {
			return nil, err
		}
	}

	putResult, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, NewStorageError("upload_failed", "failed to upload object", path, err)
	}

	return &UploadResult{
		Path:       path,
		URL:        s.GetURL(path),
		Size:       size,
		ETag:       aws.ToString(putResult.ETag),
		Success:    true,
		UploadedAt: time.Now(),
	}, nil
}

func (s *S3Store) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, NewStorageError("download_failed", "failed to download object", path, err)
	}
	return result.Body, nil
}

func (s *S3Store) Delete(ctx context.Context, path string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}); err != nil {
		return NewStorageError("delete_failed", "failed to delete object", path, err)
	}
	return nil
}

func (s *S3Store) GetURL(path string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, path)
}

func (s *S3Store) GetSignedURL(path string, expiration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.client)
	presignResult, err := presignClient.PresignGetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiration
	})
	if err != nil {
		return "", NewStorageError("sign_failed", "failed to generate signed URL", path, err)
	}
	return presignResult.URL, nil
}

func (s *S3Store) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) || strings.Contains(err.Error(), "NotFound") {
			return false, nil
		}
		return false, NewStorageError("exists_check_failed", "failed to check object existence", path, err)
	}
	return true, nil
}

func (s *S3Store) List(ctx context.Context, prefix string) ([]*StorageObject, error) {
	var objects []*StorageObject
	var continuationToken *string

	for {
		input := &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuationToken,
		}

		result, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, NewStorageError("list_failed", "failed to list objects", prefix, err)
		}

		for _, obj := range result.Contents {
			objects = append(objects, &StorageObject{
				Path:         aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
				ETag:         aws.ToString(obj.ETag),
			})
		}

		if !aws.ToBool(result.IsTruncated) {
			break
		}
		continuationToken = result.NextContinuationToken
	}

	return objects, nil
}

func (s *S3Store) IsHealthy() bool {
	_, err := s.client.ListObjectsV2(context.Background(), &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		MaxKeys: aws.Int32(1),
	})
	return err == nil
}

func (s *S3Store) GetMetrics() map[string]interface{} {
	return map[string]interface{}{
		"storage_type": "s3",
		"bucket":       s.bucket,
		"region":       s.region,
		"healthy":      s.IsHealthy(),
	}
}
