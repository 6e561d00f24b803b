package storage

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockService(t *testing.T) {
	service := NewMockService()
	assert.NotNil(t, service)
	assert.True(t, service.IsHealthy())
}

func TestMockService_UploadDownload(t *testing.T) {
	service := NewMockService()
	ctx := context.Background()
	path := DocumentKey("", "doc-1", BlobRaw)

	result, err := service.Upload(ctx, path, strings.NewReader("410 U.S. 113"), &UploadMetadata{ContentType: "text/plain"})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, path, result.Path)
	assert.EqualValues(t, len("410 U.S. 113"), result.Size)

	rc, err := service.Download(ctx, path)
	require.NoError(t, err)
	defer rc.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(rc)
	require.NoError(t, err)
	assert.Equal(t, "410 U.S. 113", buf.String())
}

func TestMockService_DownloadMissing(t *testing.T) {
	service := NewMockService()
	_, err := service.Download(context.Background(), "documents/missing/raw.txt")
	assert.Error(t, err)
}

func TestMockService_Delete(t *testing.T) {
	service := NewMockService()
	ctx := context.Background()
	path := DocumentKey("", "doc-1", BlobRaw)

	_, err := service.Upload(ctx, path, strings.NewReader("x"), nil)
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, path))

	exists, err := service.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Error(t, service.Delete(ctx, path))
}

func TestMockService_GetURL(t *testing.T) {
	service := NewMockService()
	assert.Contains(t, service.GetURL("documents/doc-1/raw.txt"), "documents/doc-1/raw.txt")
}

func TestMockService_GetSignedURL(t *testing.T) {
	service := NewMockService()
	ctx := context.Background()
	path := DocumentKey("", "doc-1", BlobRaw)

	_, err := service.GetSignedURL(path, time.Minute)
	assert.Error(t, err)

	_, err = service.Upload(ctx, path, strings.NewReader("x"), nil)
	require.NoError(t, err)

	url, err := service.GetSignedURL(path, time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "signed=1")
}

func TestMockService_List(t *testing.T) {
	service := NewMockService()
	ctx := context.Background()

	for _, kind := range []BlobKind{BlobRaw, BlobClean, BlobAnnotated} {
		_, err := service.Upload(ctx, DocumentKey("", "doc-1", kind), strings.NewReader("x"), nil)
		require.NoError(t, err)
	}
	_, err := service.Upload(ctx, DocumentKey("", "doc-2", BlobRaw), strings.NewReader("x"), nil)
	require.NoError(t, err)

	objects, err := service.List(ctx, "documents/doc-1/")
	require.NoError(t, err)
	assert.Len(t, objects, 3)
}

func TestMockService_HealthAndMetrics(t *testing.T) {
	service := NewMockService()
	assert.True(t, service.IsHealthy())

	metrics := service.GetMetrics()
	assert.Equal(t, "mock", metrics["storage_type"])
	assert.Equal(t, 0, metrics["object_count"])
}

func TestStorageError(t *testing.T) {
	err := NewStorageError("not_found", "object not found", "documents/doc-1/raw.txt", nil)
	assert.Equal(t, "object not found", err.Error())
	assert.Nil(t, err.Unwrap())

	wrapped := NewStorageError("upload_failed", "failed to upload", "documents/doc-1/raw.txt", assert.AnError)
	assert.Contains(t, wrapped.Error(), assert.AnError.Error())
	assert.Equal(t, assert.AnError, wrapped.Unwrap())
}
