package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentKey(t *testing.T) {
	assert.Equal(t, "documents/doc-1/raw.txt", DocumentKey("", "doc-1", BlobRaw))
	assert.Equal(t, "documents/doc-1/clean.txt", DocumentKey("", "doc-1", BlobClean))
	assert.Equal(t, "tenant-a/documents/doc-1/annotated.txt", DocumentKey("tenant-a", "doc-1", BlobAnnotated))
	assert.Equal(t, "tenant-a/documents/doc-1/raw.txt", DocumentKey("tenant-a/", "doc-1", BlobRaw))
}

func TestValidateFileSize(t *testing.T) {
	assert.NoError(t, ValidateFileSize(10, 100))
	assert.Error(t, ValidateFileSize(0, 100))
	assert.Error(t, ValidateFileSize(-1, 100))
	assert.Error(t, ValidateFileSize(200, 100))
}

func TestCalculateHash(t *testing.T) {
	h1, err := CalculateHash(strings.NewReader("410 U.S. 113"))
	require.NoError(t, err)
	assert.Len(t, h1, 32)

	h2, err := CalculateHash(strings.NewReader("410 U.S. 113"))
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	h3, err := CalculateHash(strings.NewReader("347 U.S. 483"))
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestSanitizeStoragePath(t *testing.T) {
	assert.Equal(t, "documents/doc-1/raw.txt", SanitizeStoragePath("/documents/doc-1/raw.txt/"))
	assert.Equal(t, "documents/doc-1/raw.txt", SanitizeStoragePath("documents//doc-1//raw.txt"))
	assert.Equal(t, "documents/doc-1/raw.txt", SanitizeStoragePath("documents/doc-1/raw.txt"))
}
