package storage

import (
	"crypto/md5"
	"fmt"
	"io"
	"strings"
)

// ValidateFileSize checks that size falls within (0, maxSize].
func ValidateFileSize(size int64, maxSize int64) error {
	if size <= 0 {
		return NewStorageError("invalid_size", "content size must be greater than 0", "", nil)
	}
	if size > maxSize {
		return NewStorageError("content_too_large", fmt.Sprintf("content size %d bytes exceeds maximum %d bytes", size, maxSize), "", nil)
	}
	return nil
}

// CalculateHash computes the MD5 digest of content as a hex string.
func CalculateHash(content io.Reader) (string, error) {
	hash := md5.New()
	if _, err := io.Copy(hash, content); err != nil {
		return "", NewStorageError("hash_failed", "failed to calculate hash", "", err)
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

// SanitizeStoragePath trims slashes and collapses doubled separators.
func SanitizeStoragePath(path string) string {
	path = strings.Trim(path, "/")
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	return path
}
