package storage

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockService is an in-memory Service used by tests; cmd/server runs with
// no storage, not this mock, when S3 is unavailable.
type MockService struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMockService builds an empty in-memory store.
func NewMockService() *MockService {
	return &MockService{objects: make(map[string][]byte)}
}

func (m *MockService) Upload(_ context.Context, path string, content io.Reader, metadata *UploadMetadata) (*UploadResult, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, NewStorageError("upload_failed", "failed to read content", path, err)
	}

	m.mu.Lock()
	m.objects[path] = data
	m.mu.Unlock()

	size := int64(len(data))
	if metadata != nil && metadata.Size > 0 {
		size = metadata.Size
	}

	return &UploadResult{
		Path:       path,
		URL:        m.GetURL(path),
		Size:       size,
		Success:    true,
		UploadedAt: time.Now(),
	}, nil
}

func (m *MockService) Download(_ context.Context, path string) (io.ReadCloser, error) {
	m.mu.RLock()
	data, ok := m.objects[path]
	m.mu.RUnlock()
	if !ok {
		return nil, NewStorageError("not_found", "object not found", path, nil)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MockService) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[path]; !ok {
		return NewStorageError("not_found", "object not found", path, nil)
	}
	delete(m.objects, path)
	return nil
}

func (m *MockService) GetURL(path string) string {
	return "mock://lexcite/" + path
}

func (m *MockService) GetSignedURL(path string, _ time.Duration) (string, error) {
	m.mu.RLock()
	_, ok := m.objects[path]
	m.mu.RUnlock()
	if !ok {
		return "", NewStorageError("not_found", "object not found", path, nil)
	}
	return m.GetURL(path) + "?signed=1", nil
}

func (m *MockService) Exists(_ context.Context, path string) (bool, error) {
	m.mu.RLock()
	_, ok := m.objects[path]
	m.mu.RUnlock()
	return ok, nil
}

func (m *MockService) List(_ context.Context, prefix string) ([]*StorageObject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*StorageObject
	for path, data := range m.objects {
		if strings.HasPrefix(path, prefix) {
			out = append(out, &StorageObject{Path: path, Size: int64(len(data)), LastModified: time.Now()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (m *MockService) IsHealthy() bool { return true }

func (m *MockService) GetMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]interface{}{
		"storage_type": "mock",
		"object_count": len(m.objects),
		"healthy":      true,
	}
}
