package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

var ErrObjectNotFound = errors.New("object not found")

// Uploads stores the raw bytes of supporting documents.
type Uploads interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type memoryObject struct {
	contentType string
	data        []byte
}

// MemoryUploads keeps uploads in process memory. Used when no bucket is
// configured and in tests.
type MemoryUploads struct {
	mutex   sync.RWMutex
	objects map[string]memoryObject
}

func NewMemoryUploads() *MemoryUploads {
	return &MemoryUploads{
		objects: make(map[string]memoryObject),
	}
}

func (m *MemoryUploads) Put(_ context.Context, key string, body io.Reader, contentType string, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.objects[key] = memoryObject{contentType: contentType, data: data}
	return nil
}

func (m *MemoryUploads) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrObjectNotFound)
	}

	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (m *MemoryUploads) Delete(_ context.Context, key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.objects, key)
	return nil
}
