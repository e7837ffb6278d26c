package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/tradeworks/backend/internal/infrastructure/render"
)

// Ensure StubObjectStorage satisfies the upload sink contract
var _ render.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage is an in-memory object store for tests and local
// development without an S3 backend.
type StubObjectStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string

	// FailUploads makes every Upload call return this error
	FailUploads error
}

// NewStubObjectStorage creates an empty in-memory store
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = "https://storage.local"
	}
	return &StubObjectStorage{
		objects: make(map[string][]byte),
		baseURL: baseURL,
	}
}

// Upload stores data in memory
func (s *StubObjectStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	if s.FailUploads != nil {
		return s.FailUploads
	}
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[key] = stored
	return nil
}

// Delete removes an object
func (s *StubObjectStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Exists checks if an object is stored
func (s *StubObjectStorage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// Get returns stored object bytes
func (s *StubObjectStorage) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// PublicURL derives the public URL for a stored key
func (s *StubObjectStorage) PublicURL(key string) string {
	return s.baseURL + "/" + key
}
