package services

import (
	"context"
	"fmt"
	"sync"
)

// MockDocumentStore is a mock implementation of DocumentStoreInterface for
// testing.
type MockDocumentStore struct {
	documents map[string][]byte // map of key to document content
	mu        sync.RWMutex

	// FailUpload makes UploadDocument fail when set.
	FailUpload bool
}

// NewMockDocumentStore creates a new mock document store.
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		documents: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global document store instance.
func (m *MockDocumentStore) SetAsMockForTesting() {
	SetDocumentStore(m)
}

// UploadDocument simulates storing a document.
func (m *MockDocumentStore) UploadDocument(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	if m.FailUpload {
		return "", upstream("s3", fmt.Errorf("injected upload failure"))
	}

	m.mu.Lock()
	m.documents[key] = append([]byte(nil), content...)
	m.mu.Unlock()

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s", key), nil
}

// GetPresignedURL simulates generating a presigned URL.
func (m *MockDocumentStore) GetPresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.documents[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("document not found in mock store: %s", key)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

// Document returns the stored content for a key, for assertions.
func (m *MockDocumentStore) Document(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.documents[key]
	return content, ok
}
