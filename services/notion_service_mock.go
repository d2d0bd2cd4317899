package services

import (
	"context"
	"sync"
	"time"
)

// MockWorkspaceLog is a mock implementation of WorkspaceLogInterface for
// testing.
type MockWorkspaceLog struct {
	entries []ActivityEntry
	mu      sync.RWMutex
}

// NewMockWorkspaceLog creates a new mock workspace log.
func NewMockWorkspaceLog() *MockWorkspaceLog {
	return &MockWorkspaceLog{}
}

// SetAsMockForTesting sets this mock as the global workspace log instance.
func (m *MockWorkspaceLog) SetAsMockForTesting() {
	SetWorkspaceLog(m)
}

// LogActivity records the entry in memory.
func (m *MockWorkspaceLog) LogActivity(ctx context.Context, title, detail string) error {
	m.mu.Lock()
	m.entries = append(m.entries, ActivityEntry{
		Title:     title,
		Detail:    detail,
		CreatedAt: time.Now(),
	})
	m.mu.Unlock()
	return nil
}

// RecentActivity returns recorded entries, newest first.
func (m *MockWorkspaceLog) RecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]ActivityEntry, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0 && len(entries) < limit; i-- {
		entries = append(entries, m.entries[i])
	}
	return entries, nil
}

// Entries returns a copy of everything logged, in append order.
func (m *MockWorkspaceLog) Entries() []ActivityEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]ActivityEntry(nil), m.entries...)
}
