package services

import (
	"context"
	"fmt"
	"sync"
)

// MockTabularStore is an in-memory TabularStore for testing. It mirrors the
// key-addressed semantics of the sheets implementation, including append
// ordering.
type MockTabularStore struct {
	rows map[string][][]string // sheet name -> data rows
	mu   sync.RWMutex

	// FailNext, when set to an operation name ("read", "append", "update"),
	// makes the next matching call fail once.
	FailNext string
}

// NewMockTabularStore creates a new mock store with empty sheets.
func NewMockTabularStore() *MockTabularStore {
	return &MockTabularStore{
		rows: make(map[string][][]string),
	}
}

// SetAsMockForTesting installs this mock as the global store instance.
func (m *MockTabularStore) SetAsMockForTesting() {
	SetTabularStore(m)
}

// ReadRows returns a copy of the sheet's data rows in append order.
func (m *MockTabularStore) ReadRows(ctx context.Context, sheetName string) ([][]string, error) {
	if err := m.maybeFail("read"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := make([][]string, len(m.rows[sheetName]))
	for i, row := range m.rows[sheetName] {
		rows[i] = append([]string(nil), row...)
	}
	return rows, nil
}

// AppendRow appends a row to the named sheet.
func (m *MockTabularStore) AppendRow(ctx context.Context, sheetName string, row []string) error {
	if err := m.maybeFail("append"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows[sheetName] = append(m.rows[sheetName], append([]string(nil), row...))
	return nil
}

// UpdateCellByKey overwrites one cell in the row whose first column matches key.
func (m *MockTabularStore) UpdateCellByKey(ctx context.Context, sheetName, key string, column int, value string) error {
	if err := m.maybeFail("update"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, row := range m.rows[sheetName] {
		if len(row) > 0 && row[0] == key {
			for len(row) <= column {
				row = append(row, "")
			}
			row[column] = value
			m.rows[sheetName][i] = row
			return nil
		}
	}
	return ErrRowNotFound
}

// RowCount reports how many data rows a sheet holds.
func (m *MockTabularStore) RowCount(sheetName string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows[sheetName])
}

func (m *MockTabularStore) maybeFail(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNext == op {
		m.FailNext = ""
		return upstream("sheets", fmt.Errorf("injected %s failure", op))
	}
	return nil
}
