package media

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockUploader keeps uploads in memory for development and tests.
type MockUploader struct {
	mu     sync.Mutex
	assets map[string]File
}

func NewMockUploader() *MockUploader {
	return &MockUploader{assets: make(map[string]File)}
}

func (m *MockUploader) Upload(_ context.Context, files []File) ([]Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	assets := make([]Asset, 0, len(files))
	for _, f := range files {
		publicID := uuid.NewString()
		m.assets[publicID] = f
		assets = append(assets, Asset{
			URL:      fmt.Sprintf("https://media.invalid/%s/%s", publicID, f.Name),
			PublicID: publicID,
		})
	}
	return assets, nil
}

func (m *MockUploader) Destroy(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.assets, publicID)
	return nil
}

// Stored reports whether a public id still exists, for tests.
func (m *MockUploader) Stored(publicID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.assets[publicID]
	return ok
}
