package memory

import (
	"sync"

	"github.com/Rrens/mock-analyst/internal/domain"
)

// UploadStore implements domain.UploadStore
type UploadStore struct {
	mu    sync.RWMutex
	files map[string]domain.UploadedFile
}

func NewUploadStore() *UploadStore {
	return &UploadStore{files: make(map[string]domain.UploadedFile)}
}

func (u *UploadStore) Save(file domain.UploadedFile) {
	u.mu.Lock()
	u.files[file.ID] = file
	u.mu.Unlock()
}

func (u *UploadStore) Get(id string) (*domain.UploadedFile, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	file, ok := u.files[id]
	if !ok {
		return nil, domain.ErrUploadNotFound
	}
	return &file, nil
}
