package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// UploadService stores user uploads on disk and tracks their metadata
type UploadService struct {
	store domain.UploadStore
	dir   string
}

// NewUploadService creates the upload directory if needed
func NewUploadService(store domain.UploadStore, dir string) (*UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &UploadService{store: store, dir: dir}, nil
}

// Save copies r to the upload directory under a generated id
func (s *UploadService) Save(filename, contentType string, r io.Reader) (*domain.UploadedFile, error) {
	id := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	destPath := filepath.Join(s.dir, id+ext)

	dst, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, r)
	if err != nil {
		os.Remove(destPath)
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}

	file := domain.UploadedFile{
		ID:          id,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		Path:        destPath,
		UploadedAt:  time.Now(),
	}
	s.store.Save(file)

	log.Info().Str("file_id", id).Str("filename", filename).Int64("size", size).Msg("file uploaded")
	return &file, nil
}

func (s *UploadService) Get(id string) (*domain.UploadedFile, error) {
	return s.store.Get(id)
}
