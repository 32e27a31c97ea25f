package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/Rrens/mock-analyst/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadService_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	svc, err := NewUploadService(memory.NewUploadStore(), dir)
	require.NoError(t, err)

	file, err := svc.Save("Quarterly Sales.CSV", "text/csv", strings.NewReader("region,revenue\nnorth,10\n"))
	require.NoError(t, err)
	assert.NotEmpty(t, file.ID)
	assert.Equal(t, "Quarterly Sales.CSV", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, int64(24), file.Size)
	assert.Equal(t, filepath.Join(dir, file.ID+".csv"), file.Path)

	data, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	assert.Equal(t, "region,revenue\nnorth,10\n", string(data))

	stored, err := svc.Get(file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.Filename, stored.Filename)

	_, err = svc.Get("unknown")
	assert.ErrorIs(t, err, domain.ErrUploadNotFound)
}

func TestUploadService_IgnoresPathInFilename(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewUploadService(memory.NewUploadStore(), dir)
	require.NoError(t, err)

	file, err := svc.Save("../../evil.sh", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(file.Path))
}
