package artifact

import (
	"fmt"
	"time"

	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/google/uuid"
)

// FileExtensions are the synthetic report formats
var FileExtensions = []string{"xlsx", "pdf", "csv"}

// File returns a synthetic downloadable report descriptor
func (g *Generator) File() *domain.FileDescriptor {
	g.mu.Lock()
	ext := FileExtensions[g.rng.IntN(len(FileExtensions))]
	// report date within the past year
	date := g.now().Add(-time.Duration(g.rng.IntN(365)) * 24 * time.Hour)
	size := 100 + g.rng.IntN(4901)
	g.mu.Unlock()

	id := uuid.NewString()
	return &domain.FileDescriptor{
		Filename:    fmt.Sprintf("analysis_report_%s.%s", date.Format("2006-01-02"), ext),
		DownloadID:  id,
		DownloadURL: "/api/download/" + id,
		FileType:    ext,
		FileSize:    fmt.Sprintf("%d KB", size),
	}
}
