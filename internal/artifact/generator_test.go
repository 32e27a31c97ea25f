package artifact

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator() *Generator {
	fixed := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	return NewGeneratorWithSource(rand.NewPCG(1, 2), func() time.Time { return fixed })
}

func TestGenerator_Text(t *testing.T) {
	g := newTestGenerator()
	for i := 0; i < 20; i++ {
		assert.Contains(t, textReports, g.Text())
	}
}

func TestGenerator_ChartRequestedSubtype(t *testing.T) {
	g := newTestGenerator()
	for _, subtype := range domain.ChartSubtypes {
		chart := g.Chart(subtype)
		require.NotNil(t, chart)
		assert.Equal(t, subtype, chart.Type)
		assert.NotEmpty(t, chart.Title)
		assert.Len(t, chart.Data.Datasets, 1)
	}
}

func TestGenerator_ChartRandomSubtype(t *testing.T) {
	g := newTestGenerator()
	seen := map[domain.ChartSubtype]bool{}
	for i := 0; i < 200; i++ {
		seen[g.Chart(domain.ChartNone).Type] = true
	}
	assert.Len(t, seen, len(domain.ChartSubtypes))
}

func TestGenerator_LineChart(t *testing.T) {
	g := newTestGenerator()
	chart := g.Chart(domain.ChartLine)

	require.Len(t, chart.Data.Labels, 12)
	scores, ok := chart.Data.Datasets[0].Data.([]float64)
	require.True(t, ok)
	require.Len(t, scores, 12)
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 3.8)
		assert.LessOrEqual(t, s, 4.8)
	}

	// oldest month first, current month last
	assert.Equal(t, "Jun 2024", chart.Data.Labels[11])
	first, err := time.Parse("Jan 2006", chart.Data.Labels[0])
	require.NoError(t, err)
	last, err := time.Parse("Jan 2006", chart.Data.Labels[11])
	require.NoError(t, err)
	assert.True(t, first.Before(last))
}

func TestGenerator_ScatterChart(t *testing.T) {
	g := newTestGenerator()
	chart := g.Chart(domain.ChartScatter)

	points, ok := chart.Data.Datasets[0].Data.([]domain.ScatterPoint)
	require.True(t, ok)
	require.Len(t, points, 50)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.X, 1000.0)
		assert.LessOrEqual(t, p.X, 10000.0)
		assert.GreaterOrEqual(t, p.Y, p.X*0.3-500-0.01)
		assert.LessOrEqual(t, p.Y, p.X*0.7+500+0.01)
		assert.Equal(t, p.X, round(p.X, 2))
	}
}

func TestGenerator_StaticCharts(t *testing.T) {
	g := newTestGenerator()

	bar := g.Chart(domain.ChartBar)
	assert.Equal(t, []float64{2.4, 1.8, 1.6, 0.9, 0.7}, bar.Data.Datasets[0].Data)

	pie := g.Chart(domain.ChartPie)
	assert.Equal(t, []float64{31, 23, 18, 16, 12}, pie.Data.Datasets[0].Data)
	assert.Len(t, pie.Data.Labels, 5)
}

func TestGenerator_File(t *testing.T) {
	g := newTestGenerator()
	for i := 0; i < 30; i++ {
		f := g.File()
		assert.Contains(t, FileExtensions, f.FileType)
		assert.True(t, strings.HasPrefix(f.Filename, "analysis_report_"))
		assert.True(t, strings.HasSuffix(f.Filename, "."+f.FileType))
		assert.Equal(t, "/api/download/"+f.DownloadID, f.DownloadURL)
		assert.True(t, strings.HasSuffix(f.FileSize, " KB"))
	}
}
