package artifact

import (
	"time"

	"github.com/Rrens/mock-analyst/internal/domain"
)

const (
	linePoints    = 12
	lineMinScore  = 3.8
	lineMaxScore  = 4.8
	scatterPoints = 50
)

// Chart returns a chart payload of the given subtype, or of a uniformly random
// subtype when none is requested.
func (g *Generator) Chart(subtype domain.ChartSubtype) *domain.ChartDescriptor {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch subtype {
	case domain.ChartBar, domain.ChartLine, domain.ChartPie, domain.ChartScatter:
	default:
		subtype = domain.ChartSubtypes[g.rng.IntN(len(domain.ChartSubtypes))]
	}

	switch subtype {
	case domain.ChartBar:
		return barChart()
	case domain.ChartLine:
		return g.lineChart()
	case domain.ChartPie:
		return pieChart()
	default:
		return g.scatterChart()
	}
}

func plugins(legendPosition, title string) map[string]any {
	return map[string]any{
		"legend": map[string]any{"position": legendPosition},
		"title":  map[string]any{"display": true, "text": title},
	}
}

func barChart() *domain.ChartDescriptor {
	return &domain.ChartDescriptor{
		Type:  domain.ChartBar,
		Title: "Revenue by Region - Q1 2024",
		Data: domain.ChartData{
			Labels: []string{"North America", "Europe", "Asia Pacific", "Latin America", "Africa"},
			Datasets: []domain.ChartDataset{{
				Label:           "Revenue (Millions $)",
				Data:            []float64{2.4, 1.8, 1.6, 0.9, 0.7},
				BackgroundColor: []string{"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6"},
			}},
		},
		Options: map[string]any{
			"responsive": true,
			"plugins":    plugins("top", "Revenue by Region - Q1 2024"),
		},
	}
}

// lineChart covers the trailing 12 months, oldest first. Caller holds g.mu.
func (g *Generator) lineChart() *domain.ChartDescriptor {
	now := g.now()
	labels := make([]string, linePoints)
	scores := make([]float64, linePoints)
	for i := 0; i < linePoints; i++ {
		month := now.Add(-time.Duration(linePoints-1-i) * 30 * 24 * time.Hour)
		labels[i] = month.Format("Jan 2006")
		scores[i] = round(g.uniform(lineMinScore, lineMaxScore), 1)
	}

	return &domain.ChartDescriptor{
		Type:  domain.ChartLine,
		Title: "Customer Satisfaction Trend - 12 Months",
		Data: domain.ChartData{
			Labels: labels,
			Datasets: []domain.ChartDataset{{
				Label:           "Satisfaction Score",
				Data:            scores,
				BorderColor:     "#3B82F6",
				BackgroundColor: "rgba(59, 130, 246, 0.1)",
				Fill:            true,
				Tension:         0.4,
			}},
		},
		Options: map[string]any{
			"responsive": true,
			"plugins":    plugins("top", "Customer Satisfaction Trend"),
			"scales": map[string]any{
				"y": map[string]any{"min": 3.0, "max": 5.0},
			},
		},
	}
}

func pieChart() *domain.ChartDescriptor {
	return &domain.ChartDescriptor{
		Type:  domain.ChartPie,
		Title: "Support Ticket Distribution - Q1 2024",
		Data: domain.ChartData{
			Labels: []string{"Technical Issues", "Account Questions", "Product Inquiries", "Feature Requests", "Bug Reports"},
			Datasets: []domain.ChartDataset{{
				Data:            []float64{31, 23, 18, 16, 12},
				BackgroundColor: []string{"#EF4444", "#F59E0B", "#10B981", "#3B82F6", "#8B5CF6"},
			}},
		},
		Options: map[string]any{
			"responsive": true,
			"plugins":    plugins("right", "Support Ticket Distribution"),
		},
	}
}

// scatterChart correlates order value with satisfaction. Caller holds g.mu.
func (g *Generator) scatterChart() *domain.ChartDescriptor {
	points := make([]domain.ScatterPoint, scatterPoints)
	for i := range points {
		x := g.uniform(1000, 10000)
		y := x*g.uniform(0.3, 0.7) + g.uniform(-500, 500)
		points[i] = domain.ScatterPoint{X: round(x, 2), Y: round(y, 2)}
	}

	axis := func(text string) map[string]any {
		return map[string]any{"title": map[string]any{"display": true, "text": text}}
	}

	return &domain.ChartDescriptor{
		Type:  domain.ChartScatter,
		Title: "Order Value vs Customer Satisfaction",
		Data: domain.ChartData{
			Datasets: []domain.ChartDataset{{
				Label:           "Customer Data Points",
				Data:            points,
				BackgroundColor: "#3B82F6",
				BorderColor:     "#1D4ED8",
			}},
		},
		Options: map[string]any{
			"responsive": true,
			"plugins":    plugins("top", "Order Value vs Customer Satisfaction"),
			"scales": map[string]any{
				"x": axis("Order Value ($)"),
				"y": axis("Satisfaction Score"),
			},
		},
	}
}
