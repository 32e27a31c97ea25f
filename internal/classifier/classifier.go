// Package classifier maps free-text queries to canned response kinds using
// priority-ordered keyword tables.
package classifier

import (
	"strings"

	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/elliotchance/pie/v2"
)

// DefaultKind is returned when no keyword table matches
const DefaultKind = domain.KindChart

type kindRule struct {
	kind     domain.ResponseKind
	keywords []string
}

type chartRule struct {
	subtype  domain.ChartSubtype
	keywords []string
}

// Evaluated in order; the first matching table wins. File must precede chart so
// that "export chart" resolves to a file download.
var kindRules = []kindRule{
	{domain.KindFile, []string{"excel", "download", "export", "spreadsheet", "csv file", "generate report"}},
	{domain.KindProgress, []string{"status", "progress", "processing", "loading"}},
	{domain.KindChart, []string{"chart", "graph", "plot", "visualize", "bar chart", "line chart", "pie chart", "scatter plot"}},
	{domain.KindText, []string{"analyze", "summary", "insights", "findings", "report", "analysis"}},
}

var chartRules = []chartRule{
	{domain.ChartBar, []string{"bar chart", "bar graph", "column chart", "histogram"}},
	{domain.ChartLine, []string{"line chart", "line graph", "trend", "time series"}},
	{domain.ChartPie, []string{"pie chart", "pie graph", "donut", "distribution"}},
	{domain.ChartScatter, []string{"scatter plot", "scatter chart", "correlation", "scatter"}},
}

// Classify returns the response kind for a query and, for chart queries, the
// requested chart subtype (ChartNone when the query names none).
func Classify(query string) domain.Classification {
	q := strings.ToLower(query)

	kind := DefaultKind
	for _, rule := range kindRules {
		if containsAny(q, rule.keywords) {
			kind = rule.kind
			break
		}
	}

	result := domain.Classification{Kind: kind}
	if kind == domain.KindChart {
		result.ChartSubtype = ChartSubtype(query)
	}
	return result
}

// ChartSubtype extracts the requested chart shape from a query
func ChartSubtype(query string) domain.ChartSubtype {
	q := strings.ToLower(query)
	for _, rule := range chartRules {
		if containsAny(q, rule.keywords) {
			return rule.subtype
		}
	}
	return domain.ChartNone
}

func containsAny(q string, keywords []string) bool {
	return pie.FindFirstUsing(keywords, func(k string) bool {
		return strings.Contains(q, k)
	}) >= 0
}
