package domain

import (
	"time"
)

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message represents a chat message in a session. Messages are immutable once appended.
type Message struct {
	Role      MessageRole      `json:"type"`
	Content   string           `json:"content"`
	Chart     *ChartDescriptor `json:"chart_data,omitempty"`
	File      *FileDescriptor  `json:"file_info,omitempty"`
	CreatedAt time.Time        `json:"timestamp"`
}

// ChartDescriptor is a presentation payload for the frontend chart renderer
type ChartDescriptor struct {
	Type    ChartSubtype   `json:"type"`
	Title   string         `json:"title"`
	Data    ChartData      `json:"data"`
	Options map[string]any `json:"options"`
}

// ChartData holds labels and series for a chart
type ChartData struct {
	Labels   []string       `json:"labels,omitempty"`
	Datasets []ChartDataset `json:"datasets"`
}

// ChartDataset is one series. Data is []float64 for bar, line and pie charts
// and []ScatterPoint for scatter charts.
type ChartDataset struct {
	Label           string  `json:"label,omitempty"`
	Data            any     `json:"data"`
	BackgroundColor any     `json:"backgroundColor,omitempty"`
	BorderColor     string  `json:"borderColor,omitempty"`
	Fill            bool    `json:"fill,omitempty"`
	Tension         float64 `json:"tension,omitempty"`
}

// ScatterPoint is a single scatter chart point
type ScatterPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FileDescriptor describes a synthetic downloadable report
type FileDescriptor struct {
	Filename    string `json:"filename"`
	DownloadID  string `json:"download_id"`
	DownloadURL string `json:"download_url"`
	FileType    string `json:"file_type"`
	FileSize    string `json:"file_size"`
}
