package service

import "github.com/Rrens/mock-analyst/internal/domain"

// Step is one named stage of a simulated analysis
type Step struct {
	Name    string
	Message string
}

const (
	StepFinished = "Finished"
	StepError    = "Error"

	finishedMessage    = "Response ready! Check your chat for the complete analysis."
	completionNotice   = "Analysis completed!"
	acknowledgeMessage = "Your request is being processed. Progress updates will be shown in real-time."
)

var (
	chartScript = []Step{
		{"Scanning databases", "Connecting to data sources and scanning available datasets..."},
		{"Analyzing data", "Processing and analyzing data patterns..."},
		{"Fetching relevant data", "Retrieving specific data points for visualization..."},
		{"Generating visualization", "Creating interactive chart based on analysis..."},
		{"Preparing response", "Finalizing response with insights and recommendations..."},
	}

	fileScript = []Step{
		{"Scanning databases", "Accessing database connections..."},
		{"Fetching relevant data", "Querying databases for requested information..."},
		{"Processing data", "Cleaning and formatting data for export..."},
		{"Generating file", "Creating downloadable file with processed data..."},
		{"Preparing download", "Finalizing file and preparing download link..."},
	}

	textScript = []Step{
		{"Scanning databases", "Connecting to data sources..."},
		{"Analyzing patterns", "Identifying trends and patterns in the data..."},
		{"Fetching insights", "Extracting key insights and metrics..."},
		{"Generating analysis", "Compiling comprehensive analysis report..."},
		{"Preparing response", "Formatting final response with recommendations..."},
	}
)

// Script returns the ordered simulation steps for a response kind.
// Progress-kind queries run the text script.
func Script(kind domain.ResponseKind) []Step {
	switch kind {
	case domain.KindChart:
		return chartScript
	case domain.KindFile:
		return fileScript
	default:
		return textScript
	}
}
