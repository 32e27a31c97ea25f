package domain

// ResponseKind determines which canned artifact a query produces
type ResponseKind string

const (
	KindText     ResponseKind = "text"
	KindChart    ResponseKind = "chart"
	KindFile     ResponseKind = "file"
	KindProgress ResponseKind = "progress"
)

// ChartSubtype selects the chart shape for chart responses
type ChartSubtype string

const (
	ChartNone    ChartSubtype = ""
	ChartBar     ChartSubtype = "bar"
	ChartLine    ChartSubtype = "line"
	ChartPie     ChartSubtype = "pie"
	ChartScatter ChartSubtype = "scatter"
)

// ChartSubtypes lists every concrete chart shape
var ChartSubtypes = []ChartSubtype{ChartBar, ChartLine, ChartPie, ChartScatter}

// Classification is the outcome of classifying a query
type Classification struct {
	Kind         ResponseKind
	ChartSubtype ChartSubtype
}

// QueryRequest represents a natural-language query submission
type QueryRequest struct {
	UserQuery string `json:"user_query" validate:"required,max=4000"`
	UserEmail string `json:"user_email" validate:"required,email"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,max=128,excludesall=/\\"`
}

// QueryResponse is the immediate acknowledgment of a submitted query
type QueryResponse struct {
	SessionID    string        `json:"session_id"`
	Status       SessionStatus `json:"status"`
	Message      string        `json:"message"`
	ResponseType ResponseKind  `json:"response_type"`
	ChartType    ChartSubtype  `json:"chart_type,omitempty"`
}
