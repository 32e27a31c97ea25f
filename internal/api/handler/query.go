package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Rrens/mock-analyst/internal/api/response"
	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/Rrens/mock-analyst/internal/service"
)

// QueryHandler handles query submission
type QueryHandler struct {
	queryService *service.QueryService
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(queryService *service.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

// Submit accepts a query and acknowledges it before the analysis runs
func (h *QueryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.queryService.Submit(r.Context(), req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, result)
}
