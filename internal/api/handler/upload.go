package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Rrens/mock-analyst/internal/api/response"
	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/Rrens/mock-analyst/internal/service"
	"github.com/go-chi/chi/v5"
)

const multipartMemory = 32 << 20

// UploadHandler handles file upload and download endpoints
type UploadHandler struct {
	uploadService *service.UploadService
	maxBytes      int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *service.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, maxBytes: maxBytes}
}

// Upload stores the multipart "file" field
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		response.BadRequest(w, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "no file uploaded")
		return
	}
	defer file.Close()

	uploaded, err := h.uploadService.Save(header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		response.InternalError(w, "failed to save file")
		return
	}

	response.OK(w, map[string]any{
		"file_id":  uploaded.ID,
		"filename": uploaded.Filename,
		"size":     uploaded.Size,
		"message":  fmt.Sprintf("File '%s' uploaded successfully", uploaded.Filename),
		"status":   "uploaded",
	})
}

// Download returns a synthetic link for any file id, with the upload's
// metadata when the id belongs to a stored upload
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	link := map[string]any{
		"message": fmt.Sprintf("Download link for file %s", fileID),
		"url":     fmt.Sprintf("/files/%s", fileID),
	}

	uploaded, err := h.uploadService.Get(fileID)
	switch {
	case err == nil:
		link["filename"] = uploaded.Filename
		link["content_type"] = uploaded.ContentType
		link["size"] = uploaded.Size
	case !errors.Is(err, domain.ErrUploadNotFound):
		response.FromError(w, err)
		return
	}

	response.OK(w, link)
}
