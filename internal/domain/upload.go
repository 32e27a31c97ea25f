package domain

import "time"

// UploadedFile is the bookkeeping record of a user upload
type UploadedFile struct {
	ID          string    `json:"file_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Path        string    `json:"-"`
	UploadedAt  time.Time `json:"upload_time"`
}

// UploadStore defines upload metadata bookkeeping
type UploadStore interface {
	Save(file UploadedFile)
	Get(id string) (*UploadedFile, error)
}
