package model

import "time"

// FileInfo describes an uploaded file.
type FileInfo struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// UploadResponse is returned per uploaded file.
type UploadResponse struct {
	Message  string   `json:"message"`
	FileInfo FileInfo `json:"file_info"`
	FileURL  string   `json:"file_url,omitempty"`
}
