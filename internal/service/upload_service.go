package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxFileSize is the per-file upload limit.
	MaxFileSize = 10 << 20 // 10MB
	// MaxFilesPerRequest caps multi-file uploads.
	MaxFilesPerRequest = 5
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".pdf":  true,
	".txt":  true,
	".docx": true,
	".xlsx": true,
}

var (
	// ErrNoFilename is returned for uploads without a file name.
	ErrNoFilename = errors.New("no file name provided")
	// ErrExtensionNotAllowed is returned for disallowed file types.
	ErrExtensionNotAllowed = errors.New("file type not allowed")
	// ErrFileTooLarge is returned when a file exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")
)

// UploadService validates uploads and stores them on local disk under
// generated unique names.
type UploadService struct {
	dir string
}

// NewUploadService ensures the upload directory exists.
func NewUploadService(dir string) (*UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadService{dir: dir}, nil
}

// Validate checks the original filename against the extension allow-list.
func (s *UploadService) Validate(filename string) error {
	if filename == "" {
		return ErrNoFilename
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return ErrExtensionNotAllowed
	}
	return nil
}

// Save stores content under a fresh unique name and returns that name.
func (s *UploadService) Save(filename string, content []byte) (string, error) {
	if int64(len(content)) > MaxFileSize {
		return "", ErrFileTooLarge
	}
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}
	return name, nil
}

// AllowedExtensions returns the allow-list in stable order.
func (s *UploadService) AllowedExtensions() []string {
	out := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
