package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"demoapi/internal/model"
	"demoapi/internal/service"
)

// FileHandler handles file upload endpoints.
type FileHandler struct {
	uploads *service.UploadService
}

// NewFileHandler creates a new file handler.
func NewFileHandler(uploads *service.UploadService) *FileHandler {
	return &FileHandler{uploads: uploads}
}

// UploadSingle godoc
// @Summary Upload a single file
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 200 {object} model.UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /upload/single [post]
func (h *FileHandler) UploadSingle(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	resp, err := h.storeFile(header)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// UploadMultiple godoc
// @Summary Upload multiple files
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param files formData file true "Files to upload"
// @Success 200 {array} model.UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /upload/multiple [post]
func (h *FileHandler) UploadMultiple(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form is required")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one file is required")
	}
	if len(files) > service.MaxFilesPerRequest {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("maximum %d files allowed per request", service.MaxFilesPerRequest))
	}

	responses := make([]model.UploadResponse, 0, len(files))
	for _, header := range files {
		resp, err := h.storeFile(header)
		if err != nil {
			// Per-file failures do not abort the batch.
			responses = append(responses, model.UploadResponse{
				Message: fmt.Sprintf("error uploading %s: %v", header.Filename, err),
				FileInfo: model.FileInfo{
					Filename:   header.Filename,
					Size:       header.Size,
					UploadedAt: time.Now().UTC(),
				},
			})
			continue
		}
		responses = append(responses, *resp)
	}
	return c.JSON(http.StatusOK, responses)
}

// Info godoc
// @Summary Get upload constraints
// @Tags upload
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /upload/info [get]
func (h *FileHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"max_file_size_mb":      service.MaxFileSize / 1024 / 1024,
		"allowed_extensions":    h.uploads.AllowedExtensions(),
		"max_files_per_request": service.MaxFilesPerRequest,
	})
}

func (h *FileHandler) storeFile(header *multipart.FileHeader) (*model.UploadResponse, error) {
	if err := h.uploads.Validate(header.Filename); err != nil {
		return nil, err
	}
	if header.Size > service.MaxFileSize {
		return nil, service.ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, service.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	stored, err := h.uploads.Save(header.Filename, content)
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &model.UploadResponse{
		Message: "file uploaded successfully",
		FileInfo: model.FileInfo{
			Filename:    header.Filename,
			ContentType: contentType,
			Size:        int64(len(content)),
			UploadedAt:  time.Now().UTC(),
		},
		FileURL: "/files/" + stored,
	}, nil
}
