package ocr

import (
	"SimOCRBackend/pkg/response"
	"fmt"
	"net/http"
)

var (
	ErrFileRequired      = response.NewError(http.StatusUnprocessableEntity, "file: required")
	ErrEmptyFile         = response.NewError(http.StatusBadRequest, "uploaded file is empty")
	ErrFileTooLarge      = response.NewError(http.StatusRequestEntityTooLarge, "uploaded file is too large")
	ErrInvalidImage      = response.NewError(http.StatusBadRequest, "uploaded file is not a valid image")
	ErrRecognitionFailed = response.NewError(http.StatusInternalServerError, "Internal server error")
)

func ErrUnsupportedFileType(contentType string) error {
	return response.NewError(http.StatusBadRequest,
		fmt.Sprintf("unsupported file type: %s, only jpg/png/bmp/webp are allowed", contentType))
}
