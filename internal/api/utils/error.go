package utils

import (
	"SimOCRBackend/pkg/response"
	"net/http"
)

var (
	ErrEmailNotConfigured = response.NewError(http.StatusServiceUnavailable, "Emails are not configured")
)
