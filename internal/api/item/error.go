package item

import (
	"SimOCRBackend/pkg/response"
	"net/http"
)

var (
	ErrItemNotFound       = response.NewError(http.StatusNotFound, "Item not found")
	ErrNotEnoughPermissions = response.NewError(http.StatusForbidden, "Not enough permissions")
)
