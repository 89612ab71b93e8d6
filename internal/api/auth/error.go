package auth

import (
	"SimOCRBackend/pkg/response"
	"net/http"
)

var (
	ErrUserNotFound          = response.NewError(http.StatusNotFound, "User not found")
	ErrUserWithEmailNotFound = response.NewError(http.StatusNotFound, "The user with this email does not exist in the system")
	ErrEmailAlreadyExists    = response.NewError(http.StatusConflict, "The user with this email already exists in the system")
	ErrIncorrectCredentials  = response.NewError(http.StatusBadRequest, "Incorrect email or password")
	ErrInactiveUser          = response.NewError(http.StatusBadRequest, "Inactive user")
	ErrInvalidToken          = response.NewError(http.StatusBadRequest, "Invalid token")
	ErrCouldNotValidate      = response.NewError(http.StatusUnauthorized, "Could not validate credentials")
	ErrNotEnoughPrivileges   = response.NewError(http.StatusForbidden, "The user doesn't have enough privileges")
	ErrIncorrectPassword     = response.NewError(http.StatusBadRequest, "Incorrect password")
	ErrPasswordSame          = response.NewError(http.StatusBadRequest, "New password cannot be the same as the current one")
	ErrSuperuserSelfDelete   = response.NewError(http.StatusForbidden, "Super users are not allowed to delete themselves")
	ErrEmailNotConfigured    = response.NewError(http.StatusServiceUnavailable, "Emails are not configured")
)
