package handlerUtil

import (
	"SimOCRBackend/pkg/log"
	"SimOCRBackend/pkg/response"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

const (
	internalServerError = "Internal server error"
	TraceIDHeader       = "X-Trace-ID"
)

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle writes err as an envelope. Domain errors keep their status and
// message, anything else becomes a 500 without leaking details.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")

		return c.Status(respErr.Code).JSON(response.Fail(respErr.Code, respErr.Error()))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       fiberErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with framework error")

		return c.Status(fiberErr.Code).JSON(response.Fail(fiberErr.Code, fiberErr.Message))
	}

	traceID := log.ErrorWithTraceID(h.logger, log.Fields{
		log.RequestIDKey: requestID,
		"error":          err.Error(),
		"path":           path,
		"operation":      operation,
	}, "Unexpected error")
	c.Set(TraceIDHeader, traceID)

	return c.Status(fiber.StatusInternalServerError).JSON(response.Fail(fiber.StatusInternalServerError, internalServerError))
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusUnprocessableEntity).
		JSON(response.Fail(fiber.StatusUnprocessableEntity, ValidationMessage(err)))
}

// ValidationMessage flattens validator errors to "field: tag" pairs joined
// by "; ".
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+": "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}

func (h *ErrorHandler) HandleBadRequest(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Failed to parse request")

	return c.Status(fiber.StatusUnprocessableEntity).
		JSON(response.Fail(fiber.StatusUnprocessableEntity, "invalid request body"))
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).
		JSON(response.Fail(fiber.StatusRequestTimeout, utils.StatusMessage(fiber.StatusRequestTimeout)))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(response.Fail(fiber.StatusUnauthorized, message))
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(response.Success(statusCode, data))
}

func (h *ErrorHandler) HandleMessage(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(response.Message(statusCode, message))
}
