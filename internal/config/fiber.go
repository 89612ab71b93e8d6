package config

import (
	contextPkg "SimOCRBackend/pkg/context"
	"SimOCRBackend/pkg/handlerUtil"
	"SimOCRBackend/pkg/log"
	"SimOCRBackend/pkg/response"
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger) *fiber.App {
	appName := os.Getenv("PROJECT_NAME")
	if appName == "" {
		appName = "SIM OCR Backend"
	}

	app := fiber.New(
		fiber.Config{
			AppName:           appName,
			BodyLimit:         12 * 1024 * 1024,
			DisableKeepalive:  false,
			StrictRouting:     false,
			CaseSensitive:     true,
			EnablePrintRoutes: os.Getenv("APP_ENV") == "development",
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
			ErrorHandler:      newErrorHandler(logger),
		})

	return app
}

// newErrorHandler answers errors that escape the handlers (unknown routes,
// oversized bodies, panics turned into errors) with the response envelope.
func newErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		var respErr *response.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.As(err, &respErr):
			code = respErr.Code
			message = respErr.Error()
		default:
			traceID := log.ErrorWithTraceID(logger, log.Fields{
				log.RequestIDKey: contextPkg.GetRequestID(contextPkg.FromFiberCtx(ctx)),
				"path":           ctx.Path(),
				"error":          err.Error(),
			}, "Unhandled error")
			ctx.Set(handlerUtil.TraceIDHeader, traceID)
		}

		return ctx.Status(code).JSON(response.Fail(code, message))
	}
}
