package ocrHandler

import (
	contextPkg "SimOCRBackend/pkg/context"
	"SimOCRBackend/pkg/handlerUtil"
	"errors"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

const recognizeTimeout = 30 * time.Second

func (h *OcrHandler) RecognizeSim(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), recognizeTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.ocrService.GetSimNumber(c, formFile(ctx))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errHandler.HandleRequestTimeout(ctx)
		}
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "recognize_sim")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *OcrHandler) RecognizeRaw(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), recognizeTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	res, err := h.ocrService.Recognize(c, formFile(ctx))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errHandler.HandleRequestTimeout(ctx)
		}
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "recognize_raw")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

// formFile returns nil when the request carries no "file" part; the service
// reports that as a missing field.
func formFile(ctx *fiber.Ctx) *multipart.FileHeader {
	file, err := ctx.FormFile("file")
	if err != nil {
		return nil
	}
	return file
}
