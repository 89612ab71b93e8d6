package ocrHandler

import (
	ocrService "SimOCRBackend/internal/api/ocr/service"
	"SimOCRBackend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type OcrHandler struct {
	log        *logrus.Logger
	middleware middleware.Middleware
	ocrService ocrService.IOcrService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	ocrService ocrService.IOcrService,
) *OcrHandler {
	return &OcrHandler{
		log:        log,
		middleware: middleware,
		ocrService: ocrService,
	}
}

func (h *OcrHandler) Start(srv fiber.Router) {
	ocr := srv.Group("/ocr", h.middleware.NewRateLimiter)

	ocr.Post("/recognize", h.RecognizeSim)
	ocr.Post("/recognize/raw", h.middleware.NewTokenMiddleware, h.RecognizeRaw)
}
