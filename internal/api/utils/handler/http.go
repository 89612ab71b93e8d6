package utilsHandler

import (
	utilsService "SimOCRBackend/internal/api/utils/service"
	"SimOCRBackend/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type UtilsHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	utilsService utilsService.IUtilsService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	utilsService utilsService.IUtilsService,
) *UtilsHandler {
	return &UtilsHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		utilsService: utilsService,
	}
}

func (h *UtilsHandler) Start(srv fiber.Router) {
	utils := srv.Group("/utils")

	utils.Post("/test-email", h.middleware.NewTokenMiddleware, h.middleware.NewSuperuserMiddleware, h.TestEmail)
	utils.Get("/health-check", h.HealthCheck)
}
