package itemHandler

import (
	itemService "SimOCRBackend/internal/api/item/service"
	"SimOCRBackend/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ItemHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	itemService itemService.IItemService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	itemService itemService.IItemService,
) *ItemHandler {
	return &ItemHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		itemService: itemService,
	}
}

func (h *ItemHandler) Start(srv fiber.Router) {
	items := srv.Group("/items", h.middleware.NewTokenMiddleware)

	items.Get("/", h.ListItems)
	items.Post("/", h.CreateItem)
	items.Get("/:id", h.GetItem)
	items.Put("/:id", h.UpdateItem)
	items.Delete("/:id", h.DeleteItem)
}
