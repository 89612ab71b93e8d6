package utilsHandler

import (
	utilsApi "SimOCRBackend/internal/api/utils"
	contextPkg "SimOCRBackend/pkg/context"
	"SimOCRBackend/pkg/handlerUtil"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *UtilsHandler) TestEmail(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req utilsApi.TestEmailRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errHandler.HandleBadRequest(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.utilsService.SendTestEmail(c, req.EmailTo); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "test_email")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleMessage(ctx, fiber.StatusCreated, "Test email sent")
	}
}

func (h *UtilsHandler) HealthCheck(ctx *fiber.Ctx) error {
	return handlerUtil.New(h.log).HandleSuccess(ctx, fiber.StatusOK, true)
}
