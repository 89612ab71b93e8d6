package authHandler

import (
	"SimOCRBackend/internal/api/auth"
	contextPkg "SimOCRBackend/pkg/context"
	"SimOCRBackend/pkg/handlerUtil"
	jwtPkg "SimOCRBackend/pkg/jwt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *AuthHandler) emailParam(ctx *fiber.Ctx) (string, error) {
	email, err := url.PathUnescape(ctx.Params("email"))
	if err != nil {
		return "", err
	}
	if err := h.validator.Var(email, "required,email"); err != nil {
		return "", err
	}
	return email, nil
}

func (h *AuthHandler) HandleRecoverPassword(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	email, err := h.emailParam(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.authService.Password().RecoverPassword(c, email); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "recover_password")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleMessage(ctx, fiber.StatusOK, "Password recovery email sent")
	}
}

func (h *AuthHandler) HandleResetPassword(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req auth.ResetPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleBadRequest(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.authService.Password().ResetPassword(c, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "reset_password")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleMessage(ctx, fiber.StatusOK, "Password updated successfully")
	}
}

func (h *AuthHandler) HandleRecoveryHTMLContent(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	email, err := h.emailParam(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	data, err := h.authService.Password().RecoveryHTMLContent(c, email)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "recovery_html_content")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		ctx.Set("subject", data.Subject)
		ctx.Type("html", "utf-8")
		return ctx.Status(fiber.StatusOK).SendString(data.HTMLContent)
	}
}

func (h *AuthHandler) HandleUpdatePassword(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, auth.ErrCouldNotValidate.Error())
	}

	var req auth.UpdatePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleBadRequest(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.authService.Password().UpdatePassword(c, userData.ID, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_password")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleMessage(ctx, fiber.StatusOK, "Password updated successfully")
	}
}
