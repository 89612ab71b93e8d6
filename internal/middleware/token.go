package middleware

import (
	"SimOCRBackend/internal/api/auth"
	"SimOCRBackend/internal/entity"
	contextPkg "SimOCRBackend/pkg/context"
	jwtPkg "SimOCRBackend/pkg/jwt"
	"SimOCRBackend/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	requestID := m.GetRequestID(ctx)

	claims, err := jwtPkg.VerifyTokenHeader(ctx)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"client_ip":  ctx.IP(),
			"error":      err.Error(),
		}).Warn("Token verification failed")
		return m.abort(ctx, auth.ErrCouldNotValidate)
	}

	user, err := m.users.GetUserByID(contextPkg.FromFiberCtx(ctx), claims.Subject)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			m.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    claims.Subject,
			}).Warn("Token subject not found")
			return m.abort(ctx, auth.ErrUserNotFound)
		}

		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to load token subject")
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(response.Fail(fiber.StatusInternalServerError, "Internal server error"))
	}

	if !user.IsActive {
		return m.abort(ctx, auth.ErrInactiveUser)
	}

	jwtPkg.SetUserLoginData(ctx, entity.UserLoginData{
		ID:          user.ID,
		Email:       user.Email,
		IsSuperuser: user.IsSuperuser,
	})

	m.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Debug("Authentication successful")
	return ctx.Next()
}

// NewSuperuserMiddleware must run after NewTokenMiddleware.
func (m *middleware) NewSuperuserMiddleware(ctx *fiber.Ctx) error {
	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return m.abort(ctx, auth.ErrCouldNotValidate)
	}

	if !user.IsSuperuser {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"user_id":    user.ID,
			"path":       ctx.Path(),
		}).Warn("Superuser route denied")
		return m.abort(ctx, auth.ErrNotEnoughPrivileges)
	}

	return ctx.Next()
}

func (m *middleware) abort(ctx *fiber.Ctx, err error) error {
	var respErr *response.Error
	if !errors.As(err, &respErr) {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(response.Fail(fiber.StatusInternalServerError, "Internal server error"))
	}
	return ctx.Status(respErr.Code).JSON(response.Fail(respErr.Code, respErr.Error()))
}
