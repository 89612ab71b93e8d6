package middleware

import (
	"SimOCRBackend/internal/entity"
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewTokenMiddleware(ctx *fiber.Ctx) error
	NewSuperuserMiddleware(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	NewLoggingMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
}

// UserFinder loads the account a bearer token was issued for.
type UserFinder interface {
	GetUserByID(ctx context.Context, id string) (entity.User, error)
}

type middleware struct {
	users               UserFinder
	rateLimitter        *rateLimiter
	requestIDMiddleware fiber.Handler
	log                 *logrus.Logger
}

func New(logger *logrus.Logger, users UserFinder) Middleware {
	return NewWithRate(logger, users, 50, 100)
}

// NewWithRate sets the per client request rate and burst.
func NewWithRate(logger *logrus.Logger, users UserFinder, reqRate rate.Limit, burst int) Middleware {
	return &middleware{
		users:               users,
		rateLimitter:        newRateLimiter(reqRate, burst),
		requestIDMiddleware: NewRequestIDMiddleware(),
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}
