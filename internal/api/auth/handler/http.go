package authHandler

import (
	authService "SimOCRBackend/internal/api/auth/service"
	"SimOCRBackend/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	log         *logrus.Logger
	authService authService.AuthService
	validator   *validator.Validate
	middleware  middleware.Middleware
}

func New(
	log *logrus.Logger,
	as authService.AuthService,
	validate *validator.Validate,
	middleware middleware.Middleware) *AuthHandler {
	return &AuthHandler{
		log:         log,
		authService: as,
		validator:   validate,
		middleware:  middleware,
	}
}

func (h *AuthHandler) Start(srv fiber.Router) {
	login := srv.Group("/login")
	login.Post("/access-token", h.middleware.NewRateLimiter, h.HandleLogin)
	login.Post("/test-token", h.middleware.NewTokenMiddleware, h.HandleTestToken)

	srv.Post("/password-recovery/:email", h.middleware.NewRateLimiter, h.HandleRecoverPassword)
	srv.Post("/reset-password", h.HandleResetPassword)
	srv.Post("/password-recovery-html-content/:email",
		h.middleware.NewTokenMiddleware, h.middleware.NewSuperuserMiddleware, h.HandleRecoveryHTMLContent)

	users := srv.Group("/users")
	users.Post("/signup", h.middleware.NewRateLimiter, h.HandleSignup)
	users.Get("/me", h.middleware.NewTokenMiddleware, h.HandleGetMe)
	users.Patch("/me", h.middleware.NewTokenMiddleware, h.HandleUpdateMe)
	users.Patch("/me/password", h.middleware.NewTokenMiddleware, h.HandleUpdatePassword)
	users.Delete("/me", h.middleware.NewTokenMiddleware, h.HandleDeleteMe)
}
