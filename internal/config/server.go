package config

import (
	"SimOCRBackend/database/postgres"
	authHandler "SimOCRBackend/internal/api/auth/handler"
	authRepository "SimOCRBackend/internal/api/auth/repository"
	authService "SimOCRBackend/internal/api/auth/service"
	itemHandler "SimOCRBackend/internal/api/item/handler"
	itemRepository "SimOCRBackend/internal/api/item/repository"
	itemService "SimOCRBackend/internal/api/item/service"
	ocrHandler "SimOCRBackend/internal/api/ocr/handler"
	ocrService "SimOCRBackend/internal/api/ocr/service"
	utilsHandler "SimOCRBackend/internal/api/utils/handler"
	utilsService "SimOCRBackend/internal/api/utils/service"
	"SimOCRBackend/internal/middleware"
	"SimOCRBackend/pkg/bcrypt"
	"SimOCRBackend/pkg/email"
	"SimOCRBackend/pkg/mailqueue"
	"SimOCRBackend/pkg/ocr"
	"SimOCRBackend/pkg/redis"
	"SimOCRBackend/pkg/response"
	"SimOCRBackend/pkg/s3"
	"SimOCRBackend/pkg/smtp"
	"SimOCRBackend/pkg/utils"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	bcryptUtils  bcrypt.IBcrypt
	handlers     []handler
	redisServer  redis.IRedis
	smtpMailer   smtp.ItfSmtp
	mailRenderer *email.Renderer
	s3Client     s3.ItfS3
	ocrEngine    ocr.Engine
	authService  authService.AuthService
	mailClient   *asynq.Client
	mailWorker   *mailqueue.Worker
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}

		if err := postgres.Migrate(context.Background(), db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

// WithMailQueue routes e-mail through the asynq mail queue when
// MAIL_QUEUE_ENABLED is set. It wraps the mailer from WithSMTPMailer.
func WithMailQueue() ServerOption {
	return func(s *Server) error {
		if !mailqueue.Enabled() || s.smtpMailer == nil {
			return nil
		}
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before mail queue")
		}

		opt := mailqueue.RedisOpt()
		worker := mailqueue.NewWorker(opt, s.smtpMailer, s.log, 2)
		if err := worker.Start(); err != nil {
			return fmt.Errorf("failed to start mail worker: %w", err)
		}

		s.mailClient = asynq.NewClient(opt)
		s.mailWorker = worker
		s.smtpMailer = mailqueue.NewMailer(s.mailClient, s.smtpMailer, s.log)
		return nil
	}
}

func WithMailRenderer(renderer *email.Renderer) ServerOption {
	return func(s *Server) error {
		s.mailRenderer = renderer
		return nil
	}
}

// WithMiddleware needs the logger and the database options applied first,
// the token middleware resolves users through the auth repository.
func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.db == nil {
			return fmt.Errorf("database must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, authRepository.New(s.db, s.log))
		return nil
	}
}

// WithS3Client is optional. A missing bucket leaves archiving disabled.
func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Warnf("S3 archive disabled: %v", err)
			}
			return nil
		}
		s.s3Client = client
		return nil
	}
}

func WithOCREngine(engine ocr.Engine) ServerOption {
	return func(s *Server) error {
		if engine == nil {
			return fmt.Errorf("ocr engine is required")
		}
		s.ocrEngine = engine
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	s.authService = authService.New(s.log, authRepo, s.redisServer, s.smtpMailer, s.mailRenderer, s.bcryptUtils, s.utils, authService.ConfigFromEnv())
	authHandlers := authHandler.New(s.log, s.authService, s.validator, s.middleware)

	// Items
	itemRepo := itemRepository.New(s.db, s.log)
	itemServices := itemService.NewItemService(s.log, itemRepo, s.utils)
	itemHandlers := itemHandler.New(s.log, s.validator, s.middleware, itemServices)

	// OCR
	ocrServices := ocrService.NewOcrService(s.log, s.ocrEngine, s.redisServer, s.s3Client, s.utils, ocrService.ConfigFromEnv())
	ocrHandlers := ocrHandler.New(s.log, s.middleware, ocrServices)

	// Utils
	utilsServices := utilsService.NewUtilsService(s.log, s.smtpMailer, s.mailRenderer)
	utilsHandlers := utilsHandler.New(s.log, s.validator, s.middleware, utilsServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, itemHandlers, ocrHandlers, utilsHandlers)
}

// EnsureFirstSuperuser creates FIRST_SUPERUSER with FIRST_SUPERUSER_PASSWORD
// when both are set. RegisterHandler must run first.
func (s *Server) EnsureFirstSuperuser(ctx context.Context) error {
	email := os.Getenv("FIRST_SUPERUSER")
	password := os.Getenv("FIRST_SUPERUSER_PASSWORD")
	if email == "" || password == "" || s.authService == nil {
		return nil
	}

	if err := s.authService.User().EnsureSuperuser(ctx, email, password); err != nil {
		return fmt.Errorf("failed to create first superuser: %w", err)
	}
	return nil
}

func (s *Server) Run() error {
	s.engine.Use(recover.New())
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	router := s.engine.Group("/api/v1")

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops accepting requests and releases the OCR engine, the mail
// queue, the cache and the database pool.
func (s *Server) Shutdown() error {
	err := s.engine.Shutdown()

	if closer, ok := s.ocrEngine.(interface{ Close() error }); ok {
		if cerr := closer.Close(); cerr != nil {
			s.log.Errorf("Failed to close OCR engine: %v", cerr)
		}
	}
	if s.mailWorker != nil {
		s.mailWorker.Shutdown()
	}
	if s.mailClient != nil {
		if cerr := s.mailClient.Close(); cerr != nil {
			s.log.Errorf("Failed to close mail queue client: %v", cerr)
		}
	}
	if s.redisServer != nil {
		if cerr := s.redisServer.Close(); cerr != nil {
			s.log.Errorf("Failed to close redis: %v", cerr)
		}
	}
	if s.db != nil {
		if cerr := s.db.Close(); cerr != nil {
			s.log.Errorf("Failed to close database: %v", cerr)
		}
	}

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(response.Message(fiber.StatusOK, "Server is Healthy!"))
	})
}

func corsOrigins() string {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		return "*"
	}
	return strings.Join(strings.Fields(strings.ReplaceAll(origins, ",", " ")), ",")
}
