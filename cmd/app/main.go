package main

import (
	"SimOCRBackend/internal/config"
	"SimOCRBackend/pkg/email"
	"SimOCRBackend/pkg/log"
	"SimOCRBackend/pkg/ocr/tesseract"
	"SimOCRBackend/pkg/redis"
	"SimOCRBackend/pkg/smtp"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	engine, err := tesseract.New(tesseract.ConfigFromEnv())
	if err != nil {
		logger.Fatalf("Error creating OCR engine: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	redisServer := redis.New()
	smtpMailer := smtp.New()
	mailRenderer := email.NewRendererFromEnv()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithRedisServer(redisServer),
		config.WithSMTPMailer(smtpMailer),
		config.WithMailQueue(),
		config.WithMailRenderer(mailRenderer),
		config.WithMiddleware(),
		config.WithS3Client(),
		config.WithOCREngine(engine),
		config.WithBcryptUtils(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := server.EnsureFirstSuperuser(ctx); err != nil {
		logger.Errorf("Error creating first superuser: %v", err)
	}
	cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		logger.Errorf("Error shutting down server: %v", err)
	}
}
