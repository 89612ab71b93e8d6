package ocrService

import (
	"SimOCRBackend/internal/api/ocr"
	ocrPkg "SimOCRBackend/pkg/ocr"
	"SimOCRBackend/pkg/redis"
	"SimOCRBackend/pkg/s3"
	"SimOCRBackend/pkg/utils"
	"context"
	"mime/multipart"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

type IOcrService interface {
	GetSimNumber(ctx context.Context, file *multipart.FileHeader) (ocr.OcrSimResult, error)
	Recognize(ctx context.Context, file *multipart.FileHeader) (ocrPkg.Result, error)
}

type Config struct {
	// CacheTTL of zero disables the result cache.
	CacheTTL       time.Duration
	ArchiveUploads bool
}

// ConfigFromEnv reads OCR_CACHE_TTL (a Go duration, default 10m) and
// OCR_ARCHIVE_UPLOADS.
func ConfigFromEnv() Config {
	cfg := Config{CacheTTL: 10 * time.Minute}

	if raw := os.Getenv("OCR_CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
			cfg.CacheTTL = d
		}
	}
	cfg.ArchiveUploads, _ = strconv.ParseBool(os.Getenv("OCR_ARCHIVE_UPLOADS"))

	return cfg
}

type ocrService struct {
	log         *logrus.Logger
	engine      ocrPkg.Engine
	redisServer redis.IRedis
	s3Client    s3.ItfS3
	utils       utils.IUtils
	cfg         Config
}

// NewOcrService wires the recognition pipeline. redisServer and s3Client may
// be nil, which turns caching and archiving off.
func NewOcrService(
	log *logrus.Logger,
	engine ocrPkg.Engine,
	redisServer redis.IRedis,
	s3Client s3.ItfS3,
	utils utils.IUtils,
	cfg Config,
) IOcrService {
	return &ocrService{
		log:         log,
		engine:      engine,
		redisServer: redisServer,
		s3Client:    s3Client,
		utils:       utils,
		cfg:         cfg,
	}
}
