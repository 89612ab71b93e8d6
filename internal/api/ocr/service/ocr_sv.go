package ocrService

import (
	"SimOCRBackend/internal/api/ocr"
	contextPkg "SimOCRBackend/pkg/context"
	ocrPkg "SimOCRBackend/pkg/ocr"
	"SimOCRBackend/pkg/redis"
	"SimOCRBackend/pkg/s3"
	"SimOCRBackend/pkg/utils"
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

const simCacheKeyPrefix = "ocr:sim:"

func (s *ocrService) GetSimNumber(ctx context.Context, file *multipart.FileHeader) (ocr.OcrSimResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	data, err := s.readUpload(file)
	if err != nil {
		return ocr.OcrSimResult{}, err
	}

	cacheKey := simCacheKeyPrefix + s.utils.HashBytes(data)
	if sim, ok := s.cached(ctx, cacheKey); ok {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Debug("SIM number served from cache")
		return ocr.OcrSimResult{SimNumber: sim}, nil
	}

	s.archive(ctx, file, data)

	result, err := s.recognize(ctx, data)
	if err != nil {
		return ocr.OcrSimResult{}, err
	}

	sim := ocrPkg.ExtractSimNumber(result.Items)
	s.store(ctx, cacheKey, sim)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"items":      len(result.Items),
		"found":      sim != "",
	}).Info("SIM number recognized")

	return ocr.OcrSimResult{SimNumber: sim}, nil
}

func (s *ocrService) Recognize(ctx context.Context, file *multipart.FileHeader) (ocrPkg.Result, error) {
	data, err := s.readUpload(file)
	if err != nil {
		return ocrPkg.Result{}, err
	}

	s.archive(ctx, file, data)

	return s.recognize(ctx, data)
}

// readUpload validates the declared type before reading the payload so an
// unsupported upload is rejected without touching its body.
func (s *ocrService) readUpload(file *multipart.FileHeader) ([]byte, error) {
	if err := s.utils.ValidateImageFile(file); err != nil {
		return nil, mapUploadError(file, err)
	}

	data, err := s.utils.ReadFile(file)
	if err != nil {
		return nil, mapUploadError(file, err)
	}

	return data, nil
}

func mapUploadError(file *multipart.FileHeader, err error) error {
	switch {
	case errors.Is(err, utils.ErrNoFile):
		return ocr.ErrFileRequired
	case errors.Is(err, utils.ErrUnsupportedType):
		return ocr.ErrUnsupportedFileType(file.Header.Get("Content-Type"))
	case errors.Is(err, utils.ErrEmptyFile):
		return ocr.ErrEmptyFile
	case errors.Is(err, utils.ErrFileTooLarge):
		return ocr.ErrFileTooLarge
	default:
		return err
	}
}

func (s *ocrService) recognize(ctx context.Context, data []byte) (ocrPkg.Result, error) {
	requestID := contextPkg.GetRequestID(ctx)
	start := time.Now()

	result, err := s.engine.Recognize(ctx, data)
	if err != nil {
		switch {
		case errors.Is(err, ocrPkg.ErrUnsupportedImage):
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Upload could not be decoded as an image")
			return ocrPkg.Result{}, ocr.ErrInvalidImage
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return ocrPkg.Result{}, err
		}

		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"engine":     s.engine.Name(),
			"error":      err.Error(),
		}).Error("OCR engine failed")
		return ocrPkg.Result{}, ocr.ErrRecognitionFailed
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"engine":     s.engine.Name(),
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("OCR finished")

	return result, nil
}

func (s *ocrService) cached(ctx context.Context, key string) (string, bool) {
	if s.redisServer == nil || s.cfg.CacheTTL <= 0 {
		return "", false
	}

	sim, err := s.redisServer.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.ErrNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"error":      err.Error(),
			}).Warn("OCR cache lookup failed")
		}
		return "", false
	}

	return sim, true
}

func (s *ocrService) store(ctx context.Context, key string, sim string) {
	if s.redisServer == nil || s.cfg.CacheTTL <= 0 {
		return
	}

	if err := s.redisServer.Set(ctx, key, sim, s.cfg.CacheTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("OCR cache store failed")
	}
}

func (s *ocrService) archive(ctx context.Context, file *multipart.FileHeader, data []byte) {
	if s.s3Client == nil || !s.cfg.ArchiveUploads {
		return
	}
	requestID := contextPkg.GetRequestID(ctx)

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return
	}

	// Stored with the sniffed type, the declared one comes from the client.
	key := s3.ObjectKey("ocr", id, file.Filename)
	url, err := s.s3Client.UploadBytes(ctx, key, data, mimetype.Detect(data).String())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"key":        key,
			"error":      err.Error(),
		}).Warn("Failed to archive OCR upload")
		return
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"url":        url,
	}).Debug("OCR upload archived")
}
