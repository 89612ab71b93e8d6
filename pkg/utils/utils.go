package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ErrNoFile            = errors.New("no file uploaded")
	ErrFileTooLarge      = errors.New("file size exceeds limit")
	ErrUnsupportedType   = errors.New("unsupported file type")
	ErrEmptyFile         = errors.New("uploaded file is empty")
	AllowedImageTypes    = []string{"image/jpeg", "image/jpg", "image/png", "image/bmp", "image/webp"}
	defaultMaxUploadSize = int64(10 * 1024 * 1024)
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	ReadFile(file *multipart.FileHeader) ([]byte, error)
	HashBytes(data []byte) string
}

type utils struct {
	maxFileSize  int64
	allowedTypes map[string]struct{}
}

func New() IUtils {
	return NewWithLimit(defaultMaxUploadSize)
}

func NewWithLimit(maxFileSize int64) IUtils {
	allowed := make(map[string]struct{}, len(AllowedImageTypes))
	for _, t := range AllowedImageTypes {
		allowed[t] = struct{}{}
	}

	return &utils{
		maxFileSize:  maxFileSize,
		allowedTypes: allowed,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// ValidateImageFile checks the declared content type and the size of an
// upload. Content type parameters such as charset are ignored.
func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return ErrNoFile
	}

	contentType := file.Header.Get("Content-Type")
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	if _, ok := u.allowedTypes[contentType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	if file.Size > u.maxFileSize {
		return ErrFileTooLarge
	}

	return nil
}

func (u *utils) ReadFile(file *multipart.FileHeader) ([]byte, error) {
	if file == nil {
		return nil, ErrNoFile
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, u.maxFileSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > u.maxFileSize {
		return nil, ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	return data, nil
}

func (u *utils) HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
