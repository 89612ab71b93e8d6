package tesseract

import (
	"SimOCRBackend/pkg/ocr"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/otiai10/gosseract/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		img.Set(x, 2, color.Black)
	}
	return img
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	return buf.Bytes()
}

func TestItemFromBox(t *testing.T) {
	item, ok := itemFromBox(" 8986\n", 87.5, image.Rect(10, 20, 110, 60))
	require.True(t, ok)
	assert.Equal(t, "8986", item.Text)
	assert.InDelta(t, 0.875, item.Confidence, 1e-9)
	assert.Equal(t, [4]ocr.Point{{10, 20}, {110, 20}, {110, 60}, {10, 60}}, item.Position)

	_, ok = itemFromBox("  ", 90, image.Rect(0, 0, 1, 1))
	assert.False(t, ok)

	item, ok = itemFromBox("Se\u0301lular", 90, image.Rect(0, 0, 1, 1))
	require.True(t, ok)
	assert.Equal(t, "S\u00e9lular", item.Text)

	item, ok = itemFromBox("x", 140, image.Rect(0, 0, 1, 1))
	require.True(t, ok)
	assert.Equal(t, 1.0, item.Confidence)

	item, ok = itemFromBox("x", -1, image.Rect(0, 0, 1, 1))
	require.True(t, ok)
	assert.Equal(t, 0.0, item.Confidence)
}

func TestNormalizeImage(t *testing.T) {
	data := pngBytes(t)

	out, format, err := normalizeImage(data)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, data, out)

	var bmpBuf bytes.Buffer
	require.NoError(t, bmp.Encode(&bmpBuf, testImage()))

	out, format, err = normalizeImage(bmpBuf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "bmp", format)
	cfg, outFormat, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", outFormat)
	assert.Equal(t, 8, cfg.Width)
}

func TestNormalizeImageRejectsGarbage(t *testing.T) {
	_, _, err := normalizeImage([]byte("hello world"))
	assert.True(t, errors.Is(err, ocr.ErrUnsupportedImage))

	_, _, err = normalizeImage(nil)
	assert.True(t, errors.Is(err, ocr.ErrUnsupportedImage))
}

func TestNewConfigDefaults(t *testing.T) {
	e, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{"eng"}, e.cfg.Languages)
	assert.Equal(t, LevelWord, e.cfg.Level)
	assert.Equal(t, 2, cap(e.slots))
	assert.Equal(t, "tesseract", e.Name())
	require.NoError(t, e.Close())

	_, err = New(Config{Level: "symbol"})
	assert.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("OCR_LANGUAGES", "ind, eng,,")
	t.Setenv("OCR_ITERATOR_LEVEL", "line")
	t.Setenv("OCR_POOL_SIZE", "4")
	t.Setenv("OCR_WHITELIST", "0123456789")

	cfg := ConfigFromEnv()
	assert.Equal(t, []string{"ind", "eng"}, cfg.Languages)
	assert.Equal(t, LevelLine, cfg.Level)
	assert.Equal(t, 4, cfg.PoolSize)
	assert.Equal(t, "0123456789", cfg.Whitelist)

	t.Setenv("OCR_LANGUAGES", "")
	t.Setenv("OCR_ITERATOR_LEVEL", "")
	t.Setenv("OCR_POOL_SIZE", "many")
	t.Setenv("OCR_WHITELIST", "")

	e, err := New(ConfigFromEnv())
	require.NoError(t, err)
	assert.Equal(t, []string{"eng"}, e.cfg.Languages)
	assert.Equal(t, LevelWord, e.cfg.Level)
	assert.Equal(t, 2, cap(e.slots))
	assert.Empty(t, e.cfg.Whitelist)
}

func TestRecognizeRejectsBeforeAcquiring(t *testing.T) {
	e, err := New(Config{PoolSize: 1})
	require.NoError(t, err)

	_, err = e.Recognize(t.Context(), []byte("not an image"))
	assert.ErrorIs(t, err, ocr.ErrUnsupportedImage)
	assert.Len(t, e.slots, 1)
}

func TestRecognizeWaitsForFreeSlot(t *testing.T) {
	e, err := New(Config{PoolSize: 2})
	require.NoError(t, err)

	held := make([]*gosseract.Client, 0, cap(e.slots))
	for i := 0; i < cap(e.slots); i++ {
		held = append(held, <-e.slots)
	}

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	_, err = e.Recognize(ctx, pngBytes(t))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, e.slots)

	for _, c := range held {
		e.slots <- c
	}
	assert.Len(t, e.slots, cap(e.slots))
}

func TestRecognizeAfterClose(t *testing.T) {
	e, err := New(Config{PoolSize: 2})
	require.NoError(t, err)
	require.NoError(t, e.Close())
	assert.Len(t, e.slots, 2)

	_, err = e.Recognize(t.Context(), pngBytes(t))
	assert.ErrorIs(t, err, ErrEngineClosed)
	assert.Len(t, e.slots, 2)

	require.NoError(t, e.Close())
}
