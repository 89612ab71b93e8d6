package tesseract

import (
	"SimOCRBackend/pkg/ocr"
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// normalizeImage checks that data decodes as an image and re-encodes formats
// leptonica may lack support for (bmp, webp, gif) as PNG.
func normalizeImage(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", ocr.ErrUnsupportedImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ocr.ErrUnsupportedImage, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, format, fmt.Errorf("%w: empty %s image", ocr.ErrUnsupportedImage, format)
	}

	switch format {
	case "png", "jpeg":
		return data, format, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, fmt.Errorf("%w: %v", ocr.ErrUnsupportedImage, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, format, fmt.Errorf("encode %s as png: %w", format, err)
	}
	return buf.Bytes(), format, nil
}
