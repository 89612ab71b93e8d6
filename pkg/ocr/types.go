// Package ocr defines the recognition engine contract used by the OCR
// endpoints and holds the post-processing applied to its output. The
// gosseract-backed engine lives in ocr/tesseract.
package ocr

import (
	"context"
	"errors"
	"strings"
)

// ErrUnsupportedImage is returned by engines for payloads that do not decode
// as an image.
var ErrUnsupportedImage = errors.New("unsupported or corrupt image")

// Point is a corner of a text bounding box in image pixel coordinates.
type Point [2]int

// TextItem is a single piece of recognised text.
type TextItem struct {
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	Position   [4]Point `json:"position"`
}

// Result holds the items of one recognition call in engine reading order.
type Result struct {
	Items    []TextItem `json:"items"`
	FullText string     `json:"full_text"`
}

// Engine turns encoded image bytes into recognised text items.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, image []byte) (Result, error)
}

// NewResult keeps items in the given order and joins their text with newlines.
func NewResult(items []TextItem) Result {
	if items == nil {
		items = []TextItem{}
	}

	texts := make([]string, 0, len(items))
	for _, item := range items {
		texts = append(texts, item.Text)
	}

	return Result{
		Items:    items,
		FullText: strings.Join(texts, "\n"),
	}
}
