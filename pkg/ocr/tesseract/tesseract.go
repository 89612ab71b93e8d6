// Package tesseract implements ocr.Engine on top of gosseract. It needs cgo
// and the tesseract and leptonica headers, so only the binary imports it.
package tesseract

import (
	"SimOCRBackend/pkg/ocr"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
	"golang.org/x/text/unicode/norm"
)

var ErrEngineClosed = errors.New("ocr engine closed")

type IteratorLevel string

const (
	LevelWord IteratorLevel = "word"
	LevelLine IteratorLevel = "line"
)

type Config struct {
	Languages []string
	Level     IteratorLevel
	// PoolSize bounds the number of concurrent recognitions. A gosseract
	// client must not be shared between goroutines.
	PoolSize  int
	Whitelist string
}

// ConfigFromEnv reads OCR_LANGUAGES (comma separated), OCR_ITERATOR_LEVEL,
// OCR_POOL_SIZE and OCR_WHITELIST. Unset values fall back to the defaults of New.
func ConfigFromEnv() Config {
	var cfg Config
	for _, lang := range strings.Split(os.Getenv("OCR_LANGUAGES"), ",") {
		if lang = strings.TrimSpace(lang); lang != "" {
			cfg.Languages = append(cfg.Languages, lang)
		}
	}
	cfg.Level = IteratorLevel(strings.TrimSpace(os.Getenv("OCR_ITERATOR_LEVEL")))
	cfg.PoolSize, _ = strconv.Atoi(os.Getenv("OCR_POOL_SIZE"))
	cfg.Whitelist = os.Getenv("OCR_WHITELIST")
	return cfg
}

// Engine recognises text through a bounded pool of reusable
// gosseract clients.
type Engine struct {
	cfg           Config
	clientFactory func() *gosseract.Client
	slots         chan *gosseract.Client

	mu     sync.Mutex
	closed bool
}

func New(cfg Config) (*Engine, error) {
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"eng"}
	}
	switch cfg.Level {
	case "":
		cfg.Level = LevelWord
	case LevelWord, LevelLine:
	default:
		return nil, fmt.Errorf("unknown iterator level %q", cfg.Level)
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 2
	}

	slots := make(chan *gosseract.Client, cfg.PoolSize)
	for i := 0; i < cfg.PoolSize; i++ {
		slots <- nil
	}

	return &Engine{
		cfg:           cfg,
		clientFactory: gosseract.NewClient,
		slots:         slots,
	}, nil
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize blocks until a pool slot is free or ctx is done.
func (e *Engine) Recognize(ctx context.Context, data []byte) (ocr.Result, error) {
	img, _, err := normalizeImage(data)
	if err != nil {
		return ocr.Result{}, err
	}

	var client *gosseract.Client
	select {
	case <-ctx.Done():
		return ocr.Result{}, ctx.Err()
	case client = <-e.slots:
	}

	if e.isClosed() {
		e.release(client)
		return ocr.Result{}, ErrEngineClosed
	}

	if client == nil {
		client, err = e.newClient()
		if err != nil {
			e.slots <- nil
			return ocr.Result{}, err
		}
	}

	res, err := e.recognizeWithClient(client, img)
	if err != nil {
		// The client may be left in a bad state after a failed call.
		_ = client.Close()
		client = nil
	}
	e.release(client)

	return res, err
}

func (e *Engine) newClient() (*gosseract.Client, error) {
	c := e.clientFactory()
	if err := c.SetLanguage(e.cfg.Languages...); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("set languages: %w", err)
	}
	if e.cfg.Whitelist != "" {
		if err := c.SetWhitelist(e.cfg.Whitelist); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("set whitelist: %w", err)
		}
	}
	return c, nil
}

func (e *Engine) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *Engine) release(c *gosseract.Client) {
	if e.isClosed() && c != nil {
		_ = c.Close()
		c = nil
	}
	e.slots <- c
}

func (e *Engine) recognizeWithClient(c *gosseract.Client, img []byte) (ocr.Result, error) {
	if err := c.SetImageFromBytes(img); err != nil {
		return ocr.Result{}, fmt.Errorf("set image: %w", err)
	}

	level := gosseract.RIL_WORD
	if e.cfg.Level == LevelLine {
		level = gosseract.RIL_TEXTLINE
	}

	boxes, err := c.GetBoundingBoxes(level)
	if err != nil {
		return ocr.Result{}, fmt.Errorf("recognize text: %w", err)
	}

	items := make([]ocr.TextItem, 0, len(boxes))
	for _, b := range boxes {
		item, ok := itemFromBox(b.Word, b.Confidence, b.Box)
		if !ok {
			continue
		}
		items = append(items, item)
	}

	return ocr.NewResult(items), nil
}

// Close releases idle clients. Clients in use are closed when returned.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	var idle []*gosseract.Client
	for i := 0; i < cap(e.slots); i++ {
		select {
		case c := <-e.slots:
			idle = append(idle, c)
		default:
		}
	}

	var firstErr error
	for _, c := range idle {
		if c != nil {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		e.slots <- nil
	}
	return firstErr
}

// itemFromBox converts a tesseract box into a text item with clockwise
// corners starting top-left. Text is NFC composed so a letter and its
// combining marks count as one character. Blank text is dropped.
func itemFromBox(text string, confidence float64, box image.Rectangle) (ocr.TextItem, bool) {
	text = strings.TrimSpace(norm.NFC.String(text))
	if text == "" {
		return ocr.TextItem{}, false
	}

	conf := confidence / 100.0
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}

	return ocr.TextItem{
		Text:       text,
		Confidence: conf,
		Position: [4]ocr.Point{
			{box.Min.X, box.Min.Y},
			{box.Max.X, box.Min.Y},
			{box.Max.X, box.Max.Y},
			{box.Min.X, box.Max.Y},
		},
	}, true
}

var _ ocr.Engine = (*Engine)(nil)
