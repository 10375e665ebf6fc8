//go:build !tesseract

package tesseract

import (
	"context"

	"github.com/qazasd2518995/ocrproject/ocr"
)

// Engine ist ohne Build-Tag nur ein Platzhalter
type Engine struct {
	config Config
}

func New(config Config) *Engine {
	return &Engine{config: config}
}

func (e *Engine) Name() string  { return "tesseract" }
func (e *Engine) Model() string { return e.config.model() }
func (e *Engine) Close() error  { return nil }

func (e *Engine) Load(context.Context) (ocr.Device, error) {
	return ocr.Device{}, ErrNotCompiled
}

func (e *Engine) Recognize(context.Context, string, ocr.Options) (string, error) {
	return "", ErrNotCompiled
}
