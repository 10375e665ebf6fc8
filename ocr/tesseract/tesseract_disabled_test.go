//go:build !tesseract

package tesseract

import (
	"context"
	"errors"
	"testing"

	"github.com/qazasd2518995/ocrproject/ocr"
)

var _ ocr.Engine = (*Engine)(nil)

func TestDisabledEngine(t *testing.T) {
	e := New(Config{Languages: []string{"eng", "deu"}})

	if e.Model() != "tesseract:eng+deu" {
		t.Errorf("Model() = %q", e.Model())
	}

	if _, err := e.Load(context.Background()); !errors.Is(err, ErrNotCompiled) {
		t.Errorf("Load() error = %v, erwartet ErrNotCompiled", err)
	}

	if _, err := e.Recognize(context.Background(), "x.png", ocr.Options{}); !errors.Is(err, ErrNotCompiled) {
		t.Errorf("Recognize() error = %v, erwartet ErrNotCompiled", err)
	}
}
