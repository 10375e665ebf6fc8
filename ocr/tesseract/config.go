// Package tesseract stellt eine ocr.Engine ueber libtesseract (gosseract) bereit.
// Die Engine wird nur mit dem Build-Tag "tesseract" einkompiliert, sonst
// schlaegt Load mit ErrNotCompiled fehl.
package tesseract

import (
	"errors"
	"strings"

	"github.com/qazasd2518995/ocrproject/envconfig"
)

// ErrNotCompiled meldet ein Binary ohne Tesseract-Unterstuetzung
var ErrNotCompiled = errors.New("tesseract engine not compiled in, rebuild with -tags tesseract")

// Config konfiguriert die Tesseract Engine
type Config struct {
	Languages []string
}

// ConfigFromEnvironment liest GOTOCR_TESSERACT_LANGS
func ConfigFromEnvironment() Config {
	return Config{Languages: envconfig.TesseractLanguages()}
}

func (c Config) model() string {
	return "tesseract:" + strings.Join(c.Languages, "+")
}
