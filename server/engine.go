package server

import (
	"fmt"

	"github.com/qazasd2518995/ocrproject/ocr"
	"github.com/qazasd2518995/ocrproject/ocr/ollama"
	"github.com/qazasd2518995/ocrproject/ocr/tesseract"
)

// NewEngine erstellt die per GOTOCR_ENGINE gewaehlte Engine
func NewEngine(name string) (ocr.Engine, error) {
	switch name {
	case "ollama":
		return ollama.New(ollama.ClientFromEnvironment(), ollama.ConfigFromEnvironment()), nil
	case "tesseract":
		return tesseract.New(tesseract.ConfigFromEnvironment()), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want ollama or tesseract)", name)
	}
}
