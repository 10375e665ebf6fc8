//go:build tesseract

package tesseract

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/qazasd2518995/ocrproject/ocr"
	"github.com/qazasd2518995/ocrproject/render"
	"github.com/qazasd2518995/ocrproject/vision"
)

const (
	maxTiles = 6
	tileSize = 640
)

// Engine erkennt Text lokal mit libtesseract
type Engine struct {
	config Config
	pool   *clientPool[*gosseract.Client]
}

func New(config Config) *Engine {
	return &Engine{config: config}
}

func (e *Engine) Name() string  { return "tesseract" }
func (e *Engine) Model() string { return e.config.model() }

// Close gibt die nativen Tesseract-Handles frei
func (e *Engine) Close() error {
	if e.pool == nil {
		return nil
	}
	return e.pool.Close()
}

// Load prueft die Sprachdaten und richtet den Client-Pool ein
func (e *Engine) Load(ctx context.Context) (ocr.Device, error) {
	if err := ctx.Err(); err != nil {
		return ocr.Device{}, err
	}

	available, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return ocr.Device{}, fmt.Errorf("tesseract languages: %w", err)
	}
	for _, lang := range e.config.Languages {
		if !slices.Contains(available, lang) {
			return ocr.Device{}, fmt.Errorf("tesseract language %q not installed (have %s)", lang, strings.Join(available, ", "))
		}
	}

	e.pool = newClientPool(runtime.GOMAXPROCS(0), func() (*gosseract.Client, error) {
		client := gosseract.NewClient()
		if err := client.SetLanguage(e.config.Languages...); err != nil {
			client.Close()
			return nil, err
		}
		return client, nil
	})

	return ocr.Device{Name: "cpu " + gosseract.Version()}, nil
}

// Recognize erkennt den Text der Bilddatei unter path
func (e *Engine) Recognize(ctx context.Context, path string, opts ocr.Options) (string, error) {
	if e.pool == nil {
		return "", ocr.ErrModelNotLoaded
	}

	img, err := ocr.Prepare(path, opts)
	if err != nil {
		return "", err
	}

	images := []*vision.ImageInput{img}
	if opts.Mode == ocr.ModeMultiCrop {
		images, err = vision.Tiles(img, maxTiles, tileSize)
		if err != nil {
			return "", err
		}
	}

	parts := make([]string, 0, len(images))
	for _, part := range images {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := e.recognize(part, opts.Mode.Formatted())
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	text := strings.Join(parts, "\n")

	if opts.Mode.Renders() && opts.RenderFile != "" {
		if err := render.WriteFile(opts.RenderFile, e.Model(), text); err != nil {
			return "", err
		}
	}

	return text, nil
}

func (e *Engine) recognize(img *vision.ImageInput, formatted bool) (string, error) {
	data, err := vision.EncodePNG(img)
	if err != nil {
		return "", err
	}

	client, err := e.pool.get()
	if err != nil {
		return "", fmt.Errorf("tesseract client: %w", err)
	}
	defer e.pool.put(client)

	// Layout-Modus behaelt Einrueckung und Spalten bei
	preserve := "0"
	if formatted {
		preserve = "1"
	}
	if err := client.SetVariable("preserve_interword_spaces", preserve); err != nil {
		return "", err
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("tesseract image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}

	return norm.NFC.String(strings.TrimSpace(text)), nil
}
