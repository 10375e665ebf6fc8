// MODUL: engine
// ZWECK: ocr.Engine Implementierung ueber einen Ollama Server mit Vision-OCR-Modell
// INPUT: Config (Modell, Keep-Alive, Pull-Verhalten, Parallelitaet), Bildpfade
// OUTPUT: Erkannter Text, HTML-Datei bei format-render
// NEBENEFFEKTE: HTTP-Aufrufe an Ollama, Modell-Download beim Load
// ABHAENGIGKEITEN: golang.org/x/sync/errgroup, golang.org/x/text/unicode/norm (extern)
// HINWEISE: Load wird vom Server genau einmal aufgerufen

package ollama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/qazasd2518995/ocrproject/envconfig"
	"github.com/qazasd2518995/ocrproject/format"
	"github.com/qazasd2518995/ocrproject/logutil"
	"github.com/qazasd2518995/ocrproject/ocr"
	"github.com/qazasd2518995/ocrproject/render"
	"github.com/qazasd2518995/ocrproject/vision"
)

const (
	// maxTiles begrenzt die Teilbilder im multi-crop Modus
	maxTiles = 6
	// tileSize ist die Zielkantenlaenge eines Teilbilds
	tileSize = 640
)

var prompts = map[ocr.Mode]string{
	ocr.ModeOCR:          "Free OCR.",
	ocr.ModeFormat:       "<|grounding|>Convert the document to markdown.",
	ocr.ModeMultiCrop:    "Free OCR.",
	ocr.ModeFormatRender: "<|grounding|>Convert the document to markdown.",
}

// Config konfiguriert die Ollama Engine
type Config struct {
	Model     string
	KeepAlive time.Duration
	NoPull    bool
	// Parallel begrenzt gleichzeitige Teilbild-Anfragen
	Parallel int
}

// ConfigFromEnvironment liest die Konfiguration aus envconfig
func ConfigFromEnvironment() Config {
	return Config{
		Model:     envconfig.Model(),
		KeepAlive: envconfig.KeepAlive(),
		NoPull:    envconfig.NoPull(),
		Parallel:  int(envconfig.CropParallel()),
	}
}

// Engine erkennt Text ueber /api/generate
type Engine struct {
	client *Client
	config Config
}

// New erstellt eine Engine; das Modell wird erst in Load geprueft
func New(client *Client, config Config) *Engine {
	if config.Parallel < 1 {
		config.Parallel = 1
	}
	return &Engine{client: client, config: config}
}

func (e *Engine) Name() string  { return "ollama" }
func (e *Engine) Model() string { return e.config.Model }
func (e *Engine) Close() error  { return nil }

// Load stellt sicher, dass das Modell vorhanden und geladen ist
func (e *Engine) Load(ctx context.Context) (ocr.Device, error) {
	if err := e.client.Heartbeat(ctx); err != nil {
		return ocr.Device{}, fmt.Errorf("ollama not reachable at %s: %w", e.client.base, err)
	}

	if v, err := e.client.Version(ctx); err == nil {
		slog.Debug("ollama server", "version", v)
	}

	show, err := e.client.Show(ctx, &ShowRequest{Model: e.config.Model})
	var statusErr StatusError
	switch {
	case errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound:
		if e.config.NoPull {
			return ocr.Device{}, fmt.Errorf("model %q not found and pulling is disabled", e.config.Model)
		}
		if err := e.pull(ctx); err != nil {
			return ocr.Device{}, err
		}
	case err != nil:
		return ocr.Device{}, fmt.Errorf("show model %q: %w", e.config.Model, err)
	case len(show.Capabilities) > 0 && !show.HasCapability("vision"):
		return ocr.Device{}, fmt.Errorf("model %q has no vision capability", e.config.Model)
	}

	// leerer Prompt laedt das Modell nur in den Speicher
	stream := false
	warmup := &GenerateRequest{
		Model:     e.config.Model,
		Stream:    &stream,
		KeepAlive: &Duration{e.config.KeepAlive},
	}
	if err := e.client.Generate(ctx, warmup, func(GenerateResponse) error { return nil }); err != nil {
		return ocr.Device{}, fmt.Errorf("load model %q: %w", e.config.Model, err)
	}

	running, err := e.client.ListRunning(ctx)
	if err != nil {
		return ocr.Device{}, fmt.Errorf("list running models: %w", err)
	}

	device := ocr.Device{Name: "cpu"}
	for _, m := range running.Models {
		if !sameModel(m.Name, e.config.Model) && !sameModel(m.Model, e.config.Model) {
			continue
		}
		slog.Info("model loaded", "model", m.Name, "size", format.HumanBytes(m.Size), "vram", format.HumanBytes(m.SizeVRAM))
		if m.SizeVRAM > 0 {
			device = ocr.Device{Name: "gpu", Accelerated: true}
		}
		break
	}

	return device, nil
}

func (e *Engine) pull(ctx context.Context) error {
	slog.Info("pulling model", "model", e.config.Model)

	var last string
	err := e.client.Pull(ctx, &PullRequest{Model: e.config.Model}, func(p ProgressResponse) error {
		if p.Status != last {
			last = p.Status
			slog.Info("pull", "status", p.Status, "total", format.HumanBytes(p.Total))
		}
		logutil.Trace("pull progress", "digest", p.Digest, "completed", p.Completed, "total", p.Total)
		return nil
	})
	if err != nil {
		return fmt.Errorf("pull model %q: %w", e.config.Model, err)
	}
	return nil
}

// sameModel vergleicht Modellnamen mit implizitem ":latest"
func sameModel(a, b string) bool {
	if a == b {
		return true
	}
	withTag := func(s string) string {
		if strings.Contains(s, ":") {
			return s
		}
		return s + ":latest"
	}
	return withTag(a) == withTag(b)
}

// Recognize erkennt den Text der Bilddatei unter path
func (e *Engine) Recognize(ctx context.Context, path string, opts ocr.Options) (string, error) {
	prompt, ok := prompts[opts.Mode]
	if !ok {
		return "", fmt.Errorf("%w: %s", ocr.ErrInvalidMode, opts.Mode)
	}

	img, err := ocr.Prepare(path, opts)
	if err != nil {
		return "", err
	}

	var text string
	if opts.Mode == ocr.ModeMultiCrop {
		text, err = e.recognizeTiles(ctx, img, prompt)
	} else {
		text, err = e.recognizeImage(ctx, img, prompt)
	}
	if err != nil {
		return "", err
	}

	if opts.Mode.Renders() && opts.RenderFile != "" {
		if err := render.WriteFile(opts.RenderFile, e.config.Model, text); err != nil {
			return "", err
		}
	}

	return text, nil
}

func (e *Engine) recognizeTiles(ctx context.Context, img *vision.ImageInput, prompt string) (string, error) {
	tiles, err := vision.Tiles(img, maxTiles, tileSize)
	if err != nil {
		return "", err
	}

	results := make([]string, len(tiles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Parallel)
	for i, tile := range tiles {
		g.Go(func() error {
			text, err := e.recognizeImage(ctx, tile, prompt)
			if err != nil {
				return fmt.Errorf("tile %d: %w", i, err)
			}
			results[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	return strings.Join(results, "\n"), nil
}

func (e *Engine) recognizeImage(ctx context.Context, img *vision.ImageInput, prompt string) (string, error) {
	data, err := vision.EncodePNG(img)
	if err != nil {
		return "", err
	}

	stream := false
	req := &GenerateRequest{
		Model:     e.config.Model,
		Prompt:    prompt,
		Images:    []ImageData{data},
		Stream:    &stream,
		KeepAlive: &Duration{e.config.KeepAlive},
		Options:   map[string]any{"temperature": 0},
	}

	var sb strings.Builder
	err = e.client.Generate(ctx, req, func(resp GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", err
	}

	return norm.NFC.String(strings.TrimSpace(sb.String())), nil
}
