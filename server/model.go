// MODUL: model
// ZWECK: Haelt die einmal initialisierte OCR-Engine und ihr Geraet
// INPUT: ocr.Engine, Context mit Timeout
// OUTPUT: *Model oder Fehler beim Laden
// NEBENEFFEKTE: Engine.Load (z.B. Modell-Download), Log-Ausgaben
// ABHAENGIGKEITEN: ocr (intern)
// HINWEISE: Nach LoadModel unveraenderlich, daher kein Lock noetig

package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/qazasd2518995/ocrproject/ocr"
)

// Model ist das geladene OCR-Modell. Ein nil *Model gilt als nicht geladen.
type Model struct {
	engine ocr.Engine
	device ocr.Device
}

// LoadModel initialisiert engine genau einmal
func LoadModel(ctx context.Context, engine ocr.Engine) (*Model, error) {
	start := time.Now()
	slog.Info("loading model", "engine", engine.Name(), "model", engine.Model())

	device, err := engine.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s model %q: %w", engine.Name(), engine.Model(), err)
	}

	if !device.Accelerated {
		slog.Warn("model runs on CPU, recognition will be slow", "device", device.Name)
	}
	slog.Info("model ready", "device", device.Name, "accelerated", device.Accelerated, "duration", time.Since(start).Round(time.Millisecond))

	return &Model{engine: engine, device: device}, nil
}

func (m *Model) Loaded() bool {
	return m != nil && m.engine != nil
}

func (m *Model) Accelerated() bool {
	return m.Loaded() && m.device.Accelerated
}

func (m *Model) Engine() ocr.Engine {
	if m == nil {
		return nil
	}
	return m.engine
}
