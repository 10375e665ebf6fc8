// MODUL: engine
// ZWECK: Abstraktion der externen OCR-Faehigkeit
// INPUT: Pfad zu einer Bilddatei, Options (Modus, Region, Farbe, Render-Ziel)
// OUTPUT: Erkannter Text, optional HTML in Options.RenderFile
// NEBENEFFEKTE: Engines duerfen Options.RenderFile schreiben
// ABHAENGIGKEITEN: context (Standardbibliothek)
// HINWEISE: Implementierungen in ocr/ollama und ocr/tesseract

package ocr

import "context"

// Options steuern einen einzelnen Recognize-Aufruf
type Options struct {
	Mode Mode

	// Box beschraenkt die Erkennung auf einen Bereich, z.B. "[10,20,300,120]".
	// Wird unverarbeitet an die Engine weitergegeben.
	Box string

	// Color beschraenkt die Erkennung auf Pixel einer Farbe (red, green, blue)
	Color string

	// RenderFile ist der Pfad, in den bei ModeFormatRender HTML geschrieben wird
	RenderFile string
}

// Device beschreibt wo das Modell ausgefuehrt wird
type Device struct {
	Name        string
	Accelerated bool
}

// Engine ist die undurchsichtige OCR-Faehigkeit hinter dem Server
type Engine interface {
	// Name ist der Konfigurationsname der Engine (ollama, tesseract)
	Name() string

	// Model beschreibt das geladene Modell fuer Health-Ausgaben
	Model() string

	// Load initialisiert das Modell genau einmal
	Load(ctx context.Context) (Device, error)

	// Recognize erkennt den Text der Bilddatei unter path
	Recognize(ctx context.Context, path string, opts Options) (string, error)

	// Close gibt Ressourcen der Engine frei
	Close() error
}
