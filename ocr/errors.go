// MODUL: errors
// ZWECK: Fehler-Definitionen der OCR-Domaene
// INPUT: Keine
// OUTPUT: Sentinel-Fehler fuer errors.Is
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: errors (Standardbibliothek)
// HINWEISE: HTTP-Status-Zuordnung liegt in server/errors.go

package ocr

import "errors"

var (
	// ErrImageRequired wird geworfen wenn kein Bild mitgeschickt wurde
	ErrImageRequired = errors.New("image is required")

	// ErrInvalidMode wird geworfen bei unbekanntem ocr_type
	ErrInvalidMode = errors.New("invalid ocr_type")

	// ErrModelNotLoaded wird geworfen wenn das Modell nicht initialisiert ist
	ErrModelNotLoaded = errors.New("model not loaded")

	// ErrInvalidBox wird geworfen bei unlesbarem ocr_box
	ErrInvalidBox = errors.New("invalid ocr_box")

	// ErrInvalidColor wird geworfen bei unbekanntem ocr_color
	ErrInvalidColor = errors.New("invalid ocr_color")
)
