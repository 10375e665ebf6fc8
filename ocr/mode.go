// MODUL: mode
// ZWECK: Geschlossene Aufzaehlung der OCR-Modi (ocr_type)
// INPUT: ocr_type Strings aus Requests
// OUTPUT: Mode Werte; ParseMode meldet unbekannte Modi, ResolveMode faellt auf ModeOCR zurueck
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: Keine (nur Standardbibliothek)
// HINWEISE: Neue Modi muessen in allModes und in jedem switch ueber Mode ergaenzt werden

package ocr

import (
	"fmt"
	"strings"
)

// Mode waehlt das Erkennungsverhalten der Engine
type Mode int

const (
	// ModeOCR ist reine Texterkennung (Default)
	ModeOCR Mode = iota
	// ModeFormat erhaelt Struktur (Ueberschriften, Tabellen, Formeln)
	ModeFormat
	// ModeMultiCrop erkennt mehrere automatisch bestimmte Teilbereiche
	ModeMultiCrop
	// ModeFormatRender ist ModeFormat plus gerendertes HTML
	ModeFormatRender
)

var allModes = []Mode{ModeOCR, ModeFormat, ModeMultiCrop, ModeFormatRender}

// ParseMode wandelt einen ocr_type String in einen Mode um.
// Ein leerer String ergibt ModeOCR.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeOCR, nil
	}

	for _, m := range allModes {
		if m.String() == s {
			return m, nil
		}
	}

	return ModeOCR, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// ResolveMode ist die nachsichtige Variante von ParseMode fuer HTTP-Requests:
// unbekannte Werte ergeben reine Texterkennung.
func ResolveMode(s string) Mode {
	m, _ := ParseMode(s)
	return m
}

// String gibt den ocr_type Namen zurueck
func (m Mode) String() string {
	switch m {
	case ModeOCR:
		return "ocr"
	case ModeFormat:
		return "format"
	case ModeMultiCrop:
		return "multi-crop"
	case ModeFormatRender:
		return "format-render"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Formatted meldet ob der Modus strukturerhaltende Ausgabe verlangt
func (m Mode) Formatted() bool {
	switch m {
	case ModeFormat, ModeFormatRender:
		return true
	default:
		return false
	}
}

// Renders meldet ob der Modus eine HTML-Datei erzeugt
func (m Mode) Renders() bool {
	return m == ModeFormatRender
}

// MarshalText implementiert encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implementiert encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
