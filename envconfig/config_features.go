// config_features.go - Feature-Flags, Limits und Backend-Optionen
//
// Dieses Modul enthaelt:
// - Feature-Flags (NoPull)
// - Request- und Parallelitaets-Limits
// - History-Speicher
// - Tesseract- und Sentry-Einstellungen
package envconfig

import (
	"strings"
)

// =============================================================================
// Feature-Flags
// =============================================================================

var (
	// NoPull verhindert das Herunterladen eines fehlenden Modells beim Start
	NoPull = Bool("GOTOCR_NOPULL")
)

// =============================================================================
// Limits
// =============================================================================

var (
	// MaxBody ist die maximale Groesse eines Request-Bodys in Bytes
	MaxBody = Uint64("GOTOCR_MAX_BODY", 32<<20)

	// CropParallel ist die Anzahl gleichzeitig erkannter Kacheln im multi-crop Modus
	CropParallel = Uint("GOTOCR_CROP_PARALLEL", 2)
)

// =============================================================================
// History
// =============================================================================

var (
	// HistoryDB ist der Pfad zur SQLite-Datenbank, leer = In-Memory
	HistoryDB = String("GOTOCR_HISTORY_DB")

	// HistoryLimit ist die maximale Anzahl Eintraege pro Benutzer
	HistoryLimit = Uint("GOTOCR_HISTORY_LIMIT", 100)
)

// =============================================================================
// Backends
// =============================================================================

var (
	// SentryDSN aktiviert Fehler-Reporting an Sentry
	SentryDSN = String("SENTRY_DSN")
)

// TesseractLanguages gibt die Tesseract-Sprachen zurueck
// Konfigurierbar via GOTOCR_TESSERACT_LANGS ("eng+deu" oder "eng,deu")
// Default: eng
func TesseractLanguages() []string {
	s := Var("GOTOCR_TESSERACT_LANGS")
	if s == "" {
		return []string{"eng"}
	}

	var langs []string
	for _, l := range strings.FieldsFunc(s, func(r rune) bool { return r == '+' || r == ',' }) {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}

	if len(langs) == 0 {
		return []string{"eng"}
	}
	return langs
}
