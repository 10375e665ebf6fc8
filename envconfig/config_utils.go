// config_utils.go - Utility-Funktionen und Export fuer Konfiguration
//
// Dieses Modul enthaelt:
// - BoolWithDefault/Bool: Boolean-Getter mit Default-Wert
// - String: String-Getter
// - Uint/Uint64: Integer-Getter mit Default-Wert
// - EnvVar: Struktur fuer Environment-Variablen-Info
// - AsMap: Gibt alle Konfigurationen als Map zurueck
// - Values: Gibt alle Konfigurationswerte als String-Map zurueck
package envconfig

import (
	"fmt"
	"log/slog"
	"strconv"
)

// =============================================================================
// Boolean-Getter
// =============================================================================

// BoolWithDefault gibt eine Funktion zurueck, die einen Bool mit Default-Wert liest
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return defaultValue
	}
}

// Bool gibt eine Funktion zurueck, die einen Bool liest (Default: false)
func Bool(k string) func() bool {
	withDefault := BoolWithDefault(k)
	return func() bool {
		return withDefault(false)
	}
}

// =============================================================================
// String-Getter
// =============================================================================

// String gibt eine Funktion zurueck, die einen String liest
func String(s string) func() string {
	return func() string {
		return Var(s)
	}
}

// =============================================================================
// Integer-Getter
// =============================================================================

// Uint gibt eine Funktion zurueck, die einen uint mit Default-Wert liest
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// Uint64 gibt eine Funktion zurueck, die einen uint64 mit Default-Wert liest
func Uint64(key string, defaultValue uint64) func() uint64 {
	return func() uint64 {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return n
			}
		}
		return defaultValue
	}
}

// =============================================================================
// Export-Strukturen und -Funktionen
// =============================================================================

// EnvVar repraesentiert eine Environment-Variable mit Metadaten
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap gibt alle Konfigurationen als Map zurueck
// Enthaelt Namen, aktuelle Werte und Beschreibungen
func AsMap() map[string]EnvVar {
	sentry := "disabled"
	if SentryDSN() != "" {
		sentry = "enabled"
	}

	return map[string]EnvVar{
		"GOTOCR_DEBUG":           {"GOTOCR_DEBUG", LogLevel(), "Show additional debug information (e.g. GOTOCR_DEBUG=1)"},
		"GOTOCR_HOST":            {"GOTOCR_HOST", Host(), "IP Address for the OCR server (default 0.0.0.0:5000)"},
		"GOTOCR_ENGINE":          {"GOTOCR_ENGINE", Engine(), "OCR engine: ollama or tesseract (default ollama)"},
		"GOTOCR_MODEL":           {"GOTOCR_MODEL", Model(), "Ollama model used for recognition (default deepseek-ocr)"},
		"GOTOCR_NOPULL":          {"GOTOCR_NOPULL", NoPull(), "Do not pull a missing model on startup"},
		"GOTOCR_KEEP_ALIVE":      {"GOTOCR_KEEP_ALIVE", KeepAlive(), "The duration the model stays loaded in the backend (default forever)"},
		"GOTOCR_LOAD_TIMEOUT":    {"GOTOCR_LOAD_TIMEOUT", LoadTimeout(), "How long model initialization may take (default \"10m\")"},
		"GOTOCR_TMPDIR":          {"GOTOCR_TMPDIR", TmpDir(), "Directory for temporary image files"},
		"GOTOCR_MAX_BODY":        {"GOTOCR_MAX_BODY", MaxBody(), "Maximum request body size in bytes (default 32 MiB)"},
		"GOTOCR_CROP_PARALLEL":   {"GOTOCR_CROP_PARALLEL", CropParallel(), "Tiles recognized concurrently in multi-crop mode (default 2)"},
		"GOTOCR_HISTORY_DB":      {"GOTOCR_HISTORY_DB", HistoryDB(), "SQLite database for OCR history (default in-memory)"},
		"GOTOCR_HISTORY_LIMIT":   {"GOTOCR_HISTORY_LIMIT", HistoryLimit(), "History records kept per user (default 100)"},
		"GOTOCR_TESSERACT_LANGS": {"GOTOCR_TESSERACT_LANGS", TesseractLanguages(), "Tesseract languages, e.g. eng+deu (default eng)"},
		"OLLAMA_HOST":            {"OLLAMA_HOST", OllamaHost(), "Address of the Ollama backend (default 127.0.0.1:11434)"},
		"SENTRY_DSN":             {"SENTRY_DSN", sentry, "Report server errors to Sentry"},

		// Proxy-Einstellungen
		"HTTP_PROXY":  {"HTTP_PROXY", String("HTTP_PROXY")(), "HTTP proxy"},
		"HTTPS_PROXY": {"HTTPS_PROXY", String("HTTPS_PROXY")(), "HTTPS proxy"},
		"NO_PROXY":    {"NO_PROXY", String("NO_PROXY")(), "No proxy"},
	}
}

// Values gibt alle Konfigurationswerte als String-Map zurueck
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
