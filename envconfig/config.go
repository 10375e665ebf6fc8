// config.go - Haupt-Konfigurationsfunktionen fuer den OCR-Server
//
// Dieses Modul enthaelt:
// - Host: Listen-Adresse des OCR-Servers (GOTOCR_HOST)
// - OllamaHost: Adresse des Ollama-Backends (OLLAMA_HOST)
// - Engine/Model: Auswahl der OCR-Engine und des Modells
// - KeepAlive: Keep-Alive-Dauer des Modells im Backend (GOTOCR_KEEP_ALIVE)
// - LoadTimeout: Timeout fuer die Modell-Initialisierung (GOTOCR_LOAD_TIMEOUT)
// - TmpDir: Verzeichnis fuer temporaere Bilddateien (GOTOCR_TMPDIR)
// - LogLevel: Log-Level (GOTOCR_DEBUG)
//
// Weitere Konfigurationen sind ausgelagert:
// - config_features.go: Feature-Flags, Limits, History, Tesseract
// - config_utils.go: Utility-Funktionen und AsMap/Values
package envconfig

import (
	"log/slog"
	"math"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Host gibt Scheme und Host des OCR-Servers zurueck
// Konfigurierbar via GOTOCR_HOST
// Default: http://0.0.0.0:5000
func Host() *url.URL {
	return hostURL("GOTOCR_HOST", "0.0.0.0", "5000")
}

// OllamaHost gibt Scheme und Host des Ollama-Backends zurueck
// Konfigurierbar via OLLAMA_HOST
// Default: http://127.0.0.1:11434
func OllamaHost() *url.URL {
	return hostURL("OLLAMA_HOST", "127.0.0.1", "11434")
}

// hostURL parst eine Host-Variable im Format [scheme://]host[:port][/path]
func hostURL(key, defaultHost, defaultPort string) *url.URL {
	s := strings.TrimSpace(Var(key))
	scheme, hostport, ok := strings.Cut(s, "://")
	switch {
	case !ok:
		scheme, hostport = "http", s
	case scheme == "http":
		defaultPort = "80"
	case scheme == "https":
		defaultPort = "443"
	}

	hostport, path, _ := strings.Cut(hostport, "/")
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		host, port = defaultHost, defaultPort
		if ip := net.ParseIP(strings.Trim(hostport, "[]")); ip != nil {
			host = ip.String()
		} else if hostport != "" {
			host = hostport
		}
	}

	if n, err := strconv.ParseInt(port, 10, 32); err != nil || n > 65535 || n < 0 {
		slog.Warn("invalid port, using default", "key", key, "port", port, "default", defaultPort)
		port = defaultPort
	}

	return &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, port),
		Path:   path,
	}
}

// Engine gibt den Namen der OCR-Engine zurueck
// Konfigurierbar via GOTOCR_ENGINE (ollama, tesseract)
// Default: ollama
func Engine() string {
	if s := strings.ToLower(Var("GOTOCR_ENGINE")); s != "" {
		return s
	}
	return "ollama"
}

// Model gibt den Modellnamen fuer das Ollama-Backend zurueck
// Konfigurierbar via GOTOCR_MODEL
// Default: deepseek-ocr
func Model() string {
	if s := Var("GOTOCR_MODEL"); s != "" {
		return s
	}
	return "deepseek-ocr"
}

// KeepAlive gibt die Dauer zurueck, die das Modell im Backend geladen bleibt
// Konfigurierbar via GOTOCR_KEEP_ALIVE
// Negative Werte = unendlich (Default), 0 = sofort entladen
func KeepAlive() (keepAlive time.Duration) {
	keepAlive = -1
	if s := Var("GOTOCR_KEEP_ALIVE"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			keepAlive = d
		} else if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			keepAlive = time.Duration(n) * time.Second
		}
	}

	if keepAlive < 0 {
		return -1
	}

	return keepAlive
}

// LoadTimeout gibt das Timeout fuer die Modell-Initialisierung zurueck
// Konfigurierbar via GOTOCR_LOAD_TIMEOUT
// 0 oder negative Werte = unendlich
// Default: 10 Minuten (erster Start laedt das Modell herunter)
func LoadTimeout() (loadTimeout time.Duration) {
	loadTimeout = 10 * time.Minute
	if s := Var("GOTOCR_LOAD_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			loadTimeout = d
		} else if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			loadTimeout = time.Duration(n) * time.Second
		}
	}

	if loadTimeout <= 0 {
		return time.Duration(math.MaxInt64)
	}

	return loadTimeout
}

// TmpDir gibt das Verzeichnis fuer temporaere Bilddateien zurueck
// Konfigurierbar via GOTOCR_TMPDIR
// Default: os.TempDir()
func TmpDir() string {
	if s := Var("GOTOCR_TMPDIR"); s != "" {
		return s
	}
	return os.TempDir()
}

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via GOTOCR_DEBUG
// Werte: 0/false = INFO (Default), 1/true = DEBUG, 2 = TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("GOTOCR_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
