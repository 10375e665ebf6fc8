// MODUL: errors
// ZWECK: Fehler-Definitionen und Zuordnung zu HTTP-Status-Codes
// INPUT: Fehler aus Handlern, Engine und Dekodierung
// OUTPUT: JSON-Fehlerantworten {"error": msg}
// NEBENEFFEKTE: HTTP-Responses schreiben, Log-Ausgaben
// ABHAENGIGKEITEN: gin-gonic/gin (extern)
// HINWEISE: Unbekannte Fehler (Dekodierung, Engine) sind 500 mit Originalmeldung

package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qazasd2518995/ocrproject/ocr"
)

var (
	// errMalformedJSON wird bei nicht dekodierbarem Request-Body geworfen
	errMalformedJSON = errors.New("malformed JSON body")

	// errBodyTooLarge wird geworfen wenn der Body GOTOCR_MAX_BODY ueberschreitet
	errBodyTooLarge = errors.New("request body too large")

	errUsernameRequired = errors.New("Username required")
	errRecordRequired   = errors.New("Record required")
)

// errorStatus mappt bekannte Fehler auf HTTP-Status
var errorStatus = map[error]int{
	ocr.ErrImageRequired:  http.StatusBadRequest,
	ocr.ErrInvalidMode:    http.StatusBadRequest,
	ocr.ErrModelNotLoaded: http.StatusInternalServerError,
	errMalformedJSON:      http.StatusBadRequest,
	errBodyTooLarge:       http.StatusRequestEntityTooLarge,
	errUsernameRequired:   http.StatusBadRequest,
	errRecordRequired:     http.StatusBadRequest,
}

// statusFor gibt den HTTP-Status fuer err zurueck
func statusFor(err error) int {
	if status, ok := errorStatus[err]; ok {
		return status
	}

	for known, status := range errorStatus {
		if errors.Is(err, known) {
			return status
		}
	}

	return http.StatusInternalServerError
}

// abortWithError schreibt {"error": msg} und haengt err an den gin-Context
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	logError(c, status, err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// abortHistoryError nutzt fuer Serverfehler das Format {"success": false, "error": msg}
func abortHistoryError(c *gin.Context, err error) {
	status := statusFor(err)
	logError(c, status, err)
	if status >= http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func logError(c *gin.Context, status int, err error) {
	_ = c.Error(err)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(c.Request.Context(), level, "request failed",
		"request_id", c.GetString(requestIDKey),
		"path", c.FullPath(),
		"status", status,
		"error", err)
}
