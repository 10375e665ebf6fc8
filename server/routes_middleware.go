// routes_middleware.go - Middleware-Funktionen fuer den HTTP-Router
// Enthaelt: requestIDMiddleware(), requestLogger(), bodyLimitMiddleware(), sentryMiddleware()

package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/qazasd2518995/ocrproject/logutil"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestIDMiddleware vergibt jeder Anfrage eine ID (oder uebernimmt die des Clients)
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger protokolliert jede Anfrage ueber slog
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
			"client", c.ClientIP(),
		}
		if c.Request.URL.Path == "/health" {
			logutil.Trace("request", args...)
			return
		}
		slog.Debug("request", args...)
	}
}

// bodyLimitMiddleware begrenzt den Request-Body auf limit Bytes
func bodyLimitMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}

		if c.Request.ContentLength > limit {
			abortWithError(c, fmt.Errorf("%w: %d > %d bytes", errBodyTooLarge, c.Request.ContentLength, limit))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// bindJSON dekodiert den Body und unterscheidet zu grosse von kaputten Bodies
func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: limit %d bytes", errBodyTooLarge, maxErr.Limit)
		}
		return fmt.Errorf("%w: %v", errMalformedJSON, err)
	}
	return nil
}

// sentryMiddleware meldet Panics und 5xx-Fehler an Sentry.
// Nur aktiv, wenn sentry.Init vorher erfolgreich war.
func sentryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetRequest(c.Request)
		hub.Scope().SetTag(requestIDKey, c.GetString(requestIDKey))
		c.Request = c.Request.WithContext(sentry.SetHubOnContext(c.Request.Context(), hub))

		defer func() {
			if r := recover(); r != nil {
				hub.RecoverWithContext(c.Request.Context(), r)
				hub.Flush(2 * time.Second)
				panic(r)
			}
		}()

		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError {
			return
		}
		for _, ginErr := range c.Errors {
			hub.CaptureException(ginErr.Err)
		}
	}
}
