// Package server - Haupt-Router und Server-Setup fuer den OCR-Dienst
// Beinhaltet: Server-Struct, Router-Registrierung, Middleware-Kette
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/qazasd2518995/ocrproject/history"
	"github.com/qazasd2518995/ocrproject/scratch"
	"github.com/qazasd2518995/ocrproject/version"
)

// Server verbindet Modell, Scratch-Verzeichnis und Historie mit dem Router
type Server struct {
	model   *Model
	scratch *scratch.Dir
	history history.Store

	// maxBody begrenzt Request-Bodies, 0 = unbegrenzt
	maxBody int64
	// sentry aktiviert die Sentry-Middleware
	sentry bool
}

// Option konfiguriert einen Server
type Option func(*Server)

// WithMaxBody setzt das Body-Limit in Bytes
func WithMaxBody(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// WithSentry meldet Fehler an den initialisierten Sentry-Client
func WithSentry() Option {
	return func(s *Server) { s.sentry = true }
}

// NewServer erstellt einen Server. model darf nil sein (nicht geladen).
func NewServer(model *Model, dir *scratch.Dir, store history.Store, opts ...Option) *Server {
	s := &Server{model: model, scratch: dir, history: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateRoutes erstellt und konfiguriert den HTTP-Router
func (s *Server) GenerateRoutes() http.Handler {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodHead, http.MethodOptions}
	corsConfig.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"Accept",
		"User-Agent",
		"X-Requested-With",
		requestIDHeader,
	}
	corsConfig.ExposeHeaders = []string{requestIDHeader}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(requestIDMiddleware(), requestLogger(), gin.Recovery())
	if s.sentry {
		// innerhalb von Recovery, damit Panics zuerst hier ankommen
		r.Use(sentryMiddleware())
	}
	r.Use(
		cors.New(corsConfig),
		bodyLimitMiddleware(s.maxBody),
	)

	// General
	r.HEAD("/", func(c *gin.Context) { c.String(http.StatusOK, "ocrproject is running") })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ocrproject is running") })
	r.HEAD("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })
	r.GET("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })

	// OCR
	r.GET("/health", s.HealthHandler)
	r.POST("/ocr", s.OCRHandler)
	r.POST("/ocr/advanced", s.AdvancedOCRHandler)

	// History
	r.GET("/history", s.ListHistoryHandler)
	r.POST("/history", s.AddHistoryHandler)
	r.DELETE("/history", s.ClearHistoryHandler)
	r.DELETE("/history/:id", s.DeleteHistoryHandler)
	r.POST("/history/sync", s.SyncHistoryHandler)

	return r
}
