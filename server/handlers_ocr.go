// MODUL: handlers_ocr
// ZWECK: HTTP-Handler fuer Health, /ocr und /ocr/advanced
// INPUT: JSON-Requests mit base64-Bild, ocr_type, optional ocr_box/ocr_color
// OUTPUT: JSON-Antworten mit erkanntem Text, optional render_html
// NEBENEFFEKTE: Legt pro Anfrage Scratch-Dateien an und loescht sie wieder
// ABHAENGIGKEITEN: gin-gonic/gin (extern), ocr, vision, scratch (intern)
// HINWEISE: Jeder Ausgang eines Handlers gibt die Scratch-Dateien per defer frei

package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/qazasd2518995/ocrproject/api"
	"github.com/qazasd2518995/ocrproject/ocr"
	"github.com/qazasd2518995/ocrproject/vision"
)

// HealthHandler meldet ob das Modell geladen ist
func (s *Server) HealthHandler(c *gin.Context) {
	resp := api.HealthResponse{
		Status:       "healthy",
		ModelLoaded:  s.model.Loaded(),
		GPUAvailable: s.model.Accelerated(),
	}
	if e := s.model.Engine(); e != nil {
		resp.Engine = e.Name()
		resp.Model = e.Model()
	}
	c.JSON(http.StatusOK, resp)
}

// OCRHandler erkennt den Text eines Bildes im gewaehlten Modus
func (s *Server) OCRHandler(c *gin.Context) {
	if !s.model.Loaded() {
		abortWithError(c, ocr.ErrModelNotLoaded)
		return
	}

	var req api.OCRRequest
	if err := bindJSON(c, &req); err != nil {
		abortWithError(c, err)
		return
	}

	if req.Image == "" {
		abortWithError(c, ocr.ErrImageRequired)
		return
	}

	mode := ocr.ResolveMode(req.OCRType)

	text, html, err := s.recognize(c, req.Image, ocr.Options{Mode: mode})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.OCRResponse{
		Success:    true,
		Text:       text,
		OCRType:    requestedType(req.OCRType),
		RenderHTML: html,
	})
}

// AdvancedOCRHandler erkennt Text in einem Bereich oder einer Farbe
func (s *Server) AdvancedOCRHandler(c *gin.Context) {
	if !s.model.Loaded() {
		abortWithError(c, ocr.ErrModelNotLoaded)
		return
	}

	var req api.AdvancedOCRRequest
	if err := bindJSON(c, &req); err != nil {
		abortWithError(c, err)
		return
	}

	if req.Image == "" {
		abortWithError(c, ocr.ErrImageRequired)
		return
	}

	// nur format ist strukturiert, alles andere ist reine Texterkennung
	mode := ocr.ModeOCR
	if ocr.ResolveMode(req.OCRType) == ocr.ModeFormat {
		mode = ocr.ModeFormat
	}

	// Box und Farbe schliessen sich aus, die Box gewinnt
	opts := ocr.Options{Mode: mode}
	if req.OCRBox != "" {
		opts.Box = req.OCRBox
	} else if req.OCRColor != "" {
		opts.Color = req.OCRColor
	}

	text, _, err := s.recognize(c, req.Image, opts)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.AdvancedOCRResponse{
		Success:  true,
		Text:     text,
		OCRType:  requestedType(req.OCRType),
		OCRBox:   req.OCRBox,
		OCRColor: req.OCRColor,
	})
}

// recognize dekodiert das Bild, legt es als PNG ab und ruft die Engine.
// Bei Render-Modi wird zusaetzlich ein Pfad fuer das HTML reserviert.
func (s *Server) recognize(c *gin.Context, image string, opts ocr.Options) (text, html string, err error) {
	ctx := c.Request.Context()

	data, err := vision.DecodeBase64(image)
	if err != nil {
		return "", "", err
	}

	img, err := vision.LoadImageFromBytes(data)
	if err != nil {
		return "", "", err
	}

	png, err := vision.EncodePNG(img)
	if err != nil {
		return "", "", err
	}

	input, err := s.scratch.Write(".png", png)
	if err != nil {
		return "", "", err
	}
	defer release(ctx, input.Release)

	var renderPath string
	if opts.Mode.Renders() {
		out := s.scratch.Reserve(".html")
		defer release(ctx, out.Release)
		renderPath = out.Path()
		opts.RenderFile = renderPath
	}

	slog.Debug("recognize", "request_id", c.GetString(requestIDKey), "mode", opts.Mode, "width", img.Width, "height", img.Height, "format", img.Format, "mime", img.Format.MimeType())

	text, err = s.model.Engine().Recognize(ctx, input.Path(), opts)
	if err != nil {
		return "", "", err
	}

	if renderPath != "" {
		if b, err := os.ReadFile(renderPath); err == nil && len(b) > 0 {
			html = string(b)
		}
	}

	return text, html, nil
}

// requestedType gibt den ocr_type so zurueck wie er geschickt wurde
func requestedType(s string) string {
	if s == "" {
		return ocr.ModeOCR.String()
	}
	return s
}

func release(ctx context.Context, fn func() error) {
	if err := fn(); err != nil {
		slog.WarnContext(ctx, "failed to remove scratch file", "error", err)
	}
}
