package server

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/qazasd2518995/ocrproject/api"
	"github.com/qazasd2518995/ocrproject/ocr"
)

func TestHealth(t *testing.T) {
	t.Run("nicht geladen", func(t *testing.T) {
		ts := newTestServer(t, nil)
		w := ts.do(t, http.MethodGet, "/health", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		want := map[string]any{"status": "healthy", "model_loaded": false, "gpu_available": false}
		if diff := cmp.Diff(want, decode(t, w)); diff != "" {
			t.Errorf("health mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("geladen", func(t *testing.T) {
		ts := newTestServer(t, &fakeEngine{device: ocr.Device{Name: "gpu", Accelerated: true}})
		w := ts.do(t, http.MethodGet, "/health", nil)
		want := map[string]any{
			"status":        "healthy",
			"model_loaded":  true,
			"gpu_available": true,
			"engine":        "fake",
			"model":         "fake-ocr",
		}
		if diff := cmp.Diff(want, decode(t, w)); diff != "" {
			t.Errorf("health mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestRootAndVersion(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(t, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK || w.Body.String() != "ocrproject is running" {
		t.Errorf("GET / = %d %q", w.Code, w.Body.String())
	}

	w = ts.do(t, http.MethodHead, "/", nil)
	if w.Code != http.StatusOK {
		t.Errorf("HEAD / = %d", w.Code)
	}

	w = ts.do(t, http.MethodGet, "/api/version", nil)
	if _, ok := decode(t, w)["version"]; !ok {
		t.Errorf("version fehlt: %s", w.Body.String())
	}
}

func TestOCRModelNotLoaded(t *testing.T) {
	ts := newTestServer(t, nil)

	for _, body := range []any{
		api.OCRRequest{Image: testImageBase64(t)},
		api.OCRRequest{},
		"{kaputt",
	} {
		for _, path := range []string{"/ocr", "/ocr/advanced"} {
			w := ts.do(t, http.MethodPost, path, body)
			if w.Code != http.StatusInternalServerError {
				t.Errorf("%s status = %d, erwartet 500", path, w.Code)
			}
			if got := decode(t, w)["error"]; got != "model not loaded" {
				t.Errorf("%s error = %v", path, got)
			}
		}
	}
}

func TestOCRValidation(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   any
		status int
		errSub string
	}{
		{name: "ohne Bild", path: "/ocr", body: api.OCRRequest{OCRType: "ocr"}, status: http.StatusBadRequest, errSub: "image is required"},
		{name: "advanced ohne Bild", path: "/ocr/advanced", body: api.AdvancedOCRRequest{OCRBox: "[0,0,1,1]"}, status: http.StatusBadRequest, errSub: "image is required"},
		{name: "kaputtes JSON", path: "/ocr", body: `{"image": `, status: http.StatusBadRequest, errSub: "malformed JSON"},
		{name: "kaputtes base64", path: "/ocr", body: api.OCRRequest{Image: "!!!kein base64!!!"}, status: http.StatusInternalServerError, errSub: "invalid base64"},
		{name: "kein Bild", path: "/ocr", body: api.OCRRequest{Image: "aGFsbG8gd2VsdA=="}, status: http.StatusInternalServerError, errSub: "cannot identify image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, &fakeEngine{text: "x"})

			w := ts.do(t, http.MethodPost, tt.path, tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, erwartet %d: %s", w.Code, tt.status, w.Body.String())
			}
			if msg, _ := decode(t, w)["error"].(string); !strings.Contains(msg, tt.errSub) {
				t.Errorf("error = %q, erwartet %q", msg, tt.errSub)
			}
			if len(ts.engine.calls) != 0 {
				t.Errorf("Engine darf nicht aufgerufen werden, %d Aufrufe", len(ts.engine.calls))
			}
			if n := ts.scratchFiles(t); n != 0 {
				t.Errorf("%d Scratch-Dateien uebrig", n)
			}
		})
	}
}

func TestOCRModes(t *testing.T) {
	tests := []struct {
		ocrType   string
		wantMode  ocr.Mode
		wantFiles int
		wantHTML  bool
	}{
		{ocrType: "", wantMode: ocr.ModeOCR, wantFiles: 1},
		{ocrType: "ocr", wantMode: ocr.ModeOCR, wantFiles: 1},
		{ocrType: "format", wantMode: ocr.ModeFormat, wantFiles: 1},
		{ocrType: "multi-crop", wantMode: ocr.ModeMultiCrop, wantFiles: 1},
		{ocrType: "format-render", wantMode: ocr.ModeFormatRender, wantFiles: 1, wantHTML: true},
	}

	for _, tt := range tests {
		t.Run(tt.wantMode.String()+"/"+tt.ocrType, func(t *testing.T) {
			ts := newTestServer(t, &fakeEngine{text: "Hallo Welt", html: "<p>Hallo Welt</p>"})

			w := ts.do(t, http.MethodPost, "/ocr", api.OCRRequest{Image: testImageBase64(t), OCRType: tt.ocrType})
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", w.Code, w.Body.String())
			}

			got := decode(t, w)
			want := map[string]any{"success": true, "text": "Hallo Welt", "ocr_type": tt.wantMode.String()}
			if tt.wantHTML {
				want["render_html"] = "<p>Hallo Welt</p>"
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Antwort mismatch (-want +got):\n%s", diff)
			}

			e := ts.engine
			if len(e.calls) != 1 || e.calls[0].Mode != tt.wantMode {
				t.Fatalf("Engine-Aufrufe = %+v", e.calls)
			}
			if e.filesSeen[0] != tt.wantFiles {
				t.Errorf("waehrend Recognize %d Scratch-Dateien, erwartet %d", e.filesSeen[0], tt.wantFiles)
			}
			if hasRender := e.calls[0].RenderFile != ""; hasRender != tt.wantHTML {
				t.Errorf("RenderFile gesetzt = %v, erwartet %v", hasRender, tt.wantHTML)
			}
			if n := ts.scratchFiles(t); n != 0 {
				t.Errorf("%d Scratch-Dateien uebrig", n)
			}
		})
	}
}

func TestOCRUnknownModeFallsBackToOCR(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     any
		wantMode ocr.Mode
		wantType string
	}{
		{name: "ocr unbekannt", path: "/ocr", body: api.OCRRequest{OCRType: "handwriting"}, wantMode: ocr.ModeOCR, wantType: "handwriting"},
		{name: "advanced multi-crop", path: "/ocr/advanced", body: api.AdvancedOCRRequest{OCRType: "multi-crop"}, wantMode: ocr.ModeOCR, wantType: "multi-crop"},
		{name: "advanced format-render", path: "/ocr/advanced", body: api.AdvancedOCRRequest{OCRType: "format-render"}, wantMode: ocr.ModeOCR, wantType: "format-render"},
		{name: "advanced format", path: "/ocr/advanced", body: api.AdvancedOCRRequest{OCRType: "format"}, wantMode: ocr.ModeFormat, wantType: "format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, &fakeEngine{text: "x"})

			switch b := tt.body.(type) {
			case api.OCRRequest:
				b.Image = testImageBase64(t)
				tt.body = b
			case api.AdvancedOCRRequest:
				b.Image = testImageBase64(t)
				tt.body = b
			}

			w := ts.do(t, http.MethodPost, tt.path, tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", w.Code, w.Body.String())
			}
			if got := decode(t, w)["ocr_type"]; got != tt.wantType {
				t.Errorf("ocr_type = %v, erwartet %q", got, tt.wantType)
			}

			calls := ts.engine.calls
			if len(calls) != 1 || calls[0].Mode != tt.wantMode {
				t.Fatalf("Engine-Aufrufe = %+v, erwartet Modus %v", calls, tt.wantMode)
			}
			if calls[0].RenderFile != "" {
				t.Error("RenderFile darf ausserhalb von format-render auf /ocr nicht gesetzt sein")
			}
		})
	}
}

func TestOCRRenderFailureCleansUp(t *testing.T) {
	ts := newTestServer(t, &fakeEngine{html: "<p>halb</p>", errAfterRender: errors.New("render abgebrochen")})

	w := ts.do(t, http.MethodPost, "/ocr", api.OCRRequest{Image: testImageBase64(t), OCRType: "format-render"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, erwartet 500: %s", w.Code, w.Body.String())
	}
	if got := decode(t, w)["error"]; got != "render abgebrochen" {
		t.Errorf("error = %v", got)
	}
	if !ts.engine.rendered {
		t.Fatal("Engine hat die Render-Datei nicht geschrieben")
	}
	if n := ts.scratchFiles(t); n != 0 {
		t.Errorf("%d Scratch-Dateien uebrig", n)
	}
}

func TestOCRRenderHTMLOmittedWhenEmpty(t *testing.T) {
	ts := newTestServer(t, &fakeEngine{text: "x"})

	w := ts.do(t, http.MethodPost, "/ocr", api.OCRRequest{Image: testImageBase64(t), OCRType: "format-render"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if _, ok := decode(t, w)["render_html"]; ok {
		t.Error("render_html darf ohne Render-Datei nicht gesetzt sein")
	}
}

func TestOCRDataURL(t *testing.T) {
	ts := newTestServer(t, &fakeEngine{text: "x"})
	bare := testImageBase64(t)

	for _, image := range []string{bare, "data:image/png;base64," + bare} {
		w := ts.do(t, http.MethodPost, "/ocr", api.OCRRequest{Image: image})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
	}

	inputs := ts.engine.inputs
	if len(inputs) != 2 || !bytes.Equal(inputs[0], inputs[1]) {
		t.Error("Data-URL und reines base64 muessen dasselbe Bild ergeben")
	}
}

func TestOCREngineError(t *testing.T) {
	ts := newTestServer(t, &fakeEngine{err: errors.New("CUDA out of memory")})

	w := ts.do(t, http.MethodPost, "/ocr", api.OCRRequest{Image: testImageBase64(t)})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != "CUDA out of memory" {
		t.Errorf("error = %v, erwartet Engine-Meldung", got)
	}
	if n := ts.scratchFiles(t); n != 0 {
		t.Errorf("%d Scratch-Dateien uebrig", n)
	}
}

func TestAdvancedOCR(t *testing.T) {
	tests := []struct {
		name      string
		req       api.AdvancedOCRRequest
		wantBox   string
		wantColor string
	}{
		{name: "Box und Farbe", req: api.AdvancedOCRRequest{OCRBox: "[0,0,10,10]", OCRColor: "red"}, wantBox: "[0,0,10,10]"},
		{name: "nur Farbe", req: api.AdvancedOCRRequest{OCRType: "format", OCRColor: "blue"}, wantColor: "blue"},
		{name: "weder noch", req: api.AdvancedOCRRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, &fakeEngine{text: "Region"})
			tt.req.Image = testImageBase64(t)

			w := ts.do(t, http.MethodPost, "/ocr/advanced", tt.req)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", w.Code, w.Body.String())
			}

			opts := ts.engine.calls[0]
			if opts.Box != tt.wantBox || opts.Color != tt.wantColor {
				t.Errorf("Engine bekam Box=%q Color=%q, erwartet Box=%q Color=%q", opts.Box, opts.Color, tt.wantBox, tt.wantColor)
			}

			mode := tt.req.OCRType
			if mode == "" {
				mode = "ocr"
			}
			want := map[string]any{
				"success":   true,
				"text":      "Region",
				"ocr_type":  mode,
				"ocr_box":   tt.req.OCRBox,
				"ocr_color": tt.req.OCRColor,
			}
			if diff := cmp.Diff(want, decode(t, w)); diff != "" {
				t.Errorf("Antwort mismatch (-want +got):\n%s", diff)
			}
			if n := ts.scratchFiles(t); n != 0 {
				t.Errorf("%d Scratch-Dateien uebrig", n)
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	ts := newTestServer(t, &fakeEngine{text: "x"}, WithMaxBody(64))

	w := ts.do(t, http.MethodPost, "/ocr", api.OCRRequest{Image: testImageBase64(t)})
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, erwartet 413", w.Code)
	}
	if len(ts.engine.calls) != 0 {
		t.Error("Engine darf bei zu grossem Body nicht aufgerufen werden")
	}
}

func TestRequestIDAndCORS(t *testing.T) {
	ts := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/ocr", nil)
	req.Header.Set("Origin", "https://client.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	if w.Code != http.StatusNoContent {
		t.Errorf("Preflight status = %d, erwartet 204", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://client.test")
	w = httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("GET Access-Control-Allow-Origin = %q", got)
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Error("X-Request-ID fehlt")
	}
}
