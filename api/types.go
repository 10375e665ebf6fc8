// Package api - Request- und Response-Typen des OCR-Servers.
// Dieses Modul enthaelt die JSON-Wire-Typen, die Server, CLI und Tests teilen.

package api

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// StatusError is an error with an HTTP status code and message.
type StatusError struct {
	StatusCode   int
	Status       string
	ErrorMessage string `json:"error"`
}

func (e StatusError) Error() string {
	switch {
	case e.Status != "" && e.ErrorMessage != "":
		return fmt.Sprintf("%s: %s", e.Status, e.ErrorMessage)
	case e.Status != "":
		return e.Status
	case e.ErrorMessage != "":
		return e.ErrorMessage
	default:
		// this should not happen
		return "something went wrong, please see the ocrproject server logs for details"
	}
}

// ErrorResponse ist der Body jeder fehlgeschlagenen Anfrage
type ErrorResponse struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error"`
}

// HealthResponse ist die Antwort von GET /health
type HealthResponse struct {
	Status       string `json:"status"`
	ModelLoaded  bool   `json:"model_loaded"`
	GPUAvailable bool   `json:"gpu_available"`
	Engine       string `json:"engine,omitempty"`
	Model        string `json:"model,omitempty"`
}

// OCRRequest ist der Body von POST /ocr
type OCRRequest struct {
	// Image ist base64, optional mit Data-URL Prefix
	Image string `json:"image"`
	// OCRType ist ocr, format, multi-crop oder format-render (Default ocr)
	OCRType string `json:"ocr_type,omitempty"`
}

// OCRResponse ist die Antwort von POST /ocr
type OCRResponse struct {
	Success    bool   `json:"success"`
	Text       string `json:"text"`
	OCRType    string `json:"ocr_type"`
	RenderHTML string `json:"render_html,omitempty"`
}

// AdvancedOCRRequest ist der Body von POST /ocr/advanced
type AdvancedOCRRequest struct {
	Image   string `json:"image"`
	OCRType string `json:"ocr_type,omitempty"`
	// OCRBox ist ein Bereich "[x1,y1,x2,y2]" in Pixeln
	OCRBox string `json:"ocr_box,omitempty"`
	// OCRColor ist red, green oder blue
	OCRColor string `json:"ocr_color,omitempty"`
}

// AdvancedOCRResponse ist die Antwort von POST /ocr/advanced
type AdvancedOCRResponse struct {
	Success  bool   `json:"success"`
	Text     string `json:"text"`
	OCRType  string `json:"ocr_type"`
	OCRBox   string `json:"ocr_box"`
	OCRColor string `json:"ocr_color"`
}

// VersionResponse ist die Antwort von GET /api/version
type VersionResponse struct {
	Version string `json:"version"`
}

// HistoryRecord ist ein Eintrag der OCR-Historie
type HistoryRecord struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	OCRType  string    `json:"ocr_type,omitempty"`
	Filename string    `json:"filename,omitempty"`
	Date     time.Time `json:"date"`
	SyncedAt time.Time `json:"synced_at"`

	// Extra enthaelt alle uebrigen Felder des Clients (z.B. fileSize, results)
	Extra map[string]json.RawMessage `json:"-"`
}

var historyRecordKeys = []string{"id", "text", "ocr_type", "filename", "date", "synced_at"}

// MarshalJSON schreibt die bekannten Felder und Extra in ein Objekt.
// Bei Namenskollision gewinnen die bekannten Felder.
func (r HistoryRecord) MarshalJSON() ([]byte, error) {
	type plain HistoryRecord
	known, err := json.Marshal(plain(r))
	if err != nil || len(r.Extra) == 0 {
		return known, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}

	all := maps.Clone(r.Extra)
	maps.Copy(all, fields)
	return json.Marshal(all)
}

// UnmarshalJSON liest die bekannten Felder und legt den Rest in Extra ab
func (r *HistoryRecord) UnmarshalJSON(b []byte) error {
	type plain HistoryRecord
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	for _, k := range historyRecordKeys {
		delete(all, k)
	}
	if len(all) > 0 {
		p.Extra = all
	}

	*r = HistoryRecord(p)
	return nil
}

// HistoryListResponse ist die Antwort von GET /history und POST /history/sync
type HistoryListResponse struct {
	Success bool            `json:"success"`
	Data    []HistoryRecord `json:"data"`
	Message string          `json:"message,omitempty"`
}

// HistoryAddRequest ist der Body von POST /history
type HistoryAddRequest struct {
	Username string         `json:"username"`
	Record   *HistoryRecord `json:"record"`
}

// HistoryAddResponse ist die Antwort von POST /history
type HistoryAddResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Record  HistoryRecord `json:"record"`
}

// HistorySyncRequest ist der Body von POST /history/sync
type HistorySyncRequest struct {
	Username     string          `json:"username"`
	LocalHistory []HistoryRecord `json:"local_history"`
}

// MessageResponse ist die Antwort von Loesch-Operationen
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
