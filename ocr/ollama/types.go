// MODUL: types
// ZWECK: Request- und Response-Typen der Ollama REST-API, soweit die Engine sie nutzt
// INPUT: JSON vom Ollama Server
// OUTPUT: Go-Strukturen fuer client.go und engine.go
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: encoding/json (Standardbibliothek)
// HINWEISE: Feldnamen folgen der Ollama API (docs/api.md)

package ollama

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// StatusError ist ein Fehler mit HTTP-Status vom Ollama Server
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
		return "ollama request failed, see the ollama server logs for details"
	}
}

// ImageData sind rohe Bilddaten, JSON-kodiert als base64
type ImageData []byte

// GenerateRequest beschreibt einen /api/generate Aufruf
type GenerateRequest struct {
	Model     string         `json:"model"`
	Prompt    string         `json:"prompt"`
	Images    []ImageData    `json:"images,omitempty"`
	Stream    *bool          `json:"stream,omitempty"`
	KeepAlive *Duration      `json:"keep_alive,omitempty"`
	Options   map[string]any `json:"options,omitempty"`
}

// GenerateResponse ist ein Teilstueck der Antwort
type GenerateResponse struct {
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"created_at"`
	Response   string    `json:"response"`
	Done       bool      `json:"done"`
	DoneReason string    `json:"done_reason,omitempty"`
}

// ShowRequest fragt Details eines lokalen Modells ab
type ShowRequest struct {
	Model string `json:"model"`
}

// ShowResponse enthaelt die Modell-Details
type ShowResponse struct {
	Details      ModelDetails `json:"details,omitempty"`
	Capabilities []string     `json:"capabilities,omitempty"`
}

// ModelDetails beschreibt ein Modell
type ModelDetails struct {
	Format            string   `json:"format"`
	Family            string   `json:"family"`
	Families          []string `json:"families"`
	ParameterSize     string   `json:"parameter_size"`
	QuantizationLevel string   `json:"quantization_level"`
}

// HasCapability meldet ob das Modell die Faehigkeit (z.B. "vision") hat
func (r *ShowResponse) HasCapability(name string) bool {
	for _, c := range r.Capabilities {
		if c == name {
			return true
		}
	}
	return false
}

// PullRequest laedt ein Modell aus der Registry
type PullRequest struct {
	Model    string `json:"model"`
	Insecure bool   `json:"insecure,omitempty"`
}

// ProgressResponse ist ein Fortschrittsschritt beim Pull
type ProgressResponse struct {
	Status    string `json:"status"`
	Digest    string `json:"digest,omitempty"`
	Total     int64  `json:"total,omitempty"`
	Completed int64  `json:"completed,omitempty"`
}

// ProcessResponse ist die Antwort von /api/ps
type ProcessResponse struct {
	Models []ProcessModelResponse `json:"models"`
}

// ProcessModelResponse beschreibt ein geladenes Modell
type ProcessModelResponse struct {
	Name      string    `json:"name"`
	Model     string    `json:"model"`
	Size      int64     `json:"size"`
	SizeVRAM  int64     `json:"size_vram"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Duration serialisiert negative Werte als -1 (unbegrenzt)
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	if d.Duration < 0 {
		return []byte("-1"), nil
	}
	return []byte("\"" + d.Duration.String() + "\""), nil
}

func (d *Duration) UnmarshalJSON(b []byte) (err error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	d.Duration = 5 * time.Minute

	switch t := v.(type) {
	case float64:
		if t < 0 {
			d.Duration = time.Duration(math.MaxInt64)
		} else {
			d.Duration = time.Duration(t * float64(time.Second))
		}
	case string:
		d.Duration, err = time.ParseDuration(t)
		if err != nil {
			return err
		}
		if d.Duration < 0 {
			d.Duration = time.Duration(math.MaxInt64)
		}
	default:
		return fmt.Errorf("unsupported keep_alive type %T", v)
	}

	return nil
}
