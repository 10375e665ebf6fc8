// MODUL: client
// ZWECK: Minimaler REST-Client fuer den Ollama Server
// INPUT: Basis-URL (OLLAMA_HOST), Requests
// OUTPUT: Dekodierte Antworten, StatusError bei HTTP-Fehlern
// NEBENEFFEKTE: HTTP-Aufrufe
// ABHAENGIGKEITEN: net/http (Standardbibliothek), envconfig, version (intern)
// HINWEISE: Streaming-Methoden sind in client_stream.go

package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"

	"github.com/qazasd2518995/ocrproject/envconfig"
	"github.com/qazasd2518995/ocrproject/version"
)

// Client spricht mit einem Ollama Server
type Client struct {
	base *url.URL
	http *http.Client
}

// ClientFromEnvironment erstellt einen Client fuer OLLAMA_HOST
func ClientFromEnvironment() *Client {
	return NewClient(envconfig.OllamaHost(), http.DefaultClient)
}

func NewClient(base *url.URL, http *http.Client) *Client {
	return &Client{
		base: base,
		http: http,
	}
}

func userAgent() string {
	return fmt.Sprintf("ocrproject/%s (%s %s) Go/%s", version.Version, runtime.GOARCH, runtime.GOOS, runtime.Version())
}

func checkError(resp *http.Response, body []byte) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	apiError := StatusError{StatusCode: resp.StatusCode, Status: resp.Status}

	err := json.Unmarshal(body, &apiError)
	if err != nil {
		// kein JSON: kompletter Body als Meldung
		apiError.ErrorMessage = string(body)
	}

	return apiError
}

func (c *Client) do(ctx context.Context, method, path string, reqData, respData any) error {
	var reqBody io.Reader

	if reqData != nil {
		data, err := json.Marshal(reqData)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	requestURL := c.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, method, requestURL.String(), reqBody)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", userAgent())

	respObj, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer respObj.Body.Close()

	respBody, err := io.ReadAll(respObj.Body)
	if err != nil {
		return err
	}

	if err := checkError(respObj, respBody); err != nil {
		return err
	}

	if len(respBody) > 0 && respData != nil {
		if err := json.Unmarshal(respBody, respData); err != nil {
			return err
		}
	}
	return nil
}

// Heartbeat prueft ob der Server erreichbar ist
func (c *Client) Heartbeat(ctx context.Context) error {
	return c.do(ctx, http.MethodHead, "/", nil, nil)
}

// Show liefert Details eines lokal vorhandenen Modells
func (c *Client) Show(ctx context.Context, req *ShowRequest) (*ShowResponse, error) {
	var resp ShowResponse
	if err := c.do(ctx, http.MethodPost, "/api/show", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListRunning liefert die aktuell geladenen Modelle
func (c *Client) ListRunning(ctx context.Context) (*ProcessResponse, error) {
	var resp ProcessResponse
	if err := c.do(ctx, http.MethodGet, "/api/ps", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Version liefert die Version des Ollama Servers
func (c *Client) Version(ctx context.Context) (string, error) {
	var version struct {
		Version string `json:"version"`
	}

	if err := c.do(ctx, http.MethodGet, "/api/version", nil, &version); err != nil {
		return "", err
	}

	return version.Version, nil
}
