// Package api - API-Methoden des Clients.
// Dieses Modul enthaelt je eine Methode pro Server-Route.

package api

import (
	"context"
	"net/http"
	"net/url"
)

// Heartbeat checks if the server has started and is responsive; if yes, it
// returns nil, otherwise an error.
func (c *Client) Heartbeat(ctx context.Context) error {
	return c.do(ctx, http.MethodHead, "/", nil, nil, nil)
}

// Health liefert den Zustand des Modells
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Version returns the server version as a string.
func (c *Client) Version(ctx context.Context) (string, error) {
	var resp VersionResponse
	if err := c.do(ctx, http.MethodGet, "/api/version", nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Version, nil
}

// OCR erkennt den Text eines base64-kodierten Bildes
func (c *Client) OCR(ctx context.Context, req *OCRRequest) (*OCRResponse, error) {
	var resp OCRResponse
	if err := c.do(ctx, http.MethodPost, "/ocr", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdvancedOCR erkennt Text mit Bereich oder Farbfilter
func (c *Client) AdvancedOCR(ctx context.Context, req *AdvancedOCRRequest) (*AdvancedOCRResponse, error) {
	var resp AdvancedOCRResponse
	if err := c.do(ctx, http.MethodPost, "/ocr/advanced", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func userQuery(username string) url.Values {
	return url.Values{"username": {username}}
}

// History listet die Historie eines Benutzers, neueste zuerst
func (c *Client) History(ctx context.Context, username string) ([]HistoryRecord, error) {
	var resp HistoryListResponse
	if err := c.do(ctx, http.MethodGet, "/history", userQuery(username), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// AddHistory speichert einen Record; der Server vergibt ID und Zeitstempel
func (c *Client) AddHistory(ctx context.Context, username string, r HistoryRecord) (*HistoryRecord, error) {
	var resp HistoryAddResponse
	if err := c.do(ctx, http.MethodPost, "/history", nil, &HistoryAddRequest{Username: username, Record: &r}, &resp); err != nil {
		return nil, err
	}
	return &resp.Record, nil
}

// DeleteHistory loescht einen Record
func (c *Client) DeleteHistory(ctx context.Context, username, id string) error {
	return c.do(ctx, http.MethodDelete, "/history/"+url.PathEscape(id), userQuery(username), nil, nil)
}

// ClearHistory loescht die gesamte Historie eines Benutzers
func (c *Client) ClearHistory(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodDelete, "/history", userQuery(username), nil, nil)
}

// SyncHistory gleicht lokale Records mit dem Server ab
func (c *Client) SyncHistory(ctx context.Context, username string, local []HistoryRecord) ([]HistoryRecord, error) {
	var resp HistoryListResponse
	if err := c.do(ctx, http.MethodPost, "/history/sync", nil, &HistorySyncRequest{Username: username, LocalHistory: local}, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
