package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	base, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	return NewClient(base, srv.Client())
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "json Fehler", status: http.StatusBadRequest, body: `{"error":"image is required"}`, wantMsg: "image is required"},
		{name: "history Fehler", status: http.StatusInternalServerError, body: `{"success":false,"error":"disk full"}`, wantMsg: "disk full"},
		{name: "kein json", status: http.StatusBadGateway, body: "bad gateway", wantMsg: "bad gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.OCR(context.Background(), &OCRRequest{})
			var statusErr StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("erwartet StatusError, bekommen %v", err)
			}
			if statusErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, erwartet %d", statusErr.StatusCode, tt.status)
			}
			if statusErr.ErrorMessage != tt.wantMsg {
				t.Errorf("ErrorMessage = %q, erwartet %q", statusErr.ErrorMessage, tt.wantMsg)
			}
		})
	}
}

func TestClientOCR(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/ocr/advanced" {
			t.Errorf("unerwartete Anfrage %s %s", r.Method, r.URL.Path)
		}
		var req AdvancedOCRRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		json.NewEncoder(w).Encode(AdvancedOCRResponse{Success: true, Text: "x", OCRType: req.OCRType, OCRBox: req.OCRBox})
	})

	resp, err := c.AdvancedOCR(context.Background(), &AdvancedOCRRequest{Image: "aGk=", OCRType: "format", OCRBox: "[0,0,1,1]"})
	if err != nil {
		t.Fatal(err)
	}
	want := &AdvancedOCRResponse{Success: true, Text: "x", OCRType: "format", OCRBox: "[0,0,1,1]"}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("AdvancedOCR() mismatch (-want +got):\n%s", diff)
	}
}

func TestClientHistoryQuery(t *testing.T) {
	var got []string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.Path+"?"+r.URL.RawQuery)
		json.NewEncoder(w).Encode(HistoryListResponse{Success: true, Data: []HistoryRecord{}})
	})

	ctx := context.Background()
	if _, err := c.History(ctx, "anna maria"); err != nil {
		t.Fatal(err)
	}
	if err := c.DeleteHistory(ctx, "anna", "abc-123"); err != nil {
		t.Fatal(err)
	}
	if err := c.ClearHistory(ctx, "anna"); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"GET /history?username=anna+maria",
		"DELETE /history/abc-123?username=anna",
		"DELETE /history?username=anna",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Anfragen mismatch (-want +got):\n%s", diff)
	}
}
