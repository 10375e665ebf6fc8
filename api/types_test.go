package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestHistoryRecordKeepsClientFields(t *testing.T) {
	in := `{"id":"r1","text":"Hallo","fileName":"scan.png","fileSize":1234,"fileType":"image/png",` +
		`"results":{"ocrspace":"a","googlevision":"b"},"processingTimes":{"ocrSpace":120}}`

	var r HistoryRecord
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatal(err)
	}
	if r.ID != "r1" || r.Text != "Hallo" {
		t.Errorf("bekannte Felder = %q %q", r.ID, r.Text)
	}
	if _, ok := r.Extra["id"]; ok {
		t.Error("bekannte Felder duerfen nicht in Extra landen")
	}

	r.Date = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	r.SyncedAt = r.Date
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}

	var got, want map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(in), &want); err != nil {
		t.Fatal(err)
	}
	want["date"] = "2026-10-16T12:00:00Z"
	want["synced_at"] = "2026-10-16T12:00:00Z"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Record mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryRecordKnownFieldsWin(t *testing.T) {
	r := HistoryRecord{
		ID:    "echt",
		Extra: map[string]json.RawMessage{"id": json.RawMessage(`"falsch"`)},
	}
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if got["id"] != "echt" {
		t.Errorf("id = %v, erwartet echt", got["id"])
	}
}

func TestHistoryRecordWithoutExtra(t *testing.T) {
	var r HistoryRecord
	if err := json.Unmarshal([]byte(`{"id":"x","text":"t"}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Extra != nil {
		t.Errorf("Extra = %v, erwartet nil", r.Extra)
	}
}
