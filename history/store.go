// MODUL: store
// ZWECK: Benutzerbezogene OCR-Historie (Liste, Hinzufuegen, Loeschen, Leeren, Abgleich)
// INPUT: Benutzername, Records
// OUTPUT: Records, neueste zuerst, begrenzt auf Limit
// NEBENEFFEKTE: Schreibt in Speicher oder SQLite
// ABHAENGIGKEITEN: github.com/google/uuid (extern)
// HINWEISE: Backend-Wahl ueber Open (leerer Pfad = Speicher)

package history

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit ist die Anzahl Records pro Benutzer, wenn nichts konfiguriert ist
const DefaultLimit = 100

// Record ist ein Eintrag der OCR-Historie
type Record struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	OCRType  string    `json:"ocr_type,omitempty"`
	Filename string    `json:"filename,omitempty"`
	Date     time.Time `json:"date"`
	SyncedAt time.Time `json:"synced_at"`

	// Extra sind die uebrigen Felder des Clients, unveraendert gespeichert
	Extra map[string]json.RawMessage `json:"-"`
}

// Store speichert Records pro Benutzer
type Store interface {
	List(ctx context.Context, username string) ([]Record, error)
	// Add vergibt ID, Date und SyncedAt und stellt den Record an den Anfang
	Add(ctx context.Context, username string, r Record) (Record, error)
	// Delete ist idempotent, eine unbekannte ID ist kein Fehler
	Delete(ctx context.Context, username, id string) error
	Clear(ctx context.Context, username string) error
	// Sync fuehrt lokale Records mit den gespeicherten zusammen
	Sync(ctx context.Context, username string, local []Record) ([]Record, error)
	Close() error
}

// Open liefert einen SQLite-Store fuer path oder einen Speicher-Store bei leerem path
func Open(path string, limit int) (Store, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if path == "" {
		return NewMemoryStore(limit), nil
	}
	return NewSQLiteStore(path, limit)
}

var now = func() time.Time {
	return time.Now().UTC()
}

func stamp(r Record) Record {
	t := now()
	r.ID = uuid.NewString()
	r.Date = t
	r.SyncedAt = t
	return r
}

// merge nimmt alle gespeicherten Records und ergaenzt lokale mit unbekannter ID.
// Ergebnis ist nach Date absteigend sortiert und auf limit gekuerzt.
func merge(stored, local []Record, limit int) []Record {
	merged := slices.Clone(stored)
	seen := make(map[string]bool, len(stored))
	for _, r := range stored {
		seen[r.ID] = true
	}

	t := now()
	for _, r := range local {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		r.SyncedAt = t
		merged = append(merged, r)
	}

	slices.SortStableFunc(merged, func(a, b Record) int {
		return b.Date.Compare(a.Date)
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
