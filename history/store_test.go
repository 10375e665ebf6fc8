package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T, limit int) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"), limit)
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(limit),
		"sqlite": sqlite,
	}
}

// fixedClock liefert streng steigende Zeitpunkte
func fixedClock(t *testing.T) {
	t.Helper()
	base := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	n := 0
	orig := now
	now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	t.Cleanup(func() { now = orig })
}

func TestAddListNewestFirst(t *testing.T) {
	fixedClock(t)
	ctx := context.Background()

	for name, s := range stores(t, 3) {
		t.Run(name, func(t *testing.T) {
			for i := range 5 {
				r, err := s.Add(ctx, "alice", Record{Text: fmt.Sprintf("text %d", i), OCRType: "ocr"})
				require.NoError(t, err)
				assert.NotEmpty(t, r.ID)
				assert.False(t, r.Date.IsZero())
				assert.Equal(t, r.Date, r.SyncedAt)
			}

			list, err := s.List(ctx, "alice")
			require.NoError(t, err)
			require.Len(t, list, 3, "Limit muss greifen")
			assert.Equal(t, "text 4", list[0].Text)
			assert.Equal(t, "text 2", list[2].Text)

			other, err := s.List(ctx, "bob")
			require.NoError(t, err)
			assert.NotNil(t, other)
			assert.Empty(t, other)
		})
	}
}

func TestDeleteClear(t *testing.T) {
	fixedClock(t)
	ctx := context.Background()

	for name, s := range stores(t, 10) {
		t.Run(name, func(t *testing.T) {
			a, err := s.Add(ctx, "alice", Record{Text: "a"})
			require.NoError(t, err)
			_, err = s.Add(ctx, "alice", Record{Text: "b"})
			require.NoError(t, err)
			_, err = s.Add(ctx, "bob", Record{Text: "c"})
			require.NoError(t, err)

			require.NoError(t, s.Delete(ctx, "alice", a.ID))
			// unbekannte ID ist kein Fehler
			require.NoError(t, s.Delete(ctx, "alice", "gibt-es-nicht"))

			list, err := s.List(ctx, "alice")
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "b", list[0].Text)

			require.NoError(t, s.Clear(ctx, "alice"))
			list, err = s.List(ctx, "alice")
			require.NoError(t, err)
			assert.Empty(t, list)

			list, err = s.List(ctx, "bob")
			require.NoError(t, err)
			assert.Len(t, list, 1, "Clear darf andere Benutzer nicht betreffen")
		})
	}
}

func TestSync(t *testing.T) {
	fixedClock(t)
	ctx := context.Background()
	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for name, s := range stores(t, 3) {
		t.Run(name, func(t *testing.T) {
			cloud, err := s.Add(ctx, "alice", Record{Text: "cloud"})
			require.NoError(t, err)

			local := []Record{
				{ID: cloud.ID, Text: "lokal ueberschrieben", Date: old},
				{ID: "l1", Text: "lokal alt", Date: old},
				{ID: "l2", Text: "lokal neu", Date: old.Add(time.Hour)},
				{ID: "l3", Text: "lokal am aeltesten", Date: old.Add(-time.Hour)},
			}

			merged, err := s.Sync(ctx, "alice", local)
			require.NoError(t, err)
			require.Len(t, merged, 3)

			assert.Equal(t, "cloud", merged[0].Text, "gespeicherter Record gewinnt")
			assert.Equal(t, "l2", merged[1].ID)
			assert.Equal(t, "l1", merged[2].ID)
			assert.False(t, merged[1].SyncedAt.IsZero())

			list, err := s.List(ctx, "alice")
			require.NoError(t, err)
			require.Len(t, list, 3)
			for i := range merged {
				assert.Equal(t, merged[i].ID, list[i].ID)
				assert.True(t, merged[i].Date.Equal(list[i].Date))
			}
		})
	}
}

func TestExtraRoundTrip(t *testing.T) {
	fixedClock(t)
	ctx := context.Background()

	extra := map[string]json.RawMessage{
		"fileName": json.RawMessage(`"scan.png"`),
		"fileSize": json.RawMessage(`1234`),
		"results":  json.RawMessage(`{"googlevision":"b","ocrspace":"a"}`),
	}

	for name, s := range stores(t, 10) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Add(ctx, "alice", Record{Text: "a", Extra: extra})
			require.NoError(t, err)

			_, err = s.Sync(ctx, "alice", []Record{{ID: "l1", Text: "lokal", Extra: map[string]json.RawMessage{"fileType": json.RawMessage(`"image/png"`)}}})
			require.NoError(t, err)

			list, err := s.List(ctx, "alice")
			require.NoError(t, err)
			require.Len(t, list, 2)

			byID := map[string]Record{}
			for _, r := range list {
				byID[r.Text] = r
			}
			for k, v := range extra {
				assert.JSONEq(t, string(v), string(byID["a"].Extra[k]), "Feld %s", k)
			}
			assert.JSONEq(t, `"image/png"`, string(byID["lokal"].Extra["fileType"]))
		})
	}
}

func TestSQLiteMigratesOldSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alt.db")

	conn, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = conn.Exec(`
		CREATE TABLE history (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			id TEXT NOT NULL,
			text TEXT NOT NULL DEFAULT '',
			ocr_type TEXT NOT NULL DEFAULT '',
			filename TEXT NOT NULL DEFAULT '',
			date TIMESTAMP NOT NULL,
			synced_at TIMESTAMP NOT NULL,
			UNIQUE (username, id)
		);
		INSERT INTO history (username, id, text, date, synced_at) VALUES ('alice', 'alt', 'vorher', '2026-01-01 00:00:00', '2026-01-01 00:00:00');
	`)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	s, err := NewSQLiteStore(path, 10)
	require.NoError(t, err)
	defer s.Close()

	list, err := s.List(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "vorher", list[0].Text)
	assert.Nil(t, list[0].Extra)

	var version int
	require.NoError(t, s.conn.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, schemaVersion, version)
}

func TestOpen(t *testing.T) {
	s, err := Open("", 0)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	assert.Equal(t, DefaultLimit, s.(*MemoryStore).limit)

	s, err = Open(filepath.Join(t.TempDir(), "h.db"), 5)
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &SQLiteStore{}, s)
}
