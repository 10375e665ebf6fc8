// MODUL: sqlite
// ZWECK: Persistente Historie in einer SQLite-Datei
// INPUT: Datenbankpfad (GOTOCR_HISTORY_DB), Limit
// OUTPUT: Store-Implementierung
// NEBENEFFEKTE: Legt Datei und Schema an
// ABHAENGIGKEITEN: github.com/mattn/go-sqlite3 (extern, cgo)
// HINWEISE: SQLite serialisiert Schreiber selbst, WAL erlaubt parallele Leser

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite-Treiber registrieren
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	id TEXT NOT NULL,
	text TEXT NOT NULL DEFAULT '',
	ocr_type TEXT NOT NULL DEFAULT '',
	filename TEXT NOT NULL DEFAULT '',
	date TIMESTAMP NOT NULL,
	synced_at TIMESTAMP NOT NULL,
	data TEXT NOT NULL DEFAULT '{}',
	UNIQUE (username, id)
);

CREATE INDEX IF NOT EXISTS idx_history_username_date ON history(username, date DESC);
`

// schemaVersion wird in PRAGMA user_version gefuehrt
const schemaVersion = 1

// SQLiteStore speichert die Historie in SQLite
type SQLiteStore struct {
	conn  *sql.DB
	limit int
}

// NewSQLiteStore oeffnet (oder erstellt) die Datenbank unter path
func NewSQLiteStore(path string, limit int) (*SQLiteStore, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &SQLiteStore{conn: conn, limit: limit}, nil
}

// migrate hebt Datenbanken aelterer Versionen auf schemaVersion
func migrate(conn *sql.DB) error {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}

	if version < 1 {
		// v0 -> v1: Spalte data fuer die uebrigen Client-Felder
		var n int
		if err := conn.QueryRow("SELECT COUNT(*) FROM pragma_table_info('history') WHERE name = 'data'").Scan(&n); err != nil {
			return err
		}
		if n == 0 {
			if _, err := conn.Exec("ALTER TABLE history ADD COLUMN data TEXT NOT NULL DEFAULT '{}'"); err != nil {
				return err
			}
		}
	}

	_, err := conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	return err
}

func (s *SQLiteStore) Close() error {
	_, _ = s.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE);")
	return s.conn.Close()
}

func (s *SQLiteStore) List(ctx context.Context, username string) ([]Record, error) {
	return list(ctx, s.conn, username)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func list(ctx context.Context, q querier, username string) ([]Record, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, text, ocr_type, filename, date, synced_at, data
		FROM history
		WHERE username = ?
		ORDER BY date DESC, seq DESC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		var data string
		if err := rows.Scan(&r.ID, &r.Text, &r.OCRType, &r.Filename, &r.Date, &r.SyncedAt, &data); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &r.Extra); err != nil {
			return nil, fmt.Errorf("decode history data %s: %w", r.ID, err)
		}
		if len(r.Extra) == 0 {
			r.Extra = nil
		}
		r.Date = r.Date.UTC()
		r.SyncedAt = r.SyncedAt.UTC()
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return records, nil
}

func (s *SQLiteStore) Add(ctx context.Context, username string, r Record) (Record, error) {
	r = stamp(r)

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insert(ctx, tx, username, r); err != nil {
		return Record{}, err
	}

	// aelteste Records ueber dem Limit entfernen
	_, err = tx.ExecContext(ctx, `
		DELETE FROM history
		WHERE username = ? AND seq NOT IN (
			SELECT seq FROM history WHERE username = ? ORDER BY date DESC, seq DESC LIMIT ?
		)
	`, username, username, s.limit)
	if err != nil {
		return Record{}, fmt.Errorf("trim history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("commit transaction: %w", err)
	}
	return r, nil
}

func insert(ctx context.Context, tx *sql.Tx, username string, r Record) error {
	data := []byte("{}")
	if len(r.Extra) > 0 {
		var err error
		if data, err = json.Marshal(r.Extra); err != nil {
			return fmt.Errorf("encode history data: %w", err)
		}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO history (username, id, text, ocr_type, filename, date, synced_at, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, username, r.ID, r.Text, r.OCRType, r.Filename, r.Date.UTC(), r.SyncedAt.UTC(), string(data))
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, username, id string) error {
	if _, err := s.conn.ExecContext(ctx, "DELETE FROM history WHERE username = ? AND id = ?", username, id); err != nil {
		return fmt.Errorf("delete history record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, username string) error {
	if _, err := s.conn.ExecContext(ctx, "DELETE FROM history WHERE username = ?", username); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Sync(ctx context.Context, username string, local []Record) ([]Record, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stored, err := list(ctx, tx, username)
	if err != nil {
		return nil, err
	}

	merged := merge(stored, local, s.limit)

	if _, err := tx.ExecContext(ctx, "DELETE FROM history WHERE username = ?", username); err != nil {
		return nil, fmt.Errorf("clear history: %w", err)
	}

	// rueckwaerts einfuegen, damit seq bei gleichem Datum die Reihenfolge erhaelt
	for i := len(merged) - 1; i >= 0; i-- {
		if err := insert(ctx, tx, username, merged[i]); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return merged, nil
}
