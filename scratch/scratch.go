// MODUL: scratch
// ZWECK: Request-gebundene temporaere Dateien mit garantierter Freigabe
// INPUT: Verzeichnis (GOTOCR_TMPDIR oder os.TempDir), Dateiendung
// OUTPUT: File mit Pfad und idempotentem Release
// NEBENEFFEKTE: Legt Dateien im Scratch-Verzeichnis an und loescht sie wieder
// ABHAENGIGKEITEN: github.com/google/uuid (extern)
// HINWEISE: Jeder Request bekommt eigene, kollisionsfreie Namen

package scratch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Dir verwaltet Scratch-Dateien unterhalb eines Verzeichnisses
type Dir struct {
	root string
}

// New liefert ein Dir fuer root; leer bedeutet os.TempDir()
func New(root string) (*Dir, error) {
	if root == "" {
		root = os.TempDir()
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("scratch dir: %w", err)
	}
	return &Dir{root: root}, nil
}

// Root liefert das Basisverzeichnis
func (d *Dir) Root() string {
	return d.root
}

// File ist eine Scratch-Datei. Release entfernt sie und darf mehrfach gerufen werden.
type File struct {
	path string
	once sync.Once
	err  error
}

// Path liefert den absoluten Pfad der Datei
func (f *File) Path() string {
	return f.path
}

// Release loescht die Datei. Eine bereits fehlende Datei ist kein Fehler.
func (f *File) Release() error {
	f.once.Do(func() {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.err = err
		}
	})
	return f.err
}

// Create legt eine leere Datei mit eindeutigem Namen an
func (d *Dir) Create(suffix string) (*File, error) {
	path := d.name(suffix)
	fh, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create scratch file: %w", err)
	}
	if err := fh.Close(); err != nil {
		os.Remove(path)
		return nil, err
	}
	return &File{path: path}, nil
}

// Write legt eine Datei an und schreibt data hinein
func (d *Dir) Write(suffix string, data []byte) (*File, error) {
	f, err := d.Create(suffix)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		f.Release()
		return nil, fmt.Errorf("write scratch file: %w", err)
	}
	return f, nil
}

// Reserve vergibt einen eindeutigen Pfad ohne die Datei anzulegen.
// Der Erzeuger (z.B. der Renderer) legt sie spaeter selbst an.
func (d *Dir) Reserve(suffix string) *File {
	return &File{path: d.name(suffix)}
}

func (d *Dir) name(suffix string) string {
	return filepath.Join(d.root, "ocr-"+uuid.NewString()+suffix)
}
