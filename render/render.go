// MODUL: render
// ZWECK: Rendert strukturerhaltende OCR-Ausgabe (Markdown) als eigenstaendige HTML-Seite
// INPUT: Markdown-Text aus dem format-render Modus
// OUTPUT: HTML-Dokument als Bytes oder Datei
// NEBENEFFEKTE: WriteFile schreibt die Zieldatei
// ABHAENGIGKEITEN: github.com/yuin/goldmark (extern), html/template
// HINWEISE: Rohes HTML im OCR-Text wird nicht durchgereicht

package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", "Noto Sans", sans-serif; max-width: 960px; margin: 2em auto; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 8px; }
pre { background: #f6f8fa; padding: 8px; overflow-x: auto; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// HTML rendert Markdown zu einer vollstaendigen HTML-Seite
func HTML(title, source string) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(source), &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return out.Bytes(), nil
}

// WriteFile rendert source und schreibt das Ergebnis nach path
func WriteFile(path, title, source string) error {
	data, err := HTML(title, source)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
