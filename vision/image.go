// MODUL: image
// ZWECK: Bild-Dekodierung und -Vorverarbeitung fuer OCR-Anfragen
// INPUT: Base64-Strings, Dateipfade, Bytes oder io.Reader
// OUTPUT: ImageInput Struktur mit dekodiertem Bild, PNG-Bytes
// NEBENEFFEKTE: Dateisystem-Lesezugriff bei LoadImage
// ABHAENGIGKEITEN: golang.org/x/image/draw, golang.org/x/image/webp (extern)
// HINWEISE: Alle Bilder werden als RGBA konvertiert, persistiert wird immer als PNG

package vision

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strings"

	// Standard-Decoder registrieren
	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ImageInput enthaelt ein dekodiertes Bild mit Metadaten
type ImageInput struct {
	Image  *image.RGBA
	Width  int
	Height int
	Format ImageFormat
}

// DecodeBase64 dekodiert ein Base64-Bild, ein Data-URL-Praefix
// ("data:image/png;base64,") wird vorher entfernt
func DecodeBase64(s string) ([]byte, error) {
	if _, payload, ok := strings.Cut(s, ","); ok {
		s = payload
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image: %w", err)
	}
	return data, nil
}

// LoadImage laedt ein Bild von einem Dateipfad
func LoadImage(path string) (*ImageInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	defer f.Close()
	return DecodeImage(f)
}

// LoadImageFromBytes dekodiert ein Bild aus Byte-Daten
func LoadImageFromBytes(data []byte) (*ImageInput, error) {
	format := DetectFormat(data)
	if err := ValidateFormat(format); err != nil {
		return nil, fmt.Errorf("cannot identify image: %w", err)
	}

	reader := bytes.NewReader(data)
	return decodeWithFormat(reader, format)
}

// DecodeImage dekodiert ein Bild aus einem io.Reader
func DecodeImage(reader io.Reader) (*ImageInput, error) {
	// Erst Daten puffern fuer Format-Erkennung
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return LoadImageFromBytes(data)
}

// decodeWithFormat dekodiert und konvertiert zu RGBA
func decodeWithFormat(reader io.Reader, format ImageFormat) (*ImageInput, error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decode %s image: %w", format, err)
	}

	return newImageInput(toRGBA(img), format), nil
}

func newImageInput(rgba *image.RGBA, format ImageFormat) *ImageInput {
	bounds := rgba.Bounds()
	return &ImageInput{
		Image:  rgba,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
	}
}

// toRGBA konvertiert ein beliebiges image.Image zu *image.RGBA mit Ursprung (0,0)
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// EncodePNG kodiert das Bild als PNG
func EncodePNG(img *ImageInput) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePNG schreibt das Bild als PNG in w
func WritePNG(w io.Writer, img *ImageInput) error {
	if err := png.Encode(w, img.Image); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// ResizeImage skaliert ein Bild auf die angegebene Groesse
func ResizeImage(img *ImageInput, width, height int) (*ImageInput, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size: %dx%d", width, height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img.Image, img.Image.Bounds(), draw.Over, nil)

	return newImageInput(dst, img.Format), nil
}

// Composite entfernt Alpha-Kanal durch weissen Hintergrund
func Composite(img *ImageInput) *ImageInput {
	return CompositeWithColor(img, color.White)
}

// CompositeWithColor entfernt Alpha-Kanal mit gegebener Hintergrundfarbe
func CompositeWithColor(img *ImageInput, bgColor color.Color) *ImageInput {
	bounds := img.Image.Bounds()
	dst := image.NewRGBA(bounds)

	// Hintergrund fuellen
	draw.Draw(dst, bounds, &image.Uniform{bgColor}, image.Point{}, draw.Src)
	// Bild darueber zeichnen
	draw.Draw(dst, bounds, img.Image, bounds.Min, draw.Over)

	return newImageInput(dst, img.Format)
}

// Crop schneidet den Bereich r aus, r wird auf die Bildgrenzen beschnitten
func Crop(img *ImageInput, r image.Rectangle) (*ImageInput, error) {
	rect := r.Intersect(img.Image.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("region %v outside image bounds %dx%d", r, img.Width, img.Height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), img.Image, rect.Min, draw.Src)

	return newImageInput(dst, img.Format), nil
}
