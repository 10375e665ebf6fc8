// MODUL: region
// ZWECK: Parser fuer ocr_box und ocr_color Angaben
// INPUT: Strings wie "[x1,y1,x2,y2]" und Farbnamen
// OUTPUT: image.Rectangle bzw. Color
// NEBENEFFEKTE: Keine
// ABHAENGIGKEITEN: image, strconv, strings (Standardbibliothek)
// HINWEISE: Koordinaten sind Pixel, x2/y2 exklusiv

package ocr

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Color ist ein unterstuetzter Farbfilter
type Color string

const (
	ColorRed   Color = "red"
	ColorGreen Color = "green"
	ColorBlue  Color = "blue"
)

// ParseBox parst "[x1,y1,x2,y2]" (Klammern optional) in ein Rechteck
func ParseBox(s string) (image.Rectangle, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "[")
	trimmed = strings.TrimSuffix(trimmed, "]")

	parts := strings.Split(trimmed, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("%w: %q needs four coordinates", ErrInvalidBox, s)
	}

	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("%w: %q: %v", ErrInvalidBox, s, err)
		}
		if n < 0 {
			return image.Rectangle{}, fmt.Errorf("%w: %q has negative coordinates", ErrInvalidBox, s)
		}
		v[i] = n
	}

	r := image.Rect(v[0], v[1], v[2], v[3])
	if r.Empty() {
		return image.Rectangle{}, fmt.Errorf("%w: %q is empty", ErrInvalidBox, s)
	}
	return r, nil
}

// ParseColor prueft einen Farbnamen
func ParseColor(s string) (Color, error) {
	switch c := Color(strings.ToLower(strings.TrimSpace(s))); c {
	case ColorRed, ColorGreen, ColorBlue:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q (want red, green or blue)", ErrInvalidColor, s)
	}
}
