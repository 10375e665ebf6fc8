// MODUL: color
// ZWECK: Farbfilter fuer ocr_color (nur Pixel einer Grundfarbe behalten)
// INPUT: ImageInput, Farbname (red, green, blue)
// OUTPUT: Neues ImageInput, Rest wird weiss
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: keine (nur Standardbibliothek)
// HINWEISE: Ein Pixel gilt als farbig, wenn sein Kanal die anderen um colorMargin uebersteigt

package vision

import (
	"fmt"
	"image"
	"image/color"
)

const colorMargin = 40

// FilterColor behaelt nur Pixel der gegebenen Grundfarbe und zeichnet sie schwarz.
// Das Ergebnis ist schwarzer Text auf weissem Grund.
func FilterColor(img *ImageInput, name string) (*ImageInput, error) {
	channel, err := colorChannel(name)
	if err != nil {
		return nil, err
	}

	src := img.Image
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := src.RGBAAt(x, y)
			if c.A > 0 && dominant(c, channel) {
				dst.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
			} else {
				dst.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}

	return newImageInput(dst, img.Format), nil
}

func colorChannel(name string) (int, error) {
	switch name {
	case "red":
		return 0, nil
	case "green":
		return 1, nil
	case "blue":
		return 2, nil
	default:
		return 0, fmt.Errorf("unsupported color filter %q", name)
	}
}

func dominant(c color.RGBA, channel int) bool {
	v := [3]int{int(c.R), int(c.G), int(c.B)}
	for i := range v {
		if i != channel && v[channel]-v[i] < colorMargin {
			return false
		}
	}
	return true
}
