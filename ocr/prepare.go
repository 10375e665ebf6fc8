// MODUL: prepare
// ZWECK: Gemeinsame Bildvorbereitung fuer alle Engines (Region, Farbfilter)
// INPUT: Pfad zur temporaeren Bilddatei, Options
// OUTPUT: Vorbereitetes vision.ImageInput
// NEBENEFFEKTE: Liest die Bilddatei
// ABHAENGIGKEITEN: vision (intern)
// HINWEISE: Box hat Vorrang vor Color, beide zusammen werden nie angewendet

package ocr

import (
	"github.com/qazasd2518995/ocrproject/vision"
)

// Prepare laedt das Bild und wendet Region oder Farbfilter an
func Prepare(path string, opts Options) (*vision.ImageInput, error) {
	img, err := vision.LoadImage(path)
	if err != nil {
		return nil, err
	}
	img = vision.Composite(img)

	switch {
	case opts.Box != "":
		r, err := ParseBox(opts.Box)
		if err != nil {
			return nil, err
		}
		return vision.Crop(img, r)
	case opts.Color != "":
		c, err := ParseColor(opts.Color)
		if err != nil {
			return nil, err
		}
		return vision.FilterColor(img, string(c))
	}

	return img, nil
}
