// MODUL: tiles
// ZWECK: Aufteilung eines Bildes in Kacheln fuer den multi-crop Modus
// INPUT: ImageInput, maximale Kachelanzahl, Kantenlaenge einer Kachel
// OUTPUT: Kacheln in Lesereihenfolge (zeilenweise)
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: golang.org/x/image/draw (ueber ResizeImage)
// HINWEISE: Raster wird nach naechstem Seitenverhaeltnis gewaehlt, bei Gleichstand gewinnt das
//           groessere Raster nur wenn das Bild genug Pixel dafuer hat

package vision

import (
	"fmt"
	"image"
	"math"
)

// Grid beschreibt ein Kachelraster
type Grid struct {
	Cols, Rows int
}

// ChooseGrid waehlt das Raster mit cols*rows <= maxTiles, dessen Seitenverhaeltnis
// dem des Bildes am naechsten kommt
func ChooseGrid(width, height, maxTiles, tileSize int) Grid {
	if maxTiles < 1 {
		maxTiles = 1
	}

	aspect := float64(width) / float64(height)
	area := float64(width * height)

	best := Grid{1, 1}
	bestDiff := math.Inf(1)
	for n := 1; n <= maxTiles; n++ {
		for cols := 1; cols <= n; cols++ {
			if n%cols != 0 {
				continue
			}
			g := Grid{cols, n / cols}
			diff := math.Abs(aspect - float64(g.Cols)/float64(g.Rows))
			switch {
			case diff < bestDiff:
				best, bestDiff = g, diff
			case diff == bestDiff:
				// Mehr Kacheln nur wenn das Bild mindestens halb so viele Pixel hat
				if area > 0.5*float64(tileSize*tileSize*g.Cols*g.Rows) {
					best = g
				}
			}
		}
	}
	return best
}

// Tiles skaliert das Bild auf das gewaehlte Raster und schneidet es in Kacheln
func Tiles(img *ImageInput, maxTiles, tileSize int) ([]*ImageInput, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("invalid tile size: %d", tileSize)
	}

	grid := ChooseGrid(img.Width, img.Height, maxTiles, tileSize)
	if grid.Cols*grid.Rows == 1 {
		return []*ImageInput{img}, nil
	}

	resized, err := ResizeImage(img, grid.Cols*tileSize, grid.Rows*tileSize)
	if err != nil {
		return nil, err
	}

	tiles := make([]*ImageInput, 0, grid.Cols*grid.Rows)
	for row := range grid.Rows {
		for col := range grid.Cols {
			r := image.Rect(col*tileSize, row*tileSize, (col+1)*tileSize, (row+1)*tileSize)
			tile, err := Crop(resized, r)
			if err != nil {
				return nil, err
			}
			tiles = append(tiles, tile)
		}
	}
	return tiles, nil
}
