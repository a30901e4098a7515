package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/df07/go-spray-simulator/pkg/spray"
)

// TextureImage renders the coverage grid as an RGBA texture: unpainted cells
// are light gray wall, painted cells ramp toward saturated red. Grid row 0 is
// the wall bottom, image row 0 the top.
func TextureImage(grid *spray.WallGrid) *image.RGBA {
	return TextureFromCoverage(grid.Snapshot(), grid.Resolution())
}

// TextureFromCoverage renders a row-major coverage snapshot, for callers
// holding a snapshot instead of the grid itself
func TextureFromCoverage(coverage []float32, resolution int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, resolution, resolution))

	for y := 0; y < resolution; y++ {
		for x := 0; x < resolution; x++ {
			cell := coverage[y*resolution+x]

			var c color.RGBA
			if cell > 0 {
				c = color.RGBA{
					R: uint8(255 * cell),
					G: uint8(50 * cell),
					B: uint8(50 * cell),
					A: 255,
				}
			} else {
				c = color.RGBA{R: 200, G: 200, B: 200, A: 255}
			}

			img.SetRGBA(x, resolution-1-y, c)
		}
	}

	return img
}

// SaveTexture writes the coverage texture as a PNG file
func SaveTexture(grid *spray.WallGrid, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating texture file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, TextureImage(grid)); err != nil {
		return fmt.Errorf("encoding texture PNG: %w", err)
	}
	return nil
}
