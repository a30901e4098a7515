package spray

import "github.com/df07/go-spray-simulator/pkg/core"

// WallGrid is the 2D paint coverage raster over the wall plane. Cell values
// stay within [0,1] for the grid's entire lifetime; only the accumulator
// writes to it.
type WallGrid struct {
	width      float64
	height     float64
	resolution int
	coverage   []float32 // row-major, resolution*resolution
}

// NewWallGrid creates an all-zero coverage grid for a wall of the given
// physical size
func NewWallGrid(width, height float64, resolution int) *WallGrid {
	return &WallGrid{
		width:      width,
		height:     height,
		resolution: resolution,
		coverage:   make([]float32, resolution*resolution),
	}
}

// Resolution returns the number of cells per grid side
func (w *WallGrid) Resolution() int {
	return w.resolution
}

// Width returns the physical wall width
func (w *WallGrid) Width() float64 {
	return w.width
}

// Height returns the physical wall height
func (w *WallGrid) Height() float64 {
	return w.height
}

// At returns the coverage value at cell (x, y)
func (w *WallGrid) At(x, y int) float32 {
	return w.coverage[y*w.resolution+x]
}

// WorldToTexel maps a world position on the wall plane to grid indices.
// The wall is centered on the origin; indices are clamped to the grid, never
// an error.
func (w *WallGrid) WorldToTexel(pos core.Vec3) (int, int) {
	u := (pos.X + w.width/2) / w.width
	v := (pos.Y + w.height/2) / w.height

	x := int(u * float64(w.resolution))
	y := int(v * float64(w.resolution))

	x = max(0, min(x, w.resolution-1))
	y = max(0, min(y, w.resolution-1))

	return x, y
}

// add accumulates paint at cell (x, y), clamped to full coverage
func (w *WallGrid) add(x, y int, amount float32) {
	i := y*w.resolution + x
	w.coverage[i] = min(1.0, w.coverage[i]+amount)
}

// Snapshot returns a copy of the coverage values, row-major. Collaborators
// read snapshots between frames and never mutate the grid itself.
func (w *WallGrid) Snapshot() []float32 {
	snapshot := make([]float32, len(w.coverage))
	copy(snapshot, w.coverage)
	return snapshot
}

// TotalPaint returns the sum of all coverage values
func (w *WallGrid) TotalPaint() float64 {
	var total float64
	for _, c := range w.coverage {
		total += float64(c)
	}
	return total
}

// CoverageFraction returns the fraction of cells above the given threshold
func (w *WallGrid) CoverageFraction(threshold float32) float64 {
	painted := 0
	for _, c := range w.coverage {
		if c > threshold {
			painted++
		}
	}
	return float64(painted) / float64(len(w.coverage))
}
