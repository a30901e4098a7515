package termview

import (
	"fmt"
	"time"

	"github.com/nsf/termbox-go"

	"github.com/df07/go-spray-simulator/pkg/spray"
)

// shades map coverage levels to increasingly solid cells
var shades = []rune{' ', '░', '▒', '▓', '█'}

// Viewer plays a simulation live in the terminal, one frame per tick,
// painting the coverage grid with block shades. Esc or Ctrl-C stops playback.
type Viewer struct {
	sim      *spray.Simulator
	frames   int
	dt       float64
	interval time.Duration
}

// New creates a viewer that will run the given number of frames
func New(sim *spray.Simulator, frames int, dt float64) *Viewer {
	return &Viewer{
		sim:      sim,
		frames:   frames,
		dt:       dt,
		interval: 50 * time.Millisecond,
	}
}

// Play runs the simulation to completion or until the user quits
func (v *Viewer) Play() error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer termbox.Close()

	eventChan := make(chan termbox.Event)
	go func() {
		for {
			eventChan <- termbox.PollEvent()
		}
	}()

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	for frame := 0; frame < v.frames; frame++ {
		stats := v.sim.Step(v.dt)
		v.redraw(stats)

		select {
		case ev := <-eventChan:
			if ev.Type == termbox.EventKey && (ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC) {
				return nil
			}
		case <-ticker.C:
		}
	}

	// Hold the final frame until a key is pressed
	for {
		ev := <-eventChan
		if ev.Type == termbox.EventKey {
			return nil
		}
	}
}

// redraw repaints the whole terminal from the current coverage grid
func (v *Viewer) redraw(stats spray.FrameStats) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	grid := v.sim.Grid()
	resolution := grid.Resolution()
	width, height := termbox.Size()

	// Reserve the top row for the status line
	viewHeight := height - 1
	if viewHeight < 1 || width < 1 {
		termbox.Flush()
		return
	}

	for cy := 0; cy < viewHeight; cy++ {
		for cx := 0; cx < width; cx++ {
			// Nearest-cell downsample; terminal row 0 shows the wall top
			gx := cx * resolution / width
			gy := (viewHeight - 1 - cy) * resolution / viewHeight

			coverage := grid.At(gx, gy)
			shade := shades[shadeIndex(coverage)]
			if coverage > 0 {
				termbox.SetCell(cx, cy+1, shade, termbox.ColorRed, termbox.ColorDefault)
			} else {
				termbox.SetCell(cx, cy+1, shade, termbox.ColorDefault, termbox.ColorDefault)
			}
		}
	}

	status := fmt.Sprintf("frame %d/%d  hits %d  coverage %.1f%%  [esc to quit]",
		stats.Frame+1, v.frames, stats.Hits, v.sim.Stats().CoverageFraction*100)
	for i, r := range status {
		if i >= width {
			break
		}
		termbox.SetCell(i, 0, r, termbox.ColorWhite, termbox.ColorDefault)
	}

	termbox.Flush()
}

// shadeIndex buckets a coverage value into the shade ramp
func shadeIndex(coverage float32) int {
	index := int(coverage * float32(len(shades)))
	return max(0, min(index, len(shades)-1))
}
