package spray

// FrameStats contains per-frame simulation statistics
type FrameStats struct {
	Frame  int         // Frame number, starting at 0
	Time   float64     // Simulation time after this frame
	Hits   int         // Wall hits recorded this frame
	Nozzle NozzleState // Nozzle state the frame was emitted from
}

// RunStats contains statistics for a whole simulation run
type RunStats struct {
	Frames           int     // Frames executed
	Time             float64 // Total simulation time
	TotalHits        int     // Wall hits across all frames
	TotalPaint       float64 // Sum of all coverage values
	CoverageFraction float64 // Fraction of cells above the painted threshold
}

// paintedThreshold is the coverage level above which a cell counts as painted
const paintedThreshold = 0.1
