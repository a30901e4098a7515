package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-spray-simulator/pkg/config"
	"github.com/df07/go-spray-simulator/pkg/export"
	"github.com/df07/go-spray-simulator/pkg/spray"
)

// Server handles web requests for the spray simulator
type Server struct {
	port     int
	upgrader websocket.Upgrader
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{
		port: port,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// SimRequest represents a simulation request from the client
type SimRequest struct {
	Density     int     `json:"density"`     // Particles per frame
	FanAngle    float64 `json:"fanAngle"`    // Fan half-angle in degrees
	Distance    float64 `json:"distance"`    // Nozzle stand-off distance
	Intensity   float64 `json:"intensity"`   // Paint intensity per hit
	Resolution  int     `json:"resolution"`  // Coverage grid resolution
	Duration    float64 `json:"duration"`    // Simulated seconds
	Dt          float64 `json:"dt"`          // Frame time step
	Seed        int64   `json:"seed"`        // Base random seed
	FrameStride int     `json:"frameStride"` // Send every Nth frame
}

// FrameUpdate represents a single per-frame update sent over the websocket
type FrameUpdate struct {
	Frame       int     `json:"frame"`
	TotalFrames int     `json:"totalFrames"`
	Hits        int     `json:"hits"`
	Coverage    float64 `json:"coverage"`  // Painted fraction of the wall
	NozzleX     float64 `json:"nozzleX"`   // Nozzle position this frame
	NozzleY     float64 `json:"nozzleY"`
	ImageData   string  `json:"imageData"` // Base64 encoded PNG of the wall texture
	IsComplete  bool    `json:"isComplete"`
	ElapsedMs   int64   `json:"elapsedMs"`
}

// Start starts the web server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/ws/simulate", s.handleSimulate)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleSimulate runs a simulation and streams frame updates over a websocket
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	req, err := parseSimRequest(r.URL.Query())
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	cfg := configFromRequest(req)
	options := spray.DefaultOptions()
	options.Sweep = cfg.Sweep
	options.Seed = req.Seed

	sim, err := spray.NewSimulator(cfg.Spray, options, webLogger{})
	if err != nil {
		writeClose(conn, fmt.Sprintf("simulator error: %v", err))
		return
	}
	defer sim.Close()

	// Cancel the run when the client goes away
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	frames := cfg.Frames()
	startTime := time.Now()

	// The run goroutine steps the live grid; the handler only reads the
	// snapshot and stats carried in each result
	frameChan, errChan := sim.Run(ctx, spray.RunOptions{Frames: frames, Dt: cfg.Run.Dt, Snapshots: true})

	for result := range frameChan {
		if result.Stats.Frame%req.FrameStride != 0 && !result.IsLast {
			continue
		}

		imageData, err := imageToBase64PNG(result.Coverage, cfg.Spray.Resolution)
		if err != nil {
			log.Printf("Texture encoding failed: %v", err)
			return
		}

		update := FrameUpdate{
			Frame:       result.Stats.Frame,
			TotalFrames: frames,
			Hits:        result.Stats.Hits,
			Coverage:    result.CoverageFraction,
			NozzleX:     result.Stats.Nozzle.Position.X,
			NozzleY:     result.Stats.Nozzle.Position.Y,
			ImageData:   imageData,
			IsComplete:  result.IsLast,
			ElapsedMs:   time.Since(startTime).Milliseconds(),
		}

		if err := conn.WriteJSON(update); err != nil {
			cancel()
			return
		}
	}

	if err := <-errChan; err != nil {
		log.Printf("Simulation ended early: %v", err)
	}
}

// webLogger routes simulator output to the server log
type webLogger struct{}

func (webLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// writeClose sends a websocket close frame with a reason
func writeClose(conn *websocket.Conn, reason string) {
	deadline := time.Now().Add(time.Second)
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseInternalServerErr, reason), deadline)
}

// imageToBase64PNG encodes a coverage snapshot as a base64 PNG string
func imageToBase64PNG(coverage []float32, resolution int) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, export.TextureFromCoverage(coverage, resolution)); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// parseSimRequest parses and validates request parameters
func parseSimRequest(values url.Values) (*SimRequest, error) {
	req := &SimRequest{}

	var err error
	if req.Density, err = parseIntParam(values, "density", 300, 1, 5000); err != nil {
		return nil, err
	}
	if req.Resolution, err = parseIntParam(values, "resolution", 128, 16, 1024); err != nil {
		return nil, err
	}
	if req.FrameStride, err = parseIntParam(values, "frameStride", 5, 1, 100); err != nil {
		return nil, err
	}
	if req.FanAngle, err = parseFloatParam(values, "fanAngle", 20.0, 0, 90); err != nil {
		return nil, err
	}
	if req.Distance, err = parseFloatParam(values, "distance", 0.6, 0.1, 2.0); err != nil {
		return nil, err
	}
	if req.Intensity, err = parseFloatParam(values, "intensity", 0.15, 0, 1); err != nil {
		return nil, err
	}
	if req.Duration, err = parseFloatParam(values, "duration", 15.0, 0.1, 120); err != nil {
		return nil, err
	}
	if req.Dt, err = parseFloatParam(values, "dt", 0.1, 0.01, 1.0); err != nil {
		return nil, err
	}
	if seed := values.Get("seed"); seed != "" {
		parsed, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed: %s", seed)
		}
		req.Seed = parsed
	}

	return req, nil
}

// configFromRequest applies request overrides on top of the default profile
func configFromRequest(req *SimRequest) config.Config {
	cfg := config.Default()
	cfg.Spray.SprayDensity = req.Density
	cfg.Spray.FanAngle = req.FanAngle
	cfg.Spray.NozzleDistance = req.Distance
	cfg.Spray.PaintIntensity = req.Intensity
	cfg.Spray.Resolution = req.Resolution
	cfg.Run.Duration = req.Duration
	cfg.Run.Dt = req.Dt
	cfg.Run.Seed = req.Seed
	return cfg
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
