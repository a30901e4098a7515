package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-spray-simulator/pkg/config"
	"github.com/df07/go-spray-simulator/pkg/export"
	"github.com/df07/go-spray-simulator/pkg/spray"
	"github.com/df07/go-spray-simulator/pkg/termview"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to a TOML config file (built-in defaults when empty)")
	outputDir := flag.String("output", "", "Output directory (overrides config)")
	duration := flag.Float64("duration", 0, "Simulated duration in seconds (overrides config)")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	seed := flag.Int64("seed", 0, "Base random seed")
	live := flag.Bool("live", false, "Play the simulation in the terminal instead of writing files")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Spray Paint Simulator")
		fmt.Println("Usage: spray-simulator [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Output will be saved to <output>/textures, <output>/usd and")
		fmt.Println("<output>/simulation_params.json")
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *outputDir != "" {
		cfg.Run.OutputDir = *outputDir
	}
	if *duration > 0 {
		cfg.Run.Duration = *duration
	}
	if *workers > 0 {
		cfg.Run.Workers = *workers
	}
	if *seed != 0 {
		cfg.Run.Seed = *seed
	}

	fmt.Println("Spray Paint Simulator")
	fmt.Printf("- Spray width: %g, density: %d particles/frame\n", cfg.Spray.SprayWidth, cfg.Spray.SprayDensity)
	fmt.Printf("- Fan angle: %g deg, nozzle distance: %g\n", cfg.Spray.FanAngle, cfg.Spray.NozzleDistance)
	fmt.Printf("- Wall: %gx%g at resolution %d\n", cfg.Spray.WallWidth, cfg.Spray.WallHeight, cfg.Spray.Resolution)

	options := spray.DefaultOptions()
	options.Sweep = cfg.Sweep
	options.Seed = cfg.Run.Seed
	options.NumWorkers = cfg.Run.Workers

	sim, err := spray.NewSimulator(cfg.Spray, options, spray.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error creating simulator: %v\n", err)
		os.Exit(1)
	}
	defer sim.Close()

	frames := cfg.Frames()

	if *live {
		if err := termview.New(sim, frames, cfg.Run.Dt).Play(); err != nil {
			fmt.Printf("Error in terminal playback: %v\n", err)
			os.Exit(1)
		}
		printFinalStats(sim)
		return
	}

	if err := runHeadless(sim, cfg, frames); err != nil {
		fmt.Printf("Error running simulation: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig returns the built-in defaults when no path is given
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// saveInterval spaces intermediate exports so roughly ten are written per run
func saveInterval(frames int) int {
	return max(1, frames/10)
}

// runHeadless executes all frames, writing periodic and final exports
func runHeadless(sim *spray.Simulator, cfg config.Config, frames int) error {
	textureDir := filepath.Join(cfg.Run.OutputDir, "textures")
	sceneDir := filepath.Join(cfg.Run.OutputDir, "usd")
	for _, dir := range []string{textureDir, sceneDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	fmt.Printf("Running %d frames at dt=%.3fs...\n", frames, cfg.Run.Dt)
	startTime := time.Now()
	interval := saveInterval(frames)

	for frame := 0; frame < frames; frame++ {
		stats := sim.Step(cfg.Run.Dt)

		if frame%20 == 0 {
			fmt.Printf("Frame %d/%d - time %.1fs - coverage %.1f%%\n",
				frame, frames, stats.Time, sim.Stats().CoverageFraction*100)
		}

		if frame%interval == 0 || frame == frames-1 {
			if err := saveFrame(sim, textureDir, sceneDir, frame); err != nil {
				return err
			}
		}
	}

	// Final exports
	if err := export.SaveTexture(sim.Grid(), filepath.Join(textureDir, "paint_final.png")); err != nil {
		return err
	}
	if err := export.SaveScene(filepath.Join(sceneDir, "scene_final.usda"), sim.Grid(), sim.Nozzle(), "../textures/paint_final.png"); err != nil {
		return err
	}
	params := export.NewParams(cfg.Spray, cfg.Run.Duration, cfg.Run.Dt, frames, cfg.Run.Seed)
	if err := params.Save(filepath.Join(cfg.Run.OutputDir, "simulation_params.json")); err != nil {
		return err
	}

	fmt.Printf("Simulation completed in %v\n", time.Since(startTime))
	printFinalStats(sim)
	fmt.Printf("Output saved to %s\n", cfg.Run.OutputDir)
	return nil
}

// saveFrame writes the intermediate texture and scene for one frame
func saveFrame(sim *spray.Simulator, textureDir, sceneDir string, frame int) error {
	textureName := fmt.Sprintf("paint_%04d.png", frame)
	if err := export.SaveTexture(sim.Grid(), filepath.Join(textureDir, textureName)); err != nil {
		return err
	}
	sceneName := fmt.Sprintf("scene_%04d.usda", frame)
	return export.SaveScene(filepath.Join(sceneDir, sceneName), sim.Grid(), sim.Nozzle(),
		filepath.Join("..", "textures", textureName))
}

func printFinalStats(sim *spray.Simulator) {
	stats := sim.Stats()
	fmt.Printf("Final statistics:\n")
	fmt.Printf("- Frames: %d (%.1fs simulated)\n", stats.Frames, stats.Time)
	fmt.Printf("- Total wall hits: %d\n", stats.TotalHits)
	fmt.Printf("- Total paint accumulation: %.2f\n", stats.TotalPaint)
	fmt.Printf("- Wall coverage: %.1f%%\n", stats.CoverageFraction*100)
}
