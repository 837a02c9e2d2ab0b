package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mdlane/particlebox/config"
	"github.com/mdlane/particlebox/renderer"
	"github.com/mdlane/particlebox/sim"
	"github.com/mdlane/particlebox/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	duration := flag.Float64("duration", 0, "Run duration in seconds (0 = use config)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	trace := flag.Bool("trace", false, "Log every particle move and collision (very verbose)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stderr; stdout carries the final summary)
	level := slog.LevelInfo
	if *trace {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// CLI overrides for the run limits
	runFor := cfg.Derived.Duration
	if *duration > 0 {
		runFor = time.Duration(*duration * float64(time.Second))
	}
	ticksCap := cfg.Run.MaxTicks
	if *maxTicks > 0 {
		ticksCap = *maxTicks
	}

	var traceLog *slog.Logger
	if *trace {
		traceLog = logger
	}

	rng := rand.New(rand.NewSource(rngSeed))
	system, err := sim.NewParticleSystem(
		cfg.Particles.Count,
		cfg.World.EnclosureSize, cfg.World.EnclosureSize,
		cfg.Derived.ChunkSize,
		rng,
	)
	if err != nil {
		slog.Error("failed to create particle system", "error", err)
		os.Exit(1)
	}

	pool, err := sim.NewPool(cfg.Workers.Count)
	if err != nil {
		slog.Error("failed to create worker pool", "error", err)
		os.Exit(1)
	}
	pool.Start()
	defer pool.Stop()

	mover := sim.NewMover(cfg.World.EnclosureSize, pool.Size(), rngSeed, traceLog)
	scanner := sim.NewCollisionScanner(cfg.Particles.CollisionThreshold, system.Counter(), traceLog)

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindowTicks)
	collector := telemetry.NewCollector(int64(cfg.Telemetry.WindowTicks))

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	if output != nil {
		defer output.Close()
		if err := output.WriteConfig(cfg); err != nil {
			slog.Error("failed to snapshot config", "error", err)
		}
	}

	runner := sim.NewRunner(sim.RunnerConfig{
		System:    system,
		Mover:     mover,
		Scanner:   scanner,
		Pool:      pool,
		Perf:      perf,
		Collector: collector,
		Output:    output,
	})

	slog.Info("starting simulation",
		"seed", rngSeed,
		"particles", cfg.Particles.Count,
		"enclosure", cfg.World.EnclosureSize,
		"threshold", cfg.Particles.CollisionThreshold,
		"workers", cfg.Workers.Count,
		"chunk_size", cfg.Derived.ChunkSize,
		"duration", runFor.String(),
		"max_ticks", ticksCap,
		"headless", *headless,
	)

	var elapsed time.Duration
	if *headless {
		elapsed = runner.RunHeadless(runFor, ticksCap)
	} else {
		elapsed = runGraphical(runner, scanner, perf, cfg, runFor, ticksCap)
	}

	runner.Summary().Log()
	fmt.Printf("Particles moved %d times in %s\n", runner.Tick(), elapsed.Round(time.Millisecond))
	fmt.Printf("Total number of collisions: %d\n", runner.System().Collisions())
}

// runGraphical drives the simulation inside a raylib window. The tick loop
// is throttled to the display rate; the deadline still only applies between
// ticks.
func runGraphical(runner *sim.Runner, scanner *sim.CollisionScanner, perf *telemetry.PerfCollector, cfg *config.Config, runFor time.Duration, ticksCap int64) time.Duration {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "particlebox")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	view := renderer.NewView(cfg.Screen.Width, cfg.Screen.Height, cfg.World.EnclosureSize)
	hud := renderer.NewHUD(scanner.Threshold(), cfg.World.EnclosureSize/4)

	start := time.Now()
	for !rl.WindowShouldClose() {
		if runFor > 0 && time.Since(start) >= runFor {
			break
		}
		if ticksCap > 0 && runner.Tick() >= ticksCap {
			break
		}

		if !hud.Paused {
			scanner.SetThreshold(float64(hud.Threshold))
			runner.Step()
		}
		perf.RecordFrame()

		rl.BeginDrawing()
		view.Draw(runner.System(), runner.Tick(), perf.Stats().TicksPerSecond)
		hud.Draw(cfg.Derived.ScreenW32)
		rl.EndDrawing()
	}
	return time.Since(start)
}
