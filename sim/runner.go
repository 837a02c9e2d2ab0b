package sim

import (
	"log/slog"
	"time"

	"github.com/mdlane/particlebox/telemetry"
)

// Runner drives the simulation. A tick is a movement phase followed by a
// collision-detection phase, each a fan-out over the pool with a barrier in
// between. A tick always runs to completion; the run deadline is only
// checked between ticks.
type Runner struct {
	system  *ParticleSystem
	mover   *Mover
	scanner *CollisionScanner
	pool    *Pool

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager // nil when -output-dir is unset

	tick int64
	snap []Particle // scratch for telemetry snapshots
	xs   []float64
	ys   []float64
}

// RunnerConfig wires a Runner's collaborators. Output may be nil.
type RunnerConfig struct {
	System    *ParticleSystem
	Mover     *Mover
	Scanner   *CollisionScanner
	Pool      *Pool
	Perf      *telemetry.PerfCollector
	Collector *telemetry.Collector
	Output    *telemetry.OutputManager
}

// NewRunner creates a runner over an already-constructed system and pool.
func NewRunner(rc RunnerConfig) *Runner {
	return &Runner{
		system:    rc.System,
		mover:     rc.Mover,
		scanner:   rc.Scanner,
		pool:      rc.Pool,
		perf:      rc.Perf,
		collector: rc.Collector,
		output:    rc.Output,
	}
}

// Tick returns the number of completed ticks.
func (r *Runner) Tick() int64 {
	return r.tick
}

// System returns the particle system being driven.
func (r *Runner) System() *ParticleSystem {
	return r.system
}

// Step runs a single tick: move all chunks, barrier, scan all chunks.
func (r *Runner) Step() {
	r.perf.StartTick()

	r.perf.StartPhase(telemetry.PhaseMove)
	r.system.Advance(r.mover, r.pool)

	r.perf.StartPhase(telemetry.PhaseScan)
	r.system.DetectCollisions(r.scanner, r.pool)

	r.perf.EndTick()
	r.tick++

	if r.collector.WindowDone(r.tick) {
		r.flushWindow()
	}
}

// flushWindow closes the current stats window and emits it to the log and,
// when configured, the CSV output.
func (r *Runner) flushWindow() {
	r.snap = r.system.Snapshot(r.snap)
	r.xs = r.xs[:0]
	r.ys = r.ys[:0]
	for i := range r.snap {
		r.xs = append(r.xs, r.snap[i].X)
		r.ys = append(r.ys, r.snap[i].Y)
	}

	perfStats := r.perf.Stats()
	stats := r.collector.EndWindow(r.tick, r.system.Collisions(), r.xs, r.ys, perfStats)
	stats.Log()

	if r.output != nil {
		if err := r.output.WriteTelemetry(stats); err != nil {
			slog.Error("writing telemetry", "error", err)
		}
		if err := r.output.WritePerf(perfStats, r.tick); err != nil {
			slog.Error("writing perf", "error", err)
		}
	}
}

// RunHeadless executes ticks until the wall-clock duration elapses or the
// tick cap is reached. Either limit may be zero, but not both; the config
// validator enforces that. Returns the elapsed wall-clock time.
func (r *Runner) RunHeadless(duration time.Duration, maxTicks int64) time.Duration {
	start := time.Now()
	for duration == 0 || time.Since(start) < duration {
		if maxTicks > 0 && r.tick >= maxTicks {
			break
		}
		r.Step()
	}
	return time.Since(start)
}

// Summary aggregates the run so far.
func (r *Runner) Summary() telemetry.RunSummary {
	return r.collector.Summary(r.tick, r.system.Collisions())
}
