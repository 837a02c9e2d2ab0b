package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Collision counts
	CollisionsTotal   uint64  `csv:"collisions_total"`
	CollisionsDelta   uint64  `csv:"collisions_delta"`
	CollisionsPerTick float64 `csv:"collisions_per_tick"`

	// Particle position spread, sampled at window end
	XMean float64 `csv:"x_mean"`
	XStd  float64 `csv:"x_std"`
	YMean float64 `csv:"y_mean"`
	YStd  float64 `csv:"y_std"`

	// Tick timing over the perf window
	AvgTickUs   int64   `csv:"avg_tick_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
}

// Log writes the window stats as a structured record.
func (ws WindowStats) Log() {
	slog.Info("window stats",
		"window_end", ws.WindowEndTick,
		"collisions_total", ws.CollisionsTotal,
		"collisions_delta", ws.CollisionsDelta,
		"collisions_per_tick", ws.CollisionsPerTick,
		"x_mean", ws.XMean,
		"y_mean", ws.YMean,
		"ticks_per_sec", ws.TicksPerSec,
	)
}

// Collector accumulates per-window collision deltas and produces WindowStats.
type Collector struct {
	windowTicks     int64
	windowStartTick int64
	lastTotal       uint64
	deltas          []float64 // one collision delta per closed window
}

// NewCollector creates a stats collector closing a window every windowTicks
// ticks.
func NewCollector(windowTicks int64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// WindowDone reports whether tick closes the current window.
func (c *Collector) WindowDone(tick int64) bool {
	return tick-c.windowStartTick >= c.windowTicks
}

// EndWindow closes the current window and returns its stats. xs and ys are
// the particle positions sampled at the window end; perf is the current
// rolling timing window.
func (c *Collector) EndWindow(tick int64, collisions uint64, xs, ys []float64, perf PerfStats) WindowStats {
	delta := collisions - c.lastTotal
	ticks := tick - c.windowStartTick
	if ticks < 1 {
		ticks = 1
	}

	xMean, xStd := meanStd(xs)
	yMean, yStd := meanStd(ys)

	ws := WindowStats{
		WindowStartTick:   c.windowStartTick,
		WindowEndTick:     tick,
		CollisionsTotal:   collisions,
		CollisionsDelta:   delta,
		CollisionsPerTick: float64(delta) / float64(ticks),
		XMean:             xMean,
		XStd:              xStd,
		YMean:             yMean,
		YStd:              yStd,
		AvgTickUs:         perf.AvgTickDuration.Microseconds(),
		TicksPerSec:       perf.TicksPerSecond,
	}

	c.deltas = append(c.deltas, float64(delta))
	c.lastTotal = collisions
	c.windowStartTick = tick

	return ws
}

// RunSummary holds end-of-run aggregates.
type RunSummary struct {
	Ticks       int64
	Collisions  uint64
	WindowCount int

	// Distribution of per-window collision deltas
	DeltaMean float64
	DeltaStd  float64
	DeltaP50  float64
}

// Summary aggregates the whole run from the closed windows.
func (c *Collector) Summary(ticks int64, collisions uint64) RunSummary {
	s := RunSummary{
		Ticks:       ticks,
		Collisions:  collisions,
		WindowCount: len(c.deltas),
	}
	if len(c.deltas) == 0 {
		return s
	}

	s.DeltaMean = stat.Mean(c.deltas, nil)
	if len(c.deltas) > 1 {
		s.DeltaStd = stat.StdDev(c.deltas, nil)
	}

	sorted := append([]float64(nil), c.deltas...)
	sort.Float64s(sorted)
	s.DeltaP50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)

	return s
}

// Log writes the run summary as a structured record.
func (s RunSummary) Log() {
	slog.Info("run complete",
		"ticks", s.Ticks,
		"collisions", s.Collisions,
		"windows", s.WindowCount,
		"window_delta_mean", s.DeltaMean,
		"window_delta_std", s.DeltaStd,
		"window_delta_p50", s.DeltaP50,
	)
}

// meanStd returns the mean and standard deviation of values. Fewer than two
// samples have no spread.
func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean = stat.Mean(values, nil)
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}
	return mean, std
}
