package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatal(err)
	}
	if om != nil {
		t.Error("expected nil manager for empty dir")
	}

	// All writes on a disabled manager are no-ops.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WritePerf(PerfStats{}, 1); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestWriteTelemetryHeaderOnce(t *testing.T) {
	dir := t.TempDir()

	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := om.WriteTelemetry(WindowStats{WindowEndTick: 10, CollisionsTotal: 5, CollisionsDelta: 5}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteTelemetry(WindowStats{WindowEndTick: 20, CollisionsTotal: 12, CollisionsDelta: 7}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("telemetry.csv has %d lines, want header + 2 rows", len(lines))
	}
	if !strings.Contains(lines[0], "collisions_total") {
		t.Errorf("first line is not a header: %q", lines[0])
	}
	if strings.Contains(lines[1], "collisions_total") || strings.Contains(lines[2], "collisions_total") {
		t.Error("header repeated in data rows")
	}
}

func TestWritePerfHeaderOnce(t *testing.T) {
	dir := t.TempDir()

	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	stats := PerfStats{}
	if err := om.WritePerf(stats, 10); err != nil {
		t.Fatal(err)
	}
	if err := om.WritePerf(stats, 20); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("perf.csv has %d lines, want header + 2 rows", len(lines))
	}
	if !strings.Contains(lines[0], "window_end") {
		t.Errorf("first line is not a header: %q", lines[0])
	}
}
