package game

import (
	"io"
	"log"
	"testing"

	"cutline/internal/config"
	"cutline/internal/game/spatial"
)

// =============================================================================
// BENCHMARK SUITE: CAPTURE CRITICAL PATH
// Run with: go test -bench=. -benchmem ./internal/game/...
// =============================================================================

func benchEngine(b *testing.B) *Engine {
	b.Helper()
	cfg := config.DefaultGrid()
	engine, err := NewEngineWithConfig(EngineConfig{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Capture: config.DefaultCapture(),
		Spawn:   config.DefaultSpawn(),
		Logger:  log.New(io.Discard, "", 0),
	})
	if err != nil {
		b.Fatal(err)
	}
	return engine
}

// -----------------------------------------------------------------------------
// CAPTURE BENCHMARKS
// -----------------------------------------------------------------------------

func BenchmarkCapture_SmallSquare(b *testing.B)   { benchmarkCapture(b, 20, nil) }
func BenchmarkCapture_LargeSquare(b *testing.B)   { benchmarkCapture(b, 200, nil) }
func BenchmarkCapture_HostileVoid(b *testing.B)   { benchmarkCapture(b, 200, pts(300, 300)) }
func BenchmarkCapture_TrailTooShort(b *testing.B) { benchmarkCapture(b, 0, nil) }

// benchmarkCapture evaluates the same square on a fresh grid each iteration.
// A hostile inside the square forces the full region decomposition.
func benchmarkCapture(b *testing.B, side int, hostiles []spatial.Point) {
	trail := closedSquare(200, 200, side)
	if side == 0 {
		trail = trail[:2]
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		engine := benchEngine(b)
		b.StartTimer()

		engine.AttemptCapture(trail, hostiles)
	}
}

// -----------------------------------------------------------------------------
// REGION BENCHMARKS
// -----------------------------------------------------------------------------

func BenchmarkFindRegions_Full(b *testing.B) {
	cfg := config.DefaultGrid()
	mask := make([]bool, cfg.Width*cfg.Height)
	for i := range mask {
		mask[i] = true
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = spatial.FindRegions(mask, cfg.Width, cfg.Height)
	}
}

func BenchmarkFindSpawn_Crowded(b *testing.B) {
	engine := benchEngine(b)
	// Carve the middle so the ring search has to walk outward.
	engine.AttemptCapture(closedSquare(440, 135, 300), nil)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = engine.FindSpawn(50)
	}
}
