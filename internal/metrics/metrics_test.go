package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"cutline/internal/game"
)

var (
	_ game.Observer      = (*CaptureMetrics)(nil)
	_ game.LevelObserver = (*CaptureMetrics)(nil)
)

func TestObserveCapture(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveCapture(game.CaptureResult{Outcome: game.OutcomeEnclosed, Cut: 16, Coverage: 4}, time.Millisecond)
	m.ObserveCapture(game.CaptureResult{Outcome: game.OutcomeAlternate, Cut: 100, Coverage: 30}, time.Millisecond)
	m.ObserveCapture(game.CaptureResult{Outcome: game.OutcomeTrailTooShort, Coverage: 30}, time.Microsecond)

	if got := testutil.ToFloat64(m.attempts.WithLabelValues("enclosed")); got != 1 {
		t.Errorf("enclosed attempts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.attempts.WithLabelValues("trail_too_short")); got != 1 {
		t.Errorf("trail_too_short attempts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cellsCut); got != 116 {
		t.Errorf("cells cut = %v, want 116", got)
	}
	if got := testutil.ToFloat64(m.alternate); got != 1 {
		t.Errorf("alternate = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.coverage); got != 30 {
		t.Errorf("coverage = %v, want 30", got)
	}
	if got := testutil.CollectAndCount(m.duration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestObserveLevel(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveLevel(3, 0)
	if got := testutil.ToFloat64(m.level); got != 3 {
		t.Errorf("level = %v, want 3", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveCapture(game.CaptureResult{Outcome: game.OutcomeEnclosed, Cut: 16, Coverage: 4}, time.Millisecond)

	path := filepath.Join(t.TempDir(), "cutline.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`capture_attempts_total{outcome="enclosed"} 1`,
		"capture_cells_cut_total 16",
		"capture_coverage_percent 4",
	} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}
