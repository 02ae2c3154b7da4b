// Package metrics exports capture statistics in the Prometheus format.
//
// Label values are bounded: the only label is the capture outcome, whose set
// is fixed by the engine.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cutline/internal/game"
)

// CaptureMetrics implements game.Observer and game.LevelObserver.
type CaptureMetrics struct {
	attempts  *prometheus.CounterVec
	cellsCut  prometheus.Counter
	alternate prometheus.Counter
	coverage  prometheus.Gauge
	level     prometheus.Gauge
	duration  prometheus.Histogram
}

// New registers the capture metrics on reg.
func New(reg prometheus.Registerer) *CaptureMetrics {
	factory := promauto.With(reg)
	return &CaptureMetrics{
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "capture_attempts_total",
			Help: "Capture attempts by outcome",
		}, []string{"outcome"}),

		cellsCut: factory.NewCounter(prometheus.CounterOpts{
			Name: "capture_cells_cut_total",
			Help: "Cells removed from the playable area",
		}),

		alternate: factory.NewCounter(prometheus.CounterOpts{
			Name: "capture_alternate_total",
			Help: "Captures that removed an alternate region instead of the enclosure",
		}),

		coverage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "capture_coverage_percent",
			Help: "Share of the current level's grid that has been cut",
		}),

		level: factory.NewGauge(prometheus.GaugeOpts{
			Name: "game_level",
			Help: "Current level number",
		}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "capture_duration_seconds",
			Help:    "Time spent evaluating one capture",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}
}

// ObserveCapture records one capture result.
func (m *CaptureMetrics) ObserveCapture(res game.CaptureResult, elapsed time.Duration) {
	m.attempts.WithLabelValues(res.Outcome.String()).Inc()
	m.duration.Observe(elapsed.Seconds())
	m.coverage.Set(res.Coverage)

	if res.Cut > 0 {
		m.cellsCut.Add(float64(res.Cut))
	}
	if res.Outcome == game.OutcomeAlternate {
		m.alternate.Inc()
	}
}

// ObserveLevel records a level start.
func (m *CaptureMetrics) ObserveLevel(level int, coverage float64) {
	m.level.Set(float64(level))
	m.coverage.Set(coverage)
}

// WriteTextfile dumps everything gathered by g to path, in the format the
// node exporter textfile collector reads.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
