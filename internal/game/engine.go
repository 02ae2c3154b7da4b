package game

import (
	"errors"
	"log"
	"time"

	"cutline/internal/config"
	"cutline/internal/game/spatial"
)

// Outcome classifies a capture attempt.
type Outcome uint8

const (
	OutcomeUnknown       Outcome = iota
	OutcomeEnclosed              // The hostile-free enclosure was removed
	OutcomeAlternate             // The enclosure held a hostile; a smaller safe region was removed instead
	OutcomeTrailTooShort         // Fewer raw trail points than required
	OutcomeDegenerate            // Fewer than three distinct vertices after clamping
	OutcomeAreaTooSmall          // Enclosure below the minimum area
	OutcomeAreaTooLarge          // Enclosure above the safety cap
	OutcomeNoAlternate           // Enclosure held a hostile and no safe region qualified
)

// String returns the label used in logs, metrics and the journal.
// The set of values is fixed, so it is safe as a metric label.
func (o Outcome) String() string {
	switch o {
	case OutcomeEnclosed:
		return "enclosed"
	case OutcomeAlternate:
		return "alternate"
	case OutcomeTrailTooShort:
		return "trail_too_short"
	case OutcomeDegenerate:
		return "degenerate"
	case OutcomeAreaTooSmall:
		return "area_too_small"
	case OutcomeAreaTooLarge:
		return "area_too_large"
	case OutcomeNoAlternate:
		return "no_alternate"
	default:
		return "unknown"
	}
}

// Captured reports whether the outcome removed a region.
func (o Outcome) Captured() bool {
	return o == OutcomeEnclosed || o == OutcomeAlternate
}

// CaptureResult is the full account of one capture attempt.
type CaptureResult struct {
	Outcome  Outcome
	Cut      int             // Cells newly cut by this attempt
	Enclosed int             // Playable cells inside the trail polygon
	Cells    []spatial.Point // The removed region (nil when void)
	Coverage float64         // Grid coverage after the attempt
}

// Observer receives every capture result, e.g. to export metrics.
type Observer interface {
	ObserveCapture(res CaptureResult, elapsed time.Duration)
}

// EngineConfig wires an engine to its thresholds and collaborators.
// A nil Observer, Journal or Logger is simply not used (the logger falls back
// to log.Default). Thresholds are never left at zero: an all-zero Capture or
// Spawn section takes the defaults, and so do a non-positive MinTrailPoints or
// MaxAreaFraction.
type EngineConfig struct {
	Width, Height int
	Capture       config.CaptureConfig
	Spawn         config.SpawnConfig
	Observer      Observer
	Journal       *Journal
	Logger        *log.Logger
}

// Engine owns one level's grid and evaluates captures against it.
//
// It is not safe for concurrent use. The game loop calls it once per tick and
// only reads it (IsValid, Coverage, View) between calls.
type Engine struct {
	grid     *spatial.Grid
	capture  config.CaptureConfig
	spawn    config.SpawnConfig
	observer Observer
	journal  *Journal
	logger   *log.Logger

	attempts uint64
}

// NewEngine creates an engine with default thresholds over a fully playable
// width x height grid.
func NewEngine(width, height int) (*Engine, error) {
	return NewEngineWithConfig(EngineConfig{
		Width:   width,
		Height:  height,
		Capture: config.DefaultCapture(),
		Spawn:   config.DefaultSpawn(),
	})
}

// NewEngineWithConfig creates an engine from an explicit configuration.
// Non-positive dimensions are the only construction failure.
func NewEngineWithConfig(cfg EngineConfig) (*Engine, error) {
	grid, err := spatial.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Engine{
		grid:     grid,
		capture:  captureThresholds(cfg.Capture),
		spawn:    spawnThresholds(cfg.Spawn),
		observer: cfg.Observer,
		journal:  cfg.Journal,
		logger:   logger,
	}, nil
}

// captureThresholds fills the thresholds a zero value would disable.
func captureThresholds(c config.CaptureConfig) config.CaptureConfig {
	def := config.DefaultCapture()
	if c == (config.CaptureConfig{}) {
		return def
	}
	if c.MinTrailPoints <= 0 {
		c.MinTrailPoints = def.MinTrailPoints
	}
	if c.MaxAreaFraction <= 0 {
		c.MaxAreaFraction = def.MaxAreaFraction
	}
	return c
}

func spawnThresholds(s config.SpawnConfig) config.SpawnConfig {
	if s == (config.SpawnConfig{}) {
		return config.DefaultSpawn()
	}
	return s
}

// AttemptCapture evaluates a closed trail against the current hostile
// positions and returns the number of cells newly cut (0 when void).
func (e *Engine) AttemptCapture(trail, hostiles []spatial.Point) int {
	return e.Capture(trail, hostiles).Cut
}

// Capture is AttemptCapture with the full outcome.
func (e *Engine) Capture(trail, hostiles []spatial.Point) CaptureResult {
	start := time.Now()
	e.attempts++

	res := e.evaluate(trail, hostiles)
	if res.Outcome.Captured() {
		res.Cut = e.grid.Cut(res.Cells)
	}
	res.Coverage = e.grid.Coverage()

	if e.observer != nil {
		e.observer.ObserveCapture(res, time.Since(start))
	}
	e.record(res, len(trail), len(hostiles))
	return res
}

// evaluate runs polygon building, rasterization and region selection
// without touching the grid.
func (e *Engine) evaluate(trail, hostiles []spatial.Point) CaptureResult {
	w, h := e.grid.Width(), e.grid.Height()

	poly, err := spatial.BuildPolygon(trail, w, h, spatial.PolygonOptions{
		MinTrailPoints:    e.capture.MinTrailPoints,
		SimplifyTolerance: e.capture.SimplifyTolerance,
	})
	if err != nil {
		return CaptureResult{Outcome: outcomeOf(err)}
	}

	enclosed, err := spatial.Enclose(poly, e.grid, spatial.RasterOptions{
		MinArea:         e.capture.MinArea,
		MaxAreaFraction: e.capture.MaxAreaFraction,
	})
	if err != nil {
		return CaptureResult{Outcome: outcomeOf(err)}
	}

	zone := NewHostileZone(hostiles, e.capture.HostileRadius)
	sel := SelectRegion(e.grid, enclosed, zone, SelectorOptions{
		MinArea:      e.capture.MinArea,
		BorderMargin: e.capture.BorderMargin,
	})
	return CaptureResult{
		Outcome:  sel.Outcome,
		Enclosed: len(enclosed),
		Cells:    sel.Cells,
	}
}

// outcomeOf maps a spatial rejection to its outcome.
func outcomeOf(err error) Outcome {
	switch {
	case errors.Is(err, spatial.ErrTrailTooShort):
		return OutcomeTrailTooShort
	case errors.Is(err, spatial.ErrDegenerateTrail):
		return OutcomeDegenerate
	case errors.Is(err, spatial.ErrAreaTooSmall):
		return OutcomeAreaTooSmall
	case errors.Is(err, spatial.ErrAreaTooLarge):
		return OutcomeAreaTooLarge
	default:
		return OutcomeUnknown
	}
}

// record logs and journals a result.
func (e *Engine) record(res CaptureResult, trailPoints, hostiles int) {
	payload := CapturePayload{
		Outcome:     res.Outcome.String(),
		Cells:       res.Cut,
		Enclosed:    res.Enclosed,
		TrailPoints: trailPoints,
		Hostiles:    hostiles,
		Coverage:    res.Coverage,
	}

	if res.Outcome.Captured() {
		e.logger.Printf("✂️ Captured %d cells (%s), coverage %.2f%%", res.Cut, res.Outcome, res.Coverage)
		e.journal.Emit(EventTypeCapture, payload)
		return
	}
	e.logger.Printf("🚫 Capture void: %s (%d trail points)", res.Outcome, trailPoints)
	e.journal.Emit(EventTypeVoid, payload)
}

// IsValid reports whether (x, y) is inside the grid and still playable.
func (e *Engine) IsValid(x, y int) bool {
	return e.grid.IsValid(x, y)
}

// Coverage returns the percentage of the grid cut so far.
func (e *Engine) Coverage() float64 {
	return e.grid.Coverage()
}

// FindSpawn returns a playable cell near the center, at least margin cells
// from every edge when possible.
func (e *Engine) FindSpawn(margin int) spatial.Point {
	return spatial.FindSpawn(e.grid, margin, spatial.SpawnOptions{
		RadiusStep: e.spawn.RadiusStep,
		AngleStep:  e.spawn.AngleStep,
	})
}

// View exposes the grid read-only, for rendering.
func (e *Engine) View() spatial.View {
	return e.grid
}

// Attempts returns how many captures have been evaluated.
func (e *Engine) Attempts() uint64 {
	return e.attempts
}
