// Package config provides centralized configuration management.
// This is the single source of truth for grid, capture and game settings.
//
// Every section has a Default*() constructor and, where it makes sense, a
// *FromEnv() variant that applies environment overrides on top of it.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// GRID CONFIGURATION
// =============================================================================

// GridConfig sizes the playable board, in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DefaultGrid returns the classic play area (window minus UI chrome).
func DefaultGrid() GridConfig {
	return GridConfig{
		Width:  1180,
		Height: 570,
	}
}

// GridFromEnv returns grid configuration with environment variable overrides.
func GridFromEnv() GridConfig {
	cfg := DefaultGrid()

	if w := getEnvInt("GRID_WIDTH", 0); w > 0 {
		cfg.Width = w
	}
	if h := getEnvInt("GRID_HEIGHT", 0); h > 0 {
		cfg.Height = h
	}

	return cfg
}

// =============================================================================
// CAPTURE CONFIGURATION
// =============================================================================

// CaptureConfig holds the thresholds of a capture evaluation.
// None of these are behavioural constants; they are tuning knobs.
type CaptureConfig struct {
	MinTrailPoints    int     `yaml:"min_trail_points"`   // Raw trail points needed to try a capture
	SimplifyTolerance int     `yaml:"simplify_tolerance"` // Minimum spacing of kept trail vertices
	MinArea           int     `yaml:"min_area"`           // Smallest removable region, in cells
	MaxAreaFraction   float64 `yaml:"max_area_fraction"`  // Largest enclosure as a share of the grid
	BorderMargin      int     `yaml:"border_margin"`      // Alternate regions this close to an edge are skipped
	HostileRadius     int     `yaml:"hostile_radius"`     // Neighbourhood tested around each hostile (1 = 3x3)
}

// DefaultCapture returns the thresholds of the final game revision.
func DefaultCapture() CaptureConfig {
	return CaptureConfig{
		MinTrailPoints:    4,
		SimplifyTolerance: 3,
		MinArea:           10,
		MaxAreaFraction:   0.5,
		BorderMargin:      3,
		HostileRadius:     1,
	}
}

// CaptureFromEnv returns capture configuration with environment variable overrides.
func CaptureFromEnv() CaptureConfig {
	cfg := DefaultCapture()

	if v := getEnvInt("CAPTURE_MIN_TRAIL_POINTS", 0); v > 0 {
		cfg.MinTrailPoints = v
	}
	if v := getEnvInt("CAPTURE_SIMPLIFY_TOLERANCE", -1); v >= 0 {
		cfg.SimplifyTolerance = v
	}
	if v := getEnvInt("CAPTURE_MIN_AREA", -1); v >= 0 {
		cfg.MinArea = v
	}
	if v := getEnvFloat("CAPTURE_MAX_AREA_FRACTION", 0); v > 0 && v <= 1 {
		cfg.MaxAreaFraction = v
	}
	if v := getEnvInt("CAPTURE_BORDER_MARGIN", -1); v >= 0 {
		cfg.BorderMargin = v
	}
	if v := getEnvInt("CAPTURE_HOSTILE_RADIUS", -1); v >= 0 {
		cfg.HostileRadius = v
	}

	return cfg
}

// =============================================================================
// SPAWN CONFIGURATION
// =============================================================================

// SpawnConfig controls where entities are placed.
type SpawnConfig struct {
	Margin     int `yaml:"margin"`      // Keep spawns this far from the edges
	RadiusStep int `yaml:"radius_step"` // Ring spacing of the center search
	AngleStep  int `yaml:"angle_step"`  // Degrees between ring samples
}

// DefaultSpawn returns the default spawn search.
func DefaultSpawn() SpawnConfig {
	return SpawnConfig{
		Margin:     50,
		RadiusStep: 10,
		AngleStep:  30,
	}
}

// =============================================================================
// GAME CONFIGURATION
// =============================================================================

// GameConfig holds scoring and level rules.
type GameConfig struct {
	TargetCoverage float64 `yaml:"target_coverage"` // Percent cut needed to clear a level
	PointsPerCell  int     `yaml:"points_per_cell"`
	InitialLives   int     `yaml:"initial_lives"`
	LifeBonus      int     `yaml:"life_bonus"` // Awarded per remaining life on level clear
}

// DefaultGame returns the default rules.
func DefaultGame() GameConfig {
	return GameConfig{
		TargetCoverage: 75,
		PointsPerCell:  10,
		InitialLives:   3,
		LifeBonus:      1000,
	}
}

// GameFromEnv returns game configuration with environment variable overrides.
func GameFromEnv() GameConfig {
	cfg := DefaultGame()

	if v := getEnvFloat("TARGET_COVERAGE", 0); v > 0 && v <= 100 {
		cfg.TargetCoverage = v
	}
	if v := getEnvInt("INITIAL_LIVES", 0); v > 0 {
		cfg.InitialLives = v
	}

	return cfg
}

// =============================================================================
// TRAIL CONFIGURATION
// =============================================================================

// TrailConfig tunes how an agent's movement becomes a trail.
type TrailConfig struct {
	MinDistance     int `yaml:"min_distance"`     // Cells between recorded trail points
	BorderThreshold int `yaml:"border_threshold"` // "On border" distance to an edge or cut cell
	HitRadius       int `yaml:"hit_radius"`       // A hostile this close to the open trail costs a life
	HitGrace        int `yaml:"hit_grace"`        // Most recent trail points exempt from hits
}

// DefaultTrail returns the default trail recording.
func DefaultTrail() TrailConfig {
	return TrailConfig{
		MinDistance:     3,
		BorderThreshold: 8,
		HitRadius:       12,
		HitGrace:        8,
	}
}

// =============================================================================
// RENDER CONFIGURATION
// =============================================================================

// RenderConfig controls the cut-surface image.
type RenderConfig struct {
	Scale   int  `yaml:"scale"`    // Pixels per cell
	ShowHUD bool `yaml:"show_hud"` // Draw the coverage line
}

// DefaultRender returns the default surface settings.
func DefaultRender() RenderConfig {
	return RenderConfig{
		Scale:   1,
		ShowHUD: true,
	}
}

// RenderFromEnv returns render configuration with environment variable overrides.
func RenderFromEnv() RenderConfig {
	cfg := DefaultRender()

	if s := getEnvInt("RENDER_SCALE", 0); s > 0 {
		cfg.Scale = s
	}
	if os.Getenv("RENDER_HUD") == "false" {
		cfg.ShowHUD = false
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Capture CaptureConfig `yaml:"capture"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Game    GameConfig    `yaml:"game"`
	Trail   TrailConfig   `yaml:"trail"`
	Render  RenderConfig  `yaml:"render"`
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Grid:    GridFromEnv(),
		Capture: CaptureFromEnv(),
		Spawn:   DefaultSpawn(),
		Game:    GameFromEnv(),
		Trail:   DefaultTrail(),
		Render:  RenderFromEnv(),
	}
}

// LoadTuning overlays a YAML tuning file on top of Load(). Keys missing from
// the file keep their default or environment value.
func LoadTuning(path string) (AppConfig, error) {
	cfg := Load()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c AppConfig) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("grid must be positive, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if c.Capture.MaxAreaFraction <= 0 || c.Capture.MaxAreaFraction > 1 {
		return fmt.Errorf("capture.max_area_fraction must be in (0,1], got %v", c.Capture.MaxAreaFraction)
	}
	if c.Capture.MinTrailPoints < 1 {
		return fmt.Errorf("capture.min_trail_points must be at least 1, got %d", c.Capture.MinTrailPoints)
	}
	if c.Capture.MinArea < 0 {
		return fmt.Errorf("capture.min_area must not be negative, got %d", c.Capture.MinArea)
	}
	if c.Game.InitialLives < 1 {
		return fmt.Errorf("game.initial_lives must be at least 1, got %d", c.Game.InitialLives)
	}
	if c.Render.Scale < 1 {
		return fmt.Errorf("render.scale must be at least 1, got %d", c.Render.Scale)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
