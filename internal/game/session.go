package game

import (
	"errors"
	"log"

	"cutline/internal/config"
	"cutline/internal/game/spatial"
)

// State is the level state machine of a session.
type State uint8

const (
	StatePlaying State = iota
	StateLevelComplete
	StateGameOver
)

// String returns human-readable state
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateLevelComplete:
		return "level_complete"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ErrWrongState is returned when a transition is requested from a state that
// does not allow it.
var ErrWrongState = errors.New("transition not allowed in current state")

// LevelObserver is implemented by observers that also track level changes.
type LevelObserver interface {
	ObserveLevel(level int, coverage float64)
}

// SessionOptions are the collaborators shared by every level's engine.
type SessionOptions struct {
	Observer Observer
	Journal  *Journal
	Logger   *log.Logger
}

// Session runs consecutive levels: it scores captures, tracks lives and
// replaces the engine wholesale when a level starts or restarts.
type Session struct {
	cfg  config.AppConfig
	opts SessionOptions

	engine *Engine
	state  State
	level  int
	lives  int
	score  int
}

// NewSession validates cfg and starts level 1.
func NewSession(cfg config.AppConfig, opts SessionOptions) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Session{
		cfg:   cfg,
		opts:  opts,
		level: 1,
		lives: cfg.Game.InitialLives,
	}
	if err := s.startLevel(); err != nil {
		return nil, err
	}
	return s, nil
}

// startLevel builds a fresh engine for the current level.
func (s *Session) startLevel() error {
	engine, err := NewEngineWithConfig(EngineConfig{
		Width:    s.cfg.Grid.Width,
		Height:   s.cfg.Grid.Height,
		Capture:  s.cfg.Capture,
		Spawn:    s.cfg.Spawn,
		Observer: s.opts.Observer,
		Journal:  s.opts.Journal,
		Logger:   s.opts.Logger,
	})
	if err != nil {
		return err
	}
	s.engine = engine
	s.state = StatePlaying

	if lo, ok := s.opts.Observer.(LevelObserver); ok {
		lo.ObserveLevel(s.level, 0)
	}
	s.opts.Journal.Emit(EventTypeLevelStart, s.levelPayload())
	s.opts.Logger.Printf("🎮 Level %d started (%dx%d, target %.0f%%)",
		s.level, s.cfg.Grid.Width, s.cfg.Grid.Height, s.cfg.Game.TargetCoverage)
	return nil
}

func (s *Session) levelPayload() LevelPayload {
	return LevelPayload{
		Level:    s.level,
		Score:    s.score,
		Lives:    s.lives,
		Coverage: s.engine.Coverage(),
	}
}

// Engine returns the current level's engine.
func (s *Session) Engine() *Engine { return s.engine }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Level returns the current level number, starting at 1.
func (s *Session) Level() int { return s.level }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Capture evaluates a trail while the level is being played. Cut cells score
// PointsPerCell each; reaching the target coverage completes the level and
// awards LifeBonus per remaining life. Outside StatePlaying nothing happens.
func (s *Session) Capture(trail, hostiles []spatial.Point) CaptureResult {
	if s.state != StatePlaying {
		return CaptureResult{Coverage: s.engine.Coverage()}
	}

	res := s.engine.Capture(trail, hostiles)
	if res.Cut > 0 {
		s.score += res.Cut * s.cfg.Game.PointsPerCell
	}

	if res.Coverage >= s.cfg.Game.TargetCoverage {
		s.state = StateLevelComplete
		s.score += s.lives * s.cfg.Game.LifeBonus
		s.opts.Journal.Emit(EventTypeLevelComplete, s.levelPayload())
		s.opts.Logger.Printf("🏆 Level %d complete at %.2f%% (score %d)", s.level, res.Coverage, s.score)
	}
	return res
}

// LoseLife records a hit on the agent. The last life ends the game.
func (s *Session) LoseLife() {
	if s.state != StatePlaying {
		return
	}
	s.lives--
	s.opts.Journal.Emit(EventTypeLifeLost, s.levelPayload())
	s.opts.Logger.Printf("💥 Hit! Lives remaining: %d", s.lives)

	if s.lives <= 0 {
		s.state = StateGameOver
		s.opts.Journal.Emit(EventTypeGameOver, s.levelPayload())
		s.opts.Logger.Printf("💀 Game over at level %d (score %d)", s.level, s.score)
	}
}

// NextLevel advances from a completed level to a fresh grid.
func (s *Session) NextLevel() error {
	if s.state != StateLevelComplete {
		return ErrWrongState
	}
	s.level++
	return s.startLevel()
}

// Restart resets score, lives and level and starts over on a fresh grid.
func (s *Session) Restart() error {
	s.level = 1
	s.score = 0
	s.lives = s.cfg.Game.InitialLives
	return s.startLevel()
}

// SetTick stamps subsequent journal events with a simulation tick.
func (s *Session) SetTick(tick uint64) {
	s.opts.Journal.SetTick(tick)
}

// Spawn returns where a new entity should be placed on the current grid.
func (s *Session) Spawn() spatial.Point {
	return s.engine.FindSpawn(s.cfg.Spawn.Margin)
}

// NewTrailRecorder returns a recorder tuned to this session's configuration.
func (s *Session) NewTrailRecorder() *TrailRecorder {
	return NewTrailRecorder(s.cfg.Trail, s.cfg.Capture.MinTrailPoints)
}
