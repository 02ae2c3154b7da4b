// Package scenario loads scripted capture sessions and plays them back
// against a game.Session.
//
// A scenario is YAML, optionally zstd-compressed (".zst" suffix):
//
//	name: pocket
//	grid: {width: 60, height: 60}
//	capture: {min_area: 10}
//	hostiles: [[7, 15]]
//	spawn_hostile: true
//	steps:
//	  - trail: [[5, 10], [5, 5], [25, 5], [25, 25], [5, 25], [5, 10]]
//	  - hostiles: [[15, 15]]
//	    trail: [[2, 2], [8, 2], [8, 8], [2, 8], [2, 2]]
//	  - path: [[5, 30], [10, 30], [10, 20], [30, 20], [30, 40], [10, 40], [5, 40]]
//	  - lose_life: true
//
// Sections left out keep the base configuration. A step's hostiles replace
// the current set from that step on; spawn_hostile adds one more at the
// session's spawn point. A trail is captured as written; a path
// is a sequence of agent positions fed through a game.TrailRecorder, and every
// trail it completes is captured.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"cutline/internal/config"
	"cutline/internal/game"
	"cutline/internal/game/spatial"
)

// ErrEmpty is returned for a scenario without steps.
var ErrEmpty = errors.New("scenario has no steps")

// Scenario is a parsed, validated script.
type Scenario struct {
	Name         string
	Config       config.AppConfig
	Hostiles     []spatial.Point
	SpawnHostile bool // Add one hostile at the session's spawn point
	Steps        []Step
}

// Step is one scripted action.
type Step struct {
	Trail       []spatial.Point
	Path        []spatial.Point
	Hostiles    []spatial.Point
	HasHostiles bool // Hostiles replaces the current set, even when empty
	LoseLife    bool
}

type fileStep struct {
	Trail    [][]int  `yaml:"trail"`
	Path     [][]int  `yaml:"path"`
	Hostiles *[][]int `yaml:"hostiles"`
	LoseLife bool     `yaml:"lose_life"`
}

type file struct {
	Name         string               `yaml:"name"`
	Grid         config.GridConfig    `yaml:"grid"`
	Capture      config.CaptureConfig `yaml:"capture"`
	Game         config.GameConfig    `yaml:"game"`
	Hostiles     [][]int              `yaml:"hostiles"`
	SpawnHostile bool                 `yaml:"spawn_hostile"`
	Steps        []fileStep           `yaml:"steps"`
}

// Load reads a scenario file; see the package documentation for the format.
func Load(path string, base config.AppConfig) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return Scenario{}, fmt.Errorf("%s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}

	sc, err := Parse(r, base)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a scenario from r on top of base.
func Parse(r io.Reader, base config.AppConfig) (Scenario, error) {
	raw := file{
		Grid:    base.Grid,
		Capture: base.Capture,
		Game:    base.Game,
	}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Scenario{}, ErrEmpty
		}
		return Scenario{}, fmt.Errorf("decode: %w", err)
	}
	if len(raw.Steps) == 0 {
		return Scenario{}, ErrEmpty
	}

	cfg := base
	cfg.Grid = raw.Grid
	cfg.Capture = raw.Capture
	cfg.Game = raw.Game
	if err := cfg.Validate(); err != nil {
		return Scenario{}, err
	}

	hostiles, err := points(raw.Hostiles)
	if err != nil {
		return Scenario{}, fmt.Errorf("hostiles: %w", err)
	}
	sc := Scenario{
		Name:         raw.Name,
		Config:       cfg,
		Hostiles:     hostiles,
		SpawnHostile: raw.SpawnHostile,
		Steps:        make([]Step, 0, len(raw.Steps)),
	}

	for i, fs := range raw.Steps {
		var st Step
		if st.Trail, err = points(fs.Trail); err != nil {
			return Scenario{}, fmt.Errorf("step %d trail: %w", i, err)
		}
		if st.Path, err = points(fs.Path); err != nil {
			return Scenario{}, fmt.Errorf("step %d path: %w", i, err)
		}
		if fs.Hostiles != nil {
			st.HasHostiles = true
			if st.Hostiles, err = points(*fs.Hostiles); err != nil {
				return Scenario{}, fmt.Errorf("step %d hostiles: %w", i, err)
			}
		}
		st.LoseLife = fs.LoseLife
		sc.Steps = append(sc.Steps, st)
	}
	return sc, nil
}

func points(pairs [][]int) ([]spatial.Point, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make([]spatial.Point, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("point %d has %d coordinates, want 2", i, len(p))
		}
		out = append(out, spatial.Point{X: p[0], Y: p[1]})
	}
	return out, nil
}

// Summary is the outcome of a playback.
type Summary struct {
	Steps     int // Steps actually played
	Cut       int
	Captures  int // Trails that removed a region
	Hits      int // Lives lost to a hostile reaching the open trail
	Relocated int // Hostiles moved off cells that were no longer playable
	Hostiles  []spatial.Point
	State     game.State
}

// Play runs the scenario's steps in order until they run out or the session
// leaves StatePlaying. onStep, if not nil, sees every capture result along
// with the index of the step that produced it.
//
// Hostiles standing on a cell that is not playable are moved to the session's
// spawn point whenever the hostile set changes and after every capture. While
// a path is walked, a hostile within reach of the open trail costs a life and
// drops the trail.
func Play(sess *game.Session, sc Scenario, onStep func(i int, res game.CaptureResult)) Summary {
	sum := Summary{Hostiles: sc.Hostiles}
	if sc.SpawnHostile {
		sum.Hostiles = append(append([]spatial.Point(nil), sc.Hostiles...), sess.Spawn())
	}
	sum.relocate(sess)
	recorder := sess.NewTrailRecorder()

	capture := func(i int, trail []spatial.Point) {
		res := sess.Capture(trail, sum.Hostiles)
		sum.Cut += res.Cut
		if res.Outcome.Captured() {
			sum.Captures++
			sum.relocate(sess)
		}
		if onStep != nil {
			onStep(i, res)
		}
	}

	for i, st := range sc.Steps {
		if sess.State() != game.StatePlaying {
			break
		}
		sum.Steps++
		sess.SetTick(uint64(i))

		if st.HasHostiles {
			sum.Hostiles = st.Hostiles
			sum.relocate(sess)
		}
		if st.LoseLife {
			sess.LoseLife()
			recorder.Reset()
		}
		if len(st.Trail) > 0 {
			capture(i, st.Trail)
		}
		for _, pos := range st.Path {
			if sess.State() != game.StatePlaying {
				break
			}
			if trail, ok := recorder.Move(pos, sess.Engine().View()); ok {
				capture(i, trail)
				continue
			}
			if recorder.Exposed(sum.Hostiles) {
				sum.Hits++
				sess.LoseLife()
				recorder.Reset()
			}
		}
	}
	sum.State = sess.State()
	return sum
}

// relocate moves every hostile off unplayable cells. The slice is copied
// before the first change so scenario data is never modified.
func (sum *Summary) relocate(sess *game.Session) {
	engine := sess.Engine()
	copied := false
	for i, h := range sum.Hostiles {
		if engine.IsValid(h.X, h.Y) {
			continue
		}
		if !copied {
			sum.Hostiles = append([]spatial.Point(nil), sum.Hostiles...)
			copied = true
		}
		sum.Hostiles[i] = sess.Spawn()
		sum.Relocated++
	}
}
