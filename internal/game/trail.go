package game

import (
	"cutline/internal/config"
	"cutline/internal/game/spatial"
)

// TrailRecorder turns an agent's per-tick grid positions into closed trails.
//
// The agent is safe while "on the border": within BorderThreshold cells of a
// grid edge or of any cut cell. Leaving the border starts a trail; returning
// to it with enough points completes the trail, which the caller then hands to
// Engine.AttemptCapture.
type TrailRecorder struct {
	cfg       config.TrailConfig
	minPoints int

	pos      spatial.Point
	placed   bool
	onBorder bool
	cutting  bool
	trail    []spatial.Point
}

// NewTrailRecorder creates a recorder for an agent starting on the border.
// minPoints is the shortest trail worth completing.
func NewTrailRecorder(cfg config.TrailConfig, minPoints int) *TrailRecorder {
	return &TrailRecorder{
		cfg:       cfg,
		minPoints: minPoints,
		onBorder:  true,
	}
}

// Cutting reports whether a trail is being drawn.
func (r *TrailRecorder) Cutting() bool { return r.cutting }

// Trail returns a copy of the trail recorded so far.
func (r *TrailRecorder) Trail() []spatial.Point {
	return append([]spatial.Point(nil), r.trail...)
}

// Reset drops the current trail and marks the agent as back on the border,
// e.g. after it was hit and respawned.
func (r *TrailRecorder) Reset() {
	r.cancel()
	r.onBorder = true
	r.placed = false
}

func (r *TrailRecorder) cancel() {
	r.cutting = false
	r.trail = r.trail[:0]
}

// Move reports the agent's new position. A move onto a cell that is not
// playable is refused and cancels any trail in progress. When the move brings
// the agent back to the border with a long enough trail, the completed trail
// is returned, closed through the nearest grid edge.
func (r *TrailRecorder) Move(pos spatial.Point, view spatial.View) ([]spatial.Point, bool) {
	if !view.IsValid(pos.X, pos.Y) {
		if r.cutting {
			r.cancel()
		}
		return nil, false
	}
	if r.placed && pos == r.pos {
		return nil, false
	}
	r.pos = pos
	r.placed = true

	onBorderNow := OnBorder(pos, view, r.cfg.BorderThreshold)
	defer func() { r.onBorder = onBorderNow }()

	if r.onBorder && !onBorderNow {
		r.cutting = true
		r.trail = append(r.trail[:0], pos)
		return nil, false
	}
	if !r.cutting {
		return nil, false
	}

	last := r.trail[len(r.trail)-1]
	minDist := r.cfg.MinDistance
	if dx, dy := pos.X-last.X, pos.Y-last.Y; dx*dx+dy*dy >= minDist*minDist {
		r.trail = append(r.trail, pos)
	}

	if onBorderNow && len(r.trail) >= r.minPoints {
		return r.complete(view), true
	}
	return nil, false
}

// complete closes the trail through the nearest edge and resets the recorder.
func (r *TrailRecorder) complete(view spatial.View) []spatial.Point {
	done := append([]spatial.Point(nil), r.trail...)
	last := done[len(done)-1]
	if border := spatial.NearestBorderPoint(last, view.Width(), view.Height()); border != last {
		done = append(done, border)
	}
	r.cancel()
	return done
}

// Exposed reports whether any hostile lies strictly within HitRadius of the
// open trail. The HitGrace most recent points are not checked, so a hostile
// chasing the agent does not count until the trail behind it is reached.
func (r *TrailRecorder) Exposed(hostiles []spatial.Point) bool {
	if !r.cutting || len(hostiles) == 0 || r.cfg.HitRadius <= 0 {
		return false
	}
	checked := len(r.trail) - max(r.cfg.HitGrace, 0)
	if checked <= 0 {
		return false
	}
	r2 := r.cfg.HitRadius * r.cfg.HitRadius
	for _, p := range r.trail[:checked] {
		for _, h := range hostiles {
			if dx, dy := p.X-h.X, p.Y-h.Y; dx*dx+dy*dy < r2 {
				return true
			}
		}
	}
	return false
}

// OnBorder reports whether pos is within threshold cells of a grid edge or of
// a cut cell.
func OnBorder(pos spatial.Point, view spatial.View, threshold int) bool {
	w, h := view.Width(), view.Height()
	if pos.X <= threshold || pos.X >= w-threshold-1 ||
		pos.Y <= threshold || pos.Y >= h-threshold-1 {
		return true
	}
	for dy := -threshold; dy <= threshold; dy++ {
		for dx := -threshold; dx <= threshold; dx++ {
			x, y := pos.X+dx, pos.Y+dy
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			if !view.IsValid(x, y) {
				return true
			}
		}
	}
	return false
}
