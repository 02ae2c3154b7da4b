package spatial

import "math"

// SpawnOptions controls the ring search around the grid center.
type SpawnOptions struct {
	RadiusStep int // Distance between rings, in cells
	AngleStep  int // Degrees between samples on a ring
}

// DefaultSpawnOptions returns the sampling used by the game.
func DefaultSpawnOptions() SpawnOptions {
	return SpawnOptions{
		RadiusStep: 10,
		AngleStep:  30,
	}
}

// FindSpawn returns a playable cell at least margin cells from every edge,
// preferring cells near the center.
//
// Search order:
//  1. rings of growing radius around the center, sampled every AngleStep degrees
//  2. a row-major scan of the margin interior
//  3. the exact center, even if it is no longer playable
//
// There is no randomness; equal grids give equal answers.
func FindSpawn(g View, margin int, opts SpawnOptions) Point {
	margin = max(margin, 0)
	w, h := g.Width(), g.Height()
	center := Point{X: w / 2, Y: h / 2}

	fits := func(x, y int) bool {
		return x >= margin && x < w-margin &&
			y >= margin && y < h-margin &&
			g.IsValid(x, y)
	}

	radiusStep := max(opts.RadiusStep, 1)
	angleStep := max(opts.AngleStep, 1)
	limit := min(w, h) / 2
	for r := 0; r < limit; r += radiusStep {
		for deg := 0; deg < 360; deg += angleStep {
			rad := float64(deg) * math.Pi / 180
			x := int(float64(center.X) + float64(r)*math.Cos(rad))
			y := int(float64(center.Y) + float64(r)*math.Sin(rad))
			if fits(x, y) {
				return Point{X: x, Y: y}
			}
		}
	}

	for y := margin; y < h-margin; y++ {
		for x := margin; x < w-margin; x++ {
			if g.IsValid(x, y) {
				return Point{X: x, Y: y}
			}
		}
	}

	return center
}
