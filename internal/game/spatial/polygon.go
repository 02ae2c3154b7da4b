package spatial

import (
	"errors"

	"github.com/zyedidia/generic/mapset"
)

var (
	// ErrTrailTooShort means the raw trail had fewer points than required.
	ErrTrailTooShort = errors.New("trail too short")
	// ErrDegenerateTrail means fewer than three distinct vertices survived
	// clamping and simplification.
	ErrDegenerateTrail = errors.New("trail is degenerate")
)

// PolygonOptions tunes trail simplification.
type PolygonOptions struct {
	MinTrailPoints    int // Raw points required before anything else is done
	SimplifyTolerance int // Minimum distance between kept points (0 keeps all but duplicates)
}

// DefaultPolygonOptions returns the thresholds used by the game.
func DefaultPolygonOptions() PolygonOptions {
	return PolygonOptions{
		MinTrailPoints:    4,
		SimplifyTolerance: 3,
	}
}

// Polygon is a closed ring of grid vertices. The edge from the last vertex
// back to the first is implicit.
type Polygon []Point

// BuildPolygon turns a raw trail into a closed polygon inside a
// width x height grid.
//
// Every point is clamped into the grid. A point is dropped when it equals the
// previously kept point, or lies closer than SimplifyTolerance to it; the final
// trail point is exempt from the distance rule so the trail still ends where the
// agent stopped. An open trail is closed through the border point nearest its
// last vertex.
func BuildPolygon(trail []Point, width, height int, opts PolygonOptions) (Polygon, error) {
	if len(trail) < opts.MinTrailPoints {
		return nil, ErrTrailTooShort
	}

	tol2 := opts.SimplifyTolerance * opts.SimplifyTolerance
	poly := make(Polygon, 0, len(trail)+1)
	for i, raw := range trail {
		p := clampPoint(raw, width, height)
		if len(poly) == 0 {
			poly = append(poly, p)
			continue
		}
		prev := poly[len(poly)-1]
		if p == prev {
			continue
		}
		if i != len(trail)-1 && dist2(p, prev) < tol2 {
			continue
		}
		poly = append(poly, p)
	}

	if len(poly) > 0 && poly[0] != poly[len(poly)-1] {
		last := poly[len(poly)-1]
		if border := NearestBorderPoint(last, width, height); border != last {
			poly = append(poly, border)
		}
	}

	distinct := mapset.New[Point]()
	for _, p := range poly {
		distinct.Put(p)
	}
	if distinct.Size() < 3 {
		return nil, ErrDegenerateTrail
	}
	return poly, nil
}

// NearestBorderPoint projects p onto the closest grid edge. Ties resolve in
// the order left, right, top, bottom.
func NearestBorderPoint(p Point, width, height int) Point {
	left := p.X
	right := width - 1 - p.X
	top := p.Y
	bottom := height - 1 - p.Y

	best := min(left, right, top, bottom)
	switch best {
	case left:
		return Point{X: 0, Y: p.Y}
	case right:
		return Point{X: width - 1, Y: p.Y}
	case top:
		return Point{X: p.X, Y: 0}
	default:
		return Point{X: p.X, Y: height - 1}
	}
}

// BoundingBox returns the inclusive integer bounds of the polygon expanded by
// one cell and clamped to the grid.
func (poly Polygon) BoundingBox(width, height int) (minX, minY, maxX, maxY int) {
	if len(poly) == 0 {
		return 0, 0, width - 1, height - 1
	}
	minX, minY = poly[0].X, poly[0].Y
	maxX, maxY = minX, minY
	for _, p := range poly[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	minX = max(0, minX-1)
	minY = max(0, minY-1)
	maxX = min(width-1, maxX+1)
	maxY = min(height-1, maxY+1)
	return minX, minY, maxX, maxY
}

func dist2(a, b Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
