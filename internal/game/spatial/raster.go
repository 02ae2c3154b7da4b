package spatial

import "errors"

// RayEpsilon nudges every tested point off the integer lattice so a ray never
// runs exactly through a vertex or along an edge. It is a fixed offset, not a
// random jitter: the same input always classifies the same way.
const RayEpsilon = 0.001

var (
	// ErrAreaTooSmall means the polygon enclosed fewer cells than MinArea.
	ErrAreaTooSmall = errors.New("enclosed area below minimum")
	// ErrAreaTooLarge means the polygon enclosed more than MaxAreaFraction of
	// the grid.
	ErrAreaTooLarge = errors.New("enclosed area above safety cap")
)

// RasterOptions bounds the size of an acceptable enclosure.
type RasterOptions struct {
	MinArea         int     // Fewer enclosed cells than this is trail jitter
	MaxAreaFraction float64 // Share of the whole grid above which the cut is refused
}

// DefaultRasterOptions returns the thresholds used by the game.
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{
		MinArea:         10,
		MaxAreaFraction: 0.5,
	}
}

// Contains reports whether grid point (x, y), shifted by RayEpsilon on both
// axes, lies inside poly under the even-odd rule.
func (poly Polygon) Contains(x, y int) bool {
	if len(poly) < 3 {
		return false
	}
	px := float64(x) + RayEpsilon
	py := float64(y) + RayEpsilon

	inside := false
	j := len(poly) - 1
	for i := range poly {
		xi, yi := float64(poly[i].X), float64(poly[i].Y)
		xj, yj := float64(poly[j].X), float64(poly[j].Y)
		if (yi > py) != (yj > py) && px < (xj-xi)*(py-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Enclose returns the playable cells of g inside poly, in row-major order.
// Only the polygon's bounding box (expanded by one cell) is scanned. An
// enclosure without playable cells is always ErrAreaTooSmall, whatever
// MinArea says.
func Enclose(poly Polygon, g *Grid, opts RasterOptions) ([]Point, error) {
	minX, minY, maxX, maxY := poly.BoundingBox(g.width, g.height)

	var cells []Point
	for y := minY; y <= maxY; y++ {
		row := y * g.width
		for x := minX; x <= maxX; x++ {
			if g.cut[row+x] {
				continue
			}
			if poly.Contains(x, y) {
				cells = append(cells, Point{X: x, Y: y})
			}
		}
	}

	if len(cells) == 0 || len(cells) < opts.MinArea {
		return nil, ErrAreaTooSmall
	}
	if opts.MaxAreaFraction > 0 && float64(len(cells)) > opts.MaxAreaFraction*float64(g.Total()) {
		return nil, ErrAreaTooLarge
	}
	return cells, nil
}
