// Package spatial provides the cell grid and the geometry used to carve it:
// trail-to-polygon closure, polygon rasterization, connected-region labelling
// and spawn search.
//
// All structures use preallocated flat slices addressed in row-major order
// (cells[y*width+x]) instead of nested slices, for cache locality and cheap
// bounds checks.
package spatial

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when a grid is requested with a
// non-positive width or height.
var ErrInvalidDimensions = errors.New("grid dimensions must be positive")

// Point is an integer grid coordinate. X grows to the right, Y grows down.
type Point struct {
	X, Y int
}

// View is the read-only surface of a grid handed to collaborators that only
// draw or query it between ticks.
type View interface {
	Width() int
	Height() int
	IsValid(x, y int) bool
	CutCount() int
	Coverage() float64
}

// Grid tracks which cells are still playable.
//
// Memory layout: cut[y*width+x] is true once the cell has been removed.
// cutCount always equals the number of true entries.
type Grid struct {
	width, height int
	cut           []bool
	cutCount      int
}

// NewGrid allocates a fully playable grid.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new grid %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	return &Grid{
		width:  width,
		height: height,
		cut:    make([]bool, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Total returns the number of cells.
func (g *Grid) Total() int { return g.width * g.height }

// CutCount returns how many cells have been removed so far.
func (g *Grid) CutCount() int { return g.cutCount }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsValid reports whether (x, y) is in bounds and still playable.
func (g *Grid) IsValid(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return !g.cut[y*g.width+x]
}

// Cut removes every in-bounds playable cell in cells and returns how many
// actually changed. Cells that are out of bounds or already cut are skipped.
func (g *Grid) Cut(cells []Point) int {
	changed := 0
	for _, c := range cells {
		if !g.InBounds(c.X, c.Y) {
			continue
		}
		idx := c.Y*g.width + c.X
		if g.cut[idx] {
			continue
		}
		g.cut[idx] = true
		changed++
	}
	g.cutCount += changed
	return changed
}

// Coverage returns the removed share of the grid as a percentage.
func (g *Grid) Coverage() float64 {
	return float64(g.cutCount) / float64(g.Total()) * 100
}

// PlayableMask returns a copy of the grid where true marks a playable cell.
// Callers may mutate the copy freely to simulate a cut.
func (g *Grid) PlayableMask() []bool {
	mask := make([]bool, len(g.cut))
	for i, c := range g.cut {
		mask[i] = !c
	}
	return mask
}

// clampPoint pulls p inside [0,width) x [0,height).
func clampPoint(p Point, width, height int) Point {
	return Point{X: clampInt(p.X, 0, width-1), Y: clampInt(p.Y, 0, height-1)}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
