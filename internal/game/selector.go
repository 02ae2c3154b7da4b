package game

import (
	"github.com/zyedidia/generic/mapset"

	"cutline/internal/game/spatial"
)

// HostileZone is the set of cells treated as occupied by hostile entities:
// every cell within radius (Chebyshev) of a reported position. Positions
// near or beyond the edge simply contribute fewer in-bounds cells.
type HostileZone struct {
	cells mapset.Set[spatial.Point]
}

// NewHostileZone expands each hostile position into its neighbourhood.
// A radius of 1 gives the 3x3 block that tolerates sub-cell positioning.
func NewHostileZone(hostiles []spatial.Point, radius int) HostileZone {
	radius = max(radius, 0)
	cells := mapset.New[spatial.Point]()
	for _, h := range hostiles {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				cells.Put(spatial.Point{X: h.X + dx, Y: h.Y + dy})
			}
		}
	}
	return HostileZone{cells: cells}
}

// Empty reports whether no hostile was given.
func (z HostileZone) Empty() bool { return z.cells.Size() == 0 }

// Overlaps reports whether any of cells is hostile-occupied.
func (z HostileZone) Overlaps(cells []spatial.Point) bool {
	if z.Empty() {
		return false
	}
	for _, c := range cells {
		if z.cells.Has(c) {
			return true
		}
	}
	return false
}

// regionsHit returns the IDs of every region that holds a hostile cell.
func (z HostileZone) regionsHit(rs spatial.Regions, width, height int) mapset.Set[int] {
	hit := mapset.New[int]()
	z.cells.Each(func(c spatial.Point) {
		if r, ok := rs.Of(c.X, c.Y, width, height); ok {
			hit.Put(r.ID)
		}
	})
	return hit
}

// SelectorOptions are the alternate-region filters.
type SelectorOptions struct {
	MinArea      int // Alternate regions smaller than this are ignored
	BorderMargin int // Alternate regions this close to an edge are ignored
}

// Selection is the region the capture rule decided to remove.
type Selection struct {
	Outcome Outcome
	Cells   []spatial.Point
}

// SelectRegion applies the capture rule.
//
// An enclosure free of hostiles is removed as-is. An enclosure holding a
// hostile is kept; instead the grid is simulated with the enclosure cut, and
// the smallest resulting region that stays clear of the border, holds no
// hostile and reaches MinArea is removed. Equal sizes go to the region the
// row-major scan found first. With no such region the capture is void.
func SelectRegion(g *spatial.Grid, enclosed []spatial.Point, zone HostileZone, opts SelectorOptions) Selection {
	if !zone.Overlaps(enclosed) {
		return Selection{Outcome: OutcomeEnclosed, Cells: enclosed}
	}

	w, h := g.Width(), g.Height()
	mask := g.PlayableMask()
	for _, c := range enclosed {
		mask[c.Y*w+c.X] = false
	}
	regions := spatial.FindRegions(mask, w, h)
	occupied := zone.regionsHit(regions, w, h)

	best := -1
	for i, r := range regions.List {
		if r.Size() < opts.MinArea {
			continue
		}
		if best >= 0 && r.Size() >= regions.List[best].Size() {
			continue
		}
		if occupied.Has(r.ID) || r.TouchesBorder(w, h, opts.BorderMargin) {
			continue
		}
		best = i
	}

	if best < 0 {
		return Selection{Outcome: OutcomeNoAlternate}
	}
	return Selection{Outcome: OutcomeAlternate, Cells: regions.List[best].Cells}
}
