package game

import (
	"testing"

	"cutline/internal/game/spatial"
)

type rect struct{ x0, y0, x1, y1 int } // inclusive

func (r rect) has(x, y int) bool {
	return x >= r.x0 && x <= r.x1 && y >= r.y0 && y <= r.y1
}

// frame returns the cells of outer that are not inside any pocket.
func frame(outer rect, pockets ...rect) []spatial.Point {
	var cells []spatial.Point
	for y := outer.y0; y <= outer.y1; y++ {
		for x := outer.x0; x <= outer.x1; x++ {
			inPocket := false
			for _, p := range pockets {
				if p.has(x, y) {
					inPocket = true
					break
				}
			}
			if !inPocket {
				cells = append(cells, spatial.Point{X: x, Y: y})
			}
		}
	}
	return cells
}

func newGrid(t *testing.T, w, h int) *spatial.Grid {
	t.Helper()
	g, err := spatial.NewGrid(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestHostileZone(t *testing.T) {
	zone := NewHostileZone(pts(5, 5), 1)
	if zone.Empty() {
		t.Fatal("zone should not be empty")
	}
	for _, c := range pts(4, 4, 6, 6, 5, 4, 4, 6) {
		if !zone.Overlaps([]spatial.Point{c}) {
			t.Errorf("%v should be in the 3x3 zone", c)
		}
	}
	for _, c := range pts(3, 5, 7, 5, 5, 7) {
		if zone.Overlaps([]spatial.Point{c}) {
			t.Errorf("%v should be outside the 3x3 zone", c)
		}
	}

	if !NewHostileZone(nil, 1).Empty() {
		t.Error("zone without hostiles should be empty")
	}
	if NewHostileZone(pts(5, 5), -2).Overlaps(pts(4, 4)) {
		t.Error("negative radius should shrink to the hostile cell only")
	}
}

func TestSelectRegion(t *testing.T) {
	outer := rect{6, 6, 22, 14}
	pocketA := rect{8, 8, 11, 11}  // 16 cells, found first
	pocketB := rect{17, 8, 20, 11} // 16 cells
	pocketC := rect{13, 9, 15, 11} // 9 cells, below min area
	smallB := rect{17, 8, 19, 11}  // 12 cells
	opts := SelectorOptions{MinArea: 10, BorderMargin: 3}
	framed := pts(6, 13) // zone stays inside the frame and the outer region

	tests := []struct {
		name     string
		pockets  []rect
		hostiles []spatial.Point
		want     *rect
		outcome  Outcome
	}{
		{
			name:    "no hostile keeps the enclosure",
			pockets: []rect{pocketA, pocketB},
			outcome: OutcomeEnclosed,
		},
		{
			name:     "equal sizes go to the first discovered",
			pockets:  []rect{pocketA, pocketB, pocketC},
			hostiles: framed,
			want:     &pocketA,
			outcome:  OutcomeAlternate,
		},
		{
			name:     "smallest qualifying region wins",
			pockets:  []rect{pocketA, smallB, pocketC},
			hostiles: framed,
			want:     &smallB,
			outcome:  OutcomeAlternate,
		},
		{
			name:     "occupied pocket is skipped",
			pockets:  []rect{pocketA, pocketB},
			hostiles: pts(6, 13, 9, 9),
			want:     &pocketB,
			outcome:  OutcomeAlternate,
		},
		{
			name:     "undersized pocket alone is void",
			pockets:  []rect{pocketC},
			hostiles: framed,
			outcome:  OutcomeNoAlternate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(t, 30, 30)
			enclosed := frame(outer, tt.pockets...)

			sel := SelectRegion(g, enclosed, NewHostileZone(tt.hostiles, 1), opts)
			if sel.Outcome != tt.outcome {
				t.Fatalf("outcome = %s, want %s", sel.Outcome, tt.outcome)
			}

			switch {
			case tt.outcome == OutcomeEnclosed:
				if len(sel.Cells) != len(enclosed) {
					t.Errorf("selected %d cells, want the %d enclosed", len(sel.Cells), len(enclosed))
				}
			case tt.want == nil:
				if sel.Cells != nil {
					t.Errorf("void selection carries %d cells", len(sel.Cells))
				}
			default:
				w := *tt.want
				size := (w.x1 - w.x0 + 1) * (w.y1 - w.y0 + 1)
				if len(sel.Cells) != size {
					t.Errorf("selected %d cells, want %d", len(sel.Cells), size)
				}
				for _, c := range sel.Cells {
					if !w.has(c.X, c.Y) {
						t.Fatalf("cell %v outside expected pocket %+v", c, w)
					}
				}
			}

			if g.CutCount() != 0 {
				t.Error("selection must not modify the grid")
			}
		})
	}
}

func TestSelectRegionBorderMargin(t *testing.T) {
	// A pocket hugging the top edge is cut off from the rest but still near
	// the border, so it never qualifies.
	g := newGrid(t, 30, 30)
	g.Cut(frame(rect{0, 4, 29, 4}))

	enclosed := frame(rect{10, 0, 10, 3})
	enclosed = append(enclosed, pts(10, 5, 10, 6)...)
	sel := SelectRegion(g, enclosed, NewHostileZone(pts(10, 6), 1), SelectorOptions{MinArea: 10, BorderMargin: 3})
	if sel.Outcome != OutcomeNoAlternate {
		t.Errorf("outcome = %s, want no_alternate", sel.Outcome)
	}
}
