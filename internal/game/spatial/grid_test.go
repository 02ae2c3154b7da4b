package spatial

import (
	"errors"
	"testing"
)

// TestNewGridRejectsBadDimensions verifies construction fails on zero or negative sizes
func TestNewGridRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.width, tt.height)
			if g != nil {
				t.Error("Expected nil grid")
			}
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("Expected ErrInvalidDimensions, got %v", err)
			}
		})
	}
}

// TestGridStartsPlayable verifies a fresh grid has no cut cells
func TestGridStartsPlayable(t *testing.T) {
	g, err := NewGrid(8, 6)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	if g.Total() != 48 {
		t.Errorf("Expected 48 cells, got %d", g.Total())
	}
	if g.CutCount() != 0 || g.Coverage() != 0 {
		t.Errorf("Expected empty coverage, got %d cells / %.2f%%", g.CutCount(), g.Coverage())
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			if !g.IsValid(x, y) {
				t.Fatalf("Cell (%d,%d) should be playable", x, y)
			}
		}
	}
}

// TestGridIsValidOutOfBounds verifies out-of-range queries are simply invalid
func TestGridIsValidOutOfBounds(t *testing.T) {
	g, _ := NewGrid(5, 5)

	for _, p := range []Point{{-1, 0}, {0, -1}, {5, 0}, {0, 5}, {100, 100}} {
		if g.IsValid(p.X, p.Y) {
			t.Errorf("Expected (%d,%d) to be invalid", p.X, p.Y)
		}
	}
}

// TestGridCutIsIdempotent verifies re-cut and out-of-bounds cells are not counted
func TestGridCutIsIdempotent(t *testing.T) {
	g, _ := NewGrid(5, 5)

	changed := g.Cut([]Point{{1, 1}, {1, 1}, {2, 2}, {-1, 0}, {5, 5}})
	if changed != 2 {
		t.Errorf("Expected 2 changed cells, got %d", changed)
	}
	if g.IsValid(1, 1) || g.IsValid(2, 2) {
		t.Error("Cut cells should no longer be valid")
	}

	again := g.Cut([]Point{{1, 1}, {2, 2}})
	if again != 0 {
		t.Errorf("Re-cutting should change nothing, got %d", again)
	}
	if g.CutCount() != 2 {
		t.Errorf("Expected cut count 2, got %d", g.CutCount())
	}
	if got := g.Coverage(); got != 8 {
		t.Errorf("Expected coverage 8%%, got %.3f", got)
	}
}

// TestPlayableMaskIsACopy verifies simulations cannot leak into the grid
func TestPlayableMaskIsACopy(t *testing.T) {
	g, _ := NewGrid(3, 3)
	g.Cut([]Point{{0, 0}})

	mask := g.PlayableMask()
	if mask[0] {
		t.Error("Cut cell should be false in mask")
	}
	if !mask[4] {
		t.Error("Playable cell should be true in mask")
	}

	mask[4] = false
	if !g.IsValid(1, 1) {
		t.Error("Mutating the mask must not touch the grid")
	}
}
