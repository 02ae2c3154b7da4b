package spatial

// Region is a maximal 4-connected group of playable cells.
type Region struct {
	ID    int     // Discovery order in the row-major scan
	Cells []Point // Cells in flood order
}

// Size returns the number of cells in the region.
func (r Region) Size() int { return len(r.Cells) }

// TouchesBorder reports whether any cell lies within margin cells of the grid
// edge, i.e. x <= margin, x >= width-margin-1, or the same on y.
func (r Region) TouchesBorder(width, height, margin int) bool {
	for _, c := range r.Cells {
		if c.X <= margin || c.X >= width-margin-1 ||
			c.Y <= margin || c.Y >= height-margin-1 {
			return true
		}
	}
	return false
}

// Regions is the connected-component decomposition of one grid snapshot.
type Regions struct {
	// Labels[y*width+x] is the region ID of a playable cell, or -1.
	Labels []int
	List   []Region
}

// Of returns the region containing (x, y), or false for cut or
// out-of-bounds cells.
func (rs Regions) Of(x, y, width, height int) (Region, bool) {
	if x < 0 || x >= width || y < 0 || y >= height {
		return Region{}, false
	}
	id := rs.Labels[y*width+x]
	if id < 0 {
		return Region{}, false
	}
	return rs.List[id], true
}

// FindRegions labels every 4-connected component of true cells in mask.
//
// Regions are numbered in the order a top-to-bottom, left-to-right scan first
// touches them. The fill is iterative with a reusable work-list, so grid size
// never translates into call depth.
func FindRegions(mask []bool, width, height int) Regions {
	labels := make([]int, len(mask))
	for i := range labels {
		labels[i] = -1
	}

	var list []Region
	stack := make([]int, 0, 64)

	for start, playable := range mask {
		if !playable || labels[start] != -1 {
			continue
		}

		id := len(list)
		region := Region{ID: id}
		labels[start] = id
		stack = append(stack[:0], start)

		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			x := idx % width
			y := idx / width
			region.Cells = append(region.Cells, Point{X: x, Y: y})

			if x > 0 {
				stack = visit(stack, mask, labels, idx-1, id)
			}
			if x < width-1 {
				stack = visit(stack, mask, labels, idx+1, id)
			}
			if y > 0 {
				stack = visit(stack, mask, labels, idx-width, id)
			}
			if y < height-1 {
				stack = visit(stack, mask, labels, idx+width, id)
			}
		}

		list = append(list, region)
	}

	return Regions{Labels: labels, List: list}
}

// visit labels and queues a neighbour if it is playable and unseen.
func visit(stack []int, mask []bool, labels []int, idx, id int) []int {
	if !mask[idx] || labels[idx] != -1 {
		return stack
	}
	labels[idx] = id
	return append(stack, idx)
}
