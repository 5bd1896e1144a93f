package diagram

import "image"

// Contour is the traced outer boundary of one connected ink region.
type Contour struct {
	// Points holds the boundary pixels in clockwise trace order,
	// starting at the region's topmost-leftmost pixel.
	Points []image.Point

	bbox image.Rectangle
}

// BoundingBox returns the axis-aligned pixel bounds of the full
// region, not just its traced boundary.
func (c *Contour) BoundingBox() image.Rectangle {
	return c.bbox
}

// Area returns the area enclosed by the boundary polygon (shoelace
// formula). For stroke-drawn shapes this is the enclosed area, not the
// ink pixel count, matching how contour filters are conventionally
// tuned.
func (c *Contour) Area() float64 {
	n := len(c.Points)
	if n < 3 {
		return 0
	}
	var sum int64
	for i := 0; i < n; i++ {
		p := c.Points[i]
		q := c.Points[(i+1)%n]
		sum += int64(p.X)*int64(q.Y) - int64(q.X)*int64(p.Y)
	}
	if sum < 0 {
		sum = -sum
	}
	return float64(sum) / 2
}

// moore lists the 8-neighborhood in clockwise order for y-down image
// coordinates, starting at East.
var moore = [8]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// FindExternalContours detects the outermost ink regions of a binary
// raster. Regions are 8-connected; only those reachable from the outer
// background are reported, so a shape fully enclosed by another closed
// shape yields no contour of its own. Discovery order is row-major by
// each region's topmost-leftmost pixel, which is deterministic for a
// fixed raster.
func FindExternalContours(bin *Binary) []Contour {
	w, h := bin.W, bin.H
	if w == 0 || h == 0 {
		return nil
	}

	outer := outerBackground(bin)
	visited := make([]bool, w*h)

	var contours []Contour
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !bin.At(x, y) || visited[y*w+x] {
				continue
			}
			region := fillRegion(bin, visited, x, y)
			if !touchesOuter(bin, outer, region.pixels) {
				continue // nested inside a closed shape's hole
			}
			contours = append(contours, Contour{
				Points: traceBoundary(bin, image.Pt(x, y)),
				bbox:   region.bbox,
			})
		}
	}
	return contours
}

type region struct {
	pixels []image.Point
	bbox   image.Rectangle
}

// fillRegion flood-fills the 8-connected foreground component that
// contains (x0, y0), marking it visited.
func fillRegion(bin *Binary, visited []bool, x0, y0 int) region {
	w := bin.W
	reg := region{bbox: image.Rect(x0, y0, x0+1, y0+1)}
	stack := []image.Point{{x0, y0}}
	visited[y0*w+x0] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		reg.pixels = append(reg.pixels, p)
		reg.bbox = reg.bbox.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))

		for _, d := range moore {
			nx, ny := p.X+d.X, p.Y+d.Y
			if bin.At(nx, ny) && !visited[ny*w+nx] {
				visited[ny*w+nx] = true
				stack = append(stack, image.Pt(nx, ny))
			}
		}
	}
	return reg
}

// outerBackground marks the 4-connected background region reachable
// from the raster border. Background not in this set lies inside a
// closed shape (a hole).
func outerBackground(bin *Binary) []bool {
	w, h := bin.W, bin.H
	outer := make([]bool, w*h)
	var stack []image.Point

	push := func(x, y int) {
		if x < 0 || y < 0 || x >= w || y >= h {
			return
		}
		if outer[y*w+x] || bin.At(x, y) {
			return
		}
		outer[y*w+x] = true
		stack = append(stack, image.Pt(x, y))
	}

	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}
	return outer
}

// touchesOuter reports whether any region pixel borders the outer
// background or the raster edge.
func touchesOuter(bin *Binary, outer []bool, pixels []image.Point) bool {
	w, h := bin.W, bin.H
	at := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return true // raster edge counts as outside
		}
		return outer[y*w+x]
	}
	for _, p := range pixels {
		if at(p.X+1, p.Y) || at(p.X-1, p.Y) || at(p.X, p.Y+1) || at(p.X, p.Y-1) {
			return true
		}
	}
	return false
}

// traceBoundary walks the outer boundary of the component containing
// start using Moore-neighbor tracing. start must be the component's
// topmost-leftmost pixel, so the initial backtrack direction (West) is
// guaranteed to be background.
func traceBoundary(bin *Binary, start image.Point) []image.Point {
	points := []image.Point{start}

	// Direction index of the neighbor we arrived from (the backtrack).
	// Starting at the topmost-leftmost pixel, West (index 4) is free.
	cur := start
	back := 4

	// First move: scan clockwise from just past the backtrack.
	next, nextBack, ok := nextBoundary(bin, cur, back)
	if !ok {
		return points // isolated pixel
	}
	firstMove := next
	firstBack := nextBack

	cur, back = next, nextBack
	limit := 4 * (bin.W*bin.H + 4)
	for i := 0; i < limit; i++ {
		if cur == start {
			// Jacob's stopping criterion: back at the start about to
			// repeat the opening move.
			n, nb, ok := nextBoundary(bin, cur, back)
			if !ok || (n == firstMove && nb == firstBack) {
				break
			}
		}
		points = append(points, cur)
		n, nb, ok := nextBoundary(bin, cur, back)
		if !ok {
			break
		}
		cur, back = n, nb
	}
	return points
}

// nextBoundary finds the next clockwise foreground neighbor of cur,
// scanning from just past the backtrack direction. Returns the new
// position and the direction index of its backtrack neighbor.
func nextBoundary(bin *Binary, cur image.Point, back int) (image.Point, int, bool) {
	prev := back
	for i := 1; i <= 8; i++ {
		d := (back + i) % 8
		n := image.Pt(cur.X+moore[d].X, cur.Y+moore[d].Y)
		if bin.At(n.X, n.Y) {
			// The backtrack of the new position points at the last
			// background neighbor we scanned past.
			bx := cur.X + moore[prev].X - n.X
			by := cur.Y + moore[prev].Y - n.Y
			return n, dirIndex(bx, by), true
		}
		prev = d
	}
	return image.Point{}, 0, false
}

func dirIndex(dx, dy int) int {
	for i, d := range moore {
		if d.X == dx && d.Y == dy {
			return i
		}
	}
	return 4
}
