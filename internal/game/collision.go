package game

import "math"

// Rect is an axis-aligned rectangle in map coordinates (top-left origin).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectIntersect reports whether two rectangles overlap on both axes.
// Touching edges do not count.
func RectIntersect(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && ax+aw > bx && ay < by+bh && ay+ah > by
}

// EntityIntersect reports whether the squares of two entities overlap.
func EntityIntersect(a, b Entity) bool {
	return RectIntersect(a.X, a.Y, a.Size, a.Size, b.X, b.Y, b.Size, b.Size)
}

// ResolvedMove applies (dx, dy) to a square at (x, y) unless the moved square
// overlaps any of rects, in which case the original position is returned.
// Callers move one axis per call; see MoveAxisSeparated.
func ResolvedMove(x, y, size, dx, dy float64, rects []Rect) (float64, float64) {
	nx, ny := x+dx, y+dy
	for _, r := range rects {
		if RectIntersect(nx, ny, size, size, r.X, r.Y, r.Width, r.Height) {
			return x, y
		}
	}
	return nx, ny
}

// MoveAxisSeparated resolves x first and then y, with the y test using the
// already-updated x.
func MoveAxisSeparated(x, y, size, dx, dy float64, rects []Rect) (float64, float64) {
	if dx != 0 {
		x, _ = ResolvedMove(x, y, size, dx, 0, rects)
	}
	if dy != 0 {
		_, y = ResolvedMove(x, y, size, 0, dy, rects)
	}
	return x, y
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

// ClampPosition clamps a square's top-left corner so the square stays inside
// a mapW x mapH map. A map smaller than the square pins it to 0.
func ClampPosition(x, y, size, mapW, mapH float64) (float64, float64) {
	return clamp(x, 0, mapW-size), clamp(y, 0, mapH-size)
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
