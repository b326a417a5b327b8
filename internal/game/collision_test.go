package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		x1, y1   float64
		x2, y2   float64
		expected float64
	}{
		{"same point", 0, 0, 0, 0, 0},
		{"horizontal", 0, 0, 3, 0, 3},
		{"vertical", 0, 0, 0, 4, 4},
		{"diagonal 3-4-5", 0, 0, 3, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Distance(tt.x1, tt.y1, tt.x2, tt.y2)
			assert.InDelta(t, tt.expected, result, 0.001)
		})
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name     string
		b        Rect
		expected bool
	}{
		{"overlapping", Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"contained", Rect{X: 2, Y: 2, Width: 2, Height: 2}, true},
		{"touching right edge", Rect{X: 10, Y: 0, Width: 10, Height: 10}, false},
		{"touching bottom edge", Rect{X: 0, Y: 10, Width: 10, Height: 10}, false},
		{"overlap on x only", Rect{X: 5, Y: 20, Width: 10, Height: 10}, false},
		{"far away", Rect{X: 100, Y: 100, Width: 1, Height: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RectIntersect(0, 0, 10, 10, tt.b.X, tt.b.Y, tt.b.Width, tt.b.Height)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestEntityIntersect(t *testing.T) {
	a := Entity{X: 0, Y: 0, Size: 32}
	assert.True(t, EntityIntersect(a, Entity{X: 31, Y: 31, Size: 32}))
	assert.False(t, EntityIntersect(a, Entity{X: 32, Y: 0, Size: 32}))
}

func TestResolvedMove(t *testing.T) {
	wall := []Rect{{X: 100, Y: 0, Width: 20, Height: 200}}

	t.Run("free move", func(t *testing.T) {
		x, y := ResolvedMove(50, 50, 32, 5, 0, wall)
		assert.Equal(t, 55.0, x)
		assert.Equal(t, 50.0, y)
	})

	t.Run("blocked move is cancelled, not snapped", func(t *testing.T) {
		// 66+32 = 98; +5 would reach 103, inside the wall.
		x, y := ResolvedMove(66, 50, 32, 5, 0, wall)
		assert.Equal(t, 66.0, x)
		assert.Equal(t, 50.0, y)
	})

	t.Run("ends flush against wall", func(t *testing.T) {
		x, _ := ResolvedMove(63, 50, 32, 5, 0, wall)
		assert.Equal(t, 68.0, x)
	})

	t.Run("obstacle after wall still blocks", func(t *testing.T) {
		rects := []Rect{{X: 500, Y: 500, Width: 1, Height: 1}, {X: 0, Y: 60, Width: 200, Height: 10}}
		x, y := ResolvedMove(50, 20, 32, 0, 10, rects)
		assert.Equal(t, 50.0, x)
		assert.Equal(t, 20.0, y)
	})
}

func TestMoveAxisSeparated_SlidesAlongWall(t *testing.T) {
	wall := []Rect{{X: 100, Y: 0, Width: 20, Height: 400}}

	// Diagonal into the wall: x is cancelled, y still advances.
	x, y := MoveAxisSeparated(66, 50, 32, 5, 5, wall)
	assert.Equal(t, 66.0, x)
	assert.Equal(t, 55.0, y)
}

func TestMoveAxisSeparated_UsesUpdatedX(t *testing.T) {
	// A block below-right of the square: moving x first puts the square
	// above the block, so the y move is then blocked.
	block := []Rect{{X: 40, Y: 40, Width: 20, Height: 20}}
	x, y := MoveAxisSeparated(0, 0, 32, 10, 10, block)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 0.0, y)
}

func TestResolvedMove_NoPenetration(t *testing.T) {
	walls := []Rect{
		{X: 200, Y: 200, Width: 50, Height: 50},
		{X: 0, Y: 300, Width: 600, Height: 10},
	}
	x, y := 180.0, 150.0
	steps := []struct{ dx, dy float64 }{
		{0, 4}, {4, 0}, {4, 4}, {0, 7}, {-3, 5}, {6, 6}, {0, 9}, {9, 0},
	}
	for i := 0; i < 40; i++ {
		s := steps[i%len(steps)]
		x, y = MoveAxisSeparated(x, y, 32, s.dx, s.dy, walls)
		for _, w := range walls {
			assert.False(t, RectIntersect(x, y, 32, 32, w.X, w.Y, w.Width, w.Height),
				"square at (%.1f, %.1f) overlaps wall %+v", x, y, w)
		}
	}
}

func TestClampPosition(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float64
		wantX float64
		wantY float64
	}{
		{"inside", 100, 100, 100, 100},
		{"negative", -10, -5, 0, 0},
		{"past right and bottom", 2000, 2000, 1920 - 32, 1080 - 32},
		{"on max edge", 1888, 1048, 1888, 1048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ClampPosition(tt.x, tt.y, 32, 1920, 1080)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}
