package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetCamera(t *testing.T) {
	tests := []struct {
		name         string
		px, py       float64
		mapW, mapH   float64
		zoom         float64
		wantX, wantY float64
	}{
		{"centered on player", 1000, 600, 1920, 1080, 1, 1000 - 640, 600 - 360},
		{"clamped at top-left", 10, 10, 1920, 1080, 1, 0, 0},
		{"clamped at bottom-right", 1900, 1070, 1920, 1080, 1, 1920 - 1280, 1080 - 720},
		{"zoom shrinks the view", 1000, 600, 1920, 1080, 2, 1000 - 320, 600 - 180},
		{"map narrower than view", 300, 600, 800, 1080, 1, 0, 600 - 360},
		{"map smaller on both axes", 300, 200, 800, 600, 1, 0, 0},
		{"zero zoom treated as one", 10, 10, 1920, 1080, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := TargetCamera(tt.px, tt.py, 1280, 720, tt.mapW, tt.mapH, tt.zoom)
			assert.InDelta(t, tt.wantX, x, 1e-9)
			assert.InDelta(t, tt.wantY, y, 1e-9)
		})
	}
}

func TestTargetCamera_SmallMapAlwaysZero(t *testing.T) {
	for px := 0.0; px <= 800; px += 37 {
		x, _ := TargetCamera(px, 100, 1280, 720, 800, 2000, 1.5)
		assert.Equal(t, 0.0, x, "px=%v", px)
	}
}

func TestCameraUpdate(t *testing.T) {
	c := Camera{X: 0, Y: 100}
	c.Update(100, 0, 0.1)
	assert.InDelta(t, 10, c.X, 1e-9)
	assert.InDelta(t, 90, c.Y, 1e-9)

	c.Update(100, 0, 0.1)
	assert.InDelta(t, 19, c.X, 1e-9)

	c.Snap(5, 6)
	assert.Equal(t, Camera{X: 5, Y: 6}, c)
}

func TestScaledLerp(t *testing.T) {
	assert.Equal(t, 0.1, scaledLerp(0.1, 1))
	// Two frames of 0.1 cover 19% of the distance.
	assert.InDelta(t, 0.19, scaledLerp(0.1, 2), 1e-9)
}
