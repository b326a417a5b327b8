package game

import "math"

// Camera is the top-left world offset of the viewport.
type Camera struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TargetCamera centers a viewW x viewH screen (world view shrinks by zoom) on
// (px, py) and clamps it so nothing beyond the map edges shows. An axis where
// the map is smaller than the view is pinned to 0.
func TargetCamera(px, py, viewW, viewH, mapW, mapH, zoom float64) (float64, float64) {
	if zoom <= 0 {
		zoom = 1
	}
	vw := viewW / zoom
	vh := viewH / zoom
	tx := math.Max(0, math.Min(px-vw/2, mapW-vw))
	ty := math.Max(0, math.Min(py-vh/2, mapH-vh))
	return tx, ty
}

// Update moves the camera a lerp fraction of the way to the target.
func (c *Camera) Update(tx, ty, lerp float64) {
	c.X += (tx - c.X) * lerp
	c.Y += (ty - c.Y) * lerp
}

// Snap jumps straight to the target.
func (c *Camera) Snap(tx, ty float64) {
	c.X = tx
	c.Y = ty
}

// scaledLerp converts a per-tick lerp factor into the factor for the given
// number of elapsed frames.
func scaledLerp(lerp, frames float64) float64 {
	if frames == 1 {
		return lerp
	}
	return 1 - math.Pow(1-lerp, frames)
}
