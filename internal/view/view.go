// Package view turns world state into screen-space shapes. It has no
// rendering dependency, so the drawing front end stays a thin loop over its
// output.
package view

import (
	"fmt"
	"math"

	"github.com/ugaemi/ghostlight/internal/game"
)

// Projection maps world coordinates to screen pixels.
type Projection struct {
	CamX, CamY float64
	Zoom       float64
}

// NewProjection builds the projection for the world's current camera.
func NewProjection(w *game.World) Projection {
	zoom := w.Tuning.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return Projection{CamX: w.Camera.X, CamY: w.Camera.Y, Zoom: zoom}
}

// Point projects a world point.
func (p Projection) Point(x, y float64) (float32, float32) {
	return float32((x - p.CamX) * p.Zoom), float32((y - p.CamY) * p.Zoom)
}

// Rect projects a world rectangle.
func (p Projection) Rect(r game.Rect) (x, y, w, h float32) {
	x, y = p.Point(r.X, r.Y)
	return x, y, float32(r.Width * p.Zoom), float32(r.Height * p.Zoom)
}

// Square projects an entity's bounding square.
func (p Projection) Square(e game.Entity) (x, y, size float32) {
	x, y = p.Point(e.X, e.Y)
	return x, y, float32(e.Size * p.Zoom)
}

// Circle projects an entity as a circle centered on it.
func (p Projection) Circle(e game.Entity) (cx, cy, r float32) {
	ex, ey := e.Center()
	cx, cy = p.Point(ex, ey)
	return cx, cy, float32(e.Size / 2 * p.Zoom)
}

// Visible reports whether a projected box intersects a screen of the given
// size.
func Visible(x, y, w, h float32, screenW, screenH int) bool {
	return x+w >= 0 && y+h >= 0 && x <= float32(screenW) && y <= float32(screenH)
}

// Ring is one step of the light falloff: clear Alpha of the remaining fog
// inside Radius.
type Ring struct {
	Radius float64
	Alpha  float64
}

// FogRings returns the light as steps from the outer radius inwards. Applied
// in order with destination-out blending, the fog left at a ring boundary
// falls linearly from full darkness at OuterRadius to none inside the last
// ring.
func FogRings(l game.Light, steps int) []Ring {
	if steps < 1 || l.OuterRadius <= 0 {
		return nil
	}
	rings := make([]Ring, steps)
	span := l.OuterRadius - l.InnerRadius
	for i := range steps {
		rings[i] = Ring{
			Radius: l.OuterRadius - span*float64(i)/float64(steps),
			Alpha:  1 / float64(steps-i),
		}
	}
	return rings
}

// ConePoints returns the outline of the flashlight cone as a fan starting at
// the light center, or nil when the cone is off.
func ConePoints(l game.Light, segments int) [][2]float64 {
	if !l.ConeEnabled || segments < 1 {
		return nil
	}
	pts := make([][2]float64, 0, segments+2)
	pts = append(pts, [2]float64{l.CenterX, l.CenterY})
	start := l.Facing - l.ConeHalfAngle
	step := 2 * l.ConeHalfAngle / float64(segments)
	for i := 0; i <= segments; i++ {
		a := start + step*float64(i)
		pts = append(pts, [2]float64{
			l.CenterX + math.Cos(a)*l.ConeLength,
			l.CenterY + math.Sin(a)*l.ConeLength,
		})
	}
	return pts
}

// HUD returns the status lines drawn in the corner of the screen.
func HUD(w *game.World, remotes int, rtt string) []string {
	lines := []string{
		fmt.Sprintf("lives %d", w.Player.Lives),
	}
	if w.Buff.Active() {
		lines = append(lines, fmt.Sprintf("speed %.1fs", w.Buff.RemainingMs/1000))
	}
	chasing := 0
	for _, g := range w.Ghosts {
		if g.State == game.GhostChase {
			chasing++
		}
	}
	if chasing > 0 {
		lines = append(lines, fmt.Sprintf("chased by %d", chasing))
	}
	if remotes > 0 || rtt != "" {
		lines = append(lines, fmt.Sprintf("online %d %s", remotes, rtt))
	}
	if w.GameOver() {
		lines = append(lines, "GAME OVER")
	}
	return lines
}
