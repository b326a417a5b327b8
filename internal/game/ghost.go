package game

import (
	"math"
	"math/rand"
)

type Ghost struct {
	Entity
	State  GhostState `json:"state"`
	Target *Player    `json:"-"`

	// Wander heading, unit length.
	DX float64 `json:"-"`
	DY float64 `json:"-"`

	// ChangeDirTimer counts ticks until the wander heading is resampled.
	ChangeDirTimer float64 `json:"-"`

	chasing bool
}

func NewGhost(x, y float64, rng *rand.Rand) *Ghost {
	g := &Ghost{Entity: Entity{X: x, Y: y, Size: GhostSize}}
	g.resampleHeading(rng, WanderIntervalTicks)
	return g
}

// Think runs the wander/chase transitions against the player and reports
// whether the ghost just started chasing.
func (g *Ghost) Think(p *Player, t *Tuning) bool {
	dist := g.DistanceTo(p.Entity)

	switch g.State {
	case GhostWander:
		if dist < t.DetectionRadius && p.Sprinting {
			g.State = GhostChase
			g.Target = p
		}
	case GhostChase:
		if dist > t.DetectionRadius*2 {
			g.State = GhostWander
			g.Target = nil
		}
	}

	alert := false
	if g.State == GhostChase && !g.chasing {
		alert = true
	}
	g.chasing = g.State == GhostChase
	return alert
}

// Step moves the ghost one tick according to its state.
func (g *Ghost) Step(geo *Geometry, t *Tuning, rng *rand.Rand, frames float64) {
	var dx, dy float64
	if g.State == GhostChase && g.Target != nil {
		tx, ty := g.Target.Center()
		gx, gy := g.Center()
		angle := math.Atan2(ty-gy, tx-gx)
		speed := (t.GhostSpeed + t.ChaseBonus) * frames
		dx, dy = math.Cos(angle)*speed, math.Sin(angle)*speed
	} else {
		g.ChangeDirTimer -= frames
		if g.ChangeDirTimer <= 0 {
			g.resampleHeading(rng, t.WanderIntervalTicks)
		}
		speed := t.GhostSpeed * frames
		dx, dy = g.DX*speed, g.DY*speed
	}

	ox, oy := g.X, g.Y
	g.X, g.Y = MoveAxisSeparated(g.X, g.Y, g.Size, dx, dy, geo.Collidable())
	g.Clamp(geo.Width, geo.Height)

	if g.State == GhostWander && g.X == ox && g.Y == oy && (dx != 0 || dy != 0) {
		g.resampleHeading(rng, t.WanderIntervalTicks)
	}
}

func (g *Ghost) resampleHeading(rng *rand.Rand, interval float64) {
	angle := rng.Float64() * 2 * math.Pi
	g.DX, g.DY = math.Cos(angle), math.Sin(angle)
	g.ChangeDirTimer = interval
}
