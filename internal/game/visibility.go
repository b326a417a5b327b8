package game

// Light is what the renderer needs to draw the fog around the player.
// Radii are in screen pixels.
type Light struct {
	CenterX     float64
	CenterY     float64
	InnerRadius float64 // fully lit inside
	OuterRadius float64 // fully dark (Darkness) outside
	Darkness    float64 // ambient darkness floor, 0..1

	ConeEnabled   bool
	Facing        float64 // radians, 0 = right
	ConeHalfAngle float64
	ConeLength    float64
}

// ComputeLight derives the fog parameters from the camera and the player's
// position. facing is only meaningful when the cone is enabled.
func ComputeLight(cam Camera, p *Player, t *Tuning, facing float64) Light {
	zoom := t.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	cx, cy := p.Center()
	outer := t.LightRadius * zoom
	l := Light{
		CenterX:     (cx - cam.X) * zoom,
		CenterY:     (cy - cam.Y) * zoom,
		InnerRadius: outer * LightInner,
		OuterRadius: outer,
		Darkness:    t.Darkness,
	}
	if t.FogCone {
		l.ConeEnabled = true
		l.Facing = facing
		l.ConeHalfAngle = ConeHalfAngle
		l.ConeLength = outer * ConeLengthMult
	}
	return l
}
