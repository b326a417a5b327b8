package game

import "fmt"

type PowerUp struct {
	Entity
	ID     string      `json:"id"`
	Type   PowerUpType `json:"type"`
	Active bool        `json:"active"`
}

// PowerUpID is the stable identifier of the index-th power-up of a map. Every
// client that loads the same map derives the same ids.
func PowerUpID(index int) string {
	return fmt.Sprintf("pu-%d", index)
}

// buildPowerUps instantiates the map's power-ups, or two defaults when the
// document has none.
func buildPowerUps(g *Geometry) []*PowerUp {
	placements := g.PowerUps
	if len(placements) == 0 {
		placements = []PowerUpPlacement{
			{X: g.Width * 0.25, Y: g.Height * 0.25, Type: PowerUpShield},
			{X: g.Width * 0.75, Y: g.Height * 0.75, Type: PowerUpSpeed},
		}
	}
	out := make([]*PowerUp, 0, len(placements))
	for i, s := range placements {
		pu := &PowerUp{
			Entity: Entity{X: s.X, Y: s.Y, Size: PowerUpSize},
			ID:     PowerUpID(i),
			Type:   s.Type,
			Active: true,
		}
		pu.Clamp(g.Width, g.Height)
		out = append(out, pu)
	}
	return out
}

// Deactivate marks the power-up collected and reports whether it was still
// active.
func (pu *PowerUp) Deactivate() bool {
	if !pu.Active {
		return false
	}
	pu.Active = false
	return true
}

// Apply grants the power-up's effect.
func (pu *PowerUp) Apply(p *Player, buff *SpeedBuff) {
	switch pu.Type {
	case PowerUpShield:
		p.GainLife()
	case PowerUpSpeed:
		buff.Apply(SpeedBuffDuration, SpeedBuffMultiplier)
	}
}
