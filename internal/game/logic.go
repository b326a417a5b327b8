package game

// resolveGhostContacts handles the first ghost touching the player: one life
// lost and a respawn. Further ghosts are not checked this tick, so at most
// one life is lost per tick.
func (w *World) resolveGhostContacts(events []Event) []Event {
	for i, g := range w.Ghosts {
		if !EntityIntersect(g.Entity, w.Player.Entity) {
			continue
		}
		events = append(events, Event{Kind: EventCaught, Ghost: i})
		if w.Player.LoseLife() {
			events = append(events, Event{Kind: EventGameOver})
		}
		w.respawnPlayer()
		break
	}
	return events
}

// resolvePowerUps collects every active power-up the player overlaps.
func (w *World) resolvePowerUps(events []Event) []Event {
	for _, pu := range w.PowerUps {
		if !pu.Active || !EntityIntersect(pu.Entity, w.Player.Entity) {
			continue
		}
		pu.Deactivate()
		pu.Apply(w.Player, &w.Buff)
		events = append(events, Event{Kind: EventPowerUp, PowerUpID: pu.ID, PowerUp: pu.Type})
	}
	return events
}

func (w *World) respawnPlayer() {
	avoid := make([]Entity, 0, len(w.Ghosts))
	for _, g := range w.Ghosts {
		avoid = append(avoid, g.Entity)
	}
	pos := safeSpawn(w.Geo, w.Player.Size, MinRespawnDistance, avoid, w.rng)
	w.Player.SetPosition(pos.X, pos.Y)
	w.Player.Clamp(w.Geo.Width, w.Geo.Height)
}

// GameOver reports whether the player has no lives left.
func (w *World) GameOver() bool {
	return w.Player.Lives <= 0
}
