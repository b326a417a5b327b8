package game

import "math/rand"

// safeSpawn finds a wall-free position for a square of the given size that is
// at least minDist away from every point in avoid. The map spawn point wins
// when it qualifies. When no random try keeps the distance, any wall-free
// spot is taken; the spawn point is the last resort.
func safeSpawn(g *Geometry, size, minDist float64, avoid []Entity, rng *rand.Rand) Position {
	sx, sy := g.SpawnPoint(size)
	sx, sy = ClampPosition(sx, sy, size, g.Width, g.Height)
	if !g.Blocked(sx, sy, size) && isFarEnough(sx, sy, size, minDist, avoid) {
		return Position{X: sx, Y: sy}
	}

	for i := 0; i < spawnAttempts; i++ {
		pos := randomPosition(g, size, rng)
		if !g.Blocked(pos.X, pos.Y, size) && isFarEnough(pos.X, pos.Y, size, minDist, avoid) {
			return pos
		}
	}
	if !g.Blocked(sx, sy, size) {
		return Position{X: sx, Y: sy}
	}
	if pos, ok := freePosition(g, size, rng); ok {
		return pos
	}
	return Position{X: sx, Y: sy}
}

// unblocked returns pos when a square of the given size fits there, otherwise
// a random wall-free position. pos is kept when none can be found.
func unblocked(g *Geometry, pos Position, size float64, rng *rand.Rand) Position {
	if !g.Blocked(pos.X, pos.Y, size) {
		return pos
	}
	if free, ok := freePosition(g, size, rng); ok {
		return free
	}
	return pos
}

// freePosition samples random positions until one does not overlap walls or
// obstacles.
func freePosition(g *Geometry, size float64, rng *rand.Rand) (Position, bool) {
	for i := 0; i < spawnAttempts*10; i++ {
		pos := randomPosition(g, size, rng)
		if !g.Blocked(pos.X, pos.Y, size) {
			return pos, true
		}
	}
	return Position{}, false
}

// placeGhosts returns positions for count ghosts that avoid walls, keep
// MinGhostSpacing between each other and MinRespawnDistance from the player.
func placeGhosts(g *Geometry, count int, player Entity, rng *rand.Rand) []Position {
	avoid := []Entity{player}
	positions := make([]Position, 0, count)
	for len(positions) < count {
		pos, ok := placeOne(g, avoid, rng)
		if !ok {
			// Spacing could not be kept; settle for any wall-free spot.
			pos = unblocked(g, randomPosition(g, GhostSize, rng), GhostSize, rng)
		}
		positions = append(positions, pos)
		avoid = append(avoid, Entity{X: pos.X, Y: pos.Y, Size: GhostSize})
	}
	return positions
}

func placeOne(g *Geometry, avoid []Entity, rng *rand.Rand) (Position, bool) {
	for i := 0; i < spawnAttempts; i++ {
		pos := randomPosition(g, GhostSize, rng)
		if g.Blocked(pos.X, pos.Y, GhostSize) {
			continue
		}
		minDist := MinGhostSpacing
		if len(avoid) > 0 && !isFarEnough(pos.X, pos.Y, GhostSize, MinRespawnDistance, avoid[:1]) {
			continue
		}
		if isFarEnough(pos.X, pos.Y, GhostSize, minDist, avoid[1:]) {
			return pos, true
		}
	}
	return Position{}, false
}

// Position represents a 2D coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func randomPosition(g *Geometry, size float64, rng *rand.Rand) Position {
	maxX := g.Width - size
	maxY := g.Height - size
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	return Position{X: rng.Float64() * maxX, Y: rng.Float64() * maxY}
}

// isFarEnough checks if a square at (x, y) is at least minDist (center to
// center) from every entity in existing.
func isFarEnough(x, y, size, minDist float64, existing []Entity) bool {
	e := Entity{X: x, Y: y, Size: size}
	for _, o := range existing {
		if e.DistanceTo(o) < minDist {
			return false
		}
	}
	return true
}
