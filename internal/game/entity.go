package game

// Entity is the positioned, sized, movable part shared by players, ghosts
// and power-ups.
type Entity struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}

// Center returns the middle of the entity's square.
func (e Entity) Center() (float64, float64) {
	return e.X + e.Size/2, e.Y + e.Size/2
}

// SetPosition places the entity's top-left corner at (x, y).
func (e *Entity) SetPosition(x, y float64) {
	e.X = x
	e.Y = y
}

// Clamp keeps the entity inside the map.
func (e *Entity) Clamp(mapW, mapH float64) {
	e.X, e.Y = ClampPosition(e.X, e.Y, e.Size, mapW, mapH)
}

// DistanceTo measures center to center.
func (e Entity) DistanceTo(o Entity) float64 {
	ax, ay := e.Center()
	bx, by := o.Center()
	return Distance(ax, ay, bx, by)
}
