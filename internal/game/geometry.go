package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Point is a map coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PowerUpPlacement places a power-up in a map document.
type PowerUpPlacement struct {
	X    float64     `json:"x"`
	Y    float64     `json:"y"`
	Type PowerUpType `json:"type"`
}

// Geometry is a loaded map. It is never mutated after loading; a new map
// replaces it wholesale.
type Geometry struct {
	Name      string             `json:"name,omitempty"`
	Width     float64            `json:"width,omitempty"`
	Height    float64            `json:"height,omitempty"`
	Walls     []Rect             `json:"walls,omitempty"`
	Obstacles []Rect             `json:"obstacles,omitempty"`
	Doorways  []Rect             `json:"doorways,omitempty"`
	Spawn     *Point             `json:"spawn,omitempty"`
	PowerUps  []PowerUpPlacement `json:"powerups,omitempty"`
	Ghosts    []Point            `json:"ghosts,omitempty"`

	collidable []Rect
}

var ErrInvalidGeometry = errors.New("invalid geometry")

// EmptyGeometry returns a fully walkable map of the default size.
func EmptyGeometry(name string) *Geometry {
	g := &Geometry{Name: name}
	g.applyDefaults()
	return g
}

// ParseGeometry decodes a map document. Missing arrays are empty and missing
// dimensions fall back to the default map size.
func ParseGeometry(data []byte) (*Geometry, error) {
	var g Geometry
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}
	g.applyDefaults()
	if err := g.validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

func (g *Geometry) applyDefaults() {
	if g.Width == 0 {
		g.Width = DefaultMapWidth
	}
	if g.Height == 0 {
		g.Height = DefaultMapHeight
	}
	g.collidable = make([]Rect, 0, len(g.Walls)+len(g.Obstacles))
	g.collidable = append(g.collidable, g.Walls...)
	g.collidable = append(g.collidable, g.Obstacles...)
}

func (g *Geometry) validate() error {
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("%w: negative map size %vx%v", ErrInvalidGeometry, g.Width, g.Height)
	}
	for _, set := range [][]Rect{g.Walls, g.Obstacles, g.Doorways} {
		for _, r := range set {
			if r.Width < 0 || r.Height < 0 {
				return fmt.Errorf("%w: rectangle with negative size at (%v,%v)", ErrInvalidGeometry, r.X, r.Y)
			}
		}
	}
	return nil
}

// Collidable returns walls followed by obstacles. Doorways never collide.
func (g *Geometry) Collidable() []Rect {
	if g.collidable == nil {
		g.applyDefaults()
	}
	return g.collidable
}

// Blocked reports whether a square at (x, y) would overlap collidable
// geometry.
func (g *Geometry) Blocked(x, y, size float64) bool {
	for _, r := range g.Collidable() {
		if RectIntersect(x, y, size, size, r.X, r.Y, r.Width, r.Height) {
			return true
		}
	}
	return false
}

// SpawnPoint returns the document's spawn point or the map center for a
// square of the given size.
func (g *Geometry) SpawnPoint(size float64) (float64, float64) {
	if g.Spawn != nil {
		return g.Spawn.X, g.Spawn.Y
	}
	return (g.Width - size) / 2, (g.Height - size) / 2
}
