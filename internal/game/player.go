package game

import (
	"math"

	"github.com/google/uuid"
)

// Input is one tick's snapshot of the held movement and sprint keys.
type Input struct {
	Up     bool
	Down   bool
	Left   bool
	Right  bool
	Sprint bool
}

// Direction returns the movement direction with each axis in {-1, 0, 1}.
// Diagonals are scaled by 1/sqrt(2) so they are as fast as axial moves.
func (in Input) Direction() (float64, float64) {
	var dx, dy float64
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	if dx != 0 && dy != 0 {
		dx *= math.Sqrt2 / 2
		dy *= math.Sqrt2 / 2
	}
	return dx, dy
}

// Facing returns the angle of the held direction, or 0 (facing right) when
// no direction is held.
func (in Input) Facing() float64 {
	dx, dy := in.Direction()
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Atan2(dy, dx)
}

type Player struct {
	Entity
	ID        string `json:"id"`
	Name      string `json:"name"`
	Lives     int    `json:"lives"`
	Sprinting bool   `json:"sprinting"`
}

func NewPlayer(name string) *Player {
	return &Player{
		Entity: Entity{Size: PlayerSize},
		ID:     uuid.New().String(),
		Name:   name,
		Lives:  StartLives,
	}
}

// Move applies one tick of input at the given effective speed. frames is 1
// for per-tick movement. It reports whether the input asked for movement,
// regardless of whether walls allowed it.
func (p *Player) Move(in Input, speed float64, g *Geometry, frames float64) bool {
	p.Sprinting = in.Sprint
	dirX, dirY := in.Direction()
	dx := dirX * speed * frames
	dy := dirY * speed * frames
	if dx == 0 && dy == 0 {
		return false
	}

	p.X, p.Y = MoveAxisSeparated(p.X, p.Y, p.Size, dx, dy, g.Collidable())
	p.Clamp(g.Width, g.Height)
	return true
}

// LoseLife decrements lives, never below zero, and reports whether the
// player just ran out.
func (p *Player) LoseLife() bool {
	if p.Lives <= 0 {
		p.Lives = 0
		return false
	}
	p.Lives--
	return p.Lives == 0
}

func (p *Player) GainLife() {
	p.Lives++
}

// RemotePlayer is another player's last reported state.
type RemotePlayer struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Sprinting bool    `json:"sprinting"`
}
