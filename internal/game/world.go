package game

import (
	"math/rand"
	"sort"
	"time"
)

// World is the whole simulation context for one local player: map, entities,
// camera, speed buff and the registry of remote players. It is owned by a
// single tick driver and is not safe for concurrent use.
type World struct {
	Geo      *Geometry
	Player   *Player
	Ghosts   []*Ghost
	PowerUps []*PowerUp
	Camera   Camera
	Buff     SpeedBuff
	Tuning   Tuning

	// Screen size in pixels.
	ViewW float64
	ViewH float64

	TickCount int

	remotes    map[string]*RemotePlayer
	rng        *rand.Rand
	facing     float64
	ghostSpots []Position
	fixedSpots bool
}

type Option func(*World)

// WithSeed makes ghost placement, wander headings and respawns deterministic.
func WithSeed(seed int64) Option {
	return func(w *World) {
		w.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
	}
}

func WithTuning(t Tuning) Option {
	return func(w *World) { w.Tuning = t }
}

func WithViewport(width, height float64) Option {
	return func(w *World) {
		w.ViewW = width
		w.ViewH = height
	}
}

func WithPlayer(p *Player) Option {
	return func(w *World) { w.Player = p }
}

// WithGhosts places exactly these ghosts on every map load, ignoring the
// map document and random placement. No arguments means no ghosts.
func WithGhosts(spots ...Position) Option {
	return func(w *World) {
		w.ghostSpots = spots
		w.fixedSpots = true
	}
}

// NewWorld builds a world and loads geo into it.
func NewWorld(geo *Geometry, opts ...Option) *World {
	w := &World{
		Buff:    SpeedBuff{Multiplier: 1},
		Tuning:  DefaultTuning(),
		ViewW:   1280,
		ViewH:   720,
		remotes: make(map[string]*RemotePlayer),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- gameplay randomness
	}
	if w.Player == nil {
		w.Player = NewPlayer("player")
	}
	w.LoadMap(geo)
	return w
}

// LoadMap replaces the geometry wholesale, repositions the player at the
// spawn point (or a wall-free spot when the spawn point is blocked), rebuilds
// ghosts and power-ups and snaps the camera.
func (w *World) LoadMap(geo *Geometry) {
	if geo == nil {
		geo = EmptyGeometry("")
	}
	w.Geo = geo

	spawn := safeSpawn(geo, w.Player.Size, 0, nil, w.rng)
	w.Player.SetPosition(spawn.X, spawn.Y)
	w.Player.Clamp(geo.Width, geo.Height)

	w.Ghosts = w.Ghosts[:0]
	for _, pos := range w.ghostPositions() {
		x, y := ClampPosition(pos.X, pos.Y, GhostSize, geo.Width, geo.Height)
		pos = unblocked(geo, Position{X: x, Y: y}, GhostSize, w.rng)
		w.Ghosts = append(w.Ghosts, NewGhost(pos.X, pos.Y, w.rng))
	}
	w.PowerUps = buildPowerUps(geo)

	w.Camera.Snap(w.cameraTarget())
}

func (w *World) ghostPositions() []Position {
	if w.fixedSpots {
		return w.ghostSpots
	}
	if len(w.Geo.Ghosts) > 0 {
		out := make([]Position, 0, len(w.Geo.Ghosts))
		for _, p := range w.Geo.Ghosts {
			out = append(out, Position{X: p.X, Y: p.Y})
		}
		return out
	}
	return placeGhosts(w.Geo, DefaultGhostCount, w.Player.Entity, w.rng)
}

// Tick advances the simulation by one frame. dtMs is the elapsed time since
// the previous tick.
func (w *World) Tick(in Input, dtMs float64) []Event {
	var events []Event
	frames := w.frames(dtMs)
	w.TickCount++

	w.Buff.Tick(dtMs)

	w.facing = in.Facing()
	if w.Player.Move(in, w.resolveSpeed(in), w.Geo, frames) {
		events = append(events,
			Event{Kind: EventFootstep},
			Event{Kind: EventMoved, X: w.Player.X, Y: w.Player.Y, Sprinting: w.Player.Sprinting},
		)
	}

	for i, g := range w.Ghosts {
		if g.Think(w.Player, &w.Tuning) {
			events = append(events, Event{Kind: EventChaseAlert, Ghost: i})
		}
		g.Step(w.Geo, &w.Tuning, w.rng, frames)
	}

	events = w.resolveGhostContacts(events)
	events = w.resolvePowerUps(events)

	tx, ty := w.cameraTarget()
	w.Camera.Update(tx, ty, scaledLerp(w.Tuning.CameraLerp, frames))

	return events
}

// resolveSpeed is the player's effective speed for this tick.
func (w *World) resolveSpeed(in Input) float64 {
	base := w.Tuning.WalkSpeed
	if in.Sprint {
		base = w.Tuning.SprintSpeed
	}
	return base * w.Buff.Factor()
}

// EffectiveSpeed is the speed the player would move at with the given input.
func (w *World) EffectiveSpeed(in Input) float64 {
	return w.resolveSpeed(in)
}

func (w *World) frames(dtMs float64) float64 {
	if !w.Tuning.TimeScaled || dtMs <= 0 {
		return 1
	}
	return dtMs / FrameMs
}

func (w *World) cameraTarget() (float64, float64) {
	px, py := w.Player.Center()
	return TargetCamera(px, py, w.ViewW, w.ViewH, w.Geo.Width, w.Geo.Height, w.Tuning.Zoom)
}

// Light returns the fog parameters for the current frame.
func (w *World) Light() Light {
	return ComputeLight(w.Camera, w.Player, &w.Tuning, w.facing)
}

// DeactivatePowerUp marks a power-up taken by someone else. The effect is not
// applied locally.
func (w *World) DeactivatePowerUp(id string) bool {
	for _, pu := range w.PowerUps {
		if pu.ID == id {
			return pu.Deactivate()
		}
	}
	return false
}

// UpsertRemote inserts or replaces a remote player by id.
func (w *World) UpsertRemote(rp RemotePlayer) {
	w.remotes[rp.ID] = &rp
}

// MoveRemote updates a remote player's position, inserting an unnamed entry
// if the id is unknown.
func (w *World) MoveRemote(id string, x, y float64, sprinting bool) {
	rp, ok := w.remotes[id]
	if !ok {
		rp = &RemotePlayer{ID: id}
		w.remotes[id] = rp
	}
	rp.X, rp.Y, rp.Sprinting = x, y, sprinting
}

func (w *World) RemoveRemote(id string) {
	delete(w.remotes, id)
}

// ResetRemotes drops every remote player; the next welcome rebuilds them.
func (w *World) ResetRemotes() {
	clear(w.remotes)
}

// Remotes returns the remote players ordered by id.
func (w *World) Remotes() []RemotePlayer {
	out := make([]RemotePlayer, 0, len(w.remotes))
	for _, rp := range w.remotes {
		out = append(out, *rp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
