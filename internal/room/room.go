package room

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ugaemi/ghostlight/internal/game"
	"github.com/ugaemi/ghostlight/internal/ws"
)

// Room limits and idle handling
const (
	MaxPlayers    = 8
	SweepInterval = 5 * time.Second
	IdleTimeout   = 30 * time.Second
)

// Member is a player connected to a room.
type Member struct {
	ID        string
	Name      string
	X         float64
	Y         float64
	Sprinting bool
	JoinedAt  time.Time
	LastSeen  time.Time
}

// Room is a shared session: everyone in it plays the same map and sees each
// other's positions and power-up pickups. Positions are reported by clients;
// the room only clamps them to the map.
type Room struct {
	Code    string
	MapName string
	Width   float64
	Height  float64

	members map[string]*Member
	clients map[string]*ws.Client
	taken   map[string]bool

	// Idle sweep control
	stopCh chan struct{}
	now    func() time.Time

	mu sync.RWMutex
}

// NewRoom creates a room playing the given map.
func NewRoom(code string, geo *game.Geometry) *Room {
	return &Room{
		Code:    code,
		MapName: geo.Name,
		Width:   geo.Width,
		Height:  geo.Height,
		members: make(map[string]*Member),
		clients: make(map[string]*ws.Client),
		taken:   make(map[string]bool),
		now:     time.Now,
	}
}

// AddMember adds a player to the room. Returns false if the room is full.
func (r *Room) AddMember(m *Member, client *ws.Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.members) >= MaxPlayers {
		return false
	}
	now := r.now()
	m.JoinedAt = now
	m.LastSeen = now
	m.X, m.Y = game.ClampPosition(m.X, m.Y, game.PlayerSize, r.Width, r.Height)
	r.members[m.ID] = m
	r.clients[m.ID] = client
	return true
}

// RemoveMember removes a player and returns its final state.
func (r *Room) RemoveMember(id string) (Member, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return Member{}, false
	}
	delete(r.members, id)
	delete(r.clients, id)
	return *m, true
}

// HasMember reports whether the player is in this room.
func (r *Room) HasMember(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[id]
	return ok
}

// MemberCount returns the number of players.
func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// IsEmpty returns true if the room has no players.
func (r *Room) IsEmpty() bool {
	return r.MemberCount() == 0
}

// IsFull returns true if no one else can join.
func (r *Room) IsFull() bool {
	return r.MemberCount() >= MaxPlayers
}

// Members returns a snapshot of all players ordered by join time.
func (r *Room) Members() []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out
}

// Move records a player's reported position, clamped to the map, and
// returns the stored value.
func (r *Room) Move(id string, x, y float64, sprinting bool) (float64, float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return 0, 0, false
	}
	m.X, m.Y = game.ClampPosition(x, y, game.PlayerSize, r.Width, r.Height)
	m.Sprinting = sprinting
	m.LastSeen = r.now()
	return m.X, m.Y, true
}

// Touch marks a player as active.
func (r *Room) Touch(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.members[id]; ok {
		m.LastSeen = r.now()
	}
}

// TakePowerUp records a pickup and reports whether it was the first one for
// that id.
func (r *Room) TakePowerUp(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken[id] {
		return false
	}
	r.taken[id] = true
	return true
}

// Taken returns the ids of collected power-ups, sorted.
func (r *Room) Taken() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.taken))
	for id := range r.taken {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Welcome builds the welcome payload for a newly joined player.
func (r *Room) Welcome(playerID string) ws.WelcomePayload {
	members := r.Members()
	players := make([]ws.PlayerInfo, 0, len(members))
	for _, m := range members {
		players = append(players, ws.PlayerInfo{ID: m.ID, X: m.X, Y: m.Y, Name: m.Name})
	}
	return ws.WelcomePayload{
		ID:      playerID,
		Room:    r.Code,
		Map:     r.MapName,
		Players: players,
		Taken:   r.Taken(),
	}
}

// BroadcastMessage sends a message to all players in the room.
func (r *Room) BroadcastMessage(msg ws.Message) {
	r.BroadcastExcept("", msg)
}

// BroadcastExcept sends a message to every player but one.
func (r *Room) BroadcastExcept(skipID string, msg ws.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, client := range r.clients {
		if id == skipID {
			continue
		}
		client.SendMessage(msg)
	}
}

// SendToPlayer sends a message to a specific player.
func (r *Room) SendToPlayer(playerID string, msg ws.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if client, ok := r.clients[playerID]; ok {
		client.SendMessage(msg)
	}
}

// StartSweep starts the idle sweep loop. Players silent for longer than
// timeout are removed, announced with playerLeft and passed to onIdle.
func (r *Room) StartSweep(interval, timeout time.Duration, onIdle func(r *Room, m Member)) {
	r.mu.Lock()
	if r.stopCh != nil {
		r.mu.Unlock()
		return
	}
	r.stopCh = make(chan struct{})
	stopCh := r.stopCh
	r.mu.Unlock()

	go r.sweepLoop(stopCh, interval, timeout, onIdle)
}

// Stop ends the sweep loop. Safe to call more than once.
func (r *Room) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopCh == nil {
		return
	}
	select {
	case <-r.stopCh:
		// Already closed
	default:
		close(r.stopCh)
	}
}

func (r *Room) sweepLoop(stopCh chan struct{}, interval, timeout time.Duration, onIdle func(r *Room, m Member)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			for _, m := range r.sweep(timeout) {
				slog.Info("idle player removed", "player", m.ID, "room", r.Code)
				r.BroadcastMessage(ws.MustMessage(ws.TypePlayerLeft, ws.PlayerLeftPayload{ID: m.ID}))
				if onIdle != nil {
					onIdle(r, m)
				}
			}
		}
	}
}

// sweep removes and returns the players idle for longer than timeout.
func (r *Room) sweep(timeout time.Duration) []Member {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-timeout)
	var idle []Member
	for id, m := range r.members {
		if m.LastSeen.Before(cutoff) {
			idle = append(idle, *m)
			delete(r.members, id)
			delete(r.clients, id)
		}
	}
	return idle
}
