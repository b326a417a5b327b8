package room

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/ugaemi/ghostlight/internal/game"
	"github.com/ugaemi/ghostlight/internal/ws"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)

// Manager manages all active rooms. Every room plays the manager's map.
type Manager struct {
	geo   *game.Geometry
	rooms map[string]*Room // code -> room
	order []string         // codes, oldest first
	mu    sync.RWMutex

	// OnIdle receives players removed by a room's idle sweep.
	OnIdle func(r *Room, m Member)
}

// NewManager creates a new room manager for the given map.
func NewManager(geo *game.Geometry) *Manager {
	return &Manager{
		geo:   geo,
		rooms: make(map[string]*Room),
	}
}

// MapName returns the name of the map new rooms play.
func (m *Manager) MapName() string {
	return m.geo.Name
}

// SpawnPoint is where newly joined players are placed before their first move.
func (m *Manager) SpawnPoint() (float64, float64) {
	return m.geo.SpawnPoint(game.PlayerSize)
}

// CreateRoom creates a new room, starts its idle sweep and returns it.
func (m *Manager) CreateRoom() *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createLocked()
}

func (m *Manager) createLocked() *Room {
	existing := make(map[string]bool, len(m.rooms))
	for code := range m.rooms {
		existing[code] = true
	}

	code := GenerateCode(existing)
	r := NewRoom(code, m.geo)
	m.rooms[code] = r
	m.order = append(m.order, code)
	r.StartSweep(SweepInterval, IdleTimeout, m.onIdle)

	slog.Info("room created", "code", code, "map", m.geo.Name)
	return r
}

func (m *Manager) onIdle(r *Room, mem Member) {
	if m.OnIdle != nil {
		m.OnIdle(r, mem)
	}
}

// Find returns the room to join: the named room, or for an empty code the
// newest room with space, creating one when all are full.
func (m *Manager) Find(code string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findLocked(code)
}

// Join finds a room like Find and adds the member to it under the manager
// lock, so the room cannot be removed as empty in between.
func (m *Manager) Join(code string, mem *Member, client *ws.Client) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.findLocked(code)
	if err != nil {
		return nil, err
	}
	if !r.AddMember(mem, client) {
		return nil, ErrRoomFull
	}
	return r, nil
}

func (m *Manager) findLocked(code string) (*Room, error) {
	if code != "" {
		r, ok := m.rooms[code]
		if !ok {
			return nil, ErrRoomNotFound
		}
		if r.IsFull() {
			return nil, ErrRoomFull
		}
		return r, nil
	}

	for i := len(m.order) - 1; i >= 0; i-- {
		if r := m.rooms[m.order[i]]; !r.IsFull() {
			return r, nil
		}
	}
	return m.createLocked(), nil
}

// GetRoom returns a room by its code.
func (m *Manager) GetRoom(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

// RemoveRoom stops and removes a room by its code.
func (m *Manager) RemoveRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(code)
}

func (m *Manager) removeLocked(code string) {
	r, ok := m.rooms[code]
	if !ok {
		return
	}
	r.Stop()
	delete(m.rooms, code)
	for i, c := range m.order {
		if c == code {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	slog.Info("room removed", "code", code)
}

// RemoveIfEmpty removes the room when nobody is left in it. Emptiness is
// checked under the manager lock, the same lock Join adds members under.
func (m *Manager) RemoveIfEmpty(r *Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rooms[r.Code] != r || !r.IsEmpty() {
		return
	}
	m.removeLocked(r.Code)
}

// RoomCount returns the number of active rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// FindRoomByPlayerID finds the room containing a player.
func (m *Manager) FindRoomByPlayerID(playerID string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rooms {
		if r.HasMember(playerID) {
			return r
		}
	}
	return nil
}

// Shutdown stops every room's sweep loop.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		r.Stop()
	}
}
