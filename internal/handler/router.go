package handler

import (
	"log/slog"
	"sync"

	"github.com/ugaemi/ghostlight/internal/room"
	"github.com/ugaemi/ghostlight/internal/store"
	"github.com/ugaemi/ghostlight/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	session  *SessionHandler
	gameplay *GameplayHandler

	// playerMap tracks client ID -> player ID mapping, shared across handlers.
	playerMap map[string]string
	mu        sync.RWMutex
}

// NewRouter creates a new message router. It takes over the manager's idle
// callback so swept players are cleaned up like disconnects.
func NewRouter(rm *room.Manager, st store.Store) *Router {
	r := &Router{
		playerMap: make(map[string]string),
	}
	r.session = NewSessionHandler(rm, st, r)
	r.gameplay = NewGameplayHandler(rm, r)
	rm.OnIdle = r.session.HandleIdle
	return r
}

// RegisterPlayer maps a client ID to a player ID.
func (r *Router) RegisterPlayer(clientID, playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playerMap[clientID] = playerID
}

// UnregisterPlayer removes a client's player mapping.
func (r *Router) UnregisterPlayer(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.playerMap, clientID)
}

// UnregisterPlayerID removes the mapping that points at playerID.
func (r *Router) UnregisterPlayerID(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for clientID, id := range r.playerMap {
		if id == playerID {
			delete(r.playerMap, clientID)
			return
		}
	}
}

// GetPlayerID returns the player ID for a client, or empty string if not found.
func (r *Router) GetPlayerID(clientID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.playerMap[clientID]
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	msg, err := ws.Decode(cm.Data)
	if err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	if msg.Type == ws.TypeHello {
		r.session.HandleHello(cm.Client, msg)
		return
	}

	if r.GetPlayerID(cm.Client.ID) == "" {
		if msg.Type == ws.TypePing {
			r.gameplay.HandlePing(cm.Client, msg)
			return
		}
		cm.Client.SendMessage(ws.NewErrorMessage("hello required"))
		return
	}

	switch msg.Type {
	case ws.TypeMove:
		r.gameplay.HandleMove(cm.Client, msg)
	case ws.TypePowerupTaken:
		r.gameplay.HandlePowerupTaken(cm.Client, msg)
	case ws.TypePing:
		r.gameplay.HandlePing(cm.Client, msg)
	default:
		slog.Debug("ignoring unknown message type", "type", msg.Type, "client", cm.Client.ID)
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.session.HandleDisconnect(client)
}
