package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/ghostlight/internal/room"
	"github.com/ugaemi/ghostlight/internal/ws"
)

// GameplayHandler relays in-game messages between room members.
type GameplayHandler struct {
	rm     *room.Manager
	router *Router
}

// NewGameplayHandler creates a new gameplay handler.
func NewGameplayHandler(rm *room.Manager, router *Router) *GameplayHandler {
	return &GameplayHandler{rm: rm, router: router}
}

// HandleMove stores the sender's position, clamped to the map, and relays it
// to everyone else in the room.
func (h *GameplayHandler) HandleMove(client *ws.Client, msg ws.Message) {
	var req ws.MovePayload
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid move data"))
		return
	}

	playerID, r := h.lookup(client)
	if r == nil {
		return
	}

	x, y, ok := r.Move(playerID, req.X, req.Y, req.Sprinting)
	if !ok {
		return
	}
	r.BroadcastExcept(playerID, ws.MustMessage(ws.TypePlayerMoved, ws.PlayerMovedPayload{
		ID:        playerID,
		X:         x,
		Y:         y,
		Sprinting: req.Sprinting,
	}))

	slog.Debug("player moved", "player", playerID, "x", x, "y", y)
}

// HandlePowerupTaken records a pickup. Only the first report of an id is
// relayed.
func (h *GameplayHandler) HandlePowerupTaken(client *ws.Client, msg ws.Message) {
	var req ws.PowerupTakenPayload
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.ID == "" {
		client.SendMessage(ws.NewErrorMessage("invalid powerup id"))
		return
	}

	playerID, r := h.lookup(client)
	if r == nil {
		return
	}
	r.Touch(playerID)

	if !r.TakePowerUp(req.ID) {
		slog.Debug("powerup already taken", "powerup", req.ID, "room", r.Code)
		return
	}
	r.BroadcastExcept(playerID, ws.MustMessage(ws.TypePowerupTaken, req))

	slog.Info("powerup taken", "player", playerID, "powerup", req.ID, "room", r.Code)
}

// HandlePing echoes the client's timestamp.
func (h *GameplayHandler) HandlePing(client *ws.Client, msg ws.Message) {
	var req ws.PingPayload
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			client.SendMessage(ws.NewErrorMessage("invalid ping"))
			return
		}
	}

	if playerID, r := h.lookup(client); r != nil {
		r.Touch(playerID)
	}
	client.SendMessage(ws.MustMessage(ws.TypePong, req))
}

func (h *GameplayHandler) lookup(client *ws.Client) (string, *room.Room) {
	playerID := h.router.GetPlayerID(client.ID)
	if playerID == "" {
		return "", nil
	}
	return playerID, h.rm.FindRoomByPlayerID(playerID)
}
