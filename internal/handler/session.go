package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ugaemi/ghostlight/internal/room"
	"github.com/ugaemi/ghostlight/internal/store"
	"github.com/ugaemi/ghostlight/internal/ws"
)

const (
	maxNameLength = 24
	storeTimeout  = 5 * time.Second
)

// SessionHandler handles joining and leaving rooms.
type SessionHandler struct {
	rm     *room.Manager
	store  store.Store
	router *Router
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(rm *room.Manager, st store.Store, router *Router) *SessionHandler {
	return &SessionHandler{
		rm:     rm,
		store:  st,
		router: router,
	}
}

// HandleHello joins the client to a room and announces it to the others.
func (h *SessionHandler) HandleHello(client *ws.Client, msg ws.Message) {
	if h.router.GetPlayerID(client.ID) != "" {
		client.SendMessage(ws.NewErrorMessage("already joined"))
		return
	}

	var req ws.HelloPayload
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid hello"))
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		client.SendMessage(ws.NewErrorMessage("name is required"))
		return
	}
	if runes := []rune(name); len(runes) > maxNameLength {
		name = string(runes[:maxNameLength])
	}

	x, y := h.rm.SpawnPoint()
	member := &room.Member{ID: uuid.NewString(), Name: name, X: x, Y: y}
	r, err := h.rm.Join(strings.ToUpper(strings.TrimSpace(req.Room)), member, client)
	if err != nil {
		client.SendMessage(ws.NewErrorMessage(err.Error()))
		return
	}
	h.router.RegisterPlayer(client.ID, member.ID)

	client.SendMessage(ws.MustMessage(ws.TypeWelcome, r.Welcome(member.ID)))
	r.BroadcastExcept(member.ID, ws.MustMessage(ws.TypePlayerJoined, ws.PlayerInfo{
		ID:   member.ID,
		X:    member.X,
		Y:    member.Y,
		Name: member.Name,
	}))

	slog.Info("player joined room", "player", member.ID, "name", name, "room", r.Code)
}

// HandleDisconnect handles client disconnection.
func (h *SessionHandler) HandleDisconnect(client *ws.Client) {
	playerID := h.router.GetPlayerID(client.ID)
	if playerID == "" {
		return
	}
	h.router.UnregisterPlayer(client.ID)

	r := h.rm.FindRoomByPlayerID(playerID)
	if r == nil {
		return
	}
	m, ok := r.RemoveMember(playerID)
	if !ok {
		return
	}
	r.BroadcastMessage(ws.MustMessage(ws.TypePlayerLeft, ws.PlayerLeftPayload{ID: playerID}))
	h.finish(r, m)
}

// HandleIdle cleans up after a player removed by a room's idle sweep. The
// room has already announced the departure.
func (h *SessionHandler) HandleIdle(r *room.Room, m room.Member) {
	h.router.UnregisterPlayerID(m.ID)
	h.finish(r, m)
}

func (h *SessionHandler) finish(r *room.Room, m room.Member) {
	h.recordVisit(r, m)
	h.rm.RemoveIfEmpty(r)
	slog.Info("player left", "player", m.ID, "room", r.Code)
}

func (h *SessionHandler) recordVisit(r *room.Room, m room.Member) {
	if h.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	err := h.store.RecordVisit(ctx, &store.Visit{
		PlayerID: m.ID,
		Name:     m.Name,
		Room:     r.Code,
		Map:      r.MapName,
		JoinedAt: m.JoinedAt,
		LeftAt:   time.Now(),
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Warn("failed to record visit", "player", m.ID, "error", err)
	}
}
