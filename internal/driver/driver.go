package driver

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ugaemi/ghostlight/internal/game"
	"github.com/ugaemi/ghostlight/internal/netlink"
	"github.com/ugaemi/ghostlight/internal/ws"
)

// pingEvery is the number of ticks between latency probes.
const pingEvery = 2 * game.TickRate

// SoundSink plays feedback triggers.
type SoundSink interface {
	Play(s game.Sound)
}

// Sender delivers messages to the relay server.
type Sender interface {
	Send(msg ws.Message)
}

// Inbox supplies messages received from the relay server.
type Inbox interface {
	Inbound() <-chan netlink.Event
}

// NopSender discards every message. Used for single-player sessions.
type NopSender struct{}

func (NopSender) Send(ws.Message) {}

// NopSound discards every trigger.
type NopSound struct{}

func (NopSound) Play(game.Sound) {}

// Driver owns a World and is the only code that mutates it. Network
// messages are applied between ticks, never during one.
type Driver struct {
	World  *game.World
	Sounds SoundSink
	Net    Sender
	Inbox  Inbox

	selfID string
	rtt    time.Duration
	now    func() time.Time
}

// New creates a driver. Nil sinks are replaced with no-ops; inbox may be nil.
func New(w *game.World, sounds SoundSink, net Sender, inbox Inbox) *Driver {
	if sounds == nil {
		sounds = NopSound{}
	}
	if net == nil {
		net = NopSender{}
	}
	return &Driver{
		World:  w,
		Sounds: sounds,
		Net:    net,
		Inbox:  inbox,
		now:    time.Now,
	}
}

// SelfID is the id the server assigned in its last welcome.
func (d *Driver) SelfID() string {
	return d.selfID
}

// RTT is the last measured round trip to the server.
func (d *Driver) RTT() time.Duration {
	return d.rtt
}

// Step applies queued network messages, runs one tick and dispatches its
// events.
func (d *Driver) Step(in game.Input, dtMs float64) []game.Event {
	d.drain()
	events := d.World.Tick(in, dtMs)
	d.dispatch(events)
	if d.Inbox != nil && d.World.TickCount%pingEvery == 0 {
		d.Net.Send(ws.MustMessage(ws.TypePing, ws.PingPayload{T: d.now().UnixMilli()}))
	}
	return events
}

// Run steps the world at the fixed tick rate until ctx ends, reading input
// from the given function each tick.
func (d *Driver) Run(ctx context.Context, input func() game.Input) {
	ticker := time.NewTicker(game.TickInterval)
	defer ticker.Stop()

	last := d.now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := d.now()
			dt := float64(now.Sub(last)) / float64(time.Millisecond)
			last = now
			d.Step(input(), dt)
		}
	}
}

func (d *Driver) drain() {
	if d.Inbox == nil {
		return
	}
	ch := d.Inbox.Inbound()
	for {
		select {
		case ev := <-ch:
			d.apply(ev)
		default:
			return
		}
	}
}

func (d *Driver) apply(ev netlink.Event) {
	if ev.Disconnected {
		d.World.ResetRemotes()
		d.selfID = ""
		return
	}

	msg := ev.Message
	switch msg.Type {
	case ws.TypeWelcome:
		var p ws.WelcomePayload
		if !decode(msg, &p) {
			return
		}
		d.selfID = p.ID
		d.World.ResetRemotes()
		for _, info := range p.Players {
			if info.ID != p.ID {
				d.World.UpsertRemote(game.RemotePlayer{ID: info.ID, Name: info.Name, X: info.X, Y: info.Y})
			}
		}
		for _, id := range p.Taken {
			d.World.DeactivatePowerUp(id)
		}
		slog.Info("joined room", "room", p.Room, "map", p.Map, "players", len(p.Players))
		// Tell the room where we actually are.
		d.sendPosition()

	case ws.TypePlayerJoined:
		var p ws.PlayerInfo
		if decode(msg, &p) && p.ID != d.selfID {
			d.World.UpsertRemote(game.RemotePlayer{ID: p.ID, Name: p.Name, X: p.X, Y: p.Y})
		}

	case ws.TypePlayerMoved:
		var p ws.PlayerMovedPayload
		if decode(msg, &p) && p.ID != d.selfID {
			d.World.MoveRemote(p.ID, p.X, p.Y, p.Sprinting)
		}

	case ws.TypePlayerLeft:
		var p ws.PlayerLeftPayload
		if decode(msg, &p) {
			d.World.RemoveRemote(p.ID)
		}

	case ws.TypePowerupTaken:
		var p ws.PowerupTakenPayload
		if decode(msg, &p) {
			d.World.DeactivatePowerUp(p.ID)
		}

	case ws.TypePong:
		var p ws.PingPayload
		if decode(msg, &p) && p.T > 0 {
			d.rtt = d.now().Sub(time.UnixMilli(p.T))
		}

	case ws.TypeError:
		var p ws.ErrorMessage
		if decode(msg, &p) {
			slog.Warn("server error", "message", p.Message)
		}

	default:
		slog.Debug("ignoring server message", "type", msg.Type)
	}
}

func (d *Driver) dispatch(events []game.Event) {
	for _, ev := range events {
		if s, ok := ev.Sound(); ok {
			d.Sounds.Play(s)
		}
		switch ev.Kind {
		case game.EventMoved:
			d.Net.Send(ws.MustMessage(ws.TypeMove, ws.MovePayload{X: ev.X, Y: ev.Y, Sprinting: ev.Sprinting}))
		case game.EventCaught:
			// Respawn teleports the player.
			d.sendPosition()
		case game.EventPowerUp:
			d.Net.Send(ws.MustMessage(ws.TypePowerupTaken, ws.PowerupTakenPayload{ID: ev.PowerUpID}))
		case game.EventGameOver:
			slog.Info("game over", "tick", d.World.TickCount)
		}
	}
}

func (d *Driver) sendPosition() {
	p := d.World.Player
	d.Net.Send(ws.MustMessage(ws.TypeMove, ws.MovePayload{X: p.X, Y: p.Y, Sprinting: p.Sprinting}))
}

func decode(msg ws.Message, v any) bool {
	if err := json.Unmarshal(msg.Data, v); err != nil {
		slog.Debug("dropping malformed message", "type", msg.Type, "error", err)
		return false
	}
	return true
}
