package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ugaemi/ghostlight/internal/app"
	"github.com/ugaemi/ghostlight/internal/audio"
	"github.com/ugaemi/ghostlight/internal/config"
	"github.com/ugaemi/ghostlight/internal/driver"
	"github.com/ugaemi/ghostlight/internal/game"
	"github.com/ugaemi/ghostlight/internal/maps"
	"github.com/ugaemi/ghostlight/internal/netlink"
	"github.com/ugaemi/ghostlight/internal/ws"
)

func main() {
	cfg := config.Load()
	config.SetupLogger(cfg, "ghostlight")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, closeSource := maps.Open(ctx, cfg.MapSource, maps.PostgresOpener(cfg.DatabaseURL))
	defer closeSource()
	pending := maps.LoadAsync(ctx, src, cfg.MapName)

	var sounds driver.SoundSink = driver.NopSound{}
	if cfg.Audio {
		player := audio.NewPlayer()
		if err := player.Init(); err != nil {
			// Non-fatal, the game runs silently
			slog.Warn("audio unavailable", "error", err)
		} else {
			defer player.Close()
			sounds = player
		}
	}

	var link *netlink.Link
	if cfg.ServerURL != "" {
		link = netlink.New(cfg.ServerURL, ws.HelloPayload{Name: cfg.PlayerName}, cfg.ReconnectDelay)
		go link.Run(ctx)
	}

	build := func(geo *game.Geometry) *driver.Driver {
		w := game.NewWorld(geo, worldOptions(cfg)...)
		w.Player.Name = cfg.PlayerName
		if link == nil {
			return driver.New(w, sounds, driver.NopSender{}, nil)
		}
		return driver.New(w, sounds, link, link)
	}

	ebiten.SetWindowTitle("ghostlight")
	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetTPS(game.TickRate)
	if err := ebiten.RunGame(app.New(cfg.ScreenWidth, cfg.ScreenHeight, pending, build)); err != nil {
		slog.Error("game failed", "error", err)
		os.Exit(1)
	}
}

func worldOptions(cfg *config.Config) []game.Option {
	t := game.DefaultTuning()
	t.Zoom = cfg.Zoom
	t.TimeScaled = cfg.TimeScaled
	t.FogCone = cfg.FogCone

	opts := []game.Option{
		game.WithTuning(t),
		game.WithViewport(float64(cfg.ScreenWidth), float64(cfg.ScreenHeight)),
	}
	if cfg.Seed != 0 {
		opts = append(opts, game.WithSeed(cfg.Seed))
	}
	return opts
}
