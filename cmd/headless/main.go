// Command headless runs the simulation without a window: random scripted
// input, optional relay link, and a summary log line at the end.
package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ugaemi/ghostlight/internal/config"
	"github.com/ugaemi/ghostlight/internal/driver"
	"github.com/ugaemi/ghostlight/internal/game"
	"github.com/ugaemi/ghostlight/internal/maps"
	"github.com/ugaemi/ghostlight/internal/netlink"
	"github.com/ugaemi/ghostlight/internal/ws"
)

// countingSink tallies sound triggers instead of playing them.
type countingSink map[game.Sound]int

func (c countingSink) Play(s game.Sound) { c[s]++ }

func main() {
	duration := flag.Duration("duration", 30*time.Second, "how long to run")
	hold := flag.Int("hold", 45, "ticks to hold each random input")
	flag.Parse()
	if *hold < 1 {
		*hold = 1
	}

	cfg := config.Load()
	config.SetupLogger(cfg, "headless")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *duration)
	defer cancel()

	src, closeSource := maps.Open(ctx, cfg.MapSource, maps.PostgresOpener(cfg.DatabaseURL))
	defer closeSource()
	geo := maps.Load(ctx, src, cfg.MapName)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	t := game.DefaultTuning()
	t.TimeScaled = cfg.TimeScaled
	w := game.NewWorld(geo, game.WithSeed(seed), game.WithTuning(t))
	w.Player.Name = cfg.PlayerName

	sounds := countingSink{}
	var d *driver.Driver
	if cfg.ServerURL != "" {
		link := netlink.New(cfg.ServerURL, ws.HelloPayload{Name: cfg.PlayerName}, cfg.ReconnectDelay)
		go link.Run(ctx)
		d = driver.New(w, sounds, link, link)
	} else {
		d = driver.New(w, sounds, driver.NopSender{}, nil)
	}

	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- scripted input
	var in game.Input
	input := func() game.Input {
		if w.TickCount%*hold == 0 {
			in = game.Input{
				Up:     rng.Intn(3) == 0,
				Down:   rng.Intn(3) == 0,
				Left:   rng.Intn(3) == 0,
				Right:  rng.Intn(3) == 0,
				Sprint: rng.Intn(4) == 0,
			}
		}
		return in
	}

	slog.Info("headless run starting", "map", geo.Name, "seed", seed, "duration", *duration)
	d.Run(ctx, input)

	slog.Info("headless run finished",
		"ticks", w.TickCount,
		"lives", w.Player.Lives,
		"caught", sounds[game.SoundCaught],
		"alerts", sounds[game.SoundAlert],
		"powerups", sounds[game.SoundPowerUp],
		"remotes", len(w.Remotes()),
	)
}
