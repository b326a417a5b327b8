package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/ugaemi/ghostlight/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// DefaultCooldowns is the minimum gap between two plays of the same trigger.
var DefaultCooldowns = map[game.Sound]time.Duration{
	game.SoundFootstep: 280 * time.Millisecond,
	game.SoundAlert:    1500 * time.Millisecond,
	game.SoundCaught:   800 * time.Millisecond,
	game.SoundPowerUp:  300 * time.Millisecond,
}

// note is one sine segment of a trigger sound.
type note struct {
	freq     float64
	duration time.Duration
}

var voices = map[game.Sound]struct {
	notes  []note
	volume float64
}{
	game.SoundFootstep: {[]note{{90, 40 * time.Millisecond}}, 0.25},
	game.SoundAlert:    {[]note{{660, 120 * time.Millisecond}, {880, 120 * time.Millisecond}}, 0.5},
	game.SoundCaught:   {[]note{{220, 300 * time.Millisecond}, {165, 300 * time.Millisecond}}, 0.6},
	game.SoundPowerUp:  {[]note{{523, 80 * time.Millisecond}, {784, 80 * time.Millisecond}}, 0.5},
}

// Player plays synthesized trigger sounds with a per-trigger cooldown.
// Before Init succeeds every Play is silent, so the game runs without audio.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool

	cooldowns map[game.Sound]time.Duration
	last      map[game.Sound]time.Time
	now       func() time.Time
}

// NewPlayer creates a player with the default cooldowns.
func NewPlayer() *Player {
	return &Player{
		mixer:     &beep.Mixer{},
		cooldowns: DefaultCooldowns,
		last:      make(map[game.Sound]time.Time),
		now:       time.Now,
	}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences everything and releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Play starts the trigger's sound unless it is still cooling down.
func (p *Player) Play(s game.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.allow(s) || !p.initialized {
		return
	}
	streamer, err := tone(s)
	if err != nil || streamer == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
}

// allow records a play of s and reports whether it is outside the cooldown.
// Caller holds mu.
func (p *Player) allow(s game.Sound) bool {
	now := p.now()
	if last, ok := p.last[s]; ok && now.Sub(last) < p.cooldowns[s] {
		return false
	}
	p.last[s] = now
	return true
}

// tone builds the finite streamer for a trigger.
func tone(s game.Sound) (beep.Streamer, error) {
	v, ok := voices[s]
	if !ok {
		return nil, nil
	}
	parts := make([]beep.Streamer, 0, len(v.notes))
	for _, n := range v.notes {
		sine, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("sine %v Hz: %w", n.freq, err)
		}
		parts = append(parts, beep.Take(sampleRate.N(n.duration), sine))
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   math.Log2(v.volume),
	}, nil
}
