package game

// SpeedBuff is the transient speed modifier granted by a speed power-up.
type SpeedBuff struct {
	RemainingMs float64
	Multiplier  float64
}

// Apply starts (or restarts) the buff.
func (b *SpeedBuff) Apply(durationMs, multiplier float64) {
	b.RemainingMs = durationMs
	b.Multiplier = multiplier
}

// Tick counts the buff down and reverts it to neutral once expired.
func (b *SpeedBuff) Tick(dtMs float64) {
	if b.RemainingMs <= 0 {
		b.reset()
		return
	}
	b.RemainingMs -= dtMs
	if b.RemainingMs <= 0 {
		b.reset()
	}
}

// Factor returns the speed multiplier currently in effect (1 when inactive).
func (b *SpeedBuff) Factor() float64 {
	if b.RemainingMs <= 0 || b.Multiplier == 0 {
		return 1
	}
	return b.Multiplier
}

// Active reports whether the buff is still running.
func (b *SpeedBuff) Active() bool {
	return b.RemainingMs > 0
}

func (b *SpeedBuff) reset() {
	b.RemainingMs = 0
	b.Multiplier = 1
}
