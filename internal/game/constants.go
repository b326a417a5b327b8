package game

import "time"

// Default map dimensions (pixels), used when a geometry document omits them.
const (
	DefaultMapWidth  = 1920
	DefaultMapHeight = 1080
)

// Entity sizes (pixels, square)
const (
	PlayerSize  = 32.0
	GhostSize   = 32.0
	PowerUpSize = 24.0
)

// Player movement, in pixels per tick
const (
	WalkSpeed   = 2.5
	SprintSpeed = 4.0
	StartLives  = 3
)

// Ghost behaviour
const (
	GhostSpeed          = 1.5 // pixels per tick
	ChaseBonus          = 1.0 // added to GhostSpeed while chasing
	DetectionRadius     = 150.0
	WanderIntervalTicks = 120 // ~2s at 60 Hz
	DefaultGhostCount   = 4
)

// Power-ups
const (
	SpeedBuffDuration   = 6000.0 // milliseconds
	SpeedBuffMultiplier = 1.2
)

// Camera and visibility
const (
	CameraLerp     = 0.1
	DefaultZoom    = 1.5
	LightRadius    = 220.0
	LightInner     = 0.35 // fraction of the outer radius that stays fully lit
	AmbientDark    = 0.85
	ConeHalfAngle  = 0.5 // radians
	ConeLengthMult = 1.6
)

// Timing
const (
	TickRate     = 60
	FrameMs      = 1000.0 / TickRate
	TickInterval = time.Second / TickRate
)

// Spawn
const (
	MinRespawnDistance = DetectionRadius * 2
	MinGhostSpacing    = 120.0
	spawnAttempts      = 100
)

// Tuning groups the values the tick reads, so tests and alternate builds can
// change them without touching package-level state.
type Tuning struct {
	WalkSpeed           float64
	SprintSpeed         float64
	GhostSpeed          float64
	ChaseBonus          float64
	DetectionRadius     float64
	WanderIntervalTicks float64
	CameraLerp          float64
	Zoom                float64
	LightRadius         float64
	Darkness            float64
	FogCone             bool

	// TimeScaled normalizes movement, wander countdown and camera smoothing
	// by elapsed time. When false every value above is per tick, so feel
	// follows the frame rate.
	TimeScaled bool
}

// DefaultTuning returns the per-tick tuning used by the desktop client.
func DefaultTuning() Tuning {
	return Tuning{
		WalkSpeed:           WalkSpeed,
		SprintSpeed:         SprintSpeed,
		GhostSpeed:          GhostSpeed,
		ChaseBonus:          ChaseBonus,
		DetectionRadius:     DetectionRadius,
		WanderIntervalTicks: WanderIntervalTicks,
		CameraLerp:          CameraLerp,
		Zoom:                DefaultZoom,
		LightRadius:         LightRadius,
		Darkness:            AmbientDark,
	}
}
