package game

import (
	"encoding/json"
	"fmt"
)

type GhostState int

const (
	GhostWander GhostState = iota
	GhostChase
)

func (s GhostState) String() string {
	switch s {
	case GhostWander:
		return "wander"
	case GhostChase:
		return "chase"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes GhostState as a string.
func (s GhostState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

type PowerUpType int

const (
	PowerUpShield PowerUpType = iota
	PowerUpSpeed
)

func (t PowerUpType) String() string {
	switch t {
	case PowerUpShield:
		return "shield"
	case PowerUpSpeed:
		return "speed"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes PowerUpType as a string.
func (t PowerUpType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON deserializes PowerUpType from its name.
func (t *PowerUpType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "shield":
		*t = PowerUpShield
	case "speed":
		*t = PowerUpSpeed
	default:
		return fmt.Errorf("%w: unknown power-up type %q", ErrInvalidGeometry, s)
	}
	return nil
}

// Sound names a feedback trigger for the audio collaborator.
type Sound string

const (
	SoundFootstep Sound = "footstep"
	SoundAlert    Sound = "alert"
	SoundCaught   Sound = "caught"
	SoundPowerUp  Sound = "powerup"
)
