package game

type EventKind int

const (
	// EventFootstep fires on every tick the player tries to move.
	EventFootstep EventKind = iota
	// EventMoved carries the position to broadcast after a movement tick.
	EventMoved
	EventChaseAlert
	EventCaught
	// EventGameOver fires once, on the tick lives reach zero.
	EventGameOver
	EventPowerUp
)

func (k EventKind) String() string {
	switch k {
	case EventFootstep:
		return "footstep"
	case EventMoved:
		return "moved"
	case EventChaseAlert:
		return "chase_alert"
	case EventCaught:
		return "caught"
	case EventGameOver:
		return "game_over"
	case EventPowerUp:
		return "powerup"
	default:
		return "unknown"
	}
}

// Event is something a tick produced for the sound and network collaborators.
type Event struct {
	Kind      EventKind
	X, Y      float64
	Sprinting bool
	Ghost     int // index into World.Ghosts for EventChaseAlert and EventCaught
	PowerUpID string
	PowerUp   PowerUpType
}

// Sound returns the feedback trigger for the event, if it has one.
func (e Event) Sound() (Sound, bool) {
	switch e.Kind {
	case EventFootstep:
		return SoundFootstep, true
	case EventChaseAlert:
		return SoundAlert, true
	case EventCaught:
		return SoundCaught, true
	case EventPowerUp:
		return SoundPowerUp, true
	default:
		return "", false
	}
}
