package ws

import "encoding/json"

// Message represents a WebSocket message with type-based routing.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Message types - Client to server
const (
	TypeHello        = "hello"
	TypeMove         = "move"
	TypePowerupTaken = "powerupTaken"
	TypePing         = "ping"
)

// Message types - Server to client
const (
	TypeWelcome      = "welcome"
	TypePlayerJoined = "playerJoined"
	TypePlayerMoved  = "playerMoved"
	TypePlayerLeft   = "playerLeft"
	TypePong         = "pong"
	TypeError        = "error"
)

// HelloPayload introduces a client. Room is optional; empty means matchmake.
type HelloPayload struct {
	Name string `json:"name"`
	Room string `json:"room,omitempty"`
}

// MovePayload is the sender's new position.
type MovePayload struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Sprinting bool    `json:"sprinting"`
}

// PowerupTakenPayload names a collected power-up by its map-stable id.
type PowerupTakenPayload struct {
	ID string `json:"id"`
}

// PingPayload carries the client's send time, echoed back in pong.
type PingPayload struct {
	T int64 `json:"t"`
}

// PlayerInfo describes one player in welcome and playerJoined.
type PlayerInfo struct {
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Name string  `json:"name"`
}

type WelcomePayload struct {
	ID      string       `json:"id"`
	Room    string       `json:"room"`
	Map     string       `json:"map"`
	Players []PlayerInfo `json:"players"`
	Taken   []string     `json:"taken"`
}

type PlayerMovedPayload struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Sprinting bool    `json:"sprinting"`
}

type PlayerLeftPayload struct {
	ID string `json:"id"`
}

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Message string `json:"message"`
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	data, _ := json.Marshal(ErrorMessage{Message: msg})
	return Message{Type: TypeError, Data: data}
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data}, nil
}

// MustMessage is NewMessage for payloads that always marshal (the structs
// in this file).
func MustMessage(msgType string, payload any) Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Decode parses a raw frame into a Message.
func Decode(data []byte) (Message, error) {
	var msg Message
	err := json.Unmarshal(data, &msg)
	return msg, err
}
