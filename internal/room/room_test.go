package room

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/ghostlight/internal/game"
	"github.com/ugaemi/ghostlight/internal/ws"
)

// mockClient creates a ws.Client with a buffered Send channel for testing.
func mockClient(id string) *ws.Client {
	return &ws.Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}
}

// drainMessages reads all pending messages from a client's send channel.
func drainMessages(client *ws.Client) []ws.Message {
	var msgs []ws.Message
	for {
		select {
		case data := <-client.Send:
			var msg ws.Message
			if err := json.Unmarshal(data, &msg); err == nil {
				msgs = append(msgs, msg)
			}
		default:
			return msgs
		}
	}
}

func testGeometry() *game.Geometry {
	return game.EmptyGeometry("test")
}

func TestAddMember_FullRoom(t *testing.T) {
	r := NewRoom("TEST", testGeometry())
	for i := range MaxPlayers {
		id := fmt.Sprintf("p%d", i)
		require.True(t, r.AddMember(&Member{ID: id}, mockClient(id)))
	}
	assert.True(t, r.IsFull())
	assert.False(t, r.AddMember(&Member{ID: "late"}, mockClient("late")))
	assert.Equal(t, MaxPlayers, r.MemberCount())
}

func TestMove_ClampsToMap(t *testing.T) {
	r := NewRoom("TEST", testGeometry())
	r.AddMember(&Member{ID: "p1"}, mockClient("p1"))

	tests := []struct {
		name   string
		x, y   float64
		wx, wy float64
	}{
		{"inside", 100, 200, 100, 200},
		{"negative", -50, -10, 0, 0},
		{"past edge", 5000, 5000, game.DefaultMapWidth - game.PlayerSize, game.DefaultMapHeight - game.PlayerSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := r.Move("p1", tt.x, tt.y, true)
			require.True(t, ok)
			assert.Equal(t, tt.wx, x)
			assert.Equal(t, tt.wy, y)
		})
	}

	_, _, ok := r.Move("ghost", 1, 1, false)
	assert.False(t, ok)
}

func TestTakePowerUp_FirstTakerWins(t *testing.T) {
	r := NewRoom("TEST", testGeometry())
	assert.True(t, r.TakePowerUp("pu-1"))
	assert.False(t, r.TakePowerUp("pu-1"))
	assert.True(t, r.TakePowerUp("pu-0"))
	assert.Equal(t, []string{"pu-0", "pu-1"}, r.Taken())
}

func TestWelcome_ListsPlayersAndTaken(t *testing.T) {
	r := NewRoom("ABCDE", testGeometry())
	base := time.Unix(1000, 0)
	r.now = func() time.Time { return base }
	r.AddMember(&Member{ID: "p1", Name: "Ann", X: 10, Y: 20}, mockClient("p1"))
	r.now = func() time.Time { return base.Add(time.Second) }
	r.AddMember(&Member{ID: "p2", Name: "Bo", X: 30, Y: 40}, mockClient("p2"))
	r.TakePowerUp("pu-0")

	w := r.Welcome("p2")
	assert.Equal(t, "p2", w.ID)
	assert.Equal(t, "ABCDE", w.Room)
	assert.Equal(t, "test", w.Map)
	assert.Equal(t, []string{"pu-0"}, w.Taken)
	require.Len(t, w.Players, 2)
	assert.Equal(t, ws.PlayerInfo{ID: "p1", X: 10, Y: 20, Name: "Ann"}, w.Players[0])
	assert.Equal(t, "p2", w.Players[1].ID)
}

func TestBroadcastExcept_SkipsSender(t *testing.T) {
	r := NewRoom("TEST", testGeometry())
	c1, c2 := mockClient("p1"), mockClient("p2")
	r.AddMember(&Member{ID: "p1"}, c1)
	r.AddMember(&Member{ID: "p2"}, c2)

	r.BroadcastExcept("p1", ws.MustMessage(ws.TypePlayerLeft, ws.PlayerLeftPayload{ID: "x"}))

	assert.Empty(t, drainMessages(c1))
	msgs := drainMessages(c2)
	require.Len(t, msgs, 1)
	assert.Equal(t, ws.TypePlayerLeft, msgs[0].Type)
}

func TestRemoveMember(t *testing.T) {
	r := NewRoom("TEST", testGeometry())
	r.AddMember(&Member{ID: "p1", Name: "Ann"}, mockClient("p1"))

	m, ok := r.RemoveMember("p1")
	require.True(t, ok)
	assert.Equal(t, "Ann", m.Name)
	assert.True(t, r.IsEmpty())

	_, ok = r.RemoveMember("p1")
	assert.False(t, ok)
}

func TestSweep_RemovesIdlePlayers(t *testing.T) {
	r := NewRoom("TEST", testGeometry())
	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }

	r.AddMember(&Member{ID: "quiet"}, mockClient("quiet"))
	r.AddMember(&Member{ID: "busy"}, mockClient("busy"))

	now = now.Add(20 * time.Second)
	r.Touch("busy")
	now = now.Add(15 * time.Second)

	idle := r.sweep(IdleTimeout)
	require.Len(t, idle, 1)
	assert.Equal(t, "quiet", idle[0].ID)
	assert.False(t, r.HasMember("quiet"))
	assert.True(t, r.HasMember("busy"))
}

func TestSweepLoop_AnnouncesAndReports(t *testing.T) {
	r := NewRoom("TEST", testGeometry())
	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }
	watcher := mockClient("watcher")
	r.AddMember(&Member{ID: "quiet"}, mockClient("quiet"))
	r.now = func() time.Time { return now.Add(time.Hour) }
	r.AddMember(&Member{ID: "watcher"}, watcher)

	gone := make(chan Member, 1)
	r.StartSweep(10*time.Millisecond, IdleTimeout, func(_ *Room, m Member) { gone <- m })
	defer r.Stop()

	select {
	case m := <-gone:
		assert.Equal(t, "quiet", m.ID)
	case <-time.After(time.Second):
		t.Fatal("idle player not swept")
	}

	msgs := drainMessages(watcher)
	require.NotEmpty(t, msgs)
	assert.Equal(t, ws.TypePlayerLeft, msgs[0].Type)
}

func TestStop_Idempotent(t *testing.T) {
	r := NewRoom("TEST", testGeometry())
	r.StartSweep(time.Hour, IdleTimeout, nil)
	r.Stop()
	r.Stop()
}
