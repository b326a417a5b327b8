package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/ghostlight/internal/game"
	"github.com/ugaemi/ghostlight/internal/room"
	"github.com/ugaemi/ghostlight/internal/store"
	"github.com/ugaemi/ghostlight/internal/ws"
)

type sentMessage struct {
	Type string
	Data json.RawMessage
}

// newTestClient creates a test client that captures sent messages.
func newTestClient(id string) (*ws.Client, chan sentMessage) {
	ch := make(chan sentMessage, 32)
	client := &ws.Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}

	// Read sent messages in background
	go func() {
		for data := range client.Send {
			var msg sentMessage
			json.Unmarshal(data, &msg)
			ch <- msg
		}
	}()

	return client, ch
}

func readResponse(t *testing.T, ch chan sentMessage) sentMessage {
	t.Helper()
	return readResponseWithTimeout(t, ch, time.Second)
}

func readResponseWithTimeout(t *testing.T, ch chan sentMessage, timeout time.Duration) sentMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatal("timed out waiting for response")
		return sentMessage{}
	}
}

func assertNoResponse(t *testing.T, ch chan sentMessage) {
	t.Helper()
	select {
	case msg := <-ch:
		t.Fatalf("unexpected message %q", msg.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func send(router *Router, client *ws.Client, msgType string, payload any) {
	raw, _ := json.Marshal(ws.MustMessage(msgType, payload))
	router.HandleMessage(&ws.ClientMessage{Client: client, Data: raw})
}

func setupRouter(t *testing.T) (*Router, *room.Manager, *store.MemoryStore) {
	t.Helper()
	rm := room.NewManager(game.EmptyGeometry("test"))
	t.Cleanup(rm.Shutdown)
	st := store.NewMemoryStore()
	return NewRouter(rm, st), rm, st
}

// join sends hello and returns the assigned player id.
func join(t *testing.T, router *Router, client *ws.Client, ch chan sentMessage, name, code string) ws.WelcomePayload {
	t.Helper()
	send(router, client, ws.TypeHello, ws.HelloPayload{Name: name, Room: code})
	resp := readResponse(t, ch)
	require.Equal(t, ws.TypeWelcome, resp.Type)
	var w ws.WelcomePayload
	require.NoError(t, json.Unmarshal(resp.Data, &w))
	return w
}

func setupGameplayTest(t *testing.T) (*Router, *room.Room, [2]*ws.Client, [2]chan sentMessage, [2]string) {
	t.Helper()
	router, rm, _ := setupRouter(t)

	c1, ch1 := newTestClient("c1")
	c2, ch2 := newTestClient("c2")
	w1 := join(t, router, c1, ch1, "Ann", "")
	w2 := join(t, router, c2, ch2, "Bo", w1.Room)

	// Ann sees Bo arrive
	resp := readResponse(t, ch1)
	require.Equal(t, ws.TypePlayerJoined, resp.Type)

	return router, rm.GetRoom(w1.Room), [2]*ws.Client{c1, c2}, [2]chan sentMessage{ch1, ch2}, [2]string{w1.ID, w2.ID}
}

func TestHandleMove_BroadcastsToOthers(t *testing.T) {
	router, _, clients, chans, ids := setupGameplayTest(t)

	send(router, clients[0], ws.TypeMove, ws.MovePayload{X: 300, Y: 400, Sprinting: true})

	resp := readResponse(t, chans[1])
	require.Equal(t, ws.TypePlayerMoved, resp.Type)
	var moved ws.PlayerMovedPayload
	require.NoError(t, json.Unmarshal(resp.Data, &moved))
	assert.Equal(t, ws.PlayerMovedPayload{ID: ids[0], X: 300, Y: 400, Sprinting: true}, moved)

	assertNoResponse(t, chans[0])
}

func TestHandleMove_OutOfBoundsClamped(t *testing.T) {
	router, r, clients, chans, ids := setupGameplayTest(t)

	send(router, clients[0], ws.TypeMove, ws.MovePayload{X: -100, Y: 99999})

	resp := readResponse(t, chans[1])
	require.Equal(t, ws.TypePlayerMoved, resp.Type)
	var moved ws.PlayerMovedPayload
	require.NoError(t, json.Unmarshal(resp.Data, &moved))
	assert.Equal(t, 0.0, moved.X)
	assert.Equal(t, game.DefaultMapHeight-game.PlayerSize, moved.Y)

	for _, m := range r.Members() {
		if m.ID == ids[0] {
			assert.Equal(t, moved.Y, m.Y)
		}
	}
}

func TestHandleMove_InvalidData(t *testing.T) {
	router, _, clients, chans, _ := setupGameplayTest(t)

	raw := []byte(`{"type":"move","data":"nope"}`)
	router.HandleMessage(&ws.ClientMessage{Client: clients[0], Data: raw})

	resp := readResponse(t, chans[0])
	assert.Equal(t, ws.TypeError, resp.Type)
	assertNoResponse(t, chans[1])
}

func TestHandlePowerupTaken_FirstTakerOnly(t *testing.T) {
	router, r, clients, chans, _ := setupGameplayTest(t)

	send(router, clients[0], ws.TypePowerupTaken, ws.PowerupTakenPayload{ID: "pu-1"})

	resp := readResponse(t, chans[1])
	require.Equal(t, ws.TypePowerupTaken, resp.Type)
	assert.JSONEq(t, `{"id":"pu-1"}`, string(resp.Data))

	// Bo reports the same pickup; nobody hears about it again
	send(router, clients[1], ws.TypePowerupTaken, ws.PowerupTakenPayload{ID: "pu-1"})
	assertNoResponse(t, chans[0])
	assert.Equal(t, []string{"pu-1"}, r.Taken())
}

func TestHandlePowerupTaken_LateJoinerSeesTaken(t *testing.T) {
	router, r, clients, _, _ := setupGameplayTest(t)
	send(router, clients[0], ws.TypePowerupTaken, ws.PowerupTakenPayload{ID: "pu-0"})

	c3, ch3 := newTestClient("c3")
	w := join(t, router, c3, ch3, "Cy", r.Code)
	assert.Equal(t, []string{"pu-0"}, w.Taken)
	assert.Len(t, w.Players, 3)
}

func TestHandlePing_EchoesTime(t *testing.T) {
	router, _, clients, chans, _ := setupGameplayTest(t)

	send(router, clients[0], ws.TypePing, ws.PingPayload{T: 12345})

	resp := readResponse(t, chans[0])
	require.Equal(t, ws.TypePong, resp.Type)
	assert.JSONEq(t, `{"t":12345}`, string(resp.Data))
}

func TestHandleMessage_UnknownTypeIgnored(t *testing.T) {
	router, _, clients, chans, _ := setupGameplayTest(t)

	send(router, clients[0], "dance", map[string]int{"n": 1})
	assertNoResponse(t, chans[0])
	assertNoResponse(t, chans[1])
}

func TestHandleMessage_MoveBeforeHello(t *testing.T) {
	router, _, _ := setupRouter(t)
	client, ch := newTestClient("c1")

	send(router, client, ws.TypeMove, ws.MovePayload{X: 1, Y: 1})

	resp := readResponse(t, ch)
	assert.Equal(t, ws.TypeError, resp.Type)
}
