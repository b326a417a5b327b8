package handler

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/ghostlight/internal/room"
	"github.com/ugaemi/ghostlight/internal/ws"
)

func TestHandleHello_Matchmakes(t *testing.T) {
	router, rm, _ := setupRouter(t)
	c1, ch1 := newTestClient("c1")
	c2, ch2 := newTestClient("c2")

	w1 := join(t, router, c1, ch1, "Ann", "")
	w2 := join(t, router, c2, ch2, "Bo", "")

	assert.Equal(t, w1.Room, w2.Room, "empty code joins the open room")
	assert.Equal(t, "test", w1.Map)
	assert.NotEqual(t, w1.ID, w2.ID)
	assert.Equal(t, 1, rm.RoomCount())
	require.Len(t, w2.Players, 2)
	assert.Equal(t, "Ann", w2.Players[0].Name)

	resp := readResponse(t, ch1)
	require.Equal(t, ws.TypePlayerJoined, resp.Type)
	var joined ws.PlayerInfo
	require.NoError(t, json.Unmarshal(resp.Data, &joined))
	assert.Equal(t, w2.ID, joined.ID)
	assert.Equal(t, "Bo", joined.Name)
}

func TestHandleHello_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload ws.HelloPayload
		want    string
	}{
		{"missing name", ws.HelloPayload{Name: "  "}, "name is required"},
		{"unknown room", ws.HelloPayload{Name: "Ann", Room: "ZZZZZ"}, room.ErrRoomNotFound.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, _ := setupRouter(t)
			client, ch := newTestClient("c1")

			send(router, client, ws.TypeHello, tt.payload)

			resp := readResponse(t, ch)
			require.Equal(t, ws.TypeError, resp.Type)
			var errMsg ws.ErrorMessage
			require.NoError(t, json.Unmarshal(resp.Data, &errMsg))
			assert.Equal(t, tt.want, errMsg.Message)
		})
	}
}

func TestHandleHello_LongNameCutOnRuneBoundary(t *testing.T) {
	router, _, _ := setupRouter(t)
	client, ch := newTestClient("c1")

	// 23 ASCII bytes then multi-byte runes: a byte cut would split "유".
	w := join(t, router, client, ch, strings.Repeat("a", 23)+"유령의빛", "")

	require.Len(t, w.Players, 1)
	name := w.Players[0].Name
	assert.True(t, utf8.ValidString(name))
	assert.Equal(t, strings.Repeat("a", 23)+"유", name)
	assert.Equal(t, maxNameLength, utf8.RuneCountInString(name))
}

func TestHandleHello_Twice(t *testing.T) {
	router, _, _ := setupRouter(t)
	client, ch := newTestClient("c1")
	join(t, router, client, ch, "Ann", "")

	send(router, client, ws.TypeHello, ws.HelloPayload{Name: "Ann"})

	resp := readResponse(t, ch)
	require.Equal(t, ws.TypeError, resp.Type)
	assert.JSONEq(t, `{"message":"already joined"}`, string(resp.Data))
}

func TestHandleDisconnect_AnnouncesAndRecordsVisit(t *testing.T) {
	router, rm, st := setupRouter(t)
	c1, ch1 := newTestClient("c1")
	c2, ch2 := newTestClient("c2")
	w1 := join(t, router, c1, ch1, "Ann", "")
	w2 := join(t, router, c2, ch2, "Bo", w1.Room)
	readResponse(t, ch1) // playerJoined

	router.HandleDisconnect(c2)

	resp := readResponse(t, ch1)
	require.Equal(t, ws.TypePlayerLeft, resp.Type)
	assert.JSONEq(t, `{"id":"`+w2.ID+`"}`, string(resp.Data))

	visits := st.Visits()
	require.Len(t, visits, 1)
	assert.Equal(t, w2.ID, visits[0].PlayerID)
	assert.Equal(t, "Bo", visits[0].Name)
	assert.Equal(t, w1.Room, visits[0].Room)
	assert.Equal(t, "test", visits[0].Map)
	assert.Equal(t, 1, rm.RoomCount())
	assert.Empty(t, router.GetPlayerID(c2.ID))
}

func TestHandleDisconnect_RemovesEmptyRoom(t *testing.T) {
	router, rm, _ := setupRouter(t)
	client, ch := newTestClient("c1")
	join(t, router, client, ch, "Ann", "")

	router.HandleDisconnect(client)
	assert.Equal(t, 0, rm.RoomCount())

	// Unknown or repeated disconnects are harmless
	router.HandleDisconnect(client)
}

func TestHandleIdle_CleansUp(t *testing.T) {
	router, rm, st := setupRouter(t)
	client, ch := newTestClient("c1")
	w := join(t, router, client, ch, "Ann", "")

	r := rm.GetRoom(w.Room)
	m, ok := r.RemoveMember(w.ID)
	require.True(t, ok)
	router.session.HandleIdle(r, m)

	assert.Empty(t, router.GetPlayerID(client.ID))
	assert.Len(t, st.Visits(), 1)
	assert.Equal(t, 0, rm.RoomCount())
}
