package stream

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldenmott/stagfall/internal/sim"
)

func dialTest(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]json.RawMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestBroadcasterSendsHelloWithObjects(t *testing.T) {
	objects := []sim.ObjectSnapshot{
		{Kind: "tree", Pos: sim.Vec3{X: 5}, Radius: 0.8},
		{Kind: "stone", Pos: sim.Vec3{Z: -3}, Radius: 1.2},
	}
	b := NewBroadcaster(objects, zerolog.Nop())
	srv := httptest.NewServer(b.Handler())
	defer srv.Close()
	defer b.Close()

	conn := dialTest(t, srv)
	msg := readMessage(t, conn)

	var typ string
	require.NoError(t, json.Unmarshal(msg["type"], &typ))
	assert.Equal(t, "hello", typ)

	var got []sim.ObjectSnapshot
	require.NoError(t, json.Unmarshal(msg["objects"], &got))
	assert.Equal(t, objects, got)
}

func TestBroadcasterFansOutSnapshots(t *testing.T) {
	b := NewBroadcaster(nil, zerolog.Nop())
	srv := httptest.NewServer(b.Handler())
	defer srv.Close()
	defer b.Close()

	c1 := dialTest(t, srv)
	c2 := dialTest(t, srv)
	readMessage(t, c1) // hello
	readMessage(t, c2)

	require.Eventually(t, func() bool { return b.SubscriberCount() == 2 },
		time.Second, 10*time.Millisecond)

	snap := sim.Snapshot{Tick: 42, Time: 0.7,
		Enemies: []sim.EnemySnapshot{{Label: "E0", Type: "grunt", State: "patrolling"}}}
	b.Broadcast(snap)

	for _, conn := range []*websocket.Conn{c1, c2} {
		msg := readMessage(t, conn)
		var got sim.Snapshot
		require.NoError(t, json.Unmarshal(msg["snapshot"], &got))
		assert.Equal(t, 42, got.Tick)
		require.Len(t, got.Enemies, 1)
		assert.Equal(t, "E0", got.Enemies[0].Label)
	}
}

func TestBroadcasterDropsClosedClients(t *testing.T) {
	b := NewBroadcaster(nil, zerolog.Nop())
	srv := httptest.NewServer(b.Handler())
	defer srv.Close()
	defer b.Close()

	conn := dialTest(t, srv)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 },
		time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return b.SubscriberCount() == 0 },
		time.Second, 10*time.Millisecond)
}

func TestBroadcastWithNoSubscribersIsSafe(t *testing.T) {
	b := NewBroadcaster(nil, zerolog.Nop())
	b.Broadcast(sim.Snapshot{Tick: 1})
	assert.Zero(t, b.SubscriberCount())
}
