// Package stream pushes simulation snapshots to websocket subscribers. The
// stream is observe-only: clients receive state, they never steer the sim.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/aldenmott/stagfall/internal/sim"
)

const writeWait = 5 * time.Second

// helloMessage is the first frame on every new connection: the static world,
// which never changes after generation.
type helloMessage struct {
	Type    string               `json:"type"`
	Objects []sim.ObjectSnapshot `json:"objects"`
}

// stateMessage wraps one tick snapshot.
type stateMessage struct {
	Type     string       `json:"type"`
	Snapshot sim.Snapshot `json:"snapshot"`
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Broadcaster fans simulation snapshots out to connected clients. Slow or
// broken clients are dropped, never waited on past the write deadline.
type Broadcaster struct {
	mu      sync.Mutex
	subs    map[*subscriber]struct{}
	objects []sim.ObjectSnapshot

	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewBroadcaster creates a broadcaster that greets each client with the
// given static objects.
func NewBroadcaster(objects []sim.ObjectSnapshot, log zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		subs:    map[*subscriber]struct{}{},
		objects: objects,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Handler returns the websocket endpoint.
func (b *Broadcaster) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(w, r, nil)
		if err != nil {
			b.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
			return
		}

		sub := &subscriber{conn: conn}
		hello, err := json.Marshal(helloMessage{Type: "hello", Objects: b.objects})
		if err != nil {
			conn.Close()
			return
		}
		if err := sub.write(hello); err != nil {
			conn.Close()
			return
		}

		b.mu.Lock()
		b.subs[sub] = struct{}{}
		n := len(b.subs)
		b.mu.Unlock()
		b.log.Info().Str("remote", r.RemoteAddr).Int("subscribers", n).Msg("client connected")

		// Drain (and ignore) client frames; a read error means the client is
		// gone.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				b.drop(sub)
				b.log.Info().Str("remote", r.RemoteAddr).Msg("client disconnected")
				return
			}
		}
	})
}

// Broadcast sends one snapshot to every subscriber. The payload is marshaled
// once; failing subscribers are dropped.
func (b *Broadcaster) Broadcast(snap sim.Snapshot) {
	data, err := json.Marshal(stateMessage{Type: "state", Snapshot: snap})
	if err != nil {
		b.log.Error().Err(err).Msg("snapshot marshal failed")
		return
	}

	b.mu.Lock()
	targets := make([]*subscriber, 0, len(b.subs))
	for sub := range b.subs {
		targets = append(targets, sub)
	}
	b.mu.Unlock()

	for _, sub := range targets {
		if err := sub.write(data); err != nil {
			b.drop(sub)
		}
	}
}

// SubscriberCount returns the number of connected clients.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close disconnects every subscriber.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = map[*subscriber]struct{}{}
	b.mu.Unlock()
	for sub := range subs {
		sub.conn.Close()
	}
}

func (b *Broadcaster) drop(sub *subscriber) {
	b.mu.Lock()
	_, ok := b.subs[sub]
	delete(b.subs, sub)
	b.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}
