// Package obs serves a read-only live view of a running simulation over
// websocket. One JSON frame per tick goes to every subscriber; slow clients
// drop frames rather than stalling the tick loop.
package obs

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Garsondee/Moodel-Sim/internal/sim"
)

// Frame is one observer update, marshaled once per tick and fanned out to
// every subscriber.
type Frame struct {
	Type    string               `json:"type"` // always "frame"
	Tick    int                  `json:"tick"`
	Elapsed float64              `json:"elapsed"`
	Moodels []sim.MoodelSnapshot `json:"moodels"`
	Zones   []sim.ZoneStatus     `json:"zones"`
	Events  []sim.Event          `json:"events,omitempty"`
	Won     bool                 `json:"won,omitempty"`
}

const clientBuffer = 64

// Broadcaster fans tick frames out to websocket subscribers. The tick loop
// calls Publish; each subscriber has its own buffered queue and a writer
// goroutine, so a stalled connection never blocks the simulation.
type Broadcaster struct {
	log *log.Logger

	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	mu      sync.Mutex
	clients map[uint64]chan []byte
	last    []byte
	dropped uint64
}

// NewBroadcaster creates an idle broadcaster. The logger may not be nil.
func NewBroadcaster(logger *log.Logger) *Broadcaster {
	return &Broadcaster{
		log:     logger,
		clients: make(map[uint64]chan []byte),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

// Publish marshals the world's post-tick state and queues it for every
// subscriber. Full subscriber queues drop the frame and count it.
func (b *Broadcaster) Publish(w *sim.World, events []sim.Event) {
	frame := Frame{
		Type:    "frame",
		Tick:    w.CurrentTick(),
		Elapsed: w.Elapsed(),
		Moodels: w.Snapshot(),
		Zones:   w.ZoneStatuses(),
		Events:  events,
		Won:     w.LevelComplete(),
	}
	data, err := json.Marshal(frame)
	if err != nil {
		b.log.Printf("obs: marshal frame: %v", err)
		return
	}

	b.mu.Lock()
	b.last = data
	for _, ch := range b.clients {
		select {
		case ch <- data:
		default:
			b.dropped++
		}
	}
	b.mu.Unlock()
}

// DroppedFrames returns how many per-client frames were discarded because a
// subscriber queue was full.
func (b *Broadcaster) DroppedFrames() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// ClientCount returns the number of live subscribers.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Close disconnects every subscriber.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	for id, ch := range b.clients {
		close(ch)
		delete(b.clients, id)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) addClient() (uint64, chan []byte) {
	id := b.nextID.Add(1)
	ch := make(chan []byte, clientBuffer)
	b.mu.Lock()
	b.clients[id] = ch
	b.mu.Unlock()
	return id, ch
}

func (b *Broadcaster) removeClient(id uint64) {
	b.mu.Lock()
	if ch, ok := b.clients[id]; ok {
		close(ch)
		delete(b.clients, id)
	}
	b.mu.Unlock()
}

// WSHandler upgrades the connection and streams frames until the client
// disconnects. Inbound messages are read and discarded; the feed is one-way.
func (b *Broadcaster) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		id, ch := b.addClient()
		defer b.removeClient(id)

		// Reader goroutine: drains control frames and detects close.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case data, ok := <-ch:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"),
						time.Now().Add(time.Second))
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}
		}
	}
}

// StateHandler serves the most recently published frame as plain JSON, for
// tooling that does not want a websocket. 204 until the first tick publishes.
func (b *Broadcaster) StateHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		b.mu.Lock()
		data := b.last
		b.mu.Unlock()
		if data == nil {
			rw.WriteHeader(http.StatusNoContent)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write(data)
	}
}
