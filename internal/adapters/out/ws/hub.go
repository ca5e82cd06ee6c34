// Package ws implements the Broadcaster port over websockets. Subscribers
// join a per-business room; events published for that business fan out to
// every connection in the room.
package ws

import (
	"encoding/json"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
	"github.com/labstack/gommon/log"
)

const (
	writeWait = 10 * time.Second

	// sendBufferSize bounds the per-connection outbox. A subscriber that
	// cannot drain it in time is disconnected rather than allowed to slow
	// the publishers down.
	sendBufferSize = 64
)

// Envelope is the wire format of every published event.
type Envelope struct {
	Event   string    `json:"event"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}

type client struct {
	conn      *websocket.Conn
	send      chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

// close signals both loops to stop. The send channel itself is never closed,
// so concurrent publishers can never hit a closed channel.
func (c *client) close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

// Hub tracks subscriber connections per business and fans published events
// out to them. Publish never blocks: marshalling happens on the publisher's
// goroutine, delivery on each connection's writer goroutine.
type Hub struct {
	mu    sync.RWMutex
	rooms map[kernel.UUID]map[*client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{rooms: make(map[kernel.UUID]map[*client]struct{})}
}

// Publish implements ports.Broadcaster. Marshal failures are logged and
// dropped; the commands publishing events must not fail on a realtime
// surface problem.
func (h *Hub) Publish(businessID kernel.UUID, event string, payload any) {
	message, err := json.Marshal(Envelope{
		Event:   event,
		At:      time.Now().UTC(),
		Payload: payload,
	})
	if err != nil {
		log.Warnf("dropping %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[businessID] {
		select {
		case c.send <- message:
		case <-c.closed:
		default:
			// Full outbox means a consumer that stopped draining.
			c.close()
		}
	}
}

// Subscribe registers an accepted websocket connection into the business's
// room and services it until the connection drops. It blocks, so the HTTP
// handler calls it as the last step of the upgrade.
func (h *Hub) Subscribe(businessID kernel.UUID, conn *websocket.Conn) {
	c := &client{
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		closed: make(chan struct{}),
	}

	h.mu.Lock()
	room, ok := h.rooms[businessID]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[businessID] = room
	}
	room[c] = struct{}{}
	h.mu.Unlock()

	go c.writeLoop()
	c.readLoop()
	c.close()

	h.mu.Lock()
	h.remove(businessID, c)
	h.mu.Unlock()
}

// SubscriberCount reports the size of a business's room.
func (h *Hub) SubscriberCount(businessID kernel.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[businessID])
}

func (h *Hub) remove(businessID kernel.UUID, c *client) {
	room, ok := h.rooms[businessID]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, businessID)
	}
}

func (c *client) writeLoop() {
	defer c.conn.Close()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.close()
				return
			}
		case <-c.closed:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		}
	}
}

// readLoop discards inbound frames. Subscribers are listeners only; the
// loop exists to notice the close handshake and network drops.
func (c *client) readLoop() {
	defer c.conn.Close()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
