package collab

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 8192
)

// Role distinguishes the session creator from joined participants.
type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

// Phase is the lifecycle state of a connection.
type Phase int

const (
	// PhaseConnecting: channel open, no session messages exchanged yet.
	PhaseConnecting Phase = iota
	// PhaseAwaitingReady: attached to a session, username not yet known.
	PhaseAwaitingReady
	// PhaseActive: username known, full participant in the relay.
	PhaseActive
)

// Client is one participant connection in a shared framing session.
//
// Outbound delivery is decoupled per connection: Send enqueues onto a
// buffered channel drained by the write pump, so a slow guest never stalls
// the relay. The phase and username fields are guarded by the session
// mutex once the client is attached; before attachment only the
// connection's own reader goroutine touches them.
type Client struct {
	conn *websocket.Conn
	role Role
	send chan []byte

	mu     sync.Mutex
	closed bool

	phase    Phase
	username string
	session  *Session // back-reference, lookup only
}

// NewClient creates a client for an upgraded connection.
func NewClient(conn *websocket.Conn, role Role) *Client {
	return &Client{
		conn: conn,
		role: role,
		send: make(chan []byte, 256),
	}
}

// Role returns the client's role.
func (c *Client) Role() Role {
	return c.role
}

// Send queues a message for delivery. Messages to a closed client are
// silently dropped; a client whose buffer is full is closed rather than
// allowed to block the sender.
func (c *Client) Send(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		c.closeLocked()
	}
}

// Close marks the client closed and releases its write pump. Messages
// already queued are still flushed before the connection closes.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Client) closeLocked() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// IsClosed returns true if the client is closed.
func (c *Client) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// SendChan exposes the outbound queue. Used by the write pump and tests.
func (c *Client) SendChan() <-chan []byte {
	return c.send
}

// writePump pumps queued messages to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The client was closed; queued messages are already
				// drained at this point.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
