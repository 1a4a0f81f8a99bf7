package collab

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: Implement proper origin checking in production
		return true
	},
}

// Handler accepts shared framing session connections and dispatches their
// messages into the registry.
type Handler struct {
	registry *Registry
}

// NewHandler creates a handler over the given registry.
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// Registry returns the session registry.
func (h *Handler) Registry() *Registry {
	return h.registry
}

// ServeHost handles a host connection. The host's first message must be
// init; the session is created from it.
func (h *Handler) ServeHost(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(conn, RoleHost)
	go client.writePump()
	h.readPump(client)
}

// ServeGuest handles a guest connection to an existing session. An unknown
// session id is rejected before the upgrade; a session torn down between
// lookup and admission closes the connection without admission.
func (h *Handler) ServeGuest(w http.ResponseWriter, r *http.Request, sessionID string) {
	if _, ok := h.registry.Get(sessionID); !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(conn, RoleGuest)
	go client.writePump()

	if _, err := h.registry.Join(sessionID, client); err != nil {
		client.Close()
		return
	}

	h.readPump(client)
}

// readPump pumps inbound messages into the dispatcher until the connection
// closes or a protocol violation ends it.
func (h *Handler) readPump(c *Client) {
	defer func() {
		h.registry.Remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Debug("websocket read error", "role", c.role, "error", err)
			}
			return
		}

		if err := h.handleMessage(c, data); err != nil {
			slog.Warn("closing connection", "role", c.role, "error", err)
			return
		}
	}
}

// handleMessage dispatches one inbound message. A non-nil error closes the
// connection; other participants are never affected.
func (h *Handler) handleMessage(c *Client, data []byte) error {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return protocolErrorf("malformed message: %v", err)
	}

	switch env.Op {
	case OpInit:
		return h.handleInit(c, env.Data)

	case OpReady:
		var d ReadyData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return protocolErrorf("malformed ready: %v", err)
		}
		if c.session == nil {
			return protocolErrorf("ready before session attach")
		}
		return c.session.ready(c, d)

	case OpUpdateState:
		if c.session == nil {
			return protocolErrorf("update_state before session attach")
		}
		if len(env.Data) == 0 {
			return protocolErrorf("update_state without payload")
		}
		return c.session.updateState(c, env.Data)

	case OpDone:
		var d DoneData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return protocolErrorf("malformed done: %v", err)
		}
		if c.role != RoleHost {
			return protocolErrorf("done from guest")
		}
		if c.session == nil {
			return protocolErrorf("done before session attach")
		}
		h.registry.Terminate(c.session, d.Success)
		return nil

	default:
		return protocolErrorf("unknown op %q", env.Op)
	}
}

// handleInit creates the session from the host's first message.
func (h *Handler) handleInit(c *Client, data json.RawMessage) error {
	if c.role != RoleHost {
		return protocolErrorf("init from guest")
	}
	if c.session != nil {
		return protocolErrorf("duplicate init")
	}

	var d InitData
	if err := json.Unmarshal(data, &d); err != nil {
		return protocolErrorf("malformed init: %v", err)
	}
	if d.ArtworkID <= 0 || len(d.State) == 0 {
		return protocolErrorf("init missing artworkId or state")
	}

	_, err := h.registry.Create(c, d.ArtworkID, d.State)
	return err
}
