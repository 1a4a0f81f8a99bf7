package collab

import (
	"encoding/json"
	"fmt"
)

// Op identifies a message type on a shared framing session connection.
type Op string

const (
	// Client -> server, host only, first message after connecting.
	OpInit Op = "init"

	// Bidirectional: the server announces the session id with an empty
	// username; a participant replies with its display name; the server
	// echoes the ready back once the participant is active.
	OpReady Op = "ready"

	// Bidirectional: the current framing configuration. Payload is opaque
	// to the server and relayed verbatim.
	OpUpdateState Op = "update_state"

	// Server -> client: the full ordered presence list, host first.
	OpUpdateUsers Op = "update_users"

	// Bidirectional: the host ends the session; relayed to all guests.
	OpDone Op = "done"
)

// Envelope is the wire format of every session message.
type Envelope struct {
	Op   Op              `json:"op"`
	Data json.RawMessage `json:"data"`
}

// InitData announces what the host is sharing.
type InitData struct {
	ArtworkID int64           `json:"artworkId"`
	State     json.RawMessage `json:"state"`
}

// ReadyData identifies a participant within its session.
type ReadyData struct {
	ArtworkID int64  `json:"artworkId"`
	SessionID string `json:"sessionId"`
	Username  string `json:"username"`
}

// UsersData carries the ordered presence list.
type UsersData struct {
	Usernames []string `json:"usernames"`
}

// DoneData signals the end of a session. Success means the host added the
// framed artwork to their cart.
type DoneData struct {
	Success bool `json:"success"`
}

// encode marshals an envelope with the given payload. A json.RawMessage
// payload is embedded verbatim.
func encode(op Op, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", op, err)
	}
	return json.Marshal(Envelope{Op: op, Data: payload})
}

// mustEncode is encode for payloads that cannot fail to marshal
// (protocol-owned structs and already-validated raw state).
func mustEncode(op Op, data any) []byte {
	msg, err := encode(op, data)
	if err != nil {
		panic(err)
	}
	return msg
}
