package collab

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrNotFound is returned when no live session exists under an id.
var ErrNotFound = errors.New("shared session not found")

// Registry is the process-wide table of live shared framing sessions.
//
// The registry mutex is held only for session creation, lookup and
// deletion; message relay runs under the per-session mutex, so concurrent
// sessions never block each other.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	// now is the session clock. Injected so an idle-session reaper can be
	// added without touching the relay.
	now func() time.Time
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// newSessionID returns an unguessable session token: 128 bits of
// crypto/rand entropy, base64url encoded.
func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Create allocates a session for the given host connection and announces
// the generated session id to the host with a ready message.
func (r *Registry) Create(host *Client, artworkID int64, state json.RawMessage) (*Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:        id,
		artworkID: artworkID,
		createdAt: r.now(),
		state:     state,
		host:      host,
	}
	host.session = s
	host.phase = PhaseAwaitingReady

	r.mu.Lock()
	r.sessions[id] = s
	count := len(r.sessions)
	r.mu.Unlock()

	host.Send(mustEncode(OpReady, ReadyData{ArtworkID: artworkID, SessionID: id}))

	slog.Info("shared session created", "sessionId", id, "artworkId", artworkID, "sessions", count)
	return s, nil
}

// Get looks up a live session by id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Join admits a guest connection into the session with the given id.
// Returns ErrNotFound when no live session exists, including when the
// session terminated between lookup and admission.
func (r *Registry) Join(id string, guest *Client) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	if err := s.join(guest); err != nil {
		return nil, err
	}

	slog.Info("guest joined shared session", "sessionId", id, "guests", s.GuestCount())
	return s, nil
}

// Terminate tears down a session: guests receive done{success}, all
// connections close and the id becomes invalid for further joins.
func (r *Registry) Terminate(s *Session, success bool) {
	if !s.terminate(success) {
		return
	}

	r.mu.Lock()
	delete(r.sessions, s.id)
	count := len(r.sessions)
	r.mu.Unlock()

	slog.Info("shared session ended", "sessionId", s.id, "success", success, "sessions", count)
}

// Remove detaches a closed connection from its session. A guest is removed
// from the presence list; a host disconnecting without done tears the
// whole session down as an unsuccessful end.
func (r *Registry) Remove(c *Client) {
	defer c.Close()

	s := c.session
	if s == nil {
		return
	}

	if c.role == RoleHost {
		r.Terminate(s, false)
		return
	}

	s.removeGuest(c)
	slog.Info("guest left shared session", "sessionId", s.id, "guests", s.GuestCount())
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
