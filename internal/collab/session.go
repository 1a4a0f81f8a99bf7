package collab

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrProtocol marks a protocol violation; the offending connection is
// closed and nothing else is affected.
var ErrProtocol = errors.New("protocol violation")

func protocolErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrProtocol}, args...)...)
}

// Session is the authoritative state of one shared framing configuration:
// the artwork being framed, the latest configuration value, the host
// connection and the joined guests in join order.
//
// All membership changes and fan-out happen under the session mutex, so
// every participant observes the session's events in the same order.
type Session struct {
	id        string
	artworkID int64
	createdAt time.Time

	mu         sync.Mutex
	state      json.RawMessage
	host       *Client
	guests     []*Client
	terminated bool
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// ArtworkID returns the artwork this session is framing.
func (s *Session) ArtworkID() int64 {
	return s.artworkID
}

// GuestCount returns the number of currently joined guests.
func (s *Session) GuestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.guests)
}

// Usernames returns the current presence list, host first, guests in join
// order. Participants that have not announced a username yet are
// represented by an empty string.
func (s *Session) Usernames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usernamesLocked()
}

func (s *Session) usernamesLocked() []string {
	names := make([]string, 0, 1+len(s.guests))
	names = append(names, s.host.username)
	for _, g := range s.guests {
		names = append(names, g.username)
	}
	return names
}

// join admits a guest: appends it to the guest list, sends it the session
// announcement and a directed catch-up of the current state, then
// broadcasts the new presence list. The catch-up is queued before the
// presence broadcast, so a late joiner always sees the state first.
func (s *Session) join(c *Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminated {
		return ErrNotFound
	}

	s.guests = append(s.guests, c)
	c.session = s
	c.phase = PhaseAwaitingReady

	c.Send(mustEncode(OpReady, ReadyData{ArtworkID: s.artworkID, SessionID: s.id}))
	c.Send(mustEncode(OpUpdateState, s.state))
	s.broadcastUsersLocked()
	return nil
}

// ready activates a participant: validates the announced ids against the
// bound session, records the username, echoes the ready back and
// broadcasts the updated presence list.
func (s *Session) ready(c *Client, d ReadyData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminated {
		return ErrNotFound
	}
	if c.phase != PhaseAwaitingReady {
		return protocolErrorf("unexpected ready")
	}
	if d.SessionID != s.id || d.ArtworkID != s.artworkID {
		return protocolErrorf("ready for wrong session")
	}
	if d.Username == "" {
		return protocolErrorf("empty username")
	}

	c.username = d.Username
	c.phase = PhaseActive

	c.Send(mustEncode(OpReady, d))
	s.broadcastUsersLocked()
	return nil
}

// updateState replaces the session state and relays the payload verbatim
// to every other active participant. The sender's own UI already reflects
// its local edit, so the sender is excluded.
func (s *Session) updateState(c *Client, raw json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminated {
		return ErrNotFound
	}
	if c.phase != PhaseActive {
		return protocolErrorf("update_state before ready")
	}

	s.state = raw
	data := mustEncode(OpUpdateState, raw)
	for _, p := range s.participantsLocked() {
		if p != c && p.phase == PhaseActive {
			p.Send(data)
		}
	}
	return nil
}

// removeGuest detaches a disconnected guest and recomputes presence.
// Removing a guest from an already-terminated session is a no-op.
func (s *Session) removeGuest(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminated {
		return
	}

	for i, g := range s.guests {
		if g == c {
			s.guests = append(s.guests[:i], s.guests[i+1:]...)
			s.broadcastUsersLocked()
			return
		}
	}
}

// terminate ends the session: every guest is sent done{success}, then all
// connections are closed. Returns false if the session was already
// terminated (teardown happens exactly once).
func (s *Session) terminate(success bool) bool {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return false
	}
	s.terminated = true

	data := mustEncode(OpDone, DoneData{Success: success})
	for _, g := range s.guests {
		g.Send(data)
	}
	participants := s.participantsLocked()
	s.mu.Unlock()

	// Closing flushes queued messages before the connection goes away.
	for _, p := range participants {
		p.Close()
	}
	return true
}

func (s *Session) participantsLocked() []*Client {
	all := make([]*Client, 0, 1+len(s.guests))
	all = append(all, s.host)
	all = append(all, s.guests...)
	return all
}

// broadcastUsersLocked sends the full presence list to every active
// participant. Participants still awaiting ready receive their first
// presence list after their own ready.
func (s *Session) broadcastUsersLocked() {
	data := mustEncode(OpUpdateUsers, UsersData{Usernames: s.usernamesLocked()})
	for _, p := range s.participantsLocked() {
		if p.phase == PhaseActive {
			p.Send(data)
		}
	}
}
