// Package collab implements the Configure Together protocol: shared
// framing sessions in which a host shares one artwork's framing
// configuration and invited guests observe and edit it live.
//
// The package implements:
//   - Registry: process-wide table of live sessions (create, join, teardown)
//   - Session: per-session state, presence and broadcast relay
//   - Client: one participant connection with a decoupled outbound queue
//   - Handler: WebSocket endpoints and message dispatch
//
// Guarantees:
//   - Per-session total order: all state changes and fan-out run under the
//     session mutex, so every participant observes events in one order
//   - Sender exclusion: update_state is relayed to every other active
//     participant, never echoed to its sender
//   - Late-joiner catch-up: a new guest receives the current state before
//     any presence broadcast reaches it
//   - Host-loss teardown: a host disconnecting without done ends the
//     session as done{success:false} for every guest
//
// Sessions are in-memory only and die with the process; a finalized
// configuration reaches the cart through the regular cart endpoints.
package collab
