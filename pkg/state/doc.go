// Package state holds the client's current session and bot and mirrors them
// into a persistent key/value Store so they survive restarts.
//
// Invariants:
// - At most one session is current at a time.
// - Memory is the source of truth while set; storage is consulted only
//   when the in-memory value is empty or on Reload.
//
// Drivers: memory, file (JSON object), sqlite, redis.
package state
