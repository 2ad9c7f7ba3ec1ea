// Package storage implements the local persistence adapter: a small
// key-value byte store scoped to the client device.
//
// Two implementations are provided:
//   - File: one file per key under a directory, written atomically
//   - Memory: map-backed store for tests
package storage
