// Package planner implements the session synchronization store: an
// in-memory mirror of the active sessions held by the remote session
// service, plus a durable local archive of completed sessions.
//
// The store owns two disjoint collections. The active set is replaced
// wholesale on every refresh and mutated only through server-confirmed
// operations; the archive is a local-only, append-only record of
// completions that survives restarts and outlives remote deletion.
// Presentation code reads projections (Active, Archive, Visible) and
// issues intents; it never mutates cached state directly.
package planner
