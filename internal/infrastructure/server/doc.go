// Package server wires the gin engine: middleware, session API routes,
// metrics endpoint, and the SQLite-backed catalog.
package server
