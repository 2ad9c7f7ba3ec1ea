// Package id generates session identifiers.
//
// Identifiers are prefixed ULIDs: lexicographically sortable by
// creation time, readable in logs, and unique without coordination.
// A session id looks like "sess_01J8X2K9QZT4M5N6P7R8S9T0VW".
package id

import (
	"crypto/rand"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// SessionPrefix marks session identifiers
const SessionPrefix = "sess"

// Generator produces prefixed ULID identifiers
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

// NewGenerator creates a generator with cryptographically secure entropy
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy
// source, useful for deterministic tests
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// NewSession returns a fresh session identifier
func (g *Generator) NewSession() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return SessionPrefix + "_" + ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

// IsSession reports whether raw carries the session prefix
func IsSession(raw string) bool {
	return strings.HasPrefix(raw, SessionPrefix+"_")
}
