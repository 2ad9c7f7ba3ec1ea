package planner

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/avikram/studysync/internal/shared/types"
	"github.com/avikram/studysync/internal/storage"
)

// archiveKey is the local persistence key for the completed archive
const archiveKey = "completedSessions"

// archiveMirror keeps the completed archive durable. Every mutation
// rewrites the full sequence under a fixed key; a failed write is
// reported to the caller but never blocks the in-memory change, and
// the next successful rewrite heals any gap.
type archiveMirror struct {
	kv storage.KV
}

func newArchiveMirror(kv storage.KV) *archiveMirror {
	return &archiveMirror{kv: kv}
}

// load hydrates the archive from local persistence. An absent key is
// an empty archive, not an error.
func (m *archiveMirror) load() ([]types.Session, error) {
	data, ok, err := m.kv.Get(archiveKey)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var sessions []types.Session
	if err := sonic.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decode archive: %w", err)
	}
	return sessions, nil
}

// save rewrites the full archive sequence
func (m *archiveMirror) save(sessions []types.Session) error {
	data, err := sonic.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}
	if err := m.kv.Set(archiveKey, data); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

// clear erases the persisted archive
func (m *archiveMirror) clear() error {
	if err := m.kv.Remove(archiveKey); err != nil {
		return fmt.Errorf("clear archive: %w", err)
	}
	return nil
}
