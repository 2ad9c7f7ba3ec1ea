package storage

// KV is a device-scoped key-value byte store. It backs the completion
// archive and UI preference flags; it is never authoritative for active
// sessions.
type KV interface {
	// Get returns the stored bytes and whether the key exists.
	Get(key string) ([]byte, bool, error)
	// Set stores value under key, overwriting any previous value.
	Set(key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}
