package planner

import (
	"time"

	"github.com/avikram/studysync/internal/infrastructure/config"
	"github.com/avikram/studysync/internal/infrastructure/logging"
	"github.com/avikram/studysync/internal/remote"
	"github.com/avikram/studysync/internal/storage"
)

var _ Service = (*remote.Client)(nil)

// New assembles a store from configuration: a remote client pointed at
// the session service and a file-backed local store under the data
// directory. Prefs share the same local store.
func New(cfg *config.Config, logger *logging.Logger) (*Store, *Prefs, error) {
	kv, err := storage.NewFile(cfg.Storage.DataDir)
	if err != nil {
		return nil, nil, err
	}

	client := remote.NewClient(
		cfg.Remote.BaseURL,
		time.Duration(cfg.Remote.TimeoutSeconds)*time.Second,
		remote.WithLogger(logger),
	)

	store := NewStore(client, kv, WithStoreLogger(logger))
	return store, NewPrefs(kv), nil
}
