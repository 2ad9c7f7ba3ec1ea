package planner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/avikram/studysync/internal/infrastructure/logging"
	"github.com/avikram/studysync/internal/shared/types"
	"github.com/avikram/studysync/internal/storage"
)

var (
	// ErrInvalidDraft indicates a draft missing required fields; it is
	// rejected before any network call
	ErrInvalidDraft = errors.New("draft requires a title and a date")

	// ErrNotFound indicates the id does not reference an active session
	ErrNotFound = errors.New("session not found in active set")

	// ErrConfirmationRequired guards the irreversible archive clear
	ErrConfirmationRequired = errors.New("clearing the archive requires confirmation")
)

// Service is the remote session service the store synchronizes with
type Service interface {
	List(ctx context.Context) ([]types.Session, error)
	Create(ctx context.Context, draft types.Draft) (*types.Session, error)
	Update(ctx context.Context, id string, draft types.Draft) (*types.Session, error)
	Delete(ctx context.Context, id string) error
	ToggleBookmark(ctx context.Context, id string) (*types.Session, error)
	MarkComplete(ctx context.Context, id string) (*types.Session, error)
}

// Store reconciles the authoritative remote record set with two local
// projections: the active set (mirrors remote) and the completed
// archive (local-only, durable).
//
// Remote calls happen outside the lock, so two in-flight mutations for
// the same id race to overwrite the cache and the last response wins.
// That is the intended conflict policy: the cache always holds the
// most recently returned server representation.
type Store struct {
	mu      sync.RWMutex
	service Service
	mirror  *archiveMirror
	logger  *logging.Logger

	active   []types.Session
	archive  []types.Session
	loading  bool
	lastErr  error
	selected string
}

// StoreOption customizes a Store
type StoreOption func(*Store)

// WithStoreLogger attaches a logger for persistence diagnostics
func WithStoreLogger(logger *logging.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore builds a store bound to a remote service and a local
// key-value store. The completed archive is hydrated from local
// persistence before the store is returned, so completions recorded
// in earlier runs are visible before the first refresh.
func NewStore(service Service, kv storage.KV, opts ...StoreOption) *Store {
	s := &Store{
		service: service,
		mirror:  newArchiveMirror(kv),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	archived, err := s.mirror.load()
	if err != nil {
		s.logger.Warn("archive hydration failed, starting empty", zap.Error(err))
	}
	s.archive = archived
	return s
}

// Refresh replaces the active set wholesale with the remote list. On
// failure the prior cache is kept, stale but available.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	sessions, err := s.service.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return err
	}
	s.active = sessions
	s.lastErr = nil
	return nil
}

// Create validates a draft, sends it, and appends the server-assigned
// session to the active set. There is no optimistic insert: an
// unconfirmed id cannot be used for subsequent mutations.
func (s *Store) Create(ctx context.Context, draft types.Draft) (*types.Session, error) {
	if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Date) == "" {
		return nil, ErrInvalidDraft
	}
	draft.Duration = Duration(draft.StartTime, draft.EndTime)

	created, err := s.service.Create(ctx, draft)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = append(s.active, *created)
	s.lastErr = nil
	return created, nil
}

// Update replaces an active session with the server's returned
// representation. The server is the source of truth for applied
// defaults and derived fields.
func (s *Store) Update(ctx context.Context, id string, draft types.Draft) (*types.Session, error) {
	if !s.has(id) {
		return nil, ErrNotFound
	}
	draft.Duration = Duration(draft.StartTime, draft.EndTime)

	updated, err := s.service.Update(ctx, id, draft)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.install(*updated)
	return updated, nil
}

// Delete removes a session remotely and drops it from the active set.
// If the deleted session was selected for editing the selection is
// cleared.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.service.Delete(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = removeByID(s.active, id)
	if s.selected == id {
		s.selected = ""
	}
	s.lastErr = nil
	return nil
}

// ToggleBookmark flips the bookmark flag remotely and installs the
// post-toggle server state, not a client-computed guess, so a
// concurrent toggle from another client is never silently overwritten.
func (s *Store) ToggleBookmark(ctx context.Context, id string) (*types.Session, error) {
	toggled, err := s.service.ToggleBookmark(ctx, id)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.install(*toggled)
	return toggled, nil
}

// Complete marks a session complete remotely, snapshots it into the
// archive, and removes it from the active set. If the remote call
// fails nothing changes locally. A failed archive write is logged and
// the in-memory archive entry is kept; the next successful rewrite
// persists it.
func (s *Store) Complete(ctx context.Context, id string) (*types.Session, error) {
	s.mu.RLock()
	cached, ok := findByID(s.active, id)
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	marked, err := s.service.MarkComplete(ctx, id)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	snapshot := cached
	snapshot.Status = types.StatusCompleted
	if marked.CompletionDate != nil {
		snapshot.CompletionDate = marked.CompletionDate
	} else {
		now := time.Now()
		snapshot.CompletionDate = &now
	}

	s.mu.Lock()
	s.archive = append([]types.Session{snapshot}, s.archive...)
	s.active = removeByID(s.active, id)
	if s.selected == id {
		s.selected = ""
	}
	s.lastErr = nil
	archived := make([]types.Session, len(s.archive))
	copy(archived, s.archive)
	s.mu.Unlock()

	if err := s.mirror.save(archived); err != nil {
		s.logger.Warn("archive write failed, entry kept in memory",
			zap.String("session_id", id), zap.Error(err))
	}
	return &snapshot, nil
}

// ClearArchive empties the completed archive and its persistence
// backing. The confirm flag must be set explicitly; the operation is
// irreversible and never touches the active set or the remote service.
func (s *Store) ClearArchive(confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}

	s.mu.Lock()
	s.archive = nil
	s.mu.Unlock()

	if err := s.mirror.clear(); err != nil {
		s.logger.Warn("archive clear failed on disk", zap.Error(err))
		return err
	}
	return nil
}

// Active returns a copy of the active set in remote order
func (s *Store) Active() []types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Session, len(s.active))
	copy(out, s.active)
	return out
}

// Archive returns a copy of the completed archive, most recent first
func (s *Store) Archive() []types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Session, len(s.archive))
	copy(out, s.archive)
	return out
}

// Visible projects the active set through a search term and filters
func (s *Store) Visible(term string, filters types.Filters) []types.Session {
	return Visible(s.Active(), term, filters)
}

// Loading reports whether a refresh is in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the most recent operation failure, cleared by the
// next success
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Select marks a session as the current editing target
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = id
}

// Selected returns the current editing target, empty if none
func (s *Store) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

func (s *Store) has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := findByID(s.active, id)
	return ok
}

// install overwrites the cached entry matching the session's id. If
// the id has already left the active set the response is dropped.
func (s *Store) install(session types.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.active {
		if s.active[i].ID == session.ID {
			s.active[i] = session
			break
		}
	}
	s.lastErr = nil
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

func findByID(sessions []types.Session, id string) (types.Session, bool) {
	for _, s := range sessions {
		if s.ID == id {
			return s, true
		}
	}
	return types.Session{}, false
}

func removeByID(sessions []types.Session, id string) []types.Session {
	out := sessions[:0]
	for _, s := range sessions {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
