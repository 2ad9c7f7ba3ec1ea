package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avikram/studysync/internal/infrastructure/monitoring"
	"github.com/avikram/studysync/internal/shared/id"
	"github.com/avikram/studysync/internal/shared/types"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// Repository persists the authoritative session set.
type Repository interface {
	Load(ctx context.Context) ([]types.Session, error)
	Upsert(ctx context.Context, session types.Session) error
	Delete(ctx context.Context, id string) error
}

// Manager is the authoritative session catalog. All reads come from the
// in-memory map; every mutation is persisted through the repository before
// the map is touched, so the map never gets ahead of durable state.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*types.Session // Protected by mu
	ids      *id.Generator
	repo     Repository
	metrics  *monitoring.Metrics
}

// NewManager creates a catalog manager hydrated from the repository.
func NewManager(ctx context.Context, repo Repository) (*Manager, error) {
	m := &Manager{
		sessions: make(map[string]*types.Session),
		ids:      id.NewGenerator(),
		repo:     repo,
	}

	if repo != nil {
		stored, err := repo.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load session catalog: %w", err)
		}
		for i := range stored {
			s := stored[i]
			m.sessions[s.ID] = &s
		}
	}

	return m, nil
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	m.observeActive()
	return m
}

// List returns all sessions ordered by date ascending. Sessions sharing a
// date keep creation order.
func (m *Manager) List(ctx context.Context) []types.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]types.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, *s)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].Date != sessions[j].Date {
			return sessions[i].Date < sessions[j].Date
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	return sessions
}

// Get retrieves a session by id
func (m *Manager) Get(id string) (types.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return types.Session{}, false
	}
	return *s, true
}

// Create assigns an id, applies defaults, and stores the new session
func (m *Manager) Create(ctx context.Context, draft types.Draft) (*types.Session, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	draft.Normalize()

	now := time.Now()
	session := types.Session{
		ID:         m.ids.NewSession(),
		Title:      draft.Title,
		Subject:    draft.Subject,
		Date:       draft.Date,
		StartTime:  draft.StartTime,
		EndTime:    draft.EndTime,
		Duration:   draft.Duration,
		Priority:   draft.Priority,
		Status:     draft.Status,
		Bookmarked: draft.Bookmarked,
		Notes:      draft.Notes,
		Topics:     draft.Topics,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := m.persist(ctx, session); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[session.ID] = &session
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.IncSessionsCreated()
		m.observeActive()
	}

	return &session, nil
}

// Update replaces the stored fields of an existing session. The returned
// session carries the server-applied defaults, not the caller's draft.
func (m *Manager) Update(ctx context.Context, id string, draft types.Draft) (*types.Session, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	draft.Normalize()

	m.mu.RLock()
	existing, ok := m.sessions[id]
	if !ok {
		m.mu.RUnlock()
		return nil, ErrNotFound
	}
	updated := *existing
	m.mu.RUnlock()

	updated.Title = draft.Title
	updated.Subject = draft.Subject
	updated.Date = draft.Date
	updated.StartTime = draft.StartTime
	updated.EndTime = draft.EndTime
	updated.Duration = draft.Duration
	updated.Priority = draft.Priority
	updated.Status = draft.Status
	updated.Bookmarked = draft.Bookmarked
	updated.Notes = draft.Notes
	updated.Topics = draft.Topics
	updated.UpdatedAt = time.Now()

	if err := m.persist(ctx, updated); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[id] = &updated
	m.mu.Unlock()

	return &updated, nil
}

// Delete removes a session. Deleting an unknown id fails.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.RLock()
	_, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	if m.repo != nil {
		if err := m.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.IncSessionsDeleted()
		m.observeActive()
	}

	return nil
}

// ToggleBookmark flips the bookmark flag and returns the updated session
func (m *Manager) ToggleBookmark(ctx context.Context, id string) (*types.Session, error) {
	return m.mutate(ctx, id, func(s *types.Session) {
		s.Bookmarked = !s.Bookmarked
	})
}

// MarkComplete transitions a session to completed. The completion date is
// set only on the first transition.
func (m *Manager) MarkComplete(ctx context.Context, id string) (*types.Session, error) {
	session, err := m.mutate(ctx, id, func(s *types.Session) {
		s.Status = types.StatusCompleted
		if s.CompletionDate == nil {
			now := time.Now()
			s.CompletionDate = &now
		}
	})
	if err != nil {
		return nil, err
	}

	if m.metrics != nil {
		m.metrics.IncSessionsCompleted()
	}

	return session, nil
}

// Stats reports catalog counts by status
func (m *Manager) Stats() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := map[string]int{"total": len(m.sessions)}
	for _, s := range m.sessions {
		stats[string(s.Status)]++
	}
	return stats
}

// mutate applies fn to a copy of the stored session, persists it, then
// installs the copy.
func (m *Manager) mutate(ctx context.Context, id string, fn func(*types.Session)) (*types.Session, error) {
	m.mu.RLock()
	existing, ok := m.sessions[id]
	if !ok {
		m.mu.RUnlock()
		return nil, ErrNotFound
	}
	updated := *existing
	m.mu.RUnlock()

	fn(&updated)
	updated.UpdatedAt = time.Now()

	if err := m.persist(ctx, updated); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[id] = &updated
	m.mu.Unlock()

	return &updated, nil
}

func (m *Manager) persist(ctx context.Context, session types.Session) error {
	if m.repo == nil {
		return nil
	}
	if err := m.repo.Upsert(ctx, session); err != nil {
		return fmt.Errorf("failed to persist session %s: %w", session.ID, err)
	}
	return nil
}

func (m *Manager) observeActive() {
	if m.metrics == nil {
		return
	}

	m.mu.RLock()
	active := 0
	for _, s := range m.sessions {
		if s.Status != types.StatusCompleted {
			active++
		}
	}
	m.mu.RUnlock()

	m.metrics.SetSessionsActive(active)
}

func validateDraft(draft types.Draft) error {
	if draft.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidDraft)
	}
	if draft.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidDraft)
	}
	if draft.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidDraft)
	}
	return nil
}

// ErrInvalidDraft is returned when required draft fields are missing.
var ErrInvalidDraft = errors.New("invalid session draft")
