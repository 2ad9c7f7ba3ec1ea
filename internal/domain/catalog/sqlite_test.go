package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avikram/studysync/internal/shared/types"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Millisecond)
	completion := now.Add(time.Hour)
	session := types.Session{
		ID:             "s-1",
		Title:          "Algebra Review",
		Subject:        "Math",
		Date:           "2024-06-01",
		StartTime:      "09:00",
		EndTime:        "10:30",
		Duration:       "1h 30m",
		Priority:       types.PriorityHigh,
		Status:         types.StatusCompleted,
		Bookmarked:     true,
		Notes:          "chapters 3-5",
		Topics:         "quadratics",
		CompletionDate: &completion,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	require.NoError(t, repo.Upsert(ctx, session))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, session.Title, got.Title)
	assert.Equal(t, session.Priority, got.Priority)
	assert.Equal(t, session.Status, got.Status)
	assert.True(t, got.Bookmarked)
	require.NotNil(t, got.CompletionDate)
	assert.True(t, completion.Equal(*got.CompletionDate))
	assert.True(t, now.Equal(got.CreatedAt))
}

func TestSQLiteUpsertReplaces(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	session := types.Session{
		ID: "s-1", Title: "Algebra", Subject: "Math", Date: "2024-06-01",
		Priority: types.PriorityMedium, Status: types.StatusPlanned,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Upsert(ctx, session))

	session.Title = "Algebra II"
	session.Bookmarked = true
	require.NoError(t, repo.Upsert(ctx, session))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Algebra II", loaded[0].Title)
	assert.True(t, loaded[0].Bookmarked)
}

func TestSQLiteDelete(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	session := types.Session{
		ID: "s-1", Title: "Algebra", Subject: "Math", Date: "2024-06-01",
		Priority: types.PriorityMedium, Status: types.StatusPlanned,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Upsert(ctx, session))
	require.NoError(t, repo.Delete(ctx, "s-1"))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	// Deleting an absent row is not an error at the repository level;
	// the manager decides whether that is a failure.
	assert.NoError(t, repo.Delete(ctx, "s-1"))
}

func TestSQLiteLegacyStatusAlias(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	_, err := repo.db.ExecContext(ctx, `
INSERT INTO sessions (id, title, subject, date, priority, status, created_at, updated_at)
VALUES ('s-legacy', 'Old Row', 'History', '2023-01-01', 'medium', 'upcoming', ?, ?)`,
		time.Now().Format(time.RFC3339Nano), time.Now().Format(time.RFC3339Nano))
	require.NoError(t, err)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, types.StatusPlanned, loaded[0].Status)
}
