package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/avikram/studysync/internal/shared/types"
)

// SQLiteRepository stores the catalog in a single sessions table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// Close releases the underlying database handle
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  subject TEXT NOT NULL,
  date TEXT NOT NULL,
  start_time TEXT NOT NULL DEFAULT '',
  end_time TEXT NOT NULL DEFAULT '',
  duration TEXT NOT NULL DEFAULT '',
  priority TEXT NOT NULL,
  status TEXT NOT NULL,
  bookmarked INTEGER NOT NULL DEFAULT 0,
  notes TEXT NOT NULL DEFAULT '',
  topics TEXT NOT NULL DEFAULT '',
  completion_date TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

// Load returns every stored session
func (r *SQLiteRepository) Load(ctx context.Context) ([]types.Session, error) {
	const query = `
SELECT id, title, subject, date, start_time, end_time, duration, priority,
       status, bookmarked, notes, topics, completion_date, created_at, updated_at
FROM sessions`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	defer rows.Close()

	var sessions []types.Session
	for rows.Next() {
		var (
			s          types.Session
			priority   string
			status     string
			bookmarked int
			completion sql.NullString
			createdAt  string
			updatedAt  string
		)
		if err := rows.Scan(&s.ID, &s.Title, &s.Subject, &s.Date, &s.StartTime,
			&s.EndTime, &s.Duration, &priority, &status, &bookmarked,
			&s.Notes, &s.Topics, &completion, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}

		s.Priority = types.Priority(priority)
		s.Status = types.StatusFromWire(status)
		s.Bookmarked = bookmarked != 0
		if completion.Valid {
			if t, err := time.Parse(time.RFC3339Nano, completion.String); err == nil {
				s.CompletionDate = &t
			}
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			s.CreatedAt = t
		}
		if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
			s.UpdatedAt = t
		}

		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Upsert inserts or replaces a session row
func (r *SQLiteRepository) Upsert(ctx context.Context, s types.Session) error {
	const stmt = `
INSERT INTO sessions (id, title, subject, date, start_time, end_time, duration,
  priority, status, bookmarked, notes, topics, completion_date, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  subject=excluded.subject,
  date=excluded.date,
  start_time=excluded.start_time,
  end_time=excluded.end_time,
  duration=excluded.duration,
  priority=excluded.priority,
  status=excluded.status,
  bookmarked=excluded.bookmarked,
  notes=excluded.notes,
  topics=excluded.topics,
  completion_date=excluded.completion_date,
  updated_at=excluded.updated_at;
`
	bookmarked := 0
	if s.Bookmarked {
		bookmarked = 1
	}
	var completion interface{}
	if s.CompletionDate != nil {
		completion = s.CompletionDate.Format(time.RFC3339Nano)
	}

	_, err := r.db.ExecContext(ctx, stmt, s.ID, s.Title, s.Subject, s.Date,
		s.StartTime, s.EndTime, s.Duration, string(s.Priority), string(s.Status),
		bookmarked, s.Notes, s.Topics, completion,
		s.CreatedAt.Format(time.RFC3339Nano), s.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", s.ID, err)
	}
	return nil
}

// Delete removes a session row
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
