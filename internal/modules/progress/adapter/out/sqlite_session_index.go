package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flowrpg/internal/modules/progress/domain"

	_ "modernc.org/sqlite"
)

// SQLiteSessionIndex projects the session log into sqlite for statistics.
// The JSON state stays the source of truth; Reindex rebuilds this table.
type SQLiteSessionIndex struct {
	db *sql.DB
}

func NewSQLiteSessionIndex(dbPath string) (*SQLiteSessionIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	index := &SQLiteSessionIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return index, nil
}

func (s *SQLiteSessionIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT UNIQUE,
  day TEXT NOT NULL,
  focus_sec INTEGER NOT NULL,
  completed INTEGER NOT NULL,
  recorded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_day ON sessions(day);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionIndex) Close() error {
	return s.db.Close()
}

func (s *SQLiteSessionIndex) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteSessionIndex) Record(ctx context.Context, record domain.SessionRecord, recordedAt time.Time) error {
	const stmt = `
INSERT INTO sessions (id, day, focus_sec, completed, recorded_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  day=excluded.day,
  focus_sec=excluded.focus_sec,
  completed=excluded.completed,
  recorded_at=excluded.recorded_at;
`
	var id any
	if record.ID != "" {
		id = record.ID
	}
	_, err := s.db.ExecContext(ctx, stmt,
		id,
		record.Date,
		record.FocusTime,
		boolToInt(record.Completed),
		recordedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionIndex) Summary(ctx context.Context, today string, since string) (domain.SessionStats, error) {
	const query = `
SELECT
  COUNT(*),
  COALESCE(SUM(completed), 0),
  COALESCE(SUM(CASE WHEN completed = 1 AND day = ? THEN 1 ELSE 0 END), 0),
  COALESCE(CAST(AVG(CASE WHEN completed = 1 THEN focus_sec END) AS INTEGER), 0),
  COALESCE(SUM(CASE WHEN completed = 1 AND day >= ? THEN focus_sec ELSE 0 END), 0)
FROM sessions;
`
	st := domain.SessionStats{}
	err := s.db.QueryRowContext(ctx, query, today, since).Scan(
		&st.TotalSessions,
		&st.CompletedSessions,
		&st.CompletedToday,
		&st.AverageFocusSec,
		&st.FocusSinceSec,
	)
	if err != nil {
		return domain.SessionStats{}, fmt.Errorf("summarize sessions: %w", err)
	}
	return st, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
