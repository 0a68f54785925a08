package out

import (
	"context"
	"time"

	"flowrpg/internal/modules/progress/domain"
)

// StateStore persists the single progress record.
type StateStore interface {
	Load(ctx context.Context) (domain.ProgressState, error)
	Save(ctx context.Context, state domain.ProgressState) error
}

// Notifier delivers (title, body) events and the button cue.
// Implementations must not block the caller for long.
type Notifier interface {
	Notify(ctx context.Context, event domain.Event, sound bool) error
	Cue(ctx context.Context) error
}

// SessionIndex is a queryable projection of the session log.
type SessionIndex interface {
	Reset(ctx context.Context) error
	Record(ctx context.Context, record domain.SessionRecord, recordedAt time.Time) error
	Summary(ctx context.Context, today string, since string) (domain.SessionStats, error)
}

type Chronicle struct {
	Level          int
	Exp            int
	BossName       string
	HPRemaining    int
	HPTotal        int
	Tokens         int
	CurrentStreak  int
	BestStreak     int
	BossesDefeated int
	Story          []string
	Achievements   []domain.Achievement
	ExportedAt     time.Time
}

// ChronicleStore renders the story and achievements into a markdown note.
type ChronicleStore interface {
	Save(ctx context.Context, chronicle Chronicle) (string, error)
}
