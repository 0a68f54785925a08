package service

import (
	"context"
	"fmt"

	"flowrpg/internal/modules/progress/domain"
	progressout "flowrpg/internal/modules/progress/port/out"
)

// Stats summarizes the session log. The index answers when it is wired and
// healthy; otherwise the in-state log is scanned directly.
func (s *ProgressService) Stats(ctx context.Context) domain.SessionStats {
	now := s.clock.Now()
	today := domain.DayKey(now)
	since := domain.DayKey(now.AddDate(0, 0, -6))
	if s.index != nil {
		st, err := s.index.Summary(ctx, today, since)
		if err == nil {
			return st
		}
		s.logger.Warn("session index summary failed, using state log", "error", err)
	}
	return domain.SummarizeLog(s.state, today, since)
}

// Reindex rebuilds the session index from the session log.
func (s *ProgressService) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, fmt.Errorf("session index is not configured")
	}
	if err := s.index.Reset(ctx); err != nil {
		return 0, err
	}
	now := s.clock.Now()
	for _, rec := range s.state.SessionHistory {
		if err := s.index.Record(ctx, rec, now); err != nil {
			return 0, err
		}
	}
	return len(s.state.SessionHistory), nil
}

func (s *ProgressService) Chronicle() progressout.Chronicle {
	return progressout.Chronicle{
		Level:          domain.Level(s.state),
		Exp:            s.state.ExpTotal,
		BossName:       s.state.BossName,
		HPRemaining:    domain.HPRemaining(s.state),
		HPTotal:        s.state.HPTotal,
		Tokens:         domain.TokensAvailable(s.state),
		CurrentStreak:  s.state.CurrentStreak,
		BestStreak:     s.state.BestStreak,
		BossesDefeated: s.state.BossesDefeated,
		Story:          append([]string(nil), s.state.Story...),
		Achievements:   domain.UnlockedAchievements(s.state),
		ExportedAt:     s.clock.Now(),
	}
}

func (s *ProgressService) ExportChronicle(ctx context.Context) (string, error) {
	if s.chronicle == nil {
		return "", fmt.Errorf("chronicle store is not configured")
	}
	return s.chronicle.Save(ctx, s.Chronicle())
}
