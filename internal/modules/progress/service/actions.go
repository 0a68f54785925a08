package service

import (
	"context"
	"fmt"
	"time"

	"flowrpg/internal/modules/progress/domain"
	apperrors "flowrpg/internal/platform/errors"
	"flowrpg/internal/platform/random"
)

// Forget stops the clock, reports a summary of the discarded session and
// zeroes the time accumulators and the auto-registration state.
func (s *ProgressService) Forget(ctx context.Context) []domain.Event {
	s.timer.Stop()
	summary := domain.SummarizeSession(s.state)
	s.state.TotalFocusSec = 0
	s.state.TotalBreakSec = 0
	s.state.SessionFocusSec = 0
	s.state.SessionBreakSec = 0
	s.state.AutoRegisteredFocus = domain.AutoNone
	s.state.AutoLastIdxFocus = nil
	return s.commit(ctx, []domain.Event{domain.SessionSummaryEvent(summary)})
}

// Reset discards all progress: a default state with a new level 1 boss and
// the clock stopped in focus mode.
func (s *ProgressService) Reset(ctx context.Context) []domain.Event {
	s.timer.Stop()
	state := domain.Default()
	state.HPTotal = random.Between(s.rng, domain.BaseHPMin, domain.BaseHPMax)
	state.BossName = domain.BossName(s.rng, s.names)
	s.state = state
	s.logger.Info("progress reset", "boss", state.BossName, "hp", state.HPTotal)
	return s.commit(ctx, nil)
}

func (s *ProgressService) CycleDifficulty(ctx context.Context) domain.Difficulty {
	s.state.Difficulty = s.state.Difficulty.Next()
	s.commit(ctx, nil)
	return s.state.Difficulty
}

func (s *ProgressService) SetDifficulty(ctx context.Context, d domain.Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("%w: difficulty %q", apperrors.ErrInvalidInput, d)
	}
	s.state.Difficulty = d
	s.commit(ctx, nil)
	return nil
}

func (s *ProgressService) NewBoss(ctx context.Context) []domain.Event {
	domain.SpawnBoss(&s.state, s.rng, s.names)
	s.logger.Info("boss summoned", "boss", s.state.BossName, "hp", s.state.HPTotal)
	return s.commit(ctx, nil)
}

// SpendTokens deducts cost tokens. Nothing changes when the balance is short.
func (s *ProgressService) SpendTokens(ctx context.Context, cost int) error {
	if cost <= 0 {
		return fmt.Errorf("%w: token cost must be positive", apperrors.ErrInvalidInput)
	}
	if have := domain.TokensAvailable(s.state); have < cost {
		return fmt.Errorf("%w: need %d, have %d", apperrors.ErrInsufficientTokens, cost, have)
	}
	s.state.TokensSpent += cost
	s.cue(ctx)
	s.commit(ctx, nil)
	return nil
}

func (s *ProgressService) ToggleZen(ctx context.Context) []domain.Event {
	s.state.ZenMode = !s.state.ZenMode
	s.cue(ctx)
	return s.commit(ctx, nil)
}

// SetAlarm arms a one-shot alarm minutes from now, replacing any pending one.
func (s *ProgressService) SetAlarm(ctx context.Context, minutes int) (time.Time, error) {
	if minutes < 1 || minutes > domain.MaxAlarmMinutes {
		return time.Time{}, fmt.Errorf("%w: alarm minutes must be 1..%d", apperrors.ErrInvalidInput, domain.MaxAlarmMinutes)
	}
	now := s.clock.Now()
	s.state.AlarmEnabled = true
	s.state.AlarmMinutes = minutes
	s.state.AlarmStartTime = &now
	s.commit(ctx, nil)
	return now.Add(time.Duration(minutes) * time.Minute), nil
}

func (s *ProgressService) CancelAlarm(ctx context.Context) error {
	if !s.state.AlarmEnabled {
		return apperrors.ErrNoAlarm
	}
	s.clearAlarm()
	s.commit(ctx, nil)
	return nil
}

// AlarmDeadline reports when the pending alarm is due.
func (s *ProgressService) AlarmDeadline() (time.Time, bool) {
	if !s.state.AlarmEnabled || s.state.AlarmStartTime == nil {
		return time.Time{}, false
	}
	return s.state.AlarmStartTime.Add(time.Duration(s.state.AlarmMinutes) * time.Minute), true
}

// FireAlarm clears a pending alarm and notifies. It does nothing when the
// alarm was cancelled or rearmed for later.
func (s *ProgressService) FireAlarm(ctx context.Context) []domain.Event {
	deadline, ok := s.AlarmDeadline()
	if !ok || s.clock.Now().Before(deadline) {
		return nil
	}
	minutes := s.state.AlarmMinutes
	s.clearAlarm()
	return s.commit(ctx, []domain.Event{domain.AlarmEvent(minutes)})
}

func (s *ProgressService) clearAlarm() {
	s.state.AlarmEnabled = false
	s.state.AlarmStartTime = nil
}

func (s *ProgressService) DismissTips(ctx context.Context) {
	if s.state.HasSeenTips {
		return
	}
	s.state.HasSeenTips = true
	s.commit(ctx, nil)
}

// SettingsPatch changes only the toggles that are set.
type SettingsPatch struct {
	Sound             *bool
	NotificationSound *bool
	ButtonSound       *bool
	AutoDarkMode      *bool
}

func (s *ProgressService) UpdateSettings(ctx context.Context, patch SettingsPatch) {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&s.state.SoundEnabled, patch.Sound)
	set(&s.state.NotificationSoundEnabled, patch.NotificationSound)
	set(&s.state.ButtonSoundEnabled, patch.ButtonSound)
	set(&s.state.AutoDarkMode, patch.AutoDarkMode)
	s.commit(ctx, nil)
}
