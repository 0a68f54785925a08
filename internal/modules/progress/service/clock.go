package service

import (
	"context"

	"flowrpg/internal/modules/progress/domain"
)

// Start runs the clock in the current mode and returns the generation its
// ticks must carry.
func (s *ProgressService) Start(ctx context.Context) uint64 {
	s.cue(ctx)
	return s.timer.Start()
}

// Stop deactivates the clock. Ticks already in flight become stale.
func (s *ProgressService) Stop(ctx context.Context) {
	if !s.timer.Running() {
		return
	}
	s.timer.Stop()
	s.cue(ctx)
	s.persist(ctx)
}

// Tick applies one second to the active mode. Ticks stamped with a stale
// generation are dropped and report false.
func (s *ProgressService) Tick(ctx context.Context, gen uint64) ([]domain.Event, bool) {
	if !s.timer.Live(gen) {
		return nil, false
	}
	var events []domain.Event
	if s.state.ActiveMode == domain.ModeFocus {
		hpBefore := domain.HPRemaining(s.state)
		s.state.SessionFocusSec++
		s.state.TotalFocusSec++
		if award, ok := domain.Register(&s.state); ok {
			events = append(events, s.applyAward(ctx, award, hpBefore)...)
		}
		if sec := s.state.SessionFocusSec; sec%domain.MilestoneSeconds == 0 {
			events = append(events, domain.FocusMilestoneEvent(sec))
		}
	} else {
		before := domain.BalanceSeconds(s.state)
		s.state.SessionBreakSec++
		s.state.TotalBreakSec++
		if before > 0 && domain.BalanceSeconds(s.state) == 0 {
			events = append(events, domain.BreakCompleteEvent())
		}
	}
	return s.commit(ctx, events), true
}

// ToggleMode flips the mode, saves it and restarts the clock right away.
// Session seconds of both modes resume where they were left.
func (s *ProgressService) ToggleMode(ctx context.Context) uint64 {
	s.timer.Stop()
	s.state.ActiveMode = s.state.ActiveMode.Other()
	s.logger.Debug("mode switched", "mode", string(s.state.ActiveMode))
	s.cue(ctx)
	s.persist(ctx)
	return s.timer.Start()
}

// Activate switches to mode, or starts the clock when already there.
func (s *ProgressService) Activate(ctx context.Context, mode domain.Mode) uint64 {
	if mode != s.state.ActiveMode {
		return s.ToggleMode(ctx)
	}
	return s.Start(ctx)
}
