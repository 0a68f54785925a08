package service

import (
	"context"
	"errors"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"flowrpg/internal/modules/progress/domain"
	progressout "flowrpg/internal/modules/progress/port/out"
	"flowrpg/internal/platform/clock"
	apperrors "flowrpg/internal/platform/errors"
	"flowrpg/internal/platform/id"
	"flowrpg/internal/platform/random"
	"flowrpg/internal/platform/scheduler"
)

type Deps struct {
	Clock     clock.Clock
	Random    random.Source
	IDs       id.Generator
	Store     progressout.StateStore
	Notifier  progressout.Notifier
	Index     progressout.SessionIndex
	Chronicle progressout.ChronicleStore
	Names     domain.NameTables
	Snippets  []string
	Tick      time.Duration
	Logger    hclog.Logger
}

// ProgressService owns the progress state, the session clock and every
// action that mutates them. It is not safe for concurrent use: callers
// drive it from one event loop.
type ProgressService struct {
	clock     clock.Clock
	rng       random.Source
	ids       id.Generator
	store     progressout.StateStore
	notifier  progressout.Notifier
	index     progressout.SessionIndex
	chronicle progressout.ChronicleStore
	names     domain.NameTables
	snippets  []string
	logger    hclog.Logger

	state domain.ProgressState
	timer *scheduler.Repeating
}

func NewProgressService(deps Deps) *ProgressService {
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	if deps.Random == nil {
		deps.Random = random.System{}
	}
	if deps.IDs == nil {
		deps.IDs = id.RandomHex{}
	}
	if deps.Names.Validate() != nil {
		deps.Names = domain.DefaultNames()
	}
	if len(deps.Snippets) == 0 {
		deps.Snippets = domain.DefaultSnippets()
	}
	if deps.Logger == nil {
		deps.Logger = hclog.NewNullLogger()
	}
	return &ProgressService{
		clock:     deps.Clock,
		rng:       deps.Random,
		ids:       deps.IDs,
		store:     deps.Store,
		notifier:  deps.Notifier,
		index:     deps.Index,
		chronicle: deps.Chronicle,
		names:     deps.Names,
		snippets:  deps.Snippets,
		logger:    deps.Logger.Named("progress"),
		state:     domain.Default(),
		timer:     scheduler.NewRepeating(deps.Tick),
	}
}

// Load reads the persisted record. A missing or unreadable record is
// replaced by a freshly seeded state; this never fails.
func (s *ProgressService) Load(ctx context.Context) {
	if s.store == nil {
		s.state = s.seed()
		return
	}
	state, err := s.store.Load(ctx)
	switch {
	case err == nil:
		state.Normalize()
		if state.BossName == "" {
			state.BossName = domain.BossName(s.rng, s.names)
		}
		s.state = state
		return
	case errors.Is(err, apperrors.ErrNotFound):
		s.logger.Info("no saved progress, starting fresh")
	case errors.Is(err, apperrors.ErrCorruptState):
		s.logger.Warn("saved progress is corrupt, starting fresh", "error", err)
	default:
		s.logger.Warn("cannot read saved progress, starting fresh", "error", err)
	}
	s.state = s.seed()
	s.persist(ctx)
}

func (s *ProgressService) seed() domain.ProgressState {
	state := domain.Default()
	state.BossName = domain.BossName(s.rng, s.names)
	return state
}

// State returns a copy of the current state.
func (s *ProgressService) State() domain.ProgressState {
	return s.state.Clone()
}

func (s *ProgressService) Mode() domain.Mode { return s.state.ActiveMode }

func (s *ProgressService) Running() bool { return s.timer.Running() }

func (s *ProgressService) Generation() uint64 { return s.timer.Generation() }

func (s *ProgressService) TickInterval() time.Duration { return s.timer.Period() }

// Ticks exposes the clock as a channel for loops driven by select. It is nil
// while the clock is stopped.
func (s *ProgressService) Ticks() <-chan time.Time { return s.timer.C() }

func (s *ProgressService) Now() time.Time { return s.clock.Now() }

// persist writes the whole record. Failures are logged and swallowed; the
// in-memory state stays authoritative.
func (s *ProgressService) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.state); err != nil {
		s.logger.Warn("save progress failed", "error", err)
	}
}

// commit closes every mutation: newly satisfied achievements are unlocked,
// the record is saved and events go out to the notifier in order.
func (s *ProgressService) commit(ctx context.Context, events []domain.Event) []domain.Event {
	for _, a := range domain.UnlockAchievements(&s.state, domain.DayKey(s.clock.Now())) {
		events = append(events, domain.AchievementEvent(a))
	}
	s.persist(ctx)
	s.dispatch(ctx, events)
	return events
}

func (s *ProgressService) dispatch(ctx context.Context, events []domain.Event) {
	if s.notifier == nil {
		return
	}
	sound := s.state.SoundEnabled && s.state.NotificationSoundEnabled
	for _, ev := range events {
		if err := s.notifier.Notify(ctx, ev, sound); err != nil {
			s.logger.Warn("notify failed", "kind", string(ev.Kind), "error", err)
		}
	}
}

// cue plays the short button sound when both sound switches allow it.
func (s *ProgressService) cue(ctx context.Context) {
	if s.notifier == nil || !s.state.SoundEnabled || !s.state.ButtonSoundEnabled {
		return
	}
	if err := s.notifier.Cue(ctx); err != nil {
		s.logger.Debug("button cue dropped", "error", err)
	}
}

// applyAward runs the bookkeeping shared by every auto-registration award.
func (s *ProgressService) applyAward(ctx context.Context, award domain.Award, hpBefore int) []domain.Event {
	s.logger.Debug("focus block registered", "kind", string(award.Kind), "upgrade", award.Upgrade, "exp", award.ExpDelta, "dano", award.DanoDelta)
	s.cue(ctx)
	now := s.clock.Now()
	rec := domain.RecordSession(&s.state, s.ids.New(), now, award.Kind == domain.KindDeep)
	s.project(ctx, rec, now)

	var events []domain.Event
	if domain.HPRemaining(s.state) == 0 {
		if hpBefore > 0 {
			s.state.BossesDefeated++
		}
		events = append(events, domain.BossDefeatedEvent(s.state.BossName))
	}
	if lvl := domain.LevelUp(&s.state, s.rng, s.snippets); lvl > 0 {
		events = append(events, domain.LevelUpEvent(lvl))
	}
	return events
}

func (s *ProgressService) project(ctx context.Context, rec domain.SessionRecord, at time.Time) {
	if s.index == nil {
		return
	}
	if err := s.index.Record(ctx, rec, at); err != nil {
		s.logger.Warn("index session failed", "id", rec.ID, "error", err)
	}
}
