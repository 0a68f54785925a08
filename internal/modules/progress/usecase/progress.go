package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"flowrpg/internal/modules/progress/domain"
	progressdto "flowrpg/internal/modules/progress/dto"
	progressin "flowrpg/internal/modules/progress/port/in"
	"flowrpg/internal/modules/progress/service"
	apperrors "flowrpg/internal/platform/errors"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Snapshot(_ context.Context) progressdto.Snapshot {
	s := i.svc.State()
	balance := domain.BalanceSeconds(s)
	feedback := domain.BalanceFeedback(balance)
	buffs := []string{}
	for _, b := range domain.ActiveBuffs(balance) {
		buffs = append(buffs, b.Name)
	}
	sessionSec := s.SessionFocusSec
	if i.svc.Mode() == domain.ModeBreak {
		sessionSec = s.SessionBreakSec
	}
	snap := progressdto.Snapshot{
		Mode:              string(i.svc.Mode()),
		Running:           i.svc.Running(),
		Generation:        i.svc.Generation(),
		Level:             domain.Level(s),
		ExpInLevel:        domain.ExpInLevel(s),
		ExpTotal:          s.ExpTotal,
		LevelSize:         domain.LevelSize,
		BossName:          s.BossName,
		HPRemaining:       domain.HPRemaining(s),
		HPTotal:           s.HPTotal,
		Defeated:          domain.HPRemaining(s) == 0,
		Tokens:            domain.TokensAvailable(s),
		BalanceSeconds:    balance,
		Feedback:          feedback.Message,
		FeedbackTone:      string(feedback.Tone),
		Buffs:             buffs,
		Difficulty:        string(s.Difficulty),
		DifficultyLabel:   s.Difficulty.Label(),
		Clock:             domain.FormatClock(sessionSec),
		BalanceClock:      domain.FormatClock(balance),
		SessionFocusSec:   s.SessionFocusSec,
		SessionBreakSec:   s.SessionBreakSec,
		TotalFocusSec:     s.TotalFocusSec,
		TotalBreakSec:     s.TotalBreakSec,
		AutoState:         string(s.AutoRegisteredFocus),
		Blocks:            len(s.History),
		ZenMode:           s.ZenMode,
		HasSeenTips:       s.HasSeenTips,
		Dark:              domain.ShouldUseDark(i.svc.Now(), s.AutoDarkMode),
		SoundEnabled:      s.SoundEnabled,
		NotificationSound: s.NotificationSoundEnabled,
		ButtonSound:       s.ButtonSoundEnabled,
		AutoDarkMode:      s.AutoDarkMode,
		AlarmEnabled:      s.AlarmEnabled,
		AlarmMinutes:      s.AlarmMinutes,
		CurrentStreak:     s.CurrentStreak,
		BestStreak:        s.BestStreak,
		DailySessions:     domain.CompletedSessions(s, domain.DayKey(i.svc.Now())),
		BossesDefeated:    s.BossesDefeated,
		Story:             s.Story,
	}
	if deadline, ok := i.svc.AlarmDeadline(); ok {
		snap.AlarmDeadline = deadline
	}
	for _, a := range domain.Achievements() {
		snap.Achievements = append(snap.Achievements, progressdto.AchievementView{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Icon:        a.Icon,
			Unlocked:    slices.Contains(s.Achievements, a.ID),
		})
	}
	return snap
}

func (i *Interactor) output(ctx context.Context, events []domain.Event) progressdto.ActionOutput {
	out := progressdto.ActionOutput{Snapshot: i.Snapshot(ctx)}
	for _, ev := range events {
		out.Events = append(out.Events, progressdto.Event{Kind: string(ev.Kind), Title: ev.Title, Body: ev.Body})
	}
	return out
}

func (i *Interactor) Start(ctx context.Context) progressdto.ActionOutput {
	i.svc.Start(ctx)
	return i.output(ctx, nil)
}

func (i *Interactor) Stop(ctx context.Context) progressdto.ActionOutput {
	i.svc.Stop(ctx)
	return i.output(ctx, nil)
}

// Toggle flips between focus and break and restarts the clock.
func (i *Interactor) Toggle(ctx context.Context) progressdto.ActionOutput {
	i.svc.ToggleMode(ctx)
	return i.output(ctx, nil)
}

func (i *Interactor) Activate(ctx context.Context, mode string) (progressdto.ActionOutput, error) {
	m, err := domain.ParseMode(mode)
	if err != nil {
		return progressdto.ActionOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	i.svc.Activate(ctx, m)
	return i.output(ctx, nil), nil
}

func (i *Interactor) Tick(ctx context.Context, generation uint64) (progressdto.ActionOutput, bool) {
	events, ok := i.svc.Tick(ctx, generation)
	if !ok {
		return progressdto.ActionOutput{}, false
	}
	return i.output(ctx, events), true
}

func (i *Interactor) Ticks() <-chan time.Time {
	return i.svc.Ticks()
}

func (i *Interactor) Forget(ctx context.Context) progressdto.ActionOutput {
	return i.output(ctx, i.svc.Forget(ctx))
}

func (i *Interactor) Reset(ctx context.Context) progressdto.ActionOutput {
	return i.output(ctx, i.svc.Reset(ctx))
}

func (i *Interactor) Difficulty(ctx context.Context, input progressdto.DifficultyInput) (progressdto.ActionOutput, error) {
	if input.Difficulty == "" || input.Difficulty == "next" {
		i.svc.CycleDifficulty(ctx)
		return i.output(ctx, nil), nil
	}
	d, err := domain.ParseDifficulty(input.Difficulty)
	if err != nil {
		return progressdto.ActionOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := i.svc.SetDifficulty(ctx, d); err != nil {
		return progressdto.ActionOutput{}, err
	}
	return i.output(ctx, nil), nil
}

func (i *Interactor) NewBoss(ctx context.Context) progressdto.ActionOutput {
	return i.output(ctx, i.svc.NewBoss(ctx))
}

func (i *Interactor) SpendTokens(ctx context.Context, input progressdto.SpendInput) (progressdto.ActionOutput, error) {
	var cost int
	switch input.Amount {
	case "small":
		cost = domain.TokenCostSmall
	case "big":
		cost = domain.TokenCostBig
	default:
		return progressdto.ActionOutput{}, fmt.Errorf("%w: token amount %q (want small|big)", apperrors.ErrInvalidInput, input.Amount)
	}
	if err := i.svc.SpendTokens(ctx, cost); err != nil {
		return progressdto.ActionOutput{}, err
	}
	return i.output(ctx, nil), nil
}

func (i *Interactor) ToggleZen(ctx context.Context) progressdto.ActionOutput {
	return i.output(ctx, i.svc.ToggleZen(ctx))
}

func (i *Interactor) SetAlarm(ctx context.Context, minutes int) (progressdto.ActionOutput, error) {
	if _, err := i.svc.SetAlarm(ctx, minutes); err != nil {
		return progressdto.ActionOutput{}, err
	}
	return i.output(ctx, nil), nil
}

func (i *Interactor) CancelAlarm(ctx context.Context) (progressdto.ActionOutput, error) {
	if err := i.svc.CancelAlarm(ctx); err != nil {
		return progressdto.ActionOutput{}, err
	}
	return i.output(ctx, nil), nil
}

func (i *Interactor) FireAlarm(ctx context.Context) progressdto.ActionOutput {
	return i.output(ctx, i.svc.FireAlarm(ctx))
}

func (i *Interactor) DismissTips(ctx context.Context) progressdto.ActionOutput {
	i.svc.DismissTips(ctx)
	return i.output(ctx, nil)
}

func (i *Interactor) UpdateSettings(ctx context.Context, input progressdto.SettingsInput) progressdto.ActionOutput {
	i.svc.UpdateSettings(ctx, service.SettingsPatch{
		Sound:             input.Sound,
		NotificationSound: input.NotificationSound,
		ButtonSound:       input.ButtonSound,
		AutoDarkMode:      input.AutoDarkMode,
	})
	return i.output(ctx, nil)
}

func (i *Interactor) Stats(ctx context.Context) progressdto.StatsOutput {
	st := i.svc.Stats(ctx)
	s := i.svc.State()
	return progressdto.StatsOutput{
		CompletedToday:    st.CompletedToday,
		AverageFocusSec:   st.AverageFocusSec,
		WeekFocusSec:      st.FocusSinceSec,
		TotalSessions:     st.TotalSessions,
		CompletedSessions: st.CompletedSessions,
		CurrentStreak:     s.CurrentStreak,
		BestStreak:        s.BestStreak,
		BossesDefeated:    s.BossesDefeated,
	}
}

func (i *Interactor) Reindex(ctx context.Context) (int, error) {
	return i.svc.Reindex(ctx)
}

func (i *Interactor) Chronicle(_ context.Context) progressdto.ChronicleOutput {
	c := i.svc.Chronicle()
	return progressdto.ChronicleOutput{
		Level:    c.Level,
		BossName: c.BossName,
		Markdown: fmt.Sprintf("# Chronicle\n\nLevel %d hero facing **%s**.\n\n%s", c.Level, c.BossName, domain.ChronicleMarkdown(c.Story, c.Achievements)),
	}
}

func (i *Interactor) ExportChronicle(ctx context.Context) (string, error) {
	return i.svc.ExportChronicle(ctx)
}
