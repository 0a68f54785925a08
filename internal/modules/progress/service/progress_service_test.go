package service_test

import (
	"context"
	"errors"
	"testing"

	"flowrpg/internal/modules/progress/domain"
	"flowrpg/internal/modules/progress/service"
	apperrors "flowrpg/internal/platform/errors"
)

func TestLoadSeedsAndPersistsWhenMissing(t *testing.T) {
	t.Parallel()
	h := newHarness(nil)
	state := h.svc.State()
	if state.HPTotal != 30 || state.BossName != "Gorwyn" {
		t.Fatalf("unexpected seed: hp=%d boss=%q", state.HPTotal, state.BossName)
	}
	if h.store.saves != 1 || h.store.state == nil {
		t.Fatalf("seed must be persisted immediately")
	}
}

func TestLoadSeedsWhenCorrupt(t *testing.T) {
	t.Parallel()
	h := newHarness(nil)
	h.store.loadErr = apperrors.ErrCorruptState
	h.store.saves = 0
	h.svc.Load(context.Background())
	if h.store.saves != 1 || h.svc.State().ExpTotal != 0 {
		t.Fatalf("corrupt record must be replaced by a seeded default")
	}
}

func TestLoadKeepsSavedProgress(t *testing.T) {
	t.Parallel()
	saved := domain.Default()
	saved.ExpTotal = 250
	saved.BossName = ""
	saved.Difficulty = "legendary"
	h := newHarness(&saved)
	state := h.svc.State()
	if state.ExpTotal != 250 || state.Difficulty != domain.DifficultyNormal || state.BossName != "Gorwyn" {
		t.Fatalf("unexpected loaded state: %+v", state)
	}
	if h.store.saves != 0 {
		t.Fatalf("loading a valid record must not write it back")
	}
}

func TestTenMinutesOfFocusRegistersBriefBlock(t *testing.T) {
	t.Parallel()
	h := newHarness(nil)
	h.svc.Start(context.Background())
	h.run(600)

	state := h.svc.State()
	if len(state.History) != 1 || state.History[0] != (domain.Entry{Exp: 4, Dano: 4, Tipo: domain.KindMini}) {
		t.Fatalf("unexpected history: %+v", state.History)
	}
	if state.ExpTotal != 4 || state.TotalFocusSec != 600 {
		t.Fatalf("unexpected totals: exp=%d focus=%d", state.ExpTotal, state.TotalFocusSec)
	}
	if h.notifier.count(domain.EventFocusMilestone) != 1 {
		t.Fatalf("expected one milestone, got %v", h.notifier.kinds())
	}
	if len(h.index.records) != 1 || h.index.records[0].Completed {
		t.Fatalf("brief award must log an incomplete session: %+v", h.index.records)
	}
	if h.store.state.SessionFocusSec != 600 {
		t.Fatalf("every tick must persist")
	}
}

func TestTwentyFiveMinutesUpgradesInPlace(t *testing.T) {
	t.Parallel()
	h := newHarness(nil)
	h.svc.Start(context.Background())
	h.run(1500)

	state := h.svc.State()
	if len(state.History) != 1 || state.History[0] != (domain.Entry{Exp: 10, Dano: 10, Tipo: domain.KindDeep}) {
		t.Fatalf("unexpected history: %+v", state.History)
	}
	if state.ExpTotal != 10 {
		t.Fatalf("expected exp 10, got %d", state.ExpTotal)
	}
	if !containsAchievement(state, "first_session") || state.CurrentStreak != 1 {
		t.Fatalf("deep session must complete a session: %+v", state.Achievements)
	}
	if h.notifier.count(domain.EventFocusMilestone) != 2 {
		t.Fatalf("expected milestones at 10 and 20 minutes, got %v", h.notifier.kinds())
	}
}

func TestBossDefeatNotifiesAndCounts(t *testing.T) {
	t.Parallel()
	saved := domain.Default()
	saved.HPTotal = 10
	saved.BossName = "Zarbane"
	h := newHarness(&saved)
	h.svc.Start(context.Background())
	h.run(1500)

	state := h.svc.State()
	if domain.HPRemaining(state) != 0 || state.BossesDefeated != 1 {
		t.Fatalf("boss should be down once: hp=%d defeated=%d", domain.HPRemaining(state), state.BossesDefeated)
	}
	if h.notifier.count(domain.EventBossDefeated) != 1 {
		t.Fatalf("expected one boss defeated event, got %v", h.notifier.kinds())
	}
	if !containsAchievement(state, "first_boss_defeated") {
		t.Fatalf("expected first_boss_defeated unlocked")
	}
}

func TestLevelUpWritesStory(t *testing.T) {
	t.Parallel()
	saved := domain.Default()
	saved.ExpTotal = 98
	saved.BossName = "Zarbane"
	saved.HPTotal = 500
	h := newHarness(&saved)
	h.svc.Start(context.Background())
	h.run(600)
	state := h.svc.State()
	if state.LastLevel != 2 || len(state.Story) != 1 || state.Story[0] != "Level 2: The runes answer." {
		t.Fatalf("unexpected story: %+v last=%d", state.Story, state.LastLevel)
	}
	if h.notifier.count(domain.EventLevelUp) != 1 {
		t.Fatalf("expected a level up event, got %v", h.notifier.kinds())
	}
}

func TestStaleTicksAreDropped(t *testing.T) {
	t.Parallel()
	h := newHarness(nil)
	ctx := context.Background()
	gen := h.svc.Start(ctx)
	h.svc.Stop(ctx)
	if _, ok := h.svc.Tick(ctx, gen); ok {
		t.Fatalf("tick from a stopped run must be dropped")
	}
	next := h.svc.Start(ctx)
	if _, ok := h.svc.Tick(ctx, gen); ok {
		t.Fatalf("tick from a superseded run must be dropped")
	}
	if _, ok := h.svc.Tick(ctx, next); !ok {
		t.Fatalf("live tick rejected")
	}
	if h.svc.State().TotalFocusSec != 1 {
		t.Fatalf("expected exactly one applied tick")
	}
}

func TestToggleModeResumesEachMode(t *testing.T) {
	t.Parallel()
	h := newHarness(nil)
	ctx := context.Background()
	h.svc.Start(ctx)
	h.run(90)
	h.svc.ToggleMode(ctx)
	if h.svc.Mode() != domain.ModeBreak || !h.svc.Running() {
		t.Fatalf("toggle must switch to break and keep running")
	}
	h.run(10)
	h.svc.ToggleMode(ctx)
	h.run(5)
	state := h.svc.State()
	if state.SessionFocusSec != 95 || state.SessionBreakSec != 10 {
		t.Fatalf("modes must resume: focus=%d break=%d", state.SessionFocusSec, state.SessionBreakSec)
	}
	if got := domain.BalanceSeconds(state); got != 95/3-10 {
		t.Fatalf("unexpected balance %d", got)
	}
}

func TestActivateStartsOrSwitches(t *testing.T) {
	t.Parallel()
	h := newHarness(nil)
	ctx := context.Background()
	h.svc.Activate(ctx, domain.ModeFocus)
	if !h.svc.Running() || h.svc.Mode() != domain.ModeFocus {
		t.Fatalf("activating the current mode starts the clock")
	}
	h.svc.Activate(ctx, domain.ModeBreak)
	if h.svc.Mode() != domain.ModeBreak || !h.svc.Running() {
		t.Fatalf("activating the other mode switches")
	}
}

func TestBreakCompleteFiresOnExactZero(t *testing.T) {
	t.Parallel()
	saved := domain.Default()
	saved.TotalFocusSec = 90
	saved.TotalBreakSec = 25
	saved.BossName = "Zarbane"
	h := newHarness(&saved)
	ctx := context.Background()
	h.svc.Activate(ctx, domain.ModeBreak)
	h.run(15)
	if h.notifier.count(domain.EventBreakComplete) != 1 {
		t.Fatalf("expected one break complete event, got %v", h.notifier.kinds())
	}
	if got := domain.BalanceSeconds(h.svc.State()); got != -10 {
		t.Fatalf("expected debt -10, got %d", got)
	}
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	t.Parallel()
	h := newHarness(nil)
	h.store.saveErr = errors.New("disk full")
	h.svc.Start(context.Background())
	h.run(3)
	if h.svc.State().TotalFocusSec != 3 {
		t.Fatalf("in-memory state must stay authoritative")
	}
}

func TestZenUnlocksAchievementOnce(t *testing.T) {
	t.Parallel()
	h := newHarness(nil)
	ctx := context.Background()
	h.svc.ToggleZen(ctx)
	h.svc.ToggleZen(ctx)
	h.svc.ToggleZen(ctx)
	if h.notifier.count(domain.EventAchievement) != 1 {
		t.Fatalf("expected one achievement event, got %v", h.notifier.kinds())
	}
	if !h.svc.State().ZenMode {
		t.Fatalf("zen mode should be on after three toggles")
	}
}

func TestSoundFlagFollowsSettings(t *testing.T) {
	t.Parallel()
	h := newHarness(nil)
	ctx := context.Background()
	off := false
	h.svc.UpdateSettings(ctx, service.SettingsPatch{NotificationSound: &off})
	h.svc.ToggleZen(ctx)
	if len(h.notifier.sounds) != 1 || h.notifier.sounds[0] {
		t.Fatalf("notification sound disabled must mute events: %v", h.notifier.sounds)
	}
}

func TestButtonCueFollowsBothSoundSwitches(t *testing.T) {
	t.Parallel()
	h := newHarness(nil)
	ctx := context.Background()
	press := func() {
		h.svc.Start(ctx)
		h.svc.Stop(ctx)
		h.svc.ToggleZen(ctx)
	}

	press()
	if h.notifier.cues != 3 {
		t.Fatalf("expected a cue on start, stop and zen, got %d", h.notifier.cues)
	}

	off, on := false, true
	h.notifier.cues = 0
	h.svc.UpdateSettings(ctx, service.SettingsPatch{ButtonSound: &off})
	press()
	if h.notifier.cues != 0 {
		t.Fatalf("button sound off must suppress cues, got %d", h.notifier.cues)
	}

	h.svc.UpdateSettings(ctx, service.SettingsPatch{ButtonSound: &on, Sound: &off})
	press()
	if h.notifier.cues != 0 {
		t.Fatalf("master sound off must suppress cues, got %d", h.notifier.cues)
	}
}

func TestFocusAwardPlaysCue(t *testing.T) {
	t.Parallel()
	h := newHarness(nil)
	h.svc.Start(context.Background())
	h.notifier.cues = 0
	h.run(domain.BriefThreshold)
	if h.notifier.cues != 1 {
		t.Fatalf("expected one cue for the brief award, got %d", h.notifier.cues)
	}
}

func TestModeSurvivesReload(t *testing.T) {
	t.Parallel()
	h := newHarness(nil)
	ctx := context.Background()
	h.svc.ToggleMode(ctx)
	h.svc.Stop(ctx)
	if h.store.state == nil || h.store.state.ActiveMode != domain.ModeBreak {
		t.Fatalf("toggled mode must be saved, got %+v", h.store.state)
	}

	reloaded := newHarness(h.store.state)
	if reloaded.svc.Mode() != domain.ModeBreak || reloaded.svc.Running() {
		t.Fatalf("expected stopped break clock after reload, mode=%s running=%t", reloaded.svc.Mode(), reloaded.svc.Running())
	}

	reloaded.svc.Reset(ctx)
	if reloaded.svc.Mode() != domain.ModeFocus {
		t.Fatalf("reset returns to focus")
	}
}

func containsAchievement(s domain.ProgressState, id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}
