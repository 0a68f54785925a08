package domain_test

import (
	"testing"
	"time"

	"flowrpg/internal/modules/progress/domain"
)

func TestUnlockAchievementsInTableOrder(t *testing.T) {
	t.Parallel()
	s := domain.Default()
	today := "2026-03-02"
	for i := 0; i < 5; i++ {
		s.SessionHistory = append(s.SessionHistory, domain.SessionRecord{Date: today, FocusTime: 1500, Completed: true})
	}
	s.ZenMode = true

	got := domain.UnlockAchievements(&s, today)
	ids := []string{}
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	want := []string{"first_session", "five_sessions_day", "zen_master"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
	if again := domain.UnlockAchievements(&s, today); len(again) != 0 {
		t.Fatalf("achievements must never fire twice, got %+v", again)
	}
}

func TestFiveSessionsDayCountsOnlyToday(t *testing.T) {
	t.Parallel()
	s := domain.Default()
	for i := 0; i < 4; i++ {
		s.SessionHistory = append(s.SessionHistory, domain.SessionRecord{Date: "2026-03-01", Completed: true})
	}
	s.SessionHistory = append(s.SessionHistory, domain.SessionRecord{Date: "2026-03-02", Completed: true})
	s.SessionHistory = append(s.SessionHistory, domain.SessionRecord{Date: "2026-03-02", Completed: false})
	for _, a := range domain.UnlockAchievements(&s, "2026-03-02") {
		if a.ID == "five_sessions_day" {
			t.Fatalf("sessions from other days must not count")
		}
	}
}

func TestBossAndLevelAchievements(t *testing.T) {
	t.Parallel()
	s := domain.Default()
	s.History.Append(domain.Entry{Exp: 4, Dano: 4, Tipo: domain.KindMini})
	if got := domain.UnlockAchievements(&s, "2026-03-02"); len(got) != 0 {
		t.Fatalf("a brief entry alone unlocks nothing, got %+v", got)
	}
	s.BossesDefeated = 1
	s.ExpTotal = 400
	got := domain.UnlockAchievements(&s, "2026-03-02")
	if len(got) != 2 || got[0].ID != "first_boss_defeated" || got[1].ID != "level_five" {
		t.Fatalf("unexpected unlocks: %+v", got)
	}
	if a, ok := domain.LookupAchievement("level_five"); !ok || a.Name != "Ascended" {
		t.Fatalf("lookup failed: %+v", a)
	}
}

func TestRecordSessionStreaks(t *testing.T) {
	t.Parallel()
	s := domain.Default()
	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	domain.RecordSession(&s, "a", day1, false)
	if s.CurrentStreak != 0 || s.LastSessionDate != nil {
		t.Fatalf("incomplete sessions never touch streaks")
	}
	domain.RecordSession(&s, "b", day1, true)
	domain.RecordSession(&s, "c", day1.Add(2*time.Hour), true)
	if s.CurrentStreak != 1 || s.DailySessions != 2 {
		t.Fatalf("same day must not extend streak: streak=%d daily=%d", s.CurrentStreak, s.DailySessions)
	}
	domain.RecordSession(&s, "d", day1.AddDate(0, 0, 1), true)
	if s.CurrentStreak != 2 || s.BestStreak != 2 {
		t.Fatalf("consecutive day must extend streak: %d/%d", s.CurrentStreak, s.BestStreak)
	}
	domain.RecordSession(&s, "e", day1.AddDate(0, 0, 4), true)
	if s.CurrentStreak != 1 || s.BestStreak != 2 {
		t.Fatalf("gap must restart streak: %d/%d", s.CurrentStreak, s.BestStreak)
	}
	if len(s.SessionHistory) != 5 || s.SessionHistory[0].ID != "a" {
		t.Fatalf("unexpected session log: %+v", s.SessionHistory)
	}
}

func TestRecordSessionCapsLog(t *testing.T) {
	t.Parallel()
	s := domain.Default()
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < domain.SessionLogLimit+5; i++ {
		s.SessionFocusSec = i
		domain.RecordSession(&s, "", at, false)
	}
	if len(s.SessionHistory) != domain.SessionLogLimit {
		t.Fatalf("expected %d records, got %d", domain.SessionLogLimit, len(s.SessionHistory))
	}
	if s.SessionHistory[0].FocusTime != 5 {
		t.Fatalf("oldest records must be dropped first, got %d", s.SessionHistory[0].FocusTime)
	}
}
