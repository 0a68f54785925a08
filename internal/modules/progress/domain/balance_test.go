package domain_test

import (
	"testing"
	"time"

	"flowrpg/internal/modules/progress/domain"
)

func TestBalanceFeedbackTiers(t *testing.T) {
	t.Parallel()
	cases := []struct {
		balance int
		message string
		tone    domain.Tone
		buff    bool
	}{
		{21 * 60, "+21 min", domain.TonePositive, true},
		{20 * 60, "+20 min", domain.TonePositive, false},
		{90, "+1 min", domain.TonePositive, false},
		{0, "Balanced", domain.ToneNeutral, false},
		{-30, "-1 min", domain.ToneNegative, false},
		{-15 * 60, "-15 min", domain.ToneNegative, false},
	}
	for _, tc := range cases {
		got := domain.BalanceFeedback(tc.balance)
		if got.Message != tc.message || got.Tone != tc.tone || got.Buff != tc.buff {
			t.Fatalf("balance %d: unexpected feedback %+v", tc.balance, got)
		}
	}
	if len(domain.ActiveBuffs(21*60)) != 2 || domain.ActiveBuffs(60) != nil {
		t.Fatalf("buffs only apply past +20 min")
	}
}

func TestSummarizeSession(t *testing.T) {
	t.Parallel()
	s := domain.Default()
	s.SessionFocusSec = 45 * 60
	s.SessionBreakSec = 5 * 60
	s.TotalFocusSec = 45 * 60
	s.TotalBreakSec = 5 * 60
	sum := domain.SummarizeSession(s)
	want := domain.ForgetSummary{FocusMinutes: 45, ExpectedBreakMinutes: 15, UsedBreakMinutes: 5, BalanceMinutes: 10}
	if sum != want {
		t.Fatalf("expected %+v, got %+v", want, sum)
	}
	if sum.String() != "Focus: 45 min. Expected break: 15 min. Break used: 5 min. Balance: +10 min." {
		t.Fatalf("unexpected summary text %q", sum.String())
	}
}

func TestFormatClock(t *testing.T) {
	t.Parallel()
	if got := domain.FormatClock(65); got != "01:05" {
		t.Fatalf("got %q", got)
	}
	if got := domain.FormatClock(3725); got != "1:02:05" {
		t.Fatalf("got %q", got)
	}
	if got := domain.FormatClock(-90); got != "-01:30" {
		t.Fatalf("got %q", got)
	}
}

func TestShouldUseDark(t *testing.T) {
	t.Parallel()
	at := func(h int) time.Time { return time.Date(2026, 3, 1, h, 0, 0, 0, time.UTC) }
	if !domain.ShouldUseDark(at(21), true) || !domain.ShouldUseDark(at(5), true) {
		t.Fatalf("night hours must be dark")
	}
	if domain.ShouldUseDark(at(12), true) || domain.ShouldUseDark(at(23), false) {
		t.Fatalf("day hours or disabled auto mode must be light")
	}
}
