package domain

import (
	"fmt"
	"time"
)

type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneNegative Tone = "negative"
)

// Feedback is the qualitative reading of the break balance.
type Feedback struct {
	Message string
	Tone    Tone
	Buff    bool
}

type Buff struct {
	Name        string
	Description string
}

// BalanceFeedback grades a balance in seconds into display tiers.
func BalanceFeedback(balance int) Feedback {
	minutes := floorDiv(balance, 60)
	switch {
	case balance > 20*60:
		return Feedback{Message: fmt.Sprintf("+%d min", minutes), Tone: TonePositive, Buff: true}
	case balance > 0:
		return Feedback{Message: fmt.Sprintf("+%d min", minutes), Tone: TonePositive}
	case balance == 0:
		return Feedback{Message: "Balanced", Tone: ToneNeutral}
	default:
		return Feedback{Message: fmt.Sprintf("%d min", minutes), Tone: ToneNegative}
	}
}

// ActiveBuffs lists the perks shown while the balance is well in credit.
// They are cosmetic and do not change awards.
func ActiveBuffs(balance int) []Buff {
	if balance <= 20*60 {
		return nil
	}
	return []Buff{
		{Name: "Damage +2", Description: "+2 damage per session"},
		{Name: "XP +5%", Description: "+5% experience"},
	}
}

// ForgetSummary describes the session being discarded by Forget.
type ForgetSummary struct {
	FocusMinutes         int
	ExpectedBreakMinutes int
	UsedBreakMinutes     int
	BalanceMinutes       int
}

func SummarizeSession(s ProgressState) ForgetSummary {
	ratio := s.Difficulty.Ratio()
	return ForgetSummary{
		FocusMinutes:         s.SessionFocusSec / 60,
		ExpectedBreakMinutes: s.SessionFocusSec / ratio / 60,
		UsedBreakMinutes:     s.SessionBreakSec / 60,
		BalanceMinutes:       floorDiv(BalanceSeconds(s), 60),
	}
}

func (f ForgetSummary) String() string {
	return fmt.Sprintf("Focus: %d min. Expected break: %d min. Break used: %d min. Balance: %+d min.",
		f.FocusMinutes, f.ExpectedBreakMinutes, f.UsedBreakMinutes, f.BalanceMinutes)
}

// FormatClock renders seconds as MM:SS, or H:MM:SS past an hour. Negative
// values keep their sign.
func FormatClock(sec int) string {
	sign := ""
	if sec < 0 {
		sign = "-"
		sec = -sec
	}
	h, m, s := sec/3600, (sec%3600)/60, sec%60
	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%02d:%02d", sign, m, s)
}

// ShouldUseDark reports whether the dark theme applies at now: between
// 20:00 and 06:00 when auto dark mode is enabled.
func ShouldUseDark(now time.Time, auto bool) bool {
	if !auto {
		return false
	}
	h := now.Hour()
	return h >= 20 || h < 6
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
