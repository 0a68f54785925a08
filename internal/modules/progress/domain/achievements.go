package domain

import "slices"

// Achievement is one entry of the fixed achievement table.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Unlocked    func(s ProgressState, today string) bool
}

var achievements = []Achievement{
	{
		ID:          "first_session",
		Name:        "First Step",
		Description: "Complete your first focus session",
		Icon:        "🎯",
		Unlocked: func(s ProgressState, _ string) bool {
			return CompletedSessions(s, "") >= 1
		},
	},
	{
		ID:          "five_sessions_day",
		Name:        "Productive Day",
		Description: "Complete 5 sessions in one day",
		Icon:        "🔥",
		Unlocked: func(s ProgressState, today string) bool {
			return CompletedSessions(s, today) >= 5
		},
	},
	{
		ID:          "first_boss_defeated",
		Name:        "First Victory",
		Description: "Defeat your first boss",
		Icon:        "🐉",
		Unlocked: func(s ProgressState, _ string) bool {
			return s.BossesDefeated >= 1
		},
	},
	{
		ID:          "level_five",
		Name:        "Ascended",
		Description: "Reach level 5",
		Icon:        "⭐",
		Unlocked: func(s ProgressState, _ string) bool {
			return Level(s) >= 5
		},
	},
	{
		ID:          "ten_sessions",
		Name:        "Strong Habits",
		Description: "Complete 10 sessions in total",
		Icon:        "💪",
		Unlocked: func(s ProgressState, _ string) bool {
			return CompletedSessions(s, "") >= 10
		},
	},
	{
		ID:          "zen_master",
		Name:        "Zen Master",
		Description: "Use zen mode for the first time",
		Icon:        "🧘",
		Unlocked: func(s ProgressState, _ string) bool {
			return s.ZenMode
		},
	},
}

// Achievements returns the table in evaluation order.
func Achievements() []Achievement {
	return slices.Clone(achievements)
}

func LookupAchievement(id string) (Achievement, bool) {
	for _, a := range achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// UnlockAchievements appends the IDs of newly satisfied achievements and
// returns them in table order. Unlocked IDs never fire again.
func UnlockAchievements(s *ProgressState, today string) []Achievement {
	var unlocked []Achievement
	for _, a := range achievements {
		if slices.Contains(s.Achievements, a.ID) {
			continue
		}
		if a.Unlocked(*s, today) {
			s.Achievements = append(s.Achievements, a.ID)
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

// CompletedSessions counts completed log entries, limited to day when set.
func CompletedSessions(s ProgressState, day string) int {
	n := 0
	for _, rec := range s.SessionHistory {
		if rec.Completed && (day == "" || rec.Date == day) {
			n++
		}
	}
	return n
}
