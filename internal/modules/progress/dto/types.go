package dto

import "time"

// Snapshot carries every derived value a renderer needs. Renderers never
// mutate progress through it.
type Snapshot struct {
	Mode       string
	Running    bool
	Generation uint64

	Level      int
	ExpInLevel int
	ExpTotal   int
	LevelSize  int

	BossName    string
	HPRemaining int
	HPTotal     int
	Defeated    bool

	Tokens          int
	BalanceSeconds  int
	Feedback        string
	FeedbackTone    string
	Buffs           []string
	Difficulty      string
	DifficultyLabel string

	// Clock is the active mode's session time, BalanceClock the signed
	// break balance, both as MM:SS or H:MM:SS.
	Clock        string
	BalanceClock string

	SessionFocusSec int
	SessionBreakSec int
	TotalFocusSec   int
	TotalBreakSec   int
	AutoState       string
	Blocks          int

	ZenMode           bool
	HasSeenTips       bool
	Dark              bool
	SoundEnabled      bool
	NotificationSound bool
	ButtonSound       bool
	AutoDarkMode      bool

	AlarmEnabled  bool
	AlarmMinutes  int
	AlarmDeadline time.Time

	CurrentStreak  int
	BestStreak     int
	DailySessions  int
	BossesDefeated int
	Achievements   []AchievementView
	Story          []string
}

type AchievementView struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Unlocked    bool
}

type Event struct {
	Kind  string
	Title string
	Body  string
}

// ActionOutput is returned by every action: the new snapshot plus the
// notifications the action raised, in order.
type ActionOutput struct {
	Snapshot Snapshot
	Events   []Event
}

type DifficultyInput struct {
	// Difficulty is facil, normal or avanzado; empty or "next" cycles.
	Difficulty string
}

type SpendInput struct {
	// Amount is "small" or "big".
	Amount string
}

type SettingsInput struct {
	Sound             *bool
	NotificationSound *bool
	ButtonSound       *bool
	AutoDarkMode      *bool
}

type StatsOutput struct {
	CompletedToday    int
	AverageFocusSec   int
	WeekFocusSec      int
	TotalSessions     int
	CompletedSessions int
	CurrentStreak     int
	BestStreak        int
	BossesDefeated    int
}

type ChronicleOutput struct {
	Level    int
	BossName string
	Markdown string
}
