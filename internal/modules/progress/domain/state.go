package domain

import (
	"fmt"
	"time"
)

const (
	SchemaVersion = 1

	LevelSize        = 100
	ExpDeep          = 10
	ExpMini          = 4
	BaseDamageDeep   = 10
	BaseDamageMini   = 4
	LevelBonusDeep   = 2
	LevelBonusMini   = 1
	ExpPerToken      = 50
	TokenCostSmall   = 1
	TokenCostBig     = 3
	BaseHPMin        = 10
	BaseHPMax        = 30
	HPPerLevelMin    = 8
	HPPerLevelMax    = 12
	BriefThreshold   = 10 * 60
	DeepThreshold    = 25 * 60
	MilestoneSeconds = 10 * 60
	SessionLogLimit  = 100
	DefaultAlarmMin  = 5
	MaxAlarmMinutes  = 180
	DefaultBossName  = "Nameless Shadows"
)

// Kind classifies a committed focus block.
type Kind string

const (
	KindMini Kind = "mini"
	KindDeep Kind = "deep"
)

// AutoState is the auto-registration state of the focus session in progress.
type AutoState string

const (
	AutoNone  AutoState = "none"
	AutoBrief AutoState = "brief"
	AutoDeep  AutoState = "deep"
)

func (a AutoState) Valid() bool {
	switch a {
	case AutoNone, AutoBrief, AutoDeep:
		return true
	}
	return false
}

// Entry is one committed focus block in the history log.
type Entry struct {
	Exp  int  `json:"exp"`
	Dano int  `json:"dano"`
	Tipo Kind `json:"tipo"`
}

// SessionRecord is one line of the session log used for streaks and stats.
type SessionRecord struct {
	ID        string `json:"id,omitempty"`
	Date      string `json:"date"`
	FocusTime int    `json:"focus_time"`
	Completed bool   `json:"completed"`
}

// ProgressState is the single persisted aggregate. JSON keys are the
// on-disk format and must stay stable.
type ProgressState struct {
	SchemaVersion int `json:"schema_version"`

	ExpTotal  int      `json:"exp_total"`
	DanoTotal int      `json:"dano_total"`
	History   History  `json:"history"`
	HPTotal   int      `json:"hp_total"`
	BossName  string   `json:"boss_name"`
	LastLevel int      `json:"last_level"`
	Story     []string `json:"story"`

	TotalFocusSec   int `json:"total_focus_sec"`
	TotalBreakSec   int `json:"total_break_sec"`
	SessionFocusSec int `json:"session_focus_sec"`
	SessionBreakSec int `json:"session_break_sec"`

	ActiveMode Mode `json:"active_mode"`

	AutoRegisteredFocus AutoState `json:"auto_registered_focus"`
	AutoLastIdxFocus    *int      `json:"auto_last_idx_focus"`

	Difficulty  Difficulty `json:"difficulty"`
	TokensSpent int        `json:"tokens_spent"`

	HasSeenTips              bool `json:"has_seen_tips"`
	ZenMode                  bool `json:"zen_mode"`
	SoundEnabled             bool `json:"sound_enabled"`
	NotificationSoundEnabled bool `json:"notification_sound_enabled"`
	ButtonSoundEnabled       bool `json:"button_sound_enabled"`
	AutoDarkMode             bool `json:"auto_dark_mode"`

	SessionHistory  []SessionRecord `json:"session_history"`
	DailySessions   int             `json:"daily_sessions"`
	BestStreak      int             `json:"best_streak"`
	CurrentStreak   int             `json:"current_streak"`
	LastSessionDate *string         `json:"last_session_date"`
	BossesDefeated  int             `json:"bosses_defeated"`

	Achievements []string `json:"achievements"`

	AlarmEnabled   bool       `json:"alarm_enabled"`
	AlarmMinutes   int        `json:"alarm_minutes"`
	AlarmStartTime *time.Time `json:"alarm_start_time"`
}

// Default returns a fresh state. Callers seed the boss before first use.
func Default() ProgressState {
	return ProgressState{
		SchemaVersion:            SchemaVersion,
		History:                  History{},
		HPTotal:                  BaseHPMax,
		BossName:                 DefaultBossName,
		LastLevel:                1,
		Story:                    []string{},
		ActiveMode:               ModeFocus,
		AutoRegisteredFocus:      AutoNone,
		Difficulty:               DifficultyNormal,
		SoundEnabled:             true,
		NotificationSoundEnabled: true,
		ButtonSoundEnabled:       true,
		AutoDarkMode:             true,
		SessionHistory:           []SessionRecord{},
		Achievements:             []string{},
		AlarmMinutes:             DefaultAlarmMin,
	}
}

// Normalize repairs values that a hand-edited or older record may carry.
// It never touches well-formed fields.
func (s *ProgressState) Normalize() {
	if s.HPTotal <= 0 {
		s.HPTotal = BaseHPMax
	}
	if !s.Difficulty.Valid() {
		s.Difficulty = DifficultyNormal
	}
	if !s.ActiveMode.Valid() {
		s.ActiveMode = ModeFocus
	}
	if !s.AutoRegisteredFocus.Valid() || (s.AutoRegisteredFocus == AutoBrief && !s.openBriefValid()) {
		s.AutoRegisteredFocus = AutoNone
		s.AutoLastIdxFocus = nil
	}
	if s.LastLevel < 1 {
		s.LastLevel = 1
	}
	if s.AlarmMinutes <= 0 {
		s.AlarmMinutes = DefaultAlarmMin
	}
	if s.History == nil {
		s.History = History{}
	}
	if s.Story == nil {
		s.Story = []string{}
	}
	if s.SessionHistory == nil {
		s.SessionHistory = []SessionRecord{}
	}
	if s.Achievements == nil {
		s.Achievements = []string{}
	}
	s.SchemaVersion = SchemaVersion
}

// openBriefValid reports whether the open index points at a brief entry.
func (s ProgressState) openBriefValid() bool {
	idx := s.AutoLastIdxFocus
	return idx != nil && *idx >= 0 && *idx < len(s.History) && s.History[*idx].Tipo == KindMini
}

// Clone returns a deep copy safe to hand to renderers.
func (s ProgressState) Clone() ProgressState {
	out := s
	out.History = append(History{}, s.History...)
	out.Story = append([]string{}, s.Story...)
	out.SessionHistory = append([]SessionRecord{}, s.SessionHistory...)
	out.Achievements = append([]string{}, s.Achievements...)
	if s.AutoLastIdxFocus != nil {
		idx := *s.AutoLastIdxFocus
		out.AutoLastIdxFocus = &idx
	}
	if s.LastSessionDate != nil {
		day := *s.LastSessionDate
		out.LastSessionDate = &day
	}
	if s.AlarmStartTime != nil {
		at := *s.AlarmStartTime
		out.AlarmStartTime = &at
	}
	return out
}

// DayKey buckets t into a calendar day in t's location.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Mode is the active side of the session clock. The clock itself always
// loads stopped; only the side is saved.
type Mode string

const (
	ModeFocus Mode = "focus"
	ModeBreak Mode = "break"
)

func ParseMode(raw string) (Mode, error) {
	if m := Mode(raw); m.Valid() {
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (want focus|break)", raw)
}

func (m Mode) Valid() bool {
	return m == ModeFocus || m == ModeBreak
}

func (m Mode) Other() Mode {
	if m == ModeFocus {
		return ModeBreak
	}
	return ModeFocus
}
