package domain

import "fmt"

type EventKind string

const (
	EventBossDefeated   EventKind = "boss_defeated"
	EventBreakComplete  EventKind = "break_complete"
	EventFocusMilestone EventKind = "focus_milestone"
	EventAchievement    EventKind = "achievement"
	EventAlarm          EventKind = "alarm"
	EventLevelUp        EventKind = "level_up"
	EventSessionSummary EventKind = "session_summary"
)

// Event is a (title, body) pair handed to the notification sink.
type Event struct {
	Kind  EventKind
	Title string
	Body  string
}

func BossDefeatedEvent(name string) Event {
	return Event{Kind: EventBossDefeated, Title: "Boss defeated!", Body: fmt.Sprintf("%s has fallen. Summon a new boss to keep going.", name)}
}

func BreakCompleteEvent() Event {
	return Event{Kind: EventBreakComplete, Title: "Break complete", Body: "Your break balance is used up. Time to focus again."}
}

func FocusMilestoneEvent(sessionSec int) Event {
	return Event{Kind: EventFocusMilestone, Title: "Still focusing", Body: fmt.Sprintf("%d minutes of focus in this session. Keep it up!", sessionSec/60)}
}

func AchievementEvent(a Achievement) Event {
	return Event{Kind: EventAchievement, Title: "Achievement unlocked: " + a.Name, Body: a.Icon + " " + a.Description}
}

func AlarmEvent(minutes int) Event {
	return Event{Kind: EventAlarm, Title: "Alarm", Body: fmt.Sprintf("%d minutes have passed. Time for a break!", minutes)}
}

func LevelUpEvent(level int) Event {
	return Event{Kind: EventLevelUp, Title: "Level up!", Body: fmt.Sprintf("You reached level %d.", level)}
}

func SessionSummaryEvent(sum ForgetSummary) Event {
	return Event{Kind: EventSessionSummary, Title: "Session forgotten", Body: sum.String()}
}
