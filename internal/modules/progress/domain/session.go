package domain

import "time"

// RecordSession appends a session log entry and updates streaks.
//
// A completed session on a new calendar day extends the streak when the
// previous completed day was yesterday and restarts it at 1 otherwise.
// Incomplete sessions are logged but never touch streaks.
func RecordSession(s *ProgressState, id string, at time.Time, completed bool) SessionRecord {
	today := DayKey(at)
	rec := SessionRecord{ID: id, Date: today, FocusTime: s.SessionFocusSec, Completed: completed}
	s.SessionHistory = append(s.SessionHistory, rec)
	if over := len(s.SessionHistory) - SessionLogLimit; over > 0 {
		s.SessionHistory = append([]SessionRecord(nil), s.SessionHistory[over:]...)
	}
	if !completed {
		return rec
	}
	s.DailySessions = CompletedSessions(*s, today)
	switch {
	case s.LastSessionDate != nil && *s.LastSessionDate == today:
	case s.LastSessionDate != nil && *s.LastSessionDate == DayKey(at.AddDate(0, 0, -1)):
		s.CurrentStreak++
	default:
		s.CurrentStreak = 1
	}
	if s.CurrentStreak == 0 {
		s.CurrentStreak = 1
	}
	s.BestStreak = max(s.BestStreak, s.CurrentStreak)
	s.LastSessionDate = &today
	return rec
}

// SessionStats aggregates the session log for the statistics panel.
type SessionStats struct {
	CompletedToday    int
	AverageFocusSec   int
	FocusSinceSec     int
	TotalSessions     int
	CompletedSessions int
}

// SummarizeLog computes SessionStats straight from the in-state log. Only
// completed sessions feed the averages, since a deep session is also logged
// once as brief on its way up.
func SummarizeLog(s ProgressState, today, since string) SessionStats {
	st := SessionStats{TotalSessions: len(s.SessionHistory)}
	total := 0
	for _, rec := range s.SessionHistory {
		if !rec.Completed {
			continue
		}
		if rec.Date >= since {
			st.FocusSinceSec += rec.FocusTime
		}
		st.CompletedSessions++
		total += rec.FocusTime
		if rec.Date == today {
			st.CompletedToday++
		}
	}
	if st.CompletedSessions > 0 {
		st.AverageFocusSec = total / st.CompletedSessions
	}
	return st
}
