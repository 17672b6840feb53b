package services

import "time"

// StreakState tracks consecutive calendar days with at least one
// acknowledgment. Count is 0 exactly when LastAcknowledgmentDate is nil.
type StreakState struct {
	Count                  int
	LastAcknowledgmentDate *time.Time
}

// RecordAcknowledgment advances the streak for an acknowledgment performed
// today. A second acknowledgment on the same day is a no-op, the day after
// the last one extends the streak, and any longer gap starts a new streak at
// 1 because today's action itself is day one. The streak is a ratchet:
// un-acknowledging a record never rewinds it.
func RecordAcknowledgment(state StreakState, today time.Time) StreakState {
	todayStart := dateOnly(today)

	if state.LastAcknowledgmentDate != nil {
		last := dateOnly(*state.LastAcknowledgmentDate)
		if sameDay(last, todayStart) {
			return state
		}
		if civilDaysBetween(last, todayStart) == 1 {
			return StreakState{Count: state.Count + 1, LastAcknowledgmentDate: &todayStart}
		}
	}

	return StreakState{Count: 1, LastAcknowledgmentDate: &todayStart}
}
