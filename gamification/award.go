package gamification

import (
	"fmt"
	"time"
)

// XP amounts for tracked actions.
const (
	XPWorkout        = 50
	XPGoodSleep      = 15
	XPWaterGoalMet   = 10
	XPNutritionLog   = 10
	XPDailyGoalsFull = 25
	XPSupplement     = 5
)

// Reasons attached to engine-originated XP events.
const (
	ReasonWorkout        = "workout_completed"
	ReasonGoodSleep      = "good_sleep"
	ReasonWaterGoal      = "water_goal_met"
	ReasonNutritionLog   = "nutrition_logged"
	ReasonDailyGoalsFull = "daily_goals_complete"
	ReasonSupplement     = "supplement_taken"
)

// AwardResult reports the outcome of a single XP application.
type AwardResult struct {
	Record    *Record `json:"data"`
	XPAwarded int     `json:"xp_awarded"`
}

// ApplyXP adds a positive XP delta to the record, recomputes the level and
// appends an event to the XP log. It does not persist anything; the
// load-mutate-save cycle belongs to the caller. XP is monotonically
// non-decreasing over a record's lifetime, so zero and negative amounts are
// rejected outright.
func ApplyXP(r *Record, amount int, reason string, meta map[string]string, now time.Time) (AwardResult, error) {
	if amount <= 0 {
		return AwardResult{}, fmt.Errorf("%w: xp amount must be positive, got %d", ErrInvalidArgument, amount)
	}

	r.TotalXP += amount
	info, err := GetLevelInfo(r.TotalXP)
	if err != nil {
		return AwardResult{}, err
	}
	r.Level = info.Level

	r.XPLog = append(r.XPLog, XPEvent{
		At:     now,
		Amount: amount,
		Reason: reason,
		Meta:   meta,
	})

	return AwardResult{Record: r, XPAwarded: amount}, nil
}

// xpPaidOn reports whether an XP event with the given reason was already
// logged on the given day. Trackers use it so once-per-day awards survive
// the count dipping back under its threshold and re-crossing it.
func xpPaidOn(r *Record, reason, date string) bool {
	for i := len(r.XPLog) - 1; i >= 0; i-- {
		ev := r.XPLog[i]
		if ev.Reason == reason && ev.At.Format(DayLayout) == date {
			return true
		}
	}
	return false
}
