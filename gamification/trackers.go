package gamification

import (
	"fmt"
	"time"
)

// Domain trackers. Each mutator follows the same shape: validate input,
// upsert the day-keyed entry, cascade into the XP core and the achievement
// evaluator. They are pure in the spec's sense: no I/O, the caller owns
// persistence. The int return is the directly awarded XP; achievement
// rewards ride on the returned unlocks.

// CompleteWorkout marks today complete in the habit history and bumps the
// lifetime workout counter.
func CompleteWorkout(r *Record, now time.Time) (int, []Achievement, error) {
	today := now.Format(DayLayout)
	r.markDay(today, true)
	r.TotalWorkoutsCompleted++
	if err := r.recomputeDerived(now); err != nil {
		return 0, nil, err
	}

	res, err := ApplyXP(r, XPWorkout, ReasonWorkout, nil, now)
	if err != nil {
		return 0, nil, err
	}
	newly, err := CheckAchievements(r, now)
	return res.XPAwarded, newly, err
}

// LogSleep records last night's sleep, keyed by yesterday's date.
// Re-logging the same night replaces the entry; quality XP is only awarded
// the first time the night flips to quality so a correction cannot
// double-award.
func LogSleep(r *Record, quality bool, hours *float64, now time.Time) (int, []Achievement, error) {
	if hours != nil && (*hours < 0 || *hours > 24) {
		return 0, nil, fmt.Errorf("%w: sleep hours must be between 0 and 24, got %v", ErrInvalidArgument, *hours)
	}

	night := now.AddDate(0, 0, -1).Format(DayLayout)
	entry := SleepEntry{Date: night, Quality: quality, Hours: hours}

	wasQuality := false
	replaced := false
	for i := range r.Sleep.History {
		if r.Sleep.History[i].Date == night {
			wasQuality = r.Sleep.History[i].Quality
			r.Sleep.History[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		r.Sleep.History = append(r.Sleep.History, entry)
	}
	r.Sleep.LastNight = &entry

	awarded := 0
	if quality && !wasQuality {
		res, err := ApplyXP(r, XPGoodSleep, ReasonGoodSleep, nil, now)
		if err != nil {
			return 0, nil, err
		}
		awarded = res.XPAwarded
	}

	newly, err := CheckAchievements(r, now)
	return awarded, newly, err
}

// LogWater sets today's glass count. Goal XP is awarded once per day, when
// the count first reaches the daily goal.
func LogWater(r *Record, glasses int, now time.Time) (int, []Achievement, error) {
	if glasses < 0 {
		return 0, nil, fmt.Errorf("%w: glasses must not be negative, got %d", ErrInvalidArgument, glasses)
	}

	today := now.Format(DayLayout)
	replaced := false
	for i := range r.Water.History {
		if r.Water.History[i].Date == today {
			r.Water.History[i].Glasses = glasses
			replaced = true
			break
		}
	}
	if !replaced {
		r.Water.History = append(r.Water.History, WaterEntry{Date: today, Glasses: glasses})
	}

	awarded := 0
	if glasses >= r.Water.DailyGoal && !xpPaidOn(r, ReasonWaterGoal, today) {
		res, err := ApplyXP(r, XPWaterGoalMet, ReasonWaterGoal, nil, now)
		if err != nil {
			return 0, nil, err
		}
		awarded = res.XPAwarded
	}

	newly, err := CheckAchievements(r, now)
	return awarded, newly, err
}

// SetWaterGoal changes the glasses-per-day target.
func SetWaterGoal(r *Record, goal int) error {
	if goal <= 0 {
		return fmt.Errorf("%w: water goal must be positive, got %d", ErrInvalidArgument, goal)
	}
	r.Water.DailyGoal = goal
	return nil
}

// TakeSupplement records today's supplement intake. Consecutive days grow
// the supplement streak; a second call on the same day is a no-op.
func TakeSupplement(r *Record, now time.Time) (int, []Achievement, error) {
	today := now.Format(DayLayout)
	if r.LastSupplementDate == today {
		return 0, nil, nil
	}

	if r.LastSupplementDate == prevDay(today) {
		r.SupplementStreak++
	} else {
		r.SupplementStreak = 1
	}
	r.LastSupplementDate = today

	res, err := ApplyXP(r, XPSupplement, ReasonSupplement, nil, now)
	if err != nil {
		return 0, nil, err
	}
	newly, err := CheckAchievements(r, now)
	return res.XPAwarded, newly, err
}

// UpdateDailyGoals stores today's goal-completion snapshot. Hitting 100% for
// the first time that day marks the day complete in the habit history and
// pays the completion bonus.
func UpdateDailyGoals(r *Record, completionPercentage int, now time.Time) (int, []Achievement, error) {
	if completionPercentage < 0 || completionPercentage > 100 {
		return 0, nil, fmt.Errorf("%w: completion percentage must be 0-100, got %d", ErrInvalidArgument, completionPercentage)
	}

	today := now.Format(DayLayout)
	entry := DailyGoalEntry{Date: today, CompletionPercentage: completionPercentage}
	r.DailyGoals.Today = &entry
	r.DailyGoals.History = upsertDailyGoal(r.DailyGoals.History, entry)

	awarded := 0
	if completionPercentage >= 100 {
		r.markDay(today, true)
		if err := r.recomputeDerived(now); err != nil {
			return 0, nil, err
		}
		if !xpPaidOn(r, ReasonDailyGoalsFull, today) {
			res, err := ApplyXP(r, XPDailyGoalsFull, ReasonDailyGoalsFull, nil, now)
			if err != nil {
				return 0, nil, err
			}
			awarded = res.XPAwarded
		}
	}

	newly, err := CheckAchievements(r, now)
	return awarded, newly, err
}
