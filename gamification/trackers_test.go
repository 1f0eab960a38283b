package gamification

import (
	"errors"
	"testing"
	"time"
)

func TestLogSleepDedup(t *testing.T) {
	r := NewRecord()
	now := time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC)

	if _, _, err := LogSleep(r, true, nil, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := LogSleep(r, false, nil, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r.Sleep.History) != 1 {
		t.Fatalf("expected exactly one entry for the night, got %d", len(r.Sleep.History))
	}
	if r.Sleep.History[0].Quality {
		t.Fatalf("expected the second log to win, entry still marked quality")
	}
	if r.Sleep.History[0].Date != "2026-03-09" {
		t.Fatalf("sleep entry should be keyed by yesterday, got %s", r.Sleep.History[0].Date)
	}
	if r.Sleep.LastNight == nil || r.Sleep.LastNight.Quality {
		t.Fatalf("last_night should reflect the second call")
	}
}

func TestLogSleepQualityXPOnce(t *testing.T) {
	r := NewRecord()
	now := time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC)

	awarded, _, err := LogSleep(r, true, nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != XPGoodSleep {
		t.Fatalf("expected %d xp for first quality log, got %d", XPGoodSleep, awarded)
	}

	awarded, _, err = LogSleep(r, true, nil, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != 0 {
		t.Fatalf("re-logging the same quality night must not double-award, got %d", awarded)
	}
}

func TestLogSleepRejectsBadHours(t *testing.T) {
	r := NewRecord()
	bad := -1.0
	if _, _, err := LogSleep(r, true, &bad, time.Now()); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative hours, got %v", err)
	}
	tooMany := 25.0
	if _, _, err := LogSleep(r, true, &tooMany, time.Now()); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for >24 hours, got %v", err)
	}
}

func TestLogWaterGoalAwardOnce(t *testing.T) {
	r := NewRecord()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	awarded, _, err := LogWater(r, 3, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != 0 {
		t.Fatalf("goal not met yet, expected no award, got %d", awarded)
	}

	awarded, _, err = LogWater(r, DefaultWaterGoal, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != XPWaterGoalMet {
		t.Fatalf("expected %d xp on crossing the goal, got %d", XPWaterGoalMet, awarded)
	}

	awarded, _, err = LogWater(r, DefaultWaterGoal+2, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != 0 {
		t.Fatalf("goal already met today, expected no second award, got %d", awarded)
	}

	if len(r.Water.History) != 1 {
		t.Fatalf("expected one upserted entry for today, got %d", len(r.Water.History))
	}
	if r.Water.History[0].Glasses != DefaultWaterGoal+2 {
		t.Fatalf("expected last write to win, got %d glasses", r.Water.History[0].Glasses)
	}
}

func TestLogWaterNoReawardAfterDip(t *testing.T) {
	r := NewRecord()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	awarded, _, err := LogWater(r, DefaultWaterGoal, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != XPWaterGoalMet {
		t.Fatalf("expected %d xp on first reaching the goal, got %d", XPWaterGoalMet, awarded)
	}

	// correct the count down below the goal, then back over it
	if _, _, err := LogWater(r, 2, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	awarded, _, err = LogWater(r, DefaultWaterGoal+1, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != 0 {
		t.Fatalf("goal xp already paid today, re-crossing must not re-award, got %d", awarded)
	}

	// a fresh day pays again
	awarded, _, err = LogWater(r, DefaultWaterGoal, now.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != XPWaterGoalMet {
		t.Fatalf("expected a new award the next day, got %d", awarded)
	}
}

func TestLogWaterRejectsNegative(t *testing.T) {
	r := NewRecord()
	if _, _, err := LogWater(r, -1, time.Now()); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSetWaterGoal(t *testing.T) {
	r := NewRecord()
	if err := SetWaterGoal(r, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Water.DailyGoal != 10 {
		t.Fatalf("expected goal 10, got %d", r.Water.DailyGoal)
	}
	if err := SetWaterGoal(r, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for zero goal, got %v", err)
	}
}

func TestTakeSupplementStreak(t *testing.T) {
	r := NewRecord()
	day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	if _, _, err := TakeSupplement(r, day1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.SupplementStreak != 1 {
		t.Fatalf("expected streak 1, got %d", r.SupplementStreak)
	}

	// same day is a no-op
	awarded, _, err := TakeSupplement(r, day1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != 0 || r.SupplementStreak != 1 {
		t.Fatalf("same-day intake must be a no-op, got awarded=%d streak=%d", awarded, r.SupplementStreak)
	}

	if _, _, err := TakeSupplement(r, day1.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.SupplementStreak != 2 {
		t.Fatalf("expected streak 2 on consecutive day, got %d", r.SupplementStreak)
	}

	// a missed day resets to 1
	if _, _, err := TakeSupplement(r, day1.AddDate(0, 0, 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.SupplementStreak != 1 {
		t.Fatalf("expected streak reset to 1 after a gap, got %d", r.SupplementStreak)
	}
}

func TestUpdateDailyGoals(t *testing.T) {
	r := NewRecord()
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)

	awarded, _, err := UpdateDailyGoals(r, 60, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != 0 {
		t.Fatalf("60%% completion should not pay the full-day bonus")
	}

	awarded, _, err = UpdateDailyGoals(r, 100, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != XPDailyGoalsFull {
		t.Fatalf("expected %d xp on reaching 100%%, got %d", XPDailyGoalsFull, awarded)
	}
	if r.CurrentStreak != 1 {
		t.Fatalf("a fully completed day should count toward the streak, got %d", r.CurrentStreak)
	}

	// repeating 100% the same day must not pay twice
	awarded, _, err = UpdateDailyGoals(r, 100, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != 0 {
		t.Fatalf("second 100%% update same day must not re-award, got %d", awarded)
	}

	// dropping under 100% and climbing back must not pay twice either
	if _, _, err := UpdateDailyGoals(r, 40, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	awarded, _, err = UpdateDailyGoals(r, 100, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != 0 {
		t.Fatalf("full-day bonus already paid today, got %d", awarded)
	}

	if _, _, err := UpdateDailyGoals(r, 101, now); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for 101%%, got %v", err)
	}
	if _, _, err := UpdateDailyGoals(r, -1, now); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for -1%%, got %v", err)
	}
}

func TestCompleteWorkout(t *testing.T) {
	r := NewRecord()
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	awarded, newly, err := CompleteWorkout(r, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != XPWorkout {
		t.Fatalf("expected %d workout xp, got %d", XPWorkout, awarded)
	}
	if r.TotalWorkoutsCompleted != 1 {
		t.Fatalf("expected workout counter 1, got %d", r.TotalWorkoutsCompleted)
	}
	if r.CurrentStreak != 1 {
		t.Fatalf("expected streak 1 after today's workout, got %d", r.CurrentStreak)
	}

	found := false
	for _, a := range newly {
		if a.ID == "first_workout" {
			found = true
		}
	}
	if !found {
		t.Fatalf("first workout should unlock first_workout, got %v", newly)
	}
}
