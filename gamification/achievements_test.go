package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestCatalogSanity(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range Catalog {
		require.NotEmpty(t, a.ID)
		require.False(t, seen[a.ID], "duplicate achievement id %s", a.ID)
		seen[a.ID] = true
		require.Positivef(t, a.XPReward, "achievement %s must have a positive xp reward", a.ID)
		require.Positivef(t, a.Target, "achievement %s must have a positive target", a.ID)
		require.NotNil(t, a.metric, "achievement %s has no metric", a.ID)
	}
}

func TestCheckAchievementsIdempotent(t *testing.T) {
	r := NewRecord()
	r.TotalWorkoutsCompleted = 12

	first, err := CheckAchievements(r, testNow)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := CheckAchievements(r, testNow)
	require.NoError(t, err)
	require.Empty(t, second, "second evaluation with unchanged state must unlock nothing")
}

func TestCheckAchievementsXPConservation(t *testing.T) {
	r := NewRecord()
	r.TotalWorkoutsCompleted = 1
	before := r.TotalXP

	newly, err := CheckAchievements(r, testNow)
	require.NoError(t, err)
	require.Len(t, newly, 1)
	require.Equal(t, "first_workout", newly[0].ID)
	require.Equal(t, before+newly[0].XPReward, r.TotalXP)

	// exactly one badge entry, never duplicated on re-evaluation
	_, err = CheckAchievements(r, testNow)
	require.NoError(t, err)
	count := 0
	for _, b := range r.UnlockedBadges {
		if b.ID == "first_workout" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestCheckAchievementsCatalogOrder(t *testing.T) {
	r := NewRecord()
	r.TotalWorkoutsCompleted = 60

	newly, err := CheckAchievements(r, testNow)
	require.NoError(t, err)
	require.Equal(t, []string{"first_workout", "workout_10", "workout_50"},
		[]string{newly[0].ID, newly[1].ID, newly[2].ID})
}

func TestSevenDayStreakAchievement(t *testing.T) {
	r := NewRecord()
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		r.markDay(start.AddDate(0, 0, i).Format(DayLayout), true)
	}
	day6 := start.AddDate(0, 0, 5)
	require.NoError(t, r.recomputeDerived(day6))
	require.Equal(t, 6, r.CurrentStreak)

	newly, err := CheckAchievements(r, day6)
	require.NoError(t, err)
	for _, a := range newly {
		require.NotEqual(t, "streak_7", a.ID, "6-day streak must not unlock the 7-day badge")
	}

	day7 := start.AddDate(0, 0, 6)
	r.markDay(day7.Format(DayLayout), true)
	require.NoError(t, r.recomputeDerived(day7))
	require.Equal(t, 7, r.CurrentStreak)

	before := r.TotalXP
	newly, err = CheckAchievements(r, day7)
	require.NoError(t, err)
	ids := make([]string, 0, len(newly))
	total := 0
	for _, a := range newly {
		ids = append(ids, a.ID)
		total += a.XPReward
	}
	require.Contains(t, ids, "streak_7")
	require.Equal(t, before+total, r.TotalXP)
}

func TestAchievementStatusesProgress(t *testing.T) {
	r := NewRecord()
	r.TotalWorkoutsCompleted = 5

	statuses := AchievementStatuses(r)
	require.Len(t, statuses, len(Catalog))

	byID := make(map[string]AchievementStatus)
	for _, s := range statuses {
		byID[s.ID] = s
	}

	require.False(t, byID["workout_10"].Unlocked)
	require.Equal(t, 50, byID["workout_10"].Progress)

	newly, err := CheckAchievements(r, testNow)
	require.NoError(t, err)
	require.NotEmpty(t, newly)

	statuses = AchievementStatuses(r)
	for _, s := range statuses {
		if s.ID == "first_workout" {
			require.True(t, s.Unlocked)
			require.NotNil(t, s.UnlockedAt)
			require.Equal(t, 100, s.Progress)
		}
	}
}

func TestCheckAchievementsSingleNowSnapshot(t *testing.T) {
	r := NewRecord()
	r.TotalWorkoutsCompleted = 60

	_, err := CheckAchievements(r, testNow)
	require.NoError(t, err)
	for _, b := range r.UnlockedBadges {
		require.Equal(t, testNow, b.UnlockedAt, "every unlock in one pass shares the now snapshot")
	}
}
