package gamification

import (
	"time"
)

// Achievement is a static catalog entry. The catalog is code, not data:
// unlock predicates are pure functions of the record's aggregates, expressed
// as a metric measured against a target so widgets can render progress.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	Category    string `json:"category"`
	XPReward    int    `json:"xp_reward"`
	Target      int    `json:"target"`

	metric func(*Record) int
}

// Eligible reports whether the record currently satisfies the predicate.
func (a Achievement) Eligible(r *Record) bool {
	return a.metric(r) >= a.Target
}

// Catalog lists every achievement in unlock-evaluation order. Order matters:
// when several become eligible in one pass they unlock in this sequence,
// which keeps XP totals reproducible.
var Catalog = []Achievement{
	{
		ID: "first_workout", Name: "First Rep", Emoji: "💪", Category: "Workout",
		Description: "Complete your first workout", XPReward: 25, Target: 1,
		metric: func(r *Record) int { return r.TotalWorkoutsCompleted },
	},
	{
		ID: "workout_10", Name: "Regular", Emoji: "🏋️", Category: "Workout",
		Description: "Complete 10 workouts", XPReward: 50, Target: 10,
		metric: func(r *Record) int { return r.TotalWorkoutsCompleted },
	},
	{
		ID: "workout_50", Name: "Gym Rat", Emoji: "🦾", Category: "Workout",
		Description: "Complete 50 workouts", XPReward: 150, Target: 50,
		metric: func(r *Record) int { return r.TotalWorkoutsCompleted },
	},
	{
		ID: "workout_100", Name: "Iron Will", Emoji: "🛡️", Category: "Workout",
		Description: "Complete 100 workouts", XPReward: 300, Target: 100,
		metric: func(r *Record) int { return r.TotalWorkoutsCompleted },
	},
	{
		ID: "streak_3", Name: "On a Roll", Emoji: "🔥", Category: "Streak",
		Description: "Keep a 3-day streak", XPReward: 30, Target: 3,
		metric: func(r *Record) int { return r.LongestStreak },
	},
	{
		ID: "streak_7", Name: "Week Warrior", Emoji: "⚔️", Category: "Streak",
		Description: "Keep a 7-day streak", XPReward: 75, Target: 7,
		metric: func(r *Record) int { return r.LongestStreak },
	},
	{
		ID: "streak_30", Name: "Habit Master", Emoji: "🧘", Category: "Streak",
		Description: "Keep a 30-day streak", XPReward: 250, Target: 30,
		metric: func(r *Record) int { return r.LongestStreak },
	},
	{
		ID: "hydration_7", Name: "Well Watered", Emoji: "💧", Category: "Hydration",
		Description: "Hit your water goal on 7 days", XPReward: 50, Target: 7,
		metric: func(r *Record) int {
			days := 0
			for _, e := range r.Water.History {
				if e.Glasses >= r.Water.DailyGoal {
					days++
				}
			}
			return days
		},
	},
	{
		ID: "sleep_7", Name: "Well Rested", Emoji: "😴", Category: "Sleep",
		Description: "Log 7 quality nights of sleep", XPReward: 50, Target: 7,
		metric: func(r *Record) int {
			nights := 0
			for _, e := range r.Sleep.History {
				if e.Quality {
					nights++
				}
			}
			return nights
		},
	},
	{
		ID: "nutrition_7", Name: "Macro Minded", Emoji: "🥗", Category: "Nutrition",
		Description: "Log your macros on 7 days", XPReward: 50, Target: 7,
		metric: func(r *Record) int { return len(r.Nutrition.History) },
	},
	{
		ID: "supplement_7", Name: "Stacked", Emoji: "💊", Category: "Supplement",
		Description: "Take your supplements 7 days in a row", XPReward: 40, Target: 7,
		metric: func(r *Record) int { return r.SupplementStreak },
	},
	{
		ID: "perfect_day", Name: "Perfect Day", Emoji: "✅", Category: "Special",
		Description: "Finish every daily goal in one day", XPReward: 30, Target: 1,
		metric: func(r *Record) int {
			days := 0
			for _, e := range r.DailyGoals.History {
				if e.CompletionPercentage >= 100 {
					days++
				}
			}
			if t := r.DailyGoals.Today; t != nil && t.CompletionPercentage >= 100 {
				days++
			}
			return days
		},
	},
	{
		ID: "note_taker", Name: "Journaler", Emoji: "📝", Category: "Special",
		Description: "Write 5 training notes", XPReward: 20, Target: 5,
		metric: func(r *Record) int { return len(r.Notes) },
	},
	{
		ID: "level_5", Name: "Contender", Emoji: "⭐", Category: "Level",
		Description: "Reach level 5", XPReward: 100, Target: 5,
		metric: func(r *Record) int { return r.Level },
	},
	{
		ID: "level_10", Name: "Athlete", Emoji: "🌟", Category: "Level",
		Description: "Reach level 10", XPReward: 250, Target: 10,
		metric: func(r *Record) int { return r.Level },
	},
}

// CheckAchievements unlocks every not-yet-unlocked achievement whose
// predicate the record satisfies, awarding its XP through ApplyXP. The same
// now snapshot stamps every unlock in the pass. Calling it again with no
// intervening state change yields no new unlocks.
func CheckAchievements(r *Record, now time.Time) ([]Achievement, error) {
	var newly []Achievement
	for _, a := range Catalog {
		if r.HasBadge(a.ID) || !a.Eligible(r) {
			continue
		}
		r.UnlockedBadges = append(r.UnlockedBadges, UnlockedBadge{ID: a.ID, UnlockedAt: now})
		if _, err := ApplyXP(r, a.XPReward, "achievement:"+a.ID, nil, now); err != nil {
			return newly, err
		}
		newly = append(newly, a)
	}
	return newly, nil
}

// AchievementStatus pairs a catalog entry with the user's unlock state so
// the dashboard can render locked cards with progress bars.
type AchievementStatus struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	Progress   int        `json:"progress"`
}

// AchievementStatuses evaluates the whole catalog against a record.
func AchievementStatuses(r *Record) []AchievementStatus {
	unlockedAt := make(map[string]time.Time, len(r.UnlockedBadges))
	for _, b := range r.UnlockedBadges {
		unlockedAt[b.ID] = b.UnlockedAt
	}

	statuses := make([]AchievementStatus, 0, len(Catalog))
	for _, a := range Catalog {
		s := AchievementStatus{Achievement: a}
		if at, ok := unlockedAt[a.ID]; ok {
			s.Unlocked = true
			t := at
			s.UnlockedAt = &t
			s.Progress = 100
		} else {
			s.Progress = progressPercent(a.metric(r), a.Target)
		}
		statuses = append(statuses, s)
	}
	return statuses
}

func progressPercent(current, target int) int {
	if target <= 0 {
		return 100
	}
	if current >= target {
		return 100
	}
	if current < 0 {
		return 0
	}
	return current * 100 / target
}
