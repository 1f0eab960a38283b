package gamification

import (
	"fmt"
	"time"
)

// CalculateCalories applies the 4/4/9 kcal-per-gram macro law. Calories are
// always derived from macros, never stored independently.
func CalculateCalories(protein, carbs, fats int) (int, error) {
	if protein < 0 || carbs < 0 || fats < 0 {
		return 0, fmt.Errorf("%w: macro grams must not be negative (p=%d c=%d f=%d)", ErrInvalidArgument, protein, carbs, fats)
	}
	return 4*protein + 4*carbs + 9*fats, nil
}

// LogNutrition upserts today's macro entry. Logging XP is paid once per day,
// on the first entry; corrections just replace the numbers.
func LogNutrition(r *Record, protein, carbs, fats int, now time.Time) (int, []Achievement, error) {
	calories, err := CalculateCalories(protein, carbs, fats)
	if err != nil {
		return 0, nil, err
	}

	today := now.Format(DayLayout)
	entry := MacroEntry{Date: today, Protein: protein, Carbs: carbs, Fats: fats, Calories: calories}

	replaced := false
	for i := range r.Nutrition.History {
		if r.Nutrition.History[i].Date == today {
			r.Nutrition.History[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		r.Nutrition.History = append(r.Nutrition.History, entry)
	}

	awarded := 0
	if !replaced {
		res, err := ApplyXP(r, XPNutritionLog, ReasonNutritionLog, nil, now)
		if err != nil {
			return 0, nil, err
		}
		awarded = res.XPAwarded
	}

	newly, err := CheckAchievements(r, now)
	return awarded, newly, err
}

// SetNutritionGoals replaces the macro targets. The calorie target is
// recomputed from the macros, ignoring any caller-supplied value.
func SetNutritionGoals(r *Record, protein, carbs, fats int) error {
	calories, err := CalculateCalories(protein, carbs, fats)
	if err != nil {
		return err
	}
	r.Nutrition.Goals = MacroGoals{Protein: protein, Carbs: carbs, Fats: fats, Calories: calories}
	return nil
}
