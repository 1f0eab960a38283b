package gamification

import (
	"time"
)

// Engine ties the pure record transforms to an injected Store. Every
// operation is one synchronous load → mutate → recompute → save cycle;
// the engine holds no state of its own between calls.
type Engine struct {
	Store Store
	// Now is the clock snapshot source, overridable in tests.
	Now func() time.Time
}

func NewEngine(store Store) *Engine {
	return &Engine{Store: store, Now: func() time.Time { return time.Now().UTC() }}
}

// Result is what a tracked action reports back to its caller. XPAwarded is
// the direct award only; achievement rewards are visible on the unlocks and
// in the record's XP log.
type Result struct {
	Record          *Record       `json:"record"`
	XPAwarded       int           `json:"xp_awarded"`
	LeveledUp       bool          `json:"leveled_up"`
	NewAchievements []Achievement `json:"new_achievements"`
}

// load fetches the user's record, creating the default on first read, and
// normalizes it (schema migration plus derived-field repair).
func (e *Engine) load(userID uint) (*Record, error) {
	r, err := e.Store.Load(userID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = NewRecord()
	}
	if err := r.Normalize(e.Now()); err != nil {
		return nil, err
	}
	return r, nil
}

// Record returns the user's current normalized record.
func (e *Engine) Record(userID uint) (*Record, error) {
	return e.load(userID)
}

// run wraps one mutation in the load/save cycle.
func (e *Engine) run(userID uint, mutate func(*Record, time.Time) (int, []Achievement, error)) (*Result, error) {
	r, err := e.load(userID)
	if err != nil {
		return nil, err
	}

	oldLevel := r.Level
	awarded, newly, err := mutate(r, e.Now())
	if err != nil {
		return nil, err
	}

	if err := e.Store.Save(userID, r); err != nil {
		return nil, err
	}

	return &Result{
		Record:          r,
		XPAwarded:       awarded,
		LeveledUp:       r.Level > oldLevel,
		NewAchievements: newly,
	}, nil
}

// AwardXP applies a caller-originated XP delta (client-earned rewards,
// manual grants) and runs the achievement evaluator.
func (e *Engine) AwardXP(userID uint, amount int, reason string, meta map[string]string) (*Result, error) {
	return e.run(userID, func(r *Record, now time.Time) (int, []Achievement, error) {
		res, err := ApplyXP(r, amount, reason, meta, now)
		if err != nil {
			return 0, nil, err
		}
		newly, err := CheckAchievements(r, now)
		return res.XPAwarded, newly, err
	})
}

func (e *Engine) CompleteWorkout(userID uint) (*Result, error) {
	return e.run(userID, func(r *Record, now time.Time) (int, []Achievement, error) {
		return CompleteWorkout(r, now)
	})
}

func (e *Engine) LogSleep(userID uint, quality bool, hours *float64) (*Result, error) {
	return e.run(userID, func(r *Record, now time.Time) (int, []Achievement, error) {
		return LogSleep(r, quality, hours, now)
	})
}

func (e *Engine) LogWater(userID uint, glasses int) (*Result, error) {
	return e.run(userID, func(r *Record, now time.Time) (int, []Achievement, error) {
		return LogWater(r, glasses, now)
	})
}

func (e *Engine) SetWaterGoal(userID uint, goal int) (*Record, error) {
	res, err := e.run(userID, func(r *Record, now time.Time) (int, []Achievement, error) {
		return 0, nil, SetWaterGoal(r, goal)
	})
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

func (e *Engine) LogNutrition(userID uint, protein, carbs, fats int) (*Result, error) {
	return e.run(userID, func(r *Record, now time.Time) (int, []Achievement, error) {
		return LogNutrition(r, protein, carbs, fats, now)
	})
}

func (e *Engine) SetNutritionGoals(userID uint, protein, carbs, fats int) (*Record, error) {
	res, err := e.run(userID, func(r *Record, now time.Time) (int, []Achievement, error) {
		return 0, nil, SetNutritionGoals(r, protein, carbs, fats)
	})
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

func (e *Engine) UpdateDailyGoals(userID uint, completionPercentage int) (*Result, error) {
	return e.run(userID, func(r *Record, now time.Time) (int, []Achievement, error) {
		return UpdateDailyGoals(r, completionPercentage, now)
	})
}

func (e *Engine) TakeSupplement(userID uint) (*Result, error) {
	return e.run(userID, func(r *Record, now time.Time) (int, []Achievement, error) {
		return TakeSupplement(r, now)
	})
}

func (e *Engine) AddNote(userID uint, content string, tag NoteTag) (*Note, error) {
	var note *Note
	_, err := e.run(userID, func(r *Record, now time.Time) (int, []Achievement, error) {
		n, newly, err := AddNote(r, content, tag, now)
		note = n
		return 0, newly, err
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// Notes returns up to limit of the user's notes, newest first.
func (e *Engine) Notes(userID uint, limit int) ([]Note, error) {
	r, err := e.load(userID)
	if err != nil {
		return nil, err
	}
	return RecentNotes(r, limit), nil
}

// Achievements returns the full catalog evaluated against the user's record.
func (e *Engine) Achievements(userID uint) ([]AchievementStatus, error) {
	r, err := e.load(userID)
	if err != nil {
		return nil, err
	}
	return AchievementStatuses(r), nil
}
