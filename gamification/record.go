package gamification

import (
	"fmt"
	"sort"
	"time"
)

// SchemaVersion is the current persisted-record schema. Loads of older blobs
// are migrated forward in Normalize.
const SchemaVersion = 2

// DayLayout is the calendar-day key format used throughout the record.
const DayLayout = "2006-01-02"

// DayEntry marks whether the tracked daily habit was completed on a day.
type DayEntry struct {
	Date     string `json:"date"`
	Complete bool   `json:"complete"`
}

// XPEvent is one append-only entry in the XP activity log.
type XPEvent struct {
	At     time.Time         `json:"at"`
	Amount int               `json:"amount"`
	Reason string            `json:"reason"`
	Meta   map[string]string `json:"meta,omitempty"`
}

// UnlockedBadge records a single achievement unlock. Once present it is
// never removed or re-dated.
type UnlockedBadge struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_date"`
}

type SleepEntry struct {
	Date    string   `json:"date"`
	Quality bool     `json:"quality"`
	Hours   *float64 `json:"hours,omitempty"`
}

type SleepSection struct {
	LastNight *SleepEntry  `json:"last_night"`
	History   []SleepEntry `json:"history"`
}

type WaterEntry struct {
	Date    string `json:"date"`
	Glasses int    `json:"glasses"`
}

type WaterSection struct {
	DailyGoal int          `json:"daily_goal"`
	History   []WaterEntry `json:"history"`
}

type MacroGoals struct {
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
	Calories int `json:"calories"`
}

type MacroEntry struct {
	Date     string `json:"date"`
	Protein  int    `json:"protein"`
	Carbs    int    `json:"carbs"`
	Fats     int    `json:"fats"`
	Calories int    `json:"calories"`
}

type NutritionSection struct {
	Goals   MacroGoals   `json:"goals"`
	History []MacroEntry `json:"history"`
}

type DailyGoalEntry struct {
	Date                 string `json:"date"`
	CompletionPercentage int    `json:"completion_percentage"`
}

type DailyGoalsSection struct {
	Today   *DailyGoalEntry  `json:"today"`
	History []DailyGoalEntry `json:"history"`
}

// Record is the single persisted gamification blob, one per user. Field
// names and types are the serialization schema and must stay stable across
// versions for backward-compatible loads.
type Record struct {
	SchemaVersion int `json:"schema_version"`

	TotalXP int `json:"total_xp"`
	// Level is derived from TotalXP on every change, never set directly.
	Level int `json:"level"`

	// CurrentStreak and LongestStreak are derived from History.
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	History       []DayEntry `json:"history"`

	XPLog          []XPEvent       `json:"xp_log"`
	UnlockedBadges []UnlockedBadge `json:"unlocked_badges"`

	TotalWorkoutsCompleted int    `json:"total_workouts_completed"`
	SupplementStreak       int    `json:"supplement_streak"`
	LastSupplementDate     string `json:"last_supplement_date,omitempty"`

	Sleep      SleepSection      `json:"sleep"`
	Water      WaterSection      `json:"water"`
	Nutrition  NutritionSection  `json:"nutrition"`
	DailyGoals DailyGoalsSection `json:"daily_goals"`
	Notes      []Note            `json:"notes"`
}

// DefaultWaterGoal is the glasses-per-day goal assigned to new records.
const DefaultWaterGoal = 8

// NewRecord returns a zero-valued record with current-schema defaults.
func NewRecord() *Record {
	return &Record{
		SchemaVersion:  SchemaVersion,
		Level:          1,
		History:        []DayEntry{},
		XPLog:          []XPEvent{},
		UnlockedBadges: []UnlockedBadge{},
		Water:          WaterSection{DailyGoal: DefaultWaterGoal, History: []WaterEntry{}},
		Sleep:          SleepSection{History: []SleepEntry{}},
		Nutrition:      NutritionSection{History: []MacroEntry{}},
		DailyGoals:     DailyGoalsSection{History: []DailyGoalEntry{}},
		Notes:          []Note{},
	}
}

// HasBadge reports whether the achievement id has already been unlocked.
func (r *Record) HasBadge(id string) bool {
	for _, b := range r.UnlockedBadges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// Normalize migrates an older-schema record forward and repairs derived
// fields by recomputing them from raw history. Duplicate date keys are
// collapsed last-write-wins. It fails only on data that cannot be repaired,
// such as unparseable dates.
func (r *Record) Normalize(now time.Time) error {
	if r.SchemaVersion < 2 {
		// v0/v1 blobs predate the water/nutrition/daily-goal sections and
		// relied on missing-field defaults scattered across callers.
		if r.Water.DailyGoal <= 0 {
			r.Water.DailyGoal = DefaultWaterGoal
		}
		r.SchemaVersion = SchemaVersion
	}

	history, err := dedupeHistory(r.History)
	if err != nil {
		return err
	}
	r.History = history

	today := now.Format(DayLayout)
	streaks, err := RecomputeStreaks(r.History, today)
	if err != nil {
		return err
	}
	r.CurrentStreak = streaks.Current
	r.LongestStreak = streaks.Longest

	info, err := GetLevelInfo(r.TotalXP)
	if err != nil {
		return fmt.Errorf("%w: negative total xp %d", ErrInvalidState, r.TotalXP)
	}
	r.Level = info.Level

	// Roll a stale daily-goal snapshot into history.
	if t := r.DailyGoals.Today; t != nil && t.Date != today {
		r.DailyGoals.History = upsertDailyGoal(r.DailyGoals.History, *t)
		r.DailyGoals.Today = nil
	}

	return nil
}

// dedupeHistory collapses duplicate date keys last-write-wins and returns
// the entries sorted by date ascending.
func dedupeHistory(history []DayEntry) ([]DayEntry, error) {
	byDay := make(map[string]bool, len(history))
	for _, e := range history {
		if _, err := time.Parse(DayLayout, e.Date); err != nil {
			return nil, fmt.Errorf("%w: malformed history date %q", ErrInvalidState, e.Date)
		}
		byDay[e.Date] = e.Complete
	}

	out := make([]DayEntry, 0, len(byDay))
	for date, complete := range byDay {
		out = append(out, DayEntry{Date: date, Complete: complete})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// markDay upserts the completion flag for one calendar day.
func (r *Record) markDay(date string, complete bool) {
	for i := range r.History {
		if r.History[i].Date == date {
			r.History[i].Complete = complete
			return
		}
	}
	r.History = append(r.History, DayEntry{Date: date, Complete: complete})
	sort.Slice(r.History, func(i, j int) bool { return r.History[i].Date < r.History[j].Date })
}

// recomputeDerived refreshes streaks after a history mutation.
func (r *Record) recomputeDerived(now time.Time) error {
	streaks, err := RecomputeStreaks(r.History, now.Format(DayLayout))
	if err != nil {
		return err
	}
	r.CurrentStreak = streaks.Current
	r.LongestStreak = streaks.Longest
	return nil
}

func upsertDailyGoal(history []DailyGoalEntry, entry DailyGoalEntry) []DailyGoalEntry {
	for i := range history {
		if history[i].Date == entry.Date {
			history[i] = entry
			return history
		}
	}
	return append(history, entry)
}
