package gamification

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// memStore round-trips records through JSON, which doubles as a check that
// the persisted schema survives serialization.
type memStore struct {
	blobs map[uint][]byte
	saves int
}

func newMemStore() *memStore { return &memStore{blobs: make(map[uint][]byte)} }

func (s *memStore) Load(userID uint) (*Record, error) {
	blob, ok := s.blobs[userID]
	if !ok {
		return nil, nil
	}
	var r Record
	if err := json.Unmarshal(blob, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return &r, nil
}

func (s *memStore) Save(userID uint, r *Record) error {
	blob, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	s.blobs[userID] = blob
	s.saves++
	return nil
}

type brokenStore struct{}

func (brokenStore) Load(uint) (*Record, error) {
	return nil, fmt.Errorf("%w: conn refused", ErrStorageUnavailable)
}

func (brokenStore) Save(uint, *Record) error {
	return fmt.Errorf("%w: conn refused", ErrStorageUnavailable)
}

func testEngine(store Store, at time.Time) *Engine {
	e := NewEngine(store)
	e.Now = func() time.Time { return at }
	return e
}

func TestEngineFirstLoadCreatesDefault(t *testing.T) {
	e := testEngine(newMemStore(), testNow)

	r, err := e.Record(1)
	require.NoError(t, err)
	require.Equal(t, 1, r.Level)
	require.Equal(t, 0, r.TotalXP)
	require.Equal(t, DefaultWaterGoal, r.Water.DailyGoal)
	require.Equal(t, SchemaVersion, r.SchemaVersion)
}

func TestEngineAwardXPRejectsNonPositive(t *testing.T) {
	store := newMemStore()
	e := testEngine(store, testNow)

	_, err := e.AwardXP(1, 0, "bonus", nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = e.AwardXP(1, -5, "bonus", nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Zero(t, store.saves, "a rejected award must not persist anything")
}

func TestEngineAwardXPPersistsAndLevels(t *testing.T) {
	store := newMemStore()
	e := testEngine(store, testNow)

	res, err := e.AwardXP(1, 120, "signup_bonus", map[string]string{"source": "promo"})
	require.NoError(t, err)
	require.Equal(t, 120, res.XPAwarded)
	require.Equal(t, 2, res.Record.Level)
	require.True(t, res.LeveledUp)

	// reload sees the persisted state
	r, err := e.Record(1)
	require.NoError(t, err)
	require.Equal(t, 120, r.TotalXP)
	require.Len(t, r.XPLog, 1)
	require.Equal(t, "signup_bonus", r.XPLog[0].Reason)
	require.Equal(t, "promo", r.XPLog[0].Meta["source"])
}

func TestEngineStreakAcrossDays(t *testing.T) {
	store := newMemStore()
	e := NewEngine(store)

	day := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := day.AddDate(0, 0, i)
		e.Now = func() time.Time { return at }
		_, err := e.CompleteWorkout(1)
		require.NoError(t, err)
	}

	r, err := e.Record(1)
	require.NoError(t, err)
	require.Equal(t, 3, r.CurrentStreak)
	require.Equal(t, 3, r.LongestStreak)
	require.Equal(t, 3, r.TotalWorkoutsCompleted)
	require.True(t, r.HasBadge("streak_3"))
}

func TestEngineStoragePropagation(t *testing.T) {
	e := testEngine(brokenStore{}, testNow)

	_, err := e.Record(1)
	require.ErrorIs(t, err, ErrStorageUnavailable)

	_, err = e.CompleteWorkout(1)
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestEngineNotes(t *testing.T) {
	e := testEngine(newMemStore(), testNow)

	_, err := e.AddNote(1, "", NoteWorkout)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = e.AddNote(1, "leg day", NoteTag("gossip"))
	require.ErrorIs(t, err, ErrInvalidArgument)

	for i, content := range []string{"leg day", "rest + stretching", "new PR on bench"} {
		at := testNow.Add(time.Duration(i) * time.Hour)
		e.Now = func() time.Time { return at }
		note, err := e.AddNote(1, content, NoteWorkout)
		require.NoError(t, err)
		require.NotEmpty(t, note.ID)
	}

	notes, err := e.Notes(1, 2)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, "new PR on bench", notes[0].Content, "newest first")
	require.Equal(t, "rest + stretching", notes[1].Content)
}

func TestNormalizeMigratesOldBlob(t *testing.T) {
	// a v1 blob: no water section, stale derived fields, duplicate history
	old := &Record{
		SchemaVersion: 1,
		TotalXP:       250,
		Level:         9, // wrong on purpose
		CurrentStreak: 42,
		LongestStreak: 1,
		History: []DayEntry{
			{Date: "2026-03-09", Complete: true},
			{Date: "2026-03-10", Complete: false},
			{Date: "2026-03-10", Complete: true},
		},
	}

	require.NoError(t, old.Normalize(testNow))

	require.Equal(t, SchemaVersion, old.SchemaVersion)
	require.Equal(t, DefaultWaterGoal, old.Water.DailyGoal)

	info, err := GetLevelInfo(250)
	require.NoError(t, err)
	require.Equal(t, info.Level, old.Level, "level must be recomputed from total xp")

	require.Len(t, old.History, 2, "duplicate day collapsed")
	require.Equal(t, 2, old.CurrentStreak, "derived streaks recomputed from history")
	require.GreaterOrEqual(t, old.LongestStreak, old.CurrentStreak)
}

func TestNormalizeRejectsNegativeXP(t *testing.T) {
	r := NewRecord()
	r.TotalXP = -10
	err := r.Normalize(testNow)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestRecordSchemaRoundTrip(t *testing.T) {
	e := testEngine(newMemStore(), testNow)

	_, err := e.CompleteWorkout(7)
	require.NoError(t, err)
	_, err = e.LogWater(7, 8)
	require.NoError(t, err)
	_, err = e.LogNutrition(7, 150, 200, 60)
	require.NoError(t, err)
	hours := 7.5
	_, err = e.LogSleep(7, true, &hours)
	require.NoError(t, err)

	r, err := e.Record(7)
	require.NoError(t, err)
	require.Equal(t, 1, r.TotalWorkoutsCompleted)
	require.NotNil(t, r.Sleep.LastNight)
	require.NotNil(t, r.Sleep.LastNight.Hours)
	require.Equal(t, 7.5, *r.Sleep.LastNight.Hours)
	require.Equal(t, 1940, r.Nutrition.History[0].Calories)
}
