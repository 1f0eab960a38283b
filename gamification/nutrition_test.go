package gamification

import (
	"errors"
	"testing"
	"time"
)

func TestCalculateCalories(t *testing.T) {
	cases := []struct {
		p, c, f int
		want    int
	}{
		{0, 0, 0, 0},
		{150, 200, 60, 1940},
		{100, 0, 0, 400},
		{0, 0, 50, 450},
		{30, 45, 10, 390},
	}
	for _, tc := range cases {
		got, err := CalculateCalories(tc.p, tc.c, tc.f)
		if err != nil {
			t.Fatalf("unexpected error for p=%d c=%d f=%d: %v", tc.p, tc.c, tc.f, err)
		}
		if got != tc.want {
			t.Errorf("p=%d c=%d f=%d: expected %d kcal, got %d", tc.p, tc.c, tc.f, tc.want, got)
		}
	}
}

func TestCalculateCaloriesRejectsNegative(t *testing.T) {
	if _, err := CalculateCalories(-1, 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := CalculateCalories(0, -1, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := CalculateCalories(0, 0, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestLogNutritionUpsert(t *testing.T) {
	r := NewRecord()
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)

	awarded, _, err := LogNutrition(r, 150, 200, 60, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != XPNutritionLog {
		t.Fatalf("expected %d xp for the first log of the day, got %d", XPNutritionLog, awarded)
	}
	if r.Nutrition.History[0].Calories != 1940 {
		t.Fatalf("expected derived calories 1940, got %d", r.Nutrition.History[0].Calories)
	}

	// correction replaces the entry and pays nothing
	awarded, _, err = LogNutrition(r, 160, 180, 50, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awarded != 0 {
		t.Fatalf("re-log should not pay again, got %d", awarded)
	}
	if len(r.Nutrition.History) != 1 {
		t.Fatalf("expected one entry for the day, got %d", len(r.Nutrition.History))
	}
	wantCal := 4*160 + 4*180 + 9*50
	if r.Nutrition.History[0].Calories != wantCal {
		t.Fatalf("expected recomputed calories %d, got %d", wantCal, r.Nutrition.History[0].Calories)
	}
}

func TestSetNutritionGoalsDerivesCalories(t *testing.T) {
	r := NewRecord()
	if err := SetNutritionGoals(r, 150, 200, 60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Nutrition.Goals.Calories != 1940 {
		t.Fatalf("goal calories must come from the macro law, got %d", r.Nutrition.Goals.Calories)
	}
	if err := SetNutritionGoals(r, -10, 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
