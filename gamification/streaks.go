package gamification

import (
	"fmt"
	"time"
)

// StreakInfo is the derived pair of streak counters.
type StreakInfo struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}

// RecomputeStreaks derives both streak counters from the day-indexed
// completion history as of today.
//
// Grace policy: the current streak counts consecutive complete days ending
// at today or yesterday, so a streak survives until the end of the day after
// the last completed day. An explicit complete=false entry for today breaks
// it immediately; a gap older than yesterday breaks it. Duplicate dates are
// collapsed last-write-wins.
func RecomputeStreaks(history []DayEntry, today string) (StreakInfo, error) {
	if _, err := time.Parse(DayLayout, today); err != nil {
		return StreakInfo{}, fmt.Errorf("%w: malformed date %q", ErrInvalidArgument, today)
	}

	deduped, err := dedupeHistory(history)
	if err != nil {
		return StreakInfo{}, err
	}

	byDay := make(map[string]bool, len(deduped))
	for _, e := range deduped {
		byDay[e.Date] = e.Complete
	}

	longest := 0
	run := 0
	prev := ""
	for _, e := range deduped {
		if !e.Complete {
			run = 0
			prev = ""
			continue
		}
		if prev != "" && prevDay(e.Date) == prev {
			run++
		} else {
			run = 1
		}
		prev = e.Date
		if run > longest {
			longest = run
		}
	}

	current := 0
	anchor := ""
	if complete, ok := byDay[today]; ok {
		if complete {
			anchor = today
		}
		// an explicit incomplete entry for today breaks the streak now
	} else if byDay[prevDay(today)] {
		anchor = prevDay(today)
	}
	for day := anchor; day != "" && byDay[day]; day = prevDay(day) {
		current++
	}

	if current > longest {
		// cannot happen with a consistent history, but the invariant
		// longest >= current must hold on every output
		longest = current
	}

	return StreakInfo{Current: current, Longest: longest}, nil
}

// prevDay returns the calendar day before a DayLayout-formatted date.
func prevDay(date string) string {
	t, err := time.Parse(DayLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DayLayout)
}
