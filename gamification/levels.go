package gamification

import (
	"fmt"
	"math"
)

// LevelInfo describes where a cumulative XP total sits on the level curve.
type LevelInfo struct {
	Level          int    `json:"level"`
	Badge          string `json:"badge"`
	XPIntoLevel    int    `json:"xp_into_level"`
	XPForNextLevel int    `json:"xp_for_next_level"`
}

// levelBadges maps level milestones to badge labels. Levels beyond the last
// entry keep the top-tier badge.
var levelBadges = []struct {
	minLevel int
	badge    string
}{
	{1, "🌱 Rookie"},
	{5, "💪 Contender"},
	{10, "🏃 Athlete"},
	{20, "🏆 Champion"},
	{35, "⚡ Elite"},
	{50, "🐐 Legend"},
}

// xpToAdvance returns the XP cost to move from the given level to the next.
func xpToAdvance(level int) int {
	return int(100 * math.Pow(float64(level), 1.5))
}

// GetLevelInfo maps a lifetime XP total to a level and badge. Level 1 starts
// at zero XP and the curve is non-decreasing, so level is always derivable
// from TotalXP alone.
func GetLevelInfo(totalXP int) (LevelInfo, error) {
	if totalXP < 0 {
		return LevelInfo{}, fmt.Errorf("%w: total xp must not be negative, got %d", ErrInvalidArgument, totalXP)
	}

	level := 1
	remaining := totalXP
	for {
		need := xpToAdvance(level)
		if remaining < need {
			break
		}
		remaining -= need
		level++
	}

	return LevelInfo{
		Level:          level,
		Badge:          badgeForLevel(level),
		XPIntoLevel:    remaining,
		XPForNextLevel: xpToAdvance(level),
	}, nil
}

func badgeForLevel(level int) string {
	badge := levelBadges[0].badge
	for _, b := range levelBadges {
		if level >= b.minLevel {
			badge = b.badge
		}
	}
	return badge
}
