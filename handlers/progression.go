// handlers/progression.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fitquest/gamification"
	"fitquest/middleware"
)

type AwardXPRequest struct {
	Amount int               `json:"amount"`
	Reason string            `json:"reason"`
	Meta   map[string]string `json:"meta,omitempty"`
}

// AwardXP applies a client-originated XP grant (e.g. finishing an in-app
// challenge) and reports any resulting level-ups and unlocks.
func AwardXP(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req AwardXPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Amount <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "XP amount must be positive"})
	}
	if req.Reason == "" {
		req.Reason = "manual"
	}

	res, err := getEngine().AwardXP(userID, req.Amount, req.Reason, req.Meta)
	if err != nil {
		return engineError(c, err)
	}

	publishResult(userID, res)

	info, err := gamification.GetLevelInfo(res.Record.TotalXP)
	if err != nil {
		return engineError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"xp_awarded":       res.XPAwarded,
		"reason":           req.Reason,
		"new_level":        res.Record.Level,
		"leveled_up":       res.LeveledUp,
		"current_xp":       info.XPIntoLevel,
		"xp_to_next_level": info.XPForNextLevel,
		"badge":            info.Badge,
		"new_achievements": res.NewAchievements,
	})
}

// GetProgression returns the user's full progression snapshot.
func GetProgression(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	record, err := getEngine().Record(userID)
	if err != nil {
		return engineError(c, err)
	}

	info, err := gamification.GetLevelInfo(record.TotalXP)
	if err != nil {
		return engineError(c, err)
	}

	progress := 0.0
	if info.XPForNextLevel > 0 {
		progress = float64(info.XPIntoLevel) / float64(info.XPForNextLevel) * 100
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"level":             info.Level,
		"badge":             info.Badge,
		"total_xp":          record.TotalXP,
		"xp_into_level":     info.XPIntoLevel,
		"xp_to_next_level":  info.XPForNextLevel,
		"progress_percent":  progress,
		"current_streak":    record.CurrentStreak,
		"longest_streak":    record.LongestStreak,
		"total_workouts":    record.TotalWorkoutsCompleted,
		"supplement_streak": record.SupplementStreak,
		"unlocked_badges":   record.UnlockedBadges,
	})
}

// GetAchievements returns the full catalog evaluated against the user's
// record so the dashboard can render unlocked cards and progress bars.
func GetAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	statuses, err := getEngine().Achievements(userID)
	if err != nil {
		return engineError(c, err)
	}

	unlocked := 0
	for _, s := range statuses {
		if s.Unlocked {
			unlocked++
		}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": statuses,
		"total":        len(statuses),
		"unlocked":     unlocked,
	})
}

// GetXPLog returns recent XP activity, newest first.
func GetXPLog(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	record, err := getEngine().Record(userID)
	if err != nil {
		return engineError(c, err)
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	log := record.XPLog
	if len(log) > limit {
		log = log[len(log)-limit:]
	}
	// newest first
	out := make([]gamification.XPEvent, 0, len(log))
	for i := len(log) - 1; i >= 0; i-- {
		out = append(out, log[i])
	}

	return c.JSON(fiber.Map{
		"success": true,
		"events":  out,
	})
}
