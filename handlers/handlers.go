// handlers/handlers.go - shared handler state and helpers
package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"fitquest/gamification"
)

var engine *gamification.Engine

// InitEngine wires the gamification engine into the handler layer. Must run
// before any route is served.
func InitEngine(e *gamification.Engine) {
	engine = e
}

func getEngine() *gamification.Engine {
	if engine == nil {
		log.Fatal("Gamification engine not initialized. Call handlers.InitEngine() first.")
	}
	return engine
}

// engineError maps engine errors onto the JSON error envelope.
func engineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gamification.ErrInvalidArgument):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	case errors.Is(err, gamification.ErrStorageUnavailable):
		log.Printf("storage error: %v", err)
		return c.Status(503).JSON(fiber.Map{"success": false, "error": "Storage unavailable"})
	default:
		log.Printf("engine error: %v", err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Internal error"})
	}
}

// trackerResponse is the shared response shape for tracked actions.
func trackerResponse(c *fiber.Ctx, res *gamification.Result) error {
	newAchievements := res.NewAchievements
	if newAchievements == nil {
		newAchievements = []gamification.Achievement{}
	}
	return c.JSON(fiber.Map{
		"success":          true,
		"xp_awarded":       res.XPAwarded,
		"leveled_up":       res.LeveledUp,
		"new_achievements": newAchievements,
		"total_xp":         res.Record.TotalXP,
		"level":            res.Record.Level,
		"current_streak":   res.Record.CurrentStreak,
		"longest_streak":   res.Record.LongestStreak,
	})
}

// publishResult pushes ws events for anything noteworthy in a result.
func publishResult(userID uint, res *gamification.Result) {
	if res.XPAwarded > 0 {
		PublishEvent(userID, Event{Type: "xp_awarded", Payload: fiber.Map{
			"amount":   res.XPAwarded,
			"total_xp": res.Record.TotalXP,
		}})
	}
	if res.LeveledUp {
		PublishEvent(userID, Event{Type: "level_up", Payload: fiber.Map{
			"level": res.Record.Level,
		}})
	}
	for _, a := range res.NewAchievements {
		PublishEvent(userID, Event{Type: "achievement_unlocked", Payload: fiber.Map{
			"id":        a.ID,
			"name":      a.Name,
			"emoji":     a.Emoji,
			"xp_reward": a.XPReward,
		}})
	}
}
