package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fitquest/middleware"
	"fitquest/services"
)

// GetLeaderboard returns the top users for a category (xp, level, streak,
// workouts). Results are cached in Redis for a short window.
func GetLeaderboard(c *fiber.Ctx) error {
	category := c.Query("category", "xp")
	switch category {
	case "xp", "level", "streak", "workouts":
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Unknown leaderboard category"})
	}

	limit := c.QueryInt("limit", 25)
	if limit < 1 || limit > 100 {
		limit = 25
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	entries, err := services.Leaderboard(category, limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load leaderboard"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"category":    category,
		"leaderboard": entries,
		"count":       len(entries),
	})
}

// GetMyRank returns the caller's position on the XP leaderboard.
func GetMyRank(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	rank, err := services.UserRank(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute rank"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"rank":    rank,
	})
}
