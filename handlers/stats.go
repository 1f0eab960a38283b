package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"fitquest/database"
	"fitquest/models"
)

// GetOnlineCount returns the number of users active in the last 5 minutes.
func GetOnlineCount(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Database not available",
		})
	}

	// Refresh the caller's own activity window when authenticated.
	userID := c.Locals("userId")
	if userID != nil {
		now := time.Now()
		db.Model(&models.User{}).Where("id = ?", userID).Update("last_activity", now)
	}

	cutoff := time.Now().Add(-5 * time.Minute)

	var count int64
	err := db.Model(&models.User{}).Where("last_activity > ?", cutoff).Count(&count).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to get online count",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   count,
	})
}

// GetLastActive returns the caller's last activity timestamp, formatted for
// display.
func GetLastActive(c *fiber.Ctx) error {
	db := database.GetDB()
	if db == nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Database not available",
		})
	}

	userID := c.Locals("userId")
	if userID == nil {
		return c.JSON(fiber.Map{
			"success":    true,
			"lastActive": "Never",
		})
	}

	var user models.User
	err := db.Where("id = ?", userID).First(&user).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to get user data",
		})
	}

	if user.LastActivity == nil {
		return c.JSON(fiber.Map{
			"success":    true,
			"lastActive": "Never",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"lastActive": user.LastActivity.Format("Jan 2, 2006 at 3:04 PM"),
	})
}
