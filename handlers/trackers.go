// handlers/trackers.go - domain tracker endpoints (workout, sleep, water,
// nutrition, supplements, daily goals, notes)
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fitquest/gamification"
	"fitquest/middleware"
)

type LogSleepRequest struct {
	Quality bool     `json:"quality"`
	Hours   *float64 `json:"hours,omitempty"`
}

type LogWaterRequest struct {
	Glasses int `json:"glasses"`
}

type WaterGoalRequest struct {
	DailyGoal int `json:"daily_goal"`
}

type LogNutritionRequest struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fats    int `json:"fats"`
}

type NutritionGoalsRequest struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fats    int `json:"fats"`
}

type DailyGoalsRequest struct {
	CompletionPercentage int `json:"completion_percentage"`
}

type AddNoteRequest struct {
	Content string `json:"content"`
	Tag     string `json:"tag"`
}

// GetRecord returns the user's full gamification record.
func GetRecord(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	record, err := getEngine().Record(userID)
	if err != nil {
		return engineError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"record":  record,
	})
}

// CompleteWorkout marks today's workout done.
func CompleteWorkout(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	res, err := getEngine().CompleteWorkout(userID)
	if err != nil {
		return engineError(c, err)
	}

	publishResult(userID, res)
	return trackerResponse(c, res)
}

// LogSleep records last night's sleep quality and optional hours.
func LogSleep(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req LogSleepRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res, err := getEngine().LogSleep(userID, req.Quality, req.Hours)
	if err != nil {
		return engineError(c, err)
	}

	publishResult(userID, res)
	return trackerResponse(c, res)
}

// LogWater sets today's glass count.
func LogWater(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req LogWaterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res, err := getEngine().LogWater(userID, req.Glasses)
	if err != nil {
		return engineError(c, err)
	}

	publishResult(userID, res)
	return trackerResponse(c, res)
}

// SetWaterGoal changes the glasses-per-day target.
func SetWaterGoal(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req WaterGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	record, err := getEngine().SetWaterGoal(userID, req.DailyGoal)
	if err != nil {
		return engineError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"daily_goal": record.Water.DailyGoal,
	})
}

// LogNutrition upserts today's macro entry.
func LogNutrition(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req LogNutritionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res, err := getEngine().LogNutrition(userID, req.Protein, req.Carbs, req.Fats)
	if err != nil {
		return engineError(c, err)
	}

	publishResult(userID, res)
	return trackerResponse(c, res)
}

// SetNutritionGoals replaces the macro targets; calories are derived.
func SetNutritionGoals(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req NutritionGoalsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	record, err := getEngine().SetNutritionGoals(userID, req.Protein, req.Carbs, req.Fats)
	if err != nil {
		return engineError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"goals":   record.Nutrition.Goals,
	})
}

// TakeSupplement records today's supplement intake.
func TakeSupplement(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	res, err := getEngine().TakeSupplement(userID)
	if err != nil {
		return engineError(c, err)
	}

	publishResult(userID, res)
	return c.JSON(fiber.Map{
		"success":           true,
		"xp_awarded":        res.XPAwarded,
		"supplement_streak": res.Record.SupplementStreak,
		"new_achievements":  res.NewAchievements,
	})
}

// UpdateDailyGoals stores today's goal-completion percentage.
func UpdateDailyGoals(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req DailyGoalsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res, err := getEngine().UpdateDailyGoals(userID, req.CompletionPercentage)
	if err != nil {
		return engineError(c, err)
	}

	publishResult(userID, res)
	return trackerResponse(c, res)
}

// AddNote appends a training note.
func AddNote(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Tag == "" {
		req.Tag = string(gamification.NoteOther)
	}

	note, err := getEngine().AddNote(userID, req.Content, gamification.NoteTag(req.Tag))
	if err != nil {
		return engineError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"note":    note,
	})
}

// GetNotes lists recent notes, newest first.
func GetNotes(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notes, err := getEngine().Notes(userID, limit)
	if err != nil {
		return engineError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"notes":   notes,
		"count":   len(notes),
	})
}
