package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"fitquest/database"
	"fitquest/models"
)

// leaderboardTTL bounds cache staleness; rankings do not need to be live.
const leaderboardTTL = 30 * time.Second

// LeaderboardEntry is one ranked row, safe to expose publicly.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        uint   `json:"user_id"`
	Username      string `json:"username"`
	DisplayName   string `json:"display_name"`
	Avatar        string `json:"avatar"`
	Level         int    `json:"level"`
	XP            int    `json:"xp"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	TotalWorkouts int    `json:"total_workouts"`
}

// Leaderboard returns the top users for a category, reading through the
// Redis cache when one is configured.
func Leaderboard(category string, limit, offset int) ([]LeaderboardEntry, error) {
	key := fmt.Sprintf("leaderboard:%s:%d:%d", category, limit, offset)

	if rdb := GetRedis(); rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if blob, err := rdb.Get(ctx, key).Bytes(); err == nil {
			var cached []LeaderboardEntry
			if json.Unmarshal(blob, &cached) == nil {
				return cached, nil
			}
		}
	}

	entries, err := queryLeaderboard(category, limit, offset)
	if err != nil {
		return nil, err
	}

	if rdb := GetRedis(); rdb != nil {
		if blob, err := json.Marshal(entries); err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := rdb.Set(ctx, key, blob, leaderboardTTL).Err(); err != nil {
				log.Printf("leaderboard cache write failed: %v", err)
			}
		}
	}

	return entries, nil
}

func queryLeaderboard(category string, limit, offset int) ([]LeaderboardEntry, error) {
	var orderBy string
	switch category {
	case "level":
		orderBy = "level DESC, xp DESC"
	case "streak":
		orderBy = "longest_streak DESC, xp DESC"
	case "workouts":
		orderBy = "total_workouts DESC, xp DESC"
	default: // "xp"
		orderBy = "xp DESC, level DESC"
	}

	db := database.GetDB()
	var users []models.User
	if err := db.Where("is_guest = ? AND is_banned = ?", false, false).
		Order(orderBy).
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:          offset + i + 1,
			UserID:        u.ID,
			Username:      u.Username,
			DisplayName:   u.DisplayName,
			Avatar:        u.Avatar,
			Level:         u.Level,
			XP:            u.XP,
			CurrentStreak: u.CurrentStreak,
			LongestStreak: u.LongestStreak,
			TotalWorkouts: u.TotalWorkouts,
		})
	}
	return entries, nil
}

// UserRank returns a user's 1-based position on the lifetime XP board.
func UserRank(userID uint) (int, error) {
	db := database.GetDB()

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return 0, err
	}

	var ahead int64
	if err := db.Model(&models.User{}).
		Where("is_guest = ? AND is_banned = ? AND xp > ?", false, false, user.XP).
		Count(&ahead).Error; err != nil {
		return 0, err
	}
	return int(ahead) + 1, nil
}
