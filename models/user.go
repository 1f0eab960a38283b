// models/user.go
package models

import (
	"time"
)

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	Avatar      string  `json:"avatar"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`
	IsBanned    bool    `gorm:"default:false" json:"is_banned"`

	// Progression snapshot, denormalized from the gamification record so the
	// leaderboard can sort without unpacking JSON blobs. The record is the
	// source of truth; these columns refresh on every record save.
	Level         int `gorm:"default:1" json:"level"`
	XP            int `gorm:"default:0" json:"xp"`
	CurrentStreak int `gorm:"default:0" json:"current_streak"`
	LongestStreak int `gorm:"default:0" json:"longest_streak"`
	TotalWorkouts int `gorm:"default:0" json:"total_workouts"`

	// Timestamps
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    time.Time  `json:"last_login"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}
