package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitquest/gamification"
	"fitquest/models"
)

// RecordStore is the GORM-backed implementation of the engine's store
// boundary: one JSONB blob per user in progress_records. Save also refreshes
// the denormalized progression columns on the user row so leaderboard
// queries stay cheap.
type RecordStore struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// Load returns the user's record, or nil when none exists yet.
func (s *RecordStore) Load(userID uint) (*gamification.Record, error) {
	var row models.ProgressRecord
	err := s.db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load progress record: %v", gamification.ErrStorageUnavailable, err)
	}

	var record gamification.Record
	if err := json.Unmarshal([]byte(row.Data), &record); err != nil {
		return nil, fmt.Errorf("%w: corrupt progress blob for user %d", gamification.ErrInvalidState, userID)
	}
	return &record, nil
}

// Save overwrites the user's record blob and syncs the user row's
// progression snapshot in the same transaction.
func (s *RecordStore) Save(userID uint, record *gamification.Record) error {
	blob, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: marshal progress record: %v", gamification.ErrStorageUnavailable, err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		row := models.ProgressRecord{
			UserID:    userID,
			Data:      string(blob),
			UpdatedAt: time.Now().UTC(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("%w: save progress record: %v", gamification.ErrStorageUnavailable, err)
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"level":          record.Level,
			"xp":             record.TotalXP,
			"current_streak": record.CurrentStreak,
			"longest_streak": record.LongestStreak,
			"total_workouts": record.TotalWorkoutsCompleted,
		}).Error; err != nil {
			return fmt.Errorf("%w: sync user progression: %v", gamification.ErrStorageUnavailable, err)
		}
		return nil
	})
}
