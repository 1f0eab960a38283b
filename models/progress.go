// models/progress.go
package models

import (
	"time"
)

// ProgressRecord holds one user's full gamification record as a JSONB blob.
// The engine owns the blob's schema; this row is just the storage cell
// behind its load/save boundary. Writes replace the whole blob, last writer
// wins.
type ProgressRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Data      string    `gorm:"type:jsonb;not null" json:"data"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProgressRecord) TableName() string {
	return "progress_records"
}
