package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"fitquest/database"
	"fitquest/models"
)

// CleanupService deletes stale guest accounts and their progress records in
// the background. Guests that never upgraded and have been inactive past the
// retention window are purged.
type CleanupService struct {
	interval  time.Duration
	retention time.Duration
	stop      chan struct{}
	done      chan struct{}
	started   bool
}

var cleanupService *CleanupService

// InitCleanupService initializes the singleton cleanup service.
func InitCleanupService() {
	cleanupService = &CleanupService{
		interval:  6 * time.Hour,
		retention: guestRetention(),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// GetCleanupService returns the initialized cleanup service.
func GetCleanupService() *CleanupService {
	return cleanupService
}

func guestRetention() time.Duration {
	days := 30
	if v := os.Getenv("GUEST_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

// Start launches the background cleanup loop. Calling it twice is a no-op.
func (s *CleanupService) Start() {
	if s.started {
		return
	}
	s.started = true
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.CleanupStaleGuests(); err != nil {
					log.Printf("Guest cleanup failed: %v", err)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop shuts the cleanup loop down and waits for it to exit. Safe to call
// on a service that was never started.
func (s *CleanupService) Stop() {
	close(s.stop)
	if s.started {
		<-s.done
	}
}

// CleanupStaleGuests removes guest users inactive past the retention window,
// along with their progress records.
func (s *CleanupService) CleanupStaleGuests() error {
	db := database.GetDB()
	cutoff := time.Now().UTC().Add(-s.retention)

	var stale []models.User
	if err := db.Where("is_guest = ? AND (last_activity IS NULL OR last_activity < ?) AND created_at < ?",
		true, cutoff, cutoff).Find(&stale).Error; err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	ids := make([]uint, len(stale))
	for i, u := range stale {
		ids[i] = u.ID
	}

	if err := db.Where("user_id IN ?", ids).Delete(&models.ProgressRecord{}).Error; err != nil {
		return err
	}
	if err := db.Delete(&stale).Error; err != nil {
		return err
	}

	log.Printf("✅ Cleaned up %d stale guest accounts", len(stale))
	return nil
}
