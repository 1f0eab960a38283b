// progress-lint scans stored progress records for drift between the raw
// tracker history and the derived fields (level, streaks, workout totals).
// With -fix it rewrites each drifted record through the normal save path,
// which also resyncs the denormalized user columns.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"fitquest/database"
	"fitquest/gamification"
	"fitquest/models"
	"fitquest/services"
)

func main() {
	fix := flag.Bool("fix", false, "rewrite drifted records instead of only reporting them")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("warning: .env file not found, using system environment variables")
	}

	database.InitDB()
	db := database.GetDB()
	store := services.NewRecordStore(db)

	var rows []models.ProgressRecord
	if err := db.Order("user_id").Find(&rows).Error; err != nil {
		fmt.Println("error: cannot read progress_records:", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Println("no progress records found")
		return
	}

	now := time.Now()
	drifted := 0
	broken := 0

	for _, row := range rows {
		var record gamification.Record
		if err := json.Unmarshal([]byte(row.Data), &record); err != nil {
			fmt.Printf("user %d: corrupt record: %v\n", row.UserID, err)
			broken++
			continue
		}

		before := snapshot(&record)
		if err := record.Normalize(now); err != nil {
			fmt.Printf("user %d: invalid record: %v\n", row.UserID, err)
			broken++
			continue
		}
		after := snapshot(&record)

		if before == after {
			continue
		}
		drifted++
		fmt.Printf("user %d: drift detected\n", row.UserID)
		reportField("level", before.level, after.level)
		reportField("total_xp", before.totalXP, after.totalXP)
		reportField("current_streak", before.currentStreak, after.currentStreak)
		reportField("longest_streak", before.longestStreak, after.longestStreak)
		reportField("total_workouts", before.totalWorkouts, after.totalWorkouts)
		reportField("schema_version", before.schemaVersion, after.schemaVersion)

		if *fix {
			if err := store.Save(row.UserID, &record); err != nil {
				fmt.Printf("user %d: fix failed: %v\n", row.UserID, err)
				broken++
				continue
			}
			fmt.Printf("user %d: fixed\n", row.UserID)
		}
	}

	fmt.Printf("checked %d records: %d drifted, %d broken\n", len(rows), drifted, broken)
	if broken > 0 || (drifted > 0 && !*fix) {
		os.Exit(1)
	}
}

type derived struct {
	level         int
	totalXP       int
	currentStreak int
	longestStreak int
	totalWorkouts int
	schemaVersion int
}

func snapshot(r *gamification.Record) derived {
	return derived{
		level:         r.Level,
		totalXP:       r.TotalXP,
		currentStreak: r.CurrentStreak,
		longestStreak: r.LongestStreak,
		totalWorkouts: r.TotalWorkoutsCompleted,
		schemaVersion: r.SchemaVersion,
	}
}

func reportField(name string, before, after int) {
	if before != after {
		fmt.Printf("  %s: stored %d, recomputed %d\n", name, before, after)
	}
}
