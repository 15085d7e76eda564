package jobs

import (
	"fmt"
	"leaguedash/pkg/config"
	"leaguedash/pkg/database"
	"leaguedash/pkg/logger"
	"log"
	"time"
)

// RecalculateStreaks rebuilds the materialized streaks table from the daily
// stats. An account's current streak is the run of most recent played days
// with the same net result, positive for winning days and negative for losing
// ones. An even day breaks the run.
func RecalculateStreaks(config *config.Config, appLogger *logger.Logger) error {
	log.Println("Starting streak recalculation")
	startTime := time.Now()

	db, err := database.NewConnection(config)
	if err != nil {
		return fmt.Errorf("couldn't get database connection: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to start transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	log.Println("Truncating streaks table...")
	if err := tx.Exec("TRUNCATE TABLE streaks").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to truncate: %w", err)
	}

	// Rebuild with a single INSERT SELECT. The run length is the position of
	// the first day whose sign differs from the latest one.
	log.Println("Rebuilding streaks table...")
	result := tx.Exec(`
        INSERT INTO streaks (account_id, current, updated_at)
        WITH days AS (
            SELECT
                account_id,
                CASE
                    WHEN wins * 2 > games_played THEN 1
                    WHEN wins * 2 < games_played THEN -1
                    ELSE 0
                END AS sign,
                ROW_NUMBER() OVER (PARTITION BY account_id ORDER BY date DESC) AS rn
            FROM daily_stats
            WHERE games_played > 0
        ),
        latest AS (
            SELECT account_id, sign
            FROM days
            WHERE rn = 1
        ),
        breaks AS (
            SELECT d.account_id, MIN(d.rn) AS break_rn
            FROM days d
            JOIN latest l ON l.account_id = d.account_id
            WHERE d.sign <> l.sign
            GROUP BY d.account_id
        ),
        totals AS (
            SELECT account_id, COUNT(*) AS total
            FROM days
            GROUP BY account_id
        )
        SELECT
            l.account_id,
            l.sign * (COALESCE(b.break_rn, t.total + 1) - 1),
            NOW()
        FROM latest l
        JOIN totals t ON t.account_id = l.account_id
        LEFT JOIN breaks b ON b.account_id = l.account_id;
    `)

	if result.Error != nil {
		tx.Rollback()
		return fmt.Errorf("failed to rebuild streaks: %w", result.Error)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	duration := time.Since(startTime)
	log.Printf("Rebuilt %d streaks in %v", result.RowsAffected, duration)
	appLogger.Infof("Rebuilt %d streaks in %v", result.RowsAffected, duration)

	var counts struct {
		Winning int64
		Losing  int64
		Flat    int64
	}

	db.Raw("SELECT COUNT(*) FROM streaks WHERE current > 0").Scan(&counts.Winning)
	db.Raw("SELECT COUNT(*) FROM streaks WHERE current < 0").Scan(&counts.Losing)
	db.Raw("SELECT COUNT(*) FROM streaks WHERE current = 0").Scan(&counts.Flat)

	log.Printf("Distribution - Winning: %d, Losing: %d, Flat: %d",
		counts.Winning, counts.Losing, counts.Flat)

	return nil
}
