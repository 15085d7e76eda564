package database

import (
	"fmt"
	"time"

	"leaguedash/pkg/config"
	"leaguedash/pkg/database/models"
	"leaguedash/pkg/tiers"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CreateEnums creates the enum types for the tier and rank snapshot columns.
// The tier enum is declared in ladder order, the ranking queries rely on it.
func CreateEnums(db *gorm.DB) error {
	err := db.Exec(`
		DO $$
		BEGIN
		    IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'tier_type') THEN
		        CREATE TYPE tier_type AS ENUM (` + tiers.EnumList() + `);
		    END IF;

		    IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'rank_type') THEN
		        CREATE TYPE rank_type AS ENUM ('IV', 'III', 'II', 'I');
		    END IF;
		END $$;
	`).Error

	return err
}

// CreateCustomIndexes creates any necessary custom index.
func CreateCustomIndexes(db *gorm.DB) error {
	indexes := []string{
		// Covers the date-range restriction plus the per-account grouping.
		`CREATE INDEX IF NOT EXISTS idx_daily_stats_date_account ON daily_stats (date, account_id);`,
		// Open contract lookup, the "current roster" join on every board.
		`CREATE INDEX IF NOT EXISTS idx_contracts_open ON contracts (player_id, team_id) WHERE end_date IS NULL;`,
		// Case-insensitive name search on the leaderboards.
		`CREATE INDEX IF NOT EXISTS idx_teams_name_lower ON teams (lower(name) text_pattern_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_players_pseudo_lower ON players (lower(pseudo) text_pattern_ops);`,
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			return fmt.Errorf("couldn't create custom index: %v", err)
		}
	}

	return nil
}

// Migrate creates the enums, the full schema and the custom indexes.
func Migrate(db *gorm.DB) error {
	if err := CreateEnums(db); err != nil {
		return fmt.Errorf("couldn't create the enums: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Organization{},
		&models.League{},
		&models.Team{},
		&models.Player{},
		&models.Account{},
		&models.Contract{},
		&models.DailyStat{},
		&models.Streak{},
		&models.Split{},
	); err != nil {
		return fmt.Errorf("couldn't run the migrations: %v", err)
	}

	return CreateCustomIndexes(db)
}

// NewConnection opens the postgres connection and configures the pool.
func NewConnection(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	sqlDb, sqlErr := db.DB()
	if sqlErr != nil {
		return nil, fmt.Errorf("failed to get the sql connection: %v", sqlErr)
	}

	// Set the pool values.
	sqlDb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDb.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDb.SetConnMaxIdleTime(time.Hour)

	// Test the connection.
	if err := sqlDb.Ping(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
