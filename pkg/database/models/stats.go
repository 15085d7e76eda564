package models

import "time"

// DailyStat is one row per account per calendar date, holding the day's game
// totals and the rank snapshot. Append-only fact table, all the dashboard
// aggregation runs against it.
type DailyStat struct {
	ID                uint      `gorm:"primaryKey"`
	AccountID         uint      `gorm:"not null;uniqueIndex:idx_account_date"`
	Date              time.Time `gorm:"type:date;not null;uniqueIndex:idx_account_date;index:idx_stat_date"`
	GamesPlayed       int       `gorm:"not null;default:0"`
	Wins              int       `gorm:"not null;default:0"`
	TotalGameDuration int       `gorm:"not null;default:0"`

	// Rank snapshot for the day. Lp is only comparable for master and above.
	Tier string `gorm:"type:tier_type"`
	Rank string `gorm:"type:rank_type"`
	Lp   int    `gorm:"default:0"`

	Account Account `gorm:"foreignKey:AccountID"`
}

// Streak is the materialized current win/loss streak per account.
// Positive is a win streak, negative a loss streak. The scheduler rebuilds
// the table daily from the daily stats, the dashboard only reads it.
type Streak struct {
	AccountID uint `gorm:"primaryKey"`
	Current   int  `gorm:"not null;default:0"`

	UpdatedAt time.Time

	Account Account `gorm:"foreignKey:AccountID"`
}
