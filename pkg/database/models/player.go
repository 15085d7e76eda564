package models

import "time"

// Player is a person with a stable identity independent of team membership.
type Player struct {
	ID      uint   `gorm:"primaryKey"`
	Slug    string `gorm:"type:varchar(100);uniqueIndex"`
	Pseudo  string `gorm:"type:varchar(100);not null;index"`
	Country string `gorm:"type:varchar(5)"`
}

// Account is a per-platform game identity belonging to exactly one player.
// A player may own several accounts (multi-region or re-rolled).
type Account struct {
	ID       uint   `gorm:"primaryKey"`
	PlayerID uint   `gorm:"index;not null"`
	Puuid    string `gorm:"type:char(78);uniqueIndex"`
	GameName string `gorm:"type:varchar(100)"`
	TagLine  string `gorm:"type:varchar(5)"`
	Region   string `gorm:"type:varchar(5)"`

	Player Player `gorm:"foreignKey:PlayerID"`
}

// Contract is a time-bounded player-to-team assignment with a role.
// EndDate nil means currently active. History is preserved, past contracts
// are closed by setting EndDate, never deleted.
type Contract struct {
	ID        uint       `gorm:"primaryKey"`
	PlayerID  uint       `gorm:"index;not null"`
	TeamID    uint       `gorm:"index;not null"`
	Role      string     `gorm:"type:varchar(10);not null"`
	StartDate time.Time  `gorm:"type:date;not null"`
	EndDate   *time.Time `gorm:"type:date;index"`

	Player Player `gorm:"foreignKey:PlayerID"`
	Team   Team   `gorm:"foreignKey:TeamID"`
}
