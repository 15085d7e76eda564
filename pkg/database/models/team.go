package models

import "time"

// Organization owns one or more teams across leagues.
type Organization struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(100);not null"`
	ShortName string `gorm:"type:varchar(10)"`
}

// League is a competitive league/region grouping, used as a filter dimension.
type League struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(100);not null"`
	ShortName string `gorm:"type:varchar(10)"`
	Region    string `gorm:"type:varchar(10)"`
	IsActive  bool   `gorm:"default:true"`
}

// Team belongs to an organization and plays in a league.
// IsActive flags whether it currently fields a roster.
type Team struct {
	ID             uint   `gorm:"primaryKey"`
	OrganizationID uint   `gorm:"index;not null"`
	LeagueID       uint   `gorm:"index;not null"`
	Name           string `gorm:"type:varchar(100);not null"`
	ShortName      string `gorm:"type:varchar(10)"`
	Slug           string `gorm:"type:varchar(100);uniqueIndex"`
	IsActive       bool   `gorm:"default:true"`

	Organization Organization `gorm:"foreignKey:OrganizationID"`
	League       League       `gorm:"foreignKey:LeagueID"`
}

// Split is a competitive season subdivision with its own date range.
// Listed on the dashboard, never aggregated over.
type Split struct {
	ID        uint      `gorm:"primaryKey"`
	Season    int       `gorm:"not null"`
	Number    int       `gorm:"not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
}
