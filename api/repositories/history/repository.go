package repositories

import (
	"context"
	"errors"

	"leaguedash/api/filters"
	"leaguedash/pkg/messages"
	"leaguedash/pkg/tiers"

	"gorm.io/gorm"
)

// HistoryRepository serves the daily time series for the charts.
type HistoryRepository interface {
	TeamHistory(ctx context.Context, f *filters.HistoryFilter) ([]*RawHistoryPoint, error)
	PlayerHistory(ctx context.Context, f *filters.HistoryFilter) ([]*RawHistoryPoint, error)
}

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a history repository.
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// RawHistoryPoint is one aggregated day as scanned from the query.
type RawHistoryPoint struct {
	Date    string  `gorm:"column:date"`
	Games   int     `gorm:"column:games"`
	Wins    int     `gorm:"column:wins"`
	Winrate float64 `gorm:"column:winrate"`
	TotalLp int     `gorm:"column:total_lp"`
}

// historySelect aggregates per date. Days without rows simply don't appear,
// the chart client carries values forward. LP only sums point-eligible tiers.
var historySelect = `
	SELECT
		to_char(ds.date, 'YYYY-MM-DD') AS date,
		SUM(ds.games_played) AS games,
		SUM(ds.wins) AS wins,
		CASE WHEN SUM(ds.games_played) = 0 THEN 0
			ELSE ROUND(SUM(ds.wins) * 100.0 / SUM(ds.games_played), 1)
		END AS winrate,
		COALESCE(SUM(ds.lp) FILTER (WHERE ds.tier IN (` + tiers.PointEligibleList() + `)), 0) AS total_lp
	FROM daily_stats ds
	JOIN accounts a ON a.id = ds.account_id
`

// TeamHistory returns the daily series of the current roster of a team.
func (hr *historyRepository) TeamHistory(ctx context.Context, f *filters.HistoryFilter) ([]*RawHistoryPoint, error) {
	if f == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	query := historySelect + `
	JOIN contracts c ON c.player_id = a.player_id AND c.end_date IS NULL AND c.team_id = ?
	WHERE ds.date BETWEEN ?::date AND ?::date
	GROUP BY ds.date
	ORDER BY ds.date ASC
	`

	var points []*RawHistoryPoint
	err := hr.db.WithContext(ctx).
		Raw(query, f.EntityId, f.Range.StartString(), f.Range.EndString()).
		Scan(&points).Error
	if err != nil {
		return nil, err
	}

	return points, nil
}

// PlayerHistory returns the daily series across all accounts of a player.
func (hr *historyRepository) PlayerHistory(ctx context.Context, f *filters.HistoryFilter) ([]*RawHistoryPoint, error) {
	if f == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	query := historySelect + `
	WHERE a.player_id = ? AND ds.date BETWEEN ?::date AND ?::date
	GROUP BY ds.date
	ORDER BY ds.date ASC
	`

	var points []*RawHistoryPoint
	err := hr.db.WithContext(ctx).
		Raw(query, f.EntityId, f.Range.StartString(), f.Range.EndString()).
		Scan(&points).Error
	if err != nil {
		return nil, err
	}

	return points, nil
}
