package repositories

import (
	"context"
	"errors"

	"leaguedash/api/filters"
	"leaguedash/pkg/messages"
	"leaguedash/pkg/tiers"

	"gorm.io/gorm"
)

// BoardsRepository serves the summary card and the small ranked boards.
type BoardsRepository interface {
	Summary(ctx context.Context, f *filters.SummaryFilter) (*RawSummary, error)
	TopGrinders(ctx context.Context, f *filters.BoardFilter) ([]*RawBoardRow, error)
	Streaks(ctx context.Context, f *filters.BoardFilter, losses bool) ([]*RawBoardRow, error)
	LpMovers(ctx context.Context, f *filters.BoardFilter, losers bool) ([]*RawBoardRow, error)
}

type boardsRepository struct {
	db *gorm.DB
}

// NewBoardsRepository creates a boards repository.
func NewBoardsRepository(db *gorm.DB) BoardsRepository {
	return &boardsRepository{db: db}
}

// RawSummary holds the aggregate totals of one window.
type RawSummary struct {
	Games             int     `gorm:"column:games"`
	Wins              int     `gorm:"column:wins"`
	Winrate           float64 `gorm:"column:winrate"`
	TotalGameDuration int     `gorm:"column:total_game_duration"`
	ActivePlayers     int     `gorm:"column:active_players"`
	LpChange          int     `gorm:"column:lp_change"`
}

// RawBoardRow is one entry of a small ranked board.
type RawBoardRow struct {
	EntityId uint   `gorm:"column:entity_id"`
	Name     string `gorm:"column:name"`
	Team     string `gorm:"column:team"`
	Value    int    `gorm:"column:value"`
	Tier     string `gorm:"column:tier"`
	Rank     string `gorm:"column:rank"`
	Lp       int    `gorm:"column:lp"`
}

const rangeStatsCTE = `
	WITH range_stats AS (
		SELECT
			ds.account_id,
			a.player_id,
			ds.date,
			ds.games_played,
			ds.wins,
			ds.total_game_duration,
			ds.tier,
			ds.lp
		FROM daily_stats ds
		JOIN accounts a ON a.id = ds.account_id
		WHERE ds.date BETWEEN ?::date AND ?::date
	)
`

var lpCTEs = `
	, first_lp AS (
		SELECT account_id, lp
		FROM range_stats
		WHERE date = ?::date AND tier IN (` + tiers.PointEligibleList() + `)
	)
	, last_lp AS (
		SELECT DISTINCT ON (account_id) account_id, lp
		FROM range_stats
		WHERE tier IN (` + tiers.PointEligibleList() + `)
		ORDER BY account_id, date DESC
	)
	, account_lp AS (
		SELECT l.account_id, l.lp - COALESCE(f.lp, 0) AS lp_change
		FROM last_lp l
		LEFT JOIN first_lp f ON f.account_id = l.account_id
	)
`

// Summary aggregates the whole window into one totals row.
func (br *boardsRepository) Summary(ctx context.Context, f *filters.SummaryFilter) (*RawSummary, error) {
	if f == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	args := []any{f.Range.StartString(), f.Range.EndString(), f.Range.StartString()}

	// League filtering goes through the current contract on both the stat
	// aggregation and the LP scalar subquery.
	lpJoin := ""
	mainJoin := ""
	if len(f.Leagues) > 0 {
		lpJoin = `
		JOIN contracts lc ON lc.player_id = a.player_id AND lc.end_date IS NULL
		JOIN teams lt ON lt.id = lc.team_id AND lt.league_id IN ?`
		mainJoin = `
	JOIN contracts c ON c.player_id = rs.player_id AND c.end_date IS NULL
	JOIN teams t ON t.id = c.team_id AND t.league_id IN ?`
	}

	// The LP subquery sits in the select list, its placeholder binds first.
	mainQuery := `
	SELECT
		COALESCE(SUM(rs.games_played), 0) AS games,
		COALESCE(SUM(rs.wins), 0) AS wins,
		CASE WHEN COALESCE(SUM(rs.games_played), 0) = 0 THEN 0
			ELSE ROUND(SUM(rs.wins) * 100.0 / SUM(rs.games_played), 1)
		END AS winrate,
		COALESCE(SUM(rs.total_game_duration), 0) AS total_game_duration,
		COUNT(DISTINCT rs.player_id) AS active_players,
		(
			SELECT COALESCE(SUM(al.lp_change), 0)
			FROM account_lp al
			JOIN accounts a ON a.id = al.account_id` + lpJoin + `
		) AS lp_change
	FROM range_stats rs` + mainJoin

	if len(f.Leagues) > 0 {
		args = append(args, f.Leagues, f.Leagues)
	}

	var summary RawSummary
	err := br.db.WithContext(ctx).
		Raw(rangeStatsCTE+lpCTEs+mainQuery, args...).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

// TopGrinders ranks players or teams by games played inside the window.
func (br *boardsRepository) TopGrinders(ctx context.Context, f *filters.BoardFilter) ([]*RawBoardRow, error) {
	if f == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	args := []any{f.Range.StartString(), f.Range.EndString()}

	leagueCondition := ""
	if len(f.Leagues) > 0 {
		leagueCondition = "WHERE t.league_id IN ?"
	}

	var mainQuery string
	if f.Teams {
		mainQuery = `
	SELECT
		t.id AS entity_id,
		t.name AS name,
		'' AS team,
		SUM(rs.games_played) AS value
	FROM range_stats rs
	JOIN contracts c ON c.player_id = rs.player_id AND c.end_date IS NULL
	JOIN teams t ON t.id = c.team_id
	` + leagueCondition + `
	GROUP BY t.id, t.name
	ORDER BY value DESC, t.name ASC
	LIMIT ?
	`
	} else {
		mainQuery = `
	SELECT
		p.id AS entity_id,
		p.pseudo AS name,
		COALESCE(t.name, '') AS team,
		SUM(rs.games_played) AS value
	FROM range_stats rs
	JOIN players p ON p.id = rs.player_id
	LEFT JOIN contracts c ON c.player_id = p.id AND c.end_date IS NULL
	LEFT JOIN teams t ON t.id = c.team_id
	` + leagueCondition + `
	GROUP BY p.id, p.pseudo, t.name
	ORDER BY value DESC, p.pseudo ASC
	LIMIT ?
	`
	}

	if len(f.Leagues) > 0 {
		args = append(args, f.Leagues)
	}
	args = append(args, f.Limit)

	var rows []*RawBoardRow
	if err := br.db.WithContext(ctx).Raw(rangeStatsCTE+mainQuery, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// Streaks ranks the current materialized streaks. The window doesn't apply
// here, streaks are a "now" figure. For the team view a team's streak is the
// extreme streak across its open roster.
func (br *boardsRepository) Streaks(ctx context.Context, f *filters.BoardFilter, losses bool) ([]*RawBoardRow, error) {
	if f == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	streakCondition := "s.current > 0"
	pickOrder := "DESC"
	if losses {
		streakCondition = "s.current < 0"
		pickOrder = "ASC"
	}

	leagueCondition := ""
	if len(f.Leagues) > 0 {
		leagueCondition = "AND t.league_id IN ?"
	}

	var query string
	if f.Teams {
		query = `
	WITH best AS (
		SELECT DISTINCT ON (t.id) t.id AS team_id, t.name, s.current
		FROM streaks s
		JOIN accounts a ON a.id = s.account_id
		JOIN contracts c ON c.player_id = a.player_id AND c.end_date IS NULL
		JOIN teams t ON t.id = c.team_id
		WHERE ` + streakCondition + ` ` + leagueCondition + `
		ORDER BY t.id, s.current ` + pickOrder + `
	)
	SELECT b.team_id AS entity_id, b.name AS name, '' AS team, b.current AS value
	FROM best b
	ORDER BY value ` + pickOrder + `, b.name ASC
	LIMIT ?
	`
	} else {
		query = `
	WITH best AS (
		SELECT DISTINCT ON (a.player_id) a.player_id, s.current
		FROM streaks s
		JOIN accounts a ON a.id = s.account_id
		WHERE ` + streakCondition + `
		ORDER BY a.player_id, s.current ` + pickOrder + `
	)
	SELECT
		p.id AS entity_id,
		p.pseudo AS name,
		COALESCE(t.name, '') AS team,
		b.current AS value
	FROM best b
	JOIN players p ON p.id = b.player_id
	LEFT JOIN contracts c ON c.player_id = p.id AND c.end_date IS NULL
	LEFT JOIN teams t ON t.id = c.team_id
	WHERE true ` + leagueCondition + `
	ORDER BY value ` + pickOrder + `, p.pseudo ASC
	LIMIT ?
	`
	}

	args := []any{}
	if len(f.Leagues) > 0 {
		args = append(args, f.Leagues)
	}
	args = append(args, f.Limit)

	var rows []*RawBoardRow
	if err := br.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// LpMovers ranks LP gainers or losers over the window. Gainers only carry
// positive changes, losers only negative ones, whatever the requested order.
func (br *boardsRepository) LpMovers(ctx context.Context, f *filters.BoardFilter, losers bool) ([]*RawBoardRow, error) {
	if f == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	args := []any{f.Range.StartString(), f.Range.EndString(), f.Range.StartString()}

	signCondition := "lp_change > 0"
	if losers {
		signCondition = "lp_change < 0"
	}

	// Sort is by magnitude: desc puts the biggest movement first. On the
	// losers board that's the most negative change, so the numeric order
	// flips. The sign restriction stays either way.
	descending := !f.Ascending
	if losers {
		descending = !descending
	}

	order := "ASC"
	if descending {
		order = "DESC"
	}

	leagueCondition := ""
	if len(f.Leagues) > 0 {
		leagueCondition = "AND t.league_id IN ?"
	}

	var mainQuery string
	if f.Teams {
		mainQuery = `
	, team_lp AS (
		SELECT c.team_id, SUM(al.lp_change) AS lp_change
		FROM account_lp al
		JOIN accounts a ON a.id = al.account_id
		JOIN contracts c ON c.player_id = a.player_id AND c.end_date IS NULL
		GROUP BY c.team_id
	)
	SELECT t.id AS entity_id, t.name AS name, '' AS team, tl.lp_change AS value
	FROM team_lp tl
	JOIN teams t ON t.id = tl.team_id
	WHERE tl.` + signCondition + ` ` + leagueCondition + `
	ORDER BY value ` + order + `, t.name ASC
	LIMIT ?
	`
	} else {
		mainQuery = `
	, player_lp AS (
		SELECT a.player_id, SUM(al.lp_change) AS lp_change
		FROM account_lp al
		JOIN accounts a ON a.id = al.account_id
		GROUP BY a.player_id
	)
	, last_snap AS (
		SELECT DISTINCT ON (account_id) account_id, tier, rank, lp
		FROM range_stats
		WHERE tier IS NOT NULL
		ORDER BY account_id, date DESC
	)
	, best_rank AS (
		SELECT DISTINCT ON (a.player_id) a.player_id, s.tier, s.rank, s.lp
		FROM last_snap s
		JOIN accounts a ON a.id = s.account_id
		ORDER BY a.player_id, s.tier DESC, s.lp DESC
	)
	SELECT
		p.id AS entity_id,
		p.pseudo AS name,
		COALESCE(t.name, '') AS team,
		pl.lp_change AS value,
		COALESCE(br.tier::text, '') AS tier,
		COALESCE(br.rank::text, '') AS rank,
		COALESCE(br.lp, 0) AS lp
	FROM player_lp pl
	JOIN players p ON p.id = pl.player_id
	LEFT JOIN contracts c ON c.player_id = p.id AND c.end_date IS NULL
	LEFT JOIN teams t ON t.id = c.team_id
	LEFT JOIN best_rank br ON br.player_id = p.id
	WHERE pl.` + signCondition + ` ` + leagueCondition + `
	ORDER BY value ` + order + `, p.pseudo ASC
	LIMIT ?
	`
	}

	if len(f.Leagues) > 0 {
		args = append(args, f.Leagues)
	}
	args = append(args, f.Limit)

	var rows []*RawBoardRow
	err := br.db.WithContext(ctx).
		Raw(rangeStatsCTE+lpCTEs+mainQuery, args...).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
