package repositories

import (
	"context"
	"errors"
	"strings"

	"leaguedash/api/filters"
	"leaguedash/pkg/messages"
	"leaguedash/pkg/tiers"

	"gorm.io/gorm"
)

// LeaderboardRepository is the public interface for the team and player
// leaderboard aggregation.
type LeaderboardRepository interface {
	TeamLeaderboard(ctx context.Context, f *filters.LeaderboardFilter) ([]*RawTeamRow, int, error)
	PlayerLeaderboard(ctx context.Context, f *filters.LeaderboardFilter) ([]*RawPlayerRow, int, error)
	TeamRosters(ctx context.Context, f *filters.LeaderboardFilter, teamIds []uint) ([]*RawRosterEntry, error)
	PlayerAccounts(ctx context.Context, f *filters.LeaderboardFilter, playerIds []uint) ([]*RawAccountRow, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository creates a leaderboard repository.
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// RawTeamRow is one aggregated team row as scanned from the query.
type RawTeamRow struct {
	TeamId            uint    `gorm:"column:team_id"`
	Name              string  `gorm:"column:name"`
	ShortName         string  `gorm:"column:short_name"`
	Slug              string  `gorm:"column:slug"`
	Organization      string  `gorm:"column:organization"`
	League            string  `gorm:"column:league"`
	Games             int     `gorm:"column:games"`
	Wins              int     `gorm:"column:wins"`
	Winrate           float64 `gorm:"column:winrate"`
	TotalGameDuration int     `gorm:"column:total_game_duration"`
	LpChange          int     `gorm:"column:lp_change"`
	TotalRows         int     `gorm:"column:total_rows"`
}

// RawPlayerRow is one aggregated player row as scanned from the query.
type RawPlayerRow struct {
	PlayerId  uint    `gorm:"column:player_id"`
	Pseudo    string  `gorm:"column:pseudo"`
	Slug      string  `gorm:"column:slug"`
	Role      string  `gorm:"column:role"`
	Team      string  `gorm:"column:team"`
	Games     int     `gorm:"column:games"`
	Wins      int     `gorm:"column:wins"`
	Winrate   float64 `gorm:"column:winrate"`
	LpChange  int     `gorm:"column:lp_change"`
	Tier      string  `gorm:"column:tier"`
	Rank      string  `gorm:"column:rank"`
	Lp        int     `gorm:"column:lp"`
	TotalRows int     `gorm:"column:total_rows"`
}

// RawRosterEntry is one current-roster member with its window aggregates.
type RawRosterEntry struct {
	TeamId   uint    `gorm:"column:team_id"`
	PlayerId uint    `gorm:"column:player_id"`
	Pseudo   string  `gorm:"column:pseudo"`
	Slug     string  `gorm:"column:slug"`
	Role     string  `gorm:"column:role"`
	Games    int     `gorm:"column:games"`
	Winrate  float64 `gorm:"column:winrate"`
	Tier     string  `gorm:"column:tier"`
	Rank     string  `gorm:"column:rank"`
	Lp       int     `gorm:"column:lp"`
}

// RawAccountRow is one account with its window aggregates and latest snapshot.
type RawAccountRow struct {
	PlayerId  uint    `gorm:"column:player_id"`
	AccountId uint    `gorm:"column:account_id"`
	GameName  string  `gorm:"column:game_name"`
	TagLine   string  `gorm:"column:tag_line"`
	Region    string  `gorm:"column:region"`
	Games     int     `gorm:"column:games"`
	Wins      int     `gorm:"column:wins"`
	Winrate   float64 `gorm:"column:winrate"`
	Tier      string  `gorm:"column:tier"`
	Rank      string  `gorm:"column:rank"`
	Lp        int     `gorm:"column:lp"`
}

// rangeStatsCTE restricts the fact table to the window and attaches the owner.
// Takes two args: start and end date.
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

// lpCTEs computes the per-account LP change between the first and last
// qualifying snapshot. LP below master isn't comparable, so both bounds only
// count the point-eligible tiers. An account below master at the window start
// gets a 0 baseline and full credit for LP earned after promoting.
// Takes one arg: the window start date.
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

// snapshotCTEs picks the latest in-window snapshot per account regardless of
// tier, then the best account per player. The tier_type enum is declared in
// ladder order, so ordering by the column itself ranks tiers.
const snapshotCTEs = `
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
`

// sortColumn maps the sort key to its output column. The trailing tiebreakers
// keep the order deterministic.
func sortColumn(sort string) string {
	switch sort {
	case filters.SortWinrate:
		return "winrate"
	case filters.SortLp:
		return "lp_change"
	default:
		return "games"
	}
}

// TeamLeaderboard returns one page of aggregated team rows plus the total
// count of matching teams.
func (lr *leaderboardRepository) TeamLeaderboard(ctx context.Context, f *filters.LeaderboardFilter) ([]*RawTeamRow, int, error) {
	if f == nil {
		return nil, 0, errors.New(messages.FiltersNotNil)
	}

	// Role restriction applies to which stat rows count toward a team,
	// so it lives on the contract join inside both aggregation CTEs.
	roleCondition := ""
	if len(f.Roles) > 0 {
		roleCondition = " AND c.role IN ?"
	}

	aggregationCTEs := `
	, team_stats AS (
		SELECT
			c.team_id,
			SUM(rs.games_played) AS games,
			SUM(rs.wins) AS wins,
			SUM(rs.total_game_duration) AS total_game_duration
		FROM range_stats rs
		JOIN contracts c ON c.player_id = rs.player_id AND c.end_date IS NULL` + roleCondition + `
		GROUP BY c.team_id
	)
	, team_lp AS (
		SELECT c.team_id, SUM(al.lp_change) AS lp_change
		FROM account_lp al
		JOIN accounts a ON a.id = al.account_id
		JOIN contracts c ON c.player_id = a.player_id AND c.end_date IS NULL` + roleCondition + `
		GROUP BY c.team_id
	)
	`

	// Args follow placeholder order: range CTE, LP CTEs, then both role
	// conditions inside the aggregation CTEs.
	args := []any{f.Range.StartString(), f.Range.EndString(), f.Range.StartString()}
	if len(f.Roles) > 0 {
		args = append(args, f.Roles, f.Roles)
	}

	// The minimum games threshold is a post-aggregation condition, the CTE
	// already grouped so a plain WHERE on the aggregate works as the HAVING.
	whereConditions := []string{"ts.games >= ?"}
	args = append(args, f.MinGames)

	if len(f.Leagues) > 0 {
		whereConditions = append(whereConditions, "t.league_id IN ?")
		args = append(args, f.Leagues)
	}

	if f.Search != "" {
		whereConditions = append(whereConditions, "(t.name ILIKE ? OR t.short_name ILIKE ?)")
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}

	mainQuery := `
	SELECT
		t.id AS team_id,
		t.name,
		t.short_name,
		t.slug,
		o.name AS organization,
		lg.short_name AS league,
		ts.games,
		ts.wins,
		CASE WHEN ts.games = 0 THEN 0 ELSE ROUND(ts.wins * 100.0 / ts.games, 1) END AS winrate,
		ts.total_game_duration,
		COALESCE(tl.lp_change, 0) AS lp_change,
		COUNT(*) OVER () AS total_rows
	FROM team_stats ts
	JOIN teams t ON t.id = ts.team_id
	JOIN organizations o ON o.id = t.organization_id
	JOIN leagues lg ON lg.id = t.league_id
	LEFT JOIN team_lp tl ON tl.team_id = ts.team_id
	WHERE ` + strings.Join(whereConditions, " AND ") + `
	ORDER BY ` + sortColumn(f.Sort) + ` DESC, t.name ASC, t.id ASC
	LIMIT ? OFFSET ?
	`
	args = append(args, f.PerPage, f.Offset())

	query := rangeStatsCTE + lpCTEs + aggregationCTEs + mainQuery

	var rows []*RawTeamRow
	if err := lr.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	// The count rides on the returned rows, so a page past the last one
	// comes back empty and reports a zero total.
	total := 0
	if len(rows) > 0 {
		total = rows[0].TotalRows
	}

	return rows, total, nil
}

// PlayerLeaderboard returns one page of aggregated player rows plus the total
// count of matching players. Players without a current team still appear, the
// contract join is a left join.
func (lr *leaderboardRepository) PlayerLeaderboard(ctx context.Context, f *filters.LeaderboardFilter) ([]*RawPlayerRow, int, error) {
	if f == nil {
		return nil, 0, errors.New(messages.FiltersNotNil)
	}

	aggregationCTEs := `
	, player_stats AS (
		SELECT
			player_id,
			SUM(games_played) AS games,
			SUM(wins) AS wins
		FROM range_stats
		GROUP BY player_id
	)
	, player_lp AS (
		SELECT a.player_id, SUM(al.lp_change) AS lp_change
		FROM account_lp al
		JOIN accounts a ON a.id = al.account_id
		GROUP BY a.player_id
	)
	`

	args := []any{f.Range.StartString(), f.Range.EndString(), f.Range.StartString()}

	whereConditions := []string{"ps.games >= ?"}
	args = append(args, f.MinGames)

	if len(f.Roles) > 0 {
		whereConditions = append(whereConditions, "c.role IN ?")
		args = append(args, f.Roles)
	}

	if len(f.Leagues) > 0 {
		whereConditions = append(whereConditions, "t.league_id IN ?")
		args = append(args, f.Leagues)
	}

	if f.Search != "" {
		whereConditions = append(whereConditions, "p.pseudo ILIKE ?")
		args = append(args, "%"+f.Search+"%")
	}

	mainQuery := `
	SELECT
		p.id AS player_id,
		p.pseudo,
		p.slug,
		COALESCE(c.role, '') AS role,
		COALESCE(t.name, '') AS team,
		ps.games,
		ps.wins,
		CASE WHEN ps.games = 0 THEN 0 ELSE ROUND(ps.wins * 100.0 / ps.games, 1) END AS winrate,
		COALESCE(pl.lp_change, 0) AS lp_change,
		COALESCE(br.tier::text, '') AS tier,
		COALESCE(br.rank::text, '') AS rank,
		COALESCE(br.lp, 0) AS lp,
		COUNT(*) OVER () AS total_rows
	FROM player_stats ps
	JOIN players p ON p.id = ps.player_id
	LEFT JOIN contracts c ON c.player_id = p.id AND c.end_date IS NULL
	LEFT JOIN teams t ON t.id = c.team_id
	LEFT JOIN player_lp pl ON pl.player_id = p.id
	LEFT JOIN best_rank br ON br.player_id = p.id
	WHERE ` + strings.Join(whereConditions, " AND ") + `
	ORDER BY ` + sortColumn(f.Sort) + ` DESC, p.pseudo ASC, p.id ASC
	LIMIT ? OFFSET ?
	`
	args = append(args, f.PerPage, f.Offset())

	query := rangeStatsCTE + lpCTEs + snapshotCTEs + aggregationCTEs + mainQuery

	var rows []*RawPlayerRow
	if err := lr.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	total := 0
	if len(rows) > 0 {
		total = rows[0].TotalRows
	}

	return rows, total, nil
}

// TeamRosters returns the current five-role roster of the given teams with
// each member's window aggregates and best-account snapshot.
func (lr *leaderboardRepository) TeamRosters(ctx context.Context, f *filters.LeaderboardFilter, teamIds []uint) ([]*RawRosterEntry, error) {
	if f == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	if len(teamIds) == 0 {
		return []*RawRosterEntry{}, nil
	}

	query := rangeStatsCTE + snapshotCTEs + `
	, player_agg AS (
		SELECT player_id, SUM(games_played) AS games, SUM(wins) AS wins
		FROM range_stats
		GROUP BY player_id
	)
	SELECT
		c.team_id,
		p.id AS player_id,
		p.pseudo,
		p.slug,
		c.role,
		COALESCE(pa.games, 0) AS games,
		CASE WHEN COALESCE(pa.games, 0) = 0 THEN 0 ELSE ROUND(pa.wins * 100.0 / pa.games, 1) END AS winrate,
		COALESCE(br.tier::text, '') AS tier,
		COALESCE(br.rank::text, '') AS rank,
		COALESCE(br.lp, 0) AS lp
	FROM contracts c
	JOIN players p ON p.id = c.player_id
	LEFT JOIN player_agg pa ON pa.player_id = p.id
	LEFT JOIN best_rank br ON br.player_id = p.id
	WHERE c.end_date IS NULL AND c.team_id IN ?
	ORDER BY c.team_id, array_position(ARRAY['TOP', 'JUNGLE', 'MID', 'ADC', 'SUPPORT'], c.role)
	`

	var rows []*RawRosterEntry
	err := lr.db.WithContext(ctx).
		Raw(query, f.Range.StartString(), f.Range.EndString(), teamIds).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// PlayerAccounts returns every account of the given players with per-account
// window aggregates and the latest in-window snapshot.
func (lr *leaderboardRepository) PlayerAccounts(ctx context.Context, f *filters.LeaderboardFilter, playerIds []uint) ([]*RawAccountRow, error) {
	if f == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	if len(playerIds) == 0 {
		return []*RawAccountRow{}, nil
	}

	query := rangeStatsCTE + `
	, acc_agg AS (
		SELECT account_id, SUM(games_played) AS games, SUM(wins) AS wins
		FROM range_stats
		GROUP BY account_id
	)
	, last_snap AS (
		SELECT DISTINCT ON (account_id) account_id, tier, rank, lp
		FROM range_stats
		WHERE tier IS NOT NULL
		ORDER BY account_id, date DESC
	)
	SELECT
		a.player_id,
		a.id AS account_id,
		a.game_name,
		a.tag_line,
		a.region,
		COALESCE(ag.games, 0) AS games,
		COALESCE(ag.wins, 0) AS wins,
		CASE WHEN COALESCE(ag.games, 0) = 0 THEN 0 ELSE ROUND(ag.wins * 100.0 / ag.games, 1) END AS winrate,
		COALESCE(ls.tier::text, '') AS tier,
		COALESCE(ls.rank::text, '') AS rank,
		COALESCE(ls.lp, 0) AS lp
	FROM accounts a
	LEFT JOIN acc_agg ag ON ag.account_id = a.id
	LEFT JOIN last_snap ls ON ls.account_id = a.id
	WHERE a.player_id IN ?
	ORDER BY a.player_id, games DESC
	`

	var rows []*RawAccountRow
	err := lr.db.WithContext(ctx).
		Raw(query, f.Range.StartString(), f.Range.EndString(), playerIds).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
