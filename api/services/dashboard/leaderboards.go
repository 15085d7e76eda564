package dashboardservice

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"leaguedash/api/dto"
	"leaguedash/api/filters"
	leaderboardrepo "leaguedash/api/repositories/leaderboard"
	"leaguedash/pkg/messages"
)

// TeamBoard returns one page of the team leaderboard with the current roster
// of every team on the page.
func (ds *DashboardService) TeamBoard(ctx context.Context, f *filters.LeaderboardFilter) (*dto.TeamBoard, error) {
	if f == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	key := leaderboardKey("teams", f)

	if mem, ok := fromMemCache[*dto.TeamBoard](ds.memCache, key); ok {
		return mem, nil
	}

	if cached, ok := fromRedis[*dto.TeamBoard](ds.redis, key); ok {
		ds.memCache.Set(key, cached, ds.memTTL)
		return cached, nil
	}

	rows, total, err := ds.LeaderboardRepository.TeamLeaderboard(ctx, f)
	if err != nil {
		return nil, err
	}

	teamIds := make([]uint, 0, len(rows))
	for _, row := range rows {
		teamIds = append(teamIds, row.TeamId)
	}

	rosters, err := ds.LeaderboardRepository.TeamRosters(ctx, f, teamIds)
	if err != nil {
		return nil, err
	}

	board := &dto.TeamBoard{
		Rows: buildTeamRows(rows, rosters, f.Offset()),
		Meta: dto.NewPagination(total, f.PerPage, f.Page),
	}

	ds.populateCaches(key, board)

	return board, nil
}

// PlayerBoard returns one page of the player leaderboard with every account
// of the players on the page.
func (ds *DashboardService) PlayerBoard(ctx context.Context, f *filters.LeaderboardFilter) (*dto.PlayerBoard, error) {
	if f == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	key := leaderboardKey("players", f)

	if mem, ok := fromMemCache[*dto.PlayerBoard](ds.memCache, key); ok {
		return mem, nil
	}

	if cached, ok := fromRedis[*dto.PlayerBoard](ds.redis, key); ok {
		ds.memCache.Set(key, cached, ds.memTTL)
		return cached, nil
	}

	rows, total, err := ds.LeaderboardRepository.PlayerLeaderboard(ctx, f)
	if err != nil {
		return nil, err
	}

	playerIds := make([]uint, 0, len(rows))
	for _, row := range rows {
		playerIds = append(playerIds, row.PlayerId)
	}

	accounts, err := ds.LeaderboardRepository.PlayerAccounts(ctx, f, playerIds)
	if err != nil {
		return nil, err
	}

	board := &dto.PlayerBoard{
		Rows: buildPlayerRows(rows, accounts, f.Offset()),
		Meta: dto.NewPagination(total, f.PerPage, f.Page),
	}

	ds.populateCaches(key, board)

	return board, nil
}

// buildTeamRows merges the aggregated rows with their rosters. The rank is
// the offset-adjusted position inside the page, not a global figure.
func buildTeamRows(rows []*leaderboardrepo.RawTeamRow, rosters []*leaderboardrepo.RawRosterEntry, offset int) []*dto.TeamRow {
	rostersByTeam := make(map[uint][]dto.RosterEntry, len(rows))
	for _, entry := range rosters {
		rostersByTeam[entry.TeamId] = append(rostersByTeam[entry.TeamId], dto.RosterEntry{
			PlayerId: entry.PlayerId,
			Pseudo:   entry.Pseudo,
			Slug:     entry.Slug,
			Role:     entry.Role,
			Games:    entry.Games,
			Winrate:  entry.Winrate,
			Best: dto.RankSnapshot{
				Tier: entry.Tier,
				Rank: entry.Rank,
				Lp:   entry.Lp,
			},
		})
	}

	teamRows := make([]*dto.TeamRow, 0, len(rows))
	for i, row := range rows {
		roster := rostersByTeam[row.TeamId]
		if roster == nil {
			roster = []dto.RosterEntry{}
		}

		teamRows = append(teamRows, &dto.TeamRow{
			Rank:              offset + i + 1,
			TeamId:            row.TeamId,
			Name:              row.Name,
			ShortName:         row.ShortName,
			Slug:              row.Slug,
			Organization:      row.Organization,
			League:            row.League,
			Games:             row.Games,
			Wins:              row.Wins,
			Winrate:           row.Winrate,
			TotalGameDuration: row.TotalGameDuration,
			LpChange:          row.LpChange,
			Roster:            roster,
		})
	}

	return teamRows
}

// buildPlayerRows merges the aggregated rows with their accounts.
func buildPlayerRows(rows []*leaderboardrepo.RawPlayerRow, accounts []*leaderboardrepo.RawAccountRow, offset int) []*dto.PlayerRow {
	accountsByPlayer := make(map[uint][]dto.AccountRow, len(rows))
	for _, acc := range accounts {
		accountsByPlayer[acc.PlayerId] = append(accountsByPlayer[acc.PlayerId], dto.AccountRow{
			AccountId: acc.AccountId,
			GameName:  acc.GameName,
			TagLine:   acc.TagLine,
			Region:    acc.Region,
			Games:     acc.Games,
			Wins:      acc.Wins,
			Winrate:   acc.Winrate,
			Snapshot: dto.RankSnapshot{
				Tier: acc.Tier,
				Rank: acc.Rank,
				Lp:   acc.Lp,
			},
		})
	}

	playerRows := make([]*dto.PlayerRow, 0, len(rows))
	for i, row := range rows {
		accs := accountsByPlayer[row.PlayerId]
		if accs == nil {
			accs = []dto.AccountRow{}
		}

		playerRows = append(playerRows, &dto.PlayerRow{
			Rank:     offset + i + 1,
			PlayerId: row.PlayerId,
			Pseudo:   row.Pseudo,
			Slug:     row.Slug,
			Role:     row.Role,
			Team:     row.Team,
			Games:    row.Games,
			Wins:     row.Wins,
			Winrate:  row.Winrate,
			LpChange: row.LpChange,
			Best: dto.RankSnapshot{
				Tier: row.Tier,
				Rank: row.Rank,
				Lp:   row.Lp,
			},
			Accounts: accs,
		})
	}

	return playerRows
}

// leaderboardKey generates the cache key for a leaderboard page.
func leaderboardKey(view string, f *filters.LeaderboardFilter) string {
	var builder strings.Builder
	builder.WriteString(view)
	builder.WriteString(":" + f.Range.StartString() + ":" + f.Range.EndString())
	builder.WriteString(":sort_" + f.Sort)
	builder.WriteString(":page_" + strconv.Itoa(f.Page))
	builder.WriteString(":per_" + strconv.Itoa(f.PerPage))

	if f.MinGames > 0 {
		builder.WriteString(":min_" + strconv.Itoa(f.MinGames))
	}

	if len(f.Leagues) > 0 {
		builder.WriteString(":leagues_" + joinUints(f.Leagues))
	}

	if len(f.Roles) > 0 {
		builder.WriteString(":roles_" + strings.Join(f.Roles, ","))
	}

	if f.Search != "" {
		builder.WriteString(":search_" + strings.ToLower(f.Search))
	}

	return builder.String()
}

func joinUints(values []uint) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	return strings.Join(parts, ",")
}
