package dashboardservice

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"leaguedash/api/dto"
	"leaguedash/api/filters"
	boardsrepo "leaguedash/api/repositories/boards"
	"leaguedash/pkg/messages"
)

// Summary returns the window totals plus the deltas against the preceding
// window of equal length.
func (ds *DashboardService) Summary(ctx context.Context, f *filters.SummaryFilter) (*dto.Summary, error) {
	if f == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	key := summaryKey(f)

	if mem, ok := fromMemCache[*dto.Summary](ds.memCache, key); ok {
		return mem, nil
	}

	if cached, ok := fromRedis[*dto.Summary](ds.redis, key); ok {
		ds.memCache.Set(key, cached, ds.memTTL)
		return cached, nil
	}

	current, err := ds.BoardsRepository.Summary(ctx, f)
	if err != nil {
		return nil, err
	}

	previousFilter := &filters.SummaryFilter{
		Range:   f.Range.Previous(),
		Leagues: f.Leagues,
	}

	previous, err := ds.BoardsRepository.Summary(ctx, previousFilter)
	if err != nil {
		return nil, err
	}

	summary := &dto.Summary{
		Label:    f.Range.Label,
		Current:  summaryTotals(current),
		Previous: summaryTotals(previous),
		Deltas: dto.SummaryDeltas{
			Games:         current.Games - previous.Games,
			Wins:          current.Wins - previous.Wins,
			Winrate:       roundOne(current.Winrate - previous.Winrate),
			ActivePlayers: current.ActivePlayers - previous.ActivePlayers,
			LpChange:      current.LpChange - previous.LpChange,
		},
	}

	ds.populateCaches(key, summary)

	return summary, nil
}

// TopGrinders returns the most active players or teams of the window.
func (ds *DashboardService) TopGrinders(ctx context.Context, f *filters.BoardFilter) ([]*dto.BoardRow, error) {
	return ds.board(ctx, f, "grinders", func(ctx context.Context) ([]*boardsrepo.RawBoardRow, error) {
		return ds.BoardsRepository.TopGrinders(ctx, f)
	})
}

// Streaks returns the best current win streaks, or the worst loss streaks.
func (ds *DashboardService) Streaks(ctx context.Context, f *filters.BoardFilter, losses bool) ([]*dto.BoardRow, error) {
	name := "streaks"
	if losses {
		name = "loss_streaks"
	}

	return ds.board(ctx, f, name, func(ctx context.Context) ([]*boardsrepo.RawBoardRow, error) {
		return ds.BoardsRepository.Streaks(ctx, f, losses)
	})
}

// LpMovers returns the top LP gainers or losers of the window.
func (ds *DashboardService) LpMovers(ctx context.Context, f *filters.BoardFilter, losers bool) ([]*dto.BoardRow, error) {
	name := "lp_gainers"
	if losers {
		name = "lp_losers"
	}

	return ds.board(ctx, f, name, func(ctx context.Context) ([]*boardsrepo.RawBoardRow, error) {
		return ds.BoardsRepository.LpMovers(ctx, f, losers)
	})
}

// board runs the cache fallthrough shared by every small ranked board.
func (ds *DashboardService) board(ctx context.Context, f *filters.BoardFilter, name string, fetch func(context.Context) ([]*boardsrepo.RawBoardRow, error)) ([]*dto.BoardRow, error) {
	if f == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	key := boardKey(name, f)

	if mem, ok := fromMemCache[[]*dto.BoardRow](ds.memCache, key); ok {
		return mem, nil
	}

	if cached, ok := fromRedis[[]*dto.BoardRow](ds.redis, key); ok {
		ds.memCache.Set(key, cached, ds.memTTL)
		return cached, nil
	}

	raw, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	rows := buildBoardRows(raw)
	ds.populateCaches(key, rows)

	return rows, nil
}

// buildBoardRows converts the raw rows, numbering them from 1.
func buildBoardRows(raw []*boardsrepo.RawBoardRow) []*dto.BoardRow {
	rows := make([]*dto.BoardRow, 0, len(raw))
	for i, r := range raw {
		row := &dto.BoardRow{
			Rank:     i + 1,
			EntityId: r.EntityId,
			Name:     r.Name,
			Team:     r.Team,
			Value:    r.Value,
		}

		if r.Tier != "" {
			row.Best = &dto.RankSnapshot{Tier: r.Tier, Rank: r.Rank, Lp: r.Lp}
		}

		rows = append(rows, row)
	}

	return rows
}

func summaryTotals(raw *boardsrepo.RawSummary) dto.SummaryTotals {
	return dto.SummaryTotals{
		Games:             raw.Games,
		Wins:              raw.Wins,
		Winrate:           raw.Winrate,
		TotalGameDuration: raw.TotalGameDuration,
		ActivePlayers:     raw.ActivePlayers,
		LpChange:          raw.LpChange,
	}
}

// summaryKey generates the cache key for the summary card.
func summaryKey(f *filters.SummaryFilter) string {
	var builder strings.Builder
	builder.WriteString("summary:" + f.Range.StartString() + ":" + f.Range.EndString())

	if len(f.Leagues) > 0 {
		builder.WriteString(":leagues_" + joinUints(f.Leagues))
	}

	return builder.String()
}

// boardKey generates the cache key for a small ranked board.
func boardKey(name string, f *filters.BoardFilter) string {
	var builder strings.Builder
	builder.WriteString(name + ":" + f.Range.StartString() + ":" + f.Range.EndString())
	builder.WriteString(":limit_" + strconv.Itoa(f.Limit))

	if f.Teams {
		builder.WriteString(":teams")
	}

	if f.Ascending {
		builder.WriteString(":asc")
	}

	if len(f.Leagues) > 0 {
		builder.WriteString(":leagues_" + joinUints(f.Leagues))
	}

	return builder.String()
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
