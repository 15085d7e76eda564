package filters

import (
	"testing"
	"time"

	"leaguedash/pkg/daterange"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestNewLeaderboardFilter(t *testing.T) {
	params := &LeaderboardQueryParams{
		Leagues:  []uint{1, 2},
		Roles:    []string{"MID"},
		MinGames: 10,
		Search:   "faker",
		Sort:     SortWinrate,
		Page:     3,
		PerPage:  20,
	}
	params.Period = "day"

	f, err := NewLeaderboardFilter(params, 20, 100, time.Time{}, testNow)
	assert.NoError(t, err)

	assert.Equal(t, "2025-06-09", f.Range.StartString())
	assert.Equal(t, "2025-06-15", f.Range.EndString())
	assert.Equal(t, []uint{1, 2}, f.Leagues)
	assert.Equal(t, []string{"MID"}, f.Roles)
	assert.Equal(t, 10, f.MinGames)
	assert.Equal(t, "faker", f.Search)
	assert.Equal(t, SortWinrate, f.Sort)
	assert.Equal(t, 40, f.Offset())
}

func TestNewLeaderboardFilterCapsPerPage(t *testing.T) {
	params := &LeaderboardQueryParams{Page: 1, PerPage: 500, Sort: SortGames}
	params.Period = "day"

	f, err := NewLeaderboardFilter(params, 20, 100, time.Time{}, testNow)
	assert.NoError(t, err)
	assert.Equal(t, 100, f.PerPage)
}

func TestNewLeaderboardFilterDefaultPerPage(t *testing.T) {
	params := &LeaderboardQueryParams{Page: 1, Sort: SortGames}
	params.Period = "day"

	f, err := NewLeaderboardFilter(params, 25, 100, time.Time{}, testNow)
	assert.NoError(t, err)
	assert.Equal(t, 25, f.PerPage)
}

func TestNewLeaderboardFilterClampsToMinDate(t *testing.T) {
	minDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("customStart", func(t *testing.T) {
		params := &LeaderboardQueryParams{Page: 1, PerPage: 20, Sort: SortGames}
		params.Period = "custom"
		params.StartDate = "2020-01-01"
		params.EndDate = "2025-05-10"

		f, err := NewLeaderboardFilter(params, 20, 100, minDate, testNow)
		assert.NoError(t, err)
		assert.Equal(t, "2025-03-01", f.Range.StartString())
		assert.Equal(t, "2025-05-10", f.Range.EndString())
	})

	t.Run("yearStart", func(t *testing.T) {
		params := &LeaderboardQueryParams{Page: 1, PerPage: 20, Sort: SortGames}
		params.Period = "year"

		f, err := NewLeaderboardFilter(params, 20, 100, minDate, testNow)
		assert.NoError(t, err)
		assert.Equal(t, "2025-03-01", f.Range.StartString())
		assert.Equal(t, "2025-12-31", f.Range.EndString())
	})
}

func TestNewLeaderboardFilterCustomPeriod(t *testing.T) {
	params := &LeaderboardQueryParams{Page: 1, PerPage: 20, Sort: SortGames}
	params.Period = "custom"
	params.StartDate = "2025-05-01"
	params.EndDate = "2025-05-10"

	f, err := NewLeaderboardFilter(params, 20, 100, time.Time{}, testNow)
	assert.NoError(t, err)
	assert.Equal(t, "2025-05-01", f.Range.StartString())
	assert.Equal(t, "2025-05-10", f.Range.EndString())
}

func TestNewLeaderboardFilterInvalidDate(t *testing.T) {
	params := &LeaderboardQueryParams{Page: 1, PerPage: 20}
	params.Period = "day"
	params.Date = "06/15/2025"

	_, err := NewLeaderboardFilter(params, 20, 100, time.Time{}, testNow)
	assert.Error(t, err)
}

func TestNewSummaryFilter(t *testing.T) {
	params := &SummaryQueryParams{Leagues: []uint{7}}
	params.Period = "month"

	f, err := NewSummaryFilter(params, time.Time{}, testNow)
	assert.NoError(t, err)
	assert.Equal(t, "2025-06-01", f.Range.StartString())
	assert.Equal(t, "2025-06-30", f.Range.EndString())
	assert.Equal(t, []uint{7}, f.Leagues)
}

func TestNewBoardFilter(t *testing.T) {
	params := &BoardQueryParams{Limit: 5, Sort: "desc", ViewMode: ViewTeams}
	params.Period = "day"

	f, err := NewBoardFilter(params, 0, time.Time{}, testNow)
	assert.NoError(t, err)
	assert.Equal(t, 5, f.Limit)
	assert.True(t, f.Teams)
	assert.False(t, f.Ascending)
}

func TestNewBoardFilterCapsLimit(t *testing.T) {
	params := &BoardQueryParams{Limit: 50, Sort: "asc", ViewMode: ViewPlayers}
	params.Period = "day"

	f, err := NewBoardFilter(params, LpMoversLimit, time.Time{}, testNow)
	assert.NoError(t, err)
	assert.Equal(t, LpMoversLimit, f.Limit)
	assert.True(t, f.Ascending)
	assert.False(t, f.Teams)
}

func TestNewHistoryFilter(t *testing.T) {
	params := &HistoryQueryParams{TeamId: 42}
	params.Period = "day"

	f, err := NewHistoryFilter(params, params.TeamId, time.Time{}, testNow)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), f.EntityId)
	assert.Equal(t, daterange.RollingDays, f.Range.Days())
}
