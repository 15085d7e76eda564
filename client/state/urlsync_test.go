package state

import (
	"net/url"
	"testing"
	"time"

	"leaguedash/pkg/daterange"

	"github.com/stretchr/testify/assert"
)

func newTestSync() *URLSync {
	return &URLSync{
		Period:  newTestPeriodStore(),
		Filters: NewFilterStore(),
	}
}

func TestEncodeDefaults(t *testing.T) {
	sync := newTestSync()

	values := sync.Encode()
	assert.Equal(t, "day", values.Get("period"))
	assert.Equal(t, "players", values.Get("view"))
	assert.Equal(t, "games", values.Get("sort"))
	assert.Empty(t, values.Get("leagues"))
	assert.Empty(t, values.Get("roles"))
	assert.Empty(t, values.Get("minGames"))
}

func TestEncodeFilters(t *testing.T) {
	sync := newTestSync()

	sync.Filters.SetLeagues([]uint{1, 7})
	sync.Filters.SetRoles([]string{"MID", "ADC"})
	sync.Filters.SetMinGames(10)

	values := sync.Encode()
	assert.Equal(t, "1,7", values.Get("leagues"))
	assert.Equal(t, "MID,ADC", values.Get("roles"))
	assert.Equal(t, "10", values.Get("minGames"))
}

// Roles mean nothing on the team leaderboard, so they stay out of the URL.
func TestEncodeRolesOnlyInPlayerView(t *testing.T) {
	sync := newTestSync()

	sync.Filters.SetRoles([]string{"MID"})
	sync.Filters.SetViewMode("teams")

	values := sync.Encode()
	assert.Equal(t, "teams", values.Get("view"))
	assert.Empty(t, values.Get("roles"))

	sync.Filters.SetViewMode("players")
	assert.Equal(t, "MID", sync.Encode().Get("roles"))
}

func TestEncodeCustomPeriod(t *testing.T) {
	sync := newTestSync()

	sync.Period.SetCustom(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))

	values := sync.Encode()
	assert.Equal(t, "custom", values.Get("period"))
	assert.Equal(t, "2025-05-01", values.Get("startDate"))
	assert.Equal(t, "2025-05-10", values.Get("endDate"))
}

func TestApply(t *testing.T) {
	sync := newTestSync()

	values := url.Values{}
	values.Set("period", "month")
	values.Set("view", "teams")
	values.Set("sort", "winrate")
	values.Set("leagues", "1,7")
	values.Set("minGames", "5")

	sync.Apply(values)

	assert.Equal(t, daterange.PeriodMonth, sync.Period.Period())

	filters := sync.Filters.Snapshot()
	assert.Equal(t, "teams", filters.ViewMode)
	assert.Equal(t, "winrate", filters.Sort)
	assert.Equal(t, []uint{1, 7}, filters.Leagues)
	assert.Equal(t, 5, filters.MinGames)
}

func TestApplySkipsMalformed(t *testing.T) {
	sync := newTestSync()

	values := url.Values{}
	values.Set("period", "fortnight")
	values.Set("view", "grid")
	values.Set("minGames", "lots")
	values.Set("leagues", "1,x,3")

	sync.Apply(values)

	assert.Equal(t, daterange.PeriodDay, sync.Period.Period())

	filters := sync.Filters.Snapshot()
	assert.Equal(t, "players", filters.ViewMode)
	assert.Equal(t, 0, filters.MinGames)

	// The parsable league ids survive.
	assert.Equal(t, []uint{1, 3}, filters.Leagues)
}

func TestRoundTrip(t *testing.T) {
	source := newTestSync()
	source.Filters.SetLeagues([]uint{2})
	source.Filters.SetRoles([]string{"JUNGLE"})
	source.Filters.SetMinGames(3)
	source.Filters.SetSort("lp")

	target := newTestSync()
	target.Apply(source.Encode())

	assert.Equal(t, source.Filters.Snapshot(), target.Filters.Snapshot())
	assert.Equal(t, source.Period.Period(), target.Period.Period())
}
