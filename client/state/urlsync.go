package state

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"leaguedash/pkg/daterange"
)

// URLSync keeps the period and filter stores and the address bar query
// string consistent, so dashboard views stay shareable.
type URLSync struct {
	Period  *PeriodStore
	Filters *FilterStore
}

// Encode serializes the current state into query parameters. Roles are only
// carried in the player view, they mean nothing on the team leaderboard.
func (u *URLSync) Encode() url.Values {
	values := url.Values{}

	period := u.Period.Period()
	values.Set("period", string(period))
	if period == daterange.PeriodCustom {
		rng := u.Period.Range()
		values.Set("startDate", rng.StartString())
		values.Set("endDate", rng.EndString())
	}

	filters := u.Filters.Snapshot()
	values.Set("view", filters.ViewMode)
	values.Set("sort", filters.Sort)

	if len(filters.Leagues) > 0 {
		values.Set("leagues", joinUints(filters.Leagues))
	}
	if filters.ViewMode == "players" && len(filters.Roles) > 0 {
		values.Set("roles", strings.Join(filters.Roles, ","))
	}
	if filters.MinGames > 0 {
		values.Set("minGames", strconv.Itoa(filters.MinGames))
	}

	return values
}

// Apply restores the stores from query parameters. Unknown or malformed
// values are skipped, the stores keep their current state for those.
func (u *URLSync) Apply(values url.Values) {
	if period := values.Get("period"); period != "" {
		if daterange.Period(period) == daterange.PeriodCustom {
			start, _ := time.Parse(daterange.DateFormat, values.Get("startDate"))
			end, _ := time.Parse(daterange.DateFormat, values.Get("endDate"))
			u.Period.SetCustom(start, end)
		} else {
			// Invalid periods are rejected by the store itself.
			_ = u.Period.SetPeriod(daterange.Period(period))
		}
	}

	if view := values.Get("view"); view == "players" || view == "teams" {
		u.Filters.SetViewMode(view)
	}
	if sort := values.Get("sort"); sort != "" {
		u.Filters.SetSort(sort)
	}
	if leagues := values.Get("leagues"); leagues != "" {
		u.Filters.SetLeagues(splitUints(leagues))
	}
	if roles := values.Get("roles"); roles != "" {
		u.Filters.SetRoles(strings.Split(roles, ","))
	}
	if minGames := values.Get("minGames"); minGames != "" {
		if parsed, err := strconv.Atoi(minGames); err == nil && parsed >= 0 {
			u.Filters.SetMinGames(parsed)
		}
	}
}

func joinUints(values []uint) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	return sb.String()
}

func splitUints(raw string) []uint {
	parts := strings.Split(raw, ",")
	parsed := make([]uint, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		parsed = append(parsed, uint(value))
	}
	return parsed
}
