package filters

import (
	"errors"
	"time"

	"leaguedash/pkg/daterange"
	"leaguedash/pkg/messages"
)

// Sort keys accepted by the leaderboards.
const (
	SortGames   = "games"
	SortWinrate = "winrate"
	SortLp      = "lp"
)

// PeriodQueryParams are the query parameters shared by every endpoint that
// resolves a date window.
type PeriodQueryParams struct {
	Period    string `form:"period,default=day" binding:"omitempty,oneof=day month year custom"`
	Date      string `form:"date"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// Resolve turns the period parameters into a concrete date range. The start
// is clamped to the minimum data date, nothing exists before it anyway.
func (p *PeriodQueryParams) Resolve(minDate, now time.Time) (daterange.Range, error) {
	if daterange.Period(p.Period) == daterange.PeriodCustom {
		start, err := parseOptionalDate(p.StartDate)
		if err != nil {
			return daterange.Range{}, err
		}

		end, err := parseOptionalDate(p.EndDate)
		if err != nil {
			return daterange.Range{}, err
		}

		return daterange.Custom(start, end, now).ClampStart(minDate), nil
	}

	reference := now
	if p.Date != "" {
		parsed, err := time.Parse(daterange.DateFormat, p.Date)
		if err != nil {
			return daterange.Range{}, errors.New(messages.InvalidDate)
		}
		reference = parsed
	}

	rng, err := daterange.Resolve(daterange.Period(p.Period), reference)
	if err != nil {
		return daterange.Range{}, err
	}

	return rng.ClampStart(minDate), nil
}

// LeaderboardQueryParams are the raw query parameters of the team and player
// leaderboards.
type LeaderboardQueryParams struct {
	PeriodQueryParams
	Leagues  []uint   `form:"leagues[]"`
	Roles    []string `form:"roles[]" binding:"omitempty,dive,oneof=TOP JUNGLE MID ADC SUPPORT"`
	MinGames int      `form:"minGames" binding:"omitempty,min=0"`
	Search   string   `form:"search"`
	Sort     string   `form:"sort,default=games" binding:"omitempty,oneof=games winrate lp"`
	Page     int      `form:"page,default=1" binding:"omitempty,min=1"`
	PerPage  int      `form:"perPage" binding:"omitempty,min=1"`
}

// LeaderboardFilter is the resolved query descriptor consumed by the
// leaderboard repository. All dynamic conditions are explicit fields, one
// function translates it to SQL.
type LeaderboardFilter struct {
	Range    daterange.Range
	Leagues  []uint
	Roles    []string
	MinGames int
	Search   string
	Sort     string
	Page     int
	PerPage  int
}

// Offset of the requested page.
func (f *LeaderboardFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}

// NewLeaderboardFilter resolves the raw parameters into a filter, applying
// the configured page size default and cap.
func NewLeaderboardFilter(params *LeaderboardQueryParams, defaultPerPage, maxPerPage int, minDate, now time.Time) (*LeaderboardFilter, error) {
	rng, err := params.Resolve(minDate, now)
	if err != nil {
		return nil, err
	}

	perPage := params.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return &LeaderboardFilter{
		Range:    rng,
		Leagues:  params.Leagues,
		Roles:    params.Roles,
		MinGames: params.MinGames,
		Search:   params.Search,
		Sort:     params.Sort,
		Page:     params.Page,
		PerPage:  perPage,
	}, nil
}

// SummaryQueryParams are the raw query parameters of the summary endpoint.
type SummaryQueryParams struct {
	PeriodQueryParams
	Leagues []uint `form:"leagues[]"`
}

// SummaryFilter is the resolved summary descriptor.
type SummaryFilter struct {
	Range   daterange.Range
	Leagues []uint
}

// NewSummaryFilter resolves the raw parameters into a filter.
func NewSummaryFilter(params *SummaryQueryParams, minDate, now time.Time) (*SummaryFilter, error) {
	rng, err := params.Resolve(minDate, now)
	if err != nil {
		return nil, err
	}

	return &SummaryFilter{Range: rng, Leagues: params.Leagues}, nil
}

// parseOptionalDate parses a date param, returning the zero time when empty.
func parseOptionalDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	parsed, err := time.Parse(daterange.DateFormat, value)
	if err != nil {
		return time.Time{}, errors.New(messages.InvalidDate)
	}

	return parsed, nil
}
