package filters

import (
	"time"

	"leaguedash/pkg/daterange"
)

// View modes for the small ranked boards.
const (
	ViewPlayers = "players"
	ViewTeams   = "teams"
)

// LpMoversLimit caps the LP gainer/loser boards.
const LpMoversLimit = 10

// BoardQueryParams are the raw query parameters of the small ranked boards
// (top grinders, streaks, LP movers).
type BoardQueryParams struct {
	PeriodQueryParams
	Leagues  []uint `form:"leagues[]"`
	Limit    int    `form:"limit,default=5" binding:"omitempty,min=1"`
	Sort     string `form:"sort,default=desc" binding:"omitempty,oneof=asc desc"`
	ViewMode string `form:"viewMode,default=players" binding:"omitempty,oneof=players teams"`
}

// BoardFilter is the resolved descriptor for the small ranked boards.
type BoardFilter struct {
	Range     daterange.Range
	Leagues   []uint
	Limit     int
	Ascending bool
	Teams     bool
}

// NewBoardFilter resolves the raw parameters, capping the limit.
func NewBoardFilter(params *BoardQueryParams, maxLimit int, minDate, now time.Time) (*BoardFilter, error) {
	rng, err := params.Resolve(minDate, now)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	return &BoardFilter{
		Range:     rng,
		Leagues:   params.Leagues,
		Limit:     limit,
		Ascending: params.Sort == "asc",
		Teams:     params.ViewMode == ViewTeams,
	}, nil
}

// HistoryQueryParams are the raw query parameters of the history endpoints.
// The entity id is bound separately, it's required per route.
type HistoryQueryParams struct {
	PeriodQueryParams
	TeamId   uint `form:"teamId"`
	PlayerId uint `form:"playerId"`
}

// HistoryFilter is the resolved descriptor for a history series.
type HistoryFilter struct {
	Range    daterange.Range
	EntityId uint
}

// NewHistoryFilter resolves the raw parameters for the given entity id.
func NewHistoryFilter(params *HistoryQueryParams, entityId uint, minDate, now time.Time) (*HistoryFilter, error) {
	rng, err := params.Resolve(minDate, now)
	if err != nil {
		return nil, err
	}

	return &HistoryFilter{Range: rng, EntityId: entityId}, nil
}
