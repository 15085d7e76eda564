package dto

// RankSnapshot is the latest tier/rank/LP of an account or a player's best
// account inside the requested window.
type RankSnapshot struct {
	Tier string `json:"tier"`
	Rank string `json:"rank"`
	Lp   int    `json:"lp"`
}

// RosterEntry is one member of a team row's current roster.
type RosterEntry struct {
	PlayerId uint    `json:"playerId"`
	Pseudo   string  `json:"pseudo"`
	Slug     string  `json:"slug"`
	Role     string  `json:"role"`
	Games    int     `json:"games"`
	Winrate  float64 `json:"winrate"`

	Best RankSnapshot `json:"best"`
}

// TeamRow is a single team leaderboard entry.
type TeamRow struct {
	Rank              int     `json:"rank"`
	TeamId            uint    `json:"teamId"`
	Name              string  `json:"name"`
	ShortName         string  `json:"shortName"`
	Slug              string  `json:"slug"`
	Organization      string  `json:"organization"`
	League            string  `json:"league"`
	Games             int     `json:"games"`
	Wins              int     `json:"wins"`
	Winrate           float64 `json:"winrate"`
	TotalGameDuration int     `json:"totalGameDuration"`
	LpChange          int     `json:"lpChange"`

	Roster []RosterEntry `json:"roster"`
}

// AccountRow is one account of a player leaderboard entry.
type AccountRow struct {
	AccountId uint    `json:"accountId"`
	GameName  string  `json:"gameName"`
	TagLine   string  `json:"tagLine"`
	Region    string  `json:"region"`
	Games     int     `json:"games"`
	Wins      int     `json:"wins"`
	Winrate   float64 `json:"winrate"`

	Snapshot RankSnapshot `json:"snapshot"`
}

// PlayerRow is a single player leaderboard entry.
type PlayerRow struct {
	Rank     int     `json:"rank"`
	PlayerId uint    `json:"playerId"`
	Pseudo   string  `json:"pseudo"`
	Slug     string  `json:"slug"`
	Role     string  `json:"role,omitempty"`
	Team     string  `json:"team,omitempty"`
	Games    int     `json:"games"`
	Wins     int     `json:"wins"`
	Winrate  float64 `json:"winrate"`
	LpChange int     `json:"lpChange"`

	Best     RankSnapshot `json:"best"`
	Accounts []AccountRow `json:"accounts"`
}

// TeamBoard bundles one team leaderboard page with its pagination meta.
type TeamBoard struct {
	Rows []*TeamRow `json:"rows"`
	Meta Pagination `json:"meta"`
}

// PlayerBoard bundles one player leaderboard page with its pagination meta.
type PlayerBoard struct {
	Rows []*PlayerRow `json:"rows"`
	Meta Pagination   `json:"meta"`
}

// SummaryTotals are the aggregate figures of one window.
type SummaryTotals struct {
	Games             int     `json:"games"`
	Wins              int     `json:"wins"`
	Winrate           float64 `json:"winrate"`
	TotalGameDuration int     `json:"totalGameDuration"`
	ActivePlayers     int     `json:"activePlayers"`
	LpChange          int     `json:"lpChange"`
}

// Summary is the dashboard header card data: current window totals plus the
// deltas against the immediately preceding window of equal length.
type Summary struct {
	Label    string        `json:"label"`
	Current  SummaryTotals `json:"current"`
	Previous SummaryTotals `json:"previous"`
	Deltas   SummaryDeltas `json:"deltas"`
}

// SummaryDeltas are the period-over-period differences.
type SummaryDeltas struct {
	Games         int     `json:"games"`
	Wins          int     `json:"wins"`
	Winrate       float64 `json:"winrate"`
	ActivePlayers int     `json:"activePlayers"`
	LpChange      int     `json:"lpChange"`
}

// BoardRow is a single entry of the small ranked boards (top grinders,
// streaks, LP movers). Value carries the ranked figure: games, streak length
// or LP change depending on the board.
type BoardRow struct {
	Rank     int    `json:"rank"`
	EntityId uint   `json:"entityId"`
	Name     string `json:"name"`
	Team     string `json:"team,omitempty"`
	Value    int    `json:"value"`

	Best *RankSnapshot `json:"best,omitempty"`
}
