package dto

// HistoryPoint is one day of a team or player series. Dates with no recorded
// games are omitted, gap filling is the chart client's concern.
type HistoryPoint struct {
	Date    string  `json:"date"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	Winrate float64 `json:"winrate"`
	TotalLp int     `json:"totalLp"`
}

// LeagueEntry is a reference list entry for the league filter.
type LeagueEntry struct {
	Id        uint   `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Region    string `json:"region"`
}

// SplitEntry is a reference list entry for the split selector.
type SplitEntry struct {
	Id        uint   `json:"id"`
	Season    int    `json:"season"`
	Number    int    `json:"number"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
